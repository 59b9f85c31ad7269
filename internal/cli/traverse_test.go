package cli

import "testing"

func TestSectionHashStable(t *testing.T) {
	a := sectionHash("doc.tsg", "G.graph")
	b := sectionHash("doc.tsg", "G.graph")
	if a != b {
		t.Errorf("sectionHash is not deterministic: %q != %q", a, b)
	}
}

func TestSectionHashDistinguishesFileAndSection(t *testing.T) {
	base := sectionHash("doc.tsg", "G.graph")

	if sectionHash("other.tsg", "G.graph") == base {
		t.Error("sectionHash should differ across files with the same section id")
	}
	if sectionHash("doc.tsg", "G.other") == base {
		t.Error("sectionHash should differ across sections within the same file")
	}
}
