package value

import (
	"reflect"
	"testing"
)

func TestParseStrand(t *testing.T) {
	tests := []struct {
		in      string
		want    Strand
		wantErr bool
	}{
		{"+", StrandForward, false},
		{"-", StrandReverse, false},
		{"?", StrandUnknown, false},
		{"", StrandUnknown, false},
		{"x", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseStrand(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStrand(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseStrand(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLocationRoundTrip(t *testing.T) {
	tests := []string{
		"chr1:+:1000-1200",
		"chr1:?:1000-1200,2000-2200",
		"chrX:-:5-10",
	}
	for _, in := range tests {
		loc, err := ParseLocation(in)
		if err != nil {
			t.Fatalf("ParseLocation(%q): %v", in, err)
		}
		if got := loc.String(); got != in {
			t.Errorf("round trip: ParseLocation(%q).String() = %q", in, got)
		}
	}
}

func TestLocationUnknownStrandAlwaysEmitted(t *testing.T) {
	// The original Rust Display impl drops the strand field entirely on
	// unknown strand, producing a 2-field location string that its own
	// FromStr can't parse back. The Go String must always include it.
	loc := Location{Chromosome: "chr1", Strand: StrandUnknown, Intervals: []Interval{{Start: 1, End: 2}}}
	if got, want := loc.String(), "chr1:?:1-2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	reparsed, err := ParseLocation(loc.String())
	if err != nil {
		t.Fatalf("re-parsing serialized location: %v", err)
	}
	if !reflect.DeepEqual(reparsed, loc) {
		t.Errorf("round trip mismatch: got %+v, want %+v", reparsed, loc)
	}
}

func TestParseLocationBadInterval(t *testing.T) {
	if _, err := ParseLocation("chr1:+:2000-1000"); err == nil {
		t.Error("expected error for start > end")
	}
	if _, err := ParseLocation("chr1:+"); err == nil {
		t.Error("expected error for missing interval field")
	}
}

func TestReadsRoundTrip(t *testing.T) {
	in := "read1:SO,read2:IN,read3:SI"
	reads, err := ParseReads(in)
	if err != nil {
		t.Fatalf("ParseReads(%q): %v", in, err)
	}
	if len(reads) != 3 {
		t.Fatalf("len(reads) = %d, want 3", len(reads))
	}
	if got := FormatReads(reads); got != in {
		t.Errorf("FormatReads = %q, want %q", got, in)
	}
	if !HasTag(reads, TagInterior) {
		t.Error("expected IN tag present")
	}
}

func TestParseReadsEmpty(t *testing.T) {
	reads, err := ParseReads("")
	if err != nil {
		t.Fatalf("ParseReads(\"\"): %v", err)
	}
	if reads != nil {
		t.Errorf("ParseReads(\"\") = %v, want nil", reads)
	}
}

func TestIntersects(t *testing.T) {
	a, _ := ParseReads("r1:SO,r2:IN")
	b, _ := ParseReads("r2:IN,r3:SI")
	c, _ := ParseReads("r4:SO")
	if !Intersects(a, b) {
		t.Error("expected a and b to intersect on r2")
	}
	if Intersects(a, c) {
		t.Error("expected a and c to not intersect")
	}
}

func TestStructuralVariantRoundTrip(t *testing.T) {
	in := "chr1,chr1,1200,2000,splice"
	sv, err := ParseStructuralVariant(in)
	if err != nil {
		t.Fatalf("ParseStructuralVariant(%q): %v", in, err)
	}
	if got := sv.String(); got != in {
		t.Errorf("String() = %q, want %q", got, in)
	}
	if !sv.IsSplice() {
		t.Error("expected IsSplice() true for splice type")
	}
}

func TestStructuralVariantNonSplice(t *testing.T) {
	sv, err := ParseStructuralVariant("chr1,chr1,1700,2000,INV")
	if err != nil {
		t.Fatal(err)
	}
	if sv.IsSplice() {
		t.Error("expected IsSplice() false for INV type")
	}
	if sv.Breakpoint1 != 1700 || sv.Breakpoint2 != 2000 {
		t.Errorf("breakpoints = %d,%d, want 1700,2000", sv.Breakpoint1, sv.Breakpoint2)
	}
}

func TestOrientedRefRoundTrip(t *testing.T) {
	r, err := ParseOrientedRef("n1+")
	if err != nil {
		t.Fatal(err)
	}
	if r.ID != "n1" || r.Orientation != Plus {
		t.Errorf("got %+v", r)
	}
	if got := r.String(); got != "n1+" {
		t.Errorf("String() = %q, want n1+", got)
	}
}

func TestAttributeAccessors(t *testing.T) {
	tests := []struct {
		triplet string
		typ     AttrType
	}{
		{"depth:i:42", AttrInt},
		{"score:f:3.14", AttrFloat},
		{"name:Z:hello world", AttrString},
	}
	for _, tt := range tests {
		attr, err := ParseAttribute(tt.triplet)
		if err != nil {
			t.Fatalf("ParseAttribute(%q): %v", tt.triplet, err)
		}
		if attr.Type != tt.typ {
			t.Errorf("Type = %c, want %c", byte(attr.Type), byte(tt.typ))
		}
		if got := attr.String(); got != tt.triplet {
			t.Errorf("String() = %q, want %q", got, tt.triplet)
		}
	}

	depth, _ := ParseAttribute("depth:i:42")
	n, err := depth.AsInt()
	if err != nil || n != 42 {
		t.Errorf("AsInt() = %d, %v, want 42, nil", n, err)
	}
	if _, err := depth.AsFloat(); err == nil {
		t.Error("expected error calling AsFloat on an int attribute")
	}
}

func TestParseAttributeBadType(t *testing.T) {
	if _, err := ParseAttribute("tag:x:value"); err == nil {
		t.Error("expected error for invalid type code")
	}
}
