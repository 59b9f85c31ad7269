package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCollectIDsFromFlag(t *testing.T) {
	got, err := collectIDs("n1, n2 ,n3", "")
	if err != nil {
		t.Fatalf("collectIDs error: %v", err)
	}
	want := []string{"n1", "n2", "n3"}
	if len(got) != len(want) {
		t.Fatalf("collectIDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("collectIDs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCollectIDsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ids.txt")
	if err := os.WriteFile(path, []byte("n1\n\nn2\nn3\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := collectIDs("", path)
	if err != nil {
		t.Fatalf("collectIDs error: %v", err)
	}
	want := []string{"n1", "n2", "n3"}
	if len(got) != len(want) {
		t.Fatalf("collectIDs() = %v, want %v", got, want)
	}
}

func TestCollectIDsCombined(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ids.txt")
	if err := os.WriteFile(path, []byte("n2\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := collectIDs("n1", path)
	if err != nil {
		t.Fatalf("collectIDs error: %v", err)
	}
	if len(got) != 2 || got[0] != "n1" || got[1] != "n2" {
		t.Errorf("collectIDs() = %v, want [n1 n2]", got)
	}
}

func TestCollectIDsEmpty(t *testing.T) {
	got, err := collectIDs("", "")
	if err != nil {
		t.Fatalf("collectIDs error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("collectIDs() = %v, want empty", got)
	}
}

func TestCollectIDsMissingFile(t *testing.T) {
	_, err := collectIDs("", "/nonexistent/ids.txt")
	if err == nil {
		t.Error("collectIDs() with missing file should error")
	}
}
