package cli

import (
	"path/filepath"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"plain id", "G.graph", "G.graph"},
		{"slash separator", "chr1/region", "chr1_region"},
		{"multiple slashes", "a/b/c", "a_b_c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeFilename(tt.id); got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilenameOSSeparator(t *testing.T) {
	id := "a" + string(filepath.Separator) + "b"
	if got := sanitizeFilename(id); got != "a_b" {
		t.Errorf("sanitizeFilename(%q) = %q, want %q", id, got, "a_b")
	}
}
