package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenOutputStdout(t *testing.T) {
	w, closeFn, err := openOutput("")
	if err != nil {
		t.Fatalf("openOutput(\"\") error: %v", err)
	}
	defer closeFn()
	if w != os.Stdout {
		t.Error("openOutput(\"\") should return os.Stdout")
	}
}

func TestOpenOutputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	w, closeFn, err := openOutput(path)
	if err != nil {
		t.Fatalf("openOutput(%q) error: %v", path, err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("file content = %q, want %q", data, "hello")
	}
}

func TestOpenOutputUnwritableDir(t *testing.T) {
	_, _, err := openOutput(filepath.Join(t.TempDir(), "missing-dir", "out.txt"))
	if err == nil {
		t.Error("openOutput() into a nonexistent directory should error")
	}
}
