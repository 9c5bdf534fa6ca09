package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiskUsageBytes(t *testing.T) {
	dir := t.TempDir()

	f1 := filepath.Join(dir, "f1.txt")
	if err := os.WriteFile(f1, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := DiskUsageBytes(f1)
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Errorf("single file: got %d bytes, want 5", got)
	}

	sub := filepath.Join(dir, "sub", "nested")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "a"), []byte("ab"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err = DiskUsageBytes(filepath.Join(dir, "sub"))
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("nested dir: got %d bytes, want 2", got)
	}

	got, err = DiskUsageBytes("", filepath.Join(dir, "missing"), f1)
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Errorf("missing and empty paths should be skipped: got %d", got)
	}
}
