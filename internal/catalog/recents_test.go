package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "recent.json")
	r := NewRecents(path, 3)

	if got := r.Load(); got != nil {
		t.Errorf("expected nothing before the first write, got %v", got)
	}

	for _, name := range []string{"a", "b", "c", "a", "d"} {
		if _, err := r.Add(name); err != nil {
			t.Fatalf("Add(%q) error: %v", name, err)
		}
	}

	want := []string{"d", "a", "c"}
	if diff := cmp.Diff(want, r.Load()); diff != "" {
		t.Errorf("Load() diff (-want +got):\n%s", diff)
	}

	// a second instance sees the same file
	if diff := cmp.Diff(want, NewRecents(path, 3).Load()); diff != "" {
		t.Errorf("reload diff (-want +got):\n%s", diff)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestRecentsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recent.json")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	r := NewRecents(path, 0)
	if got := r.Load(); got != nil {
		t.Errorf("corrupt file should read as empty, got %v", got)
	}
	names, err := r.Add("x")
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if diff := cmp.Diff([]string{"x"}, names); diff != "" {
		t.Errorf("Add() diff (-want +got):\n%s", diff)
	}
}

func TestRecentsPath(t *testing.T) {
	path := RecentsPath()
	if filepath.Base(path) != "recent.json" || filepath.Base(filepath.Dir(path)) != "vista" {
		t.Errorf("RecentsPath() = %q", path)
	}
}
