package filepattern

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestExpandMatchesGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.log", "b.log", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	got, err := Expand([]string{filepath.Join(dir, "*.log")})
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	sort.Strings(got)

	want := []string{filepath.Join(dir, "a.log"), filepath.Join(dir, "b.log")}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExpandLiteralPathPassesThroughWhenMissing(t *testing.T) {
	got, err := Expand([]string{"/no/such/file/at/all.log"})
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if len(got) != 1 || got[0] != "/no/such/file/at/all.log" {
		t.Errorf("got %v, want unchanged literal path", got)
	}
}

func TestExpandLiteralExistingPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.log")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := Expand([]string{path})
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if len(got) != 1 || got[0] != path {
		t.Errorf("got %v, want [%s]", got, path)
	}
}
