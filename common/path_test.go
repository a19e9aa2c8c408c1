package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewPathRoot(t *testing.T) {
	p, err := NewPath("/")
	if err != nil {
		t.Fatalf("NewPath(/): %v", err)
	}
	if !p.IsRoot() {
		t.Fatalf("expected root path")
	}
	if p.String() != "/" {
		t.Fatalf("String() = %q, want /", p.String())
	}
}

func TestNewPathRejectsMissingLeadingSlash(t *testing.T) {
	if _, err := NewPath("a/b"); err == nil {
		t.Fatalf("expected error for path without leading slash")
	}
}

func TestNewPathRejectsColon(t *testing.T) {
	if _, err := NewPath("/a:b"); err == nil {
		t.Fatalf("expected error for path containing colon")
	}
}

func TestNewPathDropsEmptyComponents(t *testing.T) {
	p, err := NewPath("/a//b///c")
	if err != nil {
		t.Fatalf("NewPath: %v", err)
	}
	want := []string{"a", "b", "c"}
	got := p.Components()
	if len(got) != len(want) {
		t.Fatalf("Components() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Components() = %v, want %v", got, want)
		}
	}
}

func TestJoinOnZeroParentIsRoot(t *testing.T) {
	p, err := Join(Path{}, "a")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if p.String() != "/a" {
		t.Fatalf("Join(zero, a) = %q, want /a", p.String())
	}
}

func TestJoinRejectsInvalidComponent(t *testing.T) {
	cases := []string{"", "a/b", "a:b"}
	for _, c := range cases {
		if _, err := Join(Root(), c); err == nil {
			t.Errorf("Join(root, %q): expected error", c)
		}
	}
}

func TestParentAndLastUndefinedOnRoot(t *testing.T) {
	if _, err := Root().Parent(); err == nil {
		t.Fatalf("expected error calling Parent() on root")
	}
	if _, err := Root().Last(); err == nil {
		t.Fatalf("expected error calling Last() on root")
	}
}

func TestParentAndLast(t *testing.T) {
	p, _ := NewPath("/a/b/c")
	last, err := p.Last()
	if err != nil || last != "c" {
		t.Fatalf("Last() = %q, %v, want c, nil", last, err)
	}
	parent, err := p.Parent()
	if err != nil || parent.String() != "/a/b" {
		t.Fatalf("Parent() = %q, %v, want /a/b, nil", parent.String(), err)
	}
}

func TestIsSubpath(t *testing.T) {
	p, _ := NewPath("/a/b/c")
	ancestor, _ := NewPath("/a/b")
	unrelated, _ := NewPath("/x")

	if !p.IsSubpath(ancestor) {
		t.Fatalf("expected %v to be subpath of %v", p, ancestor)
	}
	if !p.IsSubpath(p) {
		t.Fatalf("expected a path to be a subpath of itself")
	}
	if p.IsSubpath(unrelated) {
		t.Fatalf("did not expect %v to be subpath of %v", p, unrelated)
	}
}

func TestEqual(t *testing.T) {
	a, _ := NewPath("/a/b")
	b, _ := NewPath("/a/b")
	c, _ := NewPath("/a/c")

	if !a.Equal(b) {
		t.Fatalf("expected equal paths to compare equal")
	}
	if a.Equal(c) {
		t.Fatalf("did not expect unequal paths to compare equal")
	}
}

func TestToFileStaysWithinRoot(t *testing.T) {
	p, _ := NewPath("/a/b")
	got := p.ToFile("/srv/storage")
	want := filepath.Join("/srv/storage", "a", "b")
	if got != want {
		t.Fatalf("ToFile() = %q, want %q", got, want)
	}
}

func TestListFilesNotFound(t *testing.T) {
	if _, err := ListFiles(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error listing a missing directory")
	}
}

func TestListFilesRejectsNonDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ListFiles(file); err == nil {
		t.Fatalf("expected error listing a non-directory")
	}
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "a", "b"), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a", "b", "c"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "top"), []byte("y"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	paths, err := ListFiles(dir)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("ListFiles() = %v, want 2 entries", paths)
	}
	seen := map[string]bool{}
	for _, p := range paths {
		seen[p.String()] = true
	}
	if !seen["/a/b/c"] || !seen["/top"] {
		t.Fatalf("ListFiles() = %v, missing expected entries", paths)
	}
}
