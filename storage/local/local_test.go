package local

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Brijeshlakkad/Distributed-File-System/common"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	root := t.TempDir()
	b, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func TestCreateAndSize(t *testing.T) {
	b := newTestBackend(t)
	p, _ := common.NewPath("/a/b/c")

	created, err := b.Create(p)
	if err != nil || !created {
		t.Fatalf("Create() = %v, %v, want true, nil", created, err)
	}

	created, err = b.Create(p)
	if err != nil || created {
		t.Fatalf("second Create() = %v, %v, want false, nil", created, err)
	}

	size, err := b.Size(p)
	if err != nil || size != 0 {
		t.Fatalf("Size() = %v, %v, want 0, nil", size, err)
	}
}

func TestCreateOnRootIsNoOp(t *testing.T) {
	b := newTestBackend(t)
	created, err := b.Create(common.Root())
	if err != nil || created {
		t.Fatalf("Create(root) = %v, %v, want false, nil", created, err)
	}
}

func TestSizeNotFound(t *testing.T) {
	b := newTestBackend(t)
	p, _ := common.NewPath("/missing")
	if _, err := b.Size(p); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("Size(missing) error = %v, want ErrNotFound", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	b := newTestBackend(t)
	p, _ := common.NewPath("/file")
	if _, err := b.Create(p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := b.Write(p, 0, []byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := b.Read(p, 0, 5)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("Read() = %q, want %q", data, "hello")
	}

	// Writing past the end extends the file.
	if err := b.Write(p, 5, []byte(" world")); err != nil {
		t.Fatalf("extending Write: %v", err)
	}
	data, err = b.Read(p, 0, 11)
	if err != nil {
		t.Fatalf("Read after extend: %v", err)
	}
	if string(data) != "hello world" {
		t.Fatalf("Read() = %q, want %q", data, "hello world")
	}
}

func TestReadOutOfBounds(t *testing.T) {
	b := newTestBackend(t)
	p, _ := common.NewPath("/file")
	if _, err := b.Create(p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := b.Write(p, 0, []byte("abc")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	cases := []struct {
		offset int64
		length int
	}{
		{-1, 1},
		{0, -1},
		{0, 100},
	}
	for _, c := range cases {
		if _, err := b.Read(p, c.offset, c.length); !errors.Is(err, common.ErrOutOfBounds) {
			t.Errorf("Read(offset=%d, length=%d) error = %v, want ErrOutOfBounds", c.offset, c.length, err)
		}
	}
}

func TestWriteNegativeOffset(t *testing.T) {
	b := newTestBackend(t)
	p, _ := common.NewPath("/file")
	if _, err := b.Create(p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := b.Write(p, -1, []byte("x")); !errors.Is(err, common.ErrOutOfBounds) {
		t.Fatalf("Write negative offset error = %v, want ErrOutOfBounds", err)
	}
}

func TestDeletePrunesEmptyAncestors(t *testing.T) {
	b := newTestBackend(t)
	p, _ := common.NewPath("/a/b/c")
	if _, err := b.Create(p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := b.Delete(p)
	if err != nil || !deleted {
		t.Fatalf("Delete() = %v, %v, want true, nil", deleted, err)
	}

	if _, err := os.Stat(filepath.Join(b.root, "a")); !os.IsNotExist(err) {
		t.Fatalf("expected ancestor directory %q to have been pruned", filepath.Join(b.root, "a"))
	}
}

func TestDeleteOnRootIsNoOp(t *testing.T) {
	b := newTestBackend(t)
	deleted, err := b.Delete(common.Root())
	if err != nil || deleted {
		t.Fatalf("Delete(root) = %v, %v, want false, nil", deleted, err)
	}
}

func TestResolveRejectsEscapingPath(t *testing.T) {
	b := newTestBackend(t)
	// A Path can only ever be built from non-empty, "/"-free, ":"-free
	// components, so a component of ".." is the only realistic escape
	// vector; resolve must still refuse it rather than trust Join blindly.
	p := common.Path{}
	p, _ = common.Join(p, "..")
	p, _ = common.Join(p, "outside")

	if _, err := b.resolve(p); !errors.Is(err, common.ErrInvalidArgument) {
		t.Fatalf("resolve(%v) error = %v, want ErrInvalidArgument", p, err)
	}
}

func TestList(t *testing.T) {
	b := newTestBackend(t)
	p1, _ := common.NewPath("/a")
	p2, _ := common.NewPath("/b/c")
	if _, err := b.Create(p1); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := b.Create(p2); err != nil {
		t.Fatalf("Create: %v", err)
	}

	paths, err := b.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("List() = %v, want 2 entries", paths)
	}
}
