package naming

import (
	"errors"
	"testing"

	"github.com/Brijeshlakkad/Distributed-File-System/common"
)

func TestAddChildRejectsDuplicate(t *testing.T) {
	root := newDirNode(common.Root())
	p, _ := common.NewPath("/a")
	if err := root.addChild("a", newDirNode(p)); err != nil {
		t.Fatalf("first addChild: %v", err)
	}
	if err := root.addChild("a", newDirNode(p)); !errors.Is(err, common.ErrAlreadyRegistered) {
		t.Fatalf("second addChild error = %v, want ErrAlreadyRegistered", err)
	}
}

func TestGetChildNodeNotFound(t *testing.T) {
	root := newDirNode(common.Root())
	if _, err := root.getChildNode("missing"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("getChildNode error = %v, want ErrNotFound", err)
	}
}

func TestDoesChildFileAndDirectoryExist(t *testing.T) {
	root := newDirNode(common.Root())
	dirPath, _ := common.NewPath("/dir")
	filePath, _ := common.NewPath("/file")

	_ = root.addChild("dir", newDirNode(dirPath))
	_ = root.addChild("file", &node{path: filePath, stubs: &ServerStubs{}})

	if !root.doesChildDirectoryExist("dir") || root.doesChildFileExist("dir") {
		t.Fatalf("expected dir to be classified as a directory")
	}
	if !root.doesChildFileExist("file") || root.doesChildDirectoryExist("file") {
		t.Fatalf("expected file to be classified as a file")
	}
}

func TestGetNodeByPath(t *testing.T) {
	root := newDirNode(common.Root())
	ab, _ := common.NewPath("/a/b")
	a := newDirNode(mustPath(t, "/a"))
	_ = root.addChild("a", a)
	_ = a.addChild("b", &node{path: ab, stubs: &ServerStubs{}})

	n, err := root.getNodeByPath(ab)
	if err != nil {
		t.Fatalf("getNodeByPath: %v", err)
	}
	if n.stubs == nil {
		t.Fatalf("expected /a/b to be a file node")
	}

	missing := mustPath(t, "/a/c")
	if _, err := root.getNodeByPath(missing); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("getNodeByPath(missing) error = %v, want ErrNotFound", err)
	}
}

func TestGetDescendants(t *testing.T) {
	root := newDirNode(common.Root())
	a := newDirNode(mustPath(t, "/a"))
	_ = root.addChild("a", a)
	_ = a.addChild("b", &node{path: mustPath(t, "/a/b"), stubs: &ServerStubs{}})
	_ = a.addChild("c", &node{path: mustPath(t, "/a/c"), stubs: &ServerStubs{}})

	descendants := a.getDescendants()
	if len(descendants) != 2 {
		t.Fatalf("getDescendants() = %v, want 2 entries", descendants)
	}
}

func mustPath(t *testing.T, s string) common.Path {
	t.Helper()
	p, err := common.NewPath(s)
	if err != nil {
		t.Fatalf("NewPath(%q): %v", s, err)
	}
	return p
}
