package naming

import (
	"fmt"

	"github.com/Brijeshlakkad/Distributed-File-System/common"
	"github.com/Brijeshlakkad/Distributed-File-System/storage"
)

// ServerStubs is the pair of stubs the naming server holds for a single
// registered storage server, bound together because a file leaf is always
// backed by exactly one such pair.
type ServerStubs struct {
	Storage storage.StorageStub
	Command storage.CommandStub
}

// Equal reports whether both stubs target the same registered storage
// server.
func (s ServerStubs) Equal(other ServerStubs) bool {
	return s.Storage.Equal(other.Storage.ClientStub) && s.Command.Equal(other.Command.ClientStub)
}

// node is one entry in the in-memory naming tree. A node with a non-nil
// stubs is a leaf file; a node with nil stubs is a directory, and the root
// is always a directory.
type node struct {
	path     common.Path
	stubs    *ServerStubs
	children map[string]*node
}

func newDirNode(path common.Path) *node {
	return &node{path: path, children: make(map[string]*node)}
}

// getChildNode returns the named child, or common.ErrNotFound if absent.
func (n *node) getChildNode(name string) (*node, error) {
	child, ok := n.children[name]
	if !ok {
		return nil, fmt.Errorf("%w: no such child %q", common.ErrNotFound, name)
	}
	return child, nil
}

// doesChildFileExist reports whether name names an existing leaf file.
func (n *node) doesChildFileExist(name string) bool {
	child, ok := n.children[name]
	return ok && child.stubs != nil
}

// doesChildDirectoryExist reports whether name names an existing directory.
func (n *node) doesChildDirectoryExist(name string) bool {
	child, ok := n.children[name]
	return ok && child.stubs == nil
}

// addChild attaches child under name, failing common.ErrAlreadyRegistered
// if a node with that name is already present.
func (n *node) addChild(name string, child *node) error {
	if _, exists := n.children[name]; exists {
		return fmt.Errorf("%w: %q already exists", common.ErrAlreadyRegistered, name)
	}
	n.children[name] = child
	return nil
}

// deleteChild removes the named child, failing common.ErrNotFound if absent.
func (n *node) deleteChild(name string) error {
	if _, exists := n.children[name]; !exists {
		return fmt.Errorf("%w: no such child %q", common.ErrNotFound, name)
	}
	delete(n.children, name)
	return nil
}

// getNodeByPath walks from n following p's components, failing
// common.ErrNotFound if any component is absent along the way.
func (n *node) getNodeByPath(p common.Path) (*node, error) {
	cur := n
	for _, c := range p.Components() {
		next, err := cur.getChildNode(c)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", common.ErrNotFound, p)
		}
		cur = next
	}
	return cur, nil
}

// getDescendants flattens every leaf (file) descendant of n, n included if
// it is itself a file.
func (n *node) getDescendants() []*node {
	if n.stubs != nil {
		return []*node{n}
	}
	var out []*node
	for _, child := range n.children {
		out = append(out, child.getDescendants()...)
	}
	return out
}
