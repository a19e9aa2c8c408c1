// Package common holds types shared by every other package in this module.
package common

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func init() {
	// Path crosses the wire inside request/response interface{} slots; gob
	// requires every such concrete type to be registered once.
	gob.Register(Path{})
}

const (
	delimiter = "/"
	colon     = ":"
)

// Path is an immutable, hierarchical filesystem name. The root path is the
// empty sequence of components, printed as "/". Components never contain
// "/" or ":".
type Path struct {
	components []string
}

// Root returns the path representing the root directory.
func Root() Path {
	return Path{}
}

// NewPath parses a path string. The string must begin with "/" and must not
// contain ":"; empty components produced by consecutive slashes are dropped.
func NewPath(s string) (Path, error) {
	if s == "" || strings.Contains(s, colon) {
		return Path{}, fmt.Errorf("%w: invalid path string %q", ErrInvalidArgument, s)
	}
	if !strings.HasPrefix(s, delimiter) {
		return Path{}, fmt.Errorf("%w: path string does not begin with %q", ErrInvalidArgument, delimiter)
	}
	parts := strings.Split(s, delimiter)
	components := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		components = append(components, p)
	}
	return Path{components: components}, nil
}

// Join returns a new path formed by appending component to parent. A zero
// Path (including the result of Root()) is treated as the root directory.
func Join(parent Path, component string) (Path, error) {
	if component == "" || strings.Contains(component, delimiter) || strings.Contains(component, colon) {
		return Path{}, fmt.Errorf("%w: invalid path component %q", ErrInvalidArgument, component)
	}
	components := make([]string, 0, len(parent.components)+1)
	components = append(components, parent.components...)
	components = append(components, component)
	return Path{components: components}, nil
}

// GobEncode implements gob.GobEncoder so Path can cross the wire despite its
// unexported field.
func (p Path) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(p.components); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder so Path can cross the wire despite its
// unexported field.
func (p *Path) GobDecode(data []byte) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(&p.components)
}

// IsRoot reports whether p represents the root directory.
func (p Path) IsRoot() bool {
	return len(p.components) == 0
}

// Parent returns the path's parent. It is undefined (returns an error) on
// the root path.
func (p Path) Parent() (Path, error) {
	if p.IsRoot() {
		return Path{}, fmt.Errorf("%w: root path has no parent", ErrInvalidArgument)
	}
	parent := make([]string, len(p.components)-1)
	copy(parent, p.components[:len(p.components)-1])
	return Path{components: parent}, nil
}

// Last returns the final component of the path. It is undefined (returns an
// error) on the root path.
func (p Path) Last() (string, error) {
	if p.IsRoot() {
		return "", fmt.Errorf("%w: root path has no last component", ErrInvalidArgument)
	}
	return p.components[len(p.components)-1], nil
}

// Components returns the path's components in order. The returned slice must
// not be modified.
func (p Path) Components() []string {
	return p.components
}

// Len returns the number of components in the path.
func (p Path) Len() int {
	return len(p.components)
}

// IsSubpath reports whether other's components are a prefix of p's
// components. Every path is a subpath of itself.
func (p Path) IsSubpath(other Path) bool {
	if len(other.components) > len(p.components) {
		return false
	}
	for i, c := range other.components {
		if p.components[i] != c {
			return false
		}
	}
	return true
}

// String renders the path in its canonical "/"-delimited form.
func (p Path) String() string {
	if p.IsRoot() {
		return delimiter
	}
	var b strings.Builder
	for _, c := range p.components {
		b.WriteString(delimiter)
		b.WriteString(c)
	}
	return b.String()
}

// Equal reports whether p and other share the same sequence of components.
func (p Path) Equal(other Path) bool {
	if len(p.components) != len(other.components) {
		return false
	}
	for i, c := range p.components {
		if other.components[i] != c {
			return false
		}
	}
	return true
}

// ToFile resolves p to a host-filesystem path rooted at root. The result
// never escapes root.
func (p Path) ToFile(root string) string {
	// Cleaning the components as an absolute path first collapses any ".."
	// component against "/" rather than against root.
	rel := filepath.Clean(string(filepath.Separator) + filepath.Join(p.components...))
	joined := filepath.Join(root, rel)
	return joined
}

// ListFiles walks directory on the local filesystem and returns every entry
// other than a directory as a Path relative to directory. Traversal order
// is stable within a single call but otherwise unspecified.
func ListFiles(directory string) ([]Path, error) {
	info, err := os.Stat(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, directory)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidArgument, directory)
	}

	var paths []Path
	err = filepath.Walk(directory, func(walked string, walkedInfo os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if walkedInfo.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(directory, walked)
		if err != nil {
			return err
		}
		relSlash := filepath.ToSlash(rel)
		path, err := NewPath(delimiter + relSlash)
		if err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
