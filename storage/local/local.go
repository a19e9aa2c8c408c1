// Package local implements storage.Backend on top of a root directory on
// the host filesystem, mirroring logical paths directly onto it: logical
// /a/b/c maps to <root>/a/b/c.
package local

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Brijeshlakkad/Distributed-File-System/common"
)

// Backend is the default local-root-filesystem storage backend.
type Backend struct {
	root string
}

// New builds a Backend rooted at root. root must already exist and be a
// directory.
func New(root string) (*Backend, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: storage root %s: %v", common.ErrNotFound, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: storage root %s is not a directory", common.ErrInvalidArgument, root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &Backend{root: abs}, nil
}

// resolve maps a logical Path onto a host filesystem path, guaranteeing the
// result never escapes the backend's root.
func (b *Backend) resolve(p common.Path) (string, error) {
	joined := filepath.Join(b.root, filepath.Join(p.Components()...))
	cleaned := filepath.Clean(joined)
	if cleaned != b.root && !strings.HasPrefix(cleaned, b.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: path escapes storage root", common.ErrInvalidArgument)
	}
	return cleaned, nil
}

func (b *Backend) Size(p common.Path) (int64, error) {
	file, err := b.resolve(p)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: %s", common.ErrNotFound, p)
	}
	return info.Size(), nil
}

func (b *Backend) Read(p common.Path, offset int64, length int) ([]byte, error) {
	file, err := b.resolve(p)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, p)
	}
	if offset < 0 || length < 0 || offset+int64(length) > info.Size() {
		return nil, fmt.Errorf("%w: offset=%d length=%d size=%d", common.ErrOutOfBounds, offset, length, info.Size())
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrIO, err)
	}
	defer f.Close()

	buf := make([]byte, length)
	if length > 0 {
		if _, err := f.ReadAt(buf, offset); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrIO, err)
		}
	}
	return buf, nil
}

func (b *Backend) Write(p common.Path, offset int64, data []byte) error {
	if data == nil {
		return fmt.Errorf("%w: data must not be nil", common.ErrInvalidArgument)
	}
	file, err := b.resolve(p)
	if err != nil {
		return err
	}
	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", common.ErrNotFound, p)
	}
	if offset < 0 {
		return fmt.Errorf("%w: offset=%d", common.ErrOutOfBounds, offset)
	}

	f, err := os.OpenFile(file, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrIO, err)
	}
	defer f.Close()

	if len(data) > 0 {
		if _, err := f.WriteAt(data, offset); err != nil {
			return fmt.Errorf("%w: %v", common.ErrIO, err)
		}
	}
	return nil
}

func (b *Backend) Create(p common.Path) (bool, error) {
	if p.IsRoot() {
		return false, nil
	}
	file, err := b.resolve(p)
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrIO, err)
	}
	if info, err := os.Stat(file); err == nil && info.Mode().IsRegular() {
		return false, nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", common.ErrIO, err)
	}
	f.Close()
	return true, nil
}

func (b *Backend) Delete(p common.Path) (bool, error) {
	if p.IsRoot() {
		return false, nil
	}
	file, err := b.resolve(p)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(file); err != nil {
		return false, nil
	}
	if err := os.RemoveAll(file); err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrIO, err)
	}
	b.pruneEmptyAncestors(filepath.Dir(file))
	return true, nil
}

// pruneEmptyAncestors removes dir and each ancestor directory that became
// empty, stopping at (and never removing) the backend's root.
func (b *Backend) pruneEmptyAncestors(dir string) {
	for {
		cleaned := filepath.Clean(dir)
		if cleaned == b.root || !strings.HasPrefix(cleaned, b.root) {
			return
		}
		entries, err := os.ReadDir(cleaned)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(cleaned); err != nil {
			return
		}
		dir = filepath.Dir(cleaned)
	}
}

func (b *Backend) List() ([]common.Path, error) {
	return common.ListFiles(b.root)
}
