package storage

import "github.com/Brijeshlakkad/Distributed-File-System/common"

// Backend is the pluggable byte-storage layer underneath a storage Server.
// The local-root-filesystem implementation in the local subpackage is the
// reference implementation; other implementations (e.g. s3backend) must
// honor the same contract.
type Backend interface {
	// Size returns the length in bytes of the file at p. Fails with
	// common.ErrNotFound if p does not resolve to a regular file.
	Size(p common.Path) (int64, error)
	// Read returns exactly length bytes starting at offset. Fails with
	// common.ErrNotFound if p is not a regular file, common.ErrIO if it is
	// not readable, and common.ErrOutOfBounds if offset or length is
	// negative or offset+length exceeds the file's size.
	Read(p common.Path, offset int64, length int) ([]byte, error)
	// Write writes data starting at offset, extending the file if
	// offset+len(data) exceeds its current size. Fails with
	// common.ErrOutOfBounds if offset is negative and common.ErrIO if the
	// file is not writable.
	Write(p common.Path, offset int64, data []byte) error
	// Create creates an empty file at p, including any missing parent
	// directories, and reports whether the file was newly created. It
	// always returns false, nil for the root path.
	Create(p common.Path) (created bool, err error)
	// Delete removes the file or directory subtree at p, pruning empty
	// ancestor directories up to but not including the root, and reports
	// whether anything was removed. It always returns false, nil for the
	// root path.
	Delete(p common.Path) (deleted bool, err error)
	// List enumerates every existing file under the backend's root, for
	// the registration protocol.
	List() ([]common.Path, error)
}
