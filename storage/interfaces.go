// Package storage implements the storage server: the Storage and Command
// remote interfaces, and the pluggable backend that actually touches bytes
// on disk (or elsewhere).
package storage

import (
	"encoding/gob"

	"github.com/Brijeshlakkad/Distributed-File-System/common"
)

// Storage is the remote interface clients use to read file contents once
// the naming server has told them which storage server owns the file.
type Storage interface {
	// Size returns the length in bytes of the file at p.
	Size(p common.Path) (int64, error)
	// Read returns exactly length bytes starting at offset.
	Read(p common.Path, offset int64, length int) ([]byte, error)
	// Write writes data starting at offset, extending the file if needed.
	Write(p common.Path, offset int64, data []byte) error
}

// Command is the remote interface the naming server uses to materialize or
// remove files on a storage server's behalf.
type Command interface {
	// Create creates an empty file at p, including any missing parent
	// directories, and reports whether the file was newly created.
	Create(p common.Path) (bool, error)
	// Delete removes the file or directory subtree at p and reports
	// whether the target was removed.
	Delete(p common.Path) (bool, error)
}

// Descriptor is the wire-serializable handle a storage server sends the
// naming server at registration time. The naming server reconstructs
// StorageStub/CommandStub values from it; it is the Go analogue of sending a
// live stub object across an RMI registration call.
type Descriptor struct {
	Address string
}

func init() {
	gob.Register(Descriptor{})
}
