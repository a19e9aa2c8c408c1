// Package naming implements the naming server: the in-memory directory
// tree, the client-facing Service interface, and the storage-server-facing
// Registration interface.
package naming

import (
	"github.com/Brijeshlakkad/Distributed-File-System/common"
	"github.com/Brijeshlakkad/Distributed-File-System/storage"
)

// Service is the remote interface clients use to navigate and mutate the
// naming tree.
type Service interface {
	// IsDirectory reports whether p names a directory. Returns true for the
	// root. Fails with common.ErrNotFound if p names neither a file nor a
	// directory.
	IsDirectory(p common.Path) (bool, error)
	// List returns the immediate child names at p. Fails with
	// common.ErrNotFound if p is a file or does not exist.
	List(p common.Path) ([]string, error)
	// CreateFile creates an empty file at p on a randomly chosen registered
	// storage server and reports whether it was newly created. It always
	// returns false for the root.
	CreateFile(p common.Path) (bool, error)
	// CreateDirectory creates a directory at p and reports whether it was
	// newly created. It always returns false for the root.
	CreateDirectory(p common.Path) (bool, error)
	// Delete removes the subtree at p from the naming tree and issues
	// matching delete commands to the owning storage servers. Returns false
	// if p is absent or is the root.
	Delete(p common.Path) (bool, error)
	// GetStorage returns the storage stub backing the file at p. Fails with
	// common.ErrNotFound if p is not a registered file.
	GetStorage(p common.Path) (storage.Descriptor, error)
}

// Registration is the remote interface storage servers use to join the
// filesystem.
type Registration interface {
	// Register records storageDesc/commandDesc as a new storage server
	// offering files, and folds each of files into the naming tree. It
	// fails with common.ErrAlreadyRegistered if this (storage, command)
	// pair has already registered. It returns the subset of files that
	// were already owned by another storage server; the caller must delete
	// these locally.
	Register(storageDesc, commandDesc storage.Descriptor, files []common.Path) ([]common.Path, error)
}

// NamingStubs holds the well-known ports the naming server listens on.
// Clients dial ServicePort; storage servers dial RegistrationPort at
// startup. Storage servers themselves use system-assigned ports.
var NamingStubs = struct {
	ServicePort      int
	RegistrationPort int
}{
	ServicePort:      6000,
	RegistrationPort: 6001,
}
