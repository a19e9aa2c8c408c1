// Package client provides the filesystem-facing driver that composes the
// naming server's Service interface with the storage servers it points at:
// a metadata lookup followed by a direct data-plane call.
package client

import (
	"fmt"

	"github.com/Brijeshlakkad/Distributed-File-System/common"
	"github.com/Brijeshlakkad/Distributed-File-System/naming"
	"github.com/Brijeshlakkad/Distributed-File-System/storage"
)

// Client is the filesystem-facing driver: every call first asks the naming
// server for placement/metadata, then (for Read/Write) talks directly to the
// owning storage server.
type Client struct {
	service naming.ServiceStub
}

// New builds a Client targeting the naming server's Service address.
func New(namingServiceAddr string) *Client {
	return &Client{service: naming.NewServiceStub(namingServiceAddr)}
}

// Create creates an empty file at path.
func (c *Client) Create(path string) (bool, error) {
	p, err := common.NewPath(path)
	if err != nil {
		return false, err
	}
	return c.service.CreateFile(p)
}

// Mkdir creates a directory at path.
func (c *Client) Mkdir(path string) (bool, error) {
	p, err := common.NewPath(path)
	if err != nil {
		return false, err
	}
	return c.service.CreateDirectory(p)
}

// Delete removes the file or directory subtree at path.
func (c *Client) Delete(path string) (bool, error) {
	p, err := common.NewPath(path)
	if err != nil {
		return false, err
	}
	return c.service.Delete(p)
}

// List returns the immediate child names at path.
func (c *Client) List(path string) ([]string, error) {
	p, err := common.NewPath(path)
	if err != nil {
		return nil, err
	}
	return c.service.List(p)
}

// IsDirectory reports whether path names a directory.
func (c *Client) IsDirectory(path string) (bool, error) {
	p, err := common.NewPath(path)
	if err != nil {
		return false, err
	}
	return c.service.IsDirectory(p)
}

// Read reads length bytes starting at offset from the file at path. It
// looks up the owning storage server on every call, since the naming server
// never tells the client about storage-server churn out of band.
func (c *Client) Read(path string, offset int64, length int) ([]byte, error) {
	storageStub, err := c.storageFor(path)
	if err != nil {
		return nil, err
	}
	p, _ := common.NewPath(path)
	return storageStub.Read(p, offset, length)
}

// Write writes data starting at offset to the file at path.
func (c *Client) Write(path string, offset int64, data []byte) error {
	storageStub, err := c.storageFor(path)
	if err != nil {
		return err
	}
	p, _ := common.NewPath(path)
	return storageStub.Write(p, offset, data)
}

// Size returns the length of the file at path.
func (c *Client) Size(path string) (int64, error) {
	storageStub, err := c.storageFor(path)
	if err != nil {
		return 0, err
	}
	p, _ := common.NewPath(path)
	return storageStub.Size(p)
}

func (c *Client) storageFor(path string) (storage.StorageStub, error) {
	p, err := common.NewPath(path)
	if err != nil {
		return storage.StorageStub{}, err
	}
	desc, err := c.service.GetStorage(p)
	if err != nil {
		return storage.StorageStub{}, fmt.Errorf("resolve storage server for %s: %w", path, err)
	}
	return storage.NewStorageStub(desc.Address), nil
}
