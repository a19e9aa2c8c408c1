package storage

import (
	"github.com/Brijeshlakkad/Distributed-File-System/common"
	"github.com/Brijeshlakkad/Distributed-File-System/rmi"
)

// StorageStub is the client-side handle naming servers and file clients hold
// for a storage server's Storage interface.
type StorageStub struct {
	rmi.ClientStub
}

// NewStorageStub builds a StorageStub targeting addr.
func NewStorageStub(addr string) StorageStub {
	return StorageStub{rmi.NewClientStub("Storage", addr)}
}

func (s StorageStub) Size(p common.Path) (int64, error) {
	values, err := s.Call("Size", p)
	if err != nil {
		return 0, err
	}
	return values[0].(int64), nil
}

func (s StorageStub) Read(p common.Path, offset int64, length int) ([]byte, error) {
	values, err := s.Call("Read", p, offset, length)
	if err != nil {
		return nil, err
	}
	return values[0].([]byte), nil
}

func (s StorageStub) Write(p common.Path, offset int64, data []byte) error {
	_, err := s.Call("Write", p, offset, data)
	return err
}

// Descriptor returns the wire-serializable handle for this stub, sent during
// storage-server registration.
func (s StorageStub) Descriptor() Descriptor {
	return Descriptor{Address: s.Address()}
}

// CommandStub is the client-side handle the naming server holds for a
// storage server's Command interface.
type CommandStub struct {
	rmi.ClientStub
}

// NewCommandStub builds a CommandStub targeting addr.
func NewCommandStub(addr string) CommandStub {
	return CommandStub{rmi.NewClientStub("Command", addr)}
}

func (c CommandStub) Create(p common.Path) (bool, error) {
	values, err := c.Call("Create", p)
	if err != nil {
		return false, err
	}
	return values[0].(bool), nil
}

func (c CommandStub) Delete(p common.Path) (bool, error) {
	values, err := c.Call("Delete", p)
	if err != nil {
		return false, err
	}
	return values[0].(bool), nil
}

// Descriptor returns the wire-serializable handle for this stub.
func (c CommandStub) Descriptor() Descriptor {
	return Descriptor{Address: c.Address()}
}

// StubsFromDescriptors reconstructs the (Storage, Command) stub pair the
// naming server stores for a registered storage server.
func StubsFromDescriptors(storageDesc, commandDesc Descriptor) (StorageStub, CommandStub) {
	return NewStorageStub(storageDesc.Address), NewCommandStub(commandDesc.Address)
}
