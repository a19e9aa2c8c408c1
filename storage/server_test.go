package storage

import (
	"testing"

	"github.com/Brijeshlakkad/Distributed-File-System/common"
	"github.com/Brijeshlakkad/Distributed-File-System/rmi"
	"github.com/Brijeshlakkad/Distributed-File-System/storage/local"
)

// fakeRegistration stands in for the naming server's Registration interface
// during storage-server tests: it records what it was offered and returns a
// caller-supplied duplicate list.
type fakeRegistration struct {
	duplicates []common.Path
	offered    []common.Path
}

func (f *fakeRegistration) Register(storageDesc, commandDesc Descriptor, files []common.Path) ([]common.Path, error) {
	f.offered = files
	return f.duplicates, nil
}

func startFakeRegistration(t *testing.T, reg *fakeRegistration) *rmi.Skeleton[registrationIface] {
	t.Helper()
	sk := rmi.NewSkeleton[registrationIface](reg, "", nil)
	if err := sk.Start(); err != nil {
		t.Fatalf("start fake registration skeleton: %v", err)
	}
	t.Cleanup(sk.Stop)
	return sk
}

// registrationIface mirrors naming.Registration's single method without
// importing the naming package, avoiding a storage<->naming import cycle in
// this test just as the production registration call in Server.Start does.
type registrationIface interface {
	Register(storageDesc, commandDesc Descriptor, files []common.Path) ([]common.Path, error)
}

func TestServerRegistersAndDeletesDuplicates(t *testing.T) {
	backend, err := local.New(t.TempDir())
	if err != nil {
		t.Fatalf("local.New: %v", err)
	}

	dup, _ := common.NewPath("/dup")
	if _, err := backend.Create(dup); err != nil {
		t.Fatalf("Create: %v", err)
	}
	keep, _ := common.NewPath("/keep")
	if _, err := backend.Create(keep); err != nil {
		t.Fatalf("Create: %v", err)
	}

	reg := &fakeRegistration{duplicates: []common.Path{dup}}
	regSkel := startFakeRegistration(t, reg)

	server := NewServer(backend, "", "", nil)
	t.Cleanup(server.Stop)

	if err := server.Start("127.0.0.1", regSkel.Address()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if len(reg.offered) != 2 {
		t.Fatalf("offered %v, want 2 files", reg.offered)
	}

	if _, err := backend.Size(dup); err == nil {
		t.Fatalf("expected duplicate file to have been deleted locally")
	}
	if _, err := backend.Size(keep); err != nil {
		t.Fatalf("expected non-duplicate file to survive: %v", err)
	}
}

func TestServerStorageAndCommandRoundTrip(t *testing.T) {
	backend, err := local.New(t.TempDir())
	if err != nil {
		t.Fatalf("local.New: %v", err)
	}
	server := NewServer(backend, "", "", nil)
	t.Cleanup(server.Stop)

	reg := &fakeRegistration{}
	regSkel := startFakeRegistration(t, reg)
	if err := server.Start("127.0.0.1", regSkel.Address()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	storageStub := NewStorageStub(server.storageSkel.Address())
	commandStub := NewCommandStub(server.commandSkel.Address())

	p, _ := common.NewPath("/greeting")
	created, err := commandStub.Create(p)
	if err != nil || !created {
		t.Fatalf("Create() = %v, %v, want true, nil", created, err)
	}

	if err := storageStub.Write(p, 0, []byte("hi")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := storageStub.Read(p, 0, 2)
	if err != nil || string(data) != "hi" {
		t.Fatalf("Read() = %q, %v, want hi, nil", data, err)
	}

	deleted, err := commandStub.Delete(p)
	if err != nil || !deleted {
		t.Fatalf("Delete() = %v, %v, want true, nil", deleted, err)
	}
}
