package naming

import (
	"github.com/Brijeshlakkad/Distributed-File-System/common"
	"github.com/Brijeshlakkad/Distributed-File-System/rmi"
	"github.com/Brijeshlakkad/Distributed-File-System/storage"
)

// ServiceStub is the client-side handle for a naming server's Service
// interface.
type ServiceStub struct {
	rmi.ClientStub
}

// NewServiceStub builds a ServiceStub targeting addr.
func NewServiceStub(addr string) ServiceStub {
	return ServiceStub{rmi.NewClientStub("Service", addr)}
}

func (s ServiceStub) IsDirectory(p common.Path) (bool, error) {
	values, err := s.Call("IsDirectory", p)
	if err != nil {
		return false, err
	}
	return values[0].(bool), nil
}

func (s ServiceStub) List(p common.Path) ([]string, error) {
	values, err := s.Call("List", p)
	if err != nil {
		return nil, err
	}
	return values[0].([]string), nil
}

func (s ServiceStub) CreateFile(p common.Path) (bool, error) {
	values, err := s.Call("CreateFile", p)
	if err != nil {
		return false, err
	}
	return values[0].(bool), nil
}

func (s ServiceStub) CreateDirectory(p common.Path) (bool, error) {
	values, err := s.Call("CreateDirectory", p)
	if err != nil {
		return false, err
	}
	return values[0].(bool), nil
}

func (s ServiceStub) Delete(p common.Path) (bool, error) {
	values, err := s.Call("Delete", p)
	if err != nil {
		return false, err
	}
	return values[0].(bool), nil
}

func (s ServiceStub) GetStorage(p common.Path) (storage.Descriptor, error) {
	values, err := s.Call("GetStorage", p)
	if err != nil {
		return storage.Descriptor{}, err
	}
	return values[0].(storage.Descriptor), nil
}

// RegistrationStub is the client-side handle storage servers use to
// register with the naming server.
type RegistrationStub struct {
	rmi.ClientStub
}

// NewRegistrationStub builds a RegistrationStub targeting addr.
func NewRegistrationStub(addr string) RegistrationStub {
	return RegistrationStub{rmi.NewClientStub("Registration", addr)}
}

func (r RegistrationStub) Register(storageDesc, commandDesc storage.Descriptor, files []common.Path) ([]common.Path, error) {
	values, err := r.Call("Register", storageDesc, commandDesc, files)
	if err != nil {
		return nil, err
	}
	dups, _ := values[0].([]common.Path)
	return dups, nil
}
