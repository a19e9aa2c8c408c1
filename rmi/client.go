package rmi

import (
	"fmt"
	"net"
	"reflect"

	"github.com/Brijeshlakkad/Distributed-File-System/common"
)

// ClientStub is the shared core of every hand-written stub type in this
// module (naming.ServiceStub, naming.RegistrationStub, storage.StorageStub,
// storage.CommandStub, ...). Go has no runtime facility for synthesizing an
// arbitrary interface implementation the way java.lang.reflect.Proxy does,
// so each remote interface gets one small concrete stub type;
// ClientStub factors out everything that does not depend on the interface's
// method signatures: the network round trip, equality, and string form.
type ClientStub struct {
	iface string // the remote interface's name, for equality and diagnostics
	addr  string
}

// NewClientStub builds a ClientStub bound to the given remote interface name
// and target address.
func NewClientStub(ifaceName, addr string) ClientStub {
	return ClientStub{iface: ifaceName, addr: addr}
}

// Address returns the stub's fixed target address.
func (c ClientStub) Address() string {
	return c.addr
}

// Equal is the local implementation of the source's stub.equals: two stubs
// are equal iff their interface and target address match. It never opens a
// connection.
func (c ClientStub) Equal(other ClientStub) bool {
	return c.iface == other.iface && c.addr == other.addr
}

// String is the local implementation of the source's stub.toString.
func (c ClientStub) String() string {
	return fmt.Sprintf("%s@%s", c.iface, c.addr)
}

// Call performs one remote method invocation: open a connection, write the
// request, read the response, and return the decoded result values on
// success. On any non-OK status, the original cause is reconstructed and
// returned as the error. A transport failure is always reported as
// common.ErrRemote.
func (c ClientStub) Call(method string, args ...interface{}) ([]interface{}, error) {
	conn, err := net.Dial("tcp", c.addr)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", common.ErrRemote, c.addr, err)
	}
	defer conn.Close()

	paramTypes := make([]string, len(args))
	for i, a := range args {
		paramTypes[i] = reflect.TypeOf(a).String()
	}

	if err := writeRequest(conn, request{Method: method, ParamTypes: paramTypes, Args: args}); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemote, err)
	}

	resp, err := readResponse(conn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemote, err)
	}

	if resp.Status != StatusOK {
		f, ok := resp.Payload.(fault)
		if !ok {
			return nil, fmt.Errorf("%w: call to %s failed with status %s", common.ErrRemote, method, resp.Status)
		}
		return nil, fromFault(f)
	}

	values, _ := resp.Payload.([]interface{})
	return values, nil
}
