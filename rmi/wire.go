package rmi

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/Brijeshlakkad/Distributed-File-System/common"
)

// request is the wire tuple: a method name, the ordered list of parameter
// type descriptors (carried on the wire but not consulted by the skeleton —
// Go has no method overloading, so dispatch keys on name), and the ordered
// argument list.
type request struct {
	Method     string
	ParamTypes []string
	Args       []interface{}
}

// response is the wire tuple: a status code and a single payload value — the
// return value on StatusOK, or a fault describing the cause otherwise.
type response struct {
	Status  ResponseStatus
	Payload interface{}
}

func init() {
	gob.Register(fault{})
	gob.Register([]interface{}(nil))
	// Slice types boxed directly into a request/response interface{} slot
	// (e.g. the Registration.Register file list, Service.List's result)
	// each need their own registration distinct from their element type's.
	gob.Register([]string(nil))
	gob.Register([]common.Path(nil))
}

// writeRequest flushes the request header followed by the argument list, as
// a single gob-encoded object stream. One connection carries exactly one
// request.
func writeRequest(w io.Writer, req request) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(req); err != nil {
		return fmt.Errorf("%w: encode request: %v", ErrProtocol, err)
	}
	return nil
}

func readRequest(r io.Reader) (request, error) {
	var req request
	dec := gob.NewDecoder(r)
	if err := dec.Decode(&req); err != nil {
		return request{}, fmt.Errorf("%w: decode request: %v", ErrProtocol, err)
	}
	return req, nil
}

func writeResponse(w io.Writer, resp response) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("%w: encode response: %v", ErrProtocol, err)
	}
	return nil
}

func readResponse(r io.Reader) (response, error) {
	var resp response
	dec := gob.NewDecoder(r)
	if err := dec.Decode(&resp); err != nil {
		return response{}, fmt.Errorf("%w: decode response: %v", ErrProtocol, err)
	}
	return resp, nil
}
