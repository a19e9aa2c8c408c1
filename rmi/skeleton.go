// Package rmi implements the RPC substrate: a wire codec and status
// envelope, a server-side Skeleton that dispatches requests to a target
// object by reflection, and the client-side Stub machinery built on top of
// it.
package rmi

import (
	"fmt"
	"net"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/Brijeshlakkad/Distributed-File-System/common"
	"github.com/Brijeshlakkad/Distributed-File-System/internal/metrics"
)

type lifecycleState int

const (
	stateCreated lifecycleState = iota
	stateRunning
	stateStopped
)

// Skeleton binds a listening socket and dispatches incoming requests to a
// target object implementing interface T by reflection. It is the Go
// analogue of an RMI skeleton: the state machine is strictly
// CREATED -> RUNNING -> STOPPED.
type Skeleton[T any] struct {
	mu     sync.Mutex
	state  lifecycleState
	iface  reflect.Type
	target reflect.Value

	addr     string
	listener net.Listener

	logger *zap.Logger
	wg     sync.WaitGroup

	stoppedOnce sync.Once

	// ListenError is called on top-level listener errors. The default
	// implementation returns false, shutting the skeleton down.
	ListenError func(error) bool
	// ServiceError is called on top-level worker errors. The default
	// implementation does nothing.
	ServiceError func(error)
	// Stopped is called exactly once after the skeleton has fully shut
	// down, with the cause (nil for an explicit Stop()).
	Stopped func(error)
}

// NewSkeleton creates a Skeleton bound to the given interface and target.
// addr may be empty, in which case Start assigns a system port on "0.0.0.0".
// NewSkeleton panics (a fatal, non-recoverable construction error) if T is
// not an interface whose methods all declare error as their final return
// value, or if target does not implement T.
func NewSkeleton[T any](target T, addr string, logger *zap.Logger) *Skeleton[T] {
	iface := reflect.TypeOf((*T)(nil)).Elem()
	checkRemoteInterface(iface)
	checkImplements(iface, target)

	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Skeleton[T]{
		state:  stateCreated,
		iface:  iface,
		target: reflect.ValueOf(target),
		addr:   addr,
		logger: logger,
	}
	s.ListenError = func(error) bool { return false }
	s.ServiceError = func(error) {}
	s.Stopped = func(error) {}
	return s
}

// Start binds the listening socket, records the bound address, and spawns
// the listener goroutine. It returns immediately.
func (s *Skeleton[T]) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateCreated {
		return fmt.Errorf("%w: skeleton for %v", common.ErrAlreadyStarted, s.iface)
	}

	listenAddr := s.addr
	if listenAddr == "" {
		listenAddr = "0.0.0.0:0"
	}
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("%w: listen on %s: %v", ErrProtocol, listenAddr, err)
	}

	s.listener = ln
	s.addr = ln.Addr().String()
	s.state = stateRunning
	s.logger.Info("skeleton started", zap.String("interface", s.iface.String()), zap.String("address", s.addr))

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Stop signals the listener to cease accepting, closes the server socket,
// lets in-flight workers run to completion, and invokes Stopped exactly
// once.
func (s *Skeleton[T]) Stop() {
	s.mu.Lock()
	if s.state != stateRunning {
		s.mu.Unlock()
		return
	}
	s.state = stateStopped
	ln := s.listener
	s.mu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}
	s.wg.Wait()
	s.fireStopped(nil)
}

// Address returns the address the skeleton is bound to. It is only
// meaningful after Start has returned successfully.
func (s *Skeleton[T]) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

func (s *Skeleton[T]) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateRunning
}

func (s *Skeleton[T]) fireStopped(cause error) {
	s.stoppedOnce.Do(func() {
		s.logger.Info("skeleton stopped", zap.String("interface", s.iface.String()), zap.Error(cause))
		s.Stopped(cause)
	})
}

// dispatch resolves req.Method on the target by reflection, invokes it, and
// builds the response envelope. It never panics: a panic during invocation
// (signature mismatch surfacing only at Call time, or a method reflection
// forbids calling) is recovered and mapped to StatusUnauthorized.
func (s *Skeleton[T]) dispatch(req request) response {
	method := s.target.MethodByName(req.Method)
	if !method.IsValid() {
		metrics.RPCRequestsTotal.WithLabelValues(req.Method, StatusNotFound.String()).Inc()
		return response{Status: StatusNotFound, Payload: toFault(fmt.Errorf("%w: %s", ErrNoSuchMethod, req.Method))}
	}

	mt := method.Type()
	if mt.NumIn() != len(req.Args) {
		metrics.RPCRequestsTotal.WithLabelValues(req.Method, StatusNotFound.String()).Inc()
		return response{Status: StatusNotFound, Payload: toFault(fmt.Errorf("%w: %s (argument count mismatch)", ErrNoSuchMethod, req.Method))}
	}

	args := make([]reflect.Value, mt.NumIn())
	for i := 0; i < mt.NumIn(); i++ {
		want := mt.In(i)
		got := req.Args[i]
		if got == nil {
			args[i] = reflect.Zero(want)
			continue
		}
		gv := reflect.ValueOf(got)
		if gv.Type() == want {
			args[i] = gv
		} else if gv.Type().AssignableTo(want) {
			args[i] = gv
		} else if gv.Type().ConvertibleTo(want) {
			args[i] = gv.Convert(want)
		} else {
			metrics.RPCRequestsTotal.WithLabelValues(req.Method, StatusNotFound.String()).Inc()
			return response{Status: StatusNotFound, Payload: toFault(fmt.Errorf("%w: %s (argument %d type mismatch)", ErrNoSuchMethod, req.Method, i))}
		}
	}

	results, callErr := safeCall(method, args)
	if callErr != nil {
		metrics.RPCRequestsTotal.WithLabelValues(req.Method, StatusUnauthorized.String()).Inc()
		return response{Status: StatusUnauthorized, Payload: toFault(fmt.Errorf("%w: %v", common.ErrInvalidArgument, callErr))}
	}

	if n := len(results); n > 0 {
		if errVal := results[n-1]; !errVal.IsNil() {
			err, _ := errVal.Interface().(error)
			metrics.RPCRequestsTotal.WithLabelValues(req.Method, StatusBadRequest.String()).Inc()
			return response{Status: StatusBadRequest, Payload: toFault(err)}
		}
		results = results[:n-1]
	}

	values := make([]interface{}, len(results))
	for i, v := range results {
		values[i] = v.Interface()
	}
	metrics.RPCRequestsTotal.WithLabelValues(req.Method, StatusOK.String()).Inc()
	return response{Status: StatusOK, Payload: values}
}

// safeCall invokes method, converting a runtime panic (e.g. a stale stub
// whose decoded argument list superficially type-checked but is not what the
// method actually expects) into an error instead of crashing the worker.
func safeCall(method reflect.Value, args []reflect.Value) (results []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during invocation: %v", r)
		}
	}()
	results = method.Call(args)
	return results, nil
}
