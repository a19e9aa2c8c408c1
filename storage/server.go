package storage

import (
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/Brijeshlakkad/Distributed-File-System/common"
	"github.com/Brijeshlakkad/Distributed-File-System/internal/metrics"
	"github.com/Brijeshlakkad/Distributed-File-System/rmi"
)

// Server is a storage server: it exposes Storage and Command over two
// skeletons backed by a single Backend, and registers itself with a naming
// server at startup.
//
// A single mutex serializes every backend operation; the backend itself is
// not assumed to be safe for concurrent use.
type Server struct {
	mu      sync.Mutex
	backend Backend
	logger  *zap.Logger

	storageSkel *rmi.Skeleton[Storage]
	commandSkel *rmi.Skeleton[Command]
}

// NewServer builds a storage server over backend. storageAddr and
// commandAddr may be empty to bind system-assigned ports.
func NewServer(backend Backend, storageAddr, commandAddr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{backend: backend, logger: logger}
	s.storageSkel = rmi.NewSkeleton[Storage](s, storageAddr, logger)
	s.commandSkel = rmi.NewSkeleton[Command](s, commandAddr, logger)
	return s
}

// Size implements Storage.
func (s *Server) Size(p common.Path) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.backend.Size(p)
	metrics.StorageOpsTotal.WithLabelValues("size", outcome(err)).Inc()
	return n, err
}

// Read implements Storage.
func (s *Server) Read(p common.Path, offset int64, length int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.backend.Read(p, offset, length)
	metrics.StorageOpsTotal.WithLabelValues("read", outcome(err)).Inc()
	return data, err
}

// Write implements Storage.
func (s *Server) Write(p common.Path, offset int64, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.backend.Write(p, offset, data)
	metrics.StorageOpsTotal.WithLabelValues("write", outcome(err)).Inc()
	return err
}

// Create implements Command.
func (s *Server) Create(p common.Path) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created, err := s.backend.Create(p)
	metrics.StorageOpsTotal.WithLabelValues("create", outcome(err)).Inc()
	return created, err
}

// Delete implements Command.
func (s *Server) Delete(p common.Path) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted, err := s.backend.Delete(p)
	metrics.StorageOpsTotal.WithLabelValues("delete", outcome(err)).Inc()
	return deleted, err
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Start starts both skeletons, builds the advertised Storage/Command
// descriptors using hostname plus the port each skeleton actually bound, and
// registers with the naming server listening at registrationAddr. Any file
// the naming server reports as a duplicate is deleted locally, along with
// ancestor directories that are left empty by the deletion.
func (s *Server) Start(hostname, registrationAddr string) error {
	if err := s.storageSkel.Start(); err != nil {
		return fmt.Errorf("start storage skeleton: %w", err)
	}
	if err := s.commandSkel.Start(); err != nil {
		s.storageSkel.Stop()
		return fmt.Errorf("start command skeleton: %w", err)
	}

	storageAddr, err := advertised(hostname, s.storageSkel.Address())
	if err != nil {
		return err
	}
	commandAddr, err := advertised(hostname, s.commandSkel.Address())
	if err != nil {
		return err
	}

	s.mu.Lock()
	files, err := s.backend.List()
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("list local files: %w", err)
	}

	registration := rmi.NewClientStub("Registration", registrationAddr)
	results, err := registration.Call("Register",
		Descriptor{Address: storageAddr},
		Descriptor{Address: commandAddr},
		files)
	if err != nil {
		return fmt.Errorf("register with naming server at %s: %w", registrationAddr, err)
	}

	duplicates, _ := results[0].([]common.Path)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, dup := range duplicates {
		if _, err := s.backend.Delete(dup); err != nil {
			s.logger.Warn("failed to delete duplicate file reported by naming server",
				zap.String("path", dup.String()), zap.Error(err))
		}
	}

	s.logger.Info("storage server registered",
		zap.String("storage_address", storageAddr),
		zap.String("command_address", commandAddr),
		zap.Int("duplicates_removed", len(duplicates)))
	return nil
}

// Stop shuts down both skeletons.
func (s *Server) Stop() {
	s.storageSkel.Stop()
	s.commandSkel.Stop()
}

func advertised(hostname, boundAddr string) (string, error) {
	_, port, err := net.SplitHostPort(boundAddr)
	if err != nil {
		return "", fmt.Errorf("%w: parse bound address %s: %v", common.ErrIO, boundAddr, err)
	}
	return net.JoinHostPort(hostname, port), nil
}
