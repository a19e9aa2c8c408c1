package naming

import (
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/Brijeshlakkad/Distributed-File-System/common"
	"github.com/Brijeshlakkad/Distributed-File-System/internal/metrics"
	"github.com/Brijeshlakkad/Distributed-File-System/rmi"
	"github.com/Brijeshlakkad/Distributed-File-System/storage"
)

// Server is the naming server: it holds the in-memory directory tree and
// the set of registered storage servers, and exposes them over the Service
// and Registration skeletons.
type Server struct {
	treeMu sync.RWMutex
	root   *node

	stubsMu sync.Mutex
	servers []ServerStubs

	logger *zap.Logger

	serviceSkel      *rmi.Skeleton[Service]
	registrationSkel *rmi.Skeleton[Registration]
}

// NewServer builds an empty naming server. serviceAddr and registrationAddr
// are typically fixed well-known addresses (see NamingStubs).
func NewServer(serviceAddr, registrationAddr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{root: newDirNode(common.Root()), logger: logger}
	s.serviceSkel = rmi.NewSkeleton[Service](s, serviceAddr, logger)
	s.registrationSkel = rmi.NewSkeleton[Registration](s, registrationAddr, logger)
	return s
}

// Start starts both skeletons.
func (s *Server) Start() error {
	if err := s.serviceSkel.Start(); err != nil {
		return fmt.Errorf("start service skeleton: %w", err)
	}
	if err := s.registrationSkel.Start(); err != nil {
		s.serviceSkel.Stop()
		return fmt.Errorf("start registration skeleton: %w", err)
	}
	s.logger.Info("naming server started",
		zap.String("service_address", s.serviceSkel.Address()),
		zap.String("registration_address", s.registrationSkel.Address()))
	return nil
}

// Stop shuts down both skeletons.
func (s *Server) Stop() {
	s.serviceSkel.Stop()
	s.registrationSkel.Stop()
}

// ServiceAddress returns the address the Service interface is bound to.
func (s *Server) ServiceAddress() string {
	return s.serviceSkel.Address()
}

// RegistrationAddress returns the address the Registration interface is
// bound to.
func (s *Server) RegistrationAddress() string {
	return s.registrationSkel.Address()
}

// IsDirectory implements Service.
func (s *Server) IsDirectory(p common.Path) (bool, error) {
	s.treeMu.RLock()
	defer s.treeMu.RUnlock()

	if p.IsRoot() {
		return true, nil
	}
	n, err := s.root.getNodeByPath(p)
	if err != nil {
		return false, err
	}
	return n.stubs == nil, nil
}

// List implements Service.
func (s *Server) List(p common.Path) ([]string, error) {
	s.treeMu.RLock()
	defer s.treeMu.RUnlock()

	n, err := s.root.getNodeByPath(p)
	if err != nil {
		return nil, err
	}
	if n.stubs != nil {
		return nil, fmt.Errorf("%w: %s is a file", common.ErrNotFound, p)
	}
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	return names, nil
}

// CreateFile implements Service.
func (s *Server) CreateFile(p common.Path) (bool, error) {
	if p.IsRoot() {
		return false, nil
	}
	parentPath, err := p.Parent()
	if err != nil {
		return false, err
	}
	name, err := p.Last()
	if err != nil {
		return false, err
	}

	target, err := s.pickStorageServer()
	if err != nil {
		return false, err
	}

	s.treeMu.Lock()
	parent, err := s.root.getNodeByPath(parentPath)
	if err != nil {
		s.treeMu.Unlock()
		return false, err
	}
	if parent.stubs != nil {
		s.treeMu.Unlock()
		return false, fmt.Errorf("%w: %s is not a directory", common.ErrNotFound, parentPath)
	}
	if _, exists := parent.children[name]; exists {
		s.treeMu.Unlock()
		return false, nil
	}
	leaf := &node{path: p, stubs: &target}
	if err := parent.addChild(name, leaf); err != nil {
		s.treeMu.Unlock()
		return false, nil
	}
	s.treeMu.Unlock()

	if _, err := target.Command.Create(p); err != nil {
		s.treeMu.Lock()
		_ = parent.deleteChild(name)
		s.treeMu.Unlock()
		return false, fmt.Errorf("%w: storage server rejected create for %s: %v", common.ErrIO, p, err)
	}
	return true, nil
}

// CreateDirectory implements Service.
func (s *Server) CreateDirectory(p common.Path) (bool, error) {
	if p.IsRoot() {
		return false, nil
	}
	parentPath, err := p.Parent()
	if err != nil {
		return false, err
	}
	name, err := p.Last()
	if err != nil {
		return false, err
	}

	s.treeMu.Lock()
	defer s.treeMu.Unlock()

	parent, err := s.root.getNodeByPath(parentPath)
	if err != nil {
		return false, err
	}
	if parent.stubs != nil {
		return false, fmt.Errorf("%w: %s is not a directory", common.ErrNotFound, parentPath)
	}
	if _, exists := parent.children[name]; exists {
		return false, nil
	}
	if err := parent.addChild(name, newDirNode(p)); err != nil {
		return false, nil
	}
	return true, nil
}

// Delete implements Service.
func (s *Server) Delete(p common.Path) (bool, error) {
	if p.IsRoot() {
		return false, nil
	}
	parentPath, err := p.Parent()
	if err != nil {
		return false, err
	}
	name, err := p.Last()
	if err != nil {
		return false, err
	}

	s.treeMu.Lock()
	parent, err := s.root.getNodeByPath(parentPath)
	if err != nil {
		s.treeMu.Unlock()
		return false, nil
	}
	target, exists := parent.children[name]
	if !exists {
		s.treeMu.Unlock()
		return false, nil
	}
	descendants := target.getDescendants()
	_ = parent.deleteChild(name)
	s.treeMu.Unlock()

	for _, leaf := range descendants {
		if leaf.stubs == nil {
			continue
		}
		if _, err := leaf.stubs.Command.Delete(leaf.path); err != nil {
			s.logger.Warn("storage server delete failed", zap.String("path", leaf.path.String()), zap.Error(err))
		}
	}
	return true, nil
}

// GetStorage implements Service.
func (s *Server) GetStorage(p common.Path) (storage.Descriptor, error) {
	s.treeMu.RLock()
	defer s.treeMu.RUnlock()

	n, err := s.root.getNodeByPath(p)
	if err != nil {
		return storage.Descriptor{}, err
	}
	if n.stubs == nil {
		return storage.Descriptor{}, fmt.Errorf("%w: %s is not a file", common.ErrNotFound, p)
	}
	return n.stubs.Storage.Descriptor(), nil
}

// Register implements Registration.
func (s *Server) Register(storageDesc, commandDesc storage.Descriptor, files []common.Path) ([]common.Path, error) {
	storageStub, commandStub := storage.StubsFromDescriptors(storageDesc, commandDesc)
	stubs := ServerStubs{Storage: storageStub, Command: commandStub}

	s.stubsMu.Lock()
	for _, existing := range s.servers {
		if existing.Equal(stubs) {
			s.stubsMu.Unlock()
			return nil, fmt.Errorf("%w: storage server %s already registered", common.ErrAlreadyRegistered, storageDesc.Address)
		}
	}
	s.servers = append(s.servers, stubs)
	s.stubsMu.Unlock()

	var duplicates []common.Path

	s.treeMu.Lock()
	for _, file := range files {
		if file.IsRoot() {
			continue
		}
		if s.insertFile(file, stubs) {
			continue
		}
		duplicates = append(duplicates, file)
	}
	s.treeMu.Unlock()

	metrics.NamingRegistrationsTotal.Inc()
	if len(duplicates) > 0 {
		metrics.NamingDuplicateFilesTotal.Add(float64(len(duplicates)))
	}
	s.logger.Info("storage server registered",
		zap.String("storage_address", storageDesc.Address),
		zap.Int("files_offered", len(files)),
		zap.Int("duplicates", len(duplicates)))

	return duplicates, nil
}

// insertFile walks from the root along file's components, creating missing
// intermediate directories, and attaches a leaf bound to stubs at the
// terminal component. It reports false (a duplicate) if a node already
// occupies the terminal position, or if a file already occupies one of the
// intermediate positions.
func (s *Server) insertFile(file common.Path, stubs ServerStubs) bool {
	components := file.Components()
	cur := s.root
	pathSoFar := common.Root()
	for _, c := range components[:len(components)-1] {
		pathSoFar, _ = common.Join(pathSoFar, c)
		if child, ok := cur.children[c]; ok {
			if child.stubs != nil {
				// a file already occupies this intermediate position
				return false
			}
			cur = child
			continue
		}
		child := newDirNode(pathSoFar)
		cur.children[c] = child
		cur = child
	}

	name := components[len(components)-1]
	if _, exists := cur.children[name]; exists {
		return false
	}
	cur.children[name] = &node{path: file, stubs: &stubs}
	return true
}

// pickStorageServer chooses uniformly at random among the registered
// storage servers. Fails with common.ErrNotFound if none are registered.
func (s *Server) pickStorageServer() (ServerStubs, error) {
	s.stubsMu.Lock()
	defer s.stubsMu.Unlock()
	if len(s.servers) == 0 {
		return ServerStubs{}, fmt.Errorf("%w: no storage servers registered", common.ErrNotFound)
	}
	return s.servers[rand.Intn(len(s.servers))], nil
}
