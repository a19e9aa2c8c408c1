package rmi

import (
	"fmt"

	"github.com/Brijeshlakkad/Distributed-File-System/common"
)

// ErrProtocol wraps common.ErrRemote for codec failures in the wire helpers
// (a short or corrupt stream) and for a skeleton that cannot bind its
// listening socket. ClientStub.Call reports its own transport failures, a
// refused connection included, with common.ErrRemote directly.
var ErrProtocol = fmt.Errorf("%w: protocol failure", common.ErrRemote)

// ErrNoSuchMethod wraps common.ErrNotFound for a request naming a method the
// target interface does not declare.
var ErrNoSuchMethod = fmt.Errorf("%w: no such method", common.ErrNotFound)
