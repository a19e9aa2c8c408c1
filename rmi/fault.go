package rmi

import (
	"errors"
	"fmt"

	"github.com/Brijeshlakkad/Distributed-File-System/common"
)

// fault is the serializable cause carried in a non-OK response payload. It
// recovers the original error kind on the client side, matching the
// source's "cause" recovered and re-raised from the status envelope.
type fault struct {
	Kind    string
	Message string
}

func (f fault) Error() string {
	return f.Message
}

var kindSentinels = map[string]error{
	"remote":             common.ErrRemote,
	"not-found":          common.ErrNotFound,
	"invalid-argument":   common.ErrInvalidArgument,
	"out-of-bounds":      common.ErrOutOfBounds,
	"io-error":           common.ErrIO,
	"already-started":    common.ErrAlreadyStarted,
	"already-registered": common.ErrAlreadyRegistered,
}

// toFault converts a Go error into its wire representation, preserving the
// sentinel kind so the caller can recover it with errors.Is after the round
// trip.
func toFault(err error) fault {
	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return fault{Kind: kind, Message: err.Error()}
		}
	}
	return fault{Kind: "", Message: err.Error()}
}

// fromFault reconstructs an error from its wire representation, re-wrapping
// the original sentinel kind when one is known.
func fromFault(f fault) error {
	if sentinel, ok := kindSentinels[f.Kind]; ok {
		return fmt.Errorf("%w: %s", sentinel, f.Message)
	}
	return errors.New(f.Message)
}
