package tlsext

import (
	"errors"
	"fmt"

	"github.com/tlsext/engine/catalog"
)

// Sentinel error kinds, per the engine's error taxonomy. Fatal kinds
// abort the handshake; the rest are returned to the caller for
// recoverable handling.
var (
	ErrMalformedExtensionBlock   = errors.New("malformed extension block")
	ErrUnsolicitedExtension      = errors.New("unsolicited extension")
	ErrDuplicateExtension        = errors.New("duplicate extension")
	ErrIllegalExtensionForMessage = errors.New("extension illegal for this handshake message")
	ErrAlreadyRegistered         = errors.New("extension already registered")
	ErrOutOfSpace                = errors.New("internal id space exhausted")
	ErrParsingError              = errors.New("resumption blob parsing error")
	ErrDataNotAvailable          = errors.New("requested extension state not available")
	ErrInternalError             = errors.New("internal error")
	ErrEmitFailed                = errors.New("extension failed to emit")
)

// DispatchError wraps a sentinel error kind with the wire id and
// handshake message that triggered it, for diagnostics, while still
// unwrapping to the sentinel so callers can use errors.Is.
type DispatchError struct {
	Kind   error
	WireID catalog.WireID
	Msg    catalog.MsgTag
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%v: wire_id=%d msg=%s", e.Kind, e.WireID, e.Msg)
}

func (e *DispatchError) Unwrap() error {
	return e.Kind
}

func dispatchErr(kind error, wireID catalog.WireID, msg catalog.MsgTag) error {
	return &DispatchError{Kind: kind, WireID: wireID, Msg: msg}
}
