// Package tlsext is the TLS hello extension registry and dispatch
// engine: it owns the process-wide built-in descriptor catalog,
// drives inbound/outbound extension block processing for a session,
// and packs/unpacks per-session extension state for resumption.
//
// The surrounding record layer, key derivation, handshake framing
// above the extension block, and individual extension semantics are
// external collaborators; this package dispatches to them through the
// catalog.Descriptor capability contract and never interprets their
// payloads itself.
package tlsext

import (
	"errors"

	"github.com/tlsext/engine/catalog"
	"github.com/tlsext/engine/session"
	"github.com/tlsext/engine/tlslog"
)

// Engine is the dispatch core. It is stateless across sessions beyond
// the process-wide built-in catalog it was constructed with; all
// per-handshake state lives on the session.Session passed to each call.
type Engine struct {
	Builtins *catalog.Builtins
	Log      *tlslog.Logger
}

// New creates an engine bound to builtins. The caller must complete all
// process-wide registration (RegisterBuiltin) before creating any
// session; logger may be nil, in which case diagnostics are discarded.
func New(builtins *catalog.Builtins, logger *tlslog.Logger) *Engine {
	if logger == nil {
		logger = tlslog.NewDiscard()
	}
	return &Engine{Builtins: builtins, Log: logger}
}

// RegisterBuiltin performs process-wide registration of d. Not safe for
// concurrent use; callers must finish all such registrations before any
// session is created.
func (e *Engine) RegisterBuiltin(d *catalog.Descriptor) error {
	if err := e.Builtins.Register(d); err != nil {
		switch {
		case errors.Is(err, catalog.ErrSealed):
			return dispatchErr(ErrInternalError, d.WireID, 0)
		case errIsAlready(err):
			return dispatchErr(ErrAlreadyRegistered, d.WireID, 0)
		default:
			return dispatchErr(ErrOutOfSpace, d.WireID, 0)
		}
	}
	return nil
}

// RegisterSession performs session-level registration of d against
// sess's overlay.
func (e *Engine) RegisterSession(sess *session.Session, d *catalog.Descriptor, override bool) error {
	if err := sess.Catalog.Overlay.Register(d, override); err != nil {
		if errIsAlready(err) {
			return dispatchErr(ErrAlreadyRegistered, d.WireID, 0)
		}
		return dispatchErr(ErrOutOfSpace, d.WireID, 0)
	}
	return nil
}

// NewSession creates a session bound to this engine's built-in catalog.
func (e *Engine) NewSession(role session.Role) *session.Session {
	return session.New(e.Builtins, role)
}

// Name returns the display name registered against wire, for
// diagnostics.
func (e *Engine) Name(sess *session.Session, wire catalog.WireID) (string, bool) {
	return sess.Catalog.Name(wire)
}

// GetExtData retrieves the live private data sess holds for wire,
// returning ErrDataNotAvailable if the extension has no live data set
// (or wire does not resolve at all).
func (e *Engine) GetExtData(sess *session.Session, wire catalog.WireID) (interface{}, error) {
	priv, ok := sess.GetExtData(wire)
	if !ok {
		return nil, dispatchErr(ErrDataNotAvailable, wire, 0)
	}
	return priv, nil
}

func errIsAlready(err error) bool {
	return errors.Is(err, catalog.ErrAlreadyRegistered)
}
