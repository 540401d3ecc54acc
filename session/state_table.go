// Package session holds the per-session extension state table and
// advertisement bitset: the bookkeeping the dispatch engine consults
// and mutates while driving one handshake.
package session

import (
	"errors"

	"github.com/tlsext/engine/catalog"
)

// ErrInternalError signals a state-table bug (the table is full when a
// new slot is needed); it is not reachable through ordinary use once a
// session's table is sized to its catalog.
var ErrInternalError = errors.New("session extension state table full")

// ErrUnknownWireID is returned by Session.SetExtData when the wire id
// does not resolve to a registered extension.
var ErrUnknownWireID = errors.New("unknown wire id")

// DefaultTableCapacity is the fixed slot count a session's state table
// is built with unless a caller asks for a different size.
const DefaultTableCapacity = 64

type slot struct {
	id          catalog.InternalID
	liveSet     bool
	livePriv    interface{}
	resumedSet  bool
	resumedPriv interface{}
}

// StateTable is a fixed-capacity per-session vector of slots, each
// holding independently-lived live and resumed private-data pointers
// for one internal id. A single slot may carry both simultaneously.
type StateTable struct {
	slots []slot
}

// NewStateTable allocates a table with the given slot capacity.
func NewStateTable(capacity int) *StateTable {
	if capacity <= 0 {
		capacity = DefaultTableCapacity
	}
	return &StateTable{slots: make([]slot, capacity)}
}

func (t *StateTable) findByID(id catalog.InternalID) int {
	for i := range t.slots {
		if t.slots[i].liveSet || t.slots[i].resumedSet {
			if t.slots[i].id == id {
				return i
			}
		}
	}
	return -1
}

func (t *StateTable) findFreeOrByID(id catalog.InternalID) int {
	if i := t.findByID(id); i >= 0 {
		return i
	}
	for i := range t.slots {
		if !t.slots[i].liveSet && !t.slots[i].resumedSet {
			return i
		}
	}
	return -1
}

// SetLive installs priv as the live private data for id. If the slot
// already held live data, deinit(old) is invoked first.
func (t *StateTable) SetLive(id catalog.InternalID, priv interface{}, deinit func(interface{})) error {
	i := t.findFreeOrByID(id)
	if i < 0 {
		return ErrInternalError
	}
	s := &t.slots[i]
	if s.liveSet && deinit != nil {
		deinit(s.livePriv)
	}
	s.id = id
	s.livePriv = priv
	s.liveSet = true
	return nil
}

// GetLive returns the live private data for id, if set.
func (t *StateTable) GetLive(id catalog.InternalID) (interface{}, bool) {
	for i := range t.slots {
		if t.slots[i].liveSet && t.slots[i].id == id {
			return t.slots[i].livePriv, true
		}
	}
	return nil, false
}

// SetResumed installs priv as the resumed private data for id,
// symmetric to SetLive.
func (t *StateTable) SetResumed(id catalog.InternalID, priv interface{}, deinit func(interface{})) error {
	i := t.findFreeOrByID(id)
	if i < 0 {
		return ErrInternalError
	}
	s := &t.slots[i]
	if s.resumedSet && deinit != nil {
		deinit(s.resumedPriv)
	}
	s.id = id
	s.resumedPriv = priv
	s.resumedSet = true
	return nil
}

// GetResumed returns the resumed private data for id, if set.
func (t *StateTable) GetResumed(id catalog.InternalID) (interface{}, bool) {
	for i := range t.slots {
		if t.slots[i].resumedSet && t.slots[i].id == id {
			return t.slots[i].resumedPriv, true
		}
	}
	return nil, false
}

// UnsetLive clears the live slot for id, invoking deinit on whatever it
// held. A no-op if id has no live data.
func (t *StateTable) UnsetLive(id catalog.InternalID, deinit func(interface{})) {
	for i := range t.slots {
		if t.slots[i].liveSet && t.slots[i].id == id {
			if deinit != nil {
				deinit(t.slots[i].livePriv)
			}
			t.slots[i].liveSet = false
			t.slots[i].livePriv = nil
			return
		}
	}
}

// UnsetResumed clears the resumed slot for id, symmetric to UnsetLive.
func (t *StateTable) UnsetResumed(id catalog.InternalID, deinit func(interface{})) {
	for i := range t.slots {
		if t.slots[i].resumedSet && t.slots[i].id == id {
			if deinit != nil {
				deinit(t.slots[i].resumedPriv)
			}
			t.slots[i].resumedSet = false
			t.slots[i].resumedPriv = nil
			return
		}
	}
}

// DeinitFunc resolves the deinit operation for an internal id; FreeAll
// uses it to release every populated slot at session teardown.
type DeinitFunc func(id catalog.InternalID) func(interface{})

// FreeAll deinitializes both live and resumed pointers of every
// populated slot. Invoked at session teardown.
func (t *StateTable) FreeAll(resolve DeinitFunc) {
	for i := range t.slots {
		s := &t.slots[i]
		if s.liveSet {
			if d := resolve(s.id); d != nil {
				d(s.livePriv)
			}
			s.liveSet = false
			s.livePriv = nil
		}
		if s.resumedSet {
			if d := resolve(s.id); d != nil {
				d(s.resumedPriv)
			}
			s.resumedSet = false
			s.resumedPriv = nil
		}
	}
}
