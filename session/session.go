package session

import (
	"github.com/google/uuid"

	"github.com/tlsext/engine/catalog"
)

// Role distinguishes client-side from server-side dispatch policy: the
// two sides gate the advertisement bitset in opposite directions.
type Role uint8

const (
	Client Role = iota
	Server
)

// Session is the per-handshake context the dispatch engine drives: an
// identity, a role, the effective descriptor catalog (built-ins plus
// this session's overlay), the extension state table, and the
// advertisement bitset.
type Session struct {
	ID      uuid.UUID
	Role    Role
	Catalog *catalog.Catalog
	Table   *StateTable
	Advert  *AdvertSet
}

// New creates a session bound to the given built-in tier. Each session
// gets its own overlay, state table, and advertisement bitset.
func New(builtins *catalog.Builtins, role Role) *Session {
	return &Session{
		ID:      uuid.New(),
		Role:    role,
		Catalog: catalog.New(builtins),
		Table:   NewStateTable(DefaultTableCapacity),
		Advert:  NewAdvertSet(),
	}
}

// deinitFor resolves the Deinit operation for an internal id by
// consulting the session's catalog; used to wire StateTable.FreeAll and
// the set_live/set_resumed replace-on-collision path to descriptor
// ownership semantics.
func (s *Session) deinitFor(id catalog.InternalID) func(interface{}) {
	d, ok := s.Catalog.LookupByInternal(id, catalog.Any)
	if !ok || d.Deinit == nil {
		return nil
	}
	return d.Deinit
}

// SetLiveData installs priv as the live private data for id, deinit'ing
// any prior value via the owning descriptor.
func (s *Session) SetLiveData(id catalog.InternalID, priv interface{}) error {
	return s.Table.SetLive(id, priv, s.deinitFor(id))
}

// SetResumedData is symmetric to SetLiveData for the resumed slot.
func (s *Session) SetResumedData(id catalog.InternalID, priv interface{}) error {
	return s.Table.SetResumed(id, priv, s.deinitFor(id))
}

// UnsetLiveData clears the live slot for id.
func (s *Session) UnsetLiveData(id catalog.InternalID) {
	s.Table.UnsetLive(id, s.deinitFor(id))
}

// UnsetResumedData clears the resumed slot for id.
func (s *Session) UnsetResumedData(id catalog.InternalID) {
	s.Table.UnsetResumed(id, s.deinitFor(id))
}

// Close tears the session down, deinitializing every populated slot.
func (s *Session) Close() {
	s.Table.FreeAll(s.deinitFor)
}

// SetExtData and GetExtData implement the public wire-id-keyed
// accessors, layered over the internal-id-keyed state table.
func (s *Session) SetExtData(wire catalog.WireID, priv interface{}) error {
	id := s.Catalog.WireToInternal(wire)
	if id == 0 {
		return ErrUnknownWireID
	}
	return s.SetLiveData(id, priv)
}

func (s *Session) GetExtData(wire catalog.WireID) (interface{}, bool) {
	id := s.Catalog.WireToInternal(wire)
	if id == 0 {
		return nil, false
	}
	return s.Table.GetLive(id)
}

// accessor implements catalog.Accessor, binding one extension's Recv/Send
// calls to its own slot in this session's state table.
type accessor struct {
	sess *Session
	id   catalog.InternalID
}

func (a accessor) GetLive() (interface{}, bool) {
	return a.sess.Table.GetLive(a.id)
}

func (a accessor) SetLive(priv interface{}) error {
	return a.sess.SetLiveData(a.id, priv)
}

func (a accessor) GetResumed() (interface{}, bool) {
	return a.sess.Table.GetResumed(a.id)
}

// Accessor returns the catalog.Accessor a descriptor's Recv/Send
// operations should be invoked with for the given internal id.
func (s *Session) Accessor(id catalog.InternalID) catalog.Accessor {
	return accessor{sess: s, id: id}
}
