package catalog

import (
	"errors"
	"fmt"
)

// ErrAlreadyRegistered and ErrOutOfSpace mirror the top-level engine's
// sentinels; catalog is a leaf package and cannot import the facade
// package without a cycle, so it carries its own copies; the facade
// package checks for these with errors.Is and returns its own sentinels
// of the same kind in their place. See Builtins.Register / Overlay.Register.
var (
	ErrAlreadyRegistered = errors.New("extension already registered")
	ErrOutOfSpace        = errors.New("internal id space exhausted")
)

// ErrSealed is returned by Builtins.Register once Seal has been called.
var ErrSealed = errors.New("built-in catalog is sealed")

// Builtins is the process-wide, append-only descriptor list. It must be
// fully populated by register_builtin calls before any session is
// created; it is not safe for concurrent registration, the same
// single-threaded-init discipline process-wide tag/type tables are
// built under elsewhere in this codebase.
type Builtins struct {
	byWire     map[WireID]*Descriptor
	ordered    []*Descriptor
	nextID     InternalID
	sealed     bool
}

// NewBuiltins creates an empty built-in registry. Internal ids start at 1;
// 0 is reserved to mean "unknown wire id" throughout the engine.
func NewBuiltins() *Builtins {
	return &Builtins{
		byWire: make(map[WireID]*Descriptor),
		nextID: 1,
	}
}

// Register assigns the next free internal id to d and admits it to the
// built-in tier. It fails if the table has been sealed, if d.WireID
// already exists, or if the internal id space is exhausted.
func (b *Builtins) Register(d *Descriptor) error {
	if b.sealed {
		return fmt.Errorf("%w: wire_id %d", ErrSealed, d.WireID)
	}
	if _, ok := b.byWire[d.WireID]; ok {
		return fmt.Errorf("%w: wire_id %d", ErrAlreadyRegistered, d.WireID)
	}
	if b.nextID >= MaxInternalID {
		return ErrOutOfSpace
	}
	d.InternalID = b.nextID
	b.nextID++
	b.byWire[d.WireID] = d
	b.ordered = append(b.ordered, d)
	return nil
}

// Seal marks the built-in table immutable; every subsequent Register
// call fails with ErrSealed. Not a concurrency guard — callers remain
// responsible for completing registration before spawning
// session-creating threads.
func (b *Builtins) Seal() {
	b.sealed = true
}

func (b *Builtins) Sealed() bool {
	return b.sealed
}

// ByWire looks up a built-in by wire id.
func (b *Builtins) ByWire(id WireID) (*Descriptor, bool) {
	d, ok := b.byWire[id]
	return d, ok
}

// ByInternal linear-scans for a built-in by internal id. The built-in
// table is small and append-only, so this trades a map for simplicity
// over the dense small-integer internal id space.
func (b *Builtins) ByInternal(id InternalID) (*Descriptor, bool) {
	for _, d := range b.ordered {
		if d.InternalID == id {
			return d, true
		}
	}
	return nil, false
}

// Ordered returns built-ins in registration order.
func (b *Builtins) Ordered() []*Descriptor {
	return b.ordered
}

// MaxAllocated reports the highest internal id assigned so far, used by
// Overlay to keep the two tiers' id spaces disjoint.
func (b *Builtins) MaxAllocated() InternalID {
	return b.nextID - 1
}

// Overlay is the session-scoped registration list. It overrides
// built-ins by wire id when permitted and is destroyed with the
// session.
type Overlay struct {
	builtins *Builtins
	byWire   map[WireID]*Descriptor
	ordered  []*Descriptor
	nextID   InternalID
}

// NewOverlay creates an overlay bound to the given built-in tier; new
// internal ids are allocated strictly above whatever either tier has
// already allocated.
func NewOverlay(b *Builtins) *Overlay {
	return &Overlay{
		builtins: b,
		byWire:   make(map[WireID]*Descriptor),
		nextID:   b.MaxAllocated() + 1,
	}
}

// Register admits d to the overlay. It fails with ErrAlreadyRegistered
// if d.WireID collides with a built-in that disallows override (or no
// override flag was supplied), or if the overlay already carries that
// wire id. If d.Validity is zero, the default session mask is applied.
func (o *Overlay) Register(d *Descriptor, override bool) error {
	if bi, ok := o.builtins.ByWire(d.WireID); ok {
		if !override || !bi.MayOverride {
			return fmt.Errorf("%w: wire_id %d collides with built-in", ErrAlreadyRegistered, d.WireID)
		}
	}
	if _, ok := o.byWire[d.WireID]; ok {
		return fmt.Errorf("%w: wire_id %d already in overlay", ErrAlreadyRegistered, d.WireID)
	}
	if o.nextID >= MaxInternalID {
		return ErrOutOfSpace
	}
	if d.Validity == 0 {
		d.Validity = defaultSessionMask
	}
	d.InternalID = o.nextID
	o.nextID++
	o.byWire[d.WireID] = d
	o.ordered = append(o.ordered, d)
	return nil
}

func (o *Overlay) ByWire(id WireID) (*Descriptor, bool) {
	d, ok := o.byWire[id]
	return d, ok
}

func (o *Overlay) ByInternal(id InternalID) (*Descriptor, bool) {
	for _, d := range o.ordered {
		if d.InternalID == id {
			return d, true
		}
	}
	return nil, false
}

func (o *Overlay) Ordered() []*Descriptor {
	return o.ordered
}

// Catalog is the effective, per-session view combining an overlay with
// the process-wide built-ins, overlay-first.
type Catalog struct {
	Builtins *Builtins
	Overlay  *Overlay
}

func New(b *Builtins) *Catalog {
	return &Catalog{Builtins: b, Overlay: NewOverlay(b)}
}

// WireToInternal resolves a wire id to an internal id, overlay first.
// It returns 0 ("unknown, skip") if neither tier carries it.
func (c *Catalog) WireToInternal(wire WireID) InternalID {
	if d, ok := c.Overlay.ByWire(wire); ok {
		return d.InternalID
	}
	if d, ok := c.Builtins.ByWire(wire); ok {
		return d.InternalID
	}
	return 0
}

// LookupByInternal resolves an internal id to its descriptor, overlay
// first, applying the parse-class filter. If the descriptor's
// ParseClass does not match pc (and pc is not Any), lookup returns
// false.
func (c *Catalog) LookupByInternal(id InternalID, pc ParseClass) (*Descriptor, bool) {
	if d, ok := c.Overlay.ByInternal(id); ok {
		if d.matchesClass(pc) {
			return d, true
		}
		return nil, false
	}
	if d, ok := c.Builtins.ByInternal(id); ok {
		if d.matchesClass(pc) {
			return d, true
		}
		return nil, false
	}
	return nil, false
}

// EmitOrder returns descriptors in overlay-then-built-in order, the
// order emit() walks them in.
func (c *Catalog) EmitOrder() []*Descriptor {
	out := make([]*Descriptor, 0, len(c.Overlay.Ordered())+len(c.Builtins.Ordered()))
	out = append(out, c.Overlay.Ordered()...)
	out = append(out, c.Builtins.Ordered()...)
	return out
}

// Name returns the display name for a wire id, searching overlay then
// built-ins, for diagnostics.
func (c *Catalog) Name(wire WireID) (string, bool) {
	if d, ok := c.Overlay.ByWire(wire); ok {
		return d.Name, true
	}
	if d, ok := c.Builtins.ByWire(wire); ok {
		return d.Name, true
	}
	return "", false
}
