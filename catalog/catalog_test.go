package catalog

import (
	"errors"
	"testing"
)

func mustRegisterBuiltin(t *testing.T, b *Builtins, wire WireID, mayOverride bool) *Descriptor {
	t.Helper()
	d := &Descriptor{WireID: wire, Name: "test", MayOverride: mayOverride}
	if err := b.Register(d); err != nil {
		t.Fatalf("register builtin %d: %v", wire, err)
	}
	return d
}

func TestBuiltinRegisterDuplicateWireID(t *testing.T) {
	b := NewBuiltins()
	mustRegisterBuiltin(t, b, 10, true)
	if err := b.Register(&Descriptor{WireID: 10}); !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestBuiltinSealRejectsFurtherRegistration(t *testing.T) {
	b := NewBuiltins()
	mustRegisterBuiltin(t, b, 10, true)
	if b.Sealed() {
		t.Fatal("expected table to be unsealed before Seal is called")
	}
	b.Seal()
	if !b.Sealed() {
		t.Fatal("expected Sealed() to report true after Seal")
	}
	if err := b.Register(&Descriptor{WireID: 11}); !errors.Is(err, ErrSealed) {
		t.Fatalf("expected ErrSealed after Seal, got %v", err)
	}
}

func TestBuiltinInternalIDsStrictlyIncreasing(t *testing.T) {
	b := NewBuiltins()
	a := mustRegisterBuiltin(t, b, 1, false)
	c := mustRegisterBuiltin(t, b, 2, false)
	if !(a.InternalID < c.InternalID) {
		t.Fatalf("expected strictly increasing ids, got %d then %d", a.InternalID, c.InternalID)
	}
}

func TestBuiltinOutOfSpace(t *testing.T) {
	b := NewBuiltins()
	b.nextID = MaxInternalID - 1
	if err := b.Register(&Descriptor{WireID: 1}); err != nil {
		t.Fatalf("unexpected error for last slot: %v", err)
	}
	if err := b.Register(&Descriptor{WireID: 2}); !errors.Is(err, ErrOutOfSpace) {
		t.Fatalf("expected ErrOutOfSpace, got %v", err)
	}
}

func TestOverlayOverrideRequiresFlagAndMayOverride(t *testing.T) {
	b := NewBuiltins()
	mustRegisterBuiltin(t, b, 10, true)

	o := NewOverlay(b)
	if err := o.Register(&Descriptor{WireID: 10}, false); !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ALREADY_REGISTERED without override flag, got %v", err)
	}
	if err := o.Register(&Descriptor{WireID: 10}, true); err != nil {
		t.Fatalf("expected override registration to succeed: %v", err)
	}

	b2 := NewBuiltins()
	mustRegisterBuiltin(t, b2, 20, false) // may_override = false
	o2 := NewOverlay(b2)
	if err := o2.Register(&Descriptor{WireID: 20}, true); !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ALREADY_REGISTERED against non-overridable built-in, got %v", err)
	}
}

func TestOverlayInternalIDsAboveBothTiers(t *testing.T) {
	b := NewBuiltins()
	mustRegisterBuiltin(t, b, 1, false)
	bi2 := mustRegisterBuiltin(t, b, 2, false)

	o := NewOverlay(b)
	d := &Descriptor{WireID: 99}
	if err := o.Register(d, false); err != nil {
		t.Fatal(err)
	}
	if d.InternalID <= bi2.InternalID {
		t.Fatalf("overlay id %d must exceed built-in id %d", d.InternalID, bi2.InternalID)
	}
}

func TestOverlayDefaultValidityMask(t *testing.T) {
	b := NewBuiltins()
	o := NewOverlay(b)
	d := &Descriptor{WireID: 5}
	if err := o.Register(d, false); err != nil {
		t.Fatal(err)
	}
	want := NewValidityMask(ClientHello, TLS12ServerHello, EncryptedExtensions)
	if d.Validity != want {
		t.Fatalf("expected default session mask %v, got %v", want, d.Validity)
	}
}

func TestCatalogWireToInternalOverlayPrecedence(t *testing.T) {
	b := NewBuiltins()
	mustRegisterBuiltin(t, b, 10, true)

	c := New(b)
	if err := c.Overlay.Register(&Descriptor{WireID: 10}, true); err != nil {
		t.Fatal(err)
	}
	id := c.WireToInternal(10)
	if _, ok := c.LookupByInternal(id, Any); !ok {
		t.Fatal("expected overlay descriptor to resolve")
	}
	if od, _ := c.Overlay.ByWire(10); od.InternalID != id {
		t.Fatalf("expected lookup to resolve to the overlay entry")
	}
}

func TestCatalogUnknownWireIDReturnsZero(t *testing.T) {
	b := NewBuiltins()
	c := New(b)
	if id := c.WireToInternal(9999); id != 0 {
		t.Fatalf("expected 0 for unknown wire id, got %d", id)
	}
}

func TestCatalogEmitOrderOverlayFirst(t *testing.T) {
	b := NewBuiltins()
	bi := mustRegisterBuiltin(t, b, 1, false)
	c := New(b)
	ov := &Descriptor{WireID: 2}
	if err := c.Overlay.Register(ov, false); err != nil {
		t.Fatal(err)
	}
	order := c.EmitOrder()
	if len(order) != 2 || order[0] != ov || order[1] != bi {
		t.Fatalf("expected overlay before built-in, got %+v", order)
	}
}

func TestParseClassFiltering(t *testing.T) {
	b := NewBuiltins()
	d := &Descriptor{WireID: 1, ParseClass: TLSEarly}
	if err := b.Register(d); err != nil {
		t.Fatal(err)
	}
	c := New(b)
	if _, ok := c.LookupByInternal(d.InternalID, TLSLate); ok {
		t.Fatal("expected lookup to fail for mismatched parse class")
	}
	if _, ok := c.LookupByInternal(d.InternalID, Any); !ok {
		t.Fatal("expected ANY to match any parse class")
	}
	if _, ok := c.LookupByInternal(d.InternalID, TLSEarly); !ok {
		t.Fatal("expected exact parse class match to succeed")
	}
}
