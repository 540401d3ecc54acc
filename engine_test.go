package tlsext

import (
	"errors"
	"testing"

	"github.com/tlsext/engine/catalog"
	"github.com/tlsext/engine/session"
)

func TestGetExtDataMissReturnsErrDataNotAvailable(t *testing.T) {
	d := echoDescriptor(5, catalog.NewValidityMask(catalog.ClientHello))
	e := newTestEngine(t, d)
	sess := e.NewSession(session.Client)

	if _, err := e.GetExtData(sess, 5); !errors.Is(err, ErrDataNotAvailable) {
		t.Fatalf("expected ErrDataNotAvailable for an unset extension, got %v", err)
	}
	if _, err := e.GetExtData(sess, 999); !errors.Is(err, ErrDataNotAvailable) {
		t.Fatalf("expected ErrDataNotAvailable for an unknown wire id, got %v", err)
	}
}

func TestRegisterBuiltinAfterSealIsInternalError(t *testing.T) {
	b := catalog.NewBuiltins()
	b.Seal()
	e := New(b, nil)

	err := e.RegisterBuiltin(&catalog.Descriptor{WireID: 1})
	if !errors.Is(err, ErrInternalError) {
		t.Fatalf("expected ErrInternalError for registration after seal, got %v", err)
	}
}

func TestGetExtDataReturnsInstalledValue(t *testing.T) {
	d := echoDescriptor(5, catalog.NewValidityMask(catalog.ClientHello))
	e := newTestEngine(t, d)
	sess := e.NewSession(session.Client)

	if err := sess.SetExtData(5, []byte("hi")); err != nil {
		t.Fatal(err)
	}
	v, err := e.GetExtData(sess, 5)
	if err != nil {
		t.Fatal(err)
	}
	if string(v.([]byte)) != "hi" {
		t.Fatalf("expected hi, got %v", v)
	}
}
