package tlsext

import (
	"errors"
	"testing"

	"github.com/tlsext/engine/catalog"
	"github.com/tlsext/engine/session"
)

func packableDescriptor(wire catalog.WireID) *catalog.Descriptor {
	return &catalog.Descriptor{
		WireID:   wire,
		Name:     "packable",
		Validity: catalog.NewValidityMask(catalog.ClientHello),
		Send: func(_ catalog.Accessor, buf []byte) (catalog.EmitResult, []byte, error) {
			return catalog.EmitZeroLength, buf, nil
		},
		Pack: func(priv interface{}, buf []byte) ([]byte, error) {
			s, _ := priv.(string)
			return append(buf, []byte(s)...), nil
		},
		Unpack: func(body []byte) (interface{}, error) {
			return string(body), nil
		},
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	d := packableDescriptor(3)
	e := newTestEngine(t, d)
	sess := e.NewSession(session.Client)

	if err := sess.SetExtData(3, "ticket-data"); err != nil {
		t.Fatal(err)
	}
	sess.Advert.Set(d.InternalID)

	blob, err := e.Pack(sess)
	if err != nil {
		t.Fatal(err)
	}

	resumed := e.NewSession(session.Client)
	if err := e.Unpack(resumed, blob); err != nil {
		t.Fatal(err)
	}
	v, ok := resumed.Table.GetResumed(d.InternalID)
	if !ok || v.(string) != "ticket-data" {
		t.Fatalf("expected resumed ticket-data, got %v %v", v, ok)
	}
}

func TestPackSkipsEntriesWithoutAdvert(t *testing.T) {
	d := packableDescriptor(3)
	e := newTestEngine(t, d)
	sess := e.NewSession(session.Client)
	sess.SetExtData(3, "never-advertised")

	blob, err := e.Pack(sess)
	if err != nil {
		t.Fatal(err)
	}
	resumed := e.NewSession(session.Client)
	if err := e.Unpack(resumed, blob); err != nil {
		t.Fatal(err)
	}
	if _, ok := resumed.Table.GetResumed(d.InternalID); ok {
		t.Fatal("expected no resumed data for an un-advertised extension")
	}
}

func TestUnpackTruncatedBlobIsParsingError(t *testing.T) {
	e := newTestEngine(t)
	sess := e.NewSession(session.Client)

	if err := e.Unpack(sess, []byte{0, 0, 0}); !errors.Is(err, ErrParsingError) {
		t.Fatalf("expected ErrParsingError for a too-short blob, got %v", err)
	}
}

func TestUnpackDeclaredSizeExceedingBlobIsParsingError(t *testing.T) {
	e := newTestEngine(t)
	sess := e.NewSession(session.Client)

	blob := []byte{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 50}
	if err := e.Unpack(sess, blob); !errors.Is(err, ErrParsingError) {
		t.Fatalf("expected ErrParsingError for an over-declared size, got %v", err)
	}
}
