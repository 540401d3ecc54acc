package extset

import "github.com/tlsext/engine/catalog"

// PaddingWireID is the real IANA-assigned wire id for padding (RFC 7685).
const PaddingWireID catalog.WireID = 21

// NewPadding builds a built-in descriptor that always emits a
// zero-length body. Register it last among built-ins: within the
// built-in tier, emission order equals registration order, so a
// padding-style extension that wants to run last must be registered
// last.
func NewPadding() *catalog.Descriptor {
	return &catalog.Descriptor{
		WireID:   PaddingWireID,
		Name:     "padding",
		Validity: catalog.NewValidityMask(catalog.ClientHello),
		Recv: func(_ catalog.Accessor, _ []byte) error {
			return nil
		},
		Send: func(_ catalog.Accessor, buf []byte) (catalog.EmitResult, []byte, error) {
			return catalog.EmitZeroLength, buf, nil
		},
	}
}
