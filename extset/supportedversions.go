package extset

import (
	"errors"

	"github.com/tlsext/engine/catalog"
)

// SupportedVersionsWireID is the real IANA-assigned wire id for
// supported_versions (RFC 8446 §4.2.1).
const SupportedVersionsWireID catalog.WireID = 43

var errOddVersionList = errors.New("supported_versions body has odd length")

// NewSupportedVersions builds a built-in descriptor carrying a list of
// 16-bit version numbers, legal in both ClientHello and HelloRetryRequest
// (illustrative; the real extension's server-hello form is a single
// version rather than a list).
func NewSupportedVersions() *catalog.Descriptor {
	return &catalog.Descriptor{
		WireID:   SupportedVersionsWireID,
		Name:     "supported_versions",
		Validity: catalog.NewValidityMask(catalog.ClientHello, catalog.HelloRetryRequest),
		Recv: func(acc catalog.Accessor, body []byte) error {
			if len(body)%2 != 0 {
				return errOddVersionList
			}
			versions := make([]uint16, 0, len(body)/2)
			for i := 0; i < len(body); i += 2 {
				versions = append(versions, uint16(body[i])<<8|uint16(body[i+1]))
			}
			return acc.SetLive(versions)
		},
		Send: func(acc catalog.Accessor, buf []byte) (catalog.EmitResult, []byte, error) {
			priv, ok := acc.GetLive()
			if !ok {
				return catalog.EmitZeroLength, buf, nil
			}
			versions, _ := priv.([]uint16)
			start := len(buf)
			for _, v := range versions {
				buf = append(buf, byte(v>>8), byte(v))
			}
			return catalog.EmitResult(len(buf) - start), buf, nil
		},
		Pack: func(priv interface{}, _ []byte) ([]byte, error) {
			versions, _ := priv.([]uint16)
			out := make([]byte, 0, len(versions)*2)
			for _, v := range versions {
				out = append(out, byte(v>>8), byte(v))
			}
			return out, nil
		},
		Unpack: func(body []byte) (interface{}, error) {
			if len(body)%2 != 0 {
				return nil, errOddVersionList
			}
			versions := make([]uint16, 0, len(body)/2)
			for i := 0; i < len(body); i += 2 {
				versions = append(versions, uint16(body[i])<<8|uint16(body[i+1]))
			}
			return versions, nil
		},
	}
}
