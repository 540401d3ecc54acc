// Package extset provides a handful of illustrative built-in
// descriptors, loosely modeled on real IANA-assigned TLS extensions,
// used by the demo harness to exercise registration, parse, emit, pack,
// and unpack end-to-end. Extension semantics proper (full RFC 6066 SNI
// parsing, full RFC 7301 ALPN negotiation, etc.) are out of scope —
// these are deliberately thin stand-ins.
package extset

import (
	"encoding/binary"
	"errors"

	"github.com/tlsext/engine/catalog"
)

// ServerNameWireID is the real IANA-assigned wire id for server_name (SNI).
const ServerNameWireID catalog.WireID = 0

var errShortServerName = errors.New("server_name body too short")

// NewServerName builds a built-in descriptor for a minimal server_name
// extension: a single DNS hostname, no server-name-list framing.
func NewServerName() *catalog.Descriptor {
	return &catalog.Descriptor{
		WireID:   ServerNameWireID,
		Name:     "server_name",
		Validity: catalog.NewValidityMask(catalog.ClientHello),
		Recv: func(acc catalog.Accessor, body []byte) error {
			if len(body) < 2 {
				return errShortServerName
			}
			nameLen := binary.BigEndian.Uint16(body[0:2])
			if int(nameLen) > len(body)-2 {
				return errShortServerName
			}
			host := string(body[2 : 2+nameLen])
			return acc.SetLive(host)
		},
		Send: func(acc catalog.Accessor, buf []byte) (catalog.EmitResult, []byte, error) {
			priv, ok := acc.GetLive()
			if !ok {
				return 0, buf, nil
			}
			host, _ := priv.(string)
			if host == "" {
				return catalog.EmitZeroLength, buf, nil
			}
			start := len(buf)
			var hdr [2]byte
			binary.BigEndian.PutUint16(hdr[:], uint16(len(host)))
			buf = append(buf, hdr[:]...)
			buf = append(buf, host...)
			return catalog.EmitResult(len(buf) - start), buf, nil
		},
		Pack: func(priv interface{}, _ []byte) ([]byte, error) {
			host, _ := priv.(string)
			return []byte(host), nil
		},
		Unpack: func(body []byte) (interface{}, error) {
			return string(body), nil
		},
		MayOverride: true,
	}
}
