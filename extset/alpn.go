package extset

import (
	"encoding/binary"
	"errors"

	"github.com/tlsext/engine/catalog"
)

// ALPNWireID is the real IANA-assigned wire id for
// application_layer_protocol_negotiation (RFC 7301).
const ALPNWireID catalog.WireID = 16

var errShortALPN = errors.New("alpn body too short")

// NewALPN builds a built-in descriptor carrying a length-prefixed list
// of protocol-name strings.
func NewALPN() *catalog.Descriptor {
	return &catalog.Descriptor{
		WireID: ALPNWireID,
		Name:   "application_layer_protocol_negotiation",
		Validity: catalog.NewValidityMask(
			catalog.ClientHello, catalog.EncryptedExtensions, catalog.TLS12ServerHello),
		Recv: func(acc catalog.Accessor, body []byte) error {
			protos, err := decodeALPN(body)
			if err != nil {
				return err
			}
			return acc.SetLive(protos)
		},
		Send: func(acc catalog.Accessor, buf []byte) (catalog.EmitResult, []byte, error) {
			priv, ok := acc.GetLive()
			if !ok {
				return catalog.EmitZeroLength, buf, nil
			}
			protos, _ := priv.([]string)
			start := len(buf)
			buf = encodeALPN(buf, protos)
			return catalog.EmitResult(len(buf) - start), buf, nil
		},
		Pack: func(priv interface{}, _ []byte) ([]byte, error) {
			protos, _ := priv.([]string)
			return encodeALPN(nil, protos), nil
		},
		Unpack: func(body []byte) (interface{}, error) {
			return decodeALPN(body)
		},
	}
}

func decodeALPN(body []byte) ([]string, error) {
	if len(body) < 2 {
		return nil, errShortALPN
	}
	listLen := binary.BigEndian.Uint16(body[0:2])
	body = body[2:]
	if int(listLen) != len(body) {
		return nil, errShortALPN
	}
	var protos []string
	for len(body) > 0 {
		n := int(body[0])
		body = body[1:]
		if n > len(body) {
			return nil, errShortALPN
		}
		protos = append(protos, string(body[:n]))
		body = body[n:]
	}
	return protos, nil
}

func encodeALPN(buf []byte, protos []string) []byte {
	lenOff := len(buf)
	buf = append(buf, 0, 0)
	start := len(buf)
	for _, p := range protos {
		buf = append(buf, byte(len(p)))
		buf = append(buf, p...)
	}
	binary.BigEndian.PutUint16(buf[lenOff:lenOff+2], uint16(len(buf)-start))
	return buf
}
