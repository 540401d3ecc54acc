package tlsext

import "encoding/binary"

// tlvHeaderSize is the 2-byte wire id plus 2-byte length prefixing
// every extension record on the wire.
const tlvHeaderSize = 4

// readTLV pulls one wire_id|length|body record off the front of b,
// returning the remainder. A truncated header or a length extending
// past b is reported via ok=false.
func readTLV(b []byte) (wireID uint16, body []byte, rest []byte, ok bool) {
	if len(b) < tlvHeaderSize {
		return 0, nil, nil, false
	}
	wireID = binary.BigEndian.Uint16(b[0:2])
	length := binary.BigEndian.Uint16(b[2:4])
	b = b[tlvHeaderSize:]
	if int(length) > len(b) {
		return 0, nil, nil, false
	}
	body, rest = b[:length], b[length:]
	ok = true
	return
}

// putTLVHeader appends a wire_id|length header to buf.
func putTLVHeader(buf []byte, wireID uint16, length uint16) []byte {
	var h [tlvHeaderSize]byte
	binary.BigEndian.PutUint16(h[0:2], wireID)
	binary.BigEndian.PutUint16(h[2:4], length)
	return append(buf, h[:]...)
}

// reserveU16 appends a two-byte placeholder, returning its offset for
// a later backpatch.
func reserveU16(buf []byte) (off int, out []byte) {
	off = len(buf)
	out = append(buf, 0, 0)
	return
}

func backpatchU16(buf []byte, off int, v uint16) {
	binary.BigEndian.PutUint16(buf[off:off+2], v)
}
