package tlsext

import (
	"encoding/binary"

	"github.com/tlsext/engine/catalog"
	"github.com/tlsext/engine/session"
)

// Pack walks internal ids 0..max, selects those set in the session's
// advertisement bitset, and for every one whose descriptor defines Pack
// emits (internal_id:u32 | length:u32 | pack_output:bytes), preceded by
// a 32-bit count of entries emitted. A zero-byte pack output still
// counts as an entry.
func (e *Engine) Pack(sess *session.Session) ([]byte, error) {
	type rec struct {
		id  catalog.InternalID
		out []byte
	}
	var recs []rec

	var packErr error
	sess.Advert.Each(func(id catalog.InternalID) {
		if packErr != nil {
			return
		}
		d, ok := sess.Catalog.LookupByInternal(id, catalog.Any)
		if !ok || d.Pack == nil {
			return
		}
		priv, _ := sess.Table.GetLive(id)
		out, err := d.Pack(priv, nil)
		if err != nil {
			packErr = dispatchErr(ErrParsingError, d.WireID, 0)
			return
		}
		recs = append(recs, rec{id: id, out: out})
	})
	if packErr != nil {
		return nil, packErr
	}

	buf := make([]byte, 4, 4+len(recs)*8)
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(recs)))
	for _, r := range recs {
		var hdr [8]byte
		binary.BigEndian.PutUint32(hdr[0:4], uint32(r.id))
		binary.BigEndian.PutUint32(hdr[4:8], uint32(len(r.out)))
		buf = append(buf, hdr[:]...)
		buf = append(buf, r.out...)
	}
	return buf, nil
}

// Unpack reads a resumption blob produced by Pack and installs each
// entry's unpacked value as resumed state on sess.
func (e *Engine) Unpack(sess *session.Session, blob []byte) error {
	if len(blob) < 4 {
		return dispatchErr(ErrParsingError, 0, 0)
	}
	count := binary.BigEndian.Uint32(blob[0:4])
	blob = blob[4:]

	for i := uint32(0); i < count; i++ {
		if len(blob) < 8 {
			return dispatchErr(ErrParsingError, 0, 0)
		}
		id := catalog.InternalID(binary.BigEndian.Uint32(blob[0:4]))
		size := binary.BigEndian.Uint32(blob[4:8])
		blob = blob[8:]
		if uint64(size) > uint64(len(blob)) {
			return dispatchErr(ErrParsingError, 0, 0)
		}
		body := blob[:size]
		blob = blob[size:]

		d, ok := sess.Catalog.LookupByInternal(id, catalog.Any)
		if !ok || d.Unpack == nil {
			return dispatchErr(ErrParsingError, catalog.WireID(0), 0)
		}
		priv, err := d.Unpack(body)
		if err != nil {
			return dispatchErr(ErrParsingError, d.WireID, 0)
		}
		if err := sess.SetResumedData(id, priv); err != nil {
			return dispatchErr(ErrInternalError, d.WireID, 0)
		}
	}
	return nil
}
