package tlsext

import (
	"github.com/tlsext/engine/catalog"
	"github.com/tlsext/engine/session"
	"github.com/tlsext/engine/tlslog"
)

// Emit dispatches an outbound extension block: walking overlay-then-
// built-in descriptors and invoking each one whose Send is present and
// whose gating checks pass. It returns the extension block including
// its own backpatched outer 16-bit length.
func (e *Engine) Emit(sess *session.Session, msg catalog.MsgTag, pc catalog.ParseClass) ([]byte, error) {
	buf := make([]byte, 0, 256)
	lenOff, buf := reserveU16(buf)

	emittedWire := make(map[catalog.WireID]bool)

	for _, d := range sess.Catalog.EmitOrder() {
		if d.Send == nil {
			e.Log.Debug("skipping extension with no send",
				tlslog.KV("wire_id", d.WireID))
			continue
		}
		if pc != catalog.Any && d.ParseClass != pc {
			continue
		}
		if !d.Validity.Has(msg) {
			continue
		}
		if emittedWire[d.WireID] {
			// an overlay entry for this wire id already ran this walk;
			// the shadowed built-in entry must not also emit.
			continue
		}

		if sess.Role == session.Server {
			if !sess.Advert.IsSet(d.InternalID) {
				continue
			}
		}

		emittedWire[d.WireID] = true

		hdrOff := len(buf)
		buf = putTLVHeader(buf, uint16(d.WireID), 0)
		bodyStart := len(buf)

		result, appended, err := d.Send(sess.Accessor(d.InternalID), buf)
		if err != nil {
			return nil, err
		}
		buf = appended

		var n int
		switch {
		case result == catalog.EmitZeroLength:
			n = 0
		case result < 0:
			// catalog.ErrEmitFatal and any other negative EmitResult are
			// fatal, forwarded without interpretation as a neutral send
			// failure rather than relabeled into an unrelated sentinel.
			return nil, dispatchErr(ErrEmitFailed, d.WireID, msg)
		default:
			n = int(result)
		}
		if n == 0 && result != catalog.EmitZeroLength {
			// nothing appended and no EmitZeroLength: a skip, so the
			// header written above is dropped and no TLV is emitted.
			buf = buf[:hdrOff]
			continue
		}
		if len(buf) != bodyStart+n {
			// defensive: Send must only append what it reports
			buf = buf[:bodyStart+n]
		}
		backpatchU16(buf, hdrOff+2, uint16(n))

		if sess.Role == session.Client {
			if n > 0 || result == catalog.EmitZeroLength {
				sess.Advert.Set(d.InternalID)
			}
		}
	}

	backpatchU16(buf, lenOff, uint16(len(buf)-lenOff-2))
	return buf, nil
}
