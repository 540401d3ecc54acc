package tlsext

import (
	"github.com/tlsext/engine/catalog"
	"github.com/tlsext/engine/session"
	"github.com/tlsext/engine/tlslog"
)

// Parse dispatches an inbound extension block already stripped of its
// outer 16-bit length by the framer, running each TLV through the
// unknown/unsolicited/validity/duplicate/recv sequence.
func (e *Engine) Parse(sess *session.Session, msg catalog.MsgTag, pc catalog.ParseClass, block []byte) error {
	for len(block) > 0 {
		wire, body, rest, ok := readTLV(block)
		if !ok {
			return dispatchErr(ErrMalformedExtensionBlock, catalog.WireID(wire), msg)
		}
		block = rest

		wireID := catalog.WireID(wire)
		id := sess.Catalog.WireToInternal(wireID)
		if id == 0 {
			// Unknown wire id: forward compatibility, skip silently.
			e.Log.Debug("skipping unknown extension", tlslog.KV("wire_id", wireID))
			continue
		}

		if sess.Role == session.Client {
			if !sess.Advert.IsSet(id) {
				return dispatchErr(ErrUnsolicitedExtension, wireID, msg)
			}
		}

		d, found := sess.Catalog.LookupByInternal(id, pc)
		if !found || d.Recv == nil {
			e.Log.Debug("skipping extension with no recv for this pass",
				tlslog.KV("wire_id", wireID))
			continue
		}

		if !d.Validity.Has(msg) {
			return dispatchErr(ErrIllegalExtensionForMessage, wireID, msg)
		}

		if sess.Role == session.Server {
			if sess.Advert.IsSet(id) {
				return dispatchErr(ErrDuplicateExtension, wireID, msg)
			}
			sess.Advert.Set(id)
		}

		if err := d.Recv(sess.Accessor(id), body); err != nil {
			return err
		}
	}
	return nil
}
