// Package catalog holds the static capability registry for TLS hello
// extensions: the process-wide built-in descriptor list and the
// per-session overlay that may override it.
package catalog

// WireID is the IANA-assigned on-the-wire TLS extension type.
type WireID uint16

// InternalID is a dense, small integer assigned by this engine for use
// as a bitset index and state-table key. Zero means "unknown, skip".
type InternalID uint32

// MaxInternalID bounds the internal id space; strictly increasing
// allocation fails once it is exhausted.
const MaxInternalID InternalID = 256

// MsgTag identifies the handshake message carrying an extension block.
type MsgTag uint8

const (
	ClientHello MsgTag = iota
	TLS12ServerHello
	TLS13ServerHello
	EncryptedExtensions
	Certificate
	CertificateRequest
	NewSessionTicket
	HelloRetryRequest

	msgTagCount
)

func (m MsgTag) String() string {
	switch m {
	case ClientHello:
		return "CLIENT_HELLO"
	case TLS12ServerHello:
		return "TLS12_SERVER_HELLO"
	case TLS13ServerHello:
		return "TLS13_SERVER_HELLO"
	case EncryptedExtensions:
		return "ENCRYPTED_EXTENSIONS"
	case Certificate:
		return "CERTIFICATE"
	case CertificateRequest:
		return "CERTIFICATE_REQUEST"
	case NewSessionTicket:
		return "NEW_SESSION_TICKET"
	case HelloRetryRequest:
		return "HELLO_RETRY_REQUEST"
	}
	return "UNKNOWN_MESSAGE"
}

// ValidityMask is a bitset over MsgTag values.
type ValidityMask uint16

// Has reports whether msg is set in the mask.
func (v ValidityMask) Has(msg MsgTag) bool {
	return v&(1<<uint(msg)) != 0
}

// NewValidityMask builds a mask from a list of messages.
func NewValidityMask(msgs ...MsgTag) (v ValidityMask) {
	for _, m := range msgs {
		v |= 1 << uint(m)
	}
	return
}

// defaultSessionMask is applied to a session registration that supplies
// no validity bits, per spec.
var defaultSessionMask = NewValidityMask(ClientHello, TLS12ServerHello, EncryptedExtensions)

// ParseClass filters which extensions a caller wants processed in a
// given parse/emit pass.
type ParseClass uint8

const (
	Any ParseClass = iota
	Application
	TLSEarly
	TLSLate
)

// EmitResult is the return value of a descriptor's Send operation.
// Non-negative values are the number of bytes appended to the buffer;
// EmitZeroLength is a sentinel meaning "present but empty", distinct
// from both an error and a skip.
type EmitResult int

const EmitZeroLength EmitResult = -1

// ErrEmitFatal is returned by Send to signal a fatal emission failure;
// any other negative EmitResult is treated the same way.
const ErrEmitFatal EmitResult = -2

// Accessor is the narrow view of session state a descriptor's Recv and
// Send operations are handed: get/set this extension's own live data
// and read its resumed data, without exposing the rest of the session.
type Accessor interface {
	GetLive() (interface{}, bool)
	SetLive(priv interface{}) error
	GetResumed() (interface{}, bool)
}

// RecvFunc parses the body of one TLV for this extension. A non-nil
// error is a fatal, abort-the-handshake error.
type RecvFunc func(acc Accessor, body []byte) error

// SendFunc appends this extension's TLV body to buf and reports how
// many bytes it appended, EmitZeroLength, or a negative/ErrEmitFatal.
type SendFunc func(acc Accessor, buf []byte) (EmitResult, []byte, error)

// DeinitFunc releases a private-data value. It must tolerate any
// ordinary-case value and is never called on an absent slot.
type DeinitFunc func(priv interface{})

// PackFunc serializes a private-data value for resumption.
type PackFunc func(priv interface{}, buf []byte) ([]byte, error)

// UnpackFunc deserializes a resumption record into a private-data value.
// The engine hands it exactly the record's declared body and never the
// bytes after it; it does not check how many of those bytes were used,
// so an unpack that ignores part of body is not reported as an error.
type UnpackFunc func(body []byte) (priv interface{}, err error)

// Descriptor is the static capability block describing one extension
// kind. Any of the five operations may be nil: callers must treat a nil
// operation as "this extension has no behavior for that phase", and
// dispatch skips it rather than invoking it. The exception is resumption:
// a record whose descriptor has no Unpack makes Unpack fail with a
// parsing error.
type Descriptor struct {
	WireID      WireID
	InternalID  InternalID
	Name        string
	Validity    ValidityMask
	ParseClass  ParseClass
	Recv        RecvFunc
	Send        SendFunc
	Deinit      DeinitFunc
	Pack        PackFunc
	Unpack      UnpackFunc
	MayOverride bool
	Owned       bool
}

func (d *Descriptor) matchesClass(pc ParseClass) bool {
	return pc == Any || d.ParseClass == pc
}
