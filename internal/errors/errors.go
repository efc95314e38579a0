// Package errors holds the error taxonomy shared by the driver, the
// reply parser and the client. Every failure surfaced to callers is an
// *[Error] carrying a [Kind]; callers match on kind with the standard
// library's errors.Is and the sentinels declared below.
package errors

import "fmt"

// Kind classifies where an exchange failed.
type Kind int

const (
	KindUnknown Kind = iota
	Resolution
	Connect
	Handshake
	CertificateVerification
	Send
	Receive
	ReceiveOverflow
	MalformedStatusLine
	MissingSeparator
	MalformedHeaderLine
	UnknownDriver
	InvalidRequest
)

func (k Kind) String() string {
	switch k {
	case Resolution:
		return "address resolution failed"
	case Connect:
		return "connection failed"
	case Handshake:
		return "TLS handshake failed"
	case CertificateVerification:
		return "certificate verification failed"
	case Send:
		return "send failed"
	case Receive:
		return "receive failed"
	case ReceiveOverflow:
		return "reply exceeds receive buffer ceiling"
	case MalformedStatusLine:
		return "malformed status line"
	case MissingSeparator:
		return "missing header/body separator"
	case MalformedHeaderLine:
		return "malformed header line"
	case UnknownDriver:
		return "unknown network driver"
	case InvalidRequest:
		return "invalid request"
	default:
		return fmt.Sprintf("unknown error kind: %d", int(k))
	}
}

// Error is the single error type returned across package boundaries.
type Error struct {
	Kind Kind
	Err  error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return "httpc: " + e.Kind.String() + ": " + e.Err.Error()
	}
	return "httpc: " + e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, ErrConnect) matches any connect failure regardless of
// its cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// New wraps cause into an *Error of the given kind.
func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

// Newf is New with a formatted cause.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

var (
	ErrResolution              = &Error{Kind: Resolution}
	ErrConnect                 = &Error{Kind: Connect}
	ErrHandshake               = &Error{Kind: Handshake}
	ErrCertificateVerification = &Error{Kind: CertificateVerification}
	ErrSend                    = &Error{Kind: Send}
	ErrReceive                 = &Error{Kind: Receive}
	ErrReceiveOverflow         = &Error{Kind: ReceiveOverflow}
	ErrMalformedStatusLine     = &Error{Kind: MalformedStatusLine}
	ErrMissingSeparator        = &Error{Kind: MissingSeparator}
	ErrMalformedHeaderLine     = &Error{Kind: MalformedHeaderLine}
	ErrUnknownDriver           = &Error{Kind: UnknownDriver}
	ErrInvalidRequest          = &Error{Kind: InvalidRequest}
)
