// Package nettools implements the raw socket layer underneath the drivers:
// a connect that is non-blocking only until the peer answers (bounded by a
// readiness wait), followed by a plain blocking socket whose send and
// receive operations are bounded by kernel timeouts (SO_SNDTIMEO and
// SO_RCVTIMEO) rather than by the Go netpoller.
//
// The returned connections implement [net.Conn] so that crypto/tls can be
// layered on top of them.
package nettools

import (
	"errors"
	"net"
	"time"
)

// opError mimics the errors returned by package net so that callers (and
// crypto/tls) can inspect them through the [net.Error] interface.
type opError struct {
	msg       string
	timeout   bool
	temporary bool
}

func (e *opError) Error() string   { return e.msg }
func (e *opError) Timeout() bool   { return e.timeout }
func (e *opError) Temporary() bool { return e.temporary }

var (
	// ErrTimeout is returned when the readiness wait or a kernel send/receive
	// timeout expires.
	ErrTimeout error = &opError{msg: "i/o timeout", timeout: true, temporary: true}
	// ErrInterrupted is returned by Read when the underlying syscall was
	// interrupted by a signal before any byte was transferred. The read may
	// be retried as is.
	ErrInterrupted error = &opError{msg: "interrupted system call", temporary: true}
	// ErrUnsupported is returned by Dial on platforms without a raw socket
	// implementation.
	ErrUnsupported = errors.New("nettools: raw sockets are not supported on this platform")
)

// pollSlice bounds a single readiness syscall; the process shouldn't hang
// in syscalls for the whole timeout.
const pollSlice = 50 * time.Millisecond

// RetryInterrupted wraps c so that reads interrupted by a signal are
// transparently restarted. It is meant for consumers, such as a TLS
// session, which would otherwise abort on [ErrInterrupted].
func RetryInterrupted(c net.Conn) net.Conn {
	return restartConn{c}
}

type restartConn struct {
	net.Conn
}

func (c restartConn) Read(p []byte) (n int, err error) {
	for {
		n, err = c.Conn.Read(p)
		if n == 0 && errors.Is(err, ErrInterrupted) {
			continue
		}
		return n, err
	}
}

// untilDeadline converts an absolute deadline into a kernel timeout. The
// zero time means no timeout, which the kernel spells as a zero timeval.
func untilDeadline(t time.Time) time.Duration {
	if t.IsZero() {
		return 0
	}
	d := time.Until(t)
	if d <= 0 {
		d = time.Microsecond
	}
	return d
}
