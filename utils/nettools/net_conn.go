//go:build darwin || linux
// +build darwin linux

package nettools

import (
	"io"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// conn is a blocking socket. It is not safe for concurrent use, and it
// doesn't need to be: a driver owns exactly one of them.
type conn struct {
	fd     int
	raddr  net.Addr
	closed bool
}

func newConn(fd int, raddr net.Addr) *conn {
	return &conn{fd: fd, raddr: raddr}
}

func (c *conn) opError(op string, err error) error {
	return &net.OpError{Op: op, Net: "tcp", Source: c.LocalAddr(), Addr: c.raddr, Err: os.NewSyscallError(op, err)}
}

// Read performs a single read(2). A zero-byte read is reported as io.EOF,
// an expired receive timeout as ErrTimeout and a signal interruption as
// ErrInterrupted.
func (c *conn) Read(p []byte) (int, error) {
	if c.closed {
		return 0, net.ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	n, err := unix.Read(c.fd, p)
	switch {
	case err == unix.EINTR:
		return 0, ErrInterrupted
	case err == unix.EAGAIN || err == unix.EWOULDBLOCK:
		return 0, ErrTimeout
	case err != nil:
		return 0, c.opError("read", err)
	case n == 0:
		return 0, io.EOF
	}
	return n, nil
}

// Write writes all of p, looping on partial writes and restarting writes
// interrupted by a signal.
func (c *conn) Write(p []byte) (int, error) {
	if c.closed {
		return 0, net.ErrClosed
	}
	off := 0
	for off < len(p) {
		n, err := unix.Write(c.fd, p[off:])
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN || err == unix.EWOULDBLOCK:
			return off, ErrTimeout
		case err != nil:
			return off, c.opError("write", err)
		}
		off += n
	}
	return off, nil
}

func (c *conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if err := unix.Close(c.fd); err != nil {
		return os.NewSyscallError("close", err)
	}
	return nil
}

func (c *conn) LocalAddr() net.Addr {
	if c.closed {
		return nil
	}
	sa, err := unix.Getsockname(c.fd)
	if err != nil {
		return nil
	}
	return tcpAddr(sa)
}

func (c *conn) RemoteAddr() net.Addr { return c.raddr }

// Deadlines are translated into kernel timeouts relative to now.
func (c *conn) SetDeadline(t time.Time) error {
	if c.closed {
		return net.ErrClosed
	}
	return setTimeouts(c.fd, untilDeadline(t))
}

func (c *conn) SetReadDeadline(t time.Time) error {
	if c.closed {
		return net.ErrClosed
	}
	return setTimeout(c.fd, unix.SO_RCVTIMEO, untilDeadline(t))
}

func (c *conn) SetWriteDeadline(t time.Time) error {
	if c.closed {
		return net.ErrClosed
	}
	return setTimeout(c.fd, unix.SO_SNDTIMEO, untilDeadline(t))
}
