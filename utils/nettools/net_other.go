//go:build !darwin && !linux
// +build !darwin,!linux

package nettools

import (
	"net"
	"time"
)

func Dial(addr net.IPAddr, port uint16, timeout time.Duration) (net.Conn, error) {
	return nil, ErrUnsupported
}
