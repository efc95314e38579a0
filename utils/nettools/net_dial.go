//go:build darwin || linux
// +build darwin linux

package nettools

import (
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// Dial connects a TCP socket to addr:port.
//
// The socket is non-blocking while the connection is being established so
// that the handshake can be bounded by timeout; once the peer has accepted
// it is switched back to blocking mode and timeout becomes the kernel send
// and receive timeout of the returned connection. A non-positive timeout
// disables both bounds.
func Dial(addr net.IPAddr, port uint16, timeout time.Duration) (net.Conn, error) {
	family, sa, err := sockaddr(addr, port)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Socket(family, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}
	unix.CloseOnExec(fd)

	if err := connect(fd, sa, timeout); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return newConn(fd, &net.TCPAddr{IP: addr.IP, Port: int(port), Zone: addr.Zone}), nil
}

func connect(fd int, sa unix.Sockaddr, timeout time.Duration) error {
	if err := unix.SetNonblock(fd, true); err != nil {
		return os.NewSyscallError("fcntl", err)
	}

	switch err := unix.Connect(fd, sa); err {
	case nil:
	case unix.EINPROGRESS, unix.EINTR:
		if err := waitWritable(fd, timeout); err != nil {
			return err
		}
		if err := pendingError(fd); err != nil {
			return err
		}
	default:
		return os.NewSyscallError("connect", err)
	}

	if err := unix.SetNonblock(fd, false); err != nil {
		return os.NewSyscallError("fcntl", err)
	}
	if timeout > 0 {
		return setTimeouts(fd, timeout)
	}
	return nil
}

func sockaddr(addr net.IPAddr, port uint16) (int, unix.Sockaddr, error) {
	if ip4 := addr.IP.To4(); ip4 != nil {
		sa := &unix.SockaddrInet4{Port: int(port)}
		copy(sa.Addr[:], ip4)
		return unix.AF_INET, sa, nil
	}
	ip6 := addr.IP.To16()
	if ip6 == nil {
		return 0, nil, &net.AddrError{Err: "invalid IP address", Addr: addr.String()}
	}
	sa := &unix.SockaddrInet6{Port: int(port)}
	copy(sa.Addr[:], ip6)
	if addr.Zone != "" {
		ifi, err := net.InterfaceByName(addr.Zone)
		if err != nil {
			return 0, nil, err
		}
		sa.ZoneId = uint32(ifi.Index)
	}
	return unix.AF_INET6, sa, nil
}

func tcpAddr(sa unix.Sockaddr) net.Addr {
	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		return &net.TCPAddr{IP: append(net.IP{}, sa.Addr[:]...), Port: sa.Port}
	case *unix.SockaddrInet6:
		addr := &net.TCPAddr{IP: append(net.IP{}, sa.Addr[:]...), Port: sa.Port}
		if sa.ZoneId != 0 {
			if ifi, err := net.InterfaceByIndex(int(sa.ZoneId)); err == nil {
				addr.Zone = ifi.Name
			}
		}
		return addr
	}
	return nil
}
