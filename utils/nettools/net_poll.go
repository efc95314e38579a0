//go:build darwin || linux
// +build darwin linux

package nettools

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// waitWritable blocks until fd is reported writable (or in error, which
// the caller detects through SO_ERROR) or until timeout expires. A
// non-positive timeout waits forever.
func waitWritable(fd int, timeout time.Duration) error {
	s := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLOUT}}
	deadline := time.Now().Add(timeout)

	for {
		dur := pollSlice
		if timeout > 0 {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return ErrTimeout
			}
			if remaining < dur {
				dur = remaining
			}
		}
		ms := int((dur + time.Millisecond - 1) / time.Millisecond)

		n, err := unix.Poll(s, ms)
		if err == unix.EINTR {
			continue
		} else if err != nil {
			return os.NewSyscallError("poll", err)
		}
		if n > 0 && s[0].Revents&(unix.POLLOUT|unix.POLLERR|unix.POLLHUP) != 0 {
			return nil
		}
	}
}

// pendingError reads and clears the socket's pending error.
func pendingError(fd int) error {
	v, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return os.NewSyscallError("getsockopt", err)
	}
	if v != 0 {
		return os.NewSyscallError("connect", unix.Errno(v))
	}
	return nil
}

func setTimeout(fd, opt int, d time.Duration) error {
	tv := unix.NsecToTimeval(d.Nanoseconds())
	if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, opt, &tv); err != nil {
		return os.NewSyscallError("setsockopt", err)
	}
	return nil
}

// setTimeouts installs d as both the send and the receive timeout of fd.
func setTimeouts(fd int, d time.Duration) error {
	if err := setTimeout(fd, unix.SO_SNDTIMEO, d); err != nil {
		return err
	}
	return setTimeout(fd, unix.SO_RCVTIMEO, d)
}
