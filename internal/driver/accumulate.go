package driver

import (
	"errors"
	"io"

	httperrors "github.com/frankli0324/go-httpc/internal/errors"
	"github.com/frankli0324/go-httpc/utils/nettools"
)

// accumulate reads r until io.EOF into a buffer that starts at initial bytes
// and doubles whenever it fills up, the last step stopping at max. A buffer
// that is full at max is an overflow, even if the peer was about to close.
func accumulate(r io.Reader, initial, max int) ([]byte, error) {
	buf := make([]byte, initial)
	n := 0
	for {
		if n == len(buf) {
			if len(buf) >= max {
				return nil, httperrors.Newf(httperrors.ReceiveOverflow, "reply reached the %d byte ceiling", max)
			}
			buf = append(buf, make([]byte, min(len(buf), max-len(buf)))...)
		}
		m, err := r.Read(buf[n:])
		n += m
		switch {
		case err == io.EOF:
			return buf[:n:n], nil
		case errors.Is(err, nettools.ErrInterrupted):
			continue
		case err != nil:
			return nil, httperrors.New(httperrors.Receive, err)
		}
	}
}
