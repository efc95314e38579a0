package driver

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"go.uber.org/zap"

	httperrors "github.com/frankli0324/go-httpc/internal/errors"
	"github.com/frankli0324/go-httpc/utils/nettools"
)

var errAlreadyUsed = errors.New("driver already used")

var errNotConnected = errors.New("not connected")

var dialFunc = nettools.Dial // swapped by tests

// conn is the part shared by every driver: a single raw connection to one
// target.
type conn struct {
	cfg  *Config
	log  *zap.Logger
	raw  net.Conn
	used bool
}

func (c *conn) connect(ctx context.Context, host string, port uint16, timeout time.Duration) error {
	if c.used {
		return httperrors.New(httperrors.Connect, errAlreadyUsed)
	}
	c.used = true
	if port == 0 {
		return httperrors.Newf(httperrors.Connect, "invalid port 0")
	}

	addrs, err := resolve(ctx, c.cfg.Resolve, host, timeout)
	if err != nil {
		return err
	}

	raw, err := dialCandidates(ctx, c.log, host, addrs, port, timeout)
	if err != nil {
		return err
	}
	c.raw = raw
	return nil
}

// dialCandidates tries addrs in order and returns the first connection
// established. ctx is only checked between candidates.
func dialCandidates(ctx context.Context, log *zap.Logger, host string, addrs []net.IPAddr, port uint16, timeout time.Duration) (net.Conn, error) {
	var errs []error
	for _, addr := range addrs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		raw, err := dialFunc(addr, port, timeout)
		if err == nil {
			log.Debug("connected",
				zap.String("host", host),
				zap.Stringer("addr", raw.RemoteAddr()))
			return raw, nil
		}
		log.Debug("candidate failed",
			zap.String("host", host),
			zap.String("addr", net.JoinHostPort(addr.String(), strconv.Itoa(int(port)))),
			zap.Error(err))
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		errs = append(errs, errors.New("no candidate addresses"))
	}
	return nil, httperrors.New(httperrors.Connect, errors.Join(errs...))
}

func (c *conn) send(w net.Conn, p []byte) error {
	if w == nil {
		return httperrors.New(httperrors.Send, errNotConnected)
	}
	if _, err := w.Write(p); err != nil {
		return httperrors.New(httperrors.Send, err)
	}
	return nil
}

func (c *conn) receive(r net.Conn) ([]byte, error) {
	if r == nil {
		return nil, httperrors.New(httperrors.Receive, errNotConnected)
	}
	return accumulate(r, c.cfg.InitialReplySize, c.cfg.MaxReplySize)
}

func (c *conn) close() {
	if c.raw == nil {
		return
	}
	if err := c.raw.Close(); err != nil {
		c.log.Warn("close", zap.Error(err))
	}
	c.raw = nil
}
