package internal

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/frankli0324/go-httpc/internal/driver"
	"github.com/frankli0324/go-httpc/internal/model"
	"github.com/frankli0324/go-httpc/internal/transport"
)

type PreparedRequest = model.PreparedRequest

type Handler = func(ctx context.Context, req *PreparedRequest) (*model.Reply, error)
type Middleware func(next Handler) Handler

// DriverFactory creates the driver for a single exchange.
type DriverFactory func(kind driver.Kind, cfg *driver.Config) (driver.Driver, error)

// Client performs one request/reply exchange per call, each over a fresh
// driver that is closed before the call returns. The zero value is ready
// to use.
type Client struct {
	middlewares []Middleware
	config      *driver.Config
	newDriver   DriverFactory
	transport   transport.Transport
}

// Use appends mw to the end of the chain. The first "Use"d mw executes first
func (c *Client) Use(mws ...Middleware) {
	c.middlewares = append(c.middlewares, mws...)
}

// UseConfig lets fn modify the driver configuration of c.
func (c *Client) UseConfig(fn func(cfg *driver.Config)) {
	if c.config == nil {
		c.config = &driver.Config{}
	}
	fn(c.config)
}

// UseDriver replaces the function creating drivers, [driver.New] by default.
func (c *Client) UseDriver(f DriverFactory) {
	c.newDriver = f
}

// UseTransport replaces the message syntax, [transport.HTTP1] by default.
func (c *Client) UseTransport(t transport.Transport) {
	c.transport = t
}

func (c *Client) logger() *zap.Logger {
	if c.config != nil && c.config.Logger != nil {
		return c.config.Logger
	}
	return zap.NewNop()
}

func (c *Client) Do(req *model.Request) (*model.Reply, error) {
	return c.CtxDo(context.Background(), req)
}

func (c *Client) CtxDo(ctx context.Context, req *model.Request) (*model.Reply, error) {
	pr, err := req.Prepare()
	if err != nil {
		return nil, err
	}
	next := c.exchange
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		next = c.middlewares[i](next)
	}
	return next(ctx, pr)
}

// exchange is the innermost handler: connect, send, receive until the
// peer closes, parse.
func (c *Client) exchange(ctx context.Context, pr *PreparedRequest) (*model.Reply, error) {
	t := c.transport
	if t == nil {
		t = transport.HTTP1
	}
	newDriver := c.newDriver
	if newDriver == nil {
		newDriver = driver.New
	}
	kind := driver.Plain
	if pr.UseTLS {
		kind = driver.TLS
	}

	buf, err := transport.Marshal(t, pr)
	if err != nil {
		return nil, err
	}
	d, err := newDriver(kind, c.config)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	log := c.logger().With(zap.Stringer("request", pr), zap.String("driver", d.Name()))
	start := time.Now()
	if err := d.Connect(ctx, pr.Host, pr.Port, pr.Timeout); err != nil {
		log.Debug("connect failed", zap.Error(err))
		return nil, err
	}
	if err := d.Send(buf); err != nil {
		log.Debug("send failed", zap.Error(err))
		return nil, err
	}
	raw, err := d.Receive()
	if err != nil {
		log.Debug("receive failed", zap.Error(err))
		return nil, err
	}
	reply, err := t.Parse(raw)
	if err != nil {
		log.Debug("malformed reply", zap.Int("bytes", len(raw)), zap.Error(err))
		return nil, err
	}
	log.Debug("exchange done",
		zap.Int("code", reply.Code),
		zap.Int("bytes", len(raw)),
		zap.Duration("took", time.Since(start)))
	return reply, nil
}
