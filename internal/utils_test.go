package internal_test

import (
	"context"
	"time"

	"github.com/frankli0324/go-httpc/internal"
	"github.com/frankli0324/go-httpc/internal/driver"
	"github.com/frankli0324/go-httpc/internal/model"
)

// TestDriver replays a canned reply and records everything the client does
// with it.
type TestDriver struct {
	kind  driver.Kind
	reply []byte

	ConnectErr error
	Host       string
	Port       uint16
	Timeout    time.Duration
	Sent       []byte
	Closed     int
}

func (d *TestDriver) Name() string      { return "test" }
func (d *TestDriver) Kind() driver.Kind { return d.kind }

func (d *TestDriver) Connect(ctx context.Context, host string, port uint16, timeout time.Duration) error {
	d.Host, d.Port, d.Timeout = host, port, timeout
	return d.ConnectErr
}

func (d *TestDriver) Send(p []byte) error {
	d.Sent = append(d.Sent, p...)
	return nil
}

func (d *TestDriver) Receive() ([]byte, error) { return d.reply, nil }

func (d *TestDriver) Close() error {
	d.Closed++
	return nil
}

// SendSingleRequest performs req against a TestDriver answering reply and
// returns the driver for inspection.
func SendSingleRequest(req *model.Request, reply string) (*TestDriver, *model.Reply, error) {
	d := &TestDriver{reply: []byte(reply)}
	c := &internal.Client{}
	c.UseDriver(func(kind driver.Kind, cfg *driver.Config) (driver.Driver, error) {
		d.kind = kind
		return d, nil
	})
	resp, err := c.CtxDo(context.Background(), req)
	return d, resp, err
}
