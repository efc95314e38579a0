package driver

import (
	"context"
	"time"
)

type plainDriver struct {
	conn
}

func newPlain(cfg *Config) *plainDriver {
	return &plainDriver{conn{cfg: cfg, log: cfg.Logger.Named("plain")}}
}

func (d *plainDriver) Name() string { return "plain" }
func (d *plainDriver) Kind() Kind   { return Plain }

func (d *plainDriver) Connect(ctx context.Context, host string, port uint16, timeout time.Duration) error {
	return d.connect(ctx, host, port, timeout)
}

func (d *plainDriver) Send(p []byte) error {
	return d.send(d.raw, p)
}

func (d *plainDriver) Receive() ([]byte, error) {
	return d.receive(d.raw)
}

func (d *plainDriver) Close() error {
	d.close()
	return nil
}
