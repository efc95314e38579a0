package driver

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"go.uber.org/zap"

	httperrors "github.com/frankli0324/go-httpc/internal/errors"
)

const (
	DefaultInitialReplySize = 4 << 10
	DefaultMaxReplySize     = 128 << 10
)

type Kind int

const (
	Plain Kind = iota
	TLS
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "PLAIN"
	case TLS:
		return "TLS"
	}
	return "UNKNOWN"
}

// Drivers own exactly one connection to one target. They handle everything
// below the message syntax: resolving, connecting, the TLS session, and
// moving bytes in both directions.
type Driver interface {
	Name() string
	Kind() Kind
	// Connect resolves host and connects to the first candidate address
	// that accepts within timeout. It may only be called once.
	Connect(ctx context.Context, host string, port uint16, timeout time.Duration) error
	// Send writes all of p.
	Send(p []byte) error
	// Receive reads until the peer closes the connection.
	Receive() ([]byte, error)
	// Close releases the connection. It is safe to call more than once.
	Close() error
}

type Config struct {
	Resolve   *ResolveConfig
	TLSConfig *tls.Config // base config, cloned for every connection

	InitialReplySize int
	MaxReplySize     int

	Logger *zap.Logger
}

func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	return &Config{
		Resolve:          c.Resolve.Clone(),
		TLSConfig:        c.TLSConfig.Clone(),
		InitialReplySize: c.InitialReplySize,
		MaxReplySize:     c.MaxReplySize,
		Logger:           c.Logger,
	}
}

// withDefaults returns a copy of c with every zero field filled in.
func (c *Config) withDefaults() *Config {
	cfg := c.Clone()
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.InitialReplySize <= 0 {
		cfg.InitialReplySize = DefaultInitialReplySize
	}
	if cfg.MaxReplySize <= 0 {
		cfg.MaxReplySize = DefaultMaxReplySize
	}
	if cfg.InitialReplySize > cfg.MaxReplySize {
		cfg.InitialReplySize = cfg.MaxReplySize
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}

// New creates an unconnected driver of the given kind. cfg may be nil.
func New(kind Kind, cfg *Config) (Driver, error) {
	cfg = cfg.withDefaults()
	switch kind {
	case Plain:
		return newPlain(cfg), nil
	case TLS:
		return newTLS(cfg), nil
	}
	return nil, httperrors.Newf(httperrors.UnknownDriver, "kind %d", int(kind))
}

// NewByName is like [New] with the driver looked up by its name, "plain"
// or "tls".
func NewByName(name string, cfg *Config) (Driver, error) {
	for _, k := range []Kind{Plain, TLS} {
		if strings.EqualFold(name, k.String()) {
			return New(k, cfg)
		}
	}
	return nil, httperrors.Newf(httperrors.UnknownDriver, "name %q", name)
}
