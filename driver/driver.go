package driver

import (
	"github.com/frankli0324/go-httpc/internal/driver"
)

// Drivers own the connection for exactly one exchange: they resolve the
// target, connect with a timeout, run the TLS session if any, write the
// request bytes and collect the reply bytes until the peer closes.
//
// A Driver is used once. Connecting it a second time fails; create a new
// one with [New] instead.
type Driver = driver.Driver

type Kind = driver.Kind

const (
	Plain = driver.Plain
	TLS   = driver.TLS
)

// Config is shared by all drivers a [github.com/frankli0324/go-httpc.Client]
// creates. A nil Config is valid.
type Config = driver.Config

// we need a dedicated resolver to customize the DNS server used for
// resolving hostnames.
//
// the standard library didn't provide a intuitive way of
// setting DNS server addresses since it only follows the
// system configuration (e.g. /etc/resolv.conf), leaving us only
// one option of using [net.Resolver.Dial] hook with a Go Resolver.
type ResolveConfig = driver.ResolveConfig

const (
	DefaultInitialReplySize = driver.DefaultInitialReplySize
	DefaultMaxReplySize     = driver.DefaultMaxReplySize
)

var (
	New       = driver.New
	NewByName = driver.NewByName
)
