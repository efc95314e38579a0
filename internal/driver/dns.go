package driver

import (
	"context"
	"net"
	"net/netip"
	"time"

	httperrors "github.com/frankli0324/go-httpc/internal/errors"
)

type ResolveConfig struct {
	CustomDNSServer string            // host:port of the server to query
	Network         string            // one of "ip4", "ip6", default is "ip"
	StaticHosts     map[string]string // resembles /etc/hosts
}

func (c *ResolveConfig) Clone() *ResolveConfig {
	if c == nil {
		return nil
	}
	hosts := make(map[string]string, len(c.StaticHosts))
	for k, v := range c.StaticHosts {
		hosts[k] = v
	}
	return &ResolveConfig{
		CustomDNSServer: c.CustomDNSServer,
		Network:         c.Network,
		StaticHosts:     hosts,
	}
}

// this type should not be used outside this file.
// prevents non-custom DNS server contexts to iterate through all keys
type dnsServerCtx struct {
	context.Context
	server string
}

var dnsServerCtxKey = &dnsServerCtx{nil, "dns-server"} // non-nil pointer to any object, definitely unique

func (c dnsServerCtx) Value(key interface{}) interface{} {
	if key == dnsServerCtxKey {
		return c.server
	}
	return c.Context.Value(key)
}

var zeroDialer net.Dialer

var customServerResolver = net.Resolver{
	PreferGo: true,
	Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
		if v, ok := ctx.Value(dnsServerCtxKey).(string); ok && v != "" {
			return zeroDialer.DialContext(ctx, network, v)
		}
		return zeroDialer.DialContext(ctx, network, address)
	},
}

// resolve returns the candidate addresses for host in resolver order.
// Literal addresses, including static hosts, never hit DNS.
func resolve(ctx context.Context, cfg *ResolveConfig, host string, timeout time.Duration) ([]net.IPAddr, error) {
	network, dns := "ip", ""
	if cfg != nil {
		if cfg.Network != "" {
			network = cfg.Network
		}
		if static, ok := cfg.StaticHosts[host]; ok {
			host = static
		}
		dns = cfg.CustomDNSServer
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		if !familyMatches(network, addr) {
			return nil, httperrors.Newf(httperrors.Resolution, "%s is not an %s address", host, network)
		}
		return []net.IPAddr{{IP: addr.AsSlice(), Zone: addr.Zone()}}, nil
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	ips, err := LookupIPServer(ctx, network, host, dns)
	if err != nil {
		return nil, httperrors.New(httperrors.Resolution, err)
	}
	if len(ips) == 0 {
		return nil, httperrors.Newf(httperrors.Resolution, "no addresses for %s", host)
	}
	addrs := make([]net.IPAddr, len(ips))
	for i, ip := range ips {
		addrs[i] = net.IPAddr{IP: ip}
	}
	return addrs, nil
}

func familyMatches(network string, addr netip.Addr) bool {
	switch network {
	case "ip4":
		return addr.Unmap().Is4()
	case "ip6":
		return addr.Is6() && !addr.Is4In6()
	}
	return true
}

// LookupIPServer performs DNS lookup for a host on a custom dns server,
// it calls [net.Resolver.LookupIP] with a Go Resolver behind the scenes.
// An empty dns uses the system configured servers.
func LookupIPServer(ctx context.Context, network, host, dns string) ([]net.IP, error) {
	return customServerResolver.LookupIP(dnsServerCtx{ctx, dns}, network, host)
}
