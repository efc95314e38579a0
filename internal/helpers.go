package internal

import (
	"crypto/tls"
	"crypto/x509"

	"go.uber.org/zap"

	"github.com/frankli0324/go-httpc/internal/driver"
)

func (c *Client) resolveConfig() *driver.ResolveConfig {
	var rc *driver.ResolveConfig
	c.UseConfig(func(cfg *driver.Config) {
		if cfg.Resolve == nil {
			cfg.Resolve = &driver.ResolveConfig{}
		}
		rc = cfg.Resolve
	})
	return rc
}

// UseStaticHost makes host resolve to addr, like an /etc/hosts entry.
func (c *Client) UseStaticHost(host, addr string) {
	rc := c.resolveConfig()
	if rc.StaticHosts == nil {
		rc.StaticHosts = map[string]string{}
	}
	rc.StaticHosts[host] = addr
}

// UseDNSServer sends lookups to server (host:port) instead of the system
// configured resolvers.
func (c *Client) UseDNSServer(server string) {
	c.resolveConfig().CustomDNSServer = server
}

// UseNetwork restricts resolution to "ip4" or "ip6".
func (c *Client) UseNetwork(network string) {
	c.resolveConfig().Network = network
}

// TrustCertificate adds cert to the roots verified against. The system roots
// stay trusted.
func (c *Client) TrustCertificate(cert *x509.Certificate) {
	c.UseConfig(func(cfg *driver.Config) {
		if cfg.TLSConfig == nil {
			cfg.TLSConfig = &tls.Config{}
		}
		if cfg.TLSConfig.RootCAs == nil {
			roots, err := x509.SystemCertPool()
			if err != nil {
				roots = x509.NewCertPool()
			}
			cfg.TLSConfig.RootCAs = roots
		}
		cfg.TLSConfig.RootCAs.AddCert(cert)
	})
}

func (c *Client) UseLogger(log *zap.Logger) {
	c.UseConfig(func(cfg *driver.Config) { cfg.Logger = log })
}
