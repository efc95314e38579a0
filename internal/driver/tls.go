package driver

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"time"

	"go.uber.org/zap"

	httperrors "github.com/frankli0324/go-httpc/internal/errors"
	"github.com/frankli0324/go-httpc/utils/nettools"
)

type tlsDriver struct {
	conn
	session *tls.Conn
}

func newTLS(cfg *Config) *tlsDriver {
	return &tlsDriver{conn: conn{cfg: cfg, log: cfg.Logger.Named("tls")}}
}

func (d *tlsDriver) Name() string { return "tls" }
func (d *tlsDriver) Kind() Kind   { return TLS }

// Connect establishes the TCP connection and completes a verified TLS
// handshake with host. No application data is exchanged before the peer
// certificate has been checked against host.
func (d *tlsDriver) Connect(ctx context.Context, host string, port uint16, timeout time.Duration) error {
	if err := d.connect(ctx, host, port, timeout); err != nil {
		return err
	}
	session, err := handshake(d.cfg.TLSConfig, d.raw, host)
	if err != nil {
		d.log.Debug("handshake failed", zap.String("host", host), zap.Error(err))
		d.close()
		return err
	}
	st := session.ConnectionState()
	d.log.Debug("handshake done",
		zap.String("host", host),
		zap.String("version", tls.VersionName(st.Version)),
		zap.String("cipher", tls.CipherSuiteName(st.CipherSuite)),
		zap.String("alpn", st.NegotiatedProtocol))
	d.session = session
	return nil
}

func (d *tlsDriver) stream() net.Conn {
	if d.session == nil {
		return nil
	}
	return d.session
}

func (d *tlsDriver) Send(p []byte) error {
	return d.send(d.stream(), p)
}

func (d *tlsDriver) Receive() ([]byte, error) {
	return d.receive(d.stream())
}

// Close sends close_notify on a best-effort basis before releasing the
// socket.
func (d *tlsDriver) Close() error {
	if d.session != nil {
		if err := d.session.Close(); err != nil {
			d.log.Debug("close", zap.Error(err))
		}
		d.session = nil
		d.raw = nil // closed along with the session
	}
	d.close()
	return nil
}

func handshake(base *tls.Config, raw net.Conn, host string) (*tls.Conn, error) {
	cfg := base.Clone()
	if cfg == nil {
		cfg = &tls.Config{}
	}
	if cfg.RootCAs == nil {
		roots, err := x509.SystemCertPool()
		if err != nil {
			return nil, httperrors.New(httperrors.Handshake, err)
		}
		cfg.RootCAs = roots
	}
	cfg.ServerName = host
	cfg.InsecureSkipVerify = false
	cfg.NextProtos = []string{"http/1.1"}
	if cfg.MinVersion == 0 {
		cfg.MinVersion = tls.VersionTLS12
	}

	session := tls.Client(nettools.RetryInterrupted(raw), cfg)
	if err := session.Handshake(); err != nil {
		return nil, handshakeError(err)
	}

	st := session.ConnectionState()
	if len(st.VerifiedChains) == 0 || len(st.PeerCertificates) == 0 {
		return nil, httperrors.Newf(httperrors.CertificateVerification, "no verified certificate chain")
	}
	if err := st.PeerCertificates[0].VerifyHostname(host); err != nil {
		return nil, httperrors.New(httperrors.CertificateVerification, err)
	}
	return session, nil
}

func handshakeError(err error) error {
	var (
		verr *tls.CertificateVerificationError
		herr x509.HostnameError
		aerr x509.UnknownAuthorityError
		cerr x509.CertificateInvalidError
	)
	if errors.As(err, &verr) || errors.As(err, &herr) || errors.As(err, &aerr) || errors.As(err, &cerr) {
		return httperrors.New(httperrors.CertificateVerification, err)
	}
	return httperrors.New(httperrors.Handshake, err)
}
