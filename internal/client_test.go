package internal_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/frankli0324/go-httpc/internal"
	"github.com/frankli0324/go-httpc/internal/driver"
	httperrors "github.com/frankli0324/go-httpc/internal/errors"
	"github.com/frankli0324/go-httpc/internal/model"
)

const okReply = "HTTP/1.1 200 OK\r\nContent-Length: 0\r\nConnection: close\r\n\r\n"

type tCase struct {
	data []byte
	req  *model.Request
}

var reqShouldBe = map[string]tCase{
	"BasicRequest": {
		req: &model.Request{
			Method: "GET",
			Host:   "www.example.com",
		},
		data: []byte("GET / HTTP/1.1\r\nHost: www.example.com\r\nConnection: close\r\n\r\n"),
	},
	"QueryNonStandard": {
		req: &model.Request{
			Method: "GET",
			Host:   "www.example.com",
			Path:   "/test?1=33=1",
		},
		data: []byte("GET /test?1=33=1 HTTP/1.1\r\nHost: www.example.com\r\nConnection: close\r\n\r\n"),
	},
	"HeaderNotCanonicalized": {
		req: &model.Request{
			Method: "GET",
			Host:   "www.example.com",
			Header: model.Header{{Key: "x-123-vv", Value: "1"}},
		},
		data: []byte("GET / HTTP/1.1\r\nx-123-vv: 1\r\nHost: www.example.com\r\nConnection: close\r\n\r\n"),
	},
	"HeaderOrderKept": {
		req: &model.Request{
			Method: "OPTIONS",
			Host:   "www.example.com",
			Port:   8443,
			UseTLS: true,
			Header: model.Header{{Key: "B", Value: "2"}, {Key: "A", Value: "1"}, {Key: "b", Value: "3"}},
		},
		data: []byte("OPTIONS / HTTP/1.1\r\nB: 2\r\nA: 1\r\nb: 3\r\nHost: www.example.com:8443\r\nConnection: close\r\n\r\n"),
	},
	"ExplicitHost": {
		req: &model.Request{
			Host:   "10.0.0.1",
			Header: model.Header{{Key: "Host", Value: "www.example.com"}},
		},
		data: []byte("GET / HTTP/1.1\r\nHost: www.example.com\r\nConnection: close\r\n\r\n"),
	},
}

func TestRequestSerialize(t *testing.T) {
	for name, cas := range reqShouldBe {
		tCase := cas
		t.Run(name, func(t *testing.T) {
			d, resp, err := SendSingleRequest(tCase.req, okReply)
			require.NoError(t, err)
			assert.Equal(t, string(tCase.data), string(d.Sent))
			assert.Equal(t, 200, resp.Code)
			assert.Equal(t, 1, d.Closed)
		})
	}
}

func TestDriverSelection(t *testing.T) {
	d, _, err := SendSingleRequest(&model.Request{Host: "example.com"}, okReply)
	require.NoError(t, err)
	assert.Equal(t, driver.Plain, d.Kind())
	assert.Equal(t, "example.com", d.Host)
	assert.Equal(t, uint16(80), d.Port)
	assert.Equal(t, model.DefaultTimeout, d.Timeout)

	d, _, err = SendSingleRequest(&model.Request{Host: "example.com", UseTLS: true, Timeout: time.Second}, okReply)
	require.NoError(t, err)
	assert.Equal(t, driver.TLS, d.Kind())
	assert.Equal(t, uint16(443), d.Port)
	assert.Equal(t, time.Second, d.Timeout)
}

func TestReplyErrorsCloseDriver(t *testing.T) {
	d, resp, err := SendSingleRequest(&model.Request{Host: "example.com"}, "HTTP/1.1 200 OK\r\n")
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, httperrors.ErrMissingSeparator)
	assert.Equal(t, 1, d.Closed)
}

func TestInvalidRequestNeverConnects(t *testing.T) {
	c := &internal.Client{}
	c.UseDriver(func(driver.Kind, *driver.Config) (driver.Driver, error) {
		t.Fatal("driver created for an invalid request")
		return nil, nil
	})
	_, err := c.Do(&model.Request{Host: "example.com", Method: "BREW"})
	assert.ErrorIs(t, err, httperrors.ErrInvalidRequest)
}

func TestConnectErrorPropagates(t *testing.T) {
	d := &TestDriver{ConnectErr: httperrors.New(httperrors.Connect, errors.New("refused"))}
	c := &internal.Client{}
	c.UseDriver(func(driver.Kind, *driver.Config) (driver.Driver, error) { return d, nil })
	_, err := c.Do(&model.Request{Host: "example.com"})
	assert.ErrorIs(t, err, httperrors.ErrConnect)
	assert.Empty(t, d.Sent)
	assert.Equal(t, 1, d.Closed)

	c.UseDriver(func(driver.Kind, *driver.Config) (driver.Driver, error) {
		return nil, httperrors.Newf(httperrors.UnknownDriver, "none")
	})
	_, err = c.Do(&model.Request{Host: "example.com"})
	assert.ErrorIs(t, err, httperrors.ErrUnknownDriver)
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(name string) internal.Middleware {
		return func(next internal.Handler) internal.Handler {
			return func(ctx context.Context, req *internal.PreparedRequest) (*model.Reply, error) {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}
	c := &internal.Client{}
	c.UseDriver(func(kind driver.Kind, cfg *driver.Config) (driver.Driver, error) {
		return &TestDriver{reply: []byte(okReply)}, nil
	})
	c.Use(mw("first"), mw("second"))
	c.Use(mw("third"))

	_, err := c.Do(&model.Request{Host: "example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestClientConfigHelpers(t *testing.T) {
	var got *driver.Config
	c := &internal.Client{}
	c.UseStaticHost("a.test", "127.0.0.1")
	c.UseDNSServer("127.0.0.53:53")
	c.UseNetwork("ip4")
	c.UseLogger(zaptest.NewLogger(t))
	c.UseDriver(func(kind driver.Kind, cfg *driver.Config) (driver.Driver, error) {
		got = cfg
		return &TestDriver{reply: []byte(okReply)}, nil
	})
	_, err := c.Do(&model.Request{Host: "a.test"})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, &driver.ResolveConfig{
		CustomDNSServer: "127.0.0.53:53",
		Network:         "ip4",
		StaticHosts:     map[string]string{"a.test": "127.0.0.1"},
	}, got.Resolve)
	assert.NotNil(t, got.Logger)
}

func TestClientLoopback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("X-Echo", r.Header.Get("X-Test"))
		w.Header().Add("X-Echo", r.Host)
		io.WriteString(w, r.Method+" "+r.URL.RequestURI())
	}))
	defer server.Close()
	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	c := &internal.Client{}
	c.UseLogger(zaptest.NewLogger(t))
	c.UseStaticHost("loopback.test", "127.0.0.1")
	resp, err := c.Do(&model.Request{
		Method: model.MethodPut,
		Host:   "loopback.test",
		Port:   uint16(port),
		Path:   "/x?y=1",
		Header: model.Header{{Key: "X-Test", Value: "ok"}, {Key: "Connection", Value: "close"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, []string{"ok", "loopback.test:" + u.Port()}, resp.Header.Values("x-echo"))
	assert.Equal(t, "PUT /x?y=1", string(resp.Body))
}

func TestClientTLSLoopback(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()
	port := server.Listener.Addr().(*net.TCPAddr).Port

	c := &internal.Client{}
	c.TrustCertificate(server.Certificate())
	c.UseStaticHost("example.com", "127.0.0.1")
	resp, err := c.Do(&model.Request{
		Host:   "example.com",
		Port:   uint16(port),
		UseTLS: true,
		Header: model.Header{{Key: "Connection", Value: "close"}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.Code)
	assert.Empty(t, resp.Body)
}
