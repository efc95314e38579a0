package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/http/httpguts"

	httperrors "github.com/frankli0324/go-httpc/internal/errors"
)

var knownMethods = map[string]bool{
	MethodGet: true, MethodPut: true, MethodConnect: true, MethodPost: true,
	MethodHead: true, MethodOptions: true, MethodTrace: true,
}

// PreparedRequest is a Request with defaults filled in and header fields
// validated. The original Request is never modified.
type PreparedRequest struct {
	*Request

	Method  string
	Port    uint16
	Path    string
	Header  Header // includes Host
	Timeout time.Duration
}

func (r *Request) Prepare() (*PreparedRequest, error) {
	if r.Host == "" {
		return nil, httperrors.Newf(httperrors.InvalidRequest, "empty host")
	}
	pr := &PreparedRequest{
		Request: r,
		Method:  r.Method,
		Port:    r.Port,
		Path:    r.Path,
		Header:  r.Header.Clone(),
		Timeout: r.Timeout,
	}
	if pr.Method == "" {
		pr.Method = MethodGet
	}
	if !knownMethods[pr.Method] {
		return nil, httperrors.Newf(httperrors.InvalidRequest, "unsupported method %q", pr.Method)
	}
	if pr.Port == 0 {
		pr.Port = DefaultPort(r.UseTLS)
	}
	if pr.Path == "" {
		pr.Path = DefaultPath
	}
	if strings.ContainsAny(pr.Path, " \r\n") {
		return nil, httperrors.Newf(httperrors.InvalidRequest, "invalid path %q", pr.Path)
	}
	if pr.Timeout <= 0 {
		pr.Timeout = DefaultTimeout
	}

	// user defined Host has higher priority
	if _, ok := pr.Header.Lookup("Host"); !ok {
		if err := pr.Header.Add("Host", hostHeader(r.Host, pr.Port, r.UseTLS)); err != nil {
			return nil, httperrors.New(httperrors.InvalidRequest, err)
		}
	}
	// replies are read until the server closes, so ask it to
	if _, ok := pr.Header.Lookup("Connection"); !ok {
		if err := pr.Header.Add("Connection", "close"); err != nil {
			return nil, httperrors.New(httperrors.InvalidRequest, err)
		}
	}
	for _, f := range pr.Header {
		if !httpguts.ValidHeaderFieldName(f.Key) {
			return nil, httperrors.Newf(httperrors.InvalidRequest, "invalid header field name %q", f.Key)
		}
		if !httpguts.ValidHeaderFieldValue(f.Value) {
			return nil, httperrors.Newf(httperrors.InvalidRequest, "invalid header field value for %q", f.Key)
		}
	}
	if !httpguts.ValidHostHeader(pr.Header.Get("Host")) {
		return nil, httperrors.Newf(httperrors.InvalidRequest, "invalid Host header %q", pr.Header.Get("Host"))
	}
	return pr, nil
}

func DefaultPort(useTLS bool) uint16 {
	if useTLS {
		return 443
	}
	return 80
}

func hostHeader(host string, port uint16, useTLS bool) string {
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port == DefaultPort(useTLS) {
		return host
	}
	return host + ":" + strconv.FormatUint(uint64(port), 10)
}

func (r *PreparedRequest) String() string {
	return fmt.Sprintf("%s %s:%d%s", r.Method, r.Host, r.Port, r.Path)
}
