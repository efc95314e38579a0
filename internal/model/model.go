package model

import (
	"time"
)

const (
	MethodGet     = "GET"
	MethodPut     = "PUT"
	MethodConnect = "CONNECT"
	MethodPost    = "POST"
	MethodHead    = "HEAD"
	MethodOptions = "OPTIONS"
	MethodTrace   = "TRACE"
)

const (
	DefaultPath    = "/"
	DefaultTimeout = 5 * time.Second
)

// Request describes the single exchange to perform. Zero values of Method,
// Port, Path and Timeout are replaced by their defaults in [Request.Prepare].
type Request struct {
	Method  string
	Host    string // hostname or literal IP, without port
	Port    uint16 // 80 or 443 depending on UseTLS when zero
	Path    string
	Header  Header
	UseTLS  bool
	Timeout time.Duration
}

type Reply struct {
	Code   int
	Header Header
	Body   []byte
}
