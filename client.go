// Package httpc performs single HTTP/1.x exchanges over plain TCP or TLS.
//
// Every call to [Client.Do] resolves the target, connects, writes one
// request, reads the reply until the server closes the connection, and
// parses it. Nothing is pooled or kept alive between calls.
package httpc

import (
	"github.com/frankli0324/go-httpc/internal"
	"github.com/frankli0324/go-httpc/internal/model"
)

type Client = internal.Client
type Header = model.Header
type Field = model.Field
type Request = model.Request
type PreparedRequest = model.PreparedRequest
type Reply = model.Reply

type Handler = internal.Handler
type Middleware = internal.Middleware
type DriverFactory = internal.DriverFactory

const (
	MethodGet     = model.MethodGet
	MethodPut     = model.MethodPut
	MethodConnect = model.MethodConnect
	MethodPost    = model.MethodPost
	MethodHead    = model.MethodHead
	MethodOptions = model.MethodOptions
	MethodTrace   = model.MethodTrace
)

const MaxHeaderFields = model.MaxHeaderFields

var ErrTooManyHeaders = model.ErrTooManyHeaders
