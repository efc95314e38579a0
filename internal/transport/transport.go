package transport

import (
	"bytes"
	"io"

	"github.com/frankli0324/go-httpc/internal/model"
)

// Transport writes a request onto a byte stream and parses a fully buffered
// reply. The two halves share no state, they compose only through bytes.
type Transport interface {
	Write(w io.Writer, req *model.PreparedRequest) error
	Parse(buf []byte) (*model.Reply, error)
}

// HTTP1 is the HTTP/1.x transport.
var HTTP1 Transport = &http1{}

// Marshal renders req with t into a single buffer, ready to be sent.
func Marshal(t Transport, req *model.PreparedRequest) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Write(&buf, req); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseReply parses buf as an HTTP/1.x reply.
func ParseReply(buf []byte) (*model.Reply, error) {
	return HTTP1.Parse(buf)
}
