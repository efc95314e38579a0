package transport

import (
	"bufio"
	"bytes"
	"io"
	"net/textproto"
	"strconv"

	httperrors "github.com/frankli0324/go-httpc/internal/errors"
	"github.com/frankli0324/go-httpc/internal/model"
)

var (
	crlf      = []byte("\r\n")
	separator = []byte("\r\n\r\n")
	proto     = []byte("HTTP/1.")
)

type http1 struct {
}

// Write writes the request line and header block of r, e.g.:
//
//	GET / HTTP/1.1\r\n
//	Host: www.google.com\r\n
//	X-Xx-Yy: cccccc\r\n
//	\r\n
//
// Requests carry no body.
func (t *http1) Write(w io.Writer, r *model.PreparedRequest) error {
	header := bufio.NewWriter(w) // default bufsize is 4096

	if _, err := header.WriteString(r.Method); err != nil {
		return err
	}
	header.WriteByte(' ')
	header.WriteString(r.Path)
	header.WriteString(" HTTP/1.1\r\n")
	for _, f := range r.Header {
		header.WriteString(f.Key)
		header.WriteString(": ")
		header.WriteString(f.Value)
		if _, err := header.WriteString("\r\n"); err != nil {
			return err
		}
	}
	if _, err := header.WriteString("\r\n"); err != nil {
		return err
	}
	return header.Flush()
}

// Parse parses a complete, close-delimited reply. It never modifies buf and
// the returned Reply shares no memory with it.
func (t *http1) Parse(buf []byte) (*model.Reply, error) {
	code, rest, err := parseStatusLine(buf)
	if err != nil {
		return nil, err
	}

	// the separator is searched after the whitespace skipped before the
	// status line
	skipped := len(buf) - len(bytes.TrimLeftFunc(buf, isSpaceRune))
	sep := bytes.Index(buf[skipped:], separator)
	if sep < 0 {
		return nil, httperrors.ErrMissingSeparator
	}
	sep += skipped

	resp := &model.Reply{Code: code}
	// rest starts right after the status line's CRLF. If the status line is
	// immediately followed by the empty line there are no fields.
	if start := len(buf) - len(rest); start < sep+2 {
		if resp.Header, err = parseHeader(buf[start : sep+2]); err != nil {
			return nil, err
		}
	}
	resp.Body = append([]byte{}, buf[sep+len(separator):]...)
	return resp, nil
}

// parseStatusLine returns the status code and the bytes following the
// status line's terminator (nil if it has none).
func parseStatusLine(buf []byte) (int, []byte, error) {
	line := bytes.TrimLeftFunc(buf, isSpaceRune)
	var rest []byte
	if i := bytes.Index(line, crlf); i >= 0 {
		line, rest = line[:i], line[i+len(crlf):]
	}

	if len(line) < len(proto) || !bytes.EqualFold(line[:len(proto)], proto) {
		return 0, nil, httperrors.Newf(httperrors.MalformedStatusLine, "missing %s prefix", proto)
	}
	// version token, then whitespace
	i := len(proto)
	for i < len(line) && !isSpace(line[i]) {
		i++
	}
	for i < len(line) && isSpace(line[i]) {
		i++
	}
	j := i
	for j < len(line) && '0' <= line[j] && line[j] <= '9' {
		j++
	}
	if j == i {
		return 0, nil, httperrors.Newf(httperrors.MalformedStatusLine, "no status code in %q", line)
	}
	code, err := strconv.Atoi(string(line[i:j]))
	if err != nil {
		return 0, nil, httperrors.New(httperrors.MalformedStatusLine, err)
	}
	return code, rest, nil
}

// parseHeader parses CRLF terminated field lines. Empty lines are skipped,
// any other line must contain a colon.
func parseHeader(block []byte) (model.Header, error) {
	var h model.Header
	for len(block) > 0 {
		line := block
		if i := bytes.Index(block, crlf); i >= 0 {
			line, block = block[:i], block[i+len(crlf):]
		} else {
			block = nil
		}
		if len(line) == 0 {
			continue
		}
		k, v, ok := bytes.Cut(line, []byte{':'})
		if !ok {
			return nil, httperrors.Newf(httperrors.MalformedHeaderLine, "no colon in %q", line)
		}
		if err := h.Add(textproto.TrimString(string(k)), textproto.TrimString(string(v))); err != nil {
			return nil, httperrors.New(httperrors.MalformedHeaderLine, err)
		}
	}
	return h, nil
}

// isSpace reports ASCII whitespace.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isSpaceRune(r rune) bool {
	return r < 0x80 && isSpace(byte(r))
}
