package main

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// target is the parsed form of [http://|https://]host[:port][/path].
type target struct {
	Host   string
	Port   uint16 // 0 when absent
	Path   string // "" when absent
	UseTLS bool
}

var errMissingColon = errors.New("missing header colon-separator")

func parseTarget(s string) (*target, error) {
	if s == "" {
		return nil, errors.New("invalid target: empty")
	}
	t := &target{}
	rest := s
	if after, ok := strings.CutPrefix(rest, "https://"); ok {
		t.UseTLS, rest = true, after
	} else if after, ok := strings.CutPrefix(rest, "http://"); ok {
		rest = after
	}
	if rest == "" {
		return nil, fmt.Errorf("invalid target %q: hostname is missing", s)
	}

	// the path may contain colons, only look before the first slash
	hostport := rest
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		hostport, t.Path = rest[:i], rest[i:]
	}

	host, port, hasPort := hostport, "", false
	if strings.HasPrefix(hostport, "[") {
		end := strings.IndexByte(hostport, ']')
		if end < 0 {
			return nil, fmt.Errorf("invalid target %q: unterminated IPv6 literal", s)
		}
		host = hostport[1:end]
		switch tail := hostport[end+1:]; {
		case tail == "":
		case tail[0] == ':':
			port, hasPort = tail[1:], true
		default:
			return nil, fmt.Errorf("invalid target %q: garbage after IPv6 literal", s)
		}
		if net.ParseIP(strings.SplitN(host, "%", 2)[0]) == nil {
			return nil, fmt.Errorf("invalid target %q: bad IPv6 literal", s)
		}
	} else {
		host, port, hasPort = strings.Cut(hostport, ":")
	}

	if hasPort {
		if port == "" {
			return nil, fmt.Errorf("invalid target %q: port is missing", s)
		}
		n, err := strconv.ParseUint(port, 10, 16)
		if err != nil || n == 0 {
			return nil, fmt.Errorf("invalid target %q: port out of range: %s", s, port)
		}
		t.Port = uint16(n)
	}
	if host == "" {
		return nil, fmt.Errorf("invalid target %q: empty hostname", s)
	}
	t.Host = host
	return t, nil
}

// parseHeader splits "key: value" on the first colon. Both sides are
// trimmed and must not be empty.
func parseHeader(s string) (key, value string, err error) {
	k, v, ok := strings.Cut(s, ":")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", errMissingColon, s)
	}
	key, value = strings.TrimSpace(k), strings.TrimSpace(v)
	if key == "" || value == "" {
		return "", "", fmt.Errorf("invalid header %q: empty key or value", s)
	}
	return key, value, nil
}
