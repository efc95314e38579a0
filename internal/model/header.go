package model

import (
	"errors"
	"strings"
)

// MaxHeaderFields caps the number of entries a Header accepts.
const MaxHeaderFields = 256

var ErrTooManyHeaders = errors.New("httpc: too many header fields")

type Field struct {
	Key   string
	Value string
}

// Header is an ordered list of header fields. Keys are not unique: Add
// appends alongside earlier fields of the same name and lookups return the
// first match. Keys compare case-insensitively.
type Header []Field

func (h *Header) Add(key, value string) error {
	if len(*h) >= MaxHeaderFields {
		return ErrTooManyHeaders
	}
	*h = append(*h, Field{Key: key, Value: value})
	return nil
}

// Set replaces the value of the first field named key, appending a new
// field if there is none.
func (h *Header) Set(key, value string) error {
	if i := h.index(key); i >= 0 {
		(*h)[i].Value = value
		return nil
	}
	return h.Add(key, value)
}

func (h Header) index(key string) int {
	for i, f := range h {
		if strings.EqualFold(f.Key, key) {
			return i
		}
	}
	return -1
}

func (h Header) Lookup(key string) (string, bool) {
	if i := h.index(key); i >= 0 {
		return h[i].Value, true
	}
	return "", false
}

// Get returns the first value associated with key, or "".
func (h Header) Get(key string) string {
	v, _ := h.Lookup(key)
	return v
}

// Values returns every value associated with key, in insertion order.
func (h Header) Values(key string) []string {
	var vs []string
	for _, f := range h {
		if strings.EqualFold(f.Key, key) {
			vs = append(vs, f.Value)
		}
	}
	return vs
}

// Each calls fn on every field in order until fn returns false.
func (h Header) Each(fn func(key, value string) bool) {
	for _, f := range h {
		if !fn(f.Key, f.Value) {
			return
		}
	}
}

func (h Header) Clone() Header {
	if h == nil {
		return nil
	}
	return append(make(Header, 0, len(h)), h...)
}

// String renders the fields the way they appear on the wire:
//
//	Key: Value\r\n
//	Other: Value\r\n
func (h Header) String() string {
	var sb strings.Builder
	for _, f := range h {
		sb.WriteString(f.Key)
		sb.WriteString(": ")
		sb.WriteString(f.Value)
		sb.WriteString("\r\n")
	}
	return sb.String()
}

func (h Header) Len() int { return len(h) }
