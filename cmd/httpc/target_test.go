package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want target
	}{
		{"example.com", target{Host: "example.com"}},
		{"http://example.com", target{Host: "example.com"}},
		{"https://example.com", target{Host: "example.com", UseTLS: true}},
		{"example.com:8080", target{Host: "example.com", Port: 8080}},
		{"https://example.com:8443/a/b?c=d", target{Host: "example.com", Port: 8443, Path: "/a/b?c=d", UseTLS: true}},
		{"example.com/x:y", target{Host: "example.com", Path: "/x:y"}},
		{"example.com:65535", target{Host: "example.com", Port: 65535}},
		{"10.0.0.1:1/", target{Host: "10.0.0.1", Port: 1, Path: "/"}},
		{"http://[::1]:8080/get", target{Host: "::1", Port: 8080, Path: "/get"}},
		{"[fe80::1%eth0]", target{Host: "fe80::1%eth0"}},
	} {
		got, err := parseTarget(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, *got, tc.in)
	}
}

func TestParseTargetInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"http://",
		"https://",
		":80",
		"example.com:",
		"example.com:/path",
		"example.com:0",
		"example.com:65536",
		"example.com:http",
		"example.com:80abc",
		"example.com:-1",
		"https://:443/",
		"[::1",
		"[::1]x",
		"[not-an-ip]:80",
	} {
		_, err := parseTarget(in)
		assert.Error(t, err, in)
	}
}

func TestParseHeader(t *testing.T) {
	for _, tc := range []struct {
		in         string
		key, value string
		ok         bool
	}{
		{in: "foo"},
		{in: ""},
		{in: ":"},
		{in: "   :"},
		{in: ":   "},
		{in: "  :  "},
		{in: "key:"},
		{in: "key  : "},
		{in: "  key:  "},
		{in: ": value"},
		{in: "key:value", key: "key", value: "value", ok: true},
		{in: "  key :    value  ", key: "key", value: "value", ok: true},
		{in: "  key : 'value1 value2'  ", key: "key", value: "'value1 value2'", ok: true},
		{in: "Host: example.com:8080", key: "Host", value: "example.com:8080", ok: true},
	} {
		k, v, err := parseHeader(tc.in)
		if !tc.ok {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.key, k)
		assert.Equal(t, tc.value, v)
	}

	_, _, err := parseHeader("foo")
	assert.ErrorIs(t, err, errMissingColon)
}
