package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig holds defaults read from --config. Flags given on the command
// line take precedence.
type fileConfig struct {
	Timeout      time.Duration     `yaml:"timeout"`
	Headers      []string          `yaml:"headers"` // "Key: Value"
	DNSServer    string            `yaml:"dns_server"`
	Network      string            `yaml:"network"`
	StaticHosts  map[string]string `yaml:"static_hosts"`
	MaxReplySize int               `yaml:"max_reply_size"`
}

func loadConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	switch cfg.Network {
	case "", "ip", "ip4", "ip6":
	default:
		return nil, fmt.Errorf("config %s: network must be one of ip, ip4, ip6, got %q", path, cfg.Network)
	}
	if cfg.MaxReplySize < 0 {
		return nil, fmt.Errorf("config %s: negative max_reply_size", path)
	}
	return cfg, nil
}
