package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/kr/pretty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	httpc "github.com/frankli0324/go-httpc"
	"github.com/frankli0324/go-httpc/driver"
)

var version = "0.1.0"

type args struct {
	Target     string        `arg:"positional,required" help:"[http://|https://]host[:port][/path]"`
	Headers    []string      `arg:"--http-header,separate" help:"set a key:value header, may be repeated"`
	Method     string        `arg:"-X,--method" help:"request method [default: GET]"`
	GetCode    bool          `arg:"--get-code" help:"display the reply code"`
	GetHeaders bool          `arg:"--get-headers" help:"display the reply headers"`
	GetBody    bool          `arg:"--get-body" help:"display the reply body"`
	Timeout    time.Duration `arg:"-t,--timeout,env:HTTPC_TIMEOUT" help:"connect, send and receive timeout [default: 5s]"`
	Driver     string        `arg:"--driver" help:"network driver, plain or tls [default: from the target scheme]"`
	Config     string        `arg:"-c,--config,env:HTTPC_CONFIG" help:"YAML file with default options"`
	Debug      bool          `arg:"-D,--debug" help:"enable debug logging"`
}

func (args) Version() string {
	return "httpc " + version
}

func (args) Description() string {
	return "httpc performs a single HTTP/1.1 request and prints the reply.\n"
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// buildRequest merges the command line over the config file.
func buildRequest(a *args, fc *fileConfig) (*httpc.Request, error) {
	t, err := parseTarget(a.Target)
	if err != nil {
		return nil, err
	}
	req := &httpc.Request{
		Method:  a.Method,
		Host:    t.Host,
		Port:    t.Port,
		Path:    t.Path,
		UseTLS:  t.UseTLS,
		Timeout: fc.Timeout,
	}
	if a.Timeout > 0 {
		req.Timeout = a.Timeout
	}
	if a.Driver != "" {
		d, err := driver.NewByName(a.Driver, nil)
		if err != nil {
			return nil, err
		}
		req.UseTLS = d.Kind() == driver.TLS
	}
	for _, h := range append(append([]string{}, fc.Headers...), a.Headers...) {
		k, v, err := parseHeader(h)
		if err != nil {
			return nil, err
		}
		if err := req.Header.Add(k, v); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func newClient(fc *fileConfig, log *zap.Logger) *httpc.Client {
	c := &httpc.Client{}
	c.UseLogger(log)
	if fc.DNSServer != "" {
		c.UseDNSServer(fc.DNSServer)
	}
	if fc.Network != "" {
		c.UseNetwork(fc.Network)
	}
	for host, addr := range fc.StaticHosts {
		c.UseStaticHost(host, addr)
	}
	if fc.MaxReplySize > 0 {
		c.UseConfig(func(cfg *driver.Config) { cfg.MaxReplySize = fc.MaxReplySize })
	}
	return c
}

// display prints the parts of reply that were asked for, in the order
// code, headers, body. Without any selection only the body is printed.
func display(w io.Writer, a *args, reply *httpc.Reply) error {
	code, headers, body := a.GetCode, a.GetHeaders, a.GetBody
	if !code && !headers && !body {
		body = true
	}
	if code {
		if _, err := fmt.Fprintf(w, "%d\n", reply.Code); err != nil {
			return err
		}
	}
	if headers {
		if _, err := fmt.Fprintf(w, "%s\n", reply.Header); err != nil {
			return err
		}
	}
	if body {
		if _, err := w.Write(reply.Body); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func run(ctx context.Context, a *args, stdout io.Writer, log *zap.Logger) error {
	fc, err := loadConfig(a.Config)
	if err != nil {
		return err
	}
	req, err := buildRequest(a, fc)
	if err != nil {
		return err
	}
	log.Debug("effective options", zap.String("request", pretty.Sprint(req)), zap.String("config", pretty.Sprint(fc)))

	reply, err := newClient(fc, log).CtxDo(ctx, req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", a.Target, err)
	}
	return display(stdout, a, reply)
}

func main() {
	var a args
	arg.MustParse(&a)

	log, err := newLogger(a.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(context.Background(), &a, os.Stdout, log); err != nil {
		log.Error("httpc", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}
