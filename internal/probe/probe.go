// Package probe implements a readiness check against a running
// hello-http server.  It speaks only the server's public contract:
// GET the target URL, expect a status and (optionally) an exact body.
// With more than one attempt it doubles as a startup waiter for CI
// and container health checks.
package probe

import (
	"bytes"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/valyala/fasthttp"
)

const clientName = "hello-probe"

// Config is the configuration of a probe run.
type Config struct {
	URL      string
	Timeout  time.Duration
	Attempts int
	Interval time.Duration
	Status   int
	Body     string // expected response body; empty disables the body check
}

// AddToFlagSet adds command line flags needed by the Config to the flag set.
func (c *Config) AddToFlagSet(fs *pflag.FlagSet) {
	fs.StringVar(&c.URL, "url", "http://127.0.0.1:3000/hello", "URL to probe.")
	fs.DurationVar(&c.Timeout, "timeout", 2*time.Second, "Per-attempt request timeout.")
	fs.IntVar(&c.Attempts, "attempts", 1, "Number of attempts before giving up.")
	fs.DurationVar(&c.Interval, "interval", 500*time.Millisecond, "Pause between attempts.")
	fs.IntVar(&c.Status, "status", fasthttp.StatusOK, "Expected response status code.")
	fs.StringVar(&c.Body, "body", "Hello world", "Expected response body; empty string disables the body check.")
}

// Run probes the target until one attempt succeeds or the attempts run
// out.  It returns nil as soon as the server answers the expected
// status and body, otherwise the last error observed.
func Run(cfg Config) error {
	if cfg.Attempts < 1 {
		return errors.Errorf("attempts must be at least 1, got %d", cfg.Attempts)
	}

	client := &fasthttp.Client{
		Name:         clientName,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	}

	var lastErr error
	for i := 0; i < cfg.Attempts; i++ {
		if i > 0 {
			time.Sleep(cfg.Interval)
		}
		if lastErr = attempt(client, cfg); lastErr == nil {
			return nil
		}
	}
	return errors.Wrapf(lastErr, "not ready after %d attempt(s)", cfg.Attempts)
}

func attempt(client *fasthttp.Client, cfg Config) error {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(cfg.URL)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := client.DoTimeout(req, resp, cfg.Timeout); err != nil {
		return errors.Wrap(err, "request failed")
	}
	if sc := resp.StatusCode(); sc != cfg.Status {
		return errors.Errorf("unexpected status %d (want %d)", sc, cfg.Status)
	}
	if cfg.Body != "" && !bytes.Equal(resp.Body(), []byte(cfg.Body)) {
		return errors.Errorf("unexpected body %q (want %q)", resp.Body(), cfg.Body)
	}
	return nil
}
