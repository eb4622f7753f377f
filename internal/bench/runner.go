// Package bench load-checks a hello-http server: it issues a fixed
// number of GET requests from concurrent workers and verifies every
// response byte-for-byte against the expected status and body, so a
// run doubles as a cross-talk check under concurrency.
package bench

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/valyala/fasthttp"
	"go.uber.org/atomic"
	"golang.org/x/time/rate"
)

const clientName = "hello-bench"

// Config is the configuration of a bench run.
type Config struct {
	URL      string
	Requests uint64
	Workers  uint
	Rate     int // requests per second across all workers; 0 = unlimited
	Status   int
	Body     string
	BurnIn   uint64
}

// AddToFlagSet adds command line flags needed by the Config to the flag set.
func (c *Config) AddToFlagSet(fs *pflag.FlagSet) {
	fs.StringVar(&c.URL, "url", "http://127.0.0.1:3000/hello", "URL to request.")
	fs.Uint64Var(&c.Requests, "requests", 1000, "Total number of requests to send.")
	fs.UintVar(&c.Workers, "workers", 8, "Number of concurrent workers.")
	fs.IntVar(&c.Rate, "rate", 0, "Global request rate limit in requests/sec, 0 = unlimited.")
	fs.IntVar(&c.Status, "status", fasthttp.StatusOK, "Expected response status code.")
	fs.StringVar(&c.Body, "body", "Hello world", "Expected response body, compared byte-for-byte.")
	fs.Uint64Var(&c.BurnIn, "burn-in", 0, "Number of responses to exclude from latency stats (still verified).")
}

func (c Config) validate() error {
	if c.Requests == 0 {
		return errors.New("requests must be greater than 0")
	}
	if c.Workers == 0 {
		return errors.New("workers must be greater than 0")
	}
	if c.BurnIn >= c.Requests {
		return errors.Errorf("burn-in %d leaves no requests to measure out of %d", c.BurnIn, c.Requests)
	}
	return nil
}

// Summary is the outcome of a bench run.  OK + Mismatched + Failed
// always equals Requests.
type Summary struct {
	Requests   uint64
	OK         uint64
	Mismatched uint64 // completed responses with the wrong status or body
	Failed     uint64 // transport-level errors
	Took       time.Duration

	col *collector
}

// AllOK reports whether every request came back with the expected
// status and body.
func (s *Summary) AllOK() bool {
	return s.Mismatched == 0 && s.Failed == 0
}

// Write prints the run summary to w.
func (s *Summary) Write(w io.Writer) error {
	secs := s.Took.Seconds()
	_, err := fmt.Fprintf(w, "ran %d requests in %0.3fsec with rate %0.2f requests/sec\n",
		s.Requests, secs, float64(s.Requests)/secs)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "ok: %d, mismatched: %d, failed: %d\n", s.OK, s.Mismatched, s.Failed); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "latency "); err != nil {
		return err
	}
	if err := s.col.group.write(w); err != nil {
		return err
	}
	q := s.col.quantiles()
	_, err = fmt.Fprintf(w, "latency quantiles: p50: %0.2fms, p95: %0.2fms, p99: %0.2fms, max: %0.2fms\n",
		q["q50"], q["q95"], q["q99"], q["q100"])
	return err
}

// Runner drives a bench run.
type Runner struct {
	cfg     Config
	limiter *rate.Limiter

	ok         atomic.Uint64
	mismatched atomic.Uint64
	failed     atomic.Uint64
}

// NewRunner returns a Runner for the given configuration.
func NewRunner(cfg Config) *Runner {
	r := &Runner{cfg: cfg}
	if cfg.Rate > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), int(cfg.Workers))
	}
	return r
}

// Run sends the configured number of requests and blocks until every
// worker and the stat collector have finished.
func (r *Runner) Run() (*Summary, error) {
	if err := r.cfg.validate(); err != nil {
		return nil, err
	}

	col := newCollector(r.cfg.BurnIn, r.cfg.Requests, r.cfg.Workers)
	jobs := make(chan struct{}, r.cfg.Workers)

	var wg sync.WaitGroup
	start := time.Now()
	for i := uint(0); i < r.cfg.Workers; i++ {
		wg.Add(1)
		go r.worker(&wg, jobs, col)
	}
	for i := uint64(0); i < r.cfg.Requests; i++ {
		jobs <- struct{}{}
	}
	close(jobs)
	wg.Wait()
	col.closeAndWait()

	return &Summary{
		Requests:   r.cfg.Requests,
		OK:         r.ok.Load(),
		Mismatched: r.mismatched.Load(),
		Failed:     r.failed.Load(),
		Took:       time.Since(start),
		col:        col,
	}, nil
}

// worker pulls jobs off the channel and issues one request per job.
// Each worker owns its own client; nothing mutable is shared except
// the atomic counters and the collector channel.
func (r *Runner) worker(wg *sync.WaitGroup, jobs <-chan struct{}, col *collector) {
	defer wg.Done()

	client := fasthttp.Client{Name: clientName}
	wantBody := []byte(r.cfg.Body)

	for range jobs {
		if r.limiter != nil {
			_ = r.limiter.Wait(context.Background())
		}

		req := fasthttp.AcquireRequest()
		req.Header.SetMethod(fasthttp.MethodGet)
		req.SetRequestURI(r.cfg.URL)
		resp := fasthttp.AcquireResponse()

		start := time.Now()
		err := client.Do(req, resp)
		lat := time.Since(start)

		switch {
		case err != nil:
			r.failed.Inc()
		case resp.StatusCode() != r.cfg.Status:
			r.mismatched.Inc()
		case !bytes.Equal(resp.Body(), wantBody):
			r.mismatched.Inc()
		default:
			r.ok.Inc()
		}
		if err == nil {
			col.send(lat)
		}

		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}
}
