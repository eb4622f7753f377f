package bench

import (
	"fmt"
	"io"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// histogram bounds: latencies recorded in microseconds, up to one minute.
const (
	histMinValue = 1
	histMaxValue = 60 * 1000 * 1000
	histSigFigs  = 3
)

// statGroup collects simple streaming statistics.
type statGroup struct {
	min    float64
	max    float64
	mean   float64
	sum    float64
	values []float64

	// used for stddev calculations
	m      float64
	s      float64
	stdDev float64

	count int64
}

func newStatGroup(size uint64) *statGroup {
	return &statGroup{
		values: make([]float64, size),
		count:  0,
	}
}

// median returns the median value of the statGroup.
func (s *statGroup) median() float64 {
	sort.Float64s(s.values[:s.count])
	if s.count == 0 {
		return 0
	} else if s.count%2 == 0 {
		idx := s.count / 2
		return (s.values[idx] + s.values[idx-1]) / 2.0
	}
	return s.values[s.count/2]
}

// push updates a statGroup with a new value.
func (s *statGroup) push(n float64) {
	if s.count == 0 {
		s.min = n
		s.max = n
		s.mean = n
		s.count = 1
		s.sum = n

		s.m = n
		s.s = 0.0
		s.stdDev = 0.0
		if len(s.values) > 0 {
			s.values[0] = n
		} else {
			s.values = append(s.values, n)
		}
		return
	}

	if n < s.min {
		s.min = n
	}
	if n > s.max {
		s.max = n
	}

	s.sum += n

	// constant-space mean update:
	sum := s.mean*float64(s.count) + n
	s.mean = sum / float64(s.count+1)
	if int(s.count) == len(s.values) {
		s.values = append(s.values, n)
	} else {
		s.values[s.count] = n
	}

	s.count++

	oldM := s.m
	s.m += (n - oldM) / float64(s.count)
	s.s += (n - oldM) * (n - s.m)
	s.stdDev = math.Sqrt(s.s / (float64(s.count) - 1.0))
}

func (s *statGroup) String() string {
	return fmt.Sprintf("min: %8.2fms, med: %8.2fms, mean: %8.2fms, max: %7.2fms, stddev: %8.2fms, sum: %5.1fsec, count: %d",
		s.min, s.median(), s.mean, s.max, s.stdDev, s.sum/1e3, s.count)
}

func (s *statGroup) write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n", s.String())
	return err
}

// collector aggregates per-request latencies on a single goroutine so
// the workers never share a mutable stat structure.  Values are kept
// both in a statGroup (for the summary line) and an HDR histogram (for
// quantiles).
type collector struct {
	c      chan time.Duration
	wg     sync.WaitGroup
	burnIn uint64
	seen   uint64
	group  *statGroup
	hist   *hdrhistogram.Histogram
}

func newCollector(burnIn, sizeHint uint64, workers uint) *collector {
	col := &collector{
		c:      make(chan time.Duration, workers),
		burnIn: burnIn,
		group:  newStatGroup(sizeHint),
		hist:   hdrhistogram.New(histMinValue, histMaxValue, histSigFigs),
	}
	col.wg.Add(1)
	go col.process()
	return col
}

// send hands one request latency to the collector.
func (c *collector) send(d time.Duration) {
	c.c <- d
}

// process drains the latency channel, skipping the first burnIn values.
func (c *collector) process() {
	defer c.wg.Done()
	for d := range c.c {
		c.seen++
		if c.seen <= c.burnIn {
			continue
		}
		c.group.push(float64(d.Nanoseconds()) / 1e6)
		_ = c.hist.RecordValue(d.Microseconds())
	}
}

// closeAndWait stops the collector and blocks until all sent latencies
// have been aggregated.
func (c *collector) closeAndWait() {
	close(c.c)
	c.wg.Wait()
}

// quantiles reports latency quantiles in milliseconds.
func (c *collector) quantiles() map[string]float64 {
	q50 := 0.0
	q95 := 0.0
	q99 := 0.0
	q100 := 0.0
	if c.hist.TotalCount() > 0 {
		q50 = float64(c.hist.ValueAtQuantile(50.0)) / 10e2
		q95 = float64(c.hist.ValueAtQuantile(95.0)) / 10e2
		q99 = float64(c.hist.ValueAtQuantile(99.0)) / 10e2
		q100 = float64(c.hist.ValueAtQuantile(100.0)) / 10e2
	}
	return map[string]float64{"q50": q50, "q95": q95, "q99": q99, "q100": q100}
}
