package bench

import (
	"math"
	"testing"
	"time"
)

func TestStatGroupPush(t *testing.T) {
	sg := newStatGroup(0)
	for _, v := range []float64{10, 20, 30, 40, 50} {
		sg.push(v)
	}

	if sg.count != 5 {
		t.Errorf("count = %d, want 5", sg.count)
	}
	if sg.min != 10 {
		t.Errorf("min = %v, want 10", sg.min)
	}
	if sg.max != 50 {
		t.Errorf("max = %v, want 50", sg.max)
	}
	if sg.mean != 30 {
		t.Errorf("mean = %v, want 30", sg.mean)
	}
	if sg.sum != 150 {
		t.Errorf("sum = %v, want 150", sg.sum)
	}
	if got := sg.median(); got != 30 {
		t.Errorf("median = %v, want 30", got)
	}
	// sample stddev of 10..50 step 10
	if want := math.Sqrt(250); math.Abs(sg.stdDev-want) > 1e-9 {
		t.Errorf("stddev = %v, want %v", sg.stdDev, want)
	}
}

func TestStatGroupMedianEvenCount(t *testing.T) {
	sg := newStatGroup(4)
	for _, v := range []float64{4, 1, 3, 2} {
		sg.push(v)
	}
	if got := sg.median(); got != 2.5 {
		t.Errorf("median = %v, want 2.5", got)
	}
}

func TestCollectorBurnIn(t *testing.T) {
	col := newCollector(2, 5, 1)
	for i := 1; i <= 5; i++ {
		col.send(time.Duration(i) * time.Millisecond)
	}
	col.closeAndWait()

	if col.group.count != 3 {
		t.Errorf("count after burn-in = %d, want 3", col.group.count)
	}
	if col.group.min != 3 {
		t.Errorf("min after burn-in = %vms, want 3ms", col.group.min)
	}
}

func TestCollectorQuantiles(t *testing.T) {
	col := newCollector(0, 100, 1)
	for i := 1; i <= 100; i++ {
		col.send(time.Duration(i) * time.Millisecond)
	}
	col.closeAndWait()

	q := col.quantiles()
	if math.Abs(q["q50"]-50) > 2 {
		t.Errorf("q50 = %vms, want ~50ms", q["q50"])
	}
	if math.Abs(q["q100"]-100) > 2 {
		t.Errorf("q100 = %vms, want ~100ms", q["q100"])
	}
	if q["q50"] > q["q95"] || q["q95"] > q["q99"] || q["q99"] > q["q100"] {
		t.Errorf("quantiles not monotonic: %v", q)
	}
}

func TestCollectorEmpty(t *testing.T) {
	col := newCollector(0, 0, 1)
	col.closeAndWait()

	q := col.quantiles()
	for k, v := range q {
		if v != 0 {
			t.Errorf("%s = %v on empty collector, want 0", k, v)
		}
	}
}
