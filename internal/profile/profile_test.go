package profile

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestProfiler(out *bytes.Buffer) (*Profiler, *fakeClock) {
	p := New(true, out)
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	p.now = clock.now
	return p, clock
}

func TestStartStop(t *testing.T) {
	var out bytes.Buffer
	p, clock := newTestProfiler(&out)

	p.Start("load")
	clock.advance(30 * time.Millisecond)
	if d := p.Stop("load"); d != 30*time.Millisecond {
		t.Errorf("Stop = %v", d)
	}

	p.Start("load")
	clock.advance(10 * time.Millisecond)
	p.Stop("load")

	records := p.Records()
	if len(records) != 1 || records[0].Count != 2 || records[0].Total != 40*time.Millisecond {
		t.Fatalf("unexpected records %+v", records)
	}
	if avg := records[0].Average(); avg != 20*time.Millisecond {
		t.Errorf("Average = %v", avg)
	}
}

func TestUnmatchedStop(t *testing.T) {
	var out bytes.Buffer
	p, _ := newTestProfiler(&out)

	if d := p.Stop("never-started"); d != 0 {
		t.Errorf("Stop = %v, want 0", d)
	}
	if !strings.Contains(out.String(), "never-started") {
		t.Errorf("expected a warning, got %q", out.String())
	}
	if len(p.Records()) != 0 {
		t.Error("unmatched stop must not record")
	}
}

func TestMeasureStopsOnErrorAndPanic(t *testing.T) {
	var out bytes.Buffer
	p, clock := newTestProfiler(&out)

	boom := errors.New("boom")
	err := p.Measure("fails", func() error {
		clock.advance(time.Millisecond)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Measure returned %v", err)
	}

	func() {
		defer func() { _ = recover() }()
		_ = p.Measure("panics", func() error {
			clock.advance(time.Millisecond)
			panic("bad")
		})
	}()

	names := map[string]bool{}
	for _, r := range p.Records() {
		names[r.Name] = true
	}
	if !names["fails"] || !names["panics"] {
		t.Errorf("spans not closed: %+v", p.Records())
	}
}

func TestReportOrdering(t *testing.T) {
	var out bytes.Buffer
	p, clock := newTestProfiler(&out)

	for _, span := range []struct {
		name string
		d    time.Duration
	}{{"short", time.Millisecond}, {"long", 50 * time.Millisecond}, {"mid", 5 * time.Millisecond}} {
		p.Start(span.name)
		clock.advance(span.d)
		p.Stop(span.name)
	}

	var report bytes.Buffer
	p.Report(&report)
	text := report.String()
	long, mid, short := strings.Index(text, "long"), strings.Index(text, "mid"), strings.Index(text, "short")
	if !(long < mid && mid < short) {
		t.Errorf("report not sorted by total:\n%s", text)
	}
	if strings.Contains(text, "avg") {
		t.Errorf("single calls must not show an average:\n%s", text)
	}
}

func TestDisabledProfilerRunsOperations(t *testing.T) {
	var out bytes.Buffer
	p := New(false, &out)

	ran := false
	if err := p.Measure("op", func() error { ran = true; return nil }); err != nil {
		t.Fatal(err)
	}
	if !ran {
		t.Error("operation did not run")
	}
	if p.Records() != nil {
		t.Error("disabled profiler recorded spans")
	}

	var nilProfiler *Profiler
	if err := nilProfiler.Measure("op", func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	nilProfiler.Report(&out)
	if out.Len() != 0 {
		t.Errorf("disabled profiler wrote %q", out.String())
	}
}

func TestMeasureBatch(t *testing.T) {
	var out bytes.Buffer
	p, _ := newTestProfiler(&out)
	p.BatchThreshold = 10

	items := make([]int, 20)
	seen := 0
	err := MeasureBatch(p, "add files", items, func(i int, _ int) error {
		seen++
		return nil
	})
	if err != nil || seen != 20 {
		t.Fatalf("MeasureBatch = %v, saw %d", err, seen)
	}
	if !strings.Contains(out.String(), "20/20") {
		t.Errorf("expected progress output, got %q", out.String())
	}
	if r := p.Records(); len(r) != 1 || r[0].Count != 1 {
		t.Errorf("batch should be one span: %+v", r)
	}

	out.Reset()
	_ = MeasureBatch(p, "small", []int{1, 2}, func(int, int) error { return nil })
	if out.Len() != 0 {
		t.Errorf("small batch printed progress: %q", out.String())
	}

	stop := errors.New("stop")
	calls := 0
	err = MeasureBatch(p, "failing", items, func(i int, _ int) error {
		calls++
		if i == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || calls != 3 {
		t.Errorf("expected stop after 3 calls, got %v after %d", err, calls)
	}
}

func TestMeasureMemory(t *testing.T) {
	var out bytes.Buffer
	p, _ := newTestProfiler(&out)

	readings := []int64{1000, 4096}
	p.memory = func() int64 {
		v := readings[0]
		readings = readings[1:]
		return v
	}
	delta, err := p.MeasureMemory("load", func() error { return nil })
	if err != nil || delta != 3096 {
		t.Errorf("MeasureMemory = %d, %v", delta, err)
	}

	p.memory = func() int64 { return 0 }
	if delta, _ := p.MeasureMemory("unreadable", func() error { return nil }); delta != 0 {
		t.Errorf("failed sampling should read as zero delta, got %d", delta)
	}
}

func TestFormatBytesDelta(t *testing.T) {
	if got := FormatBytesDelta(2048); got != "+2.0 KiB" {
		t.Errorf("got %q", got)
	}
	if got := FormatBytesDelta(-2048); got != "-2.0 KiB" {
		t.Errorf("got %q", got)
	}
}

func TestReset(t *testing.T) {
	var out bytes.Buffer
	p, _ := newTestProfiler(&out)
	p.Start("a")
	p.Stop("a")
	p.Reset()
	if len(p.Records()) != 0 {
		t.Error("Reset kept records")
	}
}

func TestResidentMemoryDoesNotFail(t *testing.T) {
	if ResidentMemory() < 0 {
		t.Error("resident memory must not be negative")
	}
}
