// Package profile times named operations and samples resident memory.
//
// A disabled or nil Profiler still runs every operation; it only skips the
// bookkeeping. Instrumentation never changes an operation's result.
package profile

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/aidanlsb/xcproj/internal/ui"
)

// DefaultBatchThreshold is the batch size from which progress is printed.
const DefaultBatchThreshold = 50

// Record is the accumulated timing of one named span.
type Record struct {
	Name  string
	Total time.Duration
	Count int
}

// Average returns the mean duration per call.
func (r Record) Average() time.Duration {
	if r.Count == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Count)
}

type memorySample struct {
	name  string
	delta int64
}

// Profiler accumulates timings for one process.
type Profiler struct {
	// BatchThreshold is the minimum batch size that prints progress.
	BatchThreshold int

	enabled bool
	out     io.Writer
	now     func() time.Time
	memory  func() int64

	started map[string]time.Time
	records map[string]*Record
	samples []memorySample
}

// New returns a profiler writing warnings and progress to out.
func New(enabled bool, out io.Writer) *Profiler {
	return &Profiler{
		BatchThreshold: DefaultBatchThreshold,
		enabled:        enabled,
		out:            out,
		now:            time.Now,
		memory:         ResidentMemory,
		started:        make(map[string]time.Time),
		records:        make(map[string]*Record),
	}
}

// Enabled reports whether timings are recorded.
func (p *Profiler) Enabled() bool {
	return p != nil && p.enabled
}

// Start opens a span.
func (p *Profiler) Start(name string) {
	if !p.Enabled() {
		return
	}
	p.started[name] = p.now()
}

// Stop closes a span and returns its duration. A stop without a start is
// reported and returns zero.
func (p *Profiler) Stop(name string) time.Duration {
	if !p.Enabled() {
		return 0
	}
	begin, ok := p.started[name]
	if !ok {
		fmt.Fprintln(p.out, ui.Warningf("timing stopped without start: %s", name))
		return 0
	}
	delete(p.started, name)

	d := p.now().Sub(begin)
	r := p.records[name]
	if r == nil {
		r = &Record{Name: name}
		p.records[name] = r
	}
	r.Total += d
	r.Count++
	return d
}

// Measure runs fn inside a span. The span is closed even if fn panics.
func (p *Profiler) Measure(name string, fn func() error) error {
	p.Start(name)
	defer p.Stop(name)
	return fn()
}

// MeasureBatch runs fn for every item inside one span, printing coarse
// progress for batches of at least BatchThreshold items. It stops at the
// first error.
func MeasureBatch[T any](p *Profiler, name string, items []T, fn func(int, T) error) error {
	return p.Measure(name, func() error {
		var progress *ui.Progress
		if p.Enabled() && p.BatchThreshold > 0 && len(items) >= p.BatchThreshold {
			progress = ui.NewProgress(p.out, name, len(items))
			defer progress.Done()
		}
		for i, item := range items {
			if err := fn(i, item); err != nil {
				return err
			}
			if progress != nil {
				progress.Update(i + 1)
			}
		}
		return nil
	})
}

// MeasureMemory runs fn and records the signed change in resident memory.
func (p *Profiler) MeasureMemory(name string, fn func() error) (int64, error) {
	if !p.Enabled() {
		return 0, fn()
	}
	before := p.memory()
	err := fn()
	after := p.memory()

	var delta int64
	if before > 0 && after > 0 {
		delta = after - before
	}
	p.samples = append(p.samples, memorySample{name: name, delta: delta})
	return delta, err
}

// Records returns the spans sorted by total duration, longest first.
func (p *Profiler) Records() []Record {
	if !p.Enabled() {
		return nil
	}
	out := make([]Record, 0, len(p.records))
	for _, r := range p.records {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Report writes the timing and memory summary to w.
func (p *Profiler) Report(w io.Writer) {
	if !p.Enabled() {
		return
	}
	records := p.Records()
	if len(records) == 0 && len(p.samples) == 0 {
		fmt.Fprintln(w, ui.Hint("No timings recorded"))
		return
	}

	fmt.Fprintln(w, ui.Header("Performance"))
	tbl := ui.NewTable(3)
	for _, r := range records {
		detail := ""
		if r.Count > 1 {
			detail = fmt.Sprintf("%s calls, avg %s", humanize.Comma(int64(r.Count)), formatDuration(r.Average()))
		}
		tbl.AddRow("  "+r.Name, formatDuration(r.Total), ui.Hint(detail))
	}
	for _, s := range p.samples {
		tbl.AddRow("  "+s.name, FormatBytesDelta(s.delta), ui.Hint("resident memory"))
	}
	fmt.Fprint(w, tbl.String())
}

// Reset drops every recorded span and sample.
func (p *Profiler) Reset() {
	if p == nil {
		return
	}
	p.started = make(map[string]time.Time)
	p.records = make(map[string]*Record)
	p.samples = nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(10 * time.Microsecond).String()
	default:
		return d.Round(time.Microsecond).String()
	}
}

// FormatBytesDelta renders a signed byte count, e.g. "+1.5 MiB".
func FormatBytesDelta(delta int64) string {
	if delta < 0 {
		return "-" + humanize.IBytes(uint64(-delta))
	}
	return "+" + humanize.IBytes(uint64(delta))
}
