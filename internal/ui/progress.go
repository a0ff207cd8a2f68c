package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Progress reports coarse progress for counted operations. On a terminal it
// redraws one line; otherwise it prints a line per step.
type Progress struct {
	w       io.Writer
	tty     bool
	message string
	total   int
	step    int // report every step items
	last    int
}

// NewProgress creates a progress reporter that reports every tenth of total.
func NewProgress(w io.Writer, message string, total int) *Progress {
	step := total / 10
	if step < 1 {
		step = 1
	}
	return &Progress{
		w:       w,
		tty:     isTerminal(w),
		message: message,
		total:   total,
		step:    step,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Update records that current items are done, printing when a step boundary
// is crossed.
func (p *Progress) Update(current int) {
	if current < p.last+p.step && current != p.total {
		return
	}
	p.last = current
	pct := 100
	if p.total > 0 {
		pct = current * 100 / p.total
	}
	line := fmt.Sprintf("%s %s", p.message, Muted.Render(fmt.Sprintf("(%d/%d, %d%%)", current, p.total, pct)))
	if p.tty {
		fmt.Fprintf(p.w, "\r\033[K%s", line)
		return
	}
	fmt.Fprintln(p.w, line)
}

// Done finishes the progress line.
func (p *Progress) Done() {
	if p.tty {
		fmt.Fprint(p.w, "\r\033[K")
	}
}
