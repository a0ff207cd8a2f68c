package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is used when output is not a terminal or its size is
// unknown.
const DefaultTermWidth = 120

// minHelpWidth keeps rendered help readable on very narrow terminals.
const minHelpWidth = 40

// DisplayContext describes where command output goes. Help is rendered with
// glamour only when IsTTY is set.
type DisplayContext struct {
	TermWidth int
	IsTTY     bool
}

// NewDisplayContext inspects stdout.
func NewDisplayContext() *DisplayContext {
	return DetectDisplay(os.Stdout)
}

// DetectDisplay inspects f.
func DetectDisplay(f *os.File) *DisplayContext {
	d := &DisplayContext{TermWidth: DefaultTermWidth}
	fd := f.Fd()
	if !term.IsTerminal(fd) {
		return d
	}
	d.IsTTY = true
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		d.TermWidth = w
	}
	return d
}

// HelpWidth is the wrap width for rendered help, inside the left margin.
func (d *DisplayContext) HelpWidth() int {
	w := d.TermWidth - MarkdownRenderMargin
	if w < minHelpWidth {
		return minHelpWidth
	}
	return w
}
