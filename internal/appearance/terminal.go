package appearance

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// TerminalSurface styles the terminal hosting the application. A terminal composites a single layer, so the window
// and layer steps both map to the terminal's default background (OSC 11) and the remaining steps only record state
type TerminalSurface struct {
	mu     sync.Mutex
	output *termenv.Output

	background colorful.Color
	underPage  colorful.Color
	layer      colorful.Color
	draws      bool
	painted    bool
}

// NewTerminalWindow returns a styleable window for f when f is a terminal, and a window without native styling
// otherwise
func NewTerminalWindow(f *os.File) Window {
	if !term.IsTerminal(int(f.Fd())) {
		return plainWindow{label: f.Name()}
	}
	return NewTerminalSurface(f)
}

// NewTerminalSurface creates a surface that writes control sequences to w
func NewTerminalSurface(w io.Writer) *TerminalSurface {
	return &TerminalSurface{
		// OSC 11 takes a hex color regardless of the terminal's SGR color depth
		output: termenv.NewOutput(w, termenv.WithProfile(termenv.TrueColor)),
		draws:  true,
	}
}

func (ts *TerminalSurface) Label() string {
	return "terminal"
}

func (ts *TerminalSurface) SetWindowBackground(c colorful.Color) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.background = c
	ts.painted = true
	ts.output.SetBackgroundColor(ts.output.Color(c.Hex()))
	return nil
}

func (ts *TerminalSurface) SetUnderPageBackground(c colorful.Color) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.underPage = c
	return nil
}

func (ts *TerminalSurface) SetDrawsBackground(draws bool) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.draws = draws
	return nil
}

func (ts *TerminalSurface) SetLayerBackground(c colorful.Color) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.layer = c
	if ts.background != c {
		ts.background = c
		ts.painted = true
		ts.output.SetBackgroundColor(ts.output.Color(c.Hex()))
	}
	return nil
}

// RestoreBackground hands the background back to the terminal's own default (OSC 111). It does nothing if the
// background was never changed
func (ts *TerminalSurface) RestoreBackground() error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if !ts.painted {
		return nil
	}
	if _, err := ts.output.WriteString(termenv.OSC + "111" + string(termenv.BEL)); err != nil {
		return fmt.Errorf("failed to reset terminal background: %w", err)
	}
	ts.painted = false
	ts.background = colorful.Color{}
	return nil
}

// Background returns the color most recently applied to the terminal
func (ts *TerminalSurface) Background() colorful.Color {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.background
}

type plainWindow struct {
	label string
}

func (pw plainWindow) Label() string {
	return pw.label
}
