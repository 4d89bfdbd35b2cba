// Package appearance keeps the main window's background in step with the front end's theme.
//
// Styling is best-effort. A window that cannot be styled gets a controller that does nothing, and a failure while
// styling is logged, never returned.
package appearance

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
)

// ThemeColor is an RGB triple with channels in [0,255]
type ThemeColor struct {
	R, G, B float64
}

// DefaultColor is applied at startup before the window becomes interactive
var DefaultColor = ThemeColor{R: 47, G: 47, B: 47}

// Clamped returns the color with each channel limited to [0,255]. NaN becomes 0
func (tc ThemeColor) Clamped() ThemeColor {
	return ThemeColor{R: clampChannel(tc.R), G: clampChannel(tc.G), B: clampChannel(tc.B)}
}

// Normalized returns the clamped color with channels scaled to [0,1]
func (tc ThemeColor) Normalized() colorful.Color {
	c := tc.Clamped()
	return colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}
}

func clampChannel(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(255, v))
}

// Window is the host's main window handle. It is borrowed, never owned
type Window interface {
	Label() string
}

// Surface is implemented by windows that expose native styling. Every compositing layer is set to the same color,
// otherwise the window flashes its default color during resize and load
type Surface interface {
	Window

	// SetWindowBackground sets the native window's background
	SetWindowBackground(c colorful.Color) error
	// SetUnderPageBackground sets the color shown behind the web content when it overscrolls or has not painted yet
	SetUnderPageBackground(c colorful.Color) error
	// SetDrawsBackground toggles whether the web surface paints its own default background
	SetDrawsBackground(draws bool) error
	// SetLayerBackground sets the background of the surface's backing layer
	SetLayerBackground(c colorful.Color) error
}

// Restorer is implemented by surfaces whose styling outlives the process, such as the hosting terminal
type Restorer interface {
	RestoreBackground() error
}

// Controller applies theme colors to a window
type Controller interface {
	Apply(color ThemeColor)
}

// New picks the controller for w: native styling when w is a Surface, a no-op otherwise
func New(w Window, logger *zap.Logger) Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if s, ok := w.(Surface); ok {
		return &nativeController{surface: s, logger: logger}
	}
	if w != nil {
		logger.Debug("window does not support native styling", zap.String("window", w.Label()))
	}
	return noopController{}
}

type noopController struct{}

func (noopController) Apply(ThemeColor) {}

type nativeController struct {
	surface Surface
	logger  *zap.Logger
}

// Apply sets every layer of the surface to color. The steps are independent; a failing step is logged and the
// remaining steps still run
func (nc *nativeController) Apply(color ThemeColor) {
	c := color.Normalized()

	steps := []struct {
		name string
		fn   func() error
	}{
		{"window background", func() error { return nc.surface.SetWindowBackground(c) }},
		{"under-page background", func() error { return nc.surface.SetUnderPageBackground(c) }},
		{"draws background", func() error { return nc.surface.SetDrawsBackground(false) }},
		{"layer background", func() error { return nc.surface.SetLayerBackground(c) }},
	}
	for _, step := range steps {
		if err := runStep(step.fn); err != nil {
			nc.logger.Warn("failed to set window appearance",
				zap.String("window", nc.surface.Label()),
				zap.String("step", step.name),
				zap.String("color", c.Hex()),
				zap.Error(err),
			)
		}
	}
}

// runStep converts a panic inside a styling call into an error
func runStep(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("styling call panicked: %v", r)
		}
	}()
	return fn()
}
