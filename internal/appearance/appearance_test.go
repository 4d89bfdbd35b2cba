package appearance

import (
	"bytes"
	"errors"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestThemeColor_Normalized(t *testing.T) {
	c := ThemeColor{R: 255, G: 0, B: 51}.Normalized()
	require.InDelta(t, 1.0, c.R, 1e-9)
	require.InDelta(t, 0.0, c.G, 1e-9)
	require.InDelta(t, 0.2, c.B, 1e-9)

	require.Equal(t, "#2f2f2f", DefaultColor.Normalized().Hex())
}

func TestThemeColor_ClampsOutOfRange(t *testing.T) {
	c := ThemeColor{R: -20, G: 300, B: math.NaN()}.Clamped()
	require.Equal(t, ThemeColor{R: 0, G: 255, B: 0}, c)

	n := ThemeColor{R: math.Inf(1), G: math.Inf(-1), B: 1e9}.Normalized()
	require.Equal(t, colorful.Color{R: 1, G: 0, B: 1}, n)
}

func TestNew_SelectsController(t *testing.T) {
	require.IsType(t, noopController{}, New(plainWindow{label: "main"}, nil))
	require.IsType(t, noopController{}, New(nil, nil))
	require.IsType(t, &nativeController{}, New(&recordingSurface{}, nil))
}

func TestNoopController_DoesNotPanic(t *testing.T) {
	ctrl := New(plainWindow{label: "main"}, zap.NewNop())
	require.NotPanics(t, func() {
		ctrl.Apply(DefaultColor)
		ctrl.Apply(ThemeColor{R: -1, G: 1000, B: math.NaN()})
	})
}

func TestNativeController_AppliesEveryLayer(t *testing.T) {
	surface := &recordingSurface{draws: true}
	ctrl := New(surface, zap.NewNop())

	ctrl.Apply(DefaultColor)

	want := DefaultColor.Normalized()
	require.Equal(t, want, surface.window)
	require.Equal(t, want, surface.underPage)
	require.Equal(t, want, surface.layer)
	require.False(t, surface.draws)
	require.Equal(t, []string{"window", "underPage", "draws", "layer"}, surface.calls)
}

func TestNativeController_Idempotent(t *testing.T) {
	once := &recordingSurface{draws: true}
	twice := &recordingSurface{draws: true}

	New(once, nil).Apply(DefaultColor)
	ctrl := New(twice, nil)
	ctrl.Apply(DefaultColor)
	ctrl.Apply(DefaultColor)

	require.Equal(t, once.state(), twice.state())
}

func TestNativeController_OutOfRangeDoesNotPanic(t *testing.T) {
	surface := &recordingSurface{}
	ctrl := New(surface, nil)

	require.NotPanics(t, func() { ctrl.Apply(ThemeColor{R: -5, G: 512, B: 47}) })
	require.Equal(t, colorful.Color{R: 0, G: 1, B: 47.0 / 255}, surface.window)
}

func TestNativeController_FailuresAreLoggedNotPropagated(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	surface := &recordingSurface{
		draws:         true,
		failUnderPage: errors.New("web view not attached"),
		panicOnLayer:  true,
	}
	ctrl := New(surface, zap.New(core))

	require.NotPanics(t, func() { ctrl.Apply(DefaultColor) })

	// Steps after a failing step still run
	require.Equal(t, DefaultColor.Normalized(), surface.window)
	require.False(t, surface.draws)

	entries := logs.FilterMessage("failed to set window appearance").All()
	require.Len(t, entries, 2)
	require.Equal(t, "under-page background", entries[0].ContextMap()["step"])
	require.Equal(t, "layer background", entries[1].ContextMap()["step"])
}

func TestTerminalSurface(t *testing.T) {
	var buf bytes.Buffer
	surface := NewTerminalSurface(&buf)
	ctrl := New(surface, nil)

	ctrl.Apply(DefaultColor)

	out := buf.String()
	require.Contains(t, out, "]11;")
	require.Contains(t, out, "#2f2f2f")
	require.Equal(t, 1, strings.Count(out, "]11;"), "layer step must not repeat the window step")
	require.Equal(t, DefaultColor.Normalized(), surface.Background())
}

func TestTerminalSurface_RestoreBackground(t *testing.T) {
	var buf bytes.Buffer
	surface := NewTerminalSurface(&buf)

	require.NoError(t, surface.RestoreBackground())
	require.Empty(t, buf.String(), "an untouched terminal is left alone")

	New(surface, nil).Apply(DefaultColor)
	require.NoError(t, surface.RestoreBackground())
	require.True(t, strings.HasSuffix(buf.String(), "\x1b]111\a"))

	buf.Reset()
	require.NoError(t, surface.RestoreBackground())
	require.Empty(t, buf.String())
}

func TestNewTerminalWindow_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	w := NewTerminalWindow(f)
	_, isSurface := w.(Surface)
	require.False(t, isSurface)
	require.IsType(t, noopController{}, New(w, nil))
}

// recordingSurface records every styling call
type recordingSurface struct {
	window, underPage, layer colorful.Color
	draws                    bool
	calls                    []string

	failUnderPage error
	panicOnLayer  bool
}

func (rs *recordingSurface) Label() string { return "recording" }

func (rs *recordingSurface) SetWindowBackground(c colorful.Color) error {
	rs.calls = append(rs.calls, "window")
	rs.window = c
	return nil
}

func (rs *recordingSurface) SetUnderPageBackground(c colorful.Color) error {
	rs.calls = append(rs.calls, "underPage")
	if rs.failUnderPage != nil {
		return rs.failUnderPage
	}
	rs.underPage = c
	return nil
}

func (rs *recordingSurface) SetDrawsBackground(draws bool) error {
	rs.calls = append(rs.calls, "draws")
	rs.draws = draws
	return nil
}

func (rs *recordingSurface) SetLayerBackground(c colorful.Color) error {
	rs.calls = append(rs.calls, "layer")
	if rs.panicOnLayer {
		panic("layer is nil")
	}
	rs.layer = c
	return nil
}

func (rs *recordingSurface) state() [4]any {
	return [4]any{rs.window, rs.underPage, rs.layer, rs.draws}
}
