package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/cchalm/svgtsx/internal/appearance"
	"github.com/cchalm/svgtsx/internal/clipboard"
	"github.com/cchalm/svgtsx/internal/commands"
	"github.com/cchalm/svgtsx/internal/dialog"
	"github.com/cchalm/svgtsx/internal/dialog/tui"
	"github.com/cchalm/svgtsx/internal/fileaccess"
	"github.com/cchalm/svgtsx/internal/filesystem"
	"github.com/cchalm/svgtsx/internal/logging"
)

func setupContext(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)

	// Setup graceful shutdown
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		logging.Logger().Info("interrupt signal detected, shutting down gracefully...")
		cancel()
		<-interrupt
		logging.Logger().Fatal("forcing shutdown")
	}()

	return ctx
}

// session is one run of the application: the host window plus every command bound to it
type session struct {
	window     appearance.Window
	appearance appearance.Controller
	registry   *commands.Registry
	styled     bool
}

// sessionOptions controls how a session is built
type sessionOptions struct {
	// interactive sessions style the window at startup and restore it on close
	interactive bool
	// window hosts the session. Defaults to the terminal on stderr
	window appearance.Window
}

func newSession(opts sessionOptions) *session {
	logger := logging.Logger()

	window := opts.window
	if window == nil {
		window = appearance.NewTerminalWindow(os.Stderr)
	}
	controller := appearance.New(window, logger.Named("appearance"))

	picker := tui.New(tui.Options{
		StartDir:   settings.Dialog.StartDir,
		ShowHidden: settings.Dialog.ShowHidden,
		Output:     os.Stderr,
	})

	registry := commands.NewRegistry(commands.Deps{
		Files:      fileaccess.New(filesystem.NewOSFileSystem()),
		Dialogs:    dialog.NewBridge(picker),
		Appearance: controller,
		Clipboard:  clipboard.System{},
	})

	s := &session{window: window, appearance: controller, registry: registry}
	if opts.interactive {
		s.applyStartupTheme(logger)
	}
	return s
}

func (s *session) applyStartupTheme(logger *zap.Logger) {
	color := appearance.ThemeColor{R: settings.Theme.R, G: settings.Theme.G, B: settings.Theme.B}
	logger.Debug("applying startup theme", zap.Float64("r", color.R), zap.Float64("g", color.G), zap.Float64("b", color.B))
	s.appearance.Apply(color)
	s.styled = true
}

// close gives the window back the styling it had before an interactive session started
func (s *session) close() {
	if !s.styled {
		return
	}
	s.styled = false
	if r, ok := s.window.(appearance.Restorer); ok {
		if err := r.RestoreBackground(); err != nil {
			logging.Logger().Warn("failed to restore window appearance", zap.Error(err))
		}
	}
}

// commandError turns a failed response into an error, adding the front end's prefix for the operation
func commandError(prefix string, resp commands.Response) error {
	if resp.Error == "" {
		return nil
	}
	return errors.New(prefix + ": " + resp.Error)
}
