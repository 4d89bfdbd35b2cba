// Package tui provides a terminal file picker for hosts without a native dialog.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cchalm/svgtsx/internal/dialog"
)

// Options configures where the picker reads keys from and draws to
type Options struct {
	// StartDir is the directory the picker opens in. Defaults to the working directory
	StartDir string
	// ShowHidden lists dot files
	ShowHidden bool
	// Output receives the rendered picker. Defaults to stderr so stdout stays free for command results
	Output io.Writer
	// Input is read for key presses. When nil the controlling terminal is opened directly, which leaves stdin to the
	// caller
	Input io.Reader
}

// Picker is a dialog.Picker that runs a bubbletea program for each request. Requests share one terminal, so they run
// one at a time
type Picker struct {
	opts Options

	mu  sync.Mutex
	run func(ctx context.Context, m tea.Model) (tea.Model, error)
}

// New creates a terminal picker
func New(opts Options) *Picker {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	p := &Picker{opts: opts}
	p.run = p.runProgram
	return p
}

func (p *Picker) PickFile(ctx context.Context, req dialog.OpenRequest) (dialog.PickerResult, error) {
	startDir, err := p.startDir()
	if err != nil {
		return dialog.None(), err
	}
	m := newOpenModel(req.Filter, startDir, p.opts.ShowHidden)
	final, err := p.exclusive(ctx, m)
	if err != nil {
		return dialog.None(), err
	}
	return final.(openModel).result, nil
}

func (p *Picker) SaveFile(ctx context.Context, req dialog.SaveRequest) (dialog.PickerResult, error) {
	startDir, err := p.startDir()
	if err != nil {
		return dialog.None(), err
	}
	m := newSaveModel(req.Filter, startDir, req.SuggestedName)
	final, err := p.exclusive(ctx, m)
	if err != nil {
		return dialog.None(), err
	}
	return final.(saveModel).result, nil
}

func (p *Picker) exclusive(ctx context.Context, m tea.Model) (tea.Model, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.run(ctx, m)
}

func (p *Picker) runProgram(ctx context.Context, m tea.Model) (tea.Model, error) {
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(p.opts.Output),
	}
	if p.opts.Input != nil {
		opts = append(opts, tea.WithInput(p.opts.Input))
	} else {
		opts = append(opts, tea.WithInputTTY())
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil, ctx.Err()
	} else if err != nil {
		return nil, fmt.Errorf("failed to run picker: %w", err)
	}
	return final, nil
}

func (p *Picker) startDir() (string, error) {
	dir := p.opts.StartDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	if strings.HasPrefix(dir, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	return filepath.Abs(dir)
}

// allowedTypes converts filter extensions to the dotted form the file picker matches on
func allowedTypes(filter dialog.DialogFilter) []string {
	var types []string
	for _, ext := range filter.Extensions {
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" {
			continue
		}
		// The file picker matches case-sensitively, so offer both cases
		types = append(types, "."+strings.ToLower(ext), "."+strings.ToUpper(ext))
	}
	return types
}
