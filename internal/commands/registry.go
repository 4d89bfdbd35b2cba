// Package commands exposes the front end's command surface: named operations with JSON arguments that return a
// result or a single descriptive error message.
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/cchalm/svgtsx/internal/appearance"
	"github.com/cchalm/svgtsx/internal/clipboard"
	"github.com/cchalm/svgtsx/internal/dialog"
	"github.com/cchalm/svgtsx/internal/fileaccess"
	"github.com/cchalm/svgtsx/internal/logging"
	"github.com/cchalm/svgtsx/internal/telemetry"
)

// Command is a single invocable operation
type Command interface {
	// Run parses args and performs the command. It returns the JSON-encodable result, or an error whose message is
	// shown to the user
	Run(ctx context.Context, args json.RawMessage) (any, error)
}

// ArgumentError means the arguments could not be decoded. The command had no side effects
type ArgumentError struct {
	command string
	cause   error
}

func (ae ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", ae.command, ae.cause)
}

func (ae ArgumentError) Unwrap() error {
	return ae.cause
}

// Response is the outcome of one invocation. Error is empty on success
type Response struct {
	Result any    `json:"result"`
	Error  string `json:"error,omitempty"`
}

// Deps are the collaborators commands are built from. A nil collaborator leaves its commands unregistered
type Deps struct {
	Files      *fileaccess.Service
	Dialogs    *dialog.Bridge
	Appearance appearance.Controller
	Clipboard  clipboard.Clipboard
}

// Registry maps command names to commands. It is read-only after construction, so invocations may run concurrently
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates a registry with every command its dependencies support
func NewRegistry(deps Deps) *Registry {
	registry := &Registry{
		commands: make(map[string]Command),
	}

	if deps.Files != nil {
		registry.register("read_svg_file", &ReadSVGFileCommand{files: deps.Files})
		registry.register("save_tsx_file", &SaveTSXFileCommand{files: deps.Files})
	}
	if deps.Dialogs != nil {
		registry.register("open_file_dialog", &OpenFileDialogCommand{dialogs: deps.Dialogs})
		registry.register("save_file_dialog", &SaveFileDialogCommand{dialogs: deps.Dialogs})
	}
	if deps.Appearance != nil {
		registry.register("set_theme_color", &SetThemeColorCommand{controller: deps.Appearance})
	}
	if deps.Clipboard != nil {
		registry.register("copy_to_clipboard", &CopyToClipboardCommand{clipboard: deps.Clipboard})
	}

	return registry
}

func (r *Registry) register(name string, cmd Command) {
	r.commands[name] = cmd
}

// Names returns the registered command names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named command. Failures are flattened into Response.Error; Invoke itself never fails
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) Response {
	id := telemetry.NewInvocationID()
	ctx, span := telemetry.StartCommandSpan(ctx, name, id)
	defer span.End()

	logger := logging.Logger().With(zap.String("command", name), zap.String("invocation_id", id))
	start := time.Now()

	cmd := r.commands[name]
	if cmd == nil {
		err := fmt.Errorf("unknown command: %s", name)
		telemetry.RecordError(span, err)
		logger.Warn("unknown command")
		return Response{Error: err.Error()}
	}

	result, err := cmd.Run(ctx, args)
	if err != nil {
		telemetry.RecordError(span, err)
		logger.Info("command failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)), zap.String("kind", errorKind(err)))
		return Response{Error: err.Error()}
	}

	telemetry.SetOK(span)
	logger.Debug("command succeeded", zap.Duration("elapsed", time.Since(start)))
	return Response{Result: result}
}

func errorKind(err error) string {
	var ae ArgumentError
	switch {
	case errors.As(err, &ae):
		return "invalid_arguments"
	case errors.Is(err, fileaccess.ErrInvalidExtension):
		return "invalid_extension"
	case errors.Is(err, fileaccess.ErrNotFound):
		return "not_found"
	case errors.Is(err, fileaccess.ErrIoFailure):
		return "io_failure"
	}
	return "other"
}

// parseArgs decodes args into target. Missing or null args leave target at its zero value
func parseArgs(command string, args json.RawMessage, target any) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, target); err != nil {
		return ArgumentError{command: command, cause: err}
	}
	return nil
}
