package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cchalm/svgtsx/internal/appearance"
	"github.com/cchalm/svgtsx/internal/clipboard"
	"github.com/cchalm/svgtsx/internal/dialog"
	"github.com/cchalm/svgtsx/internal/fileaccess"
)

// ReadSVGFileCommand returns the content of an SVG file
type ReadSVGFileCommand struct {
	files *fileaccess.Service
}

type ReadSVGFileArgs struct {
	Path string `json:"path"`
}

func (c *ReadSVGFileCommand) Run(ctx context.Context, args json.RawMessage) (any, error) {
	var input ReadSVGFileArgs
	if err := parseArgs("read_svg_file", args, &input); err != nil {
		return nil, err
	}
	return c.files.ReadFile(ctx, input.Path)
}

// SaveTSXFileCommand writes generated code to a TSX file
type SaveTSXFileCommand struct {
	files *fileaccess.Service
}

type SaveTSXFileArgs struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func (c *SaveTSXFileCommand) Run(ctx context.Context, args json.RawMessage) (any, error) {
	var input SaveTSXFileArgs
	if err := parseArgs("save_tsx_file", args, &input); err != nil {
		return nil, err
	}
	return nil, c.files.WriteFile(ctx, input.Path, input.Content)
}

// OpenFileDialogCommand asks the user for an SVG file. The result is the chosen location, or null if cancelled
type OpenFileDialogCommand struct {
	dialogs *dialog.Bridge
}

func (c *OpenFileDialogCommand) Run(ctx context.Context, _ json.RawMessage) (any, error) {
	path, ok, err := c.dialogs.PickOpenPath(ctx, dialog.SVGFilter)
	return optionalPath(path, ok), err
}

// SaveFileDialogCommand asks the user where to save a TSX file
type SaveFileDialogCommand struct {
	dialogs *dialog.Bridge
}

type SaveFileDialogArgs struct {
	DefaultName string `json:"defaultName"`
}

func (c *SaveFileDialogCommand) Run(ctx context.Context, args json.RawMessage) (any, error) {
	var input SaveFileDialogArgs
	if err := parseArgs("save_file_dialog", args, &input); err != nil {
		return nil, err
	}
	path, ok, err := c.dialogs.PickSavePath(ctx, dialog.TSXFilter, input.DefaultName)
	return optionalPath(path, ok), err
}

// optionalPath is nil for a cancelled dialog so that it encodes as JSON null
func optionalPath(path string, ok bool) *string {
	if !ok {
		return nil
	}
	return &path
}

// SetThemeColorCommand syncs the window background with the front end's theme. It never fails once its arguments are
// decoded
type SetThemeColorCommand struct {
	controller appearance.Controller
}

type SetThemeColorArgs struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

func (c *SetThemeColorCommand) Run(_ context.Context, args json.RawMessage) (any, error) {
	var input SetThemeColorArgs
	if err := parseArgs("set_theme_color", args, &input); err != nil {
		return nil, err
	}
	c.controller.Apply(appearance.ThemeColor{R: input.R, G: input.G, B: input.B})
	return nil, nil
}

// CopyToClipboardCommand places text on the system clipboard
type CopyToClipboardCommand struct {
	clipboard clipboard.Clipboard
}

type CopyToClipboardArgs struct {
	Text string `json:"text"`
}

func (c *CopyToClipboardCommand) Run(_ context.Context, args json.RawMessage) (any, error) {
	var input CopyToClipboardArgs
	if err := parseArgs("copy_to_clipboard", args, &input); err != nil {
		return nil, err
	}
	if err := c.clipboard.WriteText(input.Text); err != nil {
		return nil, fmt.Errorf("Failed to copy to clipboard: %w", err)
	}
	return nil, nil
}
