// Package dialog bridges file picker dialogs into the command layer. The bridge declares what the picker should offer
// and normalizes what comes back; it never validates the chosen path.
package dialog

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// DialogFilter describes which file kinds a picker should offer. It only hints the picker's UI
type DialogFilter struct {
	Label      string
	Extensions []string // without the leading dot, e.g. "svg"
}

var (
	SVGFilter = DialogFilter{Label: "SVG Files", Extensions: []string{"svg"}}
	TSXFilter = DialogFilter{Label: "TypeScript React", Extensions: []string{"tsx"}}
)

// DefaultSaveName is suggested when the caller does not supply a name
const DefaultSaveName = "Icon.tsx"

// ResultKind tags a PickerResult
type ResultKind int

const (
	ResultNone ResultKind = iota
	ResultLocalPath
	ResultRemoteReference
)

// PickerResult is what a picker returns: a local path, a remote reference, or nothing when the user cancelled. A
// remote reference must never be opened as a local path
type PickerResult struct {
	kind ResultKind
	path string
	url  *url.URL
}

// None is the cancelled result
func None() PickerResult {
	return PickerResult{kind: ResultNone}
}

// LocalPath wraps a path on the local file system
func LocalPath(path string) PickerResult {
	return PickerResult{kind: ResultLocalPath, path: path}
}

// RemoteReference wraps a URI that may need network access to resolve
func RemoteReference(u *url.URL) PickerResult {
	return PickerResult{kind: ResultRemoteReference, url: u}
}

func (pr PickerResult) Kind() ResultKind {
	return pr.kind
}

// Cancelled reports whether the user dismissed the picker
func (pr PickerResult) Cancelled() bool {
	return pr.kind == ResultNone
}

// Local returns the local path and true if the result is a local path
func (pr PickerResult) Local() (string, bool) {
	return pr.path, pr.kind == ResultLocalPath
}

// Remote returns the URL and true if the result is a remote reference
func (pr PickerResult) Remote() (*url.URL, bool) {
	return pr.url, pr.kind == ResultRemoteReference
}

// String collapses the result into its single string form. It is empty for a cancelled result
func (pr PickerResult) String() string {
	switch pr.kind {
	case ResultLocalPath:
		return pr.path
	case ResultRemoteReference:
		if pr.url == nil {
			return ""
		}
		return pr.url.String()
	}
	return ""
}

// OpenRequest is passed to a Picker when choosing an existing file
type OpenRequest struct {
	Filter DialogFilter
}

// SaveRequest is passed to a Picker when choosing a save location
type SaveRequest struct {
	Filter        DialogFilter
	SuggestedName string
}

// Picker is the host-provided dialog. Both methods block until the user chooses or cancels; cancellation is reported
// as None with a nil error
type Picker interface {
	PickFile(ctx context.Context, req OpenRequest) (PickerResult, error)
	SaveFile(ctx context.Context, req SaveRequest) (PickerResult, error)
}

// Bridge invokes a Picker with the declared filters
type Bridge struct {
	picker Picker
}

// NewBridge creates a Bridge over picker
func NewBridge(picker Picker) *Bridge {
	return &Bridge{picker: picker}
}

// Open asks the picker for an existing file matching filter
func (b *Bridge) Open(ctx context.Context, filter DialogFilter) (PickerResult, error) {
	result, err := b.picker.PickFile(ctx, OpenRequest{Filter: filter})
	if err != nil {
		return None(), fmt.Errorf("file picker failed: %w", err)
	}
	return result, nil
}

// Save asks the picker for a save location, suggesting suggestedName
func (b *Bridge) Save(ctx context.Context, filter DialogFilter, suggestedName string) (PickerResult, error) {
	if suggestedName == "" {
		suggestedName = DefaultSaveName
	}
	result, err := b.picker.SaveFile(ctx, SaveRequest{Filter: filter, SuggestedName: suggestedName})
	if err != nil {
		return None(), fmt.Errorf("save picker failed: %w", err)
	}
	return result, nil
}

// PickOpenPath returns the chosen path in string form, or false if the user cancelled
func (b *Bridge) PickOpenPath(ctx context.Context, filter DialogFilter) (string, bool, error) {
	result, err := b.Open(ctx, filter)
	if err != nil {
		return "", false, err
	}
	return result.String(), !result.Cancelled(), nil
}

// PickSavePath returns the chosen save location in string form, or false if the user cancelled
func (b *Bridge) PickSavePath(ctx context.Context, filter DialogFilter, suggestedName string) (string, bool, error) {
	result, err := b.Save(ctx, filter, suggestedName)
	if err != nil {
		return "", false, err
	}
	return result.String(), !result.Cancelled(), nil
}

// ParseResult classifies a raw location reported by a picker. file URLs are converted to local paths; any other
// string of the form scheme://... is a remote reference; everything else, including names that merely contain a
// colon, is a local path. An empty string is a cancellation
func ParseResult(raw string) PickerResult {
	if raw == "" {
		return None()
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// A one-letter scheme is a Windows drive letter
		return LocalPath(raw)
	}
	if u.Scheme == "file" {
		if u.Opaque != "" {
			return LocalPath(u.Opaque)
		}
		if u.Host == "" || u.Host == "localhost" {
			return LocalPath(u.Path)
		}
		return RemoteReference(u)
	}
	if !strings.Contains(raw, "://") {
		return LocalPath(raw)
	}
	return RemoteReference(u)
}
