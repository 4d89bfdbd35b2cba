// Package clipboard copies generated code to the system clipboard.
package clipboard

import (
	"fmt"

	atotto "github.com/atotto/clipboard"
)

// Clipboard is a write-only view of the system clipboard
type Clipboard interface {
	WriteText(text string) error
}

// System uses the host clipboard utilities (pbcopy, xclip, xsel, wl-copy or the Windows API)
type System struct{}

func (System) WriteText(text string) error {
	if atotto.Unsupported {
		return fmt.Errorf("no clipboard utility available on this system")
	}
	if err := atotto.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write to clipboard: %w", err)
	}
	return nil
}
