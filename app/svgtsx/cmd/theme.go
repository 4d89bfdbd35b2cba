package cmd

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme <r> <g> <b>",
	Short: "Set the window background color",
	Long: `Sets the host window's background to an RGB color with channels in 0-255.
Values outside that range are clamped. Styling is best-effort: on a host that
cannot be styled this does nothing.`,
	Args: cobra.ExactArgs(3),
	RunE: runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	channels := make(map[string]float64, 3)
	for i, name := range []string{"r", "g", "b"} {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return fmt.Errorf("invalid %s channel '%s': %w", name, args[i], err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid %s channel '%s': must be a finite number", name, args[i])
		}
		channels[name] = v
	}

	ctx := setupContext(cmd.Context())
	s := newSession(sessionOptions{})
	resp := s.registry.Invoke(ctx, "set_theme_color", mustMarshal(channels))
	return commandError("Failed to set theme color", resp)
}
