package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cchalm/svgtsx/internal/config"
)

var settings = config.Config{}

// flags holds persistent flag values. A flag only overrides the loaded configuration when it was set explicitly
var flags struct {
	logLevel          string
	logFormat         string
	telemetryEndpoint string
	startDir          string
}

func applyFlagOverrides(cmd *cobra.Command, c config.Config) config.Config {
	overrideIfChanged(cmd, "log-level", &c.Log.Level, flags.logLevel)
	overrideIfChanged(cmd, "log-format", &c.Log.Format, flags.logFormat)
	overrideIfChanged(cmd, "start-dir", &c.Dialog.StartDir, flags.startDir)
	if cmd.Flags().Changed("telemetry-endpoint") {
		c.Telemetry.Enabled = flags.telemetryEndpoint != ""
		c.Telemetry.Endpoint = flags.telemetryEndpoint
	}
	return c
}

func overrideIfChanged[T any](cmd *cobra.Command, name string, dest *T, value T) {
	if cmd.Flags().Changed(name) {
		*dest = value
	}
}
