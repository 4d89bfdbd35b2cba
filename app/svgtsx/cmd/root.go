package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cchalm/svgtsx/internal/config"
	"github.com/cchalm/svgtsx/internal/logging"
	"github.com/cchalm/svgtsx/internal/telemetry"
)

var rootCmd = &cobra.Command{
	Use:   "svgtsx",
	Short: "Validated file access for the SVG to TSX editor",
	Long: `svgtsx mediates every read and write between the SVG to TSX editor front end
and the host file system. SVG files can be read, TSX files can be written, and
file pickers feed chosen paths back through the same checks.`,
	SilenceUsage:       true,
	PersistentPreRunE:  loadRootConfig,
	PersistentPostRunE: shutdownTelemetry,
}

var telemetryProvider *telemetry.Provider

func Execute() error {
	return rootCmd.Execute()
}

func loadRootConfig(cmd *cobra.Command, _ []string) error {
	foundDotEnv, err := config.LoadDotEnv()
	if err != nil {
		return err
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	settings = applyFlagOverrides(cmd, loaded)
	if err := settings.Validate(); err != nil {
		return err
	}

	logger, err := logging.Init(logging.Config{Level: settings.Log.Level, Format: settings.Log.Format})
	if err != nil {
		return err
	}
	if !foundDotEnv {
		logger.Debug("no .env file found, using environment variables")
	}

	telemetryProvider, err = telemetry.NewProvider(cmd.Context(), telemetry.TelemetryConfig{
		Enabled:  settings.Telemetry.Enabled,
		Endpoint: settings.Telemetry.Endpoint,
		Insecure: settings.Telemetry.Insecure,
		Version:  versionInfo.version,
	})
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}
	return nil
}

func shutdownTelemetry(_ *cobra.Command, _ []string) error {
	defer func() { _ = logging.Logger().Sync() }()
	if telemetryProvider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := telemetryProvider.Shutdown(ctx); err != nil {
		logging.Logger().Warn("failed to flush telemetry", zap.Error(err))
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: console or json")
	rootCmd.PersistentFlags().StringVar(&flags.telemetryEndpoint, "telemetry-endpoint", "", "OTLP/HTTP collector host:port; enables tracing")
	rootCmd.PersistentFlags().StringVar(&flags.startDir, "start-dir", "", "Directory file pickers open in")
}
