package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the drawer web form",
		Long: `Run the drawer web form. Configuration comes from the environment
(PORT, LOG_LEVEL, SESSION_TTL, SESSION_MAX, CACHE_CLEANUP_INTERVAL,
RATE_LIMIT_PER_MINUTE, SHUTDOWN_TIMEOUT) and an optional .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Serve(cmd.Context())
		},
	}
}

// Serve is the whole lifecycle of the web server process.
func Serve(parent context.Context) error {
	LoadEnvFile()

	cfg, err := LoadAndValidateConfig()
	if err != nil {
		return err
	}
	logger, err := SetupLogger(os.Stdout, cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := SignalContext(parent)
	defer stop()
	return RunServer(ctx, cfg, logger)
}
