package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/brianly1003/notifyhub/internal/app"
	"github.com/brianly1003/notifyhub/internal/config"
	"github.com/brianly1003/notifyhub/internal/registry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	failurePolicy string
	watch         bool
	audit         bool
)

// runCmd runs scenarios.
var runCmd = &cobra.Command{
	Use:   "run [scenario...]",
	Short: "Run observer scenarios",
	Long: `Run one or more scenarios. Without arguments, the scenarios listed in
scenarios.enabled are run.

Examples:
  notifyhub run                       # Run the configured scenarios
  notifyhub run stock weather         # Run two scenarios
  notifyhub run --failure-policy isolate
  notifyhub run --audit               # Also log every payload
  notifyhub run --watch               # Re-run when the config file changes`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&failurePolicy, "failure-policy", "", "listener failure policy: abort or isolate (default from config)")
	runCmd.Flags().BoolVar(&watch, "watch", false, "re-run the configured scenarios when the config file changes")
	runCmd.Flags().BoolVar(&audit, "audit", false, "attach a structured log listener to every subject")
}

func runRun(cmd *cobra.Command, args []string) error {
	var (
		cfg     *config.Config
		watcher *config.Watcher
		err     error
	)

	if watch {
		watcher, err = config.Watch(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to watch config: %w", err)
		}
		cfg = watcher.Current()
	} else {
		cfg, err = loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	// Setup logging
	closer := app.SetupLogging(cfg.Logging, verbose)
	defer closer.Close()

	opts := []app.Option{app.WithOutput(cmd.OutOrStdout())}
	if failurePolicy != "" {
		policy, err := registry.ParsePolicy(failurePolicy)
		if err != nil {
			return err
		}
		opts = append(opts, app.WithFailurePolicy(policy))
	}
	if audit {
		opts = append(opts, app.WithAudit(app.NewAuditLogger(os.Stderr, verbose)))
	}

	application, err := app.New(cfg, version, opts...)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx, args...); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	if watcher == nil {
		return nil
	}

	log.Info().Str("file", watcher.File()).Msg("waiting for config changes, press Ctrl+C to stop")
	if err := application.Watch(ctx, watcher); err != nil {
		return err
	}
	log.Info().Msg("notifyhub stopped")
	return nil
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}
