package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/soyeahso/agentcore/internal/config"
	"github.com/soyeahso/agentcore/internal/hooks"
	"github.com/soyeahso/agentcore/internal/logging"
	"github.com/soyeahso/agentcore/internal/supervisor"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		interval     float64
		errorBackoff float64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the agent core supervisor loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			if interval != 0 {
				cfg.Agent.IntervalSeconds = interval
			}
			if errorBackoff != 0 {
				cfg.Agent.ErrorBackoffSeconds = errorBackoff
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			if err := paths.EnsureDirs(); err != nil {
				return fmt.Errorf("creating data directories: %w", err)
			}

			// Console plus the log file the original daemon always kept.
			writer := logging.Console(cfg.Logging.ConsoleStyle)
			if logFile := paths.LogFile(cfg.Logging); logFile != "" {
				f, err := logging.OpenFile(logFile)
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer f.Close()
				writer = logging.Multi(writer, f)
				log.Info().Str("path", logFile).Msg("logging to file")
			}
			runLog := logging.New(writer, cfg.Logging.Level)

			// Lifecycle hooks are the seam where a future transport to the
			// companion app attaches.
			hookMgr := hooks.NewManager(runLog)

			sink := supervisor.MultiSink{
				supervisor.NewLogSink(runLog),
				hooks.NewEventSink(hookMgr),
			}

			sup, err := supervisor.New(
				supervisor.Config{
					Interval:     cfg.Agent.Interval(),
					ErrorBackoff: cfg.Agent.ErrorBackoff(),
				},
				supervisor.WithSink(sink),
				supervisor.WithLogger(runLog),
			)
			if err != nil {
				return err
			}

			// Block until SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runLog.Info().
				Str("run_id", sup.RunID()).
				Dur("interval", cfg.Agent.Interval()).
				Dur("error_backoff", cfg.Agent.ErrorBackoff()).
				Msg("supervisor starting")

			start := time.Now()
			if err := sup.Run(ctx); err != nil {
				return err
			}

			runLog.Info().
				Str("run_id", sup.RunID()).
				Dur("uptime", time.Since(start)).
				Msg("supervisor stopped")
			return nil
		},
	}

	cmd.Flags().Float64Var(&interval, "interval", 0, "override heartbeat interval in seconds")
	cmd.Flags().Float64Var(&errorBackoff, "error-backoff", 0, "override post-failure backoff in seconds")

	return cmd
}
