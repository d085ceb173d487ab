package cli

import (
	"fmt"
	"os"

	"github.com/soyeahso/agentcore/internal/config"
	"github.com/soyeahso/agentcore/internal/version"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show agentcore configuration summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Agentcore %s (commit %s)\n\n", version.Version, version.Commit)

			// Show paths
			fmt.Printf("Config:  %s\n", paths.Config)
			fmt.Printf("Logs:    %s\n", paths.Logs)
			fmt.Println()

			// Load config
			cfg, err := config.Load(paths.Config)
			if err != nil {
				if os.IsNotExist(err) {
					fmt.Println("Config:  not found (using defaults)")
				} else {
					fmt.Printf("Config:  error loading: %v\n", err)
				}
				return nil
			}

			fmt.Printf("Agent:   interval=%s errorBackoff=%s\n",
				cfg.Agent.Interval(), cfg.Agent.ErrorBackoff())

			logFile := paths.LogFile(cfg.Logging)
			if logFile == "" {
				logFile = "disabled"
			}
			fmt.Printf("Logging: level=%s console=%s file=%s\n",
				cfg.Logging.Level, cfg.Logging.ConsoleStyle, logFile)

			if issues := config.Validate(&cfg); len(issues) > 0 {
				fmt.Println()
				fmt.Printf("Config issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Printf("  - %s\n", issue)
				}
			}

			return nil
		},
	}

	return cmd
}
