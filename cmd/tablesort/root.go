package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krisalay/tablesort/config"
	"github.com/krisalay/tablesort/logger"
)

type ctxAppKey struct{}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		driver     string
		logLevel   string
		logJSON    bool
		logSource  bool
	)

	root := &cobra.Command{
		Use:          "tablesort",
		Short:        "Sort tabular JSON data and remember the last sort",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			overrides := map[string]any{}
			if cmd.Flags().Changed("driver") {
				overrides["storage.driver"] = driver
			}
			if cmd.Flags().Changed("log-level") {
				overrides["log.level"] = logLevel
			}
			if cmd.Flags().Changed("log-json") {
				overrides["log.json"] = logJSON
			}
			if cmd.Flags().Changed("log-source") {
				overrides["log.source"] = logSource
			}
			cfg, err := config.Load(configFile, overrides)
			if err != nil {
				return err
			}

			log := logger.NewLogger(&logger.Config{
				Level:      logger.LogLevel(cfg.Log.Level),
				Output:     cmd.ErrOrStderr(),
				JSON:       cfg.Log.JSON,
				AddSource:  cfg.Log.Source,
				TimeFormat: "15:04:05",
			})
			logger.SetDefault(log)
			ctx := logger.ContextWithLogger(cmd.Context(), log)

			a, err := newApp(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			cmd.SetContext(withApp(ctx, a))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd.Context())
			if a == nil || a.registry == nil {
				return nil
			}
			return dumpMetrics(cmd.ErrOrStderr(), a.registry)
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "JSON config file")
	root.PersistentFlags().StringVar(&driver, "driver", "", "storage driver: memory, sqlite or redis")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON")
	root.PersistentFlags().BoolVar(&logSource, "log-source", false, "include caller in log lines")

	root.AddCommand(newSortCmd(), newPrefsCmd())
	return root
}
