package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect and edit remembered preferences",
	}
	cmd.AddCommand(newPrefsGetCmd(), newPrefsSetCmd(), newPrefsRmCmd())
	return cmd
}

func newPrefsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print a live preference as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, args []string, a *app) error {
			v, ok := a.storage.Get(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("no live preference under %q", args[0])
			}
			out, err := json.Marshal(v)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		}),
	}
}

func newPrefsSetCmd() *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "set KEY JSON",
		Short: "Store a JSON value for a while",
		Args:  cobra.ExactArgs(2),
		RunE: runWithApp(func(cmd *cobra.Command, args []string, a *app) error {
			var v any
			if err := json.Unmarshal([]byte(args[1]), &v); err != nil {
				return fmt.Errorf("value must be JSON: %w", err)
			}
			if !cmd.Flags().Changed("ttl") {
				ttl = a.cfg.Storage.TTL
			}
			return a.storage.Set(cmd.Context(), args[0], v, ttl)
		}),
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "lifetime (default: storage.ttl)")
	return cmd
}

func newPrefsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm KEY",
		Short: "Forget a preference",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, args []string, a *app) error {
			return a.storage.Remove(cmd.Context(), args[0])
		}),
	}
}
