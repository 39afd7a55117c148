package main

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

func withApp(ctx context.Context, a *app) context.Context {
	return context.WithValue(ctx, ctxAppKey{}, a)
}

func appFrom(ctx context.Context) *app {
	if ctx == nil {
		return nil
	}
	a, _ := ctx.Value(ctxAppKey{}).(*app)
	return a
}

// runWithApp hands the command its app and releases the medium when the
// command returns, whether or not it failed.
func runWithApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd.Context())
		if a == nil {
			return fmt.Errorf("%s: not initialized", cmd.Name())
		}
		defer func() {
			if err := a.Close(); err != nil {
				a.log.Warn("failed to close storage", "error", err)
			}
		}()
		return fn(cmd, args, a)
	}
}

// dumpMetrics writes the registry in the Prometheus text format.
func dumpMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
