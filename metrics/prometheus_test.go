package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/tablesort/metrics"
	"github.com/krisalay/tablesort/types"
)

var _ types.Metrics = (*metrics.Prometheus)(nil)

func TestPrometheus(t *testing.T) {
	t.Run("Should count each event under its label", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m, err := metrics.NewPrometheus(reg, "tablesort")
		require.NoError(t, err)

		m.Hit()
		m.Hit()
		m.Miss()
		m.Expire()
		m.Write()

		assert.Equal(t, 2.0, testutil.ToFloat64(m.Count(metrics.EventHit)))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Count(metrics.EventMiss)))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Count(metrics.EventExpire)))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Count(metrics.EventWrite)))
		assert.Zero(t, testutil.ToFloat64(m.Count(metrics.EventCorrupt)))
		n, err := testutil.GatherAndCount(reg)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})

	t.Run("Should fail on duplicate registration", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_, err := metrics.NewPrometheus(reg, "tablesort")
		require.NoError(t, err)
		_, err = metrics.NewPrometheus(reg, "tablesort")
		assert.Error(t, err)
	})
}
