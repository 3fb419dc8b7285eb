package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestExporter(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := NewExporter(reg)

	e.Observe(SearchMetric{
		Duration:  time.Millisecond,
		Nodes:     10,
		Leaves:    6,
		Terminals: 3,
		DeadEnds:  1,
		Cutoffs:   1,
		Truncated: true,
	}, 560)

	require.Equal(t, 1.0, testutil.ToFloat64(e.builds))
	require.Equal(t, 10.0, testutil.ToFloat64(e.nodes))
	require.Equal(t, 3.0, testutil.ToFloat64(e.leaves.WithLabelValues("terminal")))
	require.Equal(t, 1.0, testutil.ToFloat64(e.leaves.WithLabelValues("node_limit")))
	require.Equal(t, 1.0, testutil.ToFloat64(e.truncated))
	require.Equal(t, 560.0, testutil.ToFloat64(e.lastScore))

	t.Run("textfile contains the planner series", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "planner.prom")

		require.NoError(t, WriteTextfile(path, reg))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), "drone_planner_nodes_total 10")
	})
}
