package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestFactoryDocumentsMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	factory := With(registry)

	counter := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "test",
		Subsystem: "sub",
		Name:      "things_total",
		Help:      "Things",
	}, []string{"kind"})
	gauge := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "test",
		Name:      "up",
		Help:      "Up",
	})

	counter.WithLabelValues("a").Inc()
	gauge.Set(1)

	docs := factory.Document()
	require.Len(t, docs, 2)
	require.Equal(t, "test_sub_things_total", docs[0].Name)
	require.Equal(t, []string{"kind"}, docs[0].Labels)
	require.Equal(t, "test_up", docs[1].Name)
	require.Equal(t, "gauge", docs[1].Type)

	require.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("a")))
	require.Equal(t, 2, testutil.CollectAndCount(registry))
}

func TestCLIConfigCheck(t *testing.T) {
	require.NoError(t, CLIConfig{}.Check())
	require.NoError(t, CLIConfig{TextfilePath: "/tmp/oracle.prom"}.Check())
	require.ErrorIs(t, CLIConfig{TextfilePath: "/tmp/oracle.txt"}.Check(), ErrTextfileExtension)
}

func TestWriteTextfile(t *testing.T) {
	registry := prometheus.NewRegistry()
	factory := With(registry)
	factory.NewGauge(prometheus.GaugeOpts{Namespace: "test", Name: "up", Help: "Up"}).Set(1)

	path := filepath.Join(t.TempDir(), "run.prom")
	require.NoError(t, WriteTextfile(path, registry))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "test_up 1"))
}
