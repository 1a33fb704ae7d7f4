package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/serroba/shortlinks/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.Shortened.Inc()
	m.Resolved.WithLabelValues(metrics.OutcomeRedirected).Inc()
	m.Resolved.WithLabelValues(metrics.OutcomeExpired).Add(2)
	m.Swept.Add(3)
	m.Anomalies.WithLabelValues(metrics.AnomalyDuplicateKey).Inc()

	assert.InDelta(t, 1, testutil.ToFloat64(m.Shortened), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Resolved.WithLabelValues(metrics.OutcomeExpired)), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.Swept), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Anomalies.WithLabelValues(metrics.AnomalyDuplicateKey)), 0)

	count, err := testutil.GatherAndCount(reg,
		"shortlinks_shortened_total",
		"shortlinks_resolved_total",
		"shortlinks_swept_total",
		"shortlinks_anomalies_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestNew_PanicsOnDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = metrics.New(reg)

	assert.Panics(t, func() { metrics.New(reg) })
}
