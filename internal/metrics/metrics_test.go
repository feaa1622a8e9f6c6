package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	assert.NotNil(t, m.HTTPRequests)
	assert.NotNil(t, m.Signups)

	m.Signups.Inc()
	m.Signups.Inc()
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Signups))

	m.HTTPRequests.WithLabelValues("/signup", "201").Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/signup", "201")))
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	// Two registries must accept the same counters without panicking.
	NewMetrics(prometheus.NewRegistry())
	NewMetrics(prometheus.NewRegistry())
}

func TestNewMetrics_SameRegistryReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewMetrics(reg)
	second := NewMetrics(reg)

	// The second construction hands back the collectors already in the
	// registry, so increments land on the same series.
	first.Signups.Inc()
	second.Signups.Inc()
	assert.Equal(t, float64(2), testutil.ToFloat64(first.Signups))
}
