package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveHTTP(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())

	m.ObserveHTTP("/tips", "GET", 200, 10*time.Millisecond)
	m.ObserveHTTP("/tips", "GET", 200, 20*time.Millisecond)
	m.ObserveHTTP("/tips", "GET", 404, time.Millisecond)
	m.ObserveHTTP("", "GET", 404, time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/tips", "GET", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/tips", "GET", "404")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unmatched", "GET", "404")))
	require.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestMetrics_Cache(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())
	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()

	require.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits))
	require.Equal(t, 2.0, testutil.ToFloat64(m.cacheMisses))
}

func TestMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveHTTP("/x", "GET", 200, time.Second)
		m.CacheHit()
		m.CacheMiss()
	})
}
