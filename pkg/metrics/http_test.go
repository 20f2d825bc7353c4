package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetrics_PorRutaYEstado(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/inventory/summary", 200, 30*time.Millisecond)
	m.Observe("GET", "/api/inventory/summary", 200, 10*time.Millisecond)
	m.Observe("GET", "", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/inventory/summary", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unknown", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestHTTPMetrics_SinRegistro(t *testing.T) {
	assert.NotPanics(t, func() {
		NewHTTPMetrics(nil).Observe("GET", "/health", 200, time.Millisecond)
		var m *HTTPMetrics
		m.Observe("GET", "/health", 200, time.Millisecond)
	})
}
