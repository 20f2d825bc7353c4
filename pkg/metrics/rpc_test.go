package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRPCMetrics_CuentaPorResultado(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRPCMetrics(reg)

	m.Observe(ProtocolXMLRPC, "execute_kw", 20*time.Millisecond, nil)
	m.Observe(ProtocolXMLRPC, "execute_kw", 10*time.Millisecond, nil)
	m.Observe(ProtocolJSONRPC, "", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.calls.WithLabelValues(ProtocolXMLRPC, "execute_kw", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues(ProtocolJSONRPC, "unknown", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestRPCMetrics_NilEsSeguro(t *testing.T) {
	var m *RPCMetrics
	assert.NotPanics(t, func() {
		m.Observe(ProtocolXMLRPC, "authenticate", time.Second, nil)
	})

	empty := NewRPCMetrics(nil)
	assert.NotPanics(t, func() {
		empty.Observe(ProtocolXMLRPC, "authenticate", time.Second, nil)
	})
}
