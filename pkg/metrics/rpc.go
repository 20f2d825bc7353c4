// Package metrics expone contadores Prometheus para las llamadas remotas a Odoo.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Protocolos observados.
const (
	ProtocolJSONRPC = "jsonrpc"
	ProtocolXMLRPC  = "xmlrpc"
)

// RPCMetrics registra duración y resultado de cada llamada remota.
// Un *RPCMetrics nil es válido y no registra nada.
type RPCMetrics struct {
	duration *prometheus.HistogramVec
	calls    *prometheus.CounterVec
}

// NewRPCMetrics registra las métricas en el registerer indicado.
func NewRPCMetrics(reg prometheus.Registerer) *RPCMetrics {
	if reg == nil {
		return &RPCMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "odoo_rpc_duration_seconds",
		Help:    "Duración de las llamadas remotas a Odoo en segundos.",
		Buckets: prometheus.DefBuckets,
	}, []string{"protocol", "method"})
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "odoo_rpc_calls_total",
		Help: "Llamadas remotas a Odoo por protocolo, método y resultado.",
	}, []string{"protocol", "method", "outcome"})
	reg.MustRegister(duration, calls)
	return &RPCMetrics{duration: duration, calls: calls}
}

// Observe registra una llamada. outcome es "ok" si err es nil, si no "error".
func (m *RPCMetrics) Observe(protocol, method string, d time.Duration, err error) {
	if m == nil || m.calls == nil {
		return
	}
	method = normalizeLabel(method)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.duration.WithLabelValues(protocol, method).Observe(d.Seconds())
	m.calls.WithLabelValues(protocol, method, outcome).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
