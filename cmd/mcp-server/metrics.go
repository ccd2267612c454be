package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	polycalc "github.com/mike006322/PolynomialCalculator-sub000"
)

type metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	panics   prometheus.Counter
	known    map[string]bool
}

func newMetrics(reg prometheus.Registerer, engine *polycalc.Engine) *metrics {
	m := &metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "polycalc",
			Name:      "tool_calls_total",
			Help:      "Tool calls by tool and report status.",
		}, []string{"tool", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "polycalc",
			Name:      "tool_duration_seconds",
			Help:      "Tool call latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"tool"}),
		panics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "polycalc",
			Name:      "tool_panics_total",
			Help:      "Tool calls that panicked.",
		}),
		known: make(map[string]bool),
	}
	for _, t := range polycalc.Tools() {
		m.known[t.Name] = true
	}
	reg.MustRegister(m.calls, m.duration, m.panics)

	if c := engine.Cache(); c != nil {
		reg.MustRegister(
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Namespace: "polycalc",
				Name:      "basis_cache_hits_total",
				Help:      "Gröbner basis cache hits.",
			}, func() float64 { return float64(c.Stats().Hits) }),
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Namespace: "polycalc",
				Name:      "basis_cache_misses_total",
				Help:      "Gröbner basis cache misses.",
			}, func() float64 { return float64(c.Stats().Misses) }),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: "polycalc",
				Name:      "basis_cache_bytes",
				Help:      "Bytes held by the Gröbner basis cache.",
			}, func() float64 { return float64(c.Stats().Bytes) }),
		)
	}
	return m
}

// observe runs req and records its outcome. Unknown tool names share one
// label value.
func (m *metrics) observe(engine *polycalc.Engine, req polycalc.ToolRequest) polycalc.Report {
	start := time.Now()
	rep := engine.HandleToolCall(req)
	tool := req.Tool
	if !m.known[tool] {
		tool = "unknown"
	}
	m.calls.WithLabelValues(tool, rep.Status).Inc()
	m.duration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
	return rep
}
