package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Transport labels for figure renders.
const (
	TransportPage      = "page"
	TransportHTTP      = "http"
	TransportCallback  = "callback"
	TransportWebsocket = "websocket"
)

type Metrics struct {
	FigureRenders   *prometheus.CounterVec
	SelectionMisses prometheus.Counter
	LiveSessions    prometheus.Gauge
}

// New creates the dashboard collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FigureRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "figure_renders_total",
			Help:      "Figures built, by the transport that requested them.",
		}, []string{"transport"}),
		SelectionMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "selection_misses_total",
			Help:      "Selections that matched no roster rows.",
		}),
		LiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dashboard",
			Name:      "live_sessions",
			Help:      "Open websocket sessions.",
		}),
	}
	reg.MustRegister(m.FigureRenders, m.SelectionMisses, m.LiveSessions)
	return m
}

// ObserveFigure records one render and whether it came back empty.
func (m *Metrics) ObserveFigure(transport string, empty bool) {
	m.FigureRenders.WithLabelValues(transport).Inc()
	if empty {
		m.SelectionMisses.Inc()
	}
}
