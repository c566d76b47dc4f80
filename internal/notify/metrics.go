package notify

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts bridge and bus activity. A nil *Metrics records nothing.
type Metrics struct {
	Received   *prometheus.CounterVec
	Dropped    *prometheus.CounterVec
	Reconnects prometheus.Counter
	Connected  prometheus.Gauge
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		Received: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notify_events_received_total",
				Help: "Database notifications received by channel.",
			},
			[]string{"channel"},
		),
		Dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notify_events_dropped_total",
				Help: "Events dropped because a subscriber buffer was full.",
			},
			[]string{"channel"},
		),
		Reconnects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "notify_reconnects_total",
				Help: "Times the notification listener lost its connection and retried.",
			},
		),
		Connected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "notify_listener_connected",
				Help: "1 while the notification listener holds a subscribed connection.",
			},
		),
	}

	registry.MustRegister(m.Received, m.Dropped, m.Reconnects, m.Connected)
	return m
}

func (m *Metrics) received(channel string) {
	if m == nil {
		return
	}
	m.Received.WithLabelValues(channel).Inc()
}

func (m *Metrics) dropped(channel string) {
	if m == nil {
		return
	}
	m.Dropped.WithLabelValues(channel).Inc()
}

func (m *Metrics) reconnect() {
	if m == nil {
		return
	}
	m.Reconnects.Inc()
}

func (m *Metrics) setConnected(connected bool) {
	if m == nil {
		return
	}
	if connected {
		m.Connected.Set(1)
	} else {
		m.Connected.Set(0)
	}
}
