package chat

import "github.com/prometheus/client_golang/prometheus"

// Poll cycle outcomes.
const (
	pollRendered  = "rendered"
	pollUnchanged = "unchanged"
	pollFailed    = "failed"
	pollDropped   = "dropped"
)

// Metrics counts poll cycles and sends. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	polls       *prometheus.CounterVec
	sends       *prometheus.CounterVec
	activePolls prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg when it is
// non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hirechat",
			Name:      "poll_cycles_total",
			Help:      "Fetch-and-render cycles by surface, channel and outcome.",
		}, []string{"surface", "channel", "outcome"}),
		sends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hirechat",
			Name:      "sends_total",
			Help:      "Message sends by surface, channel and outcome.",
		}, []string{"surface", "channel", "outcome"}),
		activePolls: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hirechat",
			Name:      "active_polls",
			Help:      "Conversations currently being polled.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.polls, m.sends, m.activePolls)
	}
	return m
}

func (m *Metrics) poll(r Route, outcome string) {
	if m == nil {
		return
	}
	m.polls.WithLabelValues(string(r.Surface), string(r.Conversation.Channel), outcome).Inc()
}

func (m *Metrics) send(r Route, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	m.sends.WithLabelValues(string(r.Surface), string(r.Conversation.Channel), outcome).Inc()
}

func (m *Metrics) pollStarted() {
	if m != nil {
		m.activePolls.Inc()
	}
}

func (m *Metrics) pollStopped() {
	if m != nil {
		m.activePolls.Dec()
	}
}
