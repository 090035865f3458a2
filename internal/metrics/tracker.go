package metrics

import (
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	trackerStatusTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "tracker",
		Name:      "status_updates_total",
		Help:      "Count of native payment status updates.",
	}, []string{"network", "status"})
	trackerInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "tracker",
		Name:      "in_flight",
		Help:      "Number of native payments awaiting finality.",
	}, []string{"network"})
	trackerOutstanding = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "tracker",
		Name:      "outstanding",
		Help:      "Number of unwraps queued or in flight.",
	}, []string{"network"})
	trackerCheckpoint = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "tracker",
		Name:      "checkpoint_block",
		Help:      "Last persisted EVM checkpoint block.",
	}, []string{"network"})
)

// Tracker tracks confirmation tracker state.
type Tracker struct {
	network string
}

// NewTracker constructs a Tracker collector.
func NewTracker(network string) *Tracker {
	return &Tracker{network: orUnknown(network)}
}

func (m Tracker) ObserveStatus(status model.TxStatus) {
	trackerStatusTotal.WithLabelValues(m.network, string(status)).Inc()
}

func (m Tracker) SetInFlight(n int) {
	trackerInFlight.WithLabelValues(m.network).Set(float64(n))
}

func (m Tracker) SetOutstanding(n int) {
	trackerOutstanding.WithLabelValues(m.network).Set(float64(n))
}

func (m Tracker) SetCheckpoint(block uint64) {
	trackerCheckpoint.WithLabelValues(m.network).Set(float64(block))
}
