package metrics

import (
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/evm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventSourceState = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "event_source",
	Name:      "state",
	Help:      "Current EVM event source state, 1 for the active one.",
}, []string{"network", "state"})

var eventSourceUndecodableTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "event_source",
	Name:      "undecodable_logs_total",
	Help:      "Unwrapped logs skipped because they could not be decoded.",
}, []string{"network"})

var sourceStates = []evm.State{evm.Disconnected, evm.Connecting, evm.CatchingUp, evm.Live}

// EventSource tracks the EVM event source connection state.
type EventSource struct {
	network string
}

// NewEventSource constructs an EventSource collector.
func NewEventSource(network string) *EventSource {
	return &EventSource{network: orUnknown(network)}
}

// SetState marks state as the active one.
func (m EventSource) SetState(state evm.State) {
	for _, s := range sourceStates {
		v := 0.0
		if s == state {
			v = 1
		}
		eventSourceState.WithLabelValues(m.network, s.String()).Set(v)
	}
}

// ObserveUndecodable counts a skipped Unwrapped log.
func (m EventSource) ObserveUndecodable() {
	eventSourceUndecodableTotal.WithLabelValues(m.network).Inc()
}
