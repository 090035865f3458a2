package metrics

import (
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	relayerEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "relayer",
		Name:      "events_total",
		Help:      "Count of unwrap lifecycle transitions by stage.",
	}, []string{"network", "stage"})
	relayerPaymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "relayer",
		Name:      "payments_total",
		Help:      "Count of native payments submitted.",
	}, []string{"network", "status"})
	relayerBacklogEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "relayer",
		Name:      "backlog_entries",
		Help:      "Number of unwraps waiting for spendable balance.",
	}, []string{"network"})
	relayerBacklogValue = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "relayer",
		Name:      "backlog_value_nanowits",
		Help:      "Total value of unwraps waiting for spendable balance.",
	}, []string{"network"})
	relayerBlock = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "relayer",
		Name:      "evm_block",
		Help:      "Last EVM block seen by the relayer.",
	}, []string{"network"})
)

// Relayer tracks unwrap lifecycle metrics for one EVM network.
type Relayer struct {
	network string
}

// NewRelayer constructs a Relayer collector.
func NewRelayer(network string) *Relayer {
	return &Relayer{network: orUnknown(network)}
}

// ObserveStage counts a lifecycle transition.
func (m Relayer) ObserveStage(stage model.Stage) {
	relayerEventsTotal.WithLabelValues(m.network, string(stage)).Inc()
}

// ObservePayment counts a payment submission attempt.
func (m Relayer) ObservePayment(err error) {
	relayerPaymentsTotal.WithLabelValues(m.network, statusOf(err)).Inc()
}

// SetBacklog reports the backlog size.
func (m Relayer) SetBacklog(entries int, value uint64) {
	relayerBacklogEntries.WithLabelValues(m.network).Set(float64(entries))
	relayerBacklogValue.WithLabelValues(m.network).Set(float64(value))
}

// SetBlock reports the last seen EVM block.
func (m Relayer) SetBlock(block uint64) {
	relayerBlock.WithLabelValues(m.network).Set(float64(block))
}
