package metrics

import (
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	walletBalance = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "wallet",
		Name:      "balance_nanowits",
		Help:      "Hot wallet balance by kind.",
	}, []string{"network", "kind"})
	walletUtxos = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "wallet",
		Name:      "utxos",
		Help:      "Number of spendable hot wallet outputs.",
	}, []string{"network"})
	liquiditySplitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "liquidity",
		Name:      "splits_total",
		Help:      "Count of output split transactions.",
	}, []string{"network", "status"})
	liquiditySplitOutputs = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "liquidity",
		Name:      "split_outputs",
		Help:      "Number of outputs created per split.",
		Buckets:   prometheus.LinearBuckets(5, 5, 10),
	}, []string{"network"})
)

// Liquidity tracks hot wallet liquidity.
type Liquidity struct {
	network string
}

// NewLiquidity constructs a Liquidity collector.
func NewLiquidity(network string) *Liquidity {
	return &Liquidity{network: orUnknown(network)}
}

// SetBalance reports the hot wallet balance.
func (m Liquidity) SetBalance(balance model.Balance) {
	walletBalance.WithLabelValues(m.network, "unlocked").Set(float64(balance.Unlocked))
	walletBalance.WithLabelValues(m.network, "locked").Set(float64(balance.Locked))
	walletBalance.WithLabelValues(m.network, "staked").Set(float64(balance.Staked))
}

// SetUtxos reports the number of spendable outputs.
func (m Liquidity) SetUtxos(n int) {
	walletUtxos.WithLabelValues(m.network).Set(float64(n))
}

// ObserveSplit records a split outcome.
func (m Liquidity) ObserveSplit(outputs int, err error) {
	liquiditySplitsTotal.WithLabelValues(m.network, statusOf(err)).Inc()
	if err == nil {
		liquiditySplitOutputs.WithLabelValues(m.network).Observe(float64(outputs))
	}
}
