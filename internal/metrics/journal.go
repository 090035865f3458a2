package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var journalDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "journal",
	Name:      "dropped_rows_total",
	Help:      "Count of journal rows that were not stored.",
}, []string{"network", "kind"})

// Journal tracks the journal writer.
type Journal struct {
	network string
}

// NewJournal constructs a Journal collector.
func NewJournal(network string) *Journal {
	return &Journal{network: orUnknown(network)}
}

// ObserveDropped counts n rows of kind lost.
func (m Journal) ObserveDropped(kind string, n int) {
	journalDroppedTotal.WithLabelValues(m.network, kind).Add(float64(n))
}
