package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LedgerEVM    = "evm"
	LedgerWitnet = "witnet"
)

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "operations_total",
		Help:      "Count of node RPC operations.",
	}, []string{"operation", "ledger", "network", "status"})
	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of node RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "ledger", "network", "status"})
)

// RPCClient tracks metrics for RPC calls to EVM and native ledger nodes.
type RPCClient struct {
	ledger  string
	network string
}

// NewRPCClient constructs a metrics collector for RPC calls.
func NewRPCClient(ledger, network string) *RPCClient {
	return &RPCClient{ledger: orUnknown(ledger), network: orUnknown(network)}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	rpcRequestsTotal.WithLabelValues(operation, m.ledger, m.network, status).Inc()
	rpcRequestDuration.WithLabelValues(operation, m.ledger, m.network, status).Observe(time.Since(started).Seconds())
}
