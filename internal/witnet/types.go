// Package witnet talks to a Witnet node over JSON-RPC and exposes its hot wallet.
package witnet

import (
	"context"
	"time"

	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Caller performs a JSON-RPC call. *rpc.Client from go-ethereum satisfies it.
	Caller interface {
		CallContext(ctx context.Context, result any, method string, args ...any) error
	}
	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
	// Node is the subset of the node API the hot wallet relies on.
	Node interface {
		GetPkh(ctx context.Context) (string, error)
		GetUtxos(ctx context.Context, address string) ([]model.Utxo, error)
		GetBalance(ctx context.Context, address string) (model.Balance, error)
		GetTransaction(ctx context.Context, hash string) (*Transaction, error)
		SyncStatus(ctx context.Context) (*SyncStatus, error)
		Priority(ctx context.Context) (map[model.FeePriority]float64, error)
		SendValue(ctx context.Context, req SendValueRequest) (string, error)
	}
)

// Transaction is the node's inclusion report of a transaction.
type Transaction struct {
	BlockHash  string `json:"block_hash"`
	BlockEpoch *int64 `json:"block_epoch"`
	Confirmed  bool   `json:"confirmed"`
}

// Pending reports whether the transaction still sits in the mempool.
func (t *Transaction) Pending() bool {
	return t.BlockHash == "" || t.BlockHash == "pending" || t.BlockEpoch == nil
}

// SyncStatus is the node's chain synchronization report.
type SyncStatus struct {
	CurrentEpoch int64  `json:"current_epoch"`
	NodeState    string `json:"node_state"`
}

// Output is a value transfer output as accepted by sendValue.
type Output struct {
	PKH      string `json:"pkh"`
	Value    uint64 `json:"value"`
	TimeLock uint64 `json:"time_lock"`
}

// SendValueRequest asks the node to sign and broadcast a value transfer from its key.
type SendValueRequest struct {
	Outputs      []Output `json:"vto"`
	Fee          uint64   `json:"fee"`
	UtxoStrategy string   `json:"utxo_strategy,omitempty"`
}
