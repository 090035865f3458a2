package witnet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
)

// ModeEthereal asks getValueTransfer for the summary of a transfer.
const ModeEthereal = "ethereal"

// Dial opens a JSON-RPC connection to a Witnet node (http, https or ws endpoints).
func Dial(ctx context.Context, endpoint string) (*rpc.Client, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, errors.New("witnet rpc endpoint required")
	}
	return rpc.DialContext(ctx, trimmed)
}

// Client wraps a JSON-RPC connection with typed Witnet calls and metrics instrumentation.
type Client struct {
	rpc        Caller
	rpcMetrics RPCMetrics
}

// NewClient constructs an instrumented Witnet client.
func NewClient(caller Caller, rpcMetrics RPCMetrics) *Client {
	return &Client{
		rpc:        caller,
		rpcMetrics: rpcMetrics,
	}
}

func (c *Client) call(ctx context.Context, operation string, result any, method string, args ...any) (err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe(operation, err, started)
	}()
	if err = c.rpc.CallContext(ctx, result, method, args...); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

// GetPkh returns the address of the node's own signing key.
func (c *Client) GetPkh(ctx context.Context) (string, error) {
	var pkh string
	if err := c.call(ctx, "get_pkh", &pkh, "getPkh"); err != nil {
		return "", err
	}
	return pkh, nil
}

type rpcUtxoInfo struct {
	Utxos []struct {
		OutputPointer string `json:"output_pointer"`
		Timelock      int64  `json:"timelock"`
		Value         uint64 `json:"value"`
		UtxoMature    *bool  `json:"utxo_mature"`
	} `json:"utxos"`
}

// GetUtxos returns every unspent output held by address.
func (c *Client) GetUtxos(ctx context.Context, address string) ([]model.Utxo, error) {
	var info rpcUtxoInfo
	if err := c.call(ctx, "get_utxo_info", &info, "getUtxoInfo", address); err != nil {
		return nil, err
	}
	utxos := make([]model.Utxo, 0, len(info.Utxos))
	for _, u := range info.Utxos {
		mature := u.UtxoMature == nil || *u.UtxoMature
		utxos = append(utxos, model.Utxo{
			OutputPointer: u.OutputPointer,
			Value:         u.Value,
			Timelock:      u.Timelock,
			Mature:        mature,
		})
	}
	return utxos, nil
}

type rpcBalance struct {
	Locked   uint64 `json:"locked"`
	Staked   uint64 `json:"staked"`
	Unlocked uint64 `json:"unlocked"`
}

// GetBalance returns the balance of address.
func (c *Client) GetBalance(ctx context.Context, address string) (model.Balance, error) {
	var b rpcBalance
	if err := c.call(ctx, "get_balance", &b, "getBalance2", map[string]string{"pkh": address}); err != nil {
		return model.Balance{}, err
	}
	return model.Balance{Unlocked: b.Unlocked, Locked: b.Locked, Staked: b.Staked}, nil
}

type rpcValueTransfer struct {
	Recipient string `json:"recipient"`
	Value     uint64 `json:"value"`
	Fee       uint64 `json:"fee"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// GetValueTransfer returns the ledger record of a value transfer transaction.
func (c *Client) GetValueTransfer(ctx context.Context, hash, mode string) (*model.ValueTransfer, error) {
	var vt rpcValueTransfer
	params := map[string]string{"hash": hash, "mode": mode}
	if err := c.call(ctx, "get_value_transfer", &vt, "getValueTransfer", params); err != nil {
		return nil, err
	}
	return &model.ValueTransfer{
		Hash:      hash,
		Recipient: vt.Recipient,
		Value:     vt.Value,
		Fee:       vt.Fee,
		Status:    vt.Status,
		Timestamp: vt.Timestamp,
	}, nil
}

// GetTransaction returns the inclusion report of a transaction. An error answered by the
// node itself wraps ErrTransactionUnknown; transport failures are returned as they are.
func (c *Client) GetTransaction(ctx context.Context, hash string) (*Transaction, error) {
	var tx Transaction
	if err := c.call(ctx, "get_transaction", &tx, "getTransaction", hash); err != nil {
		var nodeErr rpc.Error
		if errors.As(err, &nodeErr) {
			return nil, fmt.Errorf("%w: %w", ErrTransactionUnknown, err)
		}
		return nil, err
	}
	return &tx, nil
}

// SyncStatus returns the node's current epoch.
func (c *Client) SyncStatus(ctx context.Context) (*SyncStatus, error) {
	var st SyncStatus
	if err := c.call(ctx, "sync_status", &st, "syncStatus"); err != nil {
		return nil, err
	}
	return &st, nil
}

// Priority returns the fee rate, in minimal units per weight unit, of every value transfer tier.
func (c *Client) Priority(ctx context.Context) (map[model.FeePriority]float64, error) {
	var raw map[string]struct {
		Priority float64 `json:"priority"`
	}
	if err := c.call(ctx, "priority", &raw, "priority"); err != nil {
		return nil, err
	}
	rates := make(map[model.FeePriority]float64, len(raw))
	for key, tier := range raw {
		name, ok := strings.CutPrefix(key, "vtt_")
		if !ok {
			continue
		}
		rates[model.FeePriority(name)] = tier.Priority
	}
	return rates, nil
}

// SendValue signs a value transfer with the node's key, broadcasts it and returns its hash.
func (c *Client) SendValue(ctx context.Context, req SendValueRequest) (string, error) {
	var res struct {
		Hash string `json:"hash"`
	}
	if err := c.call(ctx, "send_value", &res, "sendValue", req); err != nil {
		return "", err
	}
	if res.Hash == "" {
		return "", errors.New("sendValue: empty transaction hash")
	}
	return res.Hash, nil
}
