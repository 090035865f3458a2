package witnet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/goodnatureofminers/wit-unwrapper/internal/clock"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
	"go.uber.org/zap"
)

// Value transfer weight constants used by the node's fee market.
const (
	inputWeight  = 133
	outputWeight = 36
	gamma        = 10
)

const (
	defaultPollInterval = 10 * time.Second
	defaultMaxMisses    = 30
)

var (
	// ErrSignerMismatch is returned when the node signs with a different key than configured.
	ErrSignerMismatch = errors.New("node signer does not match configured hot wallet")
	// ErrInsufficientFunds is returned when spendable outputs cannot cover a transfer.
	ErrInsufficientFunds = errors.New("insufficient spendable funds")
	// ErrUnknownPriority is returned when the node does not quote the requested fee tier.
	ErrUnknownPriority = errors.New("fee priority not quoted by node")
	// ErrTransactionUnknown is returned when a reachable node does not know a transaction.
	ErrTransactionUnknown = errors.New("transaction unknown to node")
)

// WalletConfig configures a NodeWallet.
type WalletConfig struct {
	SignerPKH    string
	UtxoStrategy string
	PollInterval time.Duration
	MaxMisses    int
}

// NodeWallet is the hot wallet whose key is held by the connected node.
type NodeWallet struct {
	node         Node
	pkh          string
	network      model.LedgerNetwork
	utxoStrategy string
	pollInterval time.Duration
	maxMisses    int
	sleep        clock.Sleeper
	now          func() time.Time
	logger       *zap.Logger
}

// NewNodeWallet binds the wallet to the node key, checking it against cfg.SignerPKH when set.
func NewNodeWallet(ctx context.Context, node Node, cfg WalletConfig, logger *zap.Logger) (*NodeWallet, error) {
	pkh, err := node.GetPkh(ctx)
	if err != nil {
		return nil, fmt.Errorf("query node signer: %w", err)
	}
	if cfg.SignerPKH != "" && cfg.SignerPKH != pkh {
		return nil, fmt.Errorf("%w: node %s, configured %s", ErrSignerMismatch, pkh, cfg.SignerPKH)
	}
	network, _, err := DecodeAddress(pkh)
	if err != nil {
		return nil, err
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.MaxMisses <= 0 {
		cfg.MaxMisses = defaultMaxMisses
	}
	return &NodeWallet{
		node:         node,
		pkh:          pkh,
		network:      network,
		utxoStrategy: cfg.UtxoStrategy,
		pollInterval: cfg.PollInterval,
		maxMisses:    cfg.MaxMisses,
		sleep:        clock.SleepWithContext,
		now:          time.Now,
		logger:       logger.With(zap.String("pkh", pkh)),
	}, nil
}

// PKH returns the hot wallet address.
func (w *NodeWallet) PKH() string {
	return w.pkh
}

// Network returns the ledger network the hot wallet lives on.
func (w *NodeWallet) Network() model.LedgerNetwork {
	return w.network
}

// Balance returns the hot wallet balance.
func (w *NodeWallet) Balance(ctx context.Context) (model.Balance, error) {
	return w.node.GetBalance(ctx, w.pkh)
}

// Utxos returns the mature outputs whose timelock has expired.
func (w *NodeWallet) Utxos(ctx context.Context) ([]model.Utxo, error) {
	all, err := w.node.GetUtxos(ctx, w.pkh)
	if err != nil {
		return nil, err
	}
	now := w.now().Unix()
	spendable := make([]model.Utxo, 0, len(all))
	for _, u := range all {
		if u.Mature && u.Timelock <= now {
			spendable = append(spendable, u)
		}
	}
	return spendable, nil
}

// Spendable returns the value currently available to fund new transfers.
func (w *NodeWallet) Spendable(ctx context.Context) (uint64, error) {
	utxos, err := w.Utxos(ctx)
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, u := range utxos {
		total += u.Value
	}
	return total, nil
}

// EstimateFee prices a transfer to recipients at the given priority tier.
func (w *NodeWallet) EstimateFee(ctx context.Context, recipients []model.Recipient, priority model.FeePriority) (uint64, error) {
	rates, err := w.node.Priority(ctx)
	if err != nil {
		return 0, fmt.Errorf("query fee priorities: %w", err)
	}
	rate, ok := rates[priority]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownPriority, priority)
	}
	utxos, err := w.Utxos(ctx)
	if err != nil {
		return 0, fmt.Errorf("query utxos: %w", err)
	}

	var need uint64
	for _, r := range recipients {
		need += r.Value
	}
	inputs, err := inputsFor(utxos, need)
	if err != nil {
		return 0, err
	}
	// one extra output for change
	weight := inputs*inputWeight + (len(recipients)+1)*outputWeight*gamma
	fee := uint64(math.Ceil(rate * float64(weight)))
	if fee == 0 {
		fee = 1
	}
	return fee, nil
}

func inputsFor(utxos []model.Utxo, need uint64) (int, error) {
	values := make([]uint64, 0, len(utxos))
	for _, u := range utxos {
		values = append(values, u.Value)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] > values[j] })

	var covered uint64
	for i, v := range values {
		covered += v
		if covered >= need {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, need, covered)
}

// Send signs and broadcasts a transfer paying recipients with the given absolute fee.
func (w *NodeWallet) Send(ctx context.Context, recipients []model.Recipient, fee uint64) (model.Receipt, error) {
	outputs := make([]Output, 0, len(recipients))
	var value uint64
	for _, r := range recipients {
		outputs = append(outputs, Output{PKH: r.Address, Value: r.Value})
		value += r.Value
	}
	hash, err := w.node.SendValue(ctx, SendValueRequest{
		Outputs:      outputs,
		Fee:          fee,
		UtxoStrategy: w.utxoStrategy,
	})
	if err != nil {
		return model.Receipt{}, err
	}
	return model.Receipt{Hash: hash, Fee: fee, Value: value}, nil
}

// Confirm follows hash in the background and reports every status change to onStatus
// until the transaction is final or ctx is canceled. It is declared failed only after the
// node answered MaxMisses consecutive times that it does not know the transaction.
func (w *NodeWallet) Confirm(ctx context.Context, hash string, confirmations uint32, onStatus func(model.StatusUpdate)) {
	go w.follow(ctx, hash, confirmations, onStatus)
}

func (w *NodeWallet) follow(ctx context.Context, hash string, confirmations uint32, onStatus func(model.StatusUpdate)) {
	logger := w.logger.With(zap.String("tx", hash))
	last := model.StatusUpdate{Hash: hash, Status: model.TxSubmitted}
	misses := 0
	_ = clock.Poll(ctx, w.sleep, w.pollInterval, func(ctx context.Context) (bool, error) {
		update, err := w.status(ctx, hash, confirmations)
		if err != nil {
			if ctx.Err() != nil {
				return true, nil
			}
			// Only the node saying it does not know the transaction counts toward failure.
			// While the node is unreachable the transaction may still be in a mempool.
			if !errors.Is(err, ErrTransactionUnknown) {
				logger.Warn("transaction status unavailable", zap.Error(err))
				return false, nil
			}
			misses++
			logger.Debug("transaction unknown to node", zap.Int("misses", misses), zap.Error(err))
			if misses >= w.maxMisses {
				onStatus(model.StatusUpdate{Hash: hash, Status: model.TxFailed, Err: err})
				return true, nil
			}
			return false, nil
		}
		misses = 0

		if update.Status != last.Status || update.Confirmations != last.Confirmations {
			onStatus(update)
			last = update
		}
		return update.Status.Terminal(), nil
	})
}

func (w *NodeWallet) status(ctx context.Context, hash string, confirmations uint32) (model.StatusUpdate, error) {
	tx, err := w.node.GetTransaction(ctx, hash)
	if err != nil {
		return model.StatusUpdate{}, err
	}
	if tx.Confirmed {
		return model.StatusUpdate{Hash: hash, Status: model.TxFinalized, Confirmations: confirmations}, nil
	}
	if tx.Pending() {
		return model.StatusUpdate{Hash: hash, Status: model.TxRelayed}, nil
	}
	sync, err := w.node.SyncStatus(ctx)
	if err != nil {
		return model.StatusUpdate{}, err
	}
	depth := sync.CurrentEpoch - *tx.BlockEpoch
	if depth < 0 {
		depth = 0
	}
	if depth > math.MaxUint32 {
		depth = math.MaxUint32
	}
	k := uint32(depth)
	if k >= confirmations {
		return model.StatusUpdate{Hash: hash, Status: model.TxFinalized, Confirmations: k}, nil
	}
	return model.StatusUpdate{Hash: hash, Status: model.TxConfirmed, Confirmations: k}, nil
}
