// Package liquidity keeps the hot wallet supplied with enough spendable outputs.
package liquidity

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
	"go.uber.org/zap"
)

const (
	// DefaultSplitFee is the base fee of a split transaction.
	DefaultSplitFee = 10_000
	maxSplits       = 50
)

// ErrBalanceTooLow is returned when the balance can not fund a split.
var ErrBalanceTooLow = errors.New("balance too low to split")

// Config tunes the maintainer.
type Config struct {
	MinBalance    uint64
	MinUtxos      int
	Splits        int
	Fee           uint64
	Confirmations uint32
	Network       string
}

// splits returns the configured split count, defaulting to twice the minimum capped at 50.
func (c Config) splits() int {
	if c.Splits > 0 {
		return c.Splits
	}
	return min(2*c.MinUtxos, maxSplits)
}

// Plan is a self transfer splitting the balance into equal outputs.
type Plan struct {
	Outputs     int
	OutputValue uint64
	Fee         uint64
}

// PlanSplit divides balance into splits outputs. The division remainder is added to
// the fee, so Outputs*OutputValue+Fee == balance.
func PlanSplit(balance uint64, splits int, baseFee uint64) (Plan, error) {
	if splits < 1 {
		return Plan{}, fmt.Errorf("split count must be positive, got %d", splits)
	}
	if balance <= baseFee {
		return Plan{}, fmt.Errorf("%w: balance %d, fee %d", ErrBalanceTooLow, balance, baseFee)
	}
	n := uint64(splits)
	value := (balance - baseFee) / n
	if value == 0 {
		return Plan{}, fmt.Errorf("%w: %d outputs from %d", ErrBalanceTooLow, splits, balance)
	}
	return Plan{
		Outputs:     splits,
		OutputValue: value,
		Fee:         baseFee + (balance-baseFee)%n,
	}, nil
}

// Maintainer watches the hot wallet balance and splits it into more outputs when
// spendable outputs become scarce.
type Maintainer struct {
	wallet  Wallet
	journal Journal
	metrics Metrics
	cfg     Config
	logger  *zap.Logger

	trigger chan struct{}
	// pending counts queued triggers and running checks.
	pending atomic.Int32
	last    uint64
}

// New constructs a Maintainer.
func New(wallet Wallet, journal Journal, metrics Metrics, cfg Config, logger *zap.Logger) *Maintainer {
	if cfg.Fee == 0 {
		cfg.Fee = DefaultSplitFee
	}
	return &Maintainer{
		wallet:  wallet,
		journal: journal,
		metrics: metrics,
		cfg:     cfg,
		logger:  logger.Named("liquidity"),
		trigger: make(chan struct{}, 1),
	}
}

// Trigger requests a balance check without blocking. The maintainer reports Busy from
// this call until the check, including any split it sends, has finished.
func (m *Maintainer) Trigger() {
	m.pending.Add(1)
	select {
	case m.trigger <- struct{}{}:
	default:
		m.pending.Add(-1)
	}
}

// Busy reports whether a check is queued or running, or a split awaits confirmation.
func (m *Maintainer) Busy() bool {
	return m.pending.Load() > 0
}

// Run serves triggers until ctx is canceled.
func (m *Maintainer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.trigger:
			err := m.Check(ctx)
			m.pending.Add(-1)
			if err != nil && ctx.Err() == nil {
				m.logger.Warn("liquidity check failed", zap.Error(err))
			}
		}
	}
}

// Check reports the balance and splits it when it grew while spendable outputs
// are below the configured minimum.
func (m *Maintainer) Check(ctx context.Context) error {
	m.pending.Add(1)
	defer m.pending.Add(-1)

	balance, err := m.wallet.Balance(ctx)
	if err != nil {
		return fmt.Errorf("read balance: %w", err)
	}
	m.report(balance)

	increased := balance.Unlocked > m.last
	m.last = balance.Unlocked
	if !increased {
		return nil
	}

	utxos, err := m.wallet.Utxos(ctx)
	if err != nil {
		return fmt.Errorf("read utxos: %w", err)
	}
	m.metrics.SetUtxos(len(utxos))
	if len(utxos) >= m.cfg.MinUtxos {
		return nil
	}

	plan, err := PlanSplit(balance.Unlocked, m.cfg.splits(), m.cfg.Fee)
	if err != nil {
		m.metrics.ObserveSplit(0, err)
		return err
	}
	m.logger.Info("splitting hot wallet balance",
		zap.Int("utxos", len(utxos)),
		zap.Int("min_utxos", m.cfg.MinUtxos),
		zap.Int("outputs", plan.Outputs),
		zap.Uint64("output_value", plan.OutputValue),
		zap.Uint64("fee", plan.Fee),
	)
	hash, err := m.split(ctx, plan)
	m.metrics.ObserveSplit(plan.Outputs, err)
	if err != nil {
		return err
	}
	m.journal.RecordSplit(model.SplitRecord{
		Network:       m.cfg.Network,
		TxHash:        hash,
		Outputs:       uint32(plan.Outputs),
		OutputValue:   plan.OutputValue,
		Fee:           plan.Fee,
		BalanceBefore: balance.Unlocked,
		RecordedAt:    time.Now().UTC(),
	})

	after, err := m.wallet.Balance(ctx)
	if err != nil {
		return fmt.Errorf("read balance: %w", err)
	}
	m.last = after.Unlocked
	m.report(after)
	return nil
}

func (m *Maintainer) split(ctx context.Context, plan Plan) (string, error) {
	recipients := make([]model.Recipient, plan.Outputs)
	for i := range recipients {
		recipients[i] = model.Recipient{Address: m.wallet.PKH(), Value: plan.OutputValue}
	}
	receipt, err := m.wallet.Send(ctx, recipients, plan.Fee)
	if err != nil {
		return "", fmt.Errorf("send split: %w", err)
	}
	logger := m.logger.With(zap.String("tx", receipt.Hash))

	updates := make(chan model.StatusUpdate, 1)
	m.wallet.Confirm(ctx, receipt.Hash, m.cfg.Confirmations, func(u model.StatusUpdate) {
		select {
		case updates <- u:
		case <-ctx.Done():
		}
	})
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case u := <-updates:
			logger.Info("split progress", zap.String("status", string(u.Status)), zap.Uint32("confirmations", u.Confirmations))
			switch u.Status {
			case model.TxFinalized:
				return receipt.Hash, nil
			case model.TxFailed:
				if u.Err == nil {
					u.Err = errors.New("transaction dropped")
				}
				return "", fmt.Errorf("split %s failed: %w", receipt.Hash, u.Err)
			}
		}
	}
}

func (m *Maintainer) report(balance model.Balance) {
	m.metrics.SetBalance(balance)
	if balance.Unlocked < m.cfg.MinBalance {
		m.logger.Warn("hot wallet balance below minimum",
			zap.Uint64("unlocked", balance.Unlocked),
			zap.Uint64("min_balance", m.cfg.MinBalance),
		)
		return
	}
	m.logger.Info("hot wallet balance",
		zap.Uint64("unlocked", balance.Unlocked),
		zap.Uint64("locked", balance.Locked),
		zap.Uint64("staked", balance.Staked),
	)
}
