// Package backlog holds unwrap entries waiting for enough spendable balance.
package backlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/payment"
	"go.uber.org/zap"
)

// BalanceFunc returns the currently spendable balance.
type BalanceFunc func(ctx context.Context) (uint64, error)

// PayFunc submits the payment of a single entry. Returning an error wrapping
// payment.ErrAlreadySettled removes the entry without counting it as paid.
type PayFunc func(ctx context.Context, entry model.PendingEntry) error

// FlushResult summarizes a flush pass.
type FlushResult struct {
	Paid      int
	Settled   int
	Pending   int
	Required  uint64
	Available uint64
}

// Shortfall reports whether the entries left behind need more than the available balance.
func (r FlushResult) Shortfall() bool {
	return r.Pending > 0 && r.Required > r.Available
}

// Backlog is a FIFO of pending entries. It is owned by a single goroutine.
type Backlog struct {
	entries []model.PendingEntry
	logger  *zap.Logger
}

// New constructs an empty Backlog.
func New(logger *zap.Logger) *Backlog {
	return &Backlog{logger: logger.Named("backlog")}
}

// Push appends an entry.
func (b *Backlog) Push(entry model.PendingEntry) {
	b.entries = append(b.entries, entry)
}

// Len returns the number of waiting entries.
func (b *Backlog) Len() int {
	return len(b.entries)
}

// Value returns the total value of waiting entries.
func (b *Backlog) Value() uint64 {
	var total uint64
	for _, e := range b.entries {
		total += e.Event.Value
	}
	return total
}

// Flush walks the backlog in arrival order and pays every entry whose value is
// strictly below the spendable balance. The balance is re-read after every
// submission. Entries that fail to pay stay queued for the next flush.
func (b *Backlog) Flush(ctx context.Context, balance BalanceFunc, pay PayFunc) (FlushResult, error) {
	var res FlushResult
	if len(b.entries) == 0 {
		return res, nil
	}

	available, err := balance(ctx)
	if err != nil {
		return b.summarize(res), fmt.Errorf("read spendable balance: %w", err)
	}
	res.Available = available

	kept := b.entries[:0:0]
	for i, entry := range b.entries {
		if err := ctx.Err(); err != nil {
			kept = append(kept, b.entries[i:]...)
			b.entries = kept
			return b.summarize(res), err
		}
		if entry.Event.Value >= available {
			kept = append(kept, entry)
			continue
		}

		err := pay(ctx, entry)
		switch {
		case err == nil:
			res.Paid++
		case errors.Is(err, payment.ErrAlreadySettled):
			res.Settled++
			continue
		default:
			b.logger.Warn("payment deferred",
				zap.String("event", entry.Event.Key()),
				zap.String("digest", entry.Digest.Hex()),
				zap.Error(err),
			)
			kept = append(kept, entry)
			continue
		}

		available, err = balance(ctx)
		if err != nil {
			kept = append(kept, b.entries[i+1:]...)
			b.entries = kept
			return b.summarize(res), fmt.Errorf("read spendable balance: %w", err)
		}
		res.Available = available
	}
	b.entries = kept
	return b.summarize(res), nil
}

func (b *Backlog) summarize(res FlushResult) FlushResult {
	res.Pending = len(b.entries)
	res.Required = b.Value()
	return res
}
