// Package oracle decides whether an unwrap event was already paid on the native ledger.
//
// Every payment carries a one unit output to the metadata address derived from the
// event digest. Those outputs are never spent, so the unspent outputs of the metadata
// address enumerate every payment ever made for the event, by any relayer instance.
package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
	"github.com/goodnatureofminers/wit-unwrapper/internal/witnet"
	"github.com/goodnatureofminers/wit-unwrapper/pkg/workerpool"
	"go.uber.org/zap"
)

const defaultWorkers = 4

// Oracle looks up settlements of unwrap events.
type Oracle struct {
	ledger    Ledger
	tolerance uint64
	workers   int
	logger    *zap.Logger
}

// New constructs an Oracle. tolerance is the number of minimal units a settlement may
// fall short of the event value and still count.
func New(ledger Ledger, tolerance uint64, logger *zap.Logger) *Oracle {
	return &Oracle{
		ledger:    ledger,
		tolerance: tolerance,
		workers:   defaultWorkers,
		logger:    logger.Named("oracle"),
	}
}

// FindSettlement returns the first transfer that settles entry, or nil when none exists.
func (o *Oracle) FindSettlement(ctx context.Context, entry model.PendingEntry) (*model.ValueTransfer, error) {
	utxos, err := o.ledger.GetUtxos(ctx, entry.TagAddress)
	if err != nil {
		return nil, fmt.Errorf("query tag outputs of %s: %w", entry.TagAddress, err)
	}
	hashes := candidates(utxos)
	if len(hashes) == 0 {
		return nil, nil
	}

	records, err := workerpool.Map(ctx, o.workers, hashes, func(ctx context.Context, hash string) (*model.ValueTransfer, error) {
		vt, err := o.ledger.GetValueTransfer(ctx, hash, witnet.ModeEthereal)
		if err != nil {
			return nil, fmt.Errorf("fetch transfer %s: %w", hash, err)
		}
		return vt, nil
	})
	if err != nil {
		return nil, err
	}

	for _, vt := range records {
		if o.settles(vt, entry.Event) {
			return vt, nil
		}
		o.logger.Debug("tagged transfer does not settle event",
			zap.String("digest", entry.Digest.Hex()),
			zap.String("tx", vt.Hash),
			zap.String("recipient", vt.Recipient),
			zap.Uint64("value", vt.Value),
		)
	}
	return nil, nil
}

// IsSettled reports whether entry was already paid.
func (o *Oracle) IsSettled(ctx context.Context, entry model.PendingEntry) (bool, error) {
	vt, err := o.FindSettlement(ctx, entry)
	if err != nil {
		return false, err
	}
	return vt != nil, nil
}

// The recipient gets value minus fee minus the tag unit, so those are added back.
func (o *Oracle) settles(vt *model.ValueTransfer, e model.UnwrapEvent) bool {
	if vt == nil || vt.Recipient != e.To {
		return false
	}
	return vt.Value+vt.Fee+1+o.tolerance >= e.Value
}

// candidates returns the distinct transaction hashes behind output pointers, in order.
func candidates(utxos []model.Utxo) []string {
	seen := make(map[string]struct{}, len(utxos))
	hashes := make([]string, 0, len(utxos))
	for _, u := range utxos {
		hash, _, _ := strings.Cut(u.OutputPointer, ":")
		if hash == "" {
			continue
		}
		if _, ok := seen[hash]; ok {
			continue
		}
		seen[hash] = struct{}{}
		hashes = append(hashes, hash)
	}
	return hashes
}
