// Package payment turns pending unwrap entries into fee adjusted native transfers.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
)

// TagValue is the value of the output sent to the metadata address.
const TagValue = 1

var (
	// ErrAlreadySettled marks an entry found paid right before building its transfer.
	ErrAlreadySettled = errors.New("unwrap already settled")
	// ErrValueTooLow is returned for entries that cannot even fund the tag output.
	ErrValueTooLow = errors.New("unwrap value cannot fund the tag output")
)

// Candidate is a transfer ready to be signed and broadcast.
type Candidate struct {
	Entry      model.PendingEntry
	Recipients []model.Recipient
	Amount     uint64
	Fee        uint64
}

// Split divides value between recipient amount and fee given an estimated fee.
// One unit is kept for the tag output, so amount+fee+1 == value always holds.
// When the estimate would swallow the whole value, value is shared evenly instead.
func Split(value, estimatedFee uint64) (amount, fee uint64, err error) {
	if value < TagValue {
		return 0, 0, ErrValueTooLow
	}
	net := value - TagValue
	if estimatedFee >= net {
		return net/2 + 1 - value%2, net / 2, nil
	}
	return net - estimatedFee, estimatedFee, nil
}

// Builder prices payments with a fee estimator at a fixed priority tier.
type Builder struct {
	estimator FeeEstimator
	priority  model.FeePriority
}

// NewBuilder constructs a Builder.
func NewBuilder(estimator FeeEstimator, priority model.FeePriority) (*Builder, error) {
	if !priority.Valid() {
		return nil, fmt.Errorf("unknown fee priority %q", priority)
	}
	return &Builder{estimator: estimator, priority: priority}, nil
}

// Build derives the transfer paying entry.
func (b *Builder) Build(ctx context.Context, entry model.PendingEntry) (Candidate, error) {
	value := entry.Event.Value
	if value < TagValue {
		return Candidate{}, ErrValueTooLow
	}
	estimated, err := b.estimator.EstimateFee(ctx, recipients(entry, value-TagValue), b.priority)
	if err != nil {
		return Candidate{}, fmt.Errorf("estimate fee: %w", err)
	}
	amount, fee, err := Split(value, estimated)
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{
		Entry:      entry,
		Recipients: recipients(entry, amount),
		Amount:     amount,
		Fee:        fee,
	}, nil
}

func recipients(entry model.PendingEntry, amount uint64) []model.Recipient {
	return []model.Recipient{
		{Address: entry.Event.To, Value: amount},
		{Address: entry.TagAddress, Value: TagValue},
	}
}
