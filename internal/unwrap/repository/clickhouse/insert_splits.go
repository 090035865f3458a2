package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
)

const insertSplitsQuery = `
INSERT INTO liquidity_splits (
	network,
	tx_hash,
	outputs,
	output_value,
	fee,
	balance_before,
	recorded_at
) VALUES`

// InsertSplits appends liquidity split rows.
func (r *Repository) InsertSplits(ctx context.Context, records []model.SplitRecord) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_splits", firstNetwork(records), err, start)
	}()

	if len(records) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertSplitsQuery)
	if err != nil {
		return fmt.Errorf("prepare splits batch: %w", err)
	}

	for _, rec := range records {
		if err = batch.Append(
			rec.Network,
			rec.TxHash,
			rec.Outputs,
			rec.OutputValue,
			rec.Fee,
			rec.BalanceBefore,
			rec.RecordedAt,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append split: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert splits: %w", err)
	}
	return nil
}
