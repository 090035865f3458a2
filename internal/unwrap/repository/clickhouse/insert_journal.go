package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
)

const insertJournalQuery = `
INSERT INTO unwrap_journal (
	network,
	stage,
	block_number,
	nonce,
	from_address,
	to_address,
	value,
	digest,
	tag_address,
	tx_hash,
	amount,
	fee,
	recorded_at
) VALUES`

// InsertJournal appends unwrap lifecycle rows.
func (r *Repository) InsertJournal(ctx context.Context, entries []model.JournalEntry) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_journal", firstNetwork(entries), err, start)
	}()

	if len(entries) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertJournalQuery)
	if err != nil {
		return fmt.Errorf("prepare journal batch: %w", err)
	}

	for _, e := range entries {
		if err = batch.Append(
			e.Network,
			string(e.Stage),
			e.BlockNumber,
			e.Nonce,
			e.From,
			e.To,
			e.Value,
			e.Digest,
			e.TagAddress,
			e.TxHash,
			e.Amount,
			e.Fee,
			e.RecordedAt,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append journal entry: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert journal: %w", err)
	}
	return nil
}

func firstNetwork[T any](items []T) string {
	if len(items) == 0 {
		return ""
	}

	switch v := any(items[0]).(type) {
	case model.JournalEntry:
		return v.Network
	case model.SplitRecord:
		return v.Network
	default:
		return ""
	}
}
