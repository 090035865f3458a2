package clickhouse

import (
	"context"
	"fmt"
	"time"
)

const maxFinalizedBlockQuery = `
SELECT toUInt64(max(block_number)) AS block_number, count() AS cnt
FROM unwrap_journal
WHERE network = ? AND stage IN ('finalized', 'settled-elsewhere')`

// MaxFinalizedBlock returns the highest origin block with a settled unwrap recorded
// for network. The flag is false when the journal holds none.
func (r *Repository) MaxFinalizedBlock(ctx context.Context, network string) (block uint64, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("max_finalized_block", network, err, start)
	}()

	rows, err := r.conn.Query(ctx, maxFinalizedBlockQuery, network)
	if err != nil {
		return 0, false, fmt.Errorf("query max finalized block: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return 0, false, nil
	}
	var cnt uint64
	if err = rows.Scan(&block, &cnt); err != nil {
		return 0, false, fmt.Errorf("scan max finalized block: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, false, fmt.Errorf("iterate max finalized block: %w", err)
	}
	if cnt == 0 {
		return 0, false, nil
	}
	return block, true, nil
}
