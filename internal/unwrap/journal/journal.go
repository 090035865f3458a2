// Package journal ships unwrap lifecycle rows and liquidity splits to storage
// in batches without ever blocking the relayer.
package journal

import (
	"context"

	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
	"github.com/goodnatureofminers/wit-unwrapper/pkg/batcher"
	"go.uber.org/zap"
)

const (
	KindEntry = "entry"
	KindSplit = "split"
)

// Writer buffers journal rows and flushes them through a Repository.
type Writer struct {
	entries *batcher.Batcher[model.JournalEntry]
	splits  *batcher.Batcher[model.SplitRecord]
	metrics Metrics
	logger  *zap.Logger
}

// NewWriter constructs a Writer. Call Start before recording.
func NewWriter(repo Repository, cfg batcher.Config, metrics Metrics, logger *zap.Logger) *Writer {
	logger = logger.Named("journal")
	entriesCfg, splitsCfg := cfg, cfg
	entriesCfg.OnFlushError = func(size int, _ error) { metrics.ObserveDropped(KindEntry, size) }
	splitsCfg.OnFlushError = func(size int, _ error) { metrics.ObserveDropped(KindSplit, size) }
	return &Writer{
		entries: batcher.New(logger.With(zap.String("kind", KindEntry)), repo.InsertJournal, entriesCfg),
		splits:  batcher.New(logger.With(zap.String("kind", KindSplit)), repo.InsertSplits, splitsCfg),
		metrics: metrics,
		logger:  logger,
	}
}

// Start launches the flush loops.
func (w *Writer) Start(ctx context.Context) {
	w.entries.Start(ctx)
	w.splits.Start(ctx)
}

// Stop flushes buffered rows and waits for the flush loops to exit.
func (w *Writer) Stop() {
	w.entries.Stop()
	w.splits.Stop()
}

// Record queues a lifecycle row. Rows are dropped when the buffer is full.
func (w *Writer) Record(entry model.JournalEntry) {
	if w.entries.TryAdd(entry) {
		return
	}
	w.metrics.ObserveDropped(KindEntry, 1)
	w.logger.Warn("journal row dropped",
		zap.String("stage", string(entry.Stage)),
		zap.String("digest", entry.Digest),
	)
}

// RecordSplit queues a liquidity split row.
func (w *Writer) RecordSplit(record model.SplitRecord) {
	if w.splits.TryAdd(record) {
		return
	}
	w.metrics.ObserveDropped(KindSplit, 1)
	w.logger.Warn("split row dropped", zap.String("tx", record.TxHash))
}

// Nop discards every row. It is used when no journal storage is configured.
type Nop struct{}

func (Nop) Record(model.JournalEntry)     {}
func (Nop) RecordSplit(model.SplitRecord) {}
