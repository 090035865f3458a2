// Package tracker follows submitted native payments until they are final and
// advances the checkpoint once every unwrap of an EVM block is settled.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
	"go.uber.org/zap"
)

const (
	updatesBuffer = 256
	retriesBuffer = 64
)

// ErrCheckpointStorage is returned when the checkpoint can not be persisted.
var ErrCheckpointStorage = errors.New("checkpoint storage failure")

// Tracker owns the in-flight payments and the outstanding digests of every
// origin block. Status updates are applied by Run; failed payments come back
// through Retries.
type Tracker struct {
	store   Store
	journal Journal
	metrics Metrics
	network string
	logger  *zap.Logger

	updates chan model.StatusUpdate
	retries chan model.PendingEntry
	stopped chan struct{}

	mu          sync.Mutex
	inflight    map[string]*model.InFlightTransaction
	outstanding map[model.Digest]uint64
	byBlock     map[uint64]map[model.Digest]struct{}
	done        uint64
	checkpoint  uint64
}

// New constructs a Tracker resuming from checkpoint.
func New(store Store, checkpoint uint64, journal Journal, metrics Metrics, network string, logger *zap.Logger) *Tracker {
	return &Tracker{
		store:       store,
		journal:     journal,
		metrics:     metrics,
		network:     network,
		logger:      logger.Named("tracker"),
		updates:     make(chan model.StatusUpdate, updatesBuffer),
		retries:     make(chan model.PendingEntry, retriesBuffer),
		stopped:     make(chan struct{}),
		inflight:    make(map[string]*model.InFlightTransaction),
		outstanding: make(map[model.Digest]uint64),
		byBlock:     make(map[uint64]map[model.Digest]struct{}),
		done:        checkpoint,
		checkpoint:  checkpoint,
	}
}

// Observe registers entry as outstanding in its origin block. It returns false when
// the digest is already outstanding.
func (t *Tracker) Observe(entry model.PendingEntry) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.outstanding[entry.Digest]; ok {
		return false
	}
	block := entry.Event.BlockNumber
	t.outstanding[entry.Digest] = block
	set, ok := t.byBlock[block]
	if !ok {
		set = make(map[model.Digest]struct{})
		t.byBlock[block] = set
	}
	set[entry.Digest] = struct{}{}
	t.metrics.SetOutstanding(len(t.outstanding))
	return true
}

// Outstanding reports whether digest waits in the backlog or is in flight.
func (t *Tracker) Outstanding(digest model.Digest) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.outstanding[digest]
	return ok
}

// Submit starts tracking a payment accepted by the native ledger.
func (t *Tracker) Submit(entry model.PendingEntry, receipt model.Receipt, amount uint64) {
	tx := &model.InFlightTransaction{
		Hash:       receipt.Hash,
		Event:      entry.Event,
		Digest:     entry.Digest,
		TagAddress: entry.TagAddress,
		Amount:     amount,
		Fee:        receipt.Fee,
		Status:     model.TxSubmitted,
	}

	t.mu.Lock()
	t.inflight[receipt.Hash] = tx
	t.metrics.SetInFlight(len(t.inflight))
	t.mu.Unlock()

	t.metrics.ObserveStatus(model.TxSubmitted)
	t.record(model.StageSubmitted, tx)
}

// Settle releases an entry found paid elsewhere. It may advance the checkpoint.
func (t *Tracker) Settle(entry model.PendingEntry) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	block := entry.Event.BlockNumber
	if _, ok := t.outstanding[entry.Digest]; ok {
		t.release(entry.Digest)
	} else if len(t.byBlock[block]) == 0 && block > t.done {
		t.done = block
	}
	return t.advance()
}

// Notify queues a status update. It is safe to call from any goroutine.
func (t *Tracker) Notify(update model.StatusUpdate) {
	select {
	case t.updates <- update:
	case <-t.stopped:
	}
}

// Retries delivers entries whose payment failed and must be paid again.
func (t *Tracker) Retries() <-chan model.PendingEntry {
	return t.retries
}

// InFlight returns the number of payments awaiting finality.
func (t *Tracker) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inflight)
}

// Checkpoint returns the last persisted checkpoint.
func (t *Tracker) Checkpoint() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.checkpoint
}

// Run applies status updates until ctx is canceled or the checkpoint can not be saved.
func (t *Tracker) Run(ctx context.Context) error {
	defer close(t.stopped)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-t.updates:
			retry, err := t.apply(update)
			if err != nil {
				return err
			}
			if retry == nil {
				continue
			}
			select {
			case t.retries <- *retry:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (t *Tracker) apply(update model.StatusUpdate) (*model.PendingEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tx, ok := t.inflight[update.Hash]
	if !ok {
		t.logger.Debug("status update for unknown transaction", zap.String("tx", update.Hash))
		return nil, nil
	}
	tx.Status = update.Status
	tx.Confirmations = update.Confirmations
	t.metrics.ObserveStatus(update.Status)

	switch update.Status {
	case model.TxFinalized:
		delete(t.inflight, update.Hash)
		t.metrics.SetInFlight(len(t.inflight))
		t.record(model.StageFinalized, tx)
		t.release(tx.Digest)
		return nil, t.advance()

	case model.TxFailed:
		delete(t.inflight, update.Hash)
		t.metrics.SetInFlight(len(t.inflight))
		t.logger.Warn("payment failed, retrying",
			zap.String("stage", string(model.StageFailed)),
			zap.String("event", tx.Event.Key()),
			zap.String("digest", tx.Digest.Hex()),
			zap.String("tx", tx.Hash),
			zap.Error(update.Err),
		)
		t.journalEntry(model.StageFailed, tx)
		entry := tx.Entry()
		return &entry, nil

	default:
		t.record(model.StageConfirming, tx)
		return nil, nil
	}
}

// release drops digest from the outstanding set; callers hold mu.
func (t *Tracker) release(digest model.Digest) {
	block, ok := t.outstanding[digest]
	if !ok {
		return
	}
	delete(t.outstanding, digest)
	t.metrics.SetOutstanding(len(t.outstanding))

	set := t.byBlock[block]
	delete(set, digest)
	if len(set) == 0 {
		delete(t.byBlock, block)
		if block > t.done {
			t.done = block
		}
	}
}

// advance persists the highest emptied block that has no outstanding block at or
// below it; callers hold mu.
func (t *Tracker) advance() error {
	target := t.done
	for block := range t.byBlock {
		if block <= target {
			if block == 0 {
				return nil
			}
			target = block - 1
		}
	}
	if target <= t.checkpoint {
		return nil
	}
	if err := t.store.Save(target); err != nil {
		return fmt.Errorf("%w: save block %d: %v", ErrCheckpointStorage, target, err)
	}
	t.checkpoint = target
	t.metrics.SetCheckpoint(target)
	return nil
}

func (t *Tracker) record(stage model.Stage, tx *model.InFlightTransaction) {
	t.logger.Info("unwrap "+string(stage),
		zap.String("stage", string(stage)),
		zap.String("event", tx.Event.Key()),
		zap.String("to", tx.Event.To),
		zap.String("tx", tx.Hash),
		zap.String("status", string(tx.Status)),
		zap.Uint32("confirmations", tx.Confirmations),
	)
	t.journalEntry(stage, tx)
}

func (t *Tracker) journalEntry(stage model.Stage, tx *model.InFlightTransaction) {
	entry := model.NewJournalEntry(t.network, stage, tx.Entry())
	entry.TxHash = tx.Hash
	entry.Amount = tx.Amount
	entry.Fee = tx.Fee
	t.journal.Record(entry)
}
