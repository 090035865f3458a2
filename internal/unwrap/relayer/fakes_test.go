package relayer

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/evm"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
	"github.com/goodnatureofminers/wit-unwrapper/internal/witnet"
)

const (
	wit       = 1_000_000_000
	chainID   = 11155111
	recipient = "twit1qd3h60rpt2v0uzy6rf0rpandhljy7yx2vz9nrh"
	hotWallet = "twit19rnvq8yjrmpa6tjdahct4pd49ha5lmvxjeyfha"
	flatFee   = 100
)

// ledger is an in-memory native ledger indexed by metadata address.
type ledger struct {
	mu        sync.Mutex
	tags      map[string][]model.Utxo
	transfers map[string]*model.ValueTransfer
	queryErr  error
}

func newLedger() *ledger {
	return &ledger{
		tags:      make(map[string][]model.Utxo),
		transfers: make(map[string]*model.ValueTransfer),
	}
}

func (l *ledger) GetUtxos(_ context.Context, address string) ([]model.Utxo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.queryErr != nil {
		return nil, l.queryErr
	}
	return append([]model.Utxo(nil), l.tags[address]...), nil
}

func (l *ledger) GetValueTransfer(_ context.Context, hash, mode string) (*model.ValueTransfer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if mode != witnet.ModeEthereal {
		return nil, fmt.Errorf("unexpected mode %q", mode)
	}
	vt, ok := l.transfers[hash]
	if !ok {
		return nil, fmt.Errorf("transfer %s not found", hash)
	}
	cp := *vt
	return &cp, nil
}

func (l *ledger) record(tag, hash, to string, value, fee uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tags[tag] = append(l.tags[tag], model.Utxo{OutputPointer: hash + ":1", Value: 1, Mature: true})
	l.transfers[hash] = &model.ValueTransfer{Hash: hash, Recipient: to, Value: value, Fee: fee}
}

func (l *ledger) drop(tag, hash string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.transfers, hash)
	kept := l.tags[tag][:0]
	for _, u := range l.tags[tag] {
		if u.OutputPointer != hash+":1" {
			kept = append(kept, u)
		}
	}
	l.tags[tag] = kept
}

type sent struct {
	hash   string
	to     string
	amount uint64
	fee    uint64
}

// wallet pays through the in-memory ledger. Payments listed in fail are dropped
// and reported failed instead of finalized. Self transfers replace the output set
// and, when hold is set, stay unconfirmed until it is closed.
type wallet struct {
	mu      sync.Mutex
	ledger  *ledger
	balance uint64
	outputs int
	sent    []sent
	splits  []sent
	fail    map[int]bool
	tags    map[string]string
	spends  int
	hold    chan struct{}
}

func newWallet(l *ledger, balance uint64) *wallet {
	return &wallet{ledger: l, balance: balance, outputs: 1, fail: make(map[int]bool), tags: make(map[string]string)}
}

func (w *wallet) PKH() string {
	return hotWallet
}

func (w *wallet) Utxos(context.Context) ([]model.Utxo, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	utxos := make([]model.Utxo, w.outputs)
	for i := range utxos {
		utxos[i] = model.Utxo{OutputPointer: fmt.Sprintf("out:%d", i), Value: w.balance / uint64(w.outputs), Mature: true}
	}
	return utxos, nil
}

func (w *wallet) Balance(context.Context) (model.Balance, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return model.Balance{Unlocked: w.balance}, nil
}

func (w *wallet) Spendable(context.Context) (uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.spends++
	return w.balance, nil
}

func (w *wallet) reads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.spends
}

func (w *wallet) EstimateFee(context.Context, []model.Recipient, model.FeePriority) (uint64, error) {
	return flatFee, nil
}

func (w *wallet) Send(_ context.Context, recipients []model.Recipient, fee uint64) (model.Receipt, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	total := fee
	for _, r := range recipients {
		total += r.Value
	}
	if total > w.balance {
		return model.Receipt{}, witnet.ErrInsufficientFunds
	}
	if recipients[0].Address == hotWallet {
		hash := fmt.Sprintf("split%059x", len(w.splits)+1)
		w.splits = append(w.splits, sent{hash: hash, to: hotWallet, amount: recipients[0].Value, fee: fee})
		w.balance -= fee
		w.outputs = len(recipients)
		return model.Receipt{Hash: hash, Fee: fee, Value: total - fee}, nil
	}
	w.balance -= total
	hash := fmt.Sprintf("%064x", len(w.sent)+1)
	w.sent = append(w.sent, sent{hash: hash, to: recipients[0].Address, amount: recipients[0].Value, fee: fee})
	w.tags[hash] = recipients[1].Address
	w.ledger.record(recipients[1].Address, hash, recipients[0].Address, recipients[0].Value, fee)
	return model.Receipt{Hash: hash, Fee: fee, Value: total - fee}, nil
}

func (w *wallet) Confirm(ctx context.Context, hash string, confirmations uint32, onStatus func(model.StatusUpdate)) {
	w.mu.Lock()
	for _, s := range w.splits {
		if s.hash == hash {
			hold := w.hold
			w.mu.Unlock()
			go func() {
				if hold != nil {
					select {
					case <-hold:
					case <-ctx.Done():
						return
					}
				}
				onStatus(model.StatusUpdate{Hash: hash, Status: model.TxFinalized, Confirmations: confirmations})
			}()
			return
		}
	}
	index := -1
	for i, s := range w.sent {
		if s.hash == hash {
			index = i
		}
	}
	failed := w.fail[index]
	if failed {
		s := w.sent[index]
		w.balance += s.amount + s.fee + 1
		w.ledger.drop(w.tags[hash], hash)
	}
	w.mu.Unlock()

	update := model.StatusUpdate{Hash: hash, Status: model.TxFinalized, Confirmations: confirmations}
	if failed {
		update = model.StatusUpdate{Hash: hash, Status: model.TxFailed, Err: fmt.Errorf("dropped from mempool")}
	}
	go onStatus(update)
}

func (w *wallet) deposit(value uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balance += value
}

func (w *wallet) payments() []sent {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]sent(nil), w.sent...)
}

func (w *wallet) selfTransfers() []sent {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]sent(nil), w.splits...)
}

// source hands notifications pushed by the test to the relayer.
type source struct {
	out chan evm.Notification
	err error
}

func newSource() *source {
	return &source{out: make(chan evm.Notification, 64)}
}

func (s *source) Run(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *source) Notifications() <-chan evm.Notification {
	return s.out
}

func (s *source) unwrap(e model.UnwrapEvent) {
	s.out <- evm.Notification{Kind: evm.NewUnwrap, BlockNumber: e.BlockNumber, Event: e}
}

func (s *source) block(n uint64) {
	s.out <- evm.Notification{Kind: evm.NewBlock, BlockNumber: n}
}

// store keeps checkpoints in memory.
type store struct {
	mu    sync.Mutex
	saved []uint64
	err   error
}

func (s *store) Save(block uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, block)
	return nil
}

func (s *store) last() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.saved) == 0 {
		return 0
	}
	return s.saved[len(s.saved)-1]
}

// sink collects journal rows and the last block seen, and discards other metrics.
type sink struct {
	mu     sync.Mutex
	stages map[model.Stage]int
	splits []model.SplitRecord
	block  uint64
}

func newSink() *sink {
	return &sink{stages: make(map[model.Stage]int)}
}

func (s *sink) Record(entry model.JournalEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stages[entry.Stage]++
}

func (s *sink) count(stage model.Stage) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stages[stage]
}

func (s *sink) RecordSplit(record model.SplitRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.splits = append(s.splits, record)
}

func (s *sink) splitRecords() []model.SplitRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.SplitRecord(nil), s.splits...)
}

func (s *sink) SetBlock(block uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.block = block
}

func (s *sink) lastBlock() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.block
}

func (*sink) ObserveStatus(model.TxStatus) {}
func (*sink) SetInFlight(int)              {}
func (*sink) SetOutstanding(int)           {}
func (*sink) SetCheckpoint(uint64)         {}
func (*sink) ObserveStage(model.Stage)     {}
func (*sink) ObservePayment(error)         {}
func (*sink) SetBacklog(int, uint64)       {}
func (*sink) SetBalance(model.Balance)     {}
func (*sink) SetUtxos(int)                 {}
func (*sink) ObserveSplit(int, error)      {}

func unwrapEvent(block, nonce, value uint64) model.UnwrapEvent {
	return model.UnwrapEvent{
		BlockNumber: block,
		Nonce:       nonce,
		From:        common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		To:          recipient,
		Value:       value,
	}
}
