package relayer

import (
	"context"

	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/evm"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/payment"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source emits the ordered stream of EVM blocks and unwraps.
	Source interface {
		Run(ctx context.Context) error
		Notifications() <-chan evm.Notification
	}
	// Codec derives digests and metadata addresses.
	Codec interface {
		Entry(e model.UnwrapEvent) (model.PendingEntry, error)
	}
	// Oracle looks up settlements on the native ledger.
	Oracle interface {
		FindSettlement(ctx context.Context, entry model.PendingEntry) (*model.ValueTransfer, error)
	}
	// Builder prices payments.
	Builder interface {
		Build(ctx context.Context, entry model.PendingEntry) (payment.Candidate, error)
	}
	// Wallet is the paying hot wallet.
	Wallet interface {
		Balance(ctx context.Context) (model.Balance, error)
		Spendable(ctx context.Context) (uint64, error)
		Send(ctx context.Context, recipients []model.Recipient, fee uint64) (model.Receipt, error)
		Confirm(ctx context.Context, hash string, confirmations uint32, onStatus func(model.StatusUpdate))
	}
	// Tracker follows payments to finality and owns the checkpoint.
	Tracker interface {
		Run(ctx context.Context) error
		Observe(entry model.PendingEntry) bool
		Outstanding(digest model.Digest) bool
		Submit(entry model.PendingEntry, receipt model.Receipt, amount uint64)
		Settle(entry model.PendingEntry) error
		Notify(update model.StatusUpdate)
		Retries() <-chan model.PendingEntry
		InFlight() int
		Checkpoint() uint64
	}
	// Maintainer rebalances the hot wallet outputs.
	Maintainer interface {
		Run(ctx context.Context) error
		Trigger()
		Busy() bool
	}
	// Journal receives unwrap lifecycle transitions.
	Journal interface {
		Record(entry model.JournalEntry)
	}
	// Metrics records relayer metrics.
	Metrics interface {
		ObserveStage(stage model.Stage)
		ObservePayment(err error)
		SetBacklog(entries int, value uint64)
		SetBlock(block uint64)
	}
)
