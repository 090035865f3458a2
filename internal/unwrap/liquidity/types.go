package liquidity

import (
	"context"

	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Wallet is the hot wallet being rebalanced.
	Wallet interface {
		PKH() string
		Balance(ctx context.Context) (model.Balance, error)
		Utxos(ctx context.Context) ([]model.Utxo, error)
		Send(ctx context.Context, recipients []model.Recipient, fee uint64) (model.Receipt, error)
		Confirm(ctx context.Context, hash string, confirmations uint32, onStatus func(model.StatusUpdate))
	}
	// Journal receives split records.
	Journal interface {
		RecordSplit(record model.SplitRecord)
	}
	// Metrics records wallet and split metrics.
	Metrics interface {
		SetBalance(balance model.Balance)
		SetUtxos(n int)
		ObserveSplit(outputs int, err error)
	}
)
