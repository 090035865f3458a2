package oracle

import (
	"context"

	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// Ledger is the native ledger query surface the oracle relies on.
type Ledger interface {
	GetUtxos(ctx context.Context, address string) ([]model.Utxo, error)
	GetValueTransfer(ctx context.Context, hash, mode string) (*model.ValueTransfer, error)
}
