package payment

import (
	"context"

	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// FeeEstimator prices a native transfer.
type FeeEstimator interface {
	EstimateFee(ctx context.Context, recipients []model.Recipient, priority model.FeePriority) (uint64, error)
}
