package journal

import (
	"context"

	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Repository persists journal rows.
	Repository interface {
		InsertJournal(ctx context.Context, entries []model.JournalEntry) error
		InsertSplits(ctx context.Context, records []model.SplitRecord) error
	}
	// Metrics counts rows that never reached the repository.
	Metrics interface {
		ObserveDropped(kind string, n int)
	}
)
