package tracker

import "github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Store persists the checkpoint.
	Store interface {
		Save(block uint64) error
	}
	// Journal receives lifecycle transitions of tracked payments.
	Journal interface {
		Record(entry model.JournalEntry)
	}
	// Metrics records tracker state.
	Metrics interface {
		ObserveStatus(status model.TxStatus)
		SetInFlight(n int)
		SetOutstanding(n int)
		SetCheckpoint(block uint64)
	}
)
