package relayer

import (
	"errors"

	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/evm"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/tracker"
)

var (
	ErrChainMismatch         = evm.ErrChainMismatch
	ErrUnwrapperMismatch     = evm.ErrUnwrapperMismatch
	ErrCheckpointStorage     = tracker.ErrCheckpointStorage
	ErrInsufficientBalance   = errors.New("hot wallet balance below minimum")
	ErrLedgerNetworkMismatch = errors.New("evm mainnets must be bridged to the native mainnet")
)

// FatalError marks a failure the relayer must not retry. The process supervisor
// decides what happens next.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return "fatal: " + e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err carries a FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

func classify(err error) error {
	if err == nil || IsFatal(err) {
		return err
	}
	if evm.IsFatal(err) || errors.Is(err, ErrCheckpointStorage) {
		return &FatalError{Err: err}
	}
	return err
}
