package evm

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Client is the subset of the EVM node API the event source needs.
	Client interface {
		ChainID(ctx context.Context) (*big.Int, error)
		BlockNumber(ctx context.Context) (uint64, error)
		FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
		SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error)
		SubscribeNewHead(ctx context.Context, ch chan<- *types.Header) (ethereum.Subscription, error)
		CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
		Close()
	}
	// Dialer opens a Client session.
	Dialer interface {
		Dial(ctx context.Context) (Client, error)
	}
	// StateObserver is told about every connection state change.
	StateObserver interface {
		SetState(state State)
	}
	// SourceMetrics counts unwrap logs the source could not decode.
	SourceMetrics interface {
		ObserveUndecodable()
	}
	// RPCMetrics records metrics for EVM RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
