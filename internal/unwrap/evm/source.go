// Package evm follows the wrapped token contract on an EVM chain.
package evm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goodnatureofminers/wit-unwrapper/internal/clock"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
	"go.uber.org/zap"
)

const (
	defaultLogChunk   = 10_000
	defaultReconnect  = 5 * time.Second
	logsBuffer        = 128
	headsBuffer       = 16
	notificationQueue = 64
)

var (
	// ErrChainMismatch is returned when the node serves another chain than configured.
	ErrChainMismatch = errors.New("connected to unexpected evm chain")
	// ErrUnwrapperMismatch is returned when the contract names another custodian unwrapper.
	ErrUnwrapperMismatch = errors.New("contract custodian unwrapper mismatch")
	errSubscriptionClosed = errors.New("subscription closed")
)

// IsFatal reports whether err must stop the source instead of triggering a reconnect.
func IsFatal(err error) bool {
	return errors.Is(err, ErrChainMismatch) || errors.Is(err, ErrUnwrapperMismatch)
}

// NotificationKind tells blocks from unwraps.
type NotificationKind int

const (
	NewBlock NotificationKind = iota
	NewUnwrap
)

// Notification is a single item of the ordered stream emitted by the source.
type Notification struct {
	Kind        NotificationKind
	BlockNumber uint64
	Event       model.UnwrapEvent
	Replayed    bool
}

// Config configures a Source.
type Config struct {
	ChainID           uint64
	Unwrapper         string
	ReconnectInterval time.Duration
	LogChunk          uint64
}

// Source replays unwraps from a resume point and then follows the chain live,
// reconnecting after transport failures.
type Source struct {
	dialer   Dialer
	contract *Contract
	cfg      Config
	resume   func() uint64
	observer StateObserver
	metrics  SourceMetrics
	logger   *zap.Logger
	sleep    clock.Sleeper

	out chan Notification
}

// NewSource constructs a Source. resume returns the first block to replay on every connect.
func NewSource(dialer Dialer, contract *Contract, cfg Config, resume func() uint64, observer StateObserver, metrics SourceMetrics, logger *zap.Logger) *Source {
	if cfg.LogChunk == 0 {
		cfg.LogChunk = defaultLogChunk
	}
	if cfg.ReconnectInterval <= 0 {
		cfg.ReconnectInterval = defaultReconnect
	}
	return &Source{
		dialer:   dialer,
		contract: contract,
		cfg:      cfg,
		resume:   resume,
		observer: observer,
		metrics:  metrics,
		logger:   logger.Named("evm_source").With(zap.Uint64("chain_id", cfg.ChainID)),
		sleep:    clock.SleepWithContext,
		out:      make(chan Notification, notificationQueue),
	}
}

// Notifications returns the ordered stream of blocks and unwraps.
func (s *Source) Notifications() <-chan Notification {
	return s.out
}

// Run keeps a session open until ctx is canceled or a fatal mismatch is found.
func (s *Source) Run(ctx context.Context) error {
	defer s.observer.SetState(Disconnected)
	for {
		err := s.session(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if IsFatal(err) {
			return err
		}
		s.observer.SetState(Disconnected)
		s.logger.Warn("event source disconnected",
			zap.Duration("retry_in", s.cfg.ReconnectInterval),
			zap.Error(err),
		)
		if err := s.sleep(ctx, s.cfg.ReconnectInterval); err != nil {
			return err
		}
	}
}

func (s *Source) session(ctx context.Context) error {
	s.observer.SetState(Connecting)
	client, err := s.dialer.Dial(ctx)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("query chain id: %w", err)
	}
	if !chainID.IsUint64() || chainID.Uint64() != s.cfg.ChainID {
		return fmt.Errorf("%w: got %s, want %d", ErrChainMismatch, chainID, s.cfg.ChainID)
	}
	unwrapper, err := s.contract.Unwrapper(ctx, client)
	if err != nil {
		return fmt.Errorf("query custodian unwrapper: %w", err)
	}
	if unwrapper != s.cfg.Unwrapper {
		return fmt.Errorf("%w: contract names %s, hot wallet is %s", ErrUnwrapperMismatch, unwrapper, s.cfg.Unwrapper)
	}

	// Subscribe before reading the head so nothing between replay and live is lost.
	logs := make(chan types.Log, logsBuffer)
	logSub, err := client.SubscribeFilterLogs(ctx, s.contract.LiveQuery(), logs)
	if err != nil {
		return fmt.Errorf("subscribe logs: %w", err)
	}
	defer logSub.Unsubscribe()
	heads := make(chan *types.Header, headsBuffer)
	headSub, err := client.SubscribeNewHead(ctx, heads)
	if err != nil {
		return fmt.Errorf("subscribe heads: %w", err)
	}
	defer headSub.Unsubscribe()

	s.observer.SetState(CatchingUp)
	head, err := client.BlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("query head: %w", err)
	}
	from := s.resume()
	if head > from {
		if err := s.replay(ctx, client, from, head); err != nil {
			return err
		}
	}

	s.observer.SetState(Live)
	s.logger.Info("event source live", zap.Uint64("head", head), zap.String("contract", s.contract.Address().Hex()))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-logSub.Err():
			return subscriptionError("logs", err)
		case err := <-headSub.Err():
			return subscriptionError("heads", err)
		case lg := <-logs:
			if err := s.handleLive(ctx, lg, head); err != nil {
				return err
			}
		case h := <-heads:
			if h == nil || h.Number == nil {
				continue
			}
			if err := s.emit(ctx, Notification{Kind: NewBlock, BlockNumber: h.Number.Uint64()}); err != nil {
				return err
			}
		}
	}
}

func (s *Source) replay(ctx context.Context, client Client, from, head uint64) error {
	s.logger.Info("catching up unwraps", zap.Uint64("from", from), zap.Uint64("head", head))
	for start := from; start <= head; start += s.cfg.LogChunk {
		end := min(start+s.cfg.LogChunk-1, head)
		logs, err := client.FilterLogs(ctx, s.contract.UnwrapQuery(start, end))
		if err != nil {
			return fmt.Errorf("filter logs %d-%d: %w", start, end, err)
		}
		for _, lg := range logs {
			if lg.Removed {
				continue
			}
			event, err := s.contract.ParseUnwrap(lg)
			if err != nil {
				s.undecodable(lg, err)
				continue
			}
			if err := s.emit(ctx, Notification{Kind: NewUnwrap, BlockNumber: event.BlockNumber, Event: event, Replayed: true}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Source) handleLive(ctx context.Context, lg types.Log, replayedTo uint64) error {
	if lg.Removed {
		s.logger.Warn("log removed by reorg", zap.String("tx", lg.TxHash.Hex()), zap.Uint64("block", lg.BlockNumber))
		return nil
	}
	switch {
	case s.contract.IsUnwrapperChange(lg):
		unwrapper, err := s.contract.ParseUnwrapperChange(lg)
		if err != nil {
			return fmt.Errorf("decode unwrapper change: %w", err)
		}
		if unwrapper != s.cfg.Unwrapper {
			return fmt.Errorf("%w: changed to %s at block %d", ErrUnwrapperMismatch, unwrapper, lg.BlockNumber)
		}
		s.logger.Info("custodian unwrapper confirmed", zap.String("unwrapper", unwrapper), zap.Uint64("block", lg.BlockNumber))
		return nil
	case s.contract.IsUnwrap(lg):
		if lg.BlockNumber <= replayedTo {
			return nil
		}
		event, err := s.contract.ParseUnwrap(lg)
		if err != nil {
			s.undecodable(lg, err)
			return nil
		}
		return s.emit(ctx, Notification{Kind: NewUnwrap, BlockNumber: event.BlockNumber, Event: event})
	default:
		return nil
	}
}

func (s *Source) emit(ctx context.Context, n Notification) error {
	select {
	case s.out <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func subscriptionError(name string, err error) error {
	if err == nil {
		err = errSubscriptionClosed
	}
	return fmt.Errorf("%s subscription: %w", name, err)
}

// undecodable records an Unwrapped log that cannot be paid out. The unwrap it
// carries is lost until an operator settles it by hand.
func (s *Source) undecodable(lg types.Log, err error) {
	s.metrics.ObserveUndecodable()
	s.logger.Error("skipping undecodable unwrap log",
		zap.String("tx", lg.TxHash.Hex()),
		zap.Uint("index", lg.Index),
		zap.Uint64("block", lg.BlockNumber),
		zap.Error(err))
}
