// Package relayer pays every unwrap of the wrapped token contract on the native ledger exactly once.
package relayer

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/backlog"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/evm"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/payment"
	"go.uber.org/zap"
)

// Config tunes the relayer.
type Config struct {
	Network           string
	MinBalance        uint64
	MinUnwrappable    uint64
	Confirmations     uint32
	LiquidityInterval uint64
}

// Service reacts to the EVM stream in a single goroutine: it owns the backlog,
// while the tracker and the liquidity maintainer run alongside it.
type Service struct {
	source     Source
	codec      Codec
	oracle     Oracle
	builder    Builder
	wallet     Wallet
	tracker    Tracker
	maintainer Maintainer
	journal    Journal
	metrics    Metrics
	cfg        Config
	logger     *zap.Logger

	backlog *backlog.Backlog
	fatal   error
}

// Dependencies groups the collaborators of a Service.
type Dependencies struct {
	Source     Source
	Codec      Codec
	Oracle     Oracle
	Builder    Builder
	Wallet     Wallet
	Tracker    Tracker
	Maintainer Maintainer
	Journal    Journal
	Metrics    Metrics
}

// NewService constructs a Service.
func NewService(deps Dependencies, cfg Config, logger *zap.Logger) *Service {
	logger = logger.Named("relayer").With(zap.String("network", cfg.Network))
	return &Service{
		source:     deps.Source,
		codec:      deps.Codec,
		oracle:     deps.Oracle,
		builder:    deps.Builder,
		wallet:     deps.Wallet,
		tracker:    deps.Tracker,
		maintainer: deps.Maintainer,
		journal:    deps.Journal,
		metrics:    deps.Metrics,
		cfg:        cfg,
		logger:     logger,
		backlog:    backlog.New(logger),
	}
}

// CheckNetworks rejects bridging an EVM mainnet to a native test network.
func CheckNetworks(evmMainnet bool, ledger model.LedgerNetwork) error {
	if evmMainnet && ledger != model.LedgerMainnet {
		return &FatalError{Err: fmt.Errorf("%w: native network is %s", ErrLedgerNetworkMismatch, ledger)}
	}
	return nil
}

// Run relays unwraps until ctx is canceled or a fatal error occurs.
func (s *Service) Run(ctx context.Context) error {
	balance, err := s.wallet.Balance(ctx)
	if err != nil {
		return fmt.Errorf("read initial balance: %w", err)
	}
	if balance.Unlocked < s.cfg.MinBalance {
		return &FatalError{Err: fmt.Errorf("%w: %d < %d", ErrInsufficientBalance, balance.Unlocked, s.cfg.MinBalance)}
	}
	s.logger.Info("relayer starting",
		zap.Uint64("balance", balance.Unlocked),
		zap.Uint64("checkpoint", s.tracker.Checkpoint()),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 3)
	for _, run := range []func(context.Context) error{s.source.Run, s.tracker.Run, s.maintainer.Run} {
		go func(run func(context.Context) error) {
			errc <- run(ctx)
		}(run)
	}
	s.maintainer.Trigger()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errc:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err == nil {
				err = errors.New("component stopped unexpectedly")
			}
			return classify(err)
		case n := <-s.source.Notifications():
			if err := s.handle(ctx, n); err != nil {
				return classify(err)
			}
		case entry := <-s.tracker.Retries():
			s.backlog.Push(entry)
			s.metrics.SetBacklog(s.backlog.Len(), s.backlog.Value())
		}
	}
}

func (s *Service) handle(ctx context.Context, n evm.Notification) error {
	switch n.Kind {
	case evm.NewBlock:
		return s.onBlock(ctx, n.BlockNumber)
	case evm.NewUnwrap:
		return s.onUnwrap(ctx, n.Event, n.Replayed)
	default:
		return nil
	}
}

func (s *Service) onUnwrap(ctx context.Context, e model.UnwrapEvent, replayed bool) error {
	entry, err := s.codec.Entry(e)
	if err != nil {
		s.logger.Error("cannot derive unwrap digest", zap.String("event", e.Key()), zap.Error(err))
		return nil
	}
	if e.Value < s.cfg.MinUnwrappable {
		s.stage(model.StageIgnored, entry, zap.Uint64("min_unwrappable", s.cfg.MinUnwrappable))
		return nil
	}
	if s.tracker.Outstanding(entry.Digest) {
		s.logger.Debug("unwrap already outstanding", zap.String("event", e.Key()), zap.String("digest", entry.Digest.Hex()))
		return nil
	}

	s.stage(model.StageObserved, entry, zap.Bool("replayed", replayed))
	vt, err := s.oracle.FindSettlement(ctx, entry)
	switch {
	case err != nil:
		// settlement is checked again before paying
		s.logger.Warn("settlement lookup failed", zap.String("event", e.Key()), zap.Error(err))
	case vt != nil:
		s.stage(model.StageSettledElsewhere, entry, zap.String("tx", vt.Hash))
		return s.tracker.Settle(entry)
	}

	s.tracker.Observe(entry)
	s.backlog.Push(entry)
	s.metrics.SetBacklog(s.backlog.Len(), s.backlog.Value())
	return nil
}

func (s *Service) onBlock(ctx context.Context, block uint64) error {
	s.metrics.SetBlock(block)
	s.logger.Debug("evm block",
		zap.Uint64("block", block),
		zap.Int("backlog", s.backlog.Len()),
		zap.Int("in_flight", s.tracker.InFlight()),
	)
	if s.cfg.LiquidityInterval > 0 && block%s.cfg.LiquidityInterval == 0 {
		s.maintainer.Trigger()
	}
	if s.backlog.Len() == 0 {
		return nil
	}
	if s.maintainer.Busy() {
		s.logger.Info("flush deferred while splitting outputs", zap.Int("backlog", s.backlog.Len()))
		return nil
	}

	res, err := s.backlog.Flush(ctx, s.wallet.Spendable, s.pay)
	s.metrics.SetBacklog(s.backlog.Len(), s.backlog.Value())
	if s.fatal != nil {
		return s.fatal
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn("backlog flush interrupted", zap.Error(err))
		return nil
	}
	switch {
	case res.Shortfall():
		s.logger.Warn("insufficient funds for pending unwraps",
			zap.Int("pending", res.Pending),
			zap.Uint64("required", res.Required),
			zap.Uint64("available", res.Available),
		)
	case res.Pending > 0:
		s.logger.Info("awaiting spendable outputs", zap.Int("pending", res.Pending))
	}
	return nil
}

func (s *Service) pay(ctx context.Context, entry model.PendingEntry) error {
	vt, err := s.oracle.FindSettlement(ctx, entry)
	if err != nil {
		return fmt.Errorf("check settlement: %w", err)
	}
	if vt != nil {
		s.stage(model.StageSettledElsewhere, entry, zap.String("tx", vt.Hash))
		if err := s.tracker.Settle(entry); err != nil {
			s.fatal = err
		}
		return payment.ErrAlreadySettled
	}

	candidate, err := s.builder.Build(ctx, entry)
	if err != nil {
		return err
	}
	s.stage(model.StagePaying, entry, zap.Uint64("amount", candidate.Amount), zap.Uint64("fee", candidate.Fee))
	receipt, err := s.wallet.Send(ctx, candidate.Recipients, candidate.Fee)
	s.metrics.ObservePayment(err)
	if err != nil {
		return fmt.Errorf("send payment: %w", err)
	}
	s.tracker.Submit(entry, receipt, candidate.Amount)
	s.wallet.Confirm(ctx, receipt.Hash, s.cfg.Confirmations, s.tracker.Notify)
	return nil
}

func (s *Service) stage(stage model.Stage, entry model.PendingEntry, fields ...zap.Field) {
	s.metrics.ObserveStage(stage)
	s.journal.Record(model.NewJournalEntry(s.cfg.Network, stage, entry))

	fields = append([]zap.Field{
		zap.String("stage", string(stage)),
		zap.Uint64("block", entry.Event.BlockNumber),
		zap.Uint64("nonce", entry.Event.Nonce),
		zap.String("from", entry.Event.From.Hex()),
		zap.String("to", entry.Event.To),
		zap.Uint64("value", entry.Event.Value),
		zap.String("digest", entry.Digest.Hex()),
		zap.String("tag", entry.TagAddress),
	}, fields...)
	s.logger.Info("unwrap "+string(stage), fields...)
}
