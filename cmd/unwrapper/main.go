package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/wit-unwrapper/internal/metrics"
	"github.com/goodnatureofminers/wit-unwrapper/internal/transport"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/checkpoint"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/digest"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/evm"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/journal"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/liquidity"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/network"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/oracle"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/payment"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/relayer"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/repository/clickhouse"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/tracker"
	"github.com/goodnatureofminers/wit-unwrapper/internal/witnet"
	"github.com/goodnatureofminers/wit-unwrapper/pkg/batcher"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type config struct {
	EthNetwork           string        `long:"eth-network" env:"WRAPPED_WIT_UNWRAPPER_ETH_NETWORK" description:"EVM network the wrapped token lives on" required:"true"`
	EthContract          string        `long:"eth-contract" env:"WRAPPED_WIT_UNWRAPPER_ETH_CONTRACT" description:"wrapped token contract address" required:"true"`
	EthWSSProvider       string        `long:"eth-wss-provider" env:"WRAPPED_WIT_UNWRAPPER_ETH_WSS_PROVIDER" description:"EVM websocket endpoint" required:"true"`
	EthReconnectInterval time.Duration `long:"eth-reconnect-interval" env:"WRAPPED_WIT_UNWRAPPER_ETH_RECONNECT_INTERVAL" description:"delay before reconnecting to the EVM endpoint" default:"5s"`
	EthSkipBlocks        uint64        `long:"eth-skip-blocks" env:"WRAPPED_WIT_UNWRAPPER_ETH_SKIP_BLOCKS" description:"first EVM block to replay without a checkpoint" default:"1"`
	EthLogChunk          uint64        `long:"eth-log-chunk" env:"WRAPPED_WIT_UNWRAPPER_ETH_LOG_CHUNK" description:"blocks per historical log query" default:"10000"`
	StoragePath          string        `long:"storage-path" env:"WRAPPED_WIT_UNWRAPPER_STORAGE_PATH" description:"checkpoint file" default:".unwrapper"`

	WitRPCProvider      string        `long:"wit-rpc-provider" env:"WRAPPED_WIT_UNWRAPPER_WIT_RPC_PROVIDER" description:"native ledger node JSON-RPC endpoint" required:"true"`
	WitSignerPKH        string        `long:"wit-signer-pkh" env:"WRAPPED_WIT_UNWRAPPER_WIT_SIGNER_PKH" description:"expected hot wallet address of the node"`
	WitMinBalance       uint64        `long:"wit-min-balance" env:"WRAPPED_WIT_UNWRAPPER_WIT_MIN_BALANCE" description:"minimum operating balance in nanowits" default:"1000000000000"`
	WitMinUtxos         int           `long:"wit-min-utxos" env:"WRAPPED_WIT_UNWRAPPER_WIT_MIN_UTXOS" description:"minimum number of spendable outputs" default:"16"`
	WitSplitUtxos       int           `long:"wit-split-utxos" env:"WRAPPED_WIT_UNWRAPPER_WIT_SPLIT_UTXOS" description:"outputs per split, 0 for twice the minimum up to 50" default:"0"`
	WitSplitFee         uint64        `long:"wit-split-fee" env:"WRAPPED_WIT_UNWRAPPER_WIT_SPLIT_FEE" description:"base fee of split transactions" default:"10000"`
	WitVTTConfirmations uint32        `long:"wit-vtt-confirmations" env:"WRAPPED_WIT_UNWRAPPER_WIT_VTT_CONFIRMATIONS" description:"epochs before a payment is final" default:"3"`
	WitVTTPriority      string        `long:"wit-vtt-priority" env:"WRAPPED_WIT_UNWRAPPER_WIT_VTT_PRIORITY" description:"fee priority tier" default:"opulent" choice:"stinky" choice:"low" choice:"medium" choice:"high" choice:"opulent"`
	WitUtxosStrategy    string        `long:"wit-utxos-strategy" env:"WRAPPED_WIT_UNWRAPPER_WIT_UTXOS_STRATEGY" description:"input selection strategy" default:"slim-fit"`
	WitMinUnwrappable   uint64        `long:"wit-min-unwrappable" env:"WRAPPED_WIT_UNWRAPPER_WIT_MIN_UNWRAPPABLE" description:"smallest unwrap paid, in nanowits" default:"1000000000"`
	WitFeeTolerance     uint64        `long:"wit-fee-tolerance" env:"WRAPPED_WIT_UNWRAPPER_WIT_FEE_TOLERANCE" description:"nanowits a settlement may fall short" default:"0"`
	WitPollInterval     time.Duration `long:"wit-poll-interval" env:"WRAPPED_WIT_UNWRAPPER_WIT_POLL_INTERVAL" description:"transaction status poll interval" default:"10s"`

	DigestWithChainID bool   `long:"digest-with-chain-id" env:"WRAPPED_WIT_UNWRAPPER_DIGEST_WITH_CHAIN_ID" description:"bind event digests to the EVM chain id"`
	LiquidityInterval uint64 `long:"liquidity-interval" env:"WRAPPED_WIT_UNWRAPPER_LIQUIDITY_INTERVAL" description:"blocks between liquidity checks" default:"10"`
	ClickhouseDSN     string `long:"clickhouse-dsn" env:"WRAPPED_WIT_UNWRAPPER_CLICKHOUSE_DSN" description:"ClickHouse DSN of the unwrap journal"`
	MetricsAddr       string `long:"metrics-addr" env:"WRAPPED_WIT_UNWRAPPER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	StatusAddr        string `long:"status-addr" env:"WRAPPED_WIT_UNWRAPPER_STATUS_ADDR" description:"gRPC status address" default:":8000"`
	StatusRestAddr    string `long:"status-rest-addr" env:"WRAPPED_WIT_UNWRAPPER_STATUS_REST_ADDR" description:"REST status address" default:":8001"`
	DevLog            bool   `long:"dev-log" env:"WRAPPED_WIT_UNWRAPPER_DEV_LOG" description:"human readable logs"`
}

// journalSink receives lifecycle and split rows.
type journalSink interface {
	Record(entry model.JournalEntry)
	RecordSplit(record model.SplitRecord)
}

func main() {
	cfg := config{}
	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.DevLog)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("unwrapper stopped", zap.Bool("fatal", relayer.IsFatal(err)), zap.Error(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	evmNet, err := network.Canonical(cfg.EthNetwork)
	if err != nil {
		return &relayer.FatalError{Err: err}
	}
	if !common.IsHexAddress(cfg.EthContract) {
		return fmt.Errorf("invalid contract address %q", cfg.EthContract)
	}
	contract, err := evm.NewContract(common.HexToAddress(cfg.EthContract))
	if err != nil {
		return err
	}
	logger = logger.With(zap.String("network", evmNet.Name))

	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	rpcClient, err := witnet.Dial(ctx, cfg.WitRPCProvider)
	if err != nil {
		return fmt.Errorf("dial native ledger node: %w", err)
	}
	defer rpcClient.Close()
	node := witnet.NewClient(rpcClient, metrics.NewRPCClient(metrics.LedgerWitnet, evmNet.Name))

	wallet, err := witnet.NewNodeWallet(ctx, node, witnet.WalletConfig{
		SignerPKH:    cfg.WitSignerPKH,
		UtxoStrategy: cfg.WitUtxosStrategy,
		PollInterval: cfg.WitPollInterval,
	}, logger)
	if err != nil {
		return &relayer.FatalError{Err: err}
	}
	if err := relayer.CheckNetworks(evmNet.Mainnet, wallet.Network()); err != nil {
		return err
	}
	codec, err := digest.NewCodec(evmNet.ChainID, cfg.DigestWithChainID, wallet.Network())
	if err != nil {
		return err
	}
	builder, err := payment.NewBuilder(wallet, model.FeePriority(cfg.WitVTTPriority))
	if err != nil {
		return err
	}

	store := checkpoint.NewFileStore(cfg.StoragePath, logger)
	if err := store.Writable(); err != nil {
		return &relayer.FatalError{Err: fmt.Errorf("%w: %w", relayer.ErrCheckpointStorage, err)}
	}
	if block, ok := store.Load(); ok {
		logger.Info("checkpoint loaded", zap.Uint64("block", block))
	} else {
		logger.Info("no checkpoint, replaying from skip offset", zap.Uint64("from", cfg.EthSkipBlocks))
	}

	sink, closeJournal, err := newJournal(ctx, cfg, evmNet.Name, store.Saved(), logger)
	if err != nil {
		return err
	}
	defer closeJournal()

	healthServer := health.NewServer()
	reporter := transport.NewHealthReporter(healthServer, logger)
	defer reporter.Shutdown()
	startStatusServers(ctx, cfg, healthServer, logger)

	dialer, err := evm.NewWebsocketDialer(cfg.EthWSSProvider, metrics.NewRPCClient(metrics.LedgerEVM, evmNet.Name))
	if err != nil {
		return err
	}
	sourceMetrics := metrics.NewEventSource(evmNet.Name)
	source := evm.NewSource(dialer, contract, evm.Config{
		ChainID:           evmNet.ChainID,
		Unwrapper:         wallet.PKH(),
		ReconnectInterval: cfg.EthReconnectInterval,
		LogChunk:          cfg.EthLogChunk,
	}, func() uint64 {
		return store.Resume(cfg.EthSkipBlocks)
	}, evm.Observers{reporter, sourceMetrics}, sourceMetrics, logger)

	svc := relayer.NewService(relayer.Dependencies{
		Source:  source,
		Codec:   codec,
		Oracle:  oracle.New(node, cfg.WitFeeTolerance, logger),
		Builder: builder,
		Wallet:  wallet,
		Tracker: tracker.New(store, store.Saved(), sink, metrics.NewTracker(evmNet.Name), evmNet.Name, logger),
		Maintainer: liquidity.New(wallet, sink, metrics.NewLiquidity(evmNet.Name), liquidity.Config{
			MinBalance:    cfg.WitMinBalance,
			MinUtxos:      cfg.WitMinUtxos,
			Splits:        cfg.WitSplitUtxos,
			Fee:           cfg.WitSplitFee,
			Confirmations: cfg.WitVTTConfirmations,
			Network:       evmNet.Name,
		}, logger),
		Journal: sink,
		Metrics: metrics.NewRelayer(evmNet.Name),
	}, relayer.Config{
		Network:           evmNet.Name,
		MinBalance:        cfg.WitMinBalance,
		MinUnwrappable:    cfg.WitMinUnwrappable,
		Confirmations:     cfg.WitVTTConfirmations,
		LiquidityInterval: cfg.LiquidityInterval,
	}, logger)

	logger.Info("unwrapper starting",
		zap.Uint64("chain_id", evmNet.ChainID),
		zap.String("contract", contract.Address().Hex()),
		zap.String("hot_wallet", wallet.PKH()),
		zap.String("ledger", string(wallet.Network())),
	)
	err = svc.Run(ctx)
	if ctx.Err() != nil {
		logger.Info("unwrapper shutting down")
		return nil
	}
	return err
}

func newJournal(ctx context.Context, cfg config, evmNetwork string, saved uint64, logger *zap.Logger) (journalSink, func(), error) {
	if cfg.ClickhouseDSN == "" {
		logger.Info("unwrap journal disabled")
		return journal.Nop{}, func() {}, nil
	}

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return nil, nil, fmt.Errorf("init journal repository: %w", err)
	}
	block, found, err := repo.MaxFinalizedBlock(ctx, evmNetwork)
	switch {
	case err != nil:
		logger.Warn("journal diagnostic failed", zap.Error(err))
	case found && block > saved:
		logger.Warn("journal holds settled unwraps past the checkpoint",
			zap.Uint64("journal_block", block),
			zap.Uint64("checkpoint", saved),
		)
	case found:
		logger.Info("journal diagnostic", zap.Uint64("journal_block", block), zap.Uint64("checkpoint", saved))
	}

	writer := journal.NewWriter(repo, batcher.Config{
		FlushSize:     100,
		FlushInterval: 5 * time.Second,
		RPS:           5,
	}, metrics.NewJournal(evmNetwork), logger)
	writer.Start(ctx)
	return writer, func() {
		writer.Stop()
		if err := repo.Close(); err != nil {
			logger.Warn("close journal repository", zap.Error(err))
		}
	}, nil
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	serveHTTP(ctx, "metrics", addr, mux, logger)
}

func startStatusServers(ctx context.Context, cfg config, healthServer *health.Server, logger *zap.Logger) {
	grpcServer := transport.NewGRPCServer(logger)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	socket, err := net.Listen("tcp", cfg.StatusAddr)
	if err != nil {
		logger.Error("status server disabled", zap.String("addr", cfg.StatusAddr), zap.Error(err))
		return
	}
	go func() {
		logger.Info("starting gRPC status server", zap.String("addr", cfg.StatusAddr))
		if err := grpcServer.Serve(socket); err != nil {
			logger.Error("gRPC status server failed", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()

	conn, err := grpc.NewClient(cfg.StatusAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		logger.Error("REST status server disabled", zap.Error(err))
		return
	}
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()
	serveHTTP(ctx, "status", cfg.StatusRestAddr, transport.NewGateway(conn), logger)
}

func serveHTTP(ctx context.Context, name, addr string, handler http.Handler, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}

	go func() {
		logger.Info("starting http server", zap.String("server", name), zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", zap.String("server", name), zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown http server", zap.String("server", name), zap.Error(err))
		}
	}()
}
