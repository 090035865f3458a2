package evm

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ObservedClient records metrics for every call made through an ethclient.Client.
type ObservedClient struct {
	client     *ethclient.Client
	rpcMetrics RPCMetrics
}

// NewObservedClient wraps client with rpcMetrics.
func NewObservedClient(client *ethclient.Client, rpcMetrics RPCMetrics) *ObservedClient {
	return &ObservedClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

func (c *ObservedClient) ChainID(ctx context.Context) (id *big.Int, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("chain_id", err, started)
	}()
	return c.client.ChainID(ctx)
}

func (c *ObservedClient) BlockNumber(ctx context.Context) (n uint64, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("block_number", err, started)
	}()
	return c.client.BlockNumber(ctx)
}

func (c *ObservedClient) FilterLogs(ctx context.Context, q ethereum.FilterQuery) (logs []types.Log, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("filter_logs", err, started)
	}()
	return c.client.FilterLogs(ctx, q)
}

func (c *ObservedClient) SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (sub ethereum.Subscription, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("subscribe_filter_logs", err, started)
	}()
	return c.client.SubscribeFilterLogs(ctx, q, ch)
}

func (c *ObservedClient) SubscribeNewHead(ctx context.Context, ch chan<- *types.Header) (sub ethereum.Subscription, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("subscribe_new_head", err, started)
	}()
	return c.client.SubscribeNewHead(ctx, ch)
}

func (c *ObservedClient) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) (out []byte, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("call_contract", err, started)
	}()
	return c.client.CallContract(ctx, msg, blockNumber)
}

func (c *ObservedClient) Close() {
	c.client.Close()
}

// WebsocketDialer dials an observed websocket client.
type WebsocketDialer struct {
	endpoint   string
	rpcMetrics RPCMetrics
}

// NewWebsocketDialer returns a dialer for endpoint.
func NewWebsocketDialer(endpoint string, rpcMetrics RPCMetrics) (*WebsocketDialer, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, errors.New("evm endpoint required")
	}
	return &WebsocketDialer{endpoint: trimmed, rpcMetrics: rpcMetrics}, nil
}

// Dial opens a new session.
func (d *WebsocketDialer) Dial(ctx context.Context) (client Client, err error) {
	started := time.Now()
	defer func() {
		d.rpcMetrics.Observe("dial", err, started)
	}()
	ec, err := ethclient.DialContext(ctx, d.endpoint)
	if err != nil {
		return nil, err
	}
	return NewObservedClient(ec, d.rpcMetrics), nil
}
