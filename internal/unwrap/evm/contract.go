package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
	"github.com/goodnatureofminers/wit-unwrapper/pkg/safe"
)

const wrappedWitABI = `[
	{"type":"event","name":"Unwrapped","anonymous":false,"inputs":[
		{"name":"from","type":"address","indexed":true},
		{"name":"to","type":"string","indexed":false},
		{"name":"value","type":"uint256","indexed":false},
		{"name":"nonce","type":"uint256","indexed":false}
	]},
	{"type":"event","name":"NewCustodianUnwrapper","anonymous":false,"inputs":[
		{"name":"witCustodianUnwrapper","type":"string","indexed":false}
	]},
	{"type":"function","name":"witCustodianUnwrapper","stateMutability":"view","inputs":[],"outputs":[
		{"name":"","type":"string"}
	]}
]`

const (
	eventUnwrapped    = "Unwrapped"
	eventNewUnwrapper = "NewCustodianUnwrapper"
	methodUnwrapper   = "witCustodianUnwrapper"
)

// ErrUnknownLog is returned for logs that are not emitted by the wrapped token events.
var ErrUnknownLog = errors.New("unknown contract log")

// Contract decodes the wrapped token contract events and calls.
type Contract struct {
	address     common.Address
	abi         abi.ABI
	unwrappedID common.Hash
	unwrapperID common.Hash
}

// NewContract binds the wrapped token ABI to address.
func NewContract(address common.Address) (*Contract, error) {
	parsed, err := abi.JSON(strings.NewReader(wrappedWitABI))
	if err != nil {
		return nil, fmt.Errorf("parse contract abi: %w", err)
	}
	return &Contract{
		address:     address,
		abi:         parsed,
		unwrappedID: parsed.Events[eventUnwrapped].ID,
		unwrapperID: parsed.Events[eventNewUnwrapper].ID,
	}, nil
}

// Address returns the contract address.
func (c *Contract) Address() common.Address {
	return c.address
}

// LiveQuery selects both contract events.
func (c *Contract) LiveQuery() ethereum.FilterQuery {
	return ethereum.FilterQuery{
		Addresses: []common.Address{c.address},
		Topics:    [][]common.Hash{{c.unwrappedID, c.unwrapperID}},
	}
}

// UnwrapQuery selects Unwrapped events in the inclusive block range.
func (c *Contract) UnwrapQuery(from, to uint64) ethereum.FilterQuery {
	return ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{c.address},
		Topics:    [][]common.Hash{{c.unwrappedID}},
	}
}

// IsUnwrap reports whether lg is an Unwrapped event.
func (c *Contract) IsUnwrap(lg types.Log) bool {
	return len(lg.Topics) > 0 && lg.Topics[0] == c.unwrappedID
}

// IsUnwrapperChange reports whether lg is a NewCustodianUnwrapper event.
func (c *Contract) IsUnwrapperChange(lg types.Log) bool {
	return len(lg.Topics) > 0 && lg.Topics[0] == c.unwrapperID
}

// ParseUnwrap decodes an Unwrapped log.
func (c *Contract) ParseUnwrap(lg types.Log) (model.UnwrapEvent, error) {
	if !c.IsUnwrap(lg) {
		return model.UnwrapEvent{}, ErrUnknownLog
	}
	if len(lg.Topics) != 2 {
		return model.UnwrapEvent{}, fmt.Errorf("unwrapped log carries %d topics", len(lg.Topics))
	}
	var body struct {
		To    string
		Value *big.Int
		Nonce *big.Int
	}
	if err := c.abi.UnpackIntoInterface(&body, eventUnwrapped, lg.Data); err != nil {
		return model.UnwrapEvent{}, fmt.Errorf("unpack unwrapped log: %w", err)
	}
	value, err := safe.BigUint64(body.Value)
	if err != nil {
		return model.UnwrapEvent{}, fmt.Errorf("unwrapped value: %w", err)
	}
	nonce, err := safe.BigUint64(body.Nonce)
	if err != nil {
		return model.UnwrapEvent{}, fmt.Errorf("unwrapped nonce: %w", err)
	}
	return model.UnwrapEvent{
		BlockNumber: lg.BlockNumber,
		Nonce:       nonce,
		From:        common.BytesToAddress(lg.Topics[1].Bytes()),
		To:          body.To,
		Value:       value,
		Log:         model.LogRef{TxHash: lg.TxHash, Index: lg.Index},
	}, nil
}

// ParseUnwrapperChange decodes a NewCustodianUnwrapper log.
func (c *Contract) ParseUnwrapperChange(lg types.Log) (string, error) {
	if !c.IsUnwrapperChange(lg) {
		return "", ErrUnknownLog
	}
	values, err := c.abi.Unpack(eventNewUnwrapper, lg.Data)
	if err != nil {
		return "", fmt.Errorf("unpack unwrapper change: %w", err)
	}
	return unpackString(values)
}

// Unwrapper reads the currently registered custodian unwrapper address.
func (c *Contract) Unwrapper(ctx context.Context, client Client) (string, error) {
	input, err := c.abi.Pack(methodUnwrapper)
	if err != nil {
		return "", fmt.Errorf("pack %s: %w", methodUnwrapper, err)
	}
	to := c.address
	out, err := client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: input}, nil)
	if err != nil {
		return "", fmt.Errorf("call %s: %w", methodUnwrapper, err)
	}
	values, err := c.abi.Unpack(methodUnwrapper, out)
	if err != nil {
		return "", fmt.Errorf("unpack %s: %w", methodUnwrapper, err)
	}
	return unpackString(values)
}

func unpackString(values []any) (string, error) {
	if len(values) != 1 {
		return "", fmt.Errorf("expected one value, got %d", len(values))
	}
	s, ok := values[0].(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", values[0])
	}
	return s, nil
}
