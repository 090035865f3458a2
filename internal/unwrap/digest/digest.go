// Package digest derives the cross-ledger correlation key of unwrap events.
//
// The byte layout mirrors the wrapped token contract's own tagging scheme:
// solidity packed encoding of (uint256 blockNumber, uint256 nonce, address from,
// string to, uint256 value), optionally prefixed by uint256 evmChainId, hashed with
// keccak-256 and truncated to its leading 20 bytes.
package digest

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
	"github.com/goodnatureofminers/wit-unwrapper/internal/witnet"
)

const wordSize = 32

// Compute returns the digest of an unwrap event.
func Compute(chainID uint64, withChainID bool, blockNumber, nonce uint64, from common.Address, to string, value uint64) model.Digest {
	packed := make([]byte, 0, 4*wordSize+common.AddressLength+len(to))
	if withChainID {
		packed = append(packed, word(chainID)...)
	}
	packed = append(packed, word(blockNumber)...)
	packed = append(packed, word(nonce)...)
	packed = append(packed, from.Bytes()...)
	packed = append(packed, []byte(to)...)
	packed = append(packed, word(value)...)

	var d model.Digest
	copy(d[:], crypto.Keccak256(packed)[:model.DigestLength])
	return d
}

// LedgerAddress maps a digest to its one-time metadata address on network.
func LedgerAddress(d model.Digest, network model.LedgerNetwork) (string, error) {
	return witnet.EncodeAddress(d[:], network)
}

func word(v uint64) []byte {
	return common.LeftPadBytes(new(big.Int).SetUint64(v).Bytes(), wordSize)
}

// Codec binds the digest scheme to a deployment.
type Codec struct {
	chainID     uint64
	withChainID bool
	network     model.LedgerNetwork
}

// NewCodec builds a Codec for the given EVM chain and native ledger network.
func NewCodec(chainID uint64, withChainID bool, network model.LedgerNetwork) (*Codec, error) {
	if _, err := witnet.HRP(network); err != nil {
		return nil, err
	}
	return &Codec{chainID: chainID, withChainID: withChainID, network: network}, nil
}

// Digest returns the digest of e.
func (c *Codec) Digest(e model.UnwrapEvent) model.Digest {
	return Compute(c.chainID, c.withChainID, e.BlockNumber, e.Nonce, e.From, e.To, e.Value)
}

// Entry derives the backlog entry of e: its digest and metadata address.
func (c *Codec) Entry(e model.UnwrapEvent) (model.PendingEntry, error) {
	d := c.Digest(e)
	tag, err := LedgerAddress(d, c.network)
	if err != nil {
		return model.PendingEntry{}, fmt.Errorf("derive tag address for %s: %w", e.Key(), err)
	}
	return model.PendingEntry{Event: e, Digest: d, TagAddress: tag}, nil
}
