// Package model defines domain models shared by the unwrap relayer components.
package model

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// DigestLength is the number of leading keccak-256 bytes kept in an EventDigest.
const DigestLength = 20

// LogRef points at the EVM log an event was decoded from.
type LogRef struct {
	TxHash common.Hash
	Index  uint
}

// UnwrapEvent is an Unwrapped log emitted by the wrapped token contract.
type UnwrapEvent struct {
	BlockNumber uint64
	Nonce       uint64
	From        common.Address
	To          string
	Value       uint64
	Log         LogRef
}

// Key returns a human readable identity of the event, used in logs.
func (e UnwrapEvent) Key() string {
	return fmt.Sprintf("%d/%d/%s", e.BlockNumber, e.Nonce, e.From.Hex())
}

// Digest is the cross-ledger correlation key of an unwrap event.
type Digest [DigestLength]byte

// Hex returns the 0x-prefixed hex encoding of the digest.
func (d Digest) Hex() string {
	return "0x" + hex.EncodeToString(d[:])
}

// String implements fmt.Stringer.
func (d Digest) String() string {
	return d.Hex()
}

// PendingEntry is an unwrap event waiting in the backlog to be paid.
type PendingEntry struct {
	Event      UnwrapEvent
	Digest     Digest
	TagAddress string
}
