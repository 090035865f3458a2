package model

// LedgerNetwork identifies a native ledger network.
type LedgerNetwork string

var (
	LedgerMainnet LedgerNetwork = "mainnet"
	LedgerTestnet LedgerNetwork = "testnet"
)

// FeePriority selects the fee tier used when estimating native transaction fees.
type FeePriority string

var (
	PriorityStinky  FeePriority = "stinky"
	PriorityLow     FeePriority = "low"
	PriorityMedium  FeePriority = "medium"
	PriorityHigh    FeePriority = "high"
	PriorityOpulent FeePriority = "opulent"
)

// Valid reports whether p is a known fee tier.
func (p FeePriority) Valid() bool {
	switch p {
	case PriorityStinky, PriorityLow, PriorityMedium, PriorityHigh, PriorityOpulent:
		return true
	default:
		return false
	}
}

// Utxo is an unspent output owned by a native ledger address.
type Utxo struct {
	OutputPointer string
	Value         uint64
	Timelock      int64
	Mature        bool
}

// Balance is the balance report of a native ledger address, in minimal units.
type Balance struct {
	Unlocked uint64
	Locked   uint64
	Staked   uint64
}

// ValueTransfer is the ledger's record of a value transfer transaction.
type ValueTransfer struct {
	Hash      string
	Recipient string
	Value     uint64
	Fee       uint64
	Status    string
	Timestamp int64
}

// Recipient is a single output of an outgoing value transfer.
type Recipient struct {
	Address string
	Value   uint64
}

// Receipt is returned by the ledger after a transaction was accepted for relay.
type Receipt struct {
	Hash  string
	Fee   uint64
	Value uint64
}
