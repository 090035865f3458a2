package model

// TxStatus is the lifecycle status of a submitted native transaction.
type TxStatus string

var (
	TxSubmitted TxStatus = "submitted"
	TxRelayed   TxStatus = "relayed"
	TxConfirmed TxStatus = "confirmed"
	TxFinalized TxStatus = "finalized"
	TxFailed    TxStatus = "failed"
)

// Terminal reports whether no further status change is expected.
func (s TxStatus) Terminal() bool {
	return s == TxFinalized || s == TxFailed
}

// StatusUpdate is a status change reported by the native ledger client.
type StatusUpdate struct {
	Hash          string
	Status        TxStatus
	Confirmations uint32
	Err           error
}

// InFlightTransaction is a native payment submitted for an unwrap event.
type InFlightTransaction struct {
	Hash          string
	Event         UnwrapEvent
	Digest        Digest
	TagAddress    string
	Amount        uint64
	Fee           uint64
	Status        TxStatus
	Confirmations uint32
}

// Entry rebuilds the pending entry the transaction was paying.
func (t InFlightTransaction) Entry() PendingEntry {
	return PendingEntry{Event: t.Event, Digest: t.Digest, TagAddress: t.TagAddress}
}
