package model

import "time"

// Stage is a lifecycle transition of an unwrap event.
type Stage string

var (
	StageObserved         Stage = "observed"
	StageIgnored          Stage = "ignored"
	StageSettledElsewhere Stage = "settled-elsewhere"
	StagePaying           Stage = "paying"
	StageSubmitted        Stage = "submitted"
	StageConfirming       Stage = "confirming"
	StageFinalized        Stage = "finalized"
	StageFailed           Stage = "failed"
)

// JournalEntry is one row of the unwrap journal.
type JournalEntry struct {
	Network     string
	Stage       Stage
	BlockNumber uint64
	Nonce       uint64
	From        string
	To          string
	Value       uint64
	Digest      string
	TagAddress  string
	TxHash      string
	Amount      uint64
	Fee         uint64
	RecordedAt  time.Time
}

// SplitRecord describes a liquidity split transaction.
type SplitRecord struct {
	Network       string
	TxHash        string
	Outputs       uint32
	OutputValue   uint64
	Fee           uint64
	BalanceBefore uint64
	RecordedAt    time.Time
}

// NewJournalEntry fills the event columns of a journal row.
func NewJournalEntry(network string, stage Stage, entry PendingEntry) JournalEntry {
	return JournalEntry{
		Network:     network,
		Stage:       stage,
		BlockNumber: entry.Event.BlockNumber,
		Nonce:       entry.Event.Nonce,
		From:        entry.Event.From.Hex(),
		To:          entry.Event.To,
		Value:       entry.Event.Value,
		Digest:      entry.Digest.Hex(),
		TagAddress:  entry.TagAddress,
		RecordedAt:  time.Now().UTC(),
	}
}
