package domain

import "time"

// EventType is the kind of chargeable event a ledger entry records.
type EventType string

const (
	EventImpression EventType = "impression"
	EventClick      EventType = "click"
	EventConversion EventType = "conversion"
)

// Valid reports whether the event type is one of the known chargeable kinds.
func (e EventType) Valid() bool {
	switch e {
	case EventImpression, EventClick, EventConversion:
		return true
	}
	return false
}

// LedgerEntry is an append-only record of a committed debit. Entries are the
// source of truth for advertiser balances and campaign spend; the mutable
// counters on advertisers and campaigns are materialized views updated in the
// same transaction that inserts the entry. Entries are never mutated or
// deleted.
type LedgerEntry struct {
	ID           int64
	AdvertiserID int64
	CampaignID   int64
	EventType    EventType
	Amount       int64
	BalanceAfter int64

	// IdempotencyKey is derived from the upstream event id. At most one entry
	// exists per (idempotency key, event type) pair.
	IdempotencyKey string

	CreatedAt time.Time
}

// BudgetStatus summarizes a campaign's remaining budget for dashboards.
type BudgetStatus struct {
	DailyRemaining int64
	TotalRemaining int64
	WithinBudget   bool
}
