package port

import (
	"context"
	"errors"
	"time"

	"vertoad/internal/core/domain"
)

// Error taxonomy shared by all store implementations. Callers branch on these
// with errors.Is; stores may wrap them with additional context.
var (
	// ErrNotFound means an unknown advertiser, campaign or candidate id.
	// Surfaced to the caller, never retried.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientFunds is a business outcome, not a system fault: the
	// advertiser balance or a campaign budget cannot cover the amount. A
	// debit that would overrun a budget is rejected, never clamped.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDuplicateEvent means a ledger entry for the (idempotency key, event
	// type) pair already exists. Stores normally resolve duplicates into a
	// replayed success; this sentinel surfaces only when the original entry
	// cannot be read back.
	ErrDuplicateEvent = errors.New("duplicate event")

	// ErrUnavailable means the persistence layer timed out or hit a
	// serialization conflict. The whole auction-or-charge operation is safe
	// to retry from scratch; stale auction results must not be reused.
	ErrUnavailable = errors.New("store unavailable")

	// ErrInvalidInput means a malformed context, amount or key, rejected
	// before touching the store.
	ErrInvalidInput = errors.New("invalid input")
)

// CandidateStore is the outbound port for the filtered candidate read. It
// returns candidates that are active, within their date range, have budget
// remaining and whose targeting predicate is satisfied by the context. An
// empty slice with a nil error is the normal no-fill outcome. Read-only.
type CandidateStore interface {
	FetchCandidates(ctx context.Context, slotID string, slot domain.SlotContext) ([]domain.Candidate, error)
}

// ChargeReq describes one chargeable event to debit.
type ChargeReq struct {
	AdvertiserID int64
	CampaignID   int64

	// AdID, when non-zero, identifies the served ad so its performance
	// counters advance in the same transaction as the debit.
	AdID int64

	EventType domain.EventType
	Amount    int64

	// IdempotencyKey derives from the upstream event id; retries with the
	// same key replay the original result instead of debiting again.
	IdempotencyKey string
}

// ChargeResult is the committed (or replayed) outcome of a charge.
type ChargeResult struct {
	NewBalance int64
	Entry      domain.LedgerEntry

	// Replayed is true when an earlier charge with the same idempotency key
	// already committed and no new debit was made.
	Replayed bool
}

// StatsReq selects the period (and optionally the campaign) to aggregate
// ledger entries over.
type StatsReq struct {
	From       time.Time
	To         time.Time
	CampaignID *int64
}

// StatsResp aggregates committed ledger entries: event counts per type and
// the total amount debited, in integer minor units.
type StatsResp struct {
	Impressions int64
	Clicks      int64
	Conversions int64
	Spend       int64
}

// LedgerStore is the outbound port for the billing ledger. Implementations
// must execute Charge as one atomic unit (balance read, sufficiency checks,
// balance write, spend-counter increments and entry insert) and must
// serialize charges against the same campaign. Concurrency-safe.
type LedgerStore interface {
	Charge(ctx context.Context, req ChargeReq) (*ChargeResult, error)
	GetBudgetStatus(ctx context.Context, campaignID int64) (*domain.BudgetStatus, error)
	GetStats(ctx context.Context, req StatsReq) (*StatsResp, error)
}
