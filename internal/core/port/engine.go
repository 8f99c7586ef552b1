package port

import (
	"context"

	"vertoad/internal/core/domain"
)

// AdEngine defines the business operations exposed by the auction core. This
// interface is the primary port into the application domain. Mock
// implementations can be generated from this interface for testing.
type AdEngine interface {
	// SelectAd runs the full auction path for a slot: candidate fetch,
	// scoring, pacing and the priced auction. It returns nil when no
	// candidate can fill the slot; that is a normal outcome, not an error.
	// The auction path is read-only, so SelectAd never mutates budgets.
	SelectAd(ctx context.Context, slotID string, slot domain.SlotContext) (*AdDecision, error)

	// Charge debits the advertiser balance and campaign budget for one
	// chargeable event, exactly once per idempotency key and event type.
	// Retries with the same key return the original result with
	// Replayed set.
	Charge(ctx context.Context, req ChargeReq) (*ChargeResult, error)

	// GetBudgetStatus reports a campaign's remaining daily and lifetime
	// budget for dashboards.
	GetBudgetStatus(ctx context.Context, campaignID int64) (*domain.BudgetStatus, error)

	// GetStats aggregates committed ledger entries over a period, optionally
	// scoped to one campaign.
	GetStats(ctx context.Context, req StatsReq) (*StatsResp, error)
}

// AdDecision is the DTO returned to the delivery layer for a won auction. It
// carries everything the caller needs to serve the ad and later report
// chargeable events: the auction result, the ids to charge against, the
// opaque content reference and a freshly minted impression token whose value
// becomes the event id for tracking calls.
type AdDecision struct {
	Result       domain.AuctionResult
	CampaignID   int64
	AdvertiserID int64
	ContentRef   string
	Token        string
}
