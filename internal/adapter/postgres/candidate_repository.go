package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vertoad/internal/core/domain"
	"vertoad/internal/core/port"
)

// CandidateRepository implements port.CandidateStore using pgxpool. The SQL
// applies the status, date-range and budget filters; the set-valued
// targeting predicate lives in a JSONB column and is evaluated in Go after
// scanning. Read-only.
type CandidateRepository struct {
	pool *pgxpool.Pool
}

// NewCandidateRepository returns a new repository instance.
func NewCandidateRepository(pool *pgxpool.Pool) *CandidateRepository {
	return &CandidateRepository{pool: pool}
}

// FetchCandidates returns the eligible candidate snapshots for one slot-fill
// request. A campaign's spent_today counter belongs to spend_date; on a later
// UTC day it reads as zero, so pacing never sees yesterday's spend. An empty
// result is a normal no-fill outcome, not an error.
func (r *CandidateRepository) FetchCandidates(ctx context.Context, slotID string, slot domain.SlotContext) ([]domain.Candidate, error) {
	query := `
        SELECT
            a.id,
            a.campaign_id,
            c.advertiser_id,
            c.bid_amount,
            c.daily_budget,
            CASE WHEN c.spend_date = (now() AT TIME ZONE 'utc')::date
                 THEN c.spent_today ELSE 0 END AS spent_today,
            c.lifetime_budget,
            c.lifetime_spent,
            a.impressions,
            a.viewable_impressions,
            a.clicks,
            a.conversions,
            a.targeting,
            a.content_ref
        FROM ads a
        JOIN campaigns c ON a.campaign_id = c.id
        WHERE c.status = 'active'
          AND now() BETWEEN c.start_date AND c.end_date
          AND c.daily_budget - CASE WHEN c.spend_date = (now() AT TIME ZONE 'utc')::date
                                    THEN c.spent_today ELSE 0 END > 0
          AND c.lifetime_budget - c.lifetime_spent > 0`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}

	type rawCandidate struct {
		Cand         domain.Candidate
		TargetingRaw []byte
	}
	raw, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (rawCandidate, error) {
		var rc rawCandidate
		err := row.Scan(
			&rc.Cand.ID,
			&rc.Cand.CampaignID,
			&rc.Cand.AdvertiserID,
			&rc.Cand.BidAmount,
			&rc.Cand.DailyBudget,
			&rc.Cand.SpentToday,
			&rc.Cand.LifetimeBudget,
			&rc.Cand.LifetimeSpent,
			&rc.Cand.Impressions,
			&rc.Cand.ViewableImpressions,
			&rc.Cand.Clicks,
			&rc.Cand.Conversions,
			&rc.TargetingRaw,
			&rc.Cand.ContentRef,
		)
		return rc, err
	})
	if err != nil {
		return nil, mapError(err)
	}

	candidates := make([]domain.Candidate, 0, len(raw))
	for _, rc := range raw {
		if len(rc.TargetingRaw) > 0 {
			if err = json.Unmarshal(rc.TargetingRaw, &rc.Cand.Targeting); err != nil {
				// malformed targeting row: treat as fully untargeted rather
				// than failing the whole auction over one bad row
				rc.Cand.Targeting = domain.Targeting{}
			}
		}
		if !rc.Cand.Targeting.Matches(slotID, slot) {
			continue
		}
		candidates = append(candidates, rc.Cand)
	}
	return candidates, nil
}

var _ port.CandidateStore = (*CandidateRepository)(nil)
