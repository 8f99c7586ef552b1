package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"vertoad/internal/core/domain"
	"vertoad/internal/core/port"
)

const (
	pgSerializationFailure = "40001"
	pgUniqueViolation      = "23505"
)

// LedgerRepository implements port.LedgerStore using pgxpool. Every charge
// runs in a Serializable transaction that locks the advertiser and campaign
// rows, so concurrent charges against the same campaign cannot race past the
// sufficiency check.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository returns a new repository instance.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// Charge debits the advertiser balance and campaign budget for one
// chargeable event, exactly once per (idempotency key, event type) pair. The
// balance read, sufficiency checks, counter updates and entry insert all
// commit or roll back together. A retry whose key already committed returns
// the original result without debiting again.
func (r *LedgerRepository) Charge(ctx context.Context, req port.ChargeReq) (*port.ChargeResult, error) {
	res, err := r.chargeTx(ctx, req)
	if err == nil {
		return res, nil
	}

	// Lost a race on the unique (idempotency_key, event_type) index: the
	// competing charge committed first, so answer with its entry.
	if errors.Is(err, port.ErrDuplicateEvent) {
		if entry, lookupErr := r.findEntry(ctx, req.IdempotencyKey, req.EventType); lookupErr == nil {
			return &port.ChargeResult{NewBalance: entry.BalanceAfter, Entry: *entry, Replayed: true}, nil
		}
		return nil, err
	}
	return nil, err
}

func (r *LedgerRepository) chargeTx(ctx context.Context, req port.ChargeReq) (result *port.ChargeResult, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, mapError(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = mapError(tx.Commit(ctx))
		}
	}()

	// idempotent replay: an entry for this event already committed
	entry, err := scanEntry(tx.QueryRow(ctx,
		`SELECT id, advertiser_id, campaign_id, event_type, amount, balance_after, idempotency_key, created_at
         FROM ledger_entries WHERE idempotency_key = $1 AND event_type = $2`,
		req.IdempotencyKey, req.EventType))
	if err == nil {
		return &port.ChargeResult{NewBalance: entry.BalanceAfter, Entry: *entry, Replayed: true}, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapError(err)
	}

	// lock advertiser
	var balance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM advertisers WHERE id = $1 FOR UPDATE`, req.AdvertiserID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("advertiser %d: %w", req.AdvertiserID, port.ErrNotFound)
	}
	if err != nil {
		return nil, mapError(err)
	}

	// lock campaign, rolling spent_today over to the current UTC day
	var (
		dailyBudget, spentToday, lifetimeBudget, lifetimeSpent int64
		sameDay                                                bool
	)
	err = tx.QueryRow(ctx,
		`SELECT daily_budget, spent_today, lifetime_budget, lifetime_spent,
                spend_date = (now() AT TIME ZONE 'utc')::date
         FROM campaigns WHERE id = $1 FOR UPDATE`, req.CampaignID).
		Scan(&dailyBudget, &spentToday, &lifetimeBudget, &lifetimeSpent, &sameDay)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("campaign %d: %w", req.CampaignID, port.ErrNotFound)
	}
	if err != nil {
		return nil, mapError(err)
	}
	if !sameDay {
		spentToday = 0
	}

	switch {
	case balance < req.Amount:
		return nil, fmt.Errorf("balance %d < amount %d: %w", balance, req.Amount, port.ErrInsufficientFunds)
	case spentToday+req.Amount > dailyBudget:
		return nil, fmt.Errorf("daily budget exceeded: %w", port.ErrInsufficientFunds)
	case lifetimeSpent+req.Amount > lifetimeBudget:
		return nil, fmt.Errorf("lifetime budget exceeded: %w", port.ErrInsufficientFunds)
	}

	newBalance := balance - req.Amount
	if _, err = tx.Exec(ctx,
		`UPDATE advertisers SET balance = $1, updated_at = now() WHERE id = $2`,
		newBalance, req.AdvertiserID); err != nil {
		return nil, mapError(err)
	}
	if _, err = tx.Exec(ctx,
		`UPDATE campaigns
         SET spent_today = $1, spend_date = (now() AT TIME ZONE 'utc')::date,
             lifetime_spent = lifetime_spent + $2, updated_at = now()
         WHERE id = $3`,
		spentToday+req.Amount, req.Amount, req.CampaignID); err != nil {
		return nil, mapError(err)
	}

	if req.AdID > 0 {
		var counter string
		switch req.EventType {
		case domain.EventImpression:
			counter = "impressions"
		case domain.EventClick:
			counter = "clicks"
		case domain.EventConversion:
			counter = "conversions"
		}
		query := fmt.Sprintf(`UPDATE ads SET %s = %s + 1, updated_at = now() WHERE id = $1`, counter, counter)
		if _, err = tx.Exec(ctx, query, req.AdID); err != nil {
			return nil, mapError(err)
		}
	}

	committed := domain.LedgerEntry{
		AdvertiserID:   req.AdvertiserID,
		CampaignID:     req.CampaignID,
		EventType:      req.EventType,
		Amount:         req.Amount,
		BalanceAfter:   newBalance,
		IdempotencyKey: req.IdempotencyKey,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO ledger_entries (advertiser_id, campaign_id, event_type, amount, balance_after, idempotency_key, created_at)
         VALUES ($1,$2,$3,$4,$5,$6, now()) RETURNING id, created_at`,
		req.AdvertiserID, req.CampaignID, req.EventType, req.Amount, newBalance, req.IdempotencyKey).
		Scan(&committed.ID, &committed.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}

	return &port.ChargeResult{NewBalance: newBalance, Entry: committed}, nil
}

// GetBudgetStatus reports remaining daily and lifetime budget for dashboards.
func (r *LedgerRepository) GetBudgetStatus(ctx context.Context, campaignID int64) (*domain.BudgetStatus, error) {
	var (
		dailyBudget, spentToday, lifetimeBudget, lifetimeSpent int64
	)
	err := r.pool.QueryRow(ctx,
		`SELECT daily_budget,
                CASE WHEN spend_date = (now() AT TIME ZONE 'utc')::date THEN spent_today ELSE 0 END,
                lifetime_budget, lifetime_spent
         FROM campaigns WHERE id = $1`, campaignID).
		Scan(&dailyBudget, &spentToday, &lifetimeBudget, &lifetimeSpent)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("campaign %d: %w", campaignID, port.ErrNotFound)
	}
	if err != nil {
		return nil, mapError(err)
	}

	daily := dailyBudget - spentToday
	if daily < 0 {
		daily = 0
	}
	total := lifetimeBudget - lifetimeSpent
	if total < 0 {
		total = 0
	}
	return &domain.BudgetStatus{
		DailyRemaining: daily,
		TotalRemaining: total,
		WithinBudget:   daily > 0 && total > 0,
	}, nil
}

// GetStats aggregates ledger entries for a period, optionally per campaign.
func (r *LedgerRepository) GetStats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	args := []interface{}{req.From, req.To}
	whereCampaign := ""
	if req.CampaignID != nil {
		whereCampaign = "AND campaign_id = $3"
		args = append(args, *req.CampaignID)
	}
	query := fmt.Sprintf(
		`SELECT COALESCE(count(*) FILTER (WHERE event_type = 'impression'), 0),
                COALESCE(count(*) FILTER (WHERE event_type = 'click'), 0),
                COALESCE(count(*) FILTER (WHERE event_type = 'conversion'), 0),
                COALESCE(sum(amount), 0)
         FROM ledger_entries
         WHERE created_at >= $1 AND created_at <= $2 %s`, whereCampaign)

	var resp port.StatsResp
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&resp.Impressions, &resp.Clicks, &resp.Conversions, &resp.Spend)
	if err != nil {
		return nil, mapError(err)
	}
	return &resp, nil
}

func (r *LedgerRepository) findEntry(ctx context.Context, key string, eventType domain.EventType) (*domain.LedgerEntry, error) {
	entry, err := scanEntry(r.pool.QueryRow(ctx,
		`SELECT id, advertiser_id, campaign_id, event_type, amount, balance_after, idempotency_key, created_at
         FROM ledger_entries WHERE idempotency_key = $1 AND event_type = $2`, key, eventType))
	if err != nil {
		return nil, mapError(err)
	}
	return entry, nil
}

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	err := row.Scan(&e.ID, &e.AdvertiserID, &e.CampaignID, &e.EventType, &e.Amount,
		&e.BalanceAfter, &e.IdempotencyKey, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// mapError folds driver errors into the port taxonomy: serialization
// conflicts and cancelled contexts are retryable (ErrUnavailable), a unique
// violation on the event index is a duplicate event.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure:
			return fmt.Errorf("serialization conflict: %w", port.ErrUnavailable)
		case pgUniqueViolation:
			return fmt.Errorf("ledger entry exists: %w", port.ErrDuplicateEvent)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%v: %w", err, port.ErrUnavailable)
	}
	return err
}

var _ port.LedgerStore = (*LedgerRepository)(nil)
