package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"vertoad/internal/core/auction"
	"vertoad/internal/core/domain"
	"vertoad/internal/core/port"
	"vertoad/internal/metrics"
)

// Engine implements port.AdEngine. It orchestrates the read-only auction
// path (candidate fetch, scoring, pacing, ranking) and delegates the
// money-moving Charge to the ledger store. The engine itself keeps no
// mutable state, so SelectAd may run with arbitrary parallelism.
type Engine struct {
	candidates port.CandidateStore
	ledger     port.LedgerStore

	// floorPrice is the minimum clearing price in minor units.
	floorPrice int64

	m *metrics.Metrics
}

// NewEngine creates an engine over the given stores. A nil metrics value
// gets a private registry so tests need no prometheus setup.
func NewEngine(candidates port.CandidateStore, ledger port.LedgerStore, floorPrice int64, m *metrics.Metrics) *Engine {
	if floorPrice < 1 {
		floorPrice = 1
	}
	if m == nil {
		m = metrics.New(prometheus.NewRegistry())
	}
	return &Engine{candidates: candidates, ledger: ledger, floorPrice: floorPrice, m: m}
}

// SelectAd runs one auction for the slot. A nil decision with a nil error
// means no fill. The slot's Now field is the auction clock; when the caller
// leaves it zero the current UTC time is used.
func (e *Engine) SelectAd(ctx context.Context, slotID string, slot domain.SlotContext) (*port.AdDecision, error) {
	if slotID == "" {
		return nil, fmt.Errorf("%w: empty slot id", port.ErrInvalidInput)
	}
	if slot.Now.IsZero() {
		slot.Now = time.Now().UTC()
	}

	cands, err := e.candidates.FetchCandidates(ctx, slotID, slot)
	if err != nil {
		return nil, err
	}
	e.m.AuctionsRun.Inc()
	if len(cands) == 0 {
		e.m.AuctionsNoFill.Inc()
		return nil, nil
	}

	scored := make([]auction.ScoredCandidate, 0, len(cands))
	for _, c := range cands {
		mult, eff := auction.Pace(c, slot.Now)
		scored = append(scored, auction.ScoredCandidate{
			Candidate:        c,
			QualityScore:     auction.Score(c, slot),
			PacingMultiplier: mult,
			EffectiveBid:     eff,
		})
	}

	res := auction.Run(scored, e.floorPrice)
	if res == nil {
		e.m.AuctionsNoFill.Inc()
		return nil, nil
	}

	var winner domain.Candidate
	for _, c := range cands {
		if c.ID == res.WinnerID {
			winner = c
			break
		}
	}

	return &port.AdDecision{
		Result:       *res,
		CampaignID:   winner.CampaignID,
		AdvertiserID: winner.AdvertiserID,
		ContentRef:   winner.ContentRef,
		Token:        uuid.NewString(),
	}, nil
}

// Charge validates the request and forwards it to the ledger store. Every
// outcome is explicit: a committed result, a replayed result, or one of the
// taxonomy errors. Nothing is silently swallowed.
func (e *Engine) Charge(ctx context.Context, req port.ChargeReq) (*port.ChargeResult, error) {
	switch {
	case req.AdvertiserID <= 0 || req.CampaignID <= 0:
		return nil, fmt.Errorf("%w: missing advertiser or campaign id", port.ErrInvalidInput)
	case !req.EventType.Valid():
		return nil, fmt.Errorf("%w: unknown event type %q", port.ErrInvalidInput, req.EventType)
	case req.Amount <= 0:
		return nil, fmt.Errorf("%w: non-positive amount %d", port.ErrInvalidInput, req.Amount)
	case req.IdempotencyKey == "":
		return nil, fmt.Errorf("%w: empty idempotency key", port.ErrInvalidInput)
	}

	res, err := e.ledger.Charge(ctx, req)
	switch {
	case err == nil && res.Replayed:
		e.m.ChargesReplayed.Inc()
	case err == nil:
		e.m.ChargesCommitted.Inc()
	case errors.Is(err, port.ErrInsufficientFunds):
		e.m.ChargesRejected.WithLabelValues("insufficient_funds").Inc()
	case errors.Is(err, port.ErrNotFound):
		e.m.ChargesRejected.WithLabelValues("not_found").Inc()
	case errors.Is(err, port.ErrUnavailable):
		e.m.ChargesRejected.WithLabelValues("unavailable").Inc()
	default:
		e.m.ChargesRejected.WithLabelValues("error").Inc()
	}
	return res, err
}

// GetBudgetStatus reports remaining budget for one campaign.
func (e *Engine) GetBudgetStatus(ctx context.Context, campaignID int64) (*domain.BudgetStatus, error) {
	if campaignID <= 0 {
		return nil, fmt.Errorf("%w: missing campaign id", port.ErrInvalidInput)
	}
	return e.ledger.GetBudgetStatus(ctx, campaignID)
}

// GetStats aggregates ledger entries over a period.
func (e *Engine) GetStats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: period end before start", port.ErrInvalidInput)
	}
	return e.ledger.GetStats(ctx, req)
}
