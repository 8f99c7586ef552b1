// Package memory provides an in-memory implementation of the candidate and
// ledger ports. It backs the property tests for the billing invariants and
// doubles as a dependency-free store for local development. All ledger
// mutations are serialized behind one mutex, which trivially satisfies the
// atomic read-modify-write discipline the ledger port requires.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vertoad/internal/core/domain"
	"vertoad/internal/core/port"
)

// Advertiser is a funded account.
type Advertiser struct {
	ID      int64
	Name    string
	Balance int64
}

// Campaign carries the budget state and bid of one campaign.
type Campaign struct {
	ID           int64
	AdvertiserID int64
	Status       string
	StartDate    time.Time
	EndDate      time.Time

	BidAmount      int64
	DailyBudget    int64
	SpentToday     int64
	SpendDate      time.Time
	LifetimeBudget int64
	LifetimeSpent  int64
}

// Ad is a servable creative with its performance counters and targeting.
type Ad struct {
	ID         int64
	CampaignID int64
	ContentRef string

	Impressions         int64
	ViewableImpressions int64
	Clicks              int64
	Conversions         int64

	Targeting domain.Targeting
}

type entryKey struct {
	key       string
	eventType domain.EventType
}

// Store implements port.CandidateStore and port.LedgerStore in memory.
type Store struct {
	mu sync.Mutex

	advertisers map[int64]*Advertiser
	campaigns   map[int64]*Campaign
	ads         map[int64]*Ad

	entries     []domain.LedgerEntry
	byEvent     map[entryKey]int // index into entries
	nextEntryID int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		advertisers: make(map[int64]*Advertiser),
		campaigns:   make(map[int64]*Campaign),
		ads:         make(map[int64]*Ad),
		byEvent:     make(map[entryKey]int),
		nextEntryID: 1,
	}
}

// AddAdvertiser inserts or replaces an advertiser.
func (s *Store) AddAdvertiser(a Advertiser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advertisers[a.ID] = &a
}

// AddCampaign inserts or replaces a campaign.
func (s *Store) AddCampaign(c Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[c.ID] = &c
}

// AddAd inserts or replaces an ad.
func (s *Store) AddAd(a Ad) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ads[a.ID] = &a
}

// FetchCandidates applies the eligibility filters of the candidate port:
// active campaign, within date range, budget remaining, targeting satisfied.
// Schedule windows deliberately do not filter; they only affect scoring.
func (s *Store) FetchCandidates(_ context.Context, slotID string, slot domain.SlotContext) ([]domain.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := slot.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	candidates := make([]domain.Candidate, 0)
	for _, ad := range s.ads {
		camp, ok := s.campaigns[ad.CampaignID]
		if !ok || camp.Status != "active" {
			continue
		}
		if now.Before(camp.StartDate) || now.After(camp.EndDate) {
			continue
		}
		spentToday := camp.SpentToday
		if !sameDay(camp.SpendDate, now) {
			spentToday = 0
		}
		if camp.DailyBudget-spentToday <= 0 || camp.LifetimeBudget-camp.LifetimeSpent <= 0 {
			continue
		}
		if !ad.Targeting.Matches(slotID, slot) {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			ID:                  ad.ID,
			CampaignID:          camp.ID,
			AdvertiserID:        camp.AdvertiserID,
			BidAmount:           camp.BidAmount,
			DailyBudget:         camp.DailyBudget,
			SpentToday:          spentToday,
			LifetimeBudget:      camp.LifetimeBudget,
			LifetimeSpent:       camp.LifetimeSpent,
			Impressions:         ad.Impressions,
			ViewableImpressions: ad.ViewableImpressions,
			Clicks:              ad.Clicks,
			Conversions:         ad.Conversions,
			Targeting:           ad.Targeting,
			ContentRef:          ad.ContentRef,
		})
	}
	return candidates, nil
}

// Charge performs the whole debit as one critical section: idempotency
// lookup, sufficiency checks against balance and both budgets, counter
// updates and the entry append.
func (s *Store) Charge(_ context.Context, req port.ChargeReq) (*port.ChargeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, ok := s.byEvent[entryKey{req.IdempotencyKey, req.EventType}]; ok {
		e := s.entries[idx]
		return &port.ChargeResult{NewBalance: e.BalanceAfter, Entry: e, Replayed: true}, nil
	}

	adv, ok := s.advertisers[req.AdvertiserID]
	if !ok {
		return nil, fmt.Errorf("advertiser %d: %w", req.AdvertiserID, port.ErrNotFound)
	}
	camp, ok := s.campaigns[req.CampaignID]
	if !ok {
		return nil, fmt.Errorf("campaign %d: %w", req.CampaignID, port.ErrNotFound)
	}

	now := time.Now().UTC()
	if !sameDay(camp.SpendDate, now) {
		camp.SpentToday = 0
		camp.SpendDate = now
	}

	switch {
	case adv.Balance < req.Amount:
		return nil, fmt.Errorf("balance %d < amount %d: %w", adv.Balance, req.Amount, port.ErrInsufficientFunds)
	case camp.SpentToday+req.Amount > camp.DailyBudget:
		return nil, fmt.Errorf("daily budget exceeded: %w", port.ErrInsufficientFunds)
	case camp.LifetimeSpent+req.Amount > camp.LifetimeBudget:
		return nil, fmt.Errorf("lifetime budget exceeded: %w", port.ErrInsufficientFunds)
	}

	adv.Balance -= req.Amount
	camp.SpentToday += req.Amount
	camp.LifetimeSpent += req.Amount

	if ad, ok := s.ads[req.AdID]; ok {
		switch req.EventType {
		case domain.EventImpression:
			ad.Impressions++
		case domain.EventClick:
			ad.Clicks++
		case domain.EventConversion:
			ad.Conversions++
		}
	}

	entry := domain.LedgerEntry{
		ID:             s.nextEntryID,
		AdvertiserID:   req.AdvertiserID,
		CampaignID:     req.CampaignID,
		EventType:      req.EventType,
		Amount:         req.Amount,
		BalanceAfter:   adv.Balance,
		IdempotencyKey: req.IdempotencyKey,
		CreatedAt:      now,
	}
	s.nextEntryID++
	s.entries = append(s.entries, entry)
	s.byEvent[entryKey{req.IdempotencyKey, req.EventType}] = len(s.entries) - 1

	return &port.ChargeResult{NewBalance: adv.Balance, Entry: entry}, nil
}

// GetBudgetStatus reports remaining budget for one campaign.
func (s *Store) GetBudgetStatus(_ context.Context, campaignID int64) (*domain.BudgetStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	camp, ok := s.campaigns[campaignID]
	if !ok {
		return nil, fmt.Errorf("campaign %d: %w", campaignID, port.ErrNotFound)
	}
	spentToday := camp.SpentToday
	if !sameDay(camp.SpendDate, time.Now().UTC()) {
		spentToday = 0
	}
	daily := camp.DailyBudget - spentToday
	if daily < 0 {
		daily = 0
	}
	total := camp.LifetimeBudget - camp.LifetimeSpent
	if total < 0 {
		total = 0
	}
	return &domain.BudgetStatus{
		DailyRemaining: daily,
		TotalRemaining: total,
		WithinBudget:   daily > 0 && total > 0,
	}, nil
}

// GetStats folds committed entries over the requested period.
func (s *Store) GetStats(_ context.Context, req port.StatsReq) (*port.StatsResp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var resp port.StatsResp
	for _, e := range s.entries {
		if e.CreatedAt.Before(req.From) || e.CreatedAt.After(req.To) {
			continue
		}
		if req.CampaignID != nil && e.CampaignID != *req.CampaignID {
			continue
		}
		switch e.EventType {
		case domain.EventImpression:
			resp.Impressions++
		case domain.EventClick:
			resp.Clicks++
		case domain.EventConversion:
			resp.Conversions++
		}
		resp.Spend += e.Amount
	}
	return &resp, nil
}

// EntryCount reports the number of committed ledger entries.
func (s *Store) EntryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Snapshot returns copies of an advertiser and a campaign for assertions.
func (s *Store) Snapshot(advertiserID, campaignID int64) (Advertiser, Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var a Advertiser
	var c Campaign
	if adv, ok := s.advertisers[advertiserID]; ok {
		a = *adv
	}
	if camp, ok := s.campaigns[campaignID]; ok {
		c = *camp
	}
	return a, c
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
