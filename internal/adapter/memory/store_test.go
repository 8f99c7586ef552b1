package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"vertoad/internal/core/domain"
	"vertoad/internal/core/port"
)

func newFundedStore(balance, dailyBudget, lifetimeBudget int64) *Store {
	s := NewStore()
	s.AddAdvertiser(Advertiser{ID: 1, Name: "acme", Balance: balance})
	s.AddCampaign(Campaign{
		ID:             1,
		AdvertiserID:   1,
		Status:         "active",
		StartDate:      time.Now().AddDate(0, 0, -1),
		EndDate:        time.Now().AddDate(0, 1, 0),
		BidAmount:      100,
		DailyBudget:    dailyBudget,
		SpendDate:      time.Now().UTC(),
		LifetimeBudget: lifetimeBudget,
	})
	return s
}

func TestChargeIdempotentReplay(t *testing.T) {
	s := newFundedStore(10000, 5000, 100000)

	req := port.ChargeReq{
		AdvertiserID:   1,
		CampaignID:     1,
		EventType:      domain.EventClick,
		Amount:         500,
		IdempotencyKey: "evt-1",
	}

	first, err := s.Charge(context.Background(), req)
	require.NoError(t, err)
	require.False(t, first.Replayed)
	require.Equal(t, int64(9500), first.NewBalance)

	second, err := s.Charge(context.Background(), req)
	require.NoError(t, err)
	require.True(t, second.Replayed)
	require.Equal(t, first.NewBalance, second.NewBalance)
	require.Equal(t, first.Entry.ID, second.Entry.ID)
	require.Equal(t, 1, s.EntryCount())

	adv, camp := s.Snapshot(1, 1)
	require.Equal(t, int64(9500), adv.Balance)
	require.Equal(t, int64(500), camp.SpentToday)
}

// TestChargeParallelSameKey charges the same event twice in parallel:
// exactly one ledger entry exists and both calls observe the same balance.
func TestChargeParallelSameKey(t *testing.T) {
	s := newFundedStore(10000, 5000, 100000)

	req := port.ChargeReq{
		AdvertiserID:   1,
		CampaignID:     1,
		EventType:      domain.EventClick,
		Amount:         500,
		IdempotencyKey: "evt-42",
	}

	results := make([]*port.ChargeResult, 2)
	var g errgroup.Group
	for i := 0; i < 2; i++ {
		g.Go(func() error {
			res, err := s.Charge(context.Background(), req)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	require.NoError(t, g.Wait())

	require.Equal(t, 1, s.EntryCount())
	require.Equal(t, results[0].NewBalance, results[1].NewBalance)
	require.Equal(t, int64(9500), results[0].NewBalance)
}

// TestConcurrentChargesNoOverspend floods one campaign with concurrent
// charges: spend never exceeds the daily budget, the rest are rejected.
func TestConcurrentChargesNoOverspend(t *testing.T) {
	const (
		dailyBudget = int64(1000)
		amount      = int64(100)
		attempts    = 50
	)
	s := newFundedStore(100000, dailyBudget, 1000000)

	var g errgroup.Group
	committed := make(chan struct{}, attempts)
	for i := 0; i < attempts; i++ {
		g.Go(func() error {
			_, err := s.Charge(context.Background(), port.ChargeReq{
				AdvertiserID:   1,
				CampaignID:     1,
				EventType:      domain.EventImpression,
				Amount:         amount,
				IdempotencyKey: fmt.Sprintf("evt-%d", i),
			})
			if errors.Is(err, port.ErrInsufficientFunds) {
				return nil
			}
			if err != nil {
				return err
			}
			committed <- struct{}{}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	close(committed)

	adv, camp := s.Snapshot(1, 1)
	require.Equal(t, dailyBudget, camp.SpentToday)
	require.Equal(t, 10, len(committed))
	require.Equal(t, 10, s.EntryCount())
	require.Equal(t, int64(100000)-dailyBudget, adv.Balance)
}

func TestChargeInsufficientBalance(t *testing.T) {
	s := newFundedStore(100, 5000, 100000)

	_, err := s.Charge(context.Background(), port.ChargeReq{
		AdvertiserID:   1,
		CampaignID:     1,
		EventType:      domain.EventClick,
		Amount:         200,
		IdempotencyKey: "evt-1",
	})
	require.ErrorIs(t, err, port.ErrInsufficientFunds)
	require.Zero(t, s.EntryCount())

	// the rejected attempt must not move any counter
	adv, camp := s.Snapshot(1, 1)
	require.Equal(t, int64(100), adv.Balance)
	require.Zero(t, camp.SpentToday)
}

func TestChargeRejectsBudgetOverrun(t *testing.T) {
	s := newFundedStore(100000, 300, 100000)

	// a debit that would overrun the daily budget is rejected, not clamped
	_, err := s.Charge(context.Background(), port.ChargeReq{
		AdvertiserID:   1,
		CampaignID:     1,
		EventType:      domain.EventClick,
		Amount:         400,
		IdempotencyKey: "evt-1",
	})
	require.ErrorIs(t, err, port.ErrInsufficientFunds)
	_, camp := s.Snapshot(1, 1)
	require.Zero(t, camp.SpentToday)
}

func TestChargeUnknownIDs(t *testing.T) {
	s := newFundedStore(1000, 1000, 1000)

	_, err := s.Charge(context.Background(), port.ChargeReq{
		AdvertiserID:   99,
		CampaignID:     1,
		EventType:      domain.EventClick,
		Amount:         10,
		IdempotencyKey: "evt-1",
	})
	require.ErrorIs(t, err, port.ErrNotFound)

	_, err = s.Charge(context.Background(), port.ChargeReq{
		AdvertiserID:   1,
		CampaignID:     99,
		EventType:      domain.EventClick,
		Amount:         10,
		IdempotencyKey: "evt-2",
	})
	require.ErrorIs(t, err, port.ErrNotFound)
}

func TestChargeAdvancesAdCounters(t *testing.T) {
	s := newFundedStore(10000, 5000, 100000)
	s.AddAd(Ad{ID: 7, CampaignID: 1, ContentRef: "creative://banner/7"})

	_, err := s.Charge(context.Background(), port.ChargeReq{
		AdvertiserID:   1,
		CampaignID:     1,
		AdID:           7,
		EventType:      domain.EventImpression,
		Amount:         50,
		IdempotencyKey: "evt-1",
	})
	require.NoError(t, err)

	cands, err := s.FetchCandidates(context.Background(), "any", domain.SlotContext{Now: time.Now().UTC()})
	require.NoError(t, err)
	require.Len(t, cands, 1)
	require.Equal(t, int64(1), cands[0].Impressions)
}

func TestFetchCandidatesFilters(t *testing.T) {
	now := time.Now().UTC()
	slot := domain.SlotContext{DeviceType: "mobile", Country: "US", Now: now}

	s := NewStore()
	s.AddAdvertiser(Advertiser{ID: 1, Balance: 100000})
	campaign := func(id int64, mutate func(*Campaign)) {
		c := Campaign{
			ID: id, AdvertiserID: 1, Status: "active",
			StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 1, 0),
			BidAmount: 100, DailyBudget: 1000, SpendDate: now,
			LifetimeBudget: 10000,
		}
		if mutate != nil {
			mutate(&c)
		}
		s.AddCampaign(c)
		s.AddAd(Ad{ID: id, CampaignID: id, ContentRef: "creative://x"})
	}

	campaign(1, nil)
	campaign(2, func(c *Campaign) { c.Status = "paused" })
	campaign(3, func(c *Campaign) { c.EndDate = now.AddDate(0, 0, -1) })
	campaign(4, func(c *Campaign) { c.SpentToday = c.DailyBudget })
	campaign(5, func(c *Campaign) { c.LifetimeSpent = c.LifetimeBudget })

	cands, err := s.FetchCandidates(context.Background(), "home-top", slot)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	require.Equal(t, int64(1), cands[0].ID)
}

func TestFetchCandidatesTargeting(t *testing.T) {
	now := time.Now().UTC()
	s := newFundedStore(100000, 1000, 10000)
	s.AddAd(Ad{ID: 1, CampaignID: 1, Targeting: domain.Targeting{Slots: []string{"home-top"}}})
	s.AddAd(Ad{ID: 2, CampaignID: 1, Targeting: domain.Targeting{DeviceTypes: []string{"desktop"}}})
	s.AddAd(Ad{ID: 3, CampaignID: 1, Targeting: domain.Targeting{Countries: []string{"DE"}}})
	s.AddAd(Ad{ID: 4, CampaignID: 1})

	slot := domain.SlotContext{DeviceType: "mobile", Country: "US", Now: now}
	cands, err := s.FetchCandidates(context.Background(), "home-top", slot)
	require.NoError(t, err)

	got := make(map[int64]bool, len(cands))
	for _, c := range cands {
		got[c.ID] = true
	}
	// slot match and wildcard survive; device and country mismatches do not
	require.Equal(t, map[int64]bool{1: true, 4: true}, got)
}

// TestFetchCandidatesEmptyIsNotAnError covers the normal no-fill outcome.
func TestFetchCandidatesEmptyIsNotAnError(t *testing.T) {
	s := NewStore()
	cands, err := s.FetchCandidates(context.Background(), "home-top", domain.SlotContext{Now: time.Now()})
	require.NoError(t, err)
	require.Empty(t, cands)
}

func TestFetchCandidatesDailySpendRollsOver(t *testing.T) {
	s := newFundedStore(100000, 1000, 10000)
	s.AddAd(Ad{ID: 1, CampaignID: 1})

	// exhausted yesterday: today the candidate is eligible again
	_, camp := s.Snapshot(1, 1)
	camp.SpentToday = camp.DailyBudget
	camp.SpendDate = time.Now().UTC().AddDate(0, 0, -1)
	s.AddCampaign(camp)

	cands, err := s.FetchCandidates(context.Background(), "any", domain.SlotContext{Now: time.Now().UTC()})
	require.NoError(t, err)
	require.Len(t, cands, 1)
	require.Zero(t, cands[0].SpentToday)
}

func TestBudgetStatus(t *testing.T) {
	s := newFundedStore(100000, 1000, 10000)

	_, err := s.Charge(context.Background(), port.ChargeReq{
		AdvertiserID: 1, CampaignID: 1,
		EventType: domain.EventClick, Amount: 400, IdempotencyKey: "evt-1",
	})
	require.NoError(t, err)

	status, err := s.GetBudgetStatus(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(600), status.DailyRemaining)
	require.Equal(t, int64(9600), status.TotalRemaining)
	require.True(t, status.WithinBudget)

	_, err = s.GetBudgetStatus(context.Background(), 99)
	require.ErrorIs(t, err, port.ErrNotFound)
}

func TestGetStats(t *testing.T) {
	s := newFundedStore(100000, 5000, 100000)

	for i, event := range []domain.EventType{domain.EventImpression, domain.EventImpression, domain.EventClick} {
		_, err := s.Charge(context.Background(), port.ChargeReq{
			AdvertiserID: 1, CampaignID: 1,
			EventType: event, Amount: 100,
			IdempotencyKey: fmt.Sprintf("evt-%d", i),
		})
		require.NoError(t, err)
	}

	stats, err := s.GetStats(context.Background(), port.StatsReq{
		From: time.Now().Add(-time.Hour),
		To:   time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.Impressions)
	require.Equal(t, int64(1), stats.Clicks)
	require.Zero(t, stats.Conversions)
	require.Equal(t, int64(300), stats.Spend)
}
