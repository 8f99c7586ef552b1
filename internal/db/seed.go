package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo data into the vertoad database: a few funded
// advertisers, campaigns with distinct pacing states, ads with targeting and
// performance history, and a day of ledger entries.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 1; i <= 3; i++ {
		name := fmt.Sprintf("Advertiser %d", i)
		balance := int64(1000000) // 10000.00 units
		_, err := db.Exec(ctx, `INSERT INTO advertisers (id, name, balance, created_at, updated_at)
VALUES ($1,$2,$3,now(),now()) ON CONFLICT DO NOTHING`, i, name, balance)
		if err != nil {
			return err
		}
	}

	for i := 1; i <= 6; i++ {
		advertiserID := (i-1)%3 + 1
		name := fmt.Sprintf("Campaign %d", i)
		start := time.Now().AddDate(0, 0, -7)
		end := time.Now().AddDate(0, 1, 0)
		bid := int64(50 + r.Intn(100))    // 0.50-1.50 per event
		dailyBudget := int64(20000)       // 200.00 units
		lifetimeBudget := int64(500000)   // 5000.00 units
		spentToday := int64(r.Intn(5000)) // spread pacing states
		_, err := db.Exec(ctx, `INSERT INTO campaigns
    (id, advertiser_id, name, status, start_date, end_date, bid_amount,
     daily_budget, spent_today, spend_date, lifetime_budget, lifetime_spent, created_at, updated_at)
VALUES ($1,$2,$3,'active',$4,$5,$6,$7,$8,(now() AT TIME ZONE 'utc')::date,$9,$8,now(),now()) ON CONFLICT DO NOTHING`,
			i, advertiserID, name, start, end, bid, dailyBudget, spentToday, lifetimeBudget)
		if err != nil {
			return err
		}

		for j := 1; j <= 3; j++ {
			adID := (i-1)*3 + j
			title := fmt.Sprintf("Ad %d for campaign %d", j, i)
			contentRef := fmt.Sprintf("creative://banner/%d", adID)
			impressions := int64(r.Intn(20000))
			viewable := impressions * int64(50+r.Intn(40)) / 100
			clicks := impressions * int64(r.Intn(3)) / 100
			conversions := clicks * int64(r.Intn(10)) / 100
			targeting := map[string]interface{}{
				"slots":        []string{"home-top", "sidebar", "article-footer"}[r.Intn(3):],
				"device_types": [][]string{{"desktop", "mobile"}, {"mobile"}, nil}[r.Intn(3)],
				"countries":    [][]string{{"US", "CA"}, {"DE"}, nil}[r.Intn(3)],
				"hours":        []int{},
				"days":         []int{},
			}
			tgtJSON, _ := json.Marshal(targeting)
			_, err = db.Exec(ctx, `INSERT INTO ads
(id, campaign_id, title, content_ref, impressions, viewable_impressions, clicks, conversions, targeting, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,now(),now()) ON CONFLICT DO NOTHING`,
				adID, i, title, contentRef, impressions, viewable, clicks, conversions, tgtJSON)
			if err != nil {
				return err
			}
		}
	}

	// a day of ledger history so the stats endpoint has something to fold
	for i := 0; i < 200; i++ {
		campaignID := int64(r.Intn(6) + 1)
		advertiserID := (campaignID-1)%3 + 1
		eventType := []string{"impression", "impression", "impression", "click", "conversion"}[r.Intn(5)]
		amount := int64(10 + r.Intn(90))
		key := uuid.NewString()
		createdAt := time.Now().Add(-time.Duration(r.Intn(24)) * time.Hour)
		_, err := db.Exec(ctx, `INSERT INTO ledger_entries
(advertiser_id, campaign_id, event_type, amount, balance_after, idempotency_key, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7) ON CONFLICT DO NOTHING`,
			advertiserID, campaignID, eventType, amount, int64(1000000)-amount, key, createdAt)
		if err != nil {
			return err
		}
	}
	return nil
}
