package auction

import (
	"time"

	"vertoad/internal/core/domain"
)

// Pacing multipliers. An exhausted candidate keeps the minimum multiplier and
// a zero effective bid so it stays visible in audit output without being able
// to win.
const (
	paceExhausted  = 0.1
	paceThrottled  = 0.8
	paceNeutral    = 1.0
	paceAccelerate = 1.2
)

// Pace computes the pacing multiplier and the effective bid ceiling for a
// candidate. The multiplier compares spend so far against the ideal
// time-proportional spend for the UTC day: behind pace accelerates (1.2),
// ahead of pace throttles (0.8), on pace is neutral (1.0). A candidate whose
// daily budget is already spent gets (0.1, 0) and is effectively removed from
// the auction without being dropped from the list.
func Pace(c domain.Candidate, now time.Time) (multiplier float64, effectiveBid int64) {
	if c.SpentToday >= c.DailyBudget {
		return paceExhausted, 0
	}

	now = now.UTC()
	elapsed := now.Hour()*3600 + now.Minute()*60 + now.Second()
	dayProgress := float64(elapsed) / 86400.0
	idealSpend := float64(c.DailyBudget) * dayProgress

	multiplier = paceNeutral
	switch {
	case float64(c.SpentToday) < idealSpend*0.8:
		multiplier = paceAccelerate
	case float64(c.SpentToday) > idealSpend*1.2:
		multiplier = paceThrottled
	}

	effectiveBid = c.BidAmount
	if remaining := c.DailyBudget - c.SpentToday; remaining < effectiveBid {
		effectiveBid = remaining
	}
	if effectiveBid < 0 {
		effectiveBid = 0
	}
	return multiplier, effectiveBid
}
