// Package auction implements the pure slot-auction pipeline: quality
// scoring, budget pacing and the capped second-price auction. Every function
// here is deterministic in its inputs and never errors; malformed candidate
// attributes degrade to conservative defaults instead of failing the auction
// over one bad row.
package auction

import (
	"time"

	"vertoad/internal/core/domain"
)

const (
	// MinScore and MaxScore bound the final quality score. The floor keeps a
	// weak candidate able to win an otherwise empty auction.
	MinScore = 0.1
	MaxScore = 1.0
)

// Score computes the dimensionless quality score for a candidate in
// [MinScore, MaxScore]: the product of the historical-performance,
// relevance, engagement and schedule sub-scores, each clamped to [0,1].
func Score(c domain.Candidate, slot domain.SlotContext) float64 {
	s := clamp01(historicalScore(c)) *
		clamp01(relevanceScore(c, slot)) *
		clamp01(engagementScore(c)) *
		clamp01(scheduleScore(c, slot.Now))

	if s < MinScore {
		return MinScore
	}
	if s > MaxScore {
		return MaxScore
	}
	return s
}

// historicalScore rewards observed CTR. Candidates with no impressions get
// the 0.5 cold-start baseline rather than being penalized to zero.
func historicalScore(c domain.Candidate) float64 {
	if c.Impressions <= 0 {
		return 0.5
	}
	return 0.5 + minf(c.CTR()*50, 0.5)
}

// relevanceScore combines device and geo fit. Untargeted dimensions are
// always relevant. Candidates with a mismatched targeted dimension normally
// never reach the scorer (the store filters them), but the penalty values
// keep the function total.
func relevanceScore(c domain.Candidate, slot domain.SlotContext) float64 {
	device := 1.0
	if len(c.Targeting.DeviceTypes) > 0 && !contains(c.Targeting.DeviceTypes, slot.DeviceType) {
		device = 0.2
	}

	geo := 1.0
	if len(c.Targeting.Countries) > 0 {
		if !contains(c.Targeting.Countries, slot.Country) {
			geo = 0.2
		} else if len(c.Targeting.Regions) > 0 && !contains(c.Targeting.Regions, slot.Region) {
			// country matched but the region did not
			geo = 0.6
		}
	}

	return device * geo
}

// engagementScore rewards viewability and conversion-rate uplift.
func engagementScore(c domain.Candidate) float64 {
	viewable := 0.7 + minf(c.ViewableRate()*0.6, 0.3)
	uplift := 0.8 + minf(c.CVR()*4, 0.2)
	return viewable * uplift
}

// scheduleScore is 1.0 inside the candidate's schedule window (or when no
// schedule is set) and 0.4 outside, so a slightly-off-schedule ad can still
// win when nothing else qualifies.
func scheduleScore(c domain.Candidate, now time.Time) float64 {
	if c.Targeting.InSchedule(now) {
		return 1.0
	}
	return 0.4
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
