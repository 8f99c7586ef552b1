package domain

// Candidate is an immutable snapshot of an advertisement's auction-relevant
// attributes at query time. It flattens the campaign budget state and the ad
// performance counters into one value so the scoring pipeline can stay a pure
// function over it. All monetary fields are integer minor units (e.g. cents).
type Candidate struct {
	ID           int64
	CampaignID   int64
	AdvertiserID int64

	// BidAmount is the price the advertiser is willing to pay per chargeable
	// event, before pacing caps are applied.
	BidAmount int64

	DailyBudget    int64
	SpentToday     int64
	LifetimeBudget int64
	LifetimeSpent  int64

	Impressions         int64
	ViewableImpressions int64
	Clicks              int64
	Conversions         int64

	Targeting Targeting

	// ContentRef is opaque to the auction core; the delivery layer resolves it.
	ContentRef string
}

// CTR returns the historical click-through rate, or 0 when the candidate has
// no impressions yet.
func (c Candidate) CTR() float64 {
	if c.Impressions <= 0 {
		return 0
	}
	return float64(c.Clicks) / float64(c.Impressions)
}

// ViewableRate returns the share of impressions that were viewable.
func (c Candidate) ViewableRate() float64 {
	if c.Impressions <= 0 {
		return 0
	}
	return float64(c.ViewableImpressions) / float64(c.Impressions)
}

// CVR returns the historical conversion rate per click.
func (c Candidate) CVR() float64 {
	if c.Clicks <= 0 {
		return 0
	}
	return float64(c.Conversions) / float64(c.Clicks)
}

// RemainingDaily returns the unspent part of today's budget, floored at 0.
func (c Candidate) RemainingDaily() int64 {
	if r := c.DailyBudget - c.SpentToday; r > 0 {
		return r
	}
	return 0
}

// RemainingLifetime returns the unspent part of the lifetime budget, floored at 0.
func (c Candidate) RemainingLifetime() int64 {
	if r := c.LifetimeBudget - c.LifetimeSpent; r > 0 {
		return r
	}
	return 0
}
