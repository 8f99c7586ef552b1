package auction

import (
	"math"
	"sort"

	"vertoad/internal/core/domain"
)

// ScoredCandidate is a candidate annotated with its quality score and pacing
// outcome for one auction. Ephemeral, per-request, never persisted.
type ScoredCandidate struct {
	domain.Candidate

	QualityScore     float64
	PacingMultiplier float64
	EffectiveBid     int64
}

// TotalScore is the quality score adjusted by pacing.
func (s ScoredCandidate) TotalScore() float64 {
	return s.QualityScore * s.PacingMultiplier
}

// RankValue orders candidates in the auction: total score times the
// effective bid.
func (s ScoredCandidate) RankValue() float64 {
	return s.TotalScore() * float64(s.EffectiveBid)
}

// Run ranks the scored candidates and computes the clearing price. It
// returns nil when the pool is empty or fully throttled (top rank value 0),
// signaling the caller to serve a fallback.
//
// The clearing price is a quality-adjusted second price: the smallest amount
// that would still have let the winner outrank the runner-up, clamped to
// [floorPrice, winner's effective bid]. Without competitive pressure (no
// runner-up, or a runner-up throttled to rank value 0) the winner pays
// max(floorPrice, 60% of its effective bid) instead.
func Run(scored []ScoredCandidate, floorPrice int64) *domain.AuctionResult {
	if len(scored) == 0 {
		return nil
	}

	ranked := make([]ScoredCandidate, len(scored))
	copy(ranked, scored)
	sort.Slice(ranked, func(i, j int) bool {
		ri, rj := ranked[i].RankValue(), ranked[j].RankValue()
		if ri == rj {
			// deterministic tie-break: lowest candidate id wins
			return ranked[i].ID < ranked[j].ID
		}
		return ri > rj
	})

	winner := ranked[0]
	if winner.RankValue() <= 0 {
		return nil
	}

	res := &domain.AuctionResult{WinnerID: winner.ID}

	var runnerUp *ScoredCandidate
	if len(ranked) > 1 && ranked[1].RankValue() > 0 {
		runnerUp = &ranked[1]
	}

	winnerBid := winner.EffectiveBid
	if runnerUp == nil {
		res.ClearingPrice = maxi(floorPrice, ceilPrice(0.6*float64(winnerBid)))
		return res
	}

	// The smallest integer bid b with winner.TotalScore()*b >= runner-up's
	// rank value, bounded below by the floor and above by the winner's bid.
	price := ceilPrice(runnerUp.RankValue() / winner.TotalScore())
	if price < floorPrice {
		price = floorPrice
	}
	if price > winnerBid {
		price = winnerBid
	}
	res.ClearingPrice = price
	res.RunnerUpBid = runnerUp.EffectiveBid
	res.RunnerUpScore = runnerUp.TotalScore()
	return res
}

// ceilPrice converts a fractional price into minor units, rounding up so the
// winner always pays enough to have actually won.
func ceilPrice(v float64) int64 {
	if v <= 0 {
		return 0
	}
	return int64(math.Ceil(v - 1e-9))
}

func maxi(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
