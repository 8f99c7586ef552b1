package auction

import (
	"testing"

	"github.com/stretchr/testify/require"

	"vertoad/internal/core/domain"
)

func scoredCand(id, bid int64, quality, pacing float64) ScoredCandidate {
	return ScoredCandidate{
		Candidate:        domain.Candidate{ID: id, BidAmount: bid},
		QualityScore:     quality,
		PacingMultiplier: pacing,
		EffectiveBid:     bid,
	}
}

func TestRunSecondPrice(t *testing.T) {
	// A (bid=100, score=1.0) vs B (bid=80, score=1.0): A wins and pays
	// exactly B's bid.
	res := Run([]ScoredCandidate{
		scoredCand(1, 100, 1.0, 1.0),
		scoredCand(2, 80, 1.0, 1.0),
	}, 1)
	require.NotNil(t, res)
	require.Equal(t, int64(1), res.WinnerID)
	require.Equal(t, int64(80), res.ClearingPrice)
	require.Equal(t, int64(80), res.RunnerUpBid)
	require.InDelta(t, 1.0, res.RunnerUpScore, 1e-9)
}

func TestRunQualityAdjustedPrice(t *testing.T) {
	// winner rank 0.5*100=50, runner rank 1.0*40=40: the winner pays the
	// smallest bid that still outranks the runner-up, ceil(40/0.5)=80.
	res := Run([]ScoredCandidate{
		scoredCand(1, 100, 0.5, 1.0),
		scoredCand(2, 40, 1.0, 1.0),
	}, 1)
	require.NotNil(t, res)
	require.Equal(t, int64(1), res.WinnerID)
	require.Equal(t, int64(80), res.ClearingPrice)
}

func TestRunSingleCandidateFloorRule(t *testing.T) {
	// no competition: price = max(floor, 60% of bid)
	res := Run([]ScoredCandidate{scoredCand(1, 50, 1.0, 1.0)}, 1)
	require.NotNil(t, res)
	require.Equal(t, int64(30), res.ClearingPrice)
	require.Zero(t, res.RunnerUpBid)

	// floor dominates when 60% of the bid is below it
	res = Run([]ScoredCandidate{scoredCand(1, 10, 1.0, 1.0)}, 25)
	require.NotNil(t, res)
	require.Equal(t, int64(25), res.ClearingPrice)
}

func TestRunZeroRankRunnerUpFallsBackToFloorRule(t *testing.T) {
	throttled := scoredCand(2, 80, 1.0, 0.1)
	throttled.EffectiveBid = 0
	res := Run([]ScoredCandidate{
		scoredCand(1, 100, 1.0, 1.0),
		throttled,
	}, 1)
	require.NotNil(t, res)
	require.Equal(t, int64(1), res.WinnerID)
	require.Equal(t, int64(60), res.ClearingPrice)
	require.Zero(t, res.RunnerUpBid)
}

func TestRunFullyThrottledPool(t *testing.T) {
	a := scoredCand(1, 100, 1.0, 0.1)
	a.EffectiveBid = 0
	b := scoredCand(2, 80, 1.0, 0.1)
	b.EffectiveBid = 0
	require.Nil(t, Run([]ScoredCandidate{a, b}, 1))
}

func TestRunEmptyPool(t *testing.T) {
	require.Nil(t, Run(nil, 1))
}

func TestRunTieBrokenByLowestID(t *testing.T) {
	res := Run([]ScoredCandidate{
		scoredCand(7, 100, 1.0, 1.0),
		scoredCand(3, 100, 1.0, 1.0),
	}, 1)
	require.NotNil(t, res)
	require.Equal(t, int64(3), res.WinnerID)
	// identical rank values mean the winner pays its full bid
	require.Equal(t, int64(100), res.ClearingPrice)
}

func TestRunDeterministic(t *testing.T) {
	pool := []ScoredCandidate{
		scoredCand(5, 90, 0.7, 1.2),
		scoredCand(2, 120, 0.4, 1.0),
		scoredCand(9, 60, 1.0, 0.8),
	}
	first := Run(pool, 1)
	require.NotNil(t, first)
	for i := 0; i < 10; i++ {
		// input order must not matter either
		shuffled := []ScoredCandidate{pool[(i+1)%3], pool[(i+2)%3], pool[i%3]}
		again := Run(shuffled, 1)
		require.Equal(t, first, again)
	}
}

func TestRunPriceBounds(t *testing.T) {
	pools := [][]ScoredCandidate{
		{scoredCand(1, 100, 1.0, 1.0), scoredCand(2, 5, 0.2, 1.0)},
		{scoredCand(1, 100, 0.2, 1.0), scoredCand(2, 19, 1.0, 1.0)},
		{scoredCand(1, 100, 1.0, 1.0)},
	}
	const floor = int64(10)
	for _, pool := range pools {
		res := Run(pool, floor)
		require.NotNil(t, res)
		require.GreaterOrEqual(t, res.ClearingPrice, floor)
		require.LessOrEqual(t, res.ClearingPrice, pool[0].EffectiveBid)
	}
}
