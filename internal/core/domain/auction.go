package domain

// AuctionResult is the outcome of a single slot auction: the winning
// candidate and the price it will be charged per chargeable event, plus the
// runner-up's score and bid for auditing. Ephemeral, never persisted.
type AuctionResult struct {
	WinnerID      int64
	ClearingPrice int64

	// RunnerUpBid and RunnerUpScore are zero when the winner had no
	// competition and the floor-price rule applied.
	RunnerUpBid   int64
	RunnerUpScore float64
}
