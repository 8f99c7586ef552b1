package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the auction and billing counters exported on /metrics.
type Metrics struct {
	AuctionsRun    prometheus.Counter
	AuctionsNoFill prometheus.Counter

	ChargesCommitted prometheus.Counter
	ChargesReplayed  prometheus.Counter
	ChargesRejected  *prometheus.CounterVec
}

// New registers the counters on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AuctionsRun: factory.NewCounter(prometheus.CounterOpts{
			Name: "vertoad_auctions_total",
			Help: "Slot auctions executed.",
		}),
		AuctionsNoFill: factory.NewCounter(prometheus.CounterOpts{
			Name: "vertoad_auctions_nofill_total",
			Help: "Slot auctions that produced no winner.",
		}),
		ChargesCommitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "vertoad_charges_committed_total",
			Help: "Ledger debits committed.",
		}),
		ChargesReplayed: factory.NewCounter(prometheus.CounterOpts{
			Name: "vertoad_charges_replayed_total",
			Help: "Charges answered from an already committed ledger entry.",
		}),
		ChargesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vertoad_charges_rejected_total",
			Help: "Charges rejected, by reason.",
		}, []string{"reason"}),
	}
}
