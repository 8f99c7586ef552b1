package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vertoad/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP: it holds the AdEngine to execute business logic and a logger for
// structured logging. Routes are registered on a chi.Router.
type Handler struct {
	engine port.AdEngine
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. The prometheus
// gatherer backs the /metrics endpoint; pass the registry the engine's
// counters were registered on.
func NewHandler(engine port.AdEngine, logger *slog.Logger, gatherer prometheus.Gatherer) *Handler {
	h := &Handler{engine: engine, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/ad/select", h.handleSelectAd)
		r.Post("/track/{event}", h.handleTrackEvent)
		r.Get("/budget/{campaignID}", h.handleBudgetStatus)
		r.Get("/stats/overview", h.handleStatsOverview)
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// writeError maps the port error taxonomy onto HTTP status codes. Unknown
// errors are logged and answered with 500 without leaking detail.
func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, port.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, port.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, port.ErrInsufficientFunds):
		http.Error(w, "insufficient funds", http.StatusPaymentRequired)
	case errors.Is(err, port.ErrUnavailable):
		http.Error(w, "temporarily unavailable, retry", http.StatusServiceUnavailable)
	default:
		h.logger.Error(op, slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
