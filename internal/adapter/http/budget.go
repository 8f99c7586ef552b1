package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type budgetStatusResponse struct {
	DailyRemaining int64 `json:"daily_remaining"`
	TotalRemaining int64 `json:"total_remaining"`
	WithinBudget   bool  `json:"within_budget"`
}

// handleBudgetStatus reports a campaign's remaining budget. It expects a
// numeric {campaignID} path parameter. Unknown campaigns are HTTP 404.
func (h *Handler) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "campaignID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	status, err := h.engine.GetBudgetStatus(r.Context(), id)
	if err != nil {
		h.writeError(w, "budget status error", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := budgetStatusResponse{
		DailyRemaining: status.DailyRemaining,
		TotalRemaining: status.TotalRemaining,
		WithinBudget:   status.WithinBudget,
	}
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
