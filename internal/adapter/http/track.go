package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vertoad/internal/core/domain"
	"vertoad/internal/core/port"
)

type trackEventRequest struct {
	AdvertiserID int64 `json:"advertiser_id"`
	CampaignID   int64 `json:"campaign_id"`
	AdID         int64 `json:"ad_id,omitempty"`
	Amount       int64 `json:"amount"`

	// EventID is the impression token from the ad decision; it becomes the
	// idempotency key, so retrying the same event never charges twice.
	EventID string `json:"event_id"`
}

type trackEventResponse struct {
	NewBalance int64 `json:"new_balance"`
	EntryID    int64 `json:"entry_id"`
	Replayed   bool  `json:"replayed"`
}

// handleTrackEvent charges the advertiser for one chargeable event. The
// {event} path parameter is impression, click or conversion. A replayed
// charge (duplicate event id) answers 200 with the original result.
// Insufficient funds is HTTP 402; the caller decides the fallback.
func (h *Handler) handleTrackEvent(w http.ResponseWriter, r *http.Request) {
	event := domain.EventType(chi.URLParam(r, "event"))

	var req trackEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	res, err := h.engine.Charge(r.Context(), port.ChargeReq{
		AdvertiserID:   req.AdvertiserID,
		CampaignID:     req.CampaignID,
		AdID:           req.AdID,
		EventType:      event,
		Amount:         req.Amount,
		IdempotencyKey: req.EventID,
	})
	if err != nil {
		h.writeError(w, "track event error", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := trackEventResponse{
		NewBalance: res.NewBalance,
		EntryID:    res.Entry.ID,
		Replayed:   res.Replayed,
	}
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
