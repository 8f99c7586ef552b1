package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"vertoad/internal/core/domain"
)

type selectAdRequest struct {
	SlotID     string `json:"slot_id"`
	DeviceType string `json:"device_type"`
	Country    string `json:"country"`
	Region     string `json:"region"`

	// Time is optional (RFC3339); it pins the auction clock, mainly for
	// reproducing a decision. Empty means now.
	Time string `json:"time,omitempty"`
}

type selectAdResponse struct {
	AdID          int64   `json:"ad_id"`
	CampaignID    int64   `json:"campaign_id"`
	AdvertiserID  int64   `json:"advertiser_id"`
	ContentRef    string  `json:"content_ref"`
	ClearingPrice int64   `json:"clearing_price"`
	Token         string  `json:"token"`
	RunnerUpBid   int64   `json:"runner_up_bid,omitempty"`
	RunnerUpScore float64 `json:"runner_up_score,omitempty"`
}

// handleSelectAd runs one slot auction. On a won auction it returns the
// decision as JSON; a no-fill outcome is HTTP 204 so the caller can serve a
// fallback. Parsing errors produce HTTP 400.
func (h *Handler) handleSelectAd(w http.ResponseWriter, r *http.Request) {
	var req selectAdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	slot := domain.SlotContext{
		DeviceType: req.DeviceType,
		Country:    req.Country,
		Region:     req.Region,
	}
	if req.Time != "" {
		ts, err := time.Parse(time.RFC3339, req.Time)
		if err != nil {
			http.Error(w, "invalid 'time' timestamp", http.StatusBadRequest)
			return
		}
		slot.Now = ts
	}

	decision, err := h.engine.SelectAd(r.Context(), req.SlotID, slot)
	if err != nil {
		h.writeError(w, "select ad error", err)
		return
	}
	if decision == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := selectAdResponse{
		AdID:          decision.Result.WinnerID,
		CampaignID:    decision.CampaignID,
		AdvertiserID:  decision.AdvertiserID,
		ContentRef:    decision.ContentRef,
		ClearingPrice: decision.Result.ClearingPrice,
		Token:         decision.Token,
		RunnerUpBid:   decision.Result.RunnerUpBid,
		RunnerUpScore: decision.Result.RunnerUpScore,
	}
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
