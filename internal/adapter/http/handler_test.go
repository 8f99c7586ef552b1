package httpadapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"vertoad/internal/adapter/memory"
	"vertoad/internal/adapter/usecase"
	"vertoad/internal/metrics"
)

func newTestServer(t *testing.T) (*httptest.Server, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	store.AddAdvertiser(memory.Advertiser{ID: 1, Name: "acme", Balance: 100000})
	store.AddCampaign(memory.Campaign{
		ID: 1, AdvertiserID: 1, Status: "active",
		StartDate: time.Now().AddDate(0, 0, -1), EndDate: time.Now().AddDate(0, 1, 0),
		BidAmount: 100, DailyBudget: 10000, SpendDate: time.Now().UTC(),
		LifetimeBudget: 100000,
	})
	store.AddAd(memory.Ad{ID: 1, CampaignID: 1, ContentRef: "creative://banner/1"})

	registry := prometheus.NewRegistry()
	engine := usecase.NewEngine(store, store, 1, metrics.New(registry))
	handler := NewHandler(engine, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), registry)

	srv := httptest.NewServer(handler.Router())
	t.Cleanup(srv.Close)
	return srv, store
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func TestSelectAndTrackFlow(t *testing.T) {
	srv, store := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/ad/select", map[string]interface{}{
		"slot_id":     "home-top",
		"device_type": "mobile",
		"country":     "US",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decision struct {
		AdID          int64  `json:"ad_id"`
		CampaignID    int64  `json:"campaign_id"`
		AdvertiserID  int64  `json:"advertiser_id"`
		ClearingPrice int64  `json:"clearing_price"`
		Token         string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decision))
	require.Equal(t, int64(1), decision.AdID)
	require.NotEmpty(t, decision.Token)
	require.Positive(t, decision.ClearingPrice)

	// the auction path is read-only: nothing was debited yet
	require.Zero(t, store.EntryCount())

	track := map[string]interface{}{
		"advertiser_id": decision.AdvertiserID,
		"campaign_id":   decision.CampaignID,
		"ad_id":         decision.AdID,
		"amount":        decision.ClearingPrice,
		"event_id":      decision.Token,
	}
	resp = postJSON(t, srv.URL+"/api/v1/track/impression", track)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var charged struct {
		NewBalance int64 `json:"new_balance"`
		Replayed   bool  `json:"replayed"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&charged))
	require.False(t, charged.Replayed)
	require.Equal(t, 100000-decision.ClearingPrice, charged.NewBalance)

	// retrying the same event replays the original result
	resp = postJSON(t, srv.URL+"/api/v1/track/impression", track)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var replayed struct {
		NewBalance int64 `json:"new_balance"`
		Replayed   bool  `json:"replayed"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&replayed))
	require.True(t, replayed.Replayed)
	require.Equal(t, charged.NewBalance, replayed.NewBalance)
	require.Equal(t, 1, store.EntryCount())
}

func TestSelectAdNoFillIs204(t *testing.T) {
	srv, _ := newTestServer(t)

	// a pinned auction clock still fills against the funded store
	resp := postJSON(t, srv.URL+"/api/v1/ad/select", map[string]interface{}{
		"slot_id": "home-top",
		"time":    time.Now().Format(time.RFC3339),
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	empty := httptest.NewServer(NewHandler(
		usecase.NewEngine(memory.NewStore(), memory.NewStore(), 1, nil),
		slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
		nil,
	).Router())
	defer empty.Close()

	resp = postJSON(t, empty.URL+"/api/v1/ad/select", map[string]interface{}{"slot_id": "home-top"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestTrackRejectsBadEvent(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/track/view", map[string]interface{}{
		"advertiser_id": 1,
		"campaign_id":   1,
		"amount":        10,
		"event_id":      "evt-1",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTrackInsufficientFundsIs402(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/track/click", map[string]interface{}{
		"advertiser_id": 1,
		"campaign_id":   1,
		"amount":        999999,
		"event_id":      "evt-broke",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
}

func TestBudgetStatusEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/budget/1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status struct {
		DailyRemaining int64 `json:"daily_remaining"`
		WithinBudget   bool  `json:"within_budget"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	require.Equal(t, int64(10000), status.DailyRemaining)
	require.True(t, status.WithinBudget)

	resp, err = http.Get(srv.URL + "/api/v1/budget/99")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatsOverviewEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	for i := 0; i < 3; i++ {
		resp := postJSON(t, srv.URL+"/api/v1/track/impression", map[string]interface{}{
			"advertiser_id": 1,
			"campaign_id":   1,
			"amount":        50,
			"event_id":      fmt.Sprintf("evt-%d", i),
		})
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/api/v1/stats/overview?campaign_id=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		Impressions int64 `json:"Impressions"`
		Spend       int64 `json:"Spend"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	require.Equal(t, int64(3), stats.Impressions)
	require.Equal(t, int64(150), stats.Spend)
}
