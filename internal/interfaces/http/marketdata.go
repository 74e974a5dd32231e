package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/marketdata"
)

type MarketDataHandler struct {
	service *marketdata.Service
}

func NewMarketDataHandler(service *marketdata.Service) *MarketDataHandler {
	return &MarketDataHandler{service: service}
}

type MarketDataResponse struct {
	UpdatedAt *time.Time                 `json:"updatedAt"`
	Prices    map[string]decimal.Decimal `json:"prices"`
}

// HandleMarketData routes GET /api/market-data
func (h *MarketDataHandler) HandleMarketData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	prices, updatedAt := h.service.Snapshot()

	resp := MarketDataResponse{Prices: prices}
	if !updatedAt.IsZero() {
		resp.UpdatedAt = &updatedAt
	}

	writeJSON(w, http.StatusOK, resp)
}
