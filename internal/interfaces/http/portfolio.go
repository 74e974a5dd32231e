package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/portfolio"
	"fintrack/internal/shared/middleware"
)

type PortfolioHandler struct {
	service *portfolio.Service
}

func NewPortfolioHandler(service *portfolio.Service) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

type CreatePortfolioRequest struct {
	Name string `json:"name"`
}

type CreateHoldingRequest struct {
	TickerSymbol     string          `json:"tickerSymbol"`
	Quantity         decimal.Decimal `json:"quantity"`
	AvgPurchasePrice decimal.Decimal `json:"avgPurchasePrice"`
}

type UpdateHoldingRequest struct {
	TickerSymbol     *string          `json:"tickerSymbol,omitempty"`
	Quantity         *decimal.Decimal `json:"quantity,omitempty"`
	AvgPurchasePrice *decimal.Decimal `json:"avgPurchasePrice,omitempty"`
}

// HandlePortfolios routes /api/portfolios
func (h *PortfolioHandler) HandlePortfolios(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	switch r.Method {
	case http.MethodGet:
		portfolios, err := h.service.ListPortfolios(r.Context(), userID)
		if err != nil {
			log.Printf("Error listing portfolios for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Failed to list portfolios")
			return
		}
		writeJSON(w, http.StatusOK, portfolios)
	case http.MethodPost:
		var req CreatePortfolioRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "Portfolio name is required")
			return
		}
		created, err := h.service.CreatePortfolio(r.Context(), portfolio.CreatePortfolioParams{
			UserID: userID,
			Name:   req.Name,
		})
		if err != nil {
			log.Printf("Error creating portfolio for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Failed to create portfolio")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandlePortfolioByID routes /api/portfolios/{id}
func (h *PortfolioHandler) HandlePortfolioByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid portfolio ID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := h.service.GetPortfolio(r.Context(), id, userID)
		if err != nil {
			h.writePortfolioError(w, id, err, "get")
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPut:
		var req CreatePortfolioRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "Portfolio name is required")
			return
		}
		p, err := h.service.RenamePortfolio(r.Context(), id, userID, req.Name)
		if err != nil {
			h.writePortfolioError(w, id, err, "rename")
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		if err := h.service.DeletePortfolio(r.Context(), id, userID); err != nil {
			h.writePortfolioError(w, id, err, "delete")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandlePortfolioHoldings routes POST /api/portfolios/{id}/holdings
func (h *PortfolioHandler) HandlePortfolioHoldings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	portfolioID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid portfolio ID")
		return
	}

	var req CreateHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.TickerSymbol == "" {
		writeError(w, http.StatusBadRequest, "Ticker symbol is required")
		return
	}
	if !req.Quantity.IsPositive() {
		writeError(w, http.StatusBadRequest, "Quantity must be positive")
		return
	}

	created, err := h.service.AddHolding(r.Context(), userID, portfolio.CreateHoldingParams{
		PortfolioID:      portfolioID,
		TickerSymbol:     req.TickerSymbol,
		Quantity:         req.Quantity,
		AvgPurchasePrice: req.AvgPurchasePrice,
	})
	if err != nil {
		if errors.Is(err, portfolio.ErrPortfolioNotFound) {
			writeError(w, http.StatusNotFound, "Portfolio not found")
			return
		}
		log.Printf("Error adding holding to portfolio %d: %v", portfolioID, err)
		writeError(w, http.StatusInternalServerError, "Failed to add holding")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleHoldingByID routes /api/holdings/{id}
func (h *PortfolioHandler) HandleHoldingByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid holding ID")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req UpdateHoldingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		updated, err := h.service.UpdateHolding(r.Context(), id, userID, portfolio.UpdateHoldingParams{
			TickerSymbol:     req.TickerSymbol,
			Quantity:         req.Quantity,
			AvgPurchasePrice: req.AvgPurchasePrice,
		})
		if err != nil {
			if errors.Is(err, portfolio.ErrHoldingNotFound) {
				writeError(w, http.StatusNotFound, "Holding not found")
				return
			}
			log.Printf("Error updating holding %d: %v", id, err)
			writeError(w, http.StatusInternalServerError, "Failed to update holding")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := h.service.RemoveHolding(r.Context(), id, userID); err != nil {
			if errors.Is(err, portfolio.ErrHoldingNotFound) {
				writeError(w, http.StatusNotFound, "Holding not found")
				return
			}
			log.Printf("Error removing holding %d: %v", id, err)
			writeError(w, http.StatusInternalServerError, "Failed to remove holding")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *PortfolioHandler) writePortfolioError(w http.ResponseWriter, id int64, err error, action string) {
	if errors.Is(err, portfolio.ErrPortfolioNotFound) {
		writeError(w, http.StatusNotFound, "Portfolio not found")
		return
	}
	log.Printf("Error during portfolio %s %d: %v", action, id, err)
	writeError(w, http.StatusInternalServerError, "Failed to "+action+" portfolio")
}
