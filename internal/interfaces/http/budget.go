package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/budget"
	"fintrack/internal/shared/middleware"
)

type BudgetHandler struct {
	service *budget.Service
}

func NewBudgetHandler(service *budget.Service) *BudgetHandler {
	return &BudgetHandler{service: service}
}

type CreateBudgetRequest struct {
	CategoryID int64           `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Period     string          `json:"period"`
}

type UpdateBudgetRequest struct {
	CategoryID *int64           `json:"categoryId,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Period     *string          `json:"period,omitempty"`
}

// HandleBudgets routes /api/budgets
func (h *BudgetHandler) HandleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleBudgetByID routes /api/budgets/{id}
func (h *BudgetHandler) HandleBudgetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid budget ID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, id, userID)
	case http.MethodPut:
		h.handleUpdate(w, r, id, userID)
	case http.MethodDelete:
		h.handleDelete(w, r, id, userID)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *BudgetHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	budgets, err := h.service.ListBudgets(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing budgets for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to list budgets")
		return
	}

	writeJSON(w, http.StatusOK, budgets)
}

func (h *BudgetHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.CategoryID <= 0 {
		writeError(w, http.StatusBadRequest, "Valid category ID is required")
		return
	}
	if !req.Amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "Budget amount must be positive")
		return
	}
	if !budget.IsValidPeriod(req.Period) {
		writeError(w, http.StatusBadRequest, "Budget period must be Monthly or Yearly")
		return
	}

	created, err := h.service.CreateBudget(r.Context(), budget.CreateParams{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Period:     req.Period,
	})
	if err != nil {
		log.Printf("Error creating budget for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to create budget")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *BudgetHandler) handleGet(w http.ResponseWriter, r *http.Request, id, userID int64) {
	b, err := h.service.GetBudget(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, budget.ErrBudgetNotFound) {
			writeError(w, http.StatusNotFound, "Budget not found")
			return
		}
		log.Printf("Error getting budget %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to get budget")
		return
	}

	writeJSON(w, http.StatusOK, b)
}

func (h *BudgetHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id, userID int64) {
	var req UpdateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateBudget(r.Context(), id, userID, budget.UpdateParams{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Period:     req.Period,
	})
	if err != nil {
		if errors.Is(err, budget.ErrBudgetNotFound) {
			writeError(w, http.StatusNotFound, "Budget not found")
			return
		}
		if errors.Is(err, budget.ErrInvalidPeriod) {
			writeError(w, http.StatusBadRequest, "Budget period must be Monthly or Yearly")
			return
		}
		log.Printf("Error updating budget %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to update budget")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *BudgetHandler) handleDelete(w http.ResponseWriter, r *http.Request, id, userID int64) {
	if err := h.service.DeleteBudget(r.Context(), id, userID); err != nil {
		if errors.Is(err, budget.ErrBudgetNotFound) {
			writeError(w, http.StatusNotFound, "Budget not found")
			return
		}
		log.Printf("Error deleting budget %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete budget")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
