package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/account"
	"fintrack/internal/shared/middleware"
)

type AccountHandler struct {
	service *account.Service
}

func NewAccountHandler(service *account.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

type CreateAccountRequest struct {
	Name           string           `json:"name"`
	Type           string           `json:"type"`
	InitialBalance *decimal.Decimal `json:"initialBalance"`
}

type UpdateAccountRequest struct {
	Name           *string          `json:"name,omitempty"`
	Type           *string          `json:"type,omitempty"`
	InitialBalance *decimal.Decimal `json:"initialBalance,omitempty"`
}

// HandleAccounts routes /api/accounts
func (h *AccountHandler) HandleAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleAccountByID routes /api/accounts/{id}
func (h *AccountHandler) HandleAccountByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid account ID")
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

func (h *AccountHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	accounts, err := h.service.ListAccounts(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing accounts for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}

	writeJSON(w, http.StatusOK, accounts)
}

func (h *AccountHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Account name is required")
		return
	}
	if req.Type == "" {
		writeError(w, http.StatusBadRequest, "Account type is required")
		return
	}

	params := account.CreateParams{
		UserID:      userID,
		Name:        req.Name,
		AccountType: req.Type,
	}
	if req.InitialBalance != nil {
		params.InitialBalance = *req.InitialBalance
	}

	created, err := h.service.CreateAccount(r.Context(), params)
	if err != nil {
		log.Printf("Error creating account for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *AccountHandler) handleGet(w http.ResponseWriter, r *http.Request, id, userID int64) {
	acc, err := h.service.GetAccount(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "Account not found")
			return
		}
		log.Printf("Error getting account %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to get account")
		return
	}

	writeJSON(w, http.StatusOK, acc)
}

func (h *AccountHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id, userID int64) {
	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateAccount(r.Context(), id, userID, account.UpdateParams{
		Name:           req.Name,
		AccountType:    req.Type,
		InitialBalance: req.InitialBalance,
	})
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "Account not found")
			return
		}
		log.Printf("Error updating account %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to update account")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *AccountHandler) handleDelete(w http.ResponseWriter, r *http.Request, id, userID int64) {
	if err := h.service.DeleteAccount(r.Context(), id, userID); err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "Account not found")
			return
		}
		log.Printf("Error deleting account %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
