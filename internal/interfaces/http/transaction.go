package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/category"
	"fintrack/internal/domain/transaction"
	"fintrack/internal/shared/middleware"
)

type TransactionHandler struct {
	service *transaction.Service
}

func NewTransactionHandler(service *transaction.Service) *TransactionHandler {
	return &TransactionHandler{service: service}
}

type CreateTransactionRequest struct {
	AccountID  int64           `json:"accountId"`
	CategoryID int64           `json:"categoryId"`
	Date       string          `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Notes      *string         `json:"notes,omitempty"`
}

type UpdateTransactionRequest struct {
	AccountID  *int64           `json:"accountId,omitempty"`
	CategoryID *int64           `json:"categoryId,omitempty"`
	Date       *string          `json:"date,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
}

type ShortcutRequest struct {
	AccountID int64           `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     *string         `json:"notes,omitempty"`
}

// dateLayouts are the accepted request date formats, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid date, expected RFC3339 or YYYY-MM-DD")
}

// HandleTransactions routes /api/transactions
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleTransactionByID routes /api/transactions/{id}
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid transaction ID")
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

// HandleNoteSuggestions routes GET /api/transactions/notes
func (h *TransactionHandler) HandleNoteSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notes, err := h.service.NoteSuggestions(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		log.Printf("Error suggesting notes for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to suggest notes")
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

// HandleShortcut routes POST /api/transactions/shortcut
func (h *TransactionHandler) HandleShortcut(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ShortcutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.AccountID <= 0 {
		writeError(w, http.StatusBadRequest, "Valid account ID is required")
		return
	}

	created, err := h.service.Shortcut(r.Context(), userID, req.AccountID, req.Amount, req.Notes)
	if err != nil {
		log.Printf("Error creating shortcut transaction for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *TransactionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter, err := parseListFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.service.ListTransactions(r.Context(), userID, filter)
	if err != nil {
		log.Printf("Error listing transactions for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// parseListFilter reads the list query parameters. Unknown sort columns fall
// back to date descending via Normalize.
func parseListFilter(r *http.Request) (transaction.ListFilter, error) {
	q := r.URL.Query()
	var filter transaction.ListFilter

	if v := q.Get("categoryId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, errors.New("invalid categoryId")
		}
		filter.CategoryID = id
	}
	filter.CategoryName = q.Get("category")
	filter.Search = q.Get("search")

	if v := q.Get("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return filter, errors.New("invalid startDate")
		}
		filter.StartDate = &t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return filter, errors.New("invalid endDate")
		}
		filter.EndDate = &t
	}

	filter.SortBy = q.Get("sortBy")
	filter.SortDesc = q.Get("sortDir") != "asc"

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, errors.New("invalid page")
		}
		filter.Page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, errors.New("invalid limit")
		}
		filter.Limit = n
	}

	return filter, nil
}

func (h *TransactionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.AccountID <= 0 {
		writeError(w, http.StatusBadRequest, "Valid account ID is required")
		return
	}
	if req.CategoryID <= 0 {
		writeError(w, http.StatusBadRequest, "Valid category ID is required")
		return
	}

	created, err := h.service.CreateTransaction(r.Context(), transaction.CreateParams{
		UserID:     userID,
		AccountID:  req.AccountID,
		CategoryID: req.CategoryID,
		Date:       date,
		Amount:     req.Amount,
		Notes:      req.Notes,
	})
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		log.Printf("Error creating transaction for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *TransactionHandler) handleGet(w http.ResponseWriter, r *http.Request, id, userID int64) {
	tx, err := h.service.GetTransaction(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			writeError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		log.Printf("Error getting transaction %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to get transaction")
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id, userID int64) {
	var req UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := transaction.UpdateParams{
		AccountID:  req.AccountID,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Notes:      req.Notes,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		params.Date = &date
	}

	updated, err := h.service.UpdateTransaction(r.Context(), id, userID, params)
	if err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			writeError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		if errors.Is(err, category.ErrCategoryNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		log.Printf("Error updating transaction %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to update transaction")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *TransactionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id, userID int64) {
	if err := h.service.DeleteTransaction(r.Context(), id, userID); err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			writeError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		log.Printf("Error deleting transaction %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
