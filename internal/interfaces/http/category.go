package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"fintrack/internal/domain/category"
	"fintrack/internal/shared/middleware"
)

type CategoryHandler struct {
	service *category.Service
}

func NewCategoryHandler(service *category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
}

// HandleCategories routes /api/categories
func (h *CategoryHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleCategoryByID routes /api/categories/{id}
func (h *CategoryHandler) HandleCategoryByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category ID")
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

func (h *CategoryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	categories, err := h.service.ListCategories(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing categories for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Category name is required")
		return
	}
	if !category.IsValidType(req.Type) {
		writeError(w, http.StatusBadRequest, "Category type must be Income or Expense")
		return
	}

	created, err := h.service.CreateCategory(r.Context(), category.CreateParams{
		UserID: userID,
		Name:   req.Name,
		Type:   req.Type,
	})
	if err != nil {
		log.Printf("Error creating category for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *CategoryHandler) handleGet(w http.ResponseWriter, r *http.Request, id, userID int64) {
	cat, err := h.service.GetCategory(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		log.Printf("Error getting category %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to get category")
		return
	}

	writeJSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id, userID int64) {
	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateCategory(r.Context(), id, userID, category.UpdateParams{
		Name: req.Name,
		Type: req.Type,
	})
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		if errors.Is(err, category.ErrInvalidType) {
			writeError(w, http.StatusBadRequest, "Category type must be Income or Expense")
			return
		}
		log.Printf("Error updating category %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *CategoryHandler) handleDelete(w http.ResponseWriter, r *http.Request, id, userID int64) {
	if err := h.service.DeleteCategory(r.Context(), id, userID); err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		if errors.Is(err, category.ErrCategoryInUse) {
			writeError(w, http.StatusConflict, "Category is referenced by transactions")
			return
		}
		log.Printf("Error deleting category %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
