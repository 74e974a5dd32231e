package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/asset"
	"fintrack/internal/shared/middleware"
)

type AssetHandler struct {
	service *asset.Service
}

func NewAssetHandler(service *asset.Service) *AssetHandler {
	return &AssetHandler{service: service}
}

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type CreateItemRequest struct {
	Name               string           `json:"name"`
	Description        *string          `json:"description,omitempty"`
	DepreciationAmount *decimal.Decimal `json:"depreciationAmount,omitempty"`
}

type UpdateItemRequest struct {
	Name               *string          `json:"name,omitempty"`
	Description        *string          `json:"description,omitempty"`
	Hidden             *bool            `json:"hidden,omitempty"`
	DepreciationAmount *decimal.Decimal `json:"depreciationAmount,omitempty"`
	ClearDepreciation  bool             `json:"clearDepreciation,omitempty"`
}

type UpsertValuationRequest struct {
	Month string          `json:"month"`
	Value decimal.Decimal `json:"value"`
}

type MonthRequest struct {
	Month string `json:"month"`
}

// HandleGroups routes /api/asset-groups
func (h *AssetHandler) HandleGroups(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	switch r.Method {
	case http.MethodGet:
		groups, err := h.service.ListGroups(r.Context(), userID)
		if err != nil {
			log.Printf("Error listing asset groups for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Failed to list asset groups")
			return
		}
		writeJSON(w, http.StatusOK, groups)
	case http.MethodPost:
		var req CreateGroupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "Group name is required")
			return
		}
		created, err := h.service.CreateGroup(r.Context(), asset.CreateGroupParams{
			UserID: userID,
			Name:   req.Name,
		})
		if err != nil {
			log.Printf("Error creating asset group for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Failed to create asset group")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleGroupByID routes /api/asset-groups/{id}
func (h *AssetHandler) HandleGroupByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid group ID")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req CreateGroupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "Group name is required")
			return
		}
		renamed, err := h.service.RenameGroup(r.Context(), id, userID, req.Name)
		if err != nil {
			h.writeGroupError(w, id, err, "rename")
			return
		}
		writeJSON(w, http.StatusOK, renamed)
	case http.MethodDelete:
		if err := h.service.DeleteGroup(r.Context(), id, userID); err != nil {
			h.writeGroupError(w, id, err, "delete")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleGroupItems routes POST /api/asset-groups/{id}/items
func (h *AssetHandler) HandleGroupItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	groupID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid group ID")
		return
	}

	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Item name is required")
		return
	}

	created, err := h.service.CreateRootItem(r.Context(), groupID, userID, asset.CreateItemParams{
		GroupID:            groupID,
		Name:               req.Name,
		Description:        req.Description,
		DepreciationAmount: req.DepreciationAmount,
	})
	if err != nil {
		if errors.Is(err, asset.ErrGroupNotFound) {
			writeError(w, http.StatusNotFound, "Asset group not found")
			return
		}
		log.Printf("Error creating asset item in group %d: %v", groupID, err)
		writeError(w, http.StatusInternalServerError, "Failed to create asset item")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleItemChildren routes POST /api/asset-items/{id}/children
func (h *AssetHandler) HandleItemChildren(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, itemID, ok := h.beginItem(w, r)
	if !ok {
		return
	}

	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Item name is required")
		return
	}

	created, err := h.service.CreateChildItem(r.Context(), itemID, userID, asset.CreateItemParams{
		Name:               req.Name,
		Description:        req.Description,
		DepreciationAmount: req.DepreciationAmount,
	})
	if err != nil {
		h.writeItemError(w, itemID, err, "create child under")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleItemByID routes /api/asset-items/{id}
func (h *AssetHandler) HandleItemByID(w http.ResponseWriter, r *http.Request) {
	userID, itemID, ok := h.beginItem(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req UpdateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		updated, err := h.service.UpdateItem(r.Context(), itemID, userID, asset.UpdateItemParams{
			Name:               req.Name,
			Description:        req.Description,
			Hidden:             req.Hidden,
			DepreciationAmount: req.DepreciationAmount,
			ClearDepreciation:  req.ClearDepreciation,
		})
		if err != nil {
			h.writeItemError(w, itemID, err, "update")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := h.service.DeleteItem(r.Context(), itemID, userID); err != nil {
			h.writeItemError(w, itemID, err, "delete")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleCollapse routes POST /api/asset-items/{id}/collapse
func (h *AssetHandler) HandleCollapse(w http.ResponseWriter, r *http.Request) {
	h.handleVisibility(w, r, h.service.Collapse)
}

// HandleExpand routes POST /api/asset-items/{id}/expand
func (h *AssetHandler) HandleExpand(w http.ResponseWriter, r *http.Request) {
	h.handleVisibility(w, r, h.service.Expand)
}

func (h *AssetHandler) handleVisibility(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, itemID, userID int64) (int64, error)) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, itemID, ok := h.beginItem(w, r)
	if !ok {
		return
	}

	updated, err := op(r.Context(), itemID, userID)
	if err != nil {
		h.writeItemError(w, itemID, err, "toggle")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

// HandleItemValuations routes POST /api/asset-items/{id}/valuations
func (h *AssetHandler) HandleItemValuations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, itemID, ok := h.beginItem(w, r)
	if !ok {
		return
	}

	var req UpsertValuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	month, err := asset.ParseMonth(req.Month)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := h.service.UpsertValuation(r.Context(), itemID, userID, month, req.Value)
	if err != nil {
		if errors.Is(err, asset.ErrNotLeaf) {
			writeError(w, http.StatusBadRequest, "Valuations are only allowed on leaf items")
			return
		}
		h.writeItemError(w, itemID, err, "value")
		return
	}

	writeJSON(w, http.StatusCreated, v)
}

// HandleValuations routes DELETE /api/asset-valuations?month=
func (h *AssetHandler) HandleValuations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	month, err := asset.ParseMonth(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := h.service.DeleteMonth(r.Context(), userID, month)
	if err != nil {
		log.Printf("Error deleting valuations for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete valuations")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// HandleApplyDepreciation routes POST /api/asset-valuations/apply-depreciation
func (h *AssetHandler) HandleApplyDepreciation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req MonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	month, err := asset.ParseMonth(req.Month)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	applied, err := h.service.ApplyDepreciation(r.Context(), userID, month)
	if err != nil {
		log.Printf("Error applying depreciation for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to apply depreciation")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"applied": applied})
}

// HandleSheet routes GET /api/asset-valuations/sheet
func (h *AssetHandler) HandleSheet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var pinned []time.Time
	if v := r.URL.Query().Get("months"); v != "" {
		for _, raw := range strings.Split(v, ",") {
			month, err := asset.ParseMonth(strings.TrimSpace(raw))
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			pinned = append(pinned, month)
		}
	}

	sheet, err := h.service.Sheet(r.Context(), userID, pinned)
	if err != nil {
		log.Printf("Error building valuation sheet for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to build valuation sheet")
		return
	}

	writeJSON(w, http.StatusOK, sheet)
}

// beginItem handles the shared auth and item id parsing.
func (h *AssetHandler) beginItem(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return 0, 0, false
	}

	itemID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item ID")
		return 0, 0, false
	}

	return userID, itemID, true
}

func (h *AssetHandler) writeGroupError(w http.ResponseWriter, id int64, err error, action string) {
	if errors.Is(err, asset.ErrGroupNotFound) {
		writeError(w, http.StatusNotFound, "Asset group not found")
		return
	}
	log.Printf("Error during asset group %s %d: %v", action, id, err)
	writeError(w, http.StatusInternalServerError, "Failed to "+action+" asset group")
}

func (h *AssetHandler) writeItemError(w http.ResponseWriter, id int64, err error, action string) {
	if errors.Is(err, asset.ErrItemNotFound) {
		writeError(w, http.StatusNotFound, "Asset item not found")
		return
	}
	log.Printf("Error during asset item %s %d: %v", action, id, err)
	writeError(w, http.StatusInternalServerError, "Failed to "+action+" asset item")
}
