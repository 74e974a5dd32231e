package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/manualasset"
	"fintrack/internal/shared/middleware"
)

type ManualAssetHandler struct {
	service *manualasset.Service
}

func NewManualAssetHandler(service *manualasset.Service) *ManualAssetHandler {
	return &ManualAssetHandler{service: service}
}

type CreateManualAssetRequest struct {
	Name           string           `json:"name"`
	Type           string           `json:"type"`
	EstimatedValue decimal.Decimal  `json:"estimatedValue"`
	AssociatedDebt *decimal.Decimal `json:"associatedDebt,omitempty"`
}

type UpdateManualAssetRequest struct {
	Name           *string          `json:"name,omitempty"`
	Type           *string          `json:"type,omitempty"`
	EstimatedValue *decimal.Decimal `json:"estimatedValue,omitempty"`
	AssociatedDebt *decimal.Decimal `json:"associatedDebt,omitempty"`
}

// HandleManualAssets routes /api/manual-assets
func (h *ManualAssetHandler) HandleManualAssets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	switch r.Method {
	case http.MethodGet:
		assets, err := h.service.ListAssets(r.Context(), userID)
		if err != nil {
			log.Printf("Error listing manual assets for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Failed to list manual assets")
			return
		}
		writeJSON(w, http.StatusOK, assets)
	case http.MethodPost:
		var req CreateManualAssetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "Asset name is required")
			return
		}
		if req.Type == "" {
			writeError(w, http.StatusBadRequest, "Asset type is required")
			return
		}

		params := manualasset.CreateParams{
			UserID:         userID,
			Name:           req.Name,
			AssetType:      req.Type,
			EstimatedValue: req.EstimatedValue,
		}
		if req.AssociatedDebt != nil {
			params.AssociatedDebt = *req.AssociatedDebt
		}

		created, err := h.service.CreateAsset(r.Context(), params)
		if err != nil {
			log.Printf("Error creating manual asset for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Failed to create manual asset")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleManualAssetByID routes /api/manual-assets/{id}
func (h *ManualAssetHandler) HandleManualAssetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid asset ID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		asset, err := h.service.GetAsset(r.Context(), id, userID)
		if err != nil {
			h.writeAssetError(w, id, err, "get")
			return
		}
		writeJSON(w, http.StatusOK, asset)
	case http.MethodPut:
		var req UpdateManualAssetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		updated, err := h.service.UpdateAsset(r.Context(), id, userID, manualasset.UpdateParams{
			Name:           req.Name,
			AssetType:      req.Type,
			EstimatedValue: req.EstimatedValue,
			AssociatedDebt: req.AssociatedDebt,
		})
		if err != nil {
			h.writeAssetError(w, id, err, "update")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := h.service.DeleteAsset(r.Context(), id, userID); err != nil {
			h.writeAssetError(w, id, err, "delete")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *ManualAssetHandler) writeAssetError(w http.ResponseWriter, id int64, err error, action string) {
	if errors.Is(err, manualasset.ErrAssetNotFound) {
		writeError(w, http.StatusNotFound, "Manual asset not found")
		return
	}
	log.Printf("Error during manual asset %s %d: %v", action, id, err)
	writeError(w, http.StatusInternalServerError, "Failed to "+action+" manual asset")
}
