package http

import (
	"log"
	"net/http"

	"fintrack/internal/domain/dashboard"
	"fintrack/internal/shared/middleware"
)

type DashboardHandler struct {
	service *dashboard.Service
}

func NewDashboardHandler(service *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// HandleSummary routes GET /api/dashboard/summary
func (h *DashboardHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		log.Printf("Error building dashboard summary for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to build dashboard summary")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
