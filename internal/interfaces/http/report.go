package http

import (
	"log"
	"net/http"
	"time"

	"fintrack/internal/domain/report"
	"fintrack/internal/shared/middleware"
)

type ReportHandler struct {
	service *report.Service
	now     func() time.Time
}

func NewReportHandler(service *report.Service) *ReportHandler {
	return &ReportHandler{service: service, now: time.Now}
}

// reportRange reads the optional startDate/endDate query parameters.
func (h *ReportHandler) reportRange(r *http.Request) (report.Range, bool) {
	q := r.URL.Query()
	var start, end *time.Time

	if v := q.Get("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return report.Range{}, false
		}
		start = &t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return report.Range{}, false
		}
		end = &t
	}

	return report.NewRange(start, end, h.now()), true
}

func wantsCSV(r *http.Request) bool {
	return r.URL.Query().Get("format") == "csv"
}

func writeCSVHeader(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
}

// HandleCashflow routes GET /api/reports/cashflow and /api/reports/trends
func (h *ReportHandler) HandleCashflow(w http.ResponseWriter, r *http.Request) {
	userID, rng, ok := h.begin(w, r)
	if !ok {
		return
	}

	rows, err := h.service.Cashflow(r.Context(), userID, rng)
	if err != nil {
		log.Printf("Error building cashflow report for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}

	if wantsCSV(r) {
		writeCSVHeader(w, "cashflow.csv")
		if err := report.WriteCashflowCSV(w, rows); err != nil {
			log.Printf("Error writing cashflow CSV for user %d: %v", userID, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// HandleSpendingByCategory routes GET /api/reports/spending-by-category
func (h *ReportHandler) HandleSpendingByCategory(w http.ResponseWriter, r *http.Request) {
	userID, rng, ok := h.begin(w, r)
	if !ok {
		return
	}

	rows, err := h.service.SpendingByCategory(r.Context(), userID, rng)
	if err != nil {
		log.Printf("Error building spending report for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}

	if wantsCSV(r) {
		writeCSVHeader(w, "spending-by-category.csv")
		if err := report.WriteCategoryCSV(w, rows); err != nil {
			log.Printf("Error writing spending CSV for user %d: %v", userID, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// HandleMonthlyExpenses routes GET /api/reports/monthly-expenses
func (h *ReportHandler) HandleMonthlyExpenses(w http.ResponseWriter, r *http.Request) {
	userID, rng, ok := h.begin(w, r)
	if !ok {
		return
	}

	rows, err := h.service.MonthlyExpenses(r.Context(), userID, rng)
	if err != nil {
		log.Printf("Error building monthly expense report for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}

	if wantsCSV(r) {
		writeCSVHeader(w, "monthly-expenses.csv")
		if err := report.WriteMonthlyExpenseCSV(w, rows); err != nil {
			log.Printf("Error writing monthly expense CSV for user %d: %v", userID, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// HandleCategoryAnalysis routes GET /api/reports/category-analysis
func (h *ReportHandler) HandleCategoryAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, rng, ok := h.begin(w, r)
	if !ok {
		return
	}

	rows, err := h.service.CategoryAnalysis(r.Context(), userID, rng)
	if err != nil {
		log.Printf("Error building category analysis for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}

	if wantsCSV(r) {
		writeCSVHeader(w, "category-analysis.csv")
		if err := report.WriteAnalysisCSV(w, rows); err != nil {
			log.Printf("Error writing category analysis CSV for user %d: %v", userID, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// begin handles the shared method check, auth, and range parsing.
func (h *ReportHandler) begin(w http.ResponseWriter, r *http.Request) (int64, report.Range, bool) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return 0, report.Range{}, false
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return 0, report.Range{}, false
	}

	rng, ok := h.reportRange(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid date, expected RFC3339 or YYYY-MM-DD")
		return 0, report.Range{}, false
	}

	return userID, rng, true
}
