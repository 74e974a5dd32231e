package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/report"
)

// MockReportRepo implements report.Repository for testing
type MockReportRepo struct {
	MonthlyCashflowFunc    func(ctx context.Context, userID int64, r report.Range) ([]report.CashflowRow, error)
	SpendingByCategoryFunc func(ctx context.Context, userID int64, r report.Range) ([]report.CategoryRow, error)
	MonthlyExpensesFunc    func(ctx context.Context, userID int64, r report.Range) ([]report.MonthlyExpenseRow, error)
}

func (m *MockReportRepo) MonthlyCashflow(ctx context.Context, userID int64, r report.Range) ([]report.CashflowRow, error) {
	if m.MonthlyCashflowFunc != nil {
		return m.MonthlyCashflowFunc(ctx, userID, r)
	}
	return nil, nil
}

func (m *MockReportRepo) SpendingByCategory(ctx context.Context, userID int64, r report.Range) ([]report.CategoryRow, error) {
	if m.SpendingByCategoryFunc != nil {
		return m.SpendingByCategoryFunc(ctx, userID, r)
	}
	return nil, nil
}

func (m *MockReportRepo) MonthlyExpenses(ctx context.Context, userID int64, r report.Range) ([]report.MonthlyExpenseRow, error) {
	if m.MonthlyExpensesFunc != nil {
		return m.MonthlyExpensesFunc(ctx, userID, r)
	}
	return nil, nil
}

func newReportHandler(repo *MockReportRepo) *ReportHandler {
	h := NewReportHandler(report.NewService(repo))
	h.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }
	return h
}

func TestHandleCashflow_JSON(t *testing.T) {
	repo := &MockReportRepo{
		MonthlyCashflowFunc: func(ctx context.Context, userID int64, r report.Range) ([]report.CashflowRow, error) {
			return []report.CashflowRow{
				{Period: "2026-07", Income: decimal.NewFromInt(3000), Expense: decimal.NewFromInt(2100)},
				{Period: "2026-08", Income: decimal.NewFromInt(3000), Expense: decimal.NewFromInt(1800)},
			}, nil
		},
	}
	handler := newReportHandler(repo)

	req := authedRequest(http.MethodGet, "/api/reports/cashflow", nil)
	rr := httptest.NewRecorder()
	handler.HandleCashflow(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}

	var rows []report.CashflowRow
	json.NewDecoder(rr.Body).Decode(&rows)
	if len(rows) != 2 {
		t.Errorf("got %d rows, want 2", len(rows))
	}
}

func TestHandleCashflow_CSV(t *testing.T) {
	repo := &MockReportRepo{
		MonthlyCashflowFunc: func(ctx context.Context, userID int64, r report.Range) ([]report.CashflowRow, error) {
			return []report.CashflowRow{
				{Period: "2026-08", Income: decimal.NewFromInt(3000), Expense: decimal.NewFromFloat(1800.50)},
			}, nil
		},
	}
	handler := newReportHandler(repo)

	req := authedRequest(http.MethodGet, "/api/reports/cashflow?format=csv", nil)
	rr := httptest.NewRecorder()
	handler.HandleCashflow(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q, want text/csv", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "cashflow.csv") {
		t.Errorf("content disposition = %q, want cashflow.csv attachment", cd)
	}

	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), rr.Body.String())
	}
	if !strings.Contains(lines[1], "2026-08") {
		t.Errorf("data line = %q, want period 2026-08", lines[1])
	}
}

func TestHandleReports_RangeParsing(t *testing.T) {
	var captured report.Range
	repo := &MockReportRepo{
		MonthlyExpensesFunc: func(ctx context.Context, userID int64, r report.Range) ([]report.MonthlyExpenseRow, error) {
			captured = r
			return nil, nil
		},
	}
	handler := newReportHandler(repo)

	req := authedRequest(http.MethodGet, "/api/reports/monthly-expenses?startDate=2026-03-01&endDate=2026-05-31", nil)
	rr := httptest.NewRecorder()
	handler.HandleMonthlyExpenses(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	if !captured.Start.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v, want 2026-03-01 day start", captured.Start)
	}
	if captured.End.Day() != 31 || captured.End.Hour() != 23 {
		t.Errorf("end = %v, want 2026-05-31 day end", captured.End)
	}
}

func TestHandleReports_BadDate(t *testing.T) {
	handler := newReportHandler(&MockReportRepo{})

	req := authedRequest(http.MethodGet, "/api/reports/spending-by-category?startDate=March", nil)
	rr := httptest.NewRecorder()
	handler.HandleSpendingByCategory(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestHandleCategoryAnalysis_SharedScale(t *testing.T) {
	repo := &MockReportRepo{
		SpendingByCategoryFunc: func(ctx context.Context, userID int64, r report.Range) ([]report.CategoryRow, error) {
			return []report.CategoryRow{
				{Category: "Rent", Total: decimal.NewFromInt(1200)},
				{Category: "Groceries", Total: decimal.NewFromInt(400)},
			}, nil
		},
	}
	handler := newReportHandler(repo)

	req := authedRequest(http.MethodGet, "/api/reports/category-analysis", nil)
	rr := httptest.NewRecorder()
	handler.HandleCategoryAnalysis(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var rows []report.AnalysisRow
	json.NewDecoder(rr.Body).Decode(&rows)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for _, row := range rows {
		if !row.MaxValue.Equal(decimal.NewFromInt(1200)) {
			t.Errorf("row %s maxValue = %s, want 1200", row.Category, row.MaxValue)
		}
	}
}
