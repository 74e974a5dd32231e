package report

import (
	"context"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Service contains the business logic for report generation
type Service struct {
	repo Repository
}

// NewService creates a new report service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Cashflow returns per-month income vs expense rows for the range.
func (s *Service) Cashflow(ctx context.Context, userID int64, r Range) ([]CashflowRow, error) {
	rows, err := s.repo.MonthlyCashflow(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []CashflowRow{}
	}
	return rows, nil
}

// SpendingByCategory returns category spend totals, highest first.
func (s *Service) SpendingByCategory(ctx context.Context, userID int64, r Range) ([]CategoryRow, error) {
	rows, err := s.repo.SpendingByCategory(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []CategoryRow{}
	}
	return rows, nil
}

// MonthlyExpenses returns per-month expense totals for the range.
func (s *Service) MonthlyExpenses(ctx context.Context, userID int64, r Range) ([]MonthlyExpenseRow, error) {
	rows, err := s.repo.MonthlyExpenses(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []MonthlyExpenseRow{}
	}
	return rows, nil
}

// CategoryAnalysis pairs each category total with the shared scale maximum,
// floored at 1 so an all-zero range still renders.
func (s *Service) CategoryAnalysis(ctx context.Context, userID int64, r Range) ([]AnalysisRow, error) {
	categories, err := s.SpendingByCategory(ctx, userID, r)
	if err != nil {
		return nil, err
	}

	maxValue := one
	for _, c := range categories {
		if c.Total.GreaterThan(maxValue) {
			maxValue = c.Total
		}
	}

	rows := make([]AnalysisRow, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, AnalysisRow{
			Category: c.Category,
			Total:    c.Total,
			MaxValue: maxValue,
		})
	}
	return rows, nil
}
