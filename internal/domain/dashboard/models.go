package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/transaction"
)

// MonthTotal is one point of the net worth history.
type MonthTotal struct {
	Month time.Time       `json:"-"`
	Label string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// GroupTotal is one slice of the asset allocation chart.
type GroupTotal struct {
	GroupName string          `json:"group"`
	Total     decimal.Decimal `json:"total"`
}

// CategoryTotal is one slice of the expense breakdown.
type CategoryTotal struct {
	CategoryName string          `json:"category"`
	Total        decimal.Decimal `json:"total"`
}

// Summary is the dashboard payload.
type Summary struct {
	NetWorth           decimal.Decimal            `json:"netWorth"`
	NetWorthHistory    []MonthTotal               `json:"netWorthHistory"`
	AssetAllocation    []GroupTotal               `json:"assetAllocation"`
	CashFlowLast30Days decimal.Decimal            `json:"cashFlowLast30Days"`
	MonthlyExpenses    decimal.Decimal            `json:"monthlyExpenses"`
	ExpenseBreakdown   []CategoryTotal            `json:"expenseBreakdown"`
	RecentTransactions []*transaction.Transaction `json:"recentTransactions"`
	CashBalance        decimal.Decimal            `json:"cashBalance"`
}
