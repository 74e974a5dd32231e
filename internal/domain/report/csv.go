package report

import (
	"encoding/csv"
	"io"
)

// WriteCashflowCSV renders cashflow rows as period,income,expense.
func WriteCashflowCSV(w io.Writer, rows []CashflowRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"period", "income", "expense"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Period, r.Income.String(), r.Expense.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCategoryCSV renders category rows as category,total.
func WriteCategoryCSV(w io.Writer, rows []CategoryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "total"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Category, r.Total.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMonthlyExpenseCSV renders monthly expense rows as month,total.
func WriteMonthlyExpenseCSV(w io.Writer, rows []MonthlyExpenseRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "total"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Month, r.Total.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAnalysisCSV renders analysis rows as category,total,maxValue.
func WriteAnalysisCSV(w io.Writer, rows []AnalysisRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "total", "maxValue"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Category, r.Total.String(), r.MaxValue.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
