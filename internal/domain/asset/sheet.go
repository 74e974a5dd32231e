package asset

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Sheet is the valuation spreadsheet: a descending month axis, one block
// per group with pre-order visible rows, and a net-worth footer.
type Sheet struct {
	Months []string     `json:"months"`
	Groups []SheetGroup `json:"groups"`
	Footer []FooterCell `json:"footer"`
}

// SheetGroup is a group header plus its visible item rows. Totals aggregate
// the group's visible root items, each with hidden descendants included,
// aligned with the month axis.
type SheetGroup struct {
	GroupID int64             `json:"groupId"`
	Name    string            `json:"name"`
	Totals  []decimal.Decimal `json:"totals"`
	Rows    []SheetRow        `json:"rows"`
}

// SheetRow is one visible item: depth-indented, with one cell per month.
// Cells aggregate hidden descendants too; hiding removes rows, never value.
// Direct marks months whose cell is a stored valuation rather than a
// derived sum, which is what makes a cell editable.
type SheetRow struct {
	ItemID int64             `json:"itemId"`
	Name   string            `json:"name"`
	Depth  int               `json:"depth"`
	Leaf   bool              `json:"leaf"`
	Cells  []decimal.Decimal `json:"cells"`
	Direct []bool            `json:"direct"`
}

// FooterCell is one month's net worth with growth against the next-older
// displayed month. Growth fields are nil on the oldest displayed month.
type FooterCell struct {
	Month     string           `json:"month"`
	NetWorth  decimal.Decimal  `json:"netWorth"`
	Growth    *decimal.Decimal `json:"growth"`
	GrowthPct *decimal.Decimal `json:"growthPct"`
	Intensity float64          `json:"intensity"`
}

var hundred = decimal.NewFromInt(100)

// Sheet builds the projection for a user. The month axis is the union of
// every month carrying a valuation, the current calendar month, and the
// months the caller explicitly pinned, sorted descending.
func (s *Service) Sheet(ctx context.Context, userID int64, pinned []time.Time) (*Sheet, error) {
	forest, groups, err := s.LoadForest(ctx, userID)
	if err != nil {
		return nil, err
	}

	months := monthAxis(forest, pinned, time.Now())

	sheet := &Sheet{
		Months: make([]string, len(months)),
		Groups: make([]SheetGroup, 0, len(groups)),
		Footer: make([]FooterCell, len(months)),
	}
	for i, m := range months {
		sheet.Months[i] = FormatMonth(m)
	}

	for _, g := range groups {
		sg := SheetGroup{
			GroupID: g.ID,
			Name:    g.Name,
			Totals:  make([]decimal.Decimal, len(months)),
		}
		for i, m := range months {
			sg.Totals[i] = forest.GroupTotal(g.ID, m)
		}

		for _, row := range forest.VisibleRows(g.ID) {
			sr := SheetRow{
				ItemID: row.Node.ID,
				Name:   row.Node.Name,
				Depth:  row.Depth,
				Leaf:   len(row.Node.Children) == 0,
				Cells:  make([]decimal.Decimal, len(months)),
				Direct: make([]bool, len(months)),
			}
			for i, m := range months {
				sr.Cells[i] = forest.ValueFor(row.Node.ID, m, true)
				_, sr.Direct[i] = row.Node.valuations[m]
			}
			sg.Rows = append(sg.Rows, sr)
		}

		sheet.Groups = append(sheet.Groups, sg)
	}

	for i, m := range months {
		cell := FooterCell{
			Month:    FormatMonth(m),
			NetWorth: forest.NetWorth(m),
		}

		// Months sort descending, so i+1 is the next-older displayed month
		if i+1 < len(months) {
			older := forest.NetWorth(months[i+1])
			growth := cell.NetWorth.Sub(older)
			cell.Growth = &growth

			// A zero base renders as 0%, not as an undefined percentage
			pct := decimal.Zero
			if !older.IsZero() {
				pct = growth.Div(older).Mul(hundred)
			}
			cell.GrowthPct = &pct
			cell.Intensity = growthIntensity(pct)
		}

		sheet.Footer[i] = cell
	}

	return sheet, nil
}

func monthAxis(forest *Forest, pinned []time.Time, now time.Time) []time.Time {
	seen := make(map[time.Time]struct{})
	for _, m := range forest.Months() {
		seen[m] = struct{}{}
	}
	seen[MonthOf(now)] = struct{}{}
	for _, m := range pinned {
		seen[MonthOf(m)] = struct{}{}
	}

	months := make([]time.Time, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].After(months[j]) })
	return months
}

// growthIntensity scales the growth color: full strength at ±10% and beyond.
// The sign carries direction, positive green and negative red.
func growthIntensity(pct decimal.Decimal) float64 {
	abs, _ := pct.Abs().Float64()
	intensity := abs / 10
	if intensity > 1 {
		intensity = 1
	}
	return intensity
}
