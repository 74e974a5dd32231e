package asset

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sheetRepo(groups []*Group, items []*Item, valuations []*Valuation) *mockRepo {
	return &mockRepo{
		listGroupsFn: func(ctx context.Context, userID int64) ([]*Group, error) {
			return groups, nil
		},
		listItemsFn: func(ctx context.Context, userID int64) ([]*Item, error) {
			return items, nil
		},
		listValuationsFn: func(ctx context.Context, userID int64) ([]*Valuation, error) {
			return valuations, nil
		},
	}
}

func TestSheet_MonthAxisUnionDescending(t *testing.T) {
	svc := NewService(sheetRepo(
		[]*Group{{ID: 1, UserID: 7, Name: "Property"}},
		[]*Item{{ID: 1, GroupID: 1, Name: "house"}},
		[]*Valuation{
			{ItemID: 1, Month: month(2024, time.November), Value: dec("100")},
			{ItemID: 1, Month: month(2025, time.January), Value: dec("90")},
		},
	))

	pinned := []time.Time{month(2024, time.June)}
	sheet, err := svc.Sheet(context.Background(), 7, pinned)
	require.NoError(t, err)

	current := FormatMonth(MonthOf(time.Now()))
	require.Contains(t, sheet.Months, current)
	require.Contains(t, sheet.Months, "2024-11-01")
	require.Contains(t, sheet.Months, "2025-01-01")
	require.Contains(t, sheet.Months, "2024-06-01")

	for i := 1; i < len(sheet.Months); i++ {
		assert.Greater(t, sheet.Months[i-1], sheet.Months[i], "months must sort descending")
	}
}

func TestSheet_GroupTotalsAndRows(t *testing.T) {
	m := month(2025, time.March)
	items := []*Item{
		{ID: 1, GroupID: 1, Name: "house"},
		{ID: 2, GroupID: 1, ParentID: i64(1), Name: "structure", Hidden: true},
		{ID: 3, GroupID: 1, ParentID: i64(1), Name: "contents"},
	}
	svc := NewService(sheetRepo(
		[]*Group{{ID: 1, UserID: 7, Name: "Property"}},
		items,
		[]*Valuation{
			{ItemID: 2, Month: m, Value: dec("300")},
			{ItemID: 3, Month: m, Value: dec("40")},
		},
	))

	sheet, err := svc.Sheet(context.Background(), 7, []time.Time{m})
	require.NoError(t, err)
	require.Len(t, sheet.Groups, 1)

	g := sheet.Groups[0]
	idx := indexOf(sheet.Months, "2025-03-01")
	require.GreaterOrEqual(t, idx, 0)

	// Header total includes the hidden structure item
	assert.True(t, dec("340").Equal(g.Totals[idx]))

	// Hidden rows are not rendered, but the parent's cell still carries their value
	names := make([]string, len(g.Rows))
	for i, r := range g.Rows {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"house", "contents"}, names)
	assert.True(t, dec("340").Equal(g.Rows[0].Cells[idx]))

	// Direct flags mark stored valuations only
	assert.False(t, g.Rows[0].Direct[idx])
	assert.True(t, g.Rows[1].Direct[idx])
}

func TestSheet_FooterGrowth(t *testing.T) {
	older := month(2025, time.February)
	newer := month(2025, time.March)
	svc := NewService(sheetRepo(
		[]*Group{{ID: 1, UserID: 7, Name: "Property"}},
		[]*Item{{ID: 1, GroupID: 1, Name: "house"}},
		[]*Valuation{
			{ItemID: 1, Month: older, Value: dec("200")},
			{ItemID: 1, Month: newer, Value: dec("210")},
		},
	))

	sheet, err := svc.Sheet(context.Background(), 7, nil)
	require.NoError(t, err)

	idx := indexOf(sheet.Months, "2025-03-01")
	require.GreaterOrEqual(t, idx, 0)
	cell := sheet.Footer[idx]

	assert.True(t, dec("210").Equal(cell.NetWorth))
	require.NotNil(t, cell.Growth)
	assert.True(t, dec("10").Equal(*cell.Growth))
	require.NotNil(t, cell.GrowthPct)
	assert.True(t, dec("5").Equal(*cell.GrowthPct))
	assert.InDelta(t, 0.5, cell.Intensity, 1e-9)

	// The oldest displayed month has nothing to compare against
	oldest := sheet.Footer[len(sheet.Footer)-1]
	assert.Nil(t, oldest.Growth)
	assert.Nil(t, oldest.GrowthPct)
}

func TestSheet_FooterGrowthAgainstZeroOlderMonth(t *testing.T) {
	older := month(2025, time.February)
	newer := month(2025, time.March)
	svc := NewService(sheetRepo(
		[]*Group{{ID: 1, UserID: 7, Name: "Property"}},
		[]*Item{{ID: 1, GroupID: 1, Name: "house"}},
		[]*Valuation{
			{ItemID: 1, Month: older, Value: dec("0")},
			{ItemID: 1, Month: newer, Value: dec("50")},
		},
	))

	sheet, err := svc.Sheet(context.Background(), 7, nil)
	require.NoError(t, err)

	idx := indexOf(sheet.Months, "2025-03-01")
	cell := sheet.Footer[idx]
	require.NotNil(t, cell.Growth)
	assert.True(t, dec("50").Equal(*cell.Growth))
	require.NotNil(t, cell.GrowthPct)
	assert.True(t, cell.GrowthPct.IsZero(), "a zero base renders as 0%")
	assert.InDelta(t, 0.0, cell.Intensity, 1e-9)
}

func TestSheet_CollapsedSubtreeKeepsParentCellValue(t *testing.T) {
	m := month(2025, time.March)
	items := []*Item{
		{ID: 1, GroupID: 1, Name: "house"},
		{ID: 2, GroupID: 1, ParentID: i64(1), Name: "structure", Hidden: true},
		{ID: 3, GroupID: 1, ParentID: i64(1), Name: "contents"},
	}
	svc := NewService(sheetRepo(
		[]*Group{{ID: 1, UserID: 7, Name: "Property"}},
		items,
		[]*Valuation{
			{ItemID: 2, Month: m, Value: dec("300")},
			{ItemID: 3, Month: m, Value: dec("40")},
		},
	))

	sheet, err := svc.Sheet(context.Background(), 7, []time.Time{m})
	require.NoError(t, err)

	idx := indexOf(sheet.Months, "2025-03-01")
	require.GreaterOrEqual(t, idx, 0)

	// Hiding affects which rows render, never the rendered values
	house := sheet.Groups[0].Rows[0]
	require.Equal(t, "house", house.Name)
	assert.True(t, dec("340").Equal(house.Cells[idx]))
}

func TestSheet_HiddenRootExcludedFromGroupTotal(t *testing.T) {
	m := month(2025, time.March)
	svc := NewService(sheetRepo(
		[]*Group{{ID: 1, UserID: 7, Name: "Property"}},
		[]*Item{{ID: 1, GroupID: 1, Name: "house", Hidden: true}},
		[]*Valuation{{ItemID: 1, Month: m, Value: dec("100")}},
	))

	sheet, err := svc.Sheet(context.Background(), 7, []time.Time{m})
	require.NoError(t, err)

	idx := indexOf(sheet.Months, "2025-03-01")
	require.GreaterOrEqual(t, idx, 0)

	g := sheet.Groups[0]
	assert.True(t, g.Totals[idx].IsZero(), "hidden roots do not count toward the header")
	assert.Empty(t, g.Rows)
}

func TestGrowthIntensity(t *testing.T) {
	assert.InDelta(t, 0.3, growthIntensity(dec("3")), 1e-9)
	assert.InDelta(t, 0.3, growthIntensity(dec("-3")), 1e-9)
	assert.InDelta(t, 1.0, growthIntensity(dec("10")), 1e-9)
	assert.InDelta(t, 1.0, growthIntensity(dec("250")), 1e-9)
	assert.InDelta(t, 0.0, growthIntensity(decimal.Zero), 1e-9)
}

func indexOf(months []string, want string) int {
	for i, m := range months {
		if m == want {
			return i
		}
	}
	return -1
}
