package asset

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Node is an item resolved into the in-memory forest, with direct children
// and valuations indexed by month.
type Node struct {
	*Item
	Children   []*Node
	valuations map[time.Time]decimal.Decimal
}

// Forest holds one user's full asset tree, built from a flat item and
// valuation fetch. All aggregation reads run against this structure.
type Forest struct {
	nodes map[int64]*Node
	roots map[int64][]*Node // group id → root nodes
}

// BuildForest links flat items into trees keyed by parent references and
// attaches valuations. Item and child ordering follows the input slice,
// which repositories return in creation order.
func BuildForest(items []*Item, valuations []*Valuation) *Forest {
	f := &Forest{
		nodes: make(map[int64]*Node, len(items)),
		roots: make(map[int64][]*Node),
	}

	for _, it := range items {
		f.nodes[it.ID] = &Node{
			Item:       it,
			valuations: make(map[time.Time]decimal.Decimal),
		}
	}

	for _, it := range items {
		n := f.nodes[it.ID]
		if it.ParentID != nil {
			if parent, ok := f.nodes[*it.ParentID]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		f.roots[it.GroupID] = append(f.roots[it.GroupID], n)
	}

	for _, v := range valuations {
		if n, ok := f.nodes[v.ItemID]; ok {
			n.valuations[MonthOf(v.Month)] = v.Value
		}
	}

	return f
}

// Node returns the node for an item id, or nil.
func (f *Forest) Node(itemID int64) *Node {
	return f.nodes[itemID]
}

// Roots returns the root nodes of a group in creation order.
func (f *Forest) Roots(groupID int64) []*Node {
	return f.roots[groupID]
}

// ValueFor computes an item's value for a month. A stored valuation for the
// exact month is authoritative and returned verbatim. Otherwise the value is
// the sum over children, skipping hidden ones unless includeHidden is set.
// A leaf with no stored valuation contributes zero. Parent chains are
// trusted to be acyclic; a malformed cycle recurses without bound.
func (f *Forest) ValueFor(itemID int64, month time.Time, includeHidden bool) decimal.Decimal {
	n := f.nodes[itemID]
	if n == nil {
		return decimal.Zero
	}
	return f.valueOf(n, MonthOf(month), includeHidden)
}

func (f *Forest) valueOf(n *Node, month time.Time, includeHidden bool) decimal.Decimal {
	if v, ok := n.valuations[month]; ok {
		return v
	}

	total := decimal.Zero
	for _, child := range n.Children {
		if child.Hidden && !includeHidden {
			continue
		}
		total = total.Add(f.valueOf(child, month, includeHidden))
	}
	return total
}

// GroupTotal sums a group's visible root items for a month, the aggregate
// shown on group header rows. Like NetWorth, hidden roots are excluded but
// hidden descendants of visible roots still contribute.
func (f *Forest) GroupTotal(groupID int64, month time.Time) decimal.Decimal {
	m := MonthOf(month)
	total := decimal.Zero
	for _, root := range f.roots[groupID] {
		if root.Hidden {
			continue
		}
		total = total.Add(f.valueOf(root, m, true))
	}
	return total
}

// NetWorth sums every group's visible root items for a month. Hidden roots
// are excluded from the total but hidden descendants of visible roots still
// contribute.
func (f *Forest) NetWorth(month time.Time) decimal.Decimal {
	m := MonthOf(month)
	total := decimal.Zero
	for _, roots := range f.roots {
		for _, root := range roots {
			if root.Hidden {
				continue
			}
			total = total.Add(f.valueOf(root, m, true))
		}
	}
	return total
}

// Months returns every distinct month carrying at least one valuation.
func (f *Forest) Months() []time.Time {
	seen := make(map[time.Time]struct{})
	for _, n := range f.nodes {
		for m := range n.valuations {
			seen[m] = struct{}{}
		}
	}

	months := make([]time.Time, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months
}

// VisibleRow is one pre-order row of a group's tree: the node plus its
// indentation depth.
type VisibleRow struct {
	Node  *Node
	Depth int
}

// VisibleRows walks a group's tree pre-order, parents before children,
// skipping hidden nodes and their subtrees.
func (f *Forest) VisibleRows(groupID int64) []VisibleRow {
	var rows []VisibleRow
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if n.Hidden {
			return
		}
		rows = append(rows, VisibleRow{Node: n, Depth: depth})
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	for _, root := range f.roots[groupID] {
		walk(root, 0)
	}
	return rows
}
