package core

import (
	"slices"

	"github.com/huangsam/pivotrend/core/algo"
	"github.com/huangsam/pivotrend/schema"
)

// Emitter walks a Hierarchy depth-first and produces the table rows.
// Records must be the flat array the hierarchy was built from; subtotal
// values are re-scanned from it.
type Emitter struct {
	Periods        []string // newest first
	Depth          int      // hierarchy depth H
	SubtotalDepths []int
	Records        []schema.FlatRecord
	LeafTrend      bool
	Missing        schema.MissingMode
	Precision      int
}

// hasSubtotal reports whether a subtotal row follows each child at depth.
func (e *Emitter) hasSubtotal(depth int) bool {
	return depth >= 0 && depth < e.Depth && slices.Contains(e.SubtotalDepths, depth)
}

// Emit resets tracker and returns every row of the table in emission order.
func (e *Emitter) Emit(root *Node, tracker *Totals) []schema.TableRow {
	tracker.Reset()
	if root.IsLeaf() {
		return []schema.TableRow{e.leafRow(root, nil, 0, tracker)}
	}
	return e.emitNode(root, 0, nil, 0, tracker)
}

func (e *Emitter) emitNode(node *Node, depth int, path []string, parity int, tracker *Totals) []schema.TableRow {
	var rows []schema.TableRow
	for key, child := range node.Children.All() {
		if depth == 0 {
			parity = 1 - parity
		}
		childPath := append(slices.Clone(path), key)

		var childRows []schema.TableRow
		if child.IsLeaf() {
			childRows = []schema.TableRow{e.leafRow(child, childPath, parity, tracker)}
		} else {
			childRows = e.emitNode(child, depth+1, childPath, parity, tracker)
		}

		header := schema.Cell{
			Kind:    schema.HeaderCell,
			Text:    key,
			RowSpan: e.span(child, depth),
			Depth:   depth,
			Parity:  parity,
		}
		if len(childRows) == 0 {
			childRows = []schema.TableRow{{Kind: schema.DataRow, Path: childPath}}
		}
		childRows[0].Cells = append([]schema.Cell{header}, childRows[0].Cells...)
		rows = append(rows, childRows...)

		if e.hasSubtotal(depth) {
			rows = append(rows, e.subtotalRow(key, depth, childPath, parity))
		}
	}
	return rows
}

// span is the number of rows the header of child (sitting at depth) covers.
func (e *Emitter) span(child *Node, depth int) int {
	span := 1
	if depth != e.Depth-1 {
		span = e.rowCount(child, depth+1)
	}
	if span == 0 {
		span = 1
	}
	if e.hasSubtotal(depth) {
		span++
	}
	return span
}

// rowCount is a full recursive count of the rows a subtree emits, including
// nested subtotal rows.
func (e *Emitter) rowCount(node *Node, depth int) int {
	if node.IsLeaf() {
		return 1
	}
	n := 0
	for _, child := range node.Children.All() {
		n += e.rowCount(child, depth+1)
		if e.hasSubtotal(depth) {
			n++
		}
	}
	return n
}

func (e *Emitter) leafRow(leaf *Node, path []string, parity int, tracker *Totals) schema.TableRow {
	row := schema.TableRow{Kind: schema.DataRow, Path: path}
	for _, p := range e.Periods {
		v, _ := leaf.Series.Get(p)
		row.Cells = append(row.Cells, e.valueCell(schema.ValueCell, p, v, parity))
	}
	if e.LeafTrend {
		values, ok := algo.RecentTrendInput(e.Periods, func(p string) *float64 {
			v, _ := leaf.Series.Get(p)
			return v
		})
		row.Cells = append(row.Cells, e.trendCell(values, ok, parity))
	}

	topKey := ""
	if len(path) > 0 {
		topKey = path[0]
	}
	tracker.AddLeaf(topKey, leaf.Series, e.Periods)
	return row
}

// subtotalRow sums every record whose period matches and whose category at
// depth+1 equals key. The match is not restricted to the current path.
func (e *Emitter) subtotalRow(key string, depth int, path []string, parity int) schema.TableRow {
	row := schema.TableRow{Kind: schema.SubtotalRow, Path: path}
	row.Cells = append(row.Cells, schema.Cell{
		Kind:    schema.LabelCell,
		Text:    schema.SubtotalLabelPrefix + key,
		ColSpan: max(e.Depth-1-depth, 0), // 0 at the last level
		Depth:   depth + 1,
		Parity:  parity,
	})

	sums := make(map[string]float64, len(e.Periods))
	for _, r := range e.Records {
		if depth+1 < len(r.Categories) && r.Categories[depth+1] == key {
			sums[r.Period()] += schema.ValueOrZero(r.Value)
		}
	}
	for _, p := range e.Periods {
		v := sums[p]
		row.Cells = append(row.Cells, e.valueCell(schema.TotalCell, p, &v, parity))
	}
	if e.LeafTrend {
		values, ok := algo.RecentTrendInput(e.Periods, func(p string) *float64 {
			v := sums[p]
			return &v
		})
		row.Cells = append(row.Cells, e.trendCell(values, ok, parity))
	}
	return row
}

func (e *Emitter) valueCell(kind schema.CellKind, period string, v *float64, parity int) schema.Cell {
	cell := schema.Cell{Kind: kind, Period: period, Depth: e.Depth, Parity: parity}
	if v == nil {
		cell.Text = schema.Placeholder(e.Missing)
		return cell
	}
	val := *v
	cell.Value = &val
	cell.Text = schema.FormatValue(val, e.Precision)
	return cell
}

// trendCell renders NotComputable explicitly, while Incomplete input yields an
// empty placeholder that only keeps the column count.
func (e *Emitter) trendCell(values []float64, ok bool, parity int) schema.Cell {
	cell := schema.Cell{Kind: schema.TrendCell, Depth: e.Depth, Parity: parity}
	label := schema.Incomplete
	if ok {
		label = algo.ClassifyTrend(values)
	}
	cell.Trend = label
	if label == schema.Incomplete {
		cell.Suppressed = true
		return cell
	}
	cell.Text = label.Display()
	return cell
}
