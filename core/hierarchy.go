package core

import (
	"fmt"

	"github.com/huangsam/pivotrend/core/agg"
	"github.com/huangsam/pivotrend/schema"
)

// Node is one level of the category hierarchy.
// Internal nodes hold Children; nodes at the last level hold the Series of period values.
type Node struct {
	Children *OrderedMap[*Node]
	Series   *OrderedMap[*float64]
}

// IsLeaf reports whether the node holds a period series.
func (n *Node) IsLeaf() bool {
	return n.Series != nil
}

func newNode(leaf bool) *Node {
	if leaf {
		return &Node{Series: NewOrderedMap[*float64]()}
	}
	return &Node{Children: NewOrderedMap[*Node]()}
}

// child returns the child under key, creating it on demand.
func (n *Node) child(key string, leaf bool) *Node {
	if c, ok := n.Children.Get(key); ok {
		return c
	}
	c := newNode(leaf)
	n.Children.Set(key, c)
	return c
}

// Hierarchy is the nested grouping of one batch of records.
type Hierarchy struct {
	Root  *Node
	Depth int // number of category levels below the root; the period column is not a level
}

// BuildHierarchy folds sorted records into a hierarchy keyed by categories 1..k-1,
// storing each value under its period at the last level. A repeated (path, period)
// pair overwrites the earlier value.
func BuildHierarchy(records []schema.FlatRecord, categoryCount int) (*Hierarchy, error) {
	if categoryCount < 1 {
		return nil, fmt.Errorf("%w: no category columns", agg.ErrShapeMismatch)
	}
	depth := categoryCount - 1
	h := &Hierarchy{Root: newNode(depth == 0), Depth: depth}

	for _, r := range records {
		if len(r.Categories) != categoryCount {
			return nil, fmt.Errorf("%w: record %d has %d categories, expected %d",
				agg.ErrShapeMismatch, r.Index, len(r.Categories), categoryCount)
		}
		node := h.Root
		for d := 1; d <= depth; d++ {
			node = node.child(r.Categories[d], d == depth)
		}
		node.Series.Set(r.Period(), r.Value)
	}
	return h, nil
}
