package searcher

import (
	"errors"
	"math"

	"drone/experiments/metrics"
)

var ErrEmptyTree = errors.New("decision tree has no nodes")

// Tree is a fully expanded decision tree.
type Tree struct {
	root      *Node
	size      int
	leaves    int
	truncated bool
	metric    metrics.SearchMetric
}

func (t *Tree) Root() *Node {
	return t.root
}

// Size is the number of nodes in the tree, root included.
func (t *Tree) Size() int {
	return t.size
}

func (t *Tree) Leaves() int {
	return t.leaves
}

// Truncated reports whether the node ceiling stopped expansion early.
func (t *Tree) Truncated() bool {
	return t.truncated
}

func (t *Tree) Metric() metrics.SearchMetric {
	return t.metric
}

// Walk visits every node in pre-order, children in enumeration order.
func (t *Tree) Walk(visit func(*Node)) {
	if t == nil || t.root == nil {
		return
	}
	stack := []*Node{t.root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(node)
		for i := len(node.children) - 1; i >= 0; i-- {
			stack = append(stack, node.children[i])
		}
	}
}

// BestLeaf returns the highest scoring leaf. Of several leaves with the same
// score, the first in enumeration order wins. A NaN score never displaces a
// comparable one.
func (t *Tree) BestLeaf() (*Node, error) {
	if t == nil || t.root == nil {
		return nil, ErrEmptyTree
	}
	var best *Node
	t.Walk(func(n *Node) {
		if !n.IsLeaf() {
			return
		}
		if best == nil || better(n.score, best.score) {
			best = n
		}
	})
	return best, nil
}

func better(candidate, incumbent float64) bool {
	if math.IsNaN(incumbent) {
		return !math.IsNaN(candidate)
	}
	return candidate > incumbent
}

// Plan extracts the action sequence leading to the best leaf.
func (t *Tree) Plan() (Plan, error) {
	leaf, err := t.BestLeaf()
	if err != nil {
		return Plan{}, err
	}
	return PlanTo(leaf), nil
}
