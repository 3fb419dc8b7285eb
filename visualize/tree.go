package visualize

import "drone/searcher"

// RootName labels the root of an exported tree.
const RootName = "Start"

// Record is the exported form of a tree node, shaped for d3.hierarchy.
type Record struct {
	Name     string   `json:"name"`
	Score    *float64 `json:"score,omitempty"`
	Best     bool     `json:"best,omitempty"`
	Children []Record `json:"children"`
}

// FromTree converts the decision tree into nested records. Nodes on the path
// to best are flagged; best may be nil.
func FromTree(root, best *searcher.Node) Record {
	onPath := make(map[*searcher.Node]bool)
	for n := best; n != nil; n = n.Parent() {
		onPath[n] = true
	}
	return convert(root, onPath)
}

func convert(n *searcher.Node, onPath map[*searcher.Node]bool) Record {
	rec := Record{
		Name:     n.Label(),
		Best:     onPath[n],
		Children: make([]Record, 0, n.NumChildren()),
	}
	if rec.Name == "" {
		rec.Name = RootName
	}
	if score, ok := n.Score(); ok {
		rec.Score = &score
	}
	for _, child := range n.Children() {
		rec.Children = append(rec.Children, convert(child, onPath))
	}
	return rec
}

// Count returns the number of records in the subtree.
func (r Record) Count() int {
	n := 1
	for _, c := range r.Children {
		n += c.Count()
	}
	return n
}
