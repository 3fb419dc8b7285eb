package searcher

import "drone/mission"

// Node is a vertex of the decision tree. A node owns its children; parent is
// only used to walk back to the root when a plan is extracted.
type Node struct {
	state    mission.State
	action   mission.Action // action that led here, unset at the root
	parent   *Node
	children []*Node
	depth    int
	score    float64
	scored   bool
}

func (n *Node) State() mission.State {
	return n.state
}

// Action returns the action that produced this node. The root has none.
func (n *Node) Action() (mission.Action, bool) {
	if n.parent == nil {
		return mission.Action{}, false
	}
	return n.action, true
}

// Label is the action label, or "" at the root.
func (n *Node) Label() string {
	if a, ok := n.Action(); ok {
		return a.Label()
	}
	return ""
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children in enumeration order.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

func (n *Node) NumChildren() int {
	return len(n.children)
}

func (n *Node) Depth() int {
	return n.depth
}

func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Score returns the objective value of a leaf. ok is false for internal nodes.
func (n *Node) Score() (score float64, ok bool) {
	return n.score, n.scored
}
