package searcher

import "drone/mission"

// Plan is the action sequence from the root to a leaf, with the leaf's score
// and state.
type Plan struct {
	Actions []mission.Action
	Score   float64
	Final   mission.State
}

// PlanTo walks parent links from leaf back to the root.
func PlanTo(leaf *Node) Plan {
	var actions []mission.Action
	for n := leaf; n.parent != nil; n = n.parent {
		actions = append(actions, n.action)
	}
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
	}
	return Plan{
		Actions: actions,
		Score:   leaf.score,
		Final:   leaf.state,
	}
}

// Labels renders the plan's actions, e.g. ["move_to_A()", "survey()"].
func (p Plan) Labels() []string {
	labels := make([]string, len(p.Actions))
	for i, a := range p.Actions {
		labels[i] = a.Label()
	}
	return labels
}

func (p Plan) Len() int {
	return len(p.Actions)
}
