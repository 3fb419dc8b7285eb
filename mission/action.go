package mission

import (
	"errors"
	"fmt"
	"strings"
)

// ActionType represents the kind of action the drone can perform.
type ActionType int

const (
	MoveAction ActionType = iota
	SurveyAction
)

// Action is a single step of a plan. Target is only set for moves.
type Action struct {
	Type   ActionType
	Target Location
}

var ErrBadLabel = errors.New("unrecognized action label")

const movePrefix = "move_to_"

func MoveTo(target Location) Action {
	return Action{Type: MoveAction, Target: target}
}

func Survey() Action {
	return Action{Type: SurveyAction}
}

// Name is the action's name without arguments, e.g. "move_to_A" or "survey".
func (a Action) Name() string {
	switch a.Type {
	case MoveAction:
		return movePrefix + string(a.Target)
	case SurveyAction:
		return "survey"
	default:
		return fmt.Sprintf("unknown(%d)", a.Type)
	}
}

// Label renders the action as it appears in plans: "move_to_A()", "survey()".
func (a Action) Label() string {
	return a.Name() + "()"
}

func (a Action) String() string {
	return a.Label()
}

// ParseLabel is the inverse of Action.Label.
func ParseLabel(label string) (Action, error) {
	name, ok := strings.CutSuffix(strings.TrimSpace(label), "()")
	if !ok {
		return Action{}, fmt.Errorf("%w: %q", ErrBadLabel, label)
	}
	if name == "survey" {
		return Survey(), nil
	}
	if target, ok := strings.CutPrefix(name, movePrefix); ok && target != "" {
		return MoveTo(Location(target)), nil
	}
	return Action{}, fmt.Errorf("%w: %q", ErrBadLabel, label)
}
