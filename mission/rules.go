package mission

import (
	"errors"
	"fmt"
)

var (
	ErrSameLocation  = errors.New("drone is already at the destination")
	ErrNoRoute       = errors.New("no route between locations")
	ErrNotSurveyable = errors.New("location is not an unsurveyed target")
)

// Constraints are the mission-wide limits shared by every state.
type Constraints struct {
	Base        Location
	InitialFuel float64
	MaxTime     float64
	Targets     LocationSet
}

// Stranded reports whether the drone ran out of fuel away from base.
func (c Constraints) Stranded(s State) bool {
	return s.Fuel <= 0 && s.Location != c.Base
}

// OutOfTime reports whether the mission time limit has been reached.
func (c Constraints) OutOfTime(s State) bool {
	return s.TimeElapsed >= c.MaxTime
}

// Complete reports whether every target is surveyed and the drone is home.
func (c Constraints) Complete(s State) bool {
	return s.Intel.ContainsAll(c.Targets) && s.Location == c.Base
}

// Rules bundles the move catalog with the mission constraints and implements
// the transition system searched by the planner. Rules is read-only and safe
// for concurrent use.
type Rules struct {
	catalog     *Catalog
	constraints Constraints
}

func NewRules(catalog *Catalog, constraints Constraints) Rules {
	if catalog == nil {
		panic("catalog must not be nil")
	}
	if constraints.Base == "" {
		constraints.Base = DefaultBase
	}
	return Rules{catalog: catalog, constraints: constraints}
}

func (r Rules) Catalog() *Catalog {
	return r.catalog
}

func (r Rules) Constraints() Constraints {
	return r.constraints
}

// Initial is the state every mission starts from: at base, full tank, no
// time spent and no intel.
func (r Rules) Initial() State {
	return State{
		Location: r.constraints.Base,
		Fuel:     r.constraints.InitialFuel,
	}
}

// Apply returns the state reached by performing a in s.
func (r Rules) Apply(s State, a Action) (State, error) {
	switch a.Type {
	case MoveAction:
		if a.Target == s.Location {
			return State{}, fmt.Errorf("%w: %s", ErrSameLocation, a.Target)
		}
		cost, ok := r.catalog.Move(s.Location, a.Target)
		if !ok {
			return State{}, fmt.Errorf("%w: %s -> %s", ErrNoRoute, s.Location, a.Target)
		}
		next := s
		next.Location = a.Target
		next.Fuel -= cost.Fuel
		next.TimeElapsed += cost.Time
		return next, nil
	case SurveyAction:
		if !r.surveyable(s) {
			return State{}, fmt.Errorf("%w: %s", ErrNotSurveyable, s.Location)
		}
		next := s
		next.TimeElapsed += r.catalog.SurveyTime
		next.Intel = s.Intel.With(s.Location)
		return next, nil
	default:
		return State{}, fmt.Errorf("unknown action type %d", a.Type)
	}
}

// ValidActions lists the actions available in s. Moves come first, in catalog
// order, followed by a survey when the current location can be surveyed.
func (r Rules) ValidActions(s State) []Action {
	var actions []Action
	for _, dest := range r.catalog.Destinations(s.Location) {
		if dest == s.Location {
			continue
		}
		cost, _ := r.catalog.Move(s.Location, dest)
		if s.Fuel >= cost.Fuel {
			actions = append(actions, MoveTo(dest))
		}
	}
	if r.surveyable(s) {
		actions = append(actions, Survey())
	}
	return actions
}

// IsTerminal reports whether the mission is over in s: stranded, out of
// time, or complete.
func (r Rules) IsTerminal(s State) bool {
	c := r.constraints
	return c.Stranded(s) || c.OutOfTime(s) || c.Complete(s)
}

// Replay applies actions in order starting from s.
func (r Rules) Replay(s State, actions []Action) (State, error) {
	for i, a := range actions {
		next, err := r.Apply(s, a)
		if err != nil {
			return State{}, fmt.Errorf("failed to apply step %d (%s): %w", i+1, a, err)
		}
		s = next
	}
	return s, nil
}

func (r Rules) surveyable(s State) bool {
	return r.constraints.Targets.Contains(s.Location) && !s.Intel.Contains(s.Location)
}
