package mission

import "fmt"

// State is a snapshot of the drone mid-mission. State is a value: every
// transition returns a new State and never modifies its input.
type State struct {
	Location    Location
	Fuel        float64 // may drop to or below zero
	TimeElapsed float64
	Intel       LocationSet // targets surveyed so far
}

func (s State) Equal(other State) bool {
	return s.Location == other.Location &&
		s.Fuel == other.Fuel &&
		s.TimeElapsed == other.TimeElapsed &&
		s.Intel.Equal(other.Intel)
}

func (s State) String() string {
	return fmt.Sprintf("at %s, fuel %.2f, time %.2f, intel [%s]", s.Location, s.Fuel, s.TimeElapsed, s.Intel)
}
