package mission

// Objective scores a leaf state; higher is better.
type Objective func(State, Constraints) float64

// Weights parameterizes the mission objective. Penalties are subtracted and
// the completion bonus is added.
type Weights struct {
	Intel           float64 `yaml:"intel"`
	Time            float64 `yaml:"time"`
	Fuel            float64 `yaml:"fuel"`
	StrandedPenalty float64 `yaml:"stranded_penalty"`
	OvertimePenalty float64 `yaml:"overtime_penalty"`
	CompleteBonus   float64 `yaml:"complete_bonus"`
}

var DefaultWeights = Weights{
	Intel:           150,
	Time:            2,
	Fuel:            1,
	StrandedPenalty: 1000,
	OvertimePenalty: 1000,
	CompleteBonus:   500,
}

// DefaultObjective rewards gathered intel and a completed mission, and
// charges for time spent, fuel burnt, being stranded and running out of time.
var DefaultObjective Objective = DefaultWeights.Objective()

// Objective turns the weights into an Objective.
func (w Weights) Objective() Objective {
	return func(s State, c Constraints) float64 {
		score := w.Intel*float64(s.Intel.Len()) -
			w.Time*s.TimeElapsed -
			w.Fuel*(c.InitialFuel-s.Fuel)
		if c.Stranded(s) {
			score -= w.StrandedPenalty
		}
		if c.OutOfTime(s) {
			score -= w.OvertimePenalty
		}
		if c.Complete(s) {
			score += w.CompleteBonus
		}
		return score
	}
}

// EvaluateIntelOnly scores a state purely by the number of surveyed targets.
func EvaluateIntelOnly(s State, _ Constraints) float64 {
	return float64(s.Intel.Len())
}
