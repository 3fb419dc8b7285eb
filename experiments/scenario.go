package experiments

import (
	"fmt"

	"drone/config"

	"golang.org/x/exp/rand"
)

// RandomScenario builds a mission over Base plus n numbered sites with
// symmetric random costs. The same seed always yields the same mission.
func RandomScenario(seed uint64, sites int) config.Config {
	r := rand.New(rand.NewSource(seed))

	locations := []string{"Base"}
	for i := 1; i <= sites; i++ {
		locations = append(locations, fmt.Sprintf("S%d", i))
	}

	var targets []string
	for _, loc := range locations[1:] {
		if r.Intn(2) == 0 {
			targets = append(targets, loc)
		}
	}
	if len(targets) == 0 && sites > 0 {
		targets = append(targets, locations[1+r.Intn(sites)])
	}

	cfg := config.Default()
	cfg.InitialFuel = float64(80 + r.Intn(81))
	cfg.MaxTime = float64(40 + r.Intn(41))
	cfg.SurveyTime = float64(2 + r.Intn(7))
	cfg.Targets = targets
	cfg.Moves = nil
	for i, from := range locations {
		for _, to := range locations[i+1:] {
			fuel := float64(10 + r.Intn(31))
			time := float64(5 + r.Intn(16))
			cfg.Moves = append(cfg.Moves,
				config.Move{From: from, To: to, Fuel: fuel, Time: time},
				config.Move{From: to, To: from, Fuel: fuel, Time: time},
			)
		}
	}
	return cfg
}
