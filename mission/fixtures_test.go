package mission

// shuttleRules is a two-location mission: Base <-> A costing 20 fuel and 10
// time each way, survey takes 5, 60 fuel, 30 time, target A.
func shuttleRules() Rules {
	catalog := NewCatalog(5)
	catalog.AddMove("Base", "A", Cost{Fuel: 20, Time: 10})
	catalog.AddMove("A", "Base", Cost{Fuel: 20, Time: 10})
	return NewRules(catalog, Constraints{
		Base:        "Base",
		InitialFuel: 60,
		MaxTime:     30,
		Targets:     NewLocationSet("A"),
	})
}
