package searcher

import "drone/mission"

// shuttle is Base <-> A at 20 fuel / 10 time, survey 5, 60 fuel, 30 time,
// target A.
func shuttle() mission.Rules {
	catalog := mission.NewCatalog(5)
	catalog.AddMove("Base", "A", mission.Cost{Fuel: 20, Time: 10})
	catalog.AddMove("A", "Base", mission.Cost{Fuel: 20, Time: 10})
	return mission.NewRules(catalog, mission.Constraints{
		Base:        "Base",
		InitialFuel: 60,
		MaxTime:     30,
		Targets:     mission.NewLocationSet("A"),
	})
}

// triangle is the stock Base/A/B mission.
func triangle() mission.Rules {
	catalog := mission.NewCatalog(5)
	catalog.AddMove("Base", "A", mission.Cost{Fuel: 20, Time: 10})
	catalog.AddMove("Base", "B", mission.Cost{Fuel: 30, Time: 15})
	catalog.AddMove("A", "Base", mission.Cost{Fuel: 20, Time: 10})
	catalog.AddMove("A", "B", mission.Cost{Fuel: 40, Time: 20})
	catalog.AddMove("B", "Base", mission.Cost{Fuel: 30, Time: 15})
	catalog.AddMove("B", "A", mission.Cost{Fuel: 40, Time: 20})
	return mission.NewRules(catalog, mission.Constraints{
		Base:        "Base",
		InitialFuel: 100,
		MaxTime:     50,
		Targets:     mission.NewLocationSet("A", "B"),
	})
}

// forkRules offers two moves with identical costs out of Base.
func forkRules(first, second mission.Location) mission.Rules {
	catalog := mission.NewCatalog(5)
	catalog.AddMove("Base", first, mission.Cost{Fuel: 10, Time: 5})
	catalog.AddMove("Base", second, mission.Cost{Fuel: 10, Time: 5})
	return mission.NewRules(catalog, mission.Constraints{
		Base:        "Base",
		InitialFuel: 50,
		MaxTime:     100,
		Targets:     mission.NewLocationSet("A", "B"),
	})
}

func preorderLabels(tree *Tree) []string {
	var labels []string
	tree.Walk(func(n *Node) {
		labels = append(labels, n.Label())
	})
	return labels
}
