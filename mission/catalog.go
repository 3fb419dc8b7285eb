package mission

import "slices"

// Cost is the resource price of a move.
type Cost struct {
	Fuel float64
	Time float64
}

// Route is one entry of the move table.
type Route struct {
	From Location
	To   Location
	Cost Cost
}

type routeTable struct {
	order []Location
	costs map[Location]Cost
}

// Catalog holds the move cost table and the survey duration. Origins and
// destinations are iterated in insertion order, which decides the order moves
// are enumerated in and therefore which of several equally scored plans wins.
//
// A Catalog is not safe for concurrent modification. Once handed to Rules it
// is only read.
type Catalog struct {
	SurveyTime float64

	origins []Location
	routes  map[Location]*routeTable
}

func NewCatalog(surveyTime float64) *Catalog {
	return &Catalog{
		SurveyTime: surveyTime,
		routes:     make(map[Location]*routeTable),
	}
}

// AddMove sets the cost of moving from one location to another. Updating an
// existing route keeps its position in the iteration order.
func (c *Catalog) AddMove(from, to Location, cost Cost) {
	if c.routes == nil {
		c.routes = make(map[Location]*routeTable)
	}
	table, ok := c.routes[from]
	if !ok {
		table = &routeTable{costs: make(map[Location]Cost)}
		c.routes[from] = table
		c.origins = append(c.origins, from)
	}
	if _, ok := table.costs[to]; !ok {
		table.order = append(table.order, to)
	}
	table.costs[to] = cost
}

// RemoveMove deletes a route and reports whether it existed.
func (c *Catalog) RemoveMove(from, to Location) bool {
	table, ok := c.routes[from]
	if !ok {
		return false
	}
	if _, ok := table.costs[to]; !ok {
		return false
	}
	delete(table.costs, to)
	table.order = slices.DeleteFunc(table.order, func(l Location) bool { return l == to })
	if len(table.order) == 0 {
		delete(c.routes, from)
		c.origins = slices.DeleteFunc(c.origins, func(l Location) bool { return l == from })
	}
	return true
}

// Move returns the cost of the route from -> to, if the catalog has one.
func (c *Catalog) Move(from, to Location) (Cost, bool) {
	table, ok := c.routes[from]
	if !ok {
		return Cost{}, false
	}
	cost, ok := table.costs[to]
	return cost, ok
}

// Destinations lists the locations reachable from origin in insertion order.
func (c *Catalog) Destinations(from Location) []Location {
	table, ok := c.routes[from]
	if !ok {
		return nil
	}
	return slices.Clone(table.order)
}

// Routes lists every route, grouped by origin, in insertion order.
func (c *Catalog) Routes() []Route {
	var routes []Route
	for _, from := range c.origins {
		table := c.routes[from]
		for _, to := range table.order {
			routes = append(routes, Route{From: from, To: to, Cost: table.costs[to]})
		}
	}
	return routes
}

func (c *Catalog) Len() int {
	n := 0
	for _, table := range c.routes {
		n += len(table.order)
	}
	return n
}
