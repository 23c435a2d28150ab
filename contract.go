package routype

import (
	"sort"
)

// Contract is an immutable named collection of routes: the single
// source of truth shared by the client and any tooling built on top of
// the declarations.
type Contract struct {
	routes map[string]Route
	names  []string
}

// NewContract builds a contract from named routes.
//
// Every route is validated (known method, absolute path, no body on
// GET/HEAD); an invalid declaration panics. The contract owns a copy
// of the map and never changes after construction.
func NewContract(routes map[string]Route) *Contract {
	copied := make(map[string]Route, len(routes))
	names := make([]string, 0, len(routes))
	for name, route := range routes {
		validateRoute(name, route)
		copied[name] = route
		names = append(names, name)
	}
	sort.Strings(names)
	return &Contract{routes: copied, names: names}
}

// Route returns the route registered under name.
func (c *Contract) Route(name string) (Route, bool) {
	route, has := c.routes[name]
	return route, has
}

// Names returns the operation names in sorted order. The slice is a
// copy; callers may keep it.
func (c *Contract) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Len returns the number of routes in the contract.
func (c *Contract) Len() int {
	return len(c.routes)
}
