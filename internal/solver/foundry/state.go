package foundry

import "github.com/napolitain/solver-foundry/internal/models"

// State is one node of the search. It is a plain comparable value: branches copy it,
// and the visited set uses it directly as a key.
type State struct {
	Remaining int32            // ticks left before the horizon
	Inventory models.Resources // stockpiled resources
	Robots    models.Resources // producer counts, one per resource type
	Pending   models.ResourceType
}

// NewState returns the canonical starting state: one ore producer, nothing else
func NewState(horizon int) State {
	return State{
		Remaining: int32(horizon),
		Robots:    models.Unit(models.Ore),
		Pending:   models.NoResource,
	}
}

// produce has every producer collect one unit and consumes a tick
func (s *State) produce() {
	s.Inventory = s.Inventory.Add(s.Robots)
	s.Remaining--
}

// deliver puts a producer bought last tick to work
func (s *State) deliver() {
	if s.Pending == models.NoResource {
		return
	}
	s.Robots = s.Robots.Add(models.Unit(s.Pending))
	s.Pending = models.NoResource
}

// buy returns a copy that has paid for one producer of type rt, or false if it can't afford it
func (s State) buy(rt models.ResourceType, cost models.Resources) (State, bool) {
	if !s.Inventory.CanAfford(cost) {
		return s, false
	}
	s.Inventory = s.Inventory.Sub(cost)
	s.Pending = rt
	return s, true
}

// Done reports whether the horizon has been reached
func (s State) Done() bool {
	return s.Remaining <= 0
}
