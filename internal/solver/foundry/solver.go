package foundry

import "github.com/napolitain/solver-foundry/internal/models"

// Stats counts the work done by one search. They never influence the result.
type Stats struct {
	Expanded    int // states that generated branches
	Duplicates  int // states dropped because they were already expanded
	Terminal    int // states that reached the horizon
	Branches    int // purchase branches pushed
	MaxFrontier int // deepest the work-list got
}

// Solution is the outcome of one search
type Solution struct {
	Best  int
	Stats Stats
}

// Solver is the branch-and-bound search over producer purchases
type Solver struct {
	Blueprint *models.Blueprint
	Horizon   int
}

// NewSolver creates a solver for one blueprint and horizon
func NewSolver(blueprint *models.Blueprint, horizon int) *Solver {
	return &Solver{
		Blueprint: blueprint,
		Horizon:   horizon,
	}
}

// Search returns the most output resource obtainable within horizon ticks
func Search(blueprint *models.Blueprint, horizon int) int {
	return NewSolver(blueprint, horizon).Solve().Best
}

// Solve explores the state space depth-first with an explicit stack and returns the best
// output quantity found at the horizon.
//
// Rules applied at every state:
//   - a state already expanded is dropped
//   - producers are tried output first, base last; non-output producers are only bought
//     while their count is below the blueprint's MaxUseful bound
//   - when every producer type could be bought, doing nothing is not explored
func (s *Solver) Solve() *Solution {
	bp := s.Blueprint
	if bp == nil {
		bp = models.NewBlueprint(0)
	}
	maxUseful := bp.MaxUseful()
	order := models.PurchaseOrder()

	var stats Stats
	var best int32

	stack := []State{NewState(s.Horizon)}
	visited := make(map[State]struct{})

	for len(stack) > 0 {
		last := len(stack) - 1
		state := stack[last]
		stack = stack[:last]

		state.produce()
		if state.Done() {
			best = max(best, state.Inventory.Get(models.Output))
			stats.Terminal++
			continue
		}

		state.deliver()

		if _, seen := visited[state]; seen {
			stats.Duplicates++
			continue
		}
		visited[state] = struct{}{}
		stats.Expanded++

		bought := 0
		for _, rt := range order {
			if !bp.Has(rt) {
				continue
			}
			if rt != models.Output && state.Robots.Get(rt) >= maxUseful.Get(rt) {
				continue
			}
			next, ok := state.buy(rt, bp.Cost(rt))
			if !ok {
				continue
			}
			stack = append(stack, next)
			bought++
		}
		stats.Branches += bought

		if bought < models.NumResources {
			stack = append(stack, state)
		}
		stats.MaxFrontier = max(stats.MaxFrontier, len(stack))
	}

	return &Solution{
		Best:  int(best),
		Stats: stats,
	}
}
