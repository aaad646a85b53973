package foundry

import (
	"testing"
)

// TestSolverDeterminism verifies that repeated searches on the same input agree on the result
// and on the amount of work done. Map iteration order must never leak into the search.
func TestSolverDeterminism(t *testing.T) {
	bp := midBlueprint()

	first := NewSolver(bp, 13).Solve()
	if first.Best == 0 {
		t.Fatal("Baseline search found nothing")
	}
	t.Logf("Baseline: best=%d expanded=%d", first.Best, first.Stats.Expanded)

	const iterations = 20
	for i := 1; i < iterations; i++ {
		solution := NewSolver(bp, 13).Solve()

		if solution.Best != first.Best {
			t.Errorf("Iteration %d: best mismatch: got %d, want %d", i, solution.Best, first.Best)
		}
		if solution.Stats != first.Stats {
			t.Errorf("Iteration %d: stats mismatch: got %+v, want %+v", i, solution.Stats, first.Stats)
		}
	}
}

// TestSolverDoesNotShareState runs the same blueprint through two solvers in parallel;
// each invocation owns its own stack and visited set.
func TestSolverDoesNotShareState(t *testing.T) {
	bp := cheapBlueprint()
	want := Search(bp, 12)

	results := make(chan int, 4)
	for i := 0; i < cap(results); i++ {
		go func() {
			results <- Search(bp, 12)
		}()
	}
	for i := 0; i < cap(results); i++ {
		if got := <-results; got != want {
			t.Errorf("Parallel search returned %d, want %d", got, want)
		}
	}
}
