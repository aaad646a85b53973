package solver

import "github.com/napolitain/solver-foundry/internal/models"

// QualityLevel is a blueprint's id weighted by its best output
func QualityLevel(r Result) int {
	return r.BlueprintID * r.Best
}

// QualitySum adds up the quality level of every result
func QualitySum(results []Result) int {
	sum := 0
	for _, r := range results {
		sum += QualityLevel(r)
	}
	return sum
}

// TopProduct multiplies the best outputs of the first k results.
// The empty product is 1.
func TopProduct(results []Result, k int) int {
	product := 1
	for i, r := range results {
		if i >= k {
			break
		}
		product *= r.Best
	}
	return product
}

// FirstN returns at most the first n blueprints, the subset scored by TopProduct
func FirstN(blueprints []*models.Blueprint, n int) []*models.Blueprint {
	if n <= 0 {
		return nil
	}
	if n > len(blueprints) {
		n = len(blueprints)
	}
	return blueprints[:n]
}
