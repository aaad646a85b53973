package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/napolitain/solver-foundry/internal/models"
)

func TestQualitySum(t *testing.T) {
	results := []Result{
		{BlueprintID: 1, Best: 9},
		{BlueprintID: 2, Best: 12},
		{BlueprintID: 3, Best: 0},
	}

	assert.Equal(t, 9, QualityLevel(results[0]))
	assert.Equal(t, 24, QualityLevel(results[1]))
	assert.Equal(t, 33, QualitySum(results))
	assert.Equal(t, 0, QualitySum(nil))
}

func TestTopProduct(t *testing.T) {
	results := []Result{
		{BlueprintID: 1, Best: 56},
		{BlueprintID: 2, Best: 62},
		{BlueprintID: 3, Best: 3},
	}

	tests := []struct {
		name string
		k    int
		want int
	}{
		{"first two", 2, 56 * 62},
		{"all", 3, 56 * 62 * 3},
		{"more than available", 10, 56 * 62 * 3},
		{"none", 0, 1},
		{"negative", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopProduct(results, tt.k))
		})
	}

	assert.Equal(t, 1, TopProduct(nil, 3), "empty product")
	assert.Equal(t, 0, TopProduct([]Result{{Best: 0}, {Best: 5}}, 2))
}

func TestFirstN(t *testing.T) {
	blueprints := []*models.Blueprint{models.NewBlueprint(1), models.NewBlueprint(2), models.NewBlueprint(3)}

	assert.Len(t, FirstN(blueprints, 2), 2)
	assert.Equal(t, 2, FirstN(blueprints, 2)[1].ID)
	assert.Len(t, FirstN(blueprints, 5), 3)
	assert.Empty(t, FirstN(blueprints, 0))
	assert.Empty(t, FirstN(nil, 3))
}
