package loader

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/napolitain/solver-foundry/internal/models"
)

// ParseBlueprintsJSON reads an array of blueprint objects:
//
//	[{"id": 1, "ore": {"ore": 4}, "clay": {"ore": 2},
//	  "obsidian": {"ore": 3, "clay": 14}, "geode": {"ore": 2, "obsidian": 7}}]
//
// Every producer object must be present. Unknown resource names inside a cost are rejected.
func ParseBlueprintsJSON(data []byte) ([]*models.Blueprint, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedBlueprint)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedBlueprint)
	}

	var blueprints []*models.Blueprint
	var parseErr error
	seen := make(map[int]bool)

	index := -1
	root.ForEach(func(_, v gjson.Result) bool {
		index++
		bp, err := parseBlueprintObject(v)
		if err != nil {
			parseErr = fmt.Errorf("entry %d: %w", index, err)
			return false
		}
		if seen[bp.ID] {
			parseErr = fmt.Errorf("entry %d: %w: %d", index, ErrDuplicateBlueprint, bp.ID)
			return false
		}
		seen[bp.ID] = true
		blueprints = append(blueprints, bp)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return blueprints, nil
}

func parseBlueprintObject(v gjson.Result) (*models.Blueprint, error) {
	idField := v.Get("id")
	if idField.Type != gjson.Number {
		return nil, fmt.Errorf("%w: missing numeric id", ErrMalformedBlueprint)
	}
	// Raw text, so fractions and out-of-range values are rejected like in the text format
	id, err := strconv.Atoi(idField.Raw)
	if err != nil || id < 0 {
		return nil, fmt.Errorf("%w: bad id %q", ErrMalformedBlueprint, idField.Raw)
	}

	costs := make([]models.ProducerCost, 0, models.NumResources)
	for _, producer := range models.AllResourceTypes() {
		obj := v.Get(producer.String())
		if !obj.IsObject() {
			return nil, fmt.Errorf("%w: blueprint %d has no %s cost", ErrMalformedBlueprint, id, producer)
		}

		var cost models.Resources
		var costErr error
		obj.ForEach(func(name, amount gjson.Result) bool {
			rt, ok := models.ParseResourceType(name.String())
			if !ok {
				costErr = fmt.Errorf("%w: unknown resource %q", ErrMalformedBlueprint, name.String())
				return false
			}
			if amount.Type != gjson.Number {
				costErr = fmt.Errorf("%w: bad %s amount %q", ErrMalformedBlueprint, rt, amount.Raw)
				return false
			}
			n, err := strconv.ParseInt(amount.Raw, 10, 32)
			if err != nil || n < 0 {
				costErr = fmt.Errorf("%w: bad %s amount %q", ErrMalformedBlueprint, rt, amount.Raw)
				return false
			}
			cost[rt] = int32(n)
			return true
		})
		if costErr != nil {
			return nil, costErr
		}

		costs = append(costs, models.ProducerCost{Producer: producer, Cost: cost})
	}

	return models.NewBlueprint(id, costs...), nil
}
