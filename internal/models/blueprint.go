package models

import (
	"fmt"
	"math"
	"strings"
)

// ProducerCost is one line of a blueprint: what it takes to build one producer.
type ProducerCost struct {
	Producer ResourceType
	Cost     Resources
}

// Blueprint is the cost table of a factory configuration. It is immutable once built.
type Blueprint struct {
	ID int

	costs     [NumResources]Resources
	known     [NumResources]bool
	maxUseful Resources
}

// NewBlueprint builds a cost table from one cost per producer type.
// Producer types left out can never be bought.
func NewBlueprint(id int, costs ...ProducerCost) *Blueprint {
	b := &Blueprint{ID: id}
	for _, pc := range costs {
		if pc.Producer < 0 || int(pc.Producer) >= NumResources {
			continue
		}
		b.costs[pc.Producer] = pc.Cost
		b.known[pc.Producer] = true
	}

	// Producing more of a resource per tick than any single purchase can spend is waste,
	// so the largest line item bounds the useful producer count. The output is never capped.
	for _, c := range b.costs {
		b.maxUseful = b.maxUseful.Max(c)
	}
	b.maxUseful[Output] = math.MaxInt32

	return b
}

// NewStandardBlueprint builds the usual four-line blueprint: ore and clay producers cost ore,
// obsidian producers cost ore and clay, geode producers cost ore and obsidian.
func NewStandardBlueprint(id int, oreOre, clayOre, obsidianOre, obsidianClay, geodeOre, geodeObsidian int32) *Blueprint {
	return NewBlueprint(id,
		ProducerCost{Producer: Ore, Cost: Resources{oreOre, 0, 0, 0}},
		ProducerCost{Producer: Clay, Cost: Resources{clayOre, 0, 0, 0}},
		ProducerCost{Producer: Obsidian, Cost: Resources{obsidianOre, obsidianClay, 0, 0}},
		ProducerCost{Producer: Geode, Cost: Resources{geodeOre, 0, geodeObsidian, 0}},
	)
}

// Cost returns the price of one producer of type rt
func (b *Blueprint) Cost(rt ResourceType) Resources {
	return b.costs[rt]
}

// Has reports whether the blueprint lists a cost for rt
func (b *Blueprint) Has(rt ResourceType) bool {
	return rt >= 0 && int(rt) < NumResources && b.known[rt]
}

// Len returns the number of producer types the blueprint lists
func (b *Blueprint) Len() int {
	n := 0
	for _, k := range b.known {
		if k {
			n++
		}
	}
	return n
}

// MaxUseful returns, per producer type, the count beyond which buying more cannot help
func (b *Blueprint) MaxUseful() Resources {
	return b.maxUseful
}

// String renders the blueprint in the same wording the text loader reads
func (b *Blueprint) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Blueprint %d:", b.ID)
	for _, rt := range AllResourceTypes() {
		if b.known[rt] {
			fmt.Fprintf(&sb, " Each %s robot costs %s.", rt, b.costs[rt])
		}
	}
	return sb.String()
}
