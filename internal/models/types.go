package models

import (
	"fmt"
	"strings"
)

// ResourceType identifies a resource kind and, equally, the producer that yields it.
// Kinds are ordered by dependency: each one is bought with kinds that come before it.
type ResourceType int8

const (
	Ore ResourceType = iota
	Clay
	Obsidian
	Geode

	// NoResource marks the absence of a producer (e.g. no pending delivery).
	NoResource ResourceType = -1
)

// NumResources is the width of every resource vector.
const NumResources = 4

// Output is the resource whose final quantity is maximized.
const Output = Geode

// String returns the lower-case resource name
func (rt ResourceType) String() string {
	switch rt {
	case Ore:
		return "ore"
	case Clay:
		return "clay"
	case Obsidian:
		return "obsidian"
	case Geode:
		return "geode"
	case NoResource:
		return "none"
	default:
		return fmt.Sprintf("resource(%d)", int(rt))
	}
}

// AllResourceTypes returns all resource types in dependency order
func AllResourceTypes() []ResourceType {
	return []ResourceType{Ore, Clay, Obsidian, Geode}
}

// PurchaseOrder returns producer types in the order the search tries to buy them:
// the output producer first, the base producer last.
func PurchaseOrder() []ResourceType {
	return []ResourceType{Geode, Obsidian, Clay, Ore}
}

// ParseResourceType maps a resource name back to its type
func ParseResourceType(name string) (ResourceType, bool) {
	for _, rt := range AllResourceTypes() {
		if rt.String() == strings.ToLower(strings.TrimSpace(name)) {
			return rt, true
		}
	}
	return NoResource, false
}

// Resources is a fixed-width resource vector indexed by ResourceType.
// It is comparable, so it can be part of a map key.
type Resources [NumResources]int32

// Unit returns a vector holding one of rt and nothing else
func Unit(rt ResourceType) Resources {
	var r Resources
	r[rt] = 1
	return r
}

// Get returns the amount of a single resource
func (r Resources) Get(rt ResourceType) int32 {
	return r[rt]
}

// Add returns the elementwise sum
func (r Resources) Add(o Resources) Resources {
	for i := range r {
		r[i] += o[i]
	}
	return r
}

// Sub returns the elementwise difference. Components may go negative;
// check CanAfford before committing the result to an inventory.
func (r Resources) Sub(o Resources) Resources {
	for i := range r {
		r[i] -= o[i]
	}
	return r
}

// Max returns the elementwise maximum
func (r Resources) Max(o Resources) Resources {
	for i := range r {
		r[i] = max(r[i], o[i])
	}
	return r
}

// CanAfford reports whether paying cost leaves every component non-negative
func (r Resources) CanAfford(cost Resources) bool {
	for _, v := range r.Sub(cost) {
		if v < 0 {
			return false
		}
	}
	return true
}

// IsZero reports whether every component is zero
func (r Resources) IsZero() bool {
	return r == Resources{}
}

// String formats non-zero components as "4 ore and 7 obsidian"
func (r Resources) String() string {
	var parts []string
	for _, rt := range AllResourceTypes() {
		if r[rt] != 0 {
			parts = append(parts, fmt.Sprintf("%d %s", r[rt], rt))
		}
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, " and ")
}
