// Package cluster finds minimal self-sufficient subfactories in an item dependency graph. Starting from a seed set,
// the search greedily absorbs items into the cluster until the set of external inputs cannot be reduced any further.
package cluster

import (
	"fmt"

	"go.flow.arcalot.io/subfactory/depgraph"
)

// MergeKind describes why an item was absorbed into a cluster.
type MergeKind string

const (
	// MergeKindFree is an item whose ingredients were all members already. It is absorbed unconditionally.
	MergeKindFree MergeKind = "free"
	// MergeKindScored is a frontier item chosen because absorbing it reduced the number of external inputs.
	MergeKindScored MergeKind = "scored"
)

// Step records a single committed merge.
type Step struct {
	Round          int           `json:"round" yaml:"round"`
	Kind           MergeKind     `json:"kind" yaml:"kind"`
	Item           depgraph.Item `json:"item" yaml:"item"`
	Score          int           `json:"score" yaml:"score"`
	FrontierBefore int           `json:"frontier_before" yaml:"frontier_before"`
	FrontierAfter  int           `json:"frontier_after" yaml:"frontier_after"`
}

// Cluster is a set of items produced inside a subfactory (members) together with the items the members require
// but which are not produced inside (frontier). The frontier is always the union of the ingredients of all members,
// minus the members themselves.
//
// A Cluster returned by the Finder is final and must not be modified.
type Cluster struct {
	seeds        []depgraph.Item
	unknownSeeds []depgraph.Item
	members      depgraph.ItemSet
	frontier     depgraph.ItemSet
	steps        []Step
	rounds       int
}

func newCluster(g depgraph.DependencyGraph, seeds []depgraph.Item) *Cluster {
	c := &Cluster{
		members:  depgraph.NewItemSet(seeds...),
		frontier: depgraph.ItemSet{},
	}
	c.seeds = c.members.Sorted()
	for _, seed := range c.seeds {
		if !g.Has(seed) {
			c.unknownSeeds = append(c.unknownSeeds, seed)
		}
		for _, ingredient := range g.IngredientsOf(seed) {
			if !c.members.Has(ingredient) {
				c.frontier.Add(ingredient)
			}
		}
	}
	return c
}

// absorb moves the item into the members and replaces it in the frontier with its unsatisfied ingredients.
func (c *Cluster) absorb(g depgraph.DependencyGraph, item depgraph.Item) {
	c.members.Add(item)
	c.frontier.Remove(item)
	for _, ingredient := range g.IngredientsOf(item) {
		if !c.members.Has(ingredient) {
			c.frontier.Add(ingredient)
		}
	}
}

// Score returns the net reduction in the number of external inputs if the item were absorbed: one for the item
// leaving the frontier, minus one for every ingredient that is neither a member nor already on the frontier.
func (c *Cluster) Score(g depgraph.DependencyGraph, item depgraph.Item) int {
	score := 0
	if c.frontier.Has(item) {
		score = 1
	}
	for _, ingredient := range g.IngredientsOf(item) {
		if ingredient == item || c.members.Has(ingredient) || c.frontier.Has(ingredient) {
			continue
		}
		score--
	}
	return score
}

// Seeds returns the deduplicated seed items in lexicographic order.
func (c *Cluster) Seeds() []depgraph.Item {
	return append([]depgraph.Item(nil), c.seeds...)
}

// UnknownSeeds returns the seeds that are not part of the graph. They are treated as raw items.
func (c *Cluster) UnknownSeeds() []depgraph.Item {
	return append([]depgraph.Item(nil), c.unknownSeeds...)
}

// Members returns the items produced inside the cluster in lexicographic order.
func (c *Cluster) Members() []depgraph.Item {
	return c.members.Sorted()
}

// Frontier returns the external inputs of the cluster in lexicographic order.
func (c *Cluster) Frontier() []depgraph.Item {
	return c.frontier.Sorted()
}

// IsMember returns true if the item is produced inside the cluster.
func (c *Cluster) IsMember(item depgraph.Item) bool {
	return c.members.Has(item)
}

// IsFrontier returns true if the item is an external input of the cluster.
func (c *Cluster) IsFrontier(item depgraph.Item) bool {
	return c.frontier.Has(item)
}

// Steps returns the committed merges in the order they happened.
func (c *Cluster) Steps() []Step {
	return append([]Step(nil), c.steps...)
}

// Rounds returns the number of expansion rounds, including the final one that changed nothing.
func (c *Cluster) Rounds() int {
	return c.rounds
}

// Equals returns true if both clusters have the same members and frontier.
func (c *Cluster) Equals(other *Cluster) bool {
	return c.members.Equals(other.members) && c.frontier.Equals(other.frontier)
}

// CheckInvariants verifies that members and frontier are disjoint and that the frontier is exactly the set of
// unsatisfied ingredients of the members.
func (c *Cluster) CheckInvariants(g depgraph.DependencyGraph) error {
	expected := depgraph.ItemSet{}
	for member := range c.members {
		if c.frontier.Has(member) {
			return fmt.Errorf("item %s is both a member and on the frontier", member)
		}
		for _, ingredient := range g.IngredientsOf(member) {
			if !c.members.Has(ingredient) {
				expected.Add(ingredient)
			}
		}
	}
	if !expected.Equals(c.frontier) {
		return fmt.Errorf(
			"frontier %v does not match the unsatisfied ingredients of the members %v",
			c.frontier.Strings(),
			expected.Strings(),
		)
	}
	return nil
}
