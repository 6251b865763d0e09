package cluster

import (
	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/subfactory/depgraph"
)

// Finder runs the greedy cluster expansion.
type Finder interface {
	// Find expands the seeds into a final cluster. The seeds must not be empty. Seeds that are not part of the graph
	// are accepted and treated as raw items. The result only depends on the graph and the set of seeds.
	Find(graph depgraph.DependencyGraph, seeds []depgraph.Item) (*Cluster, error)
}

// NewFinder creates a Finder that reports its progress to the logger.
func NewFinder(logger log.Logger) Finder {
	return &finder{
		logger: logger,
	}
}

// Find runs the cluster expansion without logging.
func Find(graph depgraph.DependencyGraph, seeds []depgraph.Item) (*Cluster, error) {
	return (&finder{}).Find(graph, seeds)
}

type finder struct {
	logger log.Logger
}

// Find performs rounds until a round leaves the members unchanged. Every round that changes something adds at
// least one member, so there are at most as many changing rounds as there are items.
func (f *finder) Find(graph depgraph.DependencyGraph, seeds []depgraph.Item) (*Cluster, error) {
	if len(seeds) == 0 {
		return nil, ErrInvalidInput{"the seed set is empty"}
	}
	for _, seed := range seeds {
		if seed == "" {
			return nil, ErrInvalidInput{"seed items must have a name"}
		}
	}
	c := newCluster(graph, seeds)
	f.infof("starting with %v (frontier: %d)", c.seeds, c.frontier.Len())

	for round := 1; ; round++ {
		f.debugf("round %d: %d members, %d frontier items", round, c.members.Len(), c.frontier.Len())
		changed := f.freeMerge(graph, c, round)
		if f.scoredMerge(graph, c, round) {
			changed = true
		}
		if !changed {
			c.rounds = round
			break
		}
	}
	f.infof(
		"cluster complete after %d rounds: %d members, %d frontier items",
		c.rounds,
		c.members.Len(),
		c.frontier.Len(),
	)
	return c, nil
}

// freeMerge absorbs every item that can be produced from the members alone, repeating until nothing new
// qualifies. Such an item never adds a frontier item, so it is absorbed regardless of its score.
func (f *finder) freeMerge(graph depgraph.DependencyGraph, c *Cluster, round int) bool {
	changed := false
	for {
		added := 0
		for _, item := range graph.ProducibleFrom(c.members).Sorted() {
			if c.members.Has(item) {
				continue
			}
			f.commit(graph, c, round, MergeKindFree, item)
			added++
		}
		if added == 0 {
			return changed
		}
		changed = true
	}
}

// scoredMerge absorbs the frontier item with the highest positive score. Ties go to the lexicographically
// smallest item.
func (f *finder) scoredMerge(graph depgraph.DependencyGraph, c *Cluster, round int) bool {
	var best depgraph.Item
	bestScore := 0
	found := false
	for _, candidate := range c.frontier.Sorted() {
		score := c.Score(graph, candidate)
		if !found || score > bestScore {
			best = candidate
			bestScore = score
			found = true
		}
	}
	if !found {
		return false
	}
	if bestScore <= 0 {
		f.debugf("round %d: best candidate %s has score %d, not merging", round, best, bestScore)
		return false
	}
	f.commit(graph, c, round, MergeKindScored, best)
	return true
}

func (f *finder) commit(graph depgraph.DependencyGraph, c *Cluster, round int, kind MergeKind, item depgraph.Item) {
	score := c.Score(graph, item)
	before := c.frontier.Len()
	c.absorb(graph, item)
	c.steps = append(c.steps, Step{
		Round:          round,
		Kind:           kind,
		Item:           item,
		Score:          score,
		FrontierBefore: before,
		FrontierAfter:  c.frontier.Len(),
	})
	f.infof("    adding %s (%s, score: %d)", item, kind, score)
}

func (f *finder) infof(format string, args ...any) {
	if f.logger != nil {
		f.logger.Infof(format, args...)
	}
}

func (f *finder) debugf(format string, args ...any) {
	if f.logger != nil {
		f.logger.Debugf(format, args...)
	}
}
