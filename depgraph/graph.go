// Package depgraph holds the read-only item dependency graph the cluster search runs on. An edge from item A to
// item B means that producing A directly requires B. Items without a recipe are raw items.
package depgraph

import (
	"go.arcalot.io/dgraph"
	"go.flow.arcalot.io/subfactory/internal/stack"
)

// Recipe is the merged set of ingredients required to produce one item. If several real recipes produce the same
// item, their ingredient sets have already been merged into one.
type Recipe struct {
	Product     Item
	Ingredients []Item
}

// DependencyGraph is the immutable item/recipe graph. It is safe for concurrent use by multiple readers.
type DependencyGraph interface {
	// IngredientsOf returns the direct dependencies of the item in lexicographic order. Raw and unknown items have
	// no ingredients.
	IngredientsOf(item Item) []Item
	// ProducibleFrom returns every item that has a recipe whose full ingredient set is contained in items. Raw items
	// are never reported, they can only be acquired, not produced.
	ProducibleFrom(items ItemSet) ItemSet
	// Has returns true if the item is a node of the graph.
	Has(item Item) bool
	// IsRaw returns true if the item has no recipe. Unknown items are raw.
	IsRaw(item Item) bool
	// Recipe returns the merged recipe of the item, if it has one.
	Recipe(item Item) (Recipe, bool)
	// Items returns all nodes in lexicographic order.
	Items() []Item
	// Len returns the number of nodes.
	Len() int
	// Closure returns the item and everything it transitively requires.
	Closure(item Item) ItemSet
	// HasCycles returns true if at least one item transitively requires itself.
	HasCycles() bool
	// Mermaid renders the graph as a Mermaid flowchart.
	Mermaid() string
}

type dependencyGraph struct {
	dag         dgraph.DirectedGraph[Item]
	items       []Item
	ingredients map[Item][]Item
	// usedBy is the reverse index of ingredients, used to narrow down ProducibleFrom candidates.
	usedBy map[Item][]Item
	cyclic bool
}

func (d *dependencyGraph) IngredientsOf(item Item) []Item {
	return d.ingredients[item]
}

func (d *dependencyGraph) ProducibleFrom(items ItemSet) ItemSet {
	result := ItemSet{}
	for available := range items {
		for _, candidate := range d.usedBy[available] {
			if result.Has(candidate) {
				continue
			}
			if items.ContainsAll(d.ingredients[candidate]) {
				result.Add(candidate)
			}
		}
	}
	return result
}

func (d *dependencyGraph) Has(item Item) bool {
	_, ok := d.usedBy[item]
	return ok
}

func (d *dependencyGraph) IsRaw(item Item) bool {
	return len(d.ingredients[item]) == 0
}

func (d *dependencyGraph) Recipe(item Item) (Recipe, bool) {
	ingredients, ok := d.ingredients[item]
	if !ok || len(ingredients) == 0 {
		return Recipe{}, false
	}
	return Recipe{
		Product:     item,
		Ingredients: append([]Item(nil), ingredients...),
	}, true
}

func (d *dependencyGraph) Items() []Item {
	return append([]Item(nil), d.items...)
}

func (d *dependencyGraph) Len() int {
	return len(d.items)
}

func (d *dependencyGraph) Closure(item Item) ItemSet {
	result := NewItemSet(item)
	pending := stack.New(d.ingredients[item]...)
	for !pending.Empty() {
		next, _ := pending.Pop()
		if result.Has(next) {
			continue
		}
		result.Add(next)
		pending.Push(d.ingredients[next]...)
	}
	return result
}

func (d *dependencyGraph) HasCycles() bool {
	return d.cyclic
}

func (d *dependencyGraph) Mermaid() string {
	return d.dag.Mermaid()
}
