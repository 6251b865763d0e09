package depgraph

import (
	"fmt"

	"go.arcalot.io/dgraph"
)

// Builder collects recipes and produces an immutable DependencyGraph. Several recipes for the same product are
// merged into one recipe holding the union of their ingredients. This loses the distinction between alternative
// recipes, which is accepted: the cluster search does not model ratios or recipe choice.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	recipes      map[Item]ItemSet
	items        ItemSet
	rejectCycles bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		recipes: map[Item]ItemSet{},
		items:   ItemSet{},
	}
}

// RejectCycles makes Build fail with ErrGraphHasCycles if any item transitively requires itself.
func (b *Builder) RejectCycles(reject bool) *Builder {
	b.rejectCycles = reject
	return b
}

// AddItem registers an item without adding a recipe for it. Items that never get a recipe are raw.
func (b *Builder) AddItem(item Item) error {
	if item == "" {
		return ErrEmptyItemName
	}
	b.items.Add(item)
	return nil
}

// AddRecipe merges a recipe for product into the builder. Ingredients that are not otherwise known become raw
// items. An ingredient equal to the product itself (a catalyst) is dropped, since it never adds an external input.
func (b *Builder) AddRecipe(product Item, ingredients ...Item) error {
	if product == "" {
		return ErrEmptyItemName
	}
	for _, ingredient := range ingredients {
		if ingredient == "" {
			return ErrInvalidRecipe{product, ErrEmptyItemName}
		}
	}
	b.items.Add(product)
	merged, ok := b.recipes[product]
	if !ok {
		merged = ItemSet{}
		b.recipes[product] = merged
	}
	for _, ingredient := range ingredients {
		b.items.Add(ingredient)
		if ingredient != product {
			merged.Add(ingredient)
		}
	}
	return nil
}

// Build creates the dependency graph. The builder may be reused afterwards; the graph does not share state with it.
func (b *Builder) Build() (DependencyGraph, error) {
	items := b.items.Sorted()
	result := &dependencyGraph{
		dag:         dgraph.New[Item](),
		items:       items,
		ingredients: make(map[Item][]Item, len(b.recipes)),
		usedBy:      make(map[Item][]Item, len(items)),
	}
	for _, item := range items {
		if _, err := result.dag.AddNode(string(item), item); err != nil {
			return nil, fmt.Errorf("failed to add item %s to the dependency graph (%w)", item, err)
		}
		result.usedBy[item] = nil
	}
	for _, product := range items {
		recipe, ok := b.recipes[product]
		if !ok {
			continue
		}
		ingredients := recipe.Sorted()
		result.ingredients[product] = ingredients
		node, err := result.dag.GetNodeByID(string(product))
		if err != nil {
			return nil, fmt.Errorf("bug: item %s is not in the dependency graph (%w)", product, err)
		}
		for _, ingredient := range ingredients {
			if err := node.Connect(string(ingredient)); err != nil {
				return nil, fmt.Errorf("failed to connect %s to ingredient %s (%w)", product, ingredient, err)
			}
			result.usedBy[ingredient] = append(result.usedBy[ingredient], product)
		}
	}
	result.cyclic = result.dag.HasCycles()
	if result.cyclic && b.rejectCycles {
		return nil, ErrGraphHasCycles
	}
	return result, nil
}

// FromRecipes builds a graph from a mapping of product to ingredients, the shape a pre-merged recipe database has.
func FromRecipes(recipes map[Item][]Item) (DependencyGraph, error) {
	b := NewBuilder()
	for product, ingredients := range recipes {
		if err := b.AddRecipe(product, ingredients...); err != nil {
			return nil, err
		}
	}
	return b.Build()
}
