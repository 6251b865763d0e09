package loader

import (
	"fmt"

	"go.flow.arcalot.io/subfactory/depgraph"
	"go.flow.arcalot.io/subfactory/dot"
)

// ParseDOT parses a DOT document and converts it with FromDOT.
func ParseDOT(data []byte, filename string, options Options) (depgraph.DependencyGraph, error) {
	g, err := dot.Parse(data, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s (%w)", filename, err)
	}
	return FromDOT(g, options)
}

// FromDOT converts a DOT graph into a dependency graph. Every edge a -> b reads as "a needs b"; edges of an
// undirected graph are read the same way, left to right. Every node becomes an item, so nodes without edges
// are raw items that nothing uses.
func FromDOT(g *dot.Graph, options Options) (depgraph.DependencyGraph, error) {
	b, err := options.builder()
	if err != nil {
		return nil, err
	}
	names := make(map[string]depgraph.Item, len(g.Nodes))
	for _, n := range g.Nodes {
		name := depgraph.Item(n.ID)
		if options.ItemNames == ItemNamesLabel {
			if label, ok := n.Attributes.Get("label"); ok {
				name = depgraph.Item(label)
			}
		}
		if err := b.AddItem(name); err != nil {
			return nil, fmt.Errorf("invalid node %q (%w)", n.ID, err)
		}
		names[n.ID] = name
	}
	for _, e := range g.Edges {
		if err := b.AddRecipe(names[e.From], names[e.To]); err != nil {
			return nil, fmt.Errorf("invalid edge %q -> %q (%w)", e.From, e.To, err)
		}
	}
	return b.Build()
}
