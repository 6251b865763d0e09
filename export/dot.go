package export

import (
	"strings"

	"go.flow.arcalot.io/subfactory/cluster"
	"go.flow.arcalot.io/subfactory/depgraph"
	"go.flow.arcalot.io/subfactory/dot"
)

// DOT renders the cluster as a digraph: members are filled boxes, seeds bold, frontier items dashed. Every member
// has an edge to each of its ingredients.
func DOT(g depgraph.DependencyGraph, c *cluster.Cluster) *dot.Graph {
	result := dot.NewGraph(dot.GraphTypeDigraph)
	result.ID = "cluster"
	result.GraphAttributes.Set(dot.Attribute{Key: "label", Value: "seeds: " + strings.Join(itemStrings(c.Seeds()), ", ")})
	result.NodeAttributes.Set(dot.Attribute{Key: "shape", Value: "box"})

	seeds := depgraph.NewItemSet(c.Seeds()...)
	members := c.Members()
	for _, member := range members {
		style := "filled"
		if seeds.Has(member) {
			style = "filled,bold"
		}
		result.AddNode(string(member), dot.Attribute{Key: "style", Value: style})
	}
	for _, item := range c.Frontier() {
		result.AddNode(string(item), dot.Attribute{Key: "style", Value: "dashed"})
	}
	for _, member := range members {
		for _, ingredient := range g.IngredientsOf(member) {
			result.AddEdge(string(member), string(ingredient))
		}
	}
	return result
}

func itemStrings(items []depgraph.Item) []string {
	result := make([]string, len(items))
	for i, item := range items {
		result[i] = string(item)
	}
	return result
}
