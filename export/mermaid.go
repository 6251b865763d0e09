package export

import (
	"fmt"

	"go.arcalot.io/dgraph"
	"go.flow.arcalot.io/subfactory/cluster"
	"go.flow.arcalot.io/subfactory/depgraph"
)

// Mermaid renders the cluster's members and frontier, with an edge from every member to each of its ingredients.
func Mermaid(g depgraph.DependencyGraph, c *cluster.Cluster) (string, error) {
	sub := dgraph.New[depgraph.Item]()
	members := c.Members()
	for _, item := range append(members, c.Frontier()...) {
		if _, err := sub.AddNode(string(item), item); err != nil {
			return "", fmt.Errorf("failed to add %s to the cluster diagram (%w)", item, err)
		}
	}
	for _, member := range members {
		node, err := sub.GetNodeByID(string(member))
		if err != nil {
			return "", fmt.Errorf("bug: member %s missing from the cluster diagram (%w)", member, err)
		}
		for _, ingredient := range g.IngredientsOf(member) {
			if err := node.Connect(string(ingredient)); err != nil {
				return "", fmt.Errorf("failed to connect %s to %s in the cluster diagram (%w)", member, ingredient, err)
			}
		}
	}
	return sub.Mermaid(), nil
}
