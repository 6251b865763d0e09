// Package loader turns graph and recipe files into dependency graphs. A DOT graph is read with edges pointing
// from a product to its ingredients; a recipe database is a YAML or JSON list of recipes.
package loader

import (
	"fmt"

	"go.flow.arcalot.io/subfactory/depgraph"
)

// ItemNames selects which value of a DOT node names the item.
type ItemNames string

const (
	// ItemNamesID names items after the node ID.
	ItemNamesID ItemNames = "id"
	// ItemNamesLabel names items after the label attribute, falling back to the node ID for unlabelled nodes.
	ItemNamesLabel ItemNames = "label"
)

// Options controls how a dependency graph is built.
type Options struct {
	ItemNames    ItemNames
	RejectCycles bool
}

func (o Options) builder() (*depgraph.Builder, error) {
	switch o.ItemNames {
	case "", ItemNamesID, ItemNamesLabel:
	default:
		return nil, fmt.Errorf("invalid item name source: %q", o.ItemNames)
	}
	return depgraph.NewBuilder().RejectCycles(o.RejectCycles), nil
}
