package export

import (
	"io"

	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/subfactory/cluster"
	"go.flow.arcalot.io/subfactory/depgraph"
	"go.flow.arcalot.io/subfactory/internal/tableprinter"
	"go.flow.arcalot.io/subfactory/internal/tidy"
)

const (
	roleSeed     = "seed"
	roleMember   = "member"
	roleFrontier = "frontier"
)

// WriteTable writes an ITEM / ROLE table of the cluster. Seeds are listed as seeds, not as members.
func WriteTable(w io.Writer, c *cluster.Cluster, logger log.Logger) error {
	seeds := depgraph.NewItemSet(c.Seeds()...)
	members := depgraph.NewItemSet(c.Members()...)
	for seed := range seeds {
		members.Remove(seed)
	}
	roles := tidy.Group(map[string]depgraph.ItemSet{
		roleSeed:     seeds,
		roleMember:   members,
		roleFrontier: depgraph.NewItemSet(c.Frontier()...),
	})
	return tableprinter.PrintItemRoles(w, roles, logger)
}
