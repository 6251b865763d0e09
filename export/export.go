// Package export writes found clusters in the supported output formats.
package export

import (
	"fmt"
	"io"

	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/subfactory/cluster"
	"go.flow.arcalot.io/subfactory/depgraph"
)

// Format is an output format.
type Format string

const (
	// FormatYAML writes the seeds, members, frontier and optionally the merge trace as YAML.
	FormatYAML Format = "yaml"
	// FormatTable writes an aligned table of items and their roles.
	FormatTable Format = "table"
	// FormatDOT writes a Graphviz digraph of the cluster.
	FormatDOT Format = "dot"
	// FormatMermaid writes a Mermaid flowchart of the cluster.
	FormatMermaid Format = "mermaid"
)

// Formats lists all supported output formats.
var Formats = []Format{FormatYAML, FormatTable, FormatDOT, FormatMermaid}

// ErrUnknownFormat is returned for an output format that is not in Formats.
type ErrUnknownFormat struct {
	Format Format
}

func (e ErrUnknownFormat) Error() string {
	return fmt.Sprintf("unknown output format: %q (supported: %v)", e.Format, Formats)
}

// Options controls the output.
type Options struct {
	// IncludeSteps adds the merge trace to the YAML output.
	IncludeSteps bool
}

// Write writes the clusters in the given format. Multiple clusters are written one after the other, except for
// YAML, where they form a list.
func Write(
	w io.Writer,
	format Format,
	g depgraph.DependencyGraph,
	clusters []*cluster.Cluster,
	options Options,
	logger log.Logger,
) error {
	switch format {
	case FormatYAML:
		return WriteYAML(w, clusters, options)
	case FormatTable:
		for i, c := range clusters {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := WriteTable(w, c, logger); err != nil {
				return err
			}
		}
		return nil
	case FormatDOT:
		for _, c := range clusters {
			if err := DOT(g, c).Write(w); err != nil {
				return err
			}
		}
		return nil
	case FormatMermaid:
		for _, c := range clusters {
			diagram, err := Mermaid(g, c)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, diagram); err != nil {
				return err
			}
		}
		return nil
	default:
		return ErrUnknownFormat{format}
	}
}
