package config

import (
	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/subfactory/export"
	"go.flow.arcalot.io/subfactory/loader"
)

// Config is the main configuration structure that configures the engine for loading graphs, searching clusters
// and writing the results.
type Config struct {
	// Log configures logging for cluster searches.
	Log log.Config `json:"log" yaml:"log"`
	// Graph configures how dependency graphs are loaded.
	Graph GraphConfig `json:"graph" yaml:"graph"`
	// Output configures how clusters are written.
	Output OutputConfig `json:"output" yaml:"output"`
}

// GraphConfig configures how dependency graphs are loaded.
type GraphConfig struct {
	// ItemNames selects whether DOT nodes are named by their ID or by their label attribute.
	ItemNames loader.ItemNames `json:"item_names" yaml:"item_names"`
	// WarnUnknownSeeds logs a warning for every seed item the graph does not contain.
	WarnUnknownSeeds bool `json:"warn_unknown_seeds" yaml:"warn_unknown_seeds"`
	// RejectCycles refuses graphs in which an item transitively requires itself.
	RejectCycles bool `json:"reject_cycles" yaml:"reject_cycles"`
}

// LoaderOptions returns the options for the graph loader.
func (g GraphConfig) LoaderOptions() loader.Options {
	return loader.Options{
		ItemNames:    g.ItemNames,
		RejectCycles: g.RejectCycles,
	}
}

// OutputConfig configures how clusters are written.
type OutputConfig struct {
	Format       export.Format `json:"format" yaml:"format"`
	IncludeSteps bool          `json:"include_steps" yaml:"include_steps"`
}

// ExportOptions returns the options for the exporter.
func (o OutputConfig) ExportOptions() export.Options {
	return export.Options{IncludeSteps: o.IncludeSteps}
}
