// Package subfactory finds self-sufficient subfactories in item dependency graphs. The Engine ties together the
// graph loaders, the cluster search and the exporters, configured by a config.Config.
package subfactory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/subfactory/cluster"
	"go.flow.arcalot.io/subfactory/config"
	"go.flow.arcalot.io/subfactory/depgraph"
	"go.flow.arcalot.io/subfactory/export"
	"go.flow.arcalot.io/subfactory/loader"
	"golang.org/x/sync/errgroup"
)

// GraphFormat is the format of a graph file.
type GraphFormat string

const (
	// GraphFormatDOT is a Graphviz DOT graph with edges from products to their ingredients.
	GraphFormatDOT GraphFormat = "dot"
	// GraphFormatRecipes is a YAML or JSON recipe database.
	GraphFormatRecipes GraphFormat = "recipes"
)

// DetectGraphFormat guesses the format from the file extension. Files ending in .dot or .gv are DOT graphs,
// everything else is treated as a recipe database.
func DetectGraphFormat(filename string) GraphFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".dot", ".gv":
		return GraphFormatDOT
	default:
		return GraphFormatRecipes
	}
}

// Engine loads dependency graphs, finds clusters in them and writes the results.
type Engine interface {
	// LoadGraph parses the graph file from the passed files. Additional files may be present in the map; only the
	// one named graphFileName is read. An empty format is detected from the file name.
	LoadGraph(
		files map[string][]byte,
		graphFileName string,
		format GraphFormat,
	) (depgraph.DependencyGraph, error)
	// FindCluster runs a single cluster search.
	FindCluster(graph depgraph.DependencyGraph, seeds []depgraph.Item) (*cluster.Cluster, error)
	// FindClusters runs one cluster search per seed set concurrently on the shared graph. The results are in the
	// order of the seed sets. The first failing search cancels the ones that have not started yet.
	FindClusters(
		ctx context.Context,
		graph depgraph.DependencyGraph,
		seedSets [][]depgraph.Item,
	) ([]*cluster.Cluster, error)
	// Export writes the clusters in the configured output format.
	Export(w io.Writer, graph depgraph.DependencyGraph, clusters []*cluster.Cluster) error
}

type engine struct {
	logger log.Logger
	config *config.Config
}

func (e engine) LoadGraph(
	files map[string][]byte,
	graphFileName string,
	format GraphFormat,
) (depgraph.DependencyGraph, error) {
	data, ok := files[graphFileName]
	if !ok {
		return nil, ErrNoGraphFile
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyGraphFile
	}
	if format == "" {
		format = DetectGraphFormat(graphFileName)
	}
	options := e.config.Graph.LoaderOptions()

	var graph depgraph.DependencyGraph
	var err error
	switch format {
	case GraphFormatDOT:
		graph, err = loader.ParseDOT(data, graphFileName, options)
	case GraphFormatRecipes:
		graph, err = loader.ParseRecipes(data, graphFileName, options)
	default:
		return nil, ErrUnknownFormat{format}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load graph from %s (%w)", graphFileName, err)
	}
	e.logger.Infof("Loaded %d items from %s.", graph.Len(), graphFileName)
	if graph.HasCycles() {
		e.logger.Warningf("The dependency graph in %s has at least one cycle.", graphFileName)
	}
	e.logger.Debugf("Dependency graph Mermaid:\n%s", graph.Mermaid())
	return graph, nil
}

func (e engine) FindCluster(graph depgraph.DependencyGraph, seeds []depgraph.Item) (*cluster.Cluster, error) {
	return e.findCluster(graph, seeds, e.logger)
}

func (e engine) findCluster(
	graph depgraph.DependencyGraph,
	seeds []depgraph.Item,
	logger log.Logger,
) (*cluster.Cluster, error) {
	c, err := cluster.NewFinder(logger).Find(graph, seeds)
	if err != nil {
		return nil, err
	}
	if e.config.Graph.WarnUnknownSeeds {
		for _, seed := range c.UnknownSeeds() {
			logger.Warningf("Seed %s is not part of the dependency graph, treating it as a raw item.", seed)
		}
	}
	return c, nil
}

func (e engine) FindClusters(
	ctx context.Context,
	graph depgraph.DependencyGraph,
	seedSets [][]depgraph.Item,
) ([]*cluster.Cluster, error) {
	if len(seedSets) == 0 {
		return nil, ErrNoSeeds
	}
	results := make([]*cluster.Cluster, len(seedSets))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, seeds := range seedSets {
		i, seeds := i, seeds
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			logger := e.logger.WithLabel("seeds", fmt.Sprintf("%v", seeds))
			c, err := e.findCluster(graph, seeds, logger)
			if err != nil {
				return fmt.Errorf("cluster search for seed set %d failed (%w)", i+1, err)
			}
			results[i] = c
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e engine) Export(w io.Writer, graph depgraph.DependencyGraph, clusters []*cluster.Cluster) error {
	return export.Write(
		w,
		e.config.Output.Format,
		graph,
		clusters,
		e.config.Output.ExportOptions(),
		e.logger,
	)
}
