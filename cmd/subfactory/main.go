// Package main provides the main entrypoint for the subfactory cluster finder.
package main

import (
	"context"
	"flag"
	"fmt"
	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/subfactory"
	"go.flow.arcalot.io/subfactory/config"
	"go.flow.arcalot.io/subfactory/depgraph"
	"go.flow.arcalot.io/subfactory/export"
	"go.flow.arcalot.io/subfactory/loadfile"
	"os"
	"os/signal"
	"strings"
)

// These variables are filled using ldflags during the build process with Goreleaser.
// See https://goreleaser.com/cookbooks/using-main.version/
var (
	version = "development"
	commit  = "unknown"
	date    = "unknown"
)

// ExitCodeOK signals that the program terminated normally.
const ExitCodeOK = 0

// ExitCodeInvalidData signals that the program encountered invalid flags, configuration or graph data.
const ExitCodeInvalidData = 1

// ExitCodeSearchFailed indicates that a cluster search or writing its result failed.
const ExitCodeSearchFailed = 2

func main() {
	tempLogger := log.New(log.Config{
		Level:       log.LevelInfo,
		Destination: log.DestinationStdout,
		Stdout:      os.Stderr,
	})

	configFile := ""
	dir := "."
	graphFile := "recipe.dot"
	graphFormat := ""
	outputFormat := ""
	printVersion := false
	var seeds seedSetsFlag

	flag.BoolVar(&printVersion, "version", printVersion, "Print the subfactory version and exit.")
	flag.StringVar(&configFile, "config", configFile, "The configuration file to load, if any.")
	flag.StringVar(&dir, "context", dir, "The directory relative paths are resolved in.")
	flag.StringVar(&graphFile, "graph", graphFile, "The dependency graph file to load. Defaults to recipe.dot.")
	flag.StringVar(&graphFormat, "format", graphFormat, "The graph file format: dot or recipes.")
	flag.StringVar(&outputFormat, "output", outputFormat, "The output format: yaml, table, dot or mermaid.")
	flag.Var(&seeds, "seed", "A comma-separated seed set. May be repeated.")
	flag.Usage = func() {
		_, _ = os.Stderr.Write([]byte(`Usage: subfactory [OPTIONS] [SEED...]

Finds the smallest self-sufficient subfactory around each seed set: the items
produced inside it and the inputs it needs from outside.

Options:

  -version            Print the subfactory version and exit.

  -config FILENAME    The configuration file to load, if any.

  -context DIRECTORY  The directory relative file paths are resolved in.
                      Defaults to the current directory.

  -graph FILENAME     The dependency graph to load. Defaults to recipe.dot.

  -format FORMAT      The graph format, dot or recipes. Files ending in .dot
                      or .gv are read as DOT, others as a YAML or JSON recipe
                      list.

  -output FORMAT      The output format: yaml, table, dot or mermaid.
                      Overrides the configuration file.

  -seed ITEMS         A comma-separated seed set, for example
                      -seed petroleum-gas,light-oil. May be repeated to
                      search several clusters at once.

Positional arguments form one more seed set.
`))
	}
	flag.Parse()

	if printVersion {
		fmt.Printf(
			"Subfactory\n"+
				"==========\n"+
				"Version: %s\n"+
				"Commit: %s\n"+
				"Date: %s\n",
			version, commit, date,
		)
		return
	}

	seedSets := seeds.sets()
	if positional := parseSeedSet(strings.Join(flag.Args(), ",")); len(positional) > 0 {
		seedSets = append(seedSets, positional)
	}
	if len(seedSets) == 0 {
		tempLogger.Errorf("No seed items given.")
		flag.Usage()
		os.Exit(ExitCodeInvalidData)
	}

	requiredFiles := map[string]string{
		loadfile.KeyConfig: configFile,
		loadfile.KeyGraph:  graphFile,
	}
	fileCtx, err := loadfile.NewFileCacheUsingContext(dir, requiredFiles)
	if err != nil {
		flag.Usage()
		tempLogger.Errorf("context path resolution failed %s (%v)", dir, err)
		os.Exit(ExitCodeInvalidData)
	}
	if err := fileCtx.LoadContext(); err != nil {
		tempLogger.Errorf("Failed to load required files into context (%v)", err)
		flag.Usage()
		os.Exit(ExitCodeInvalidData)
	}

	cfg := config.Default()
	if configFile != "" {
		cfg, err = config.LoadYAML(fileCtx.ContentByKey(loadfile.KeyConfig))
		if err != nil {
			tempLogger.Errorf("Failed to load configuration file %s (%v)", configFile, err)
			flag.Usage()
			os.Exit(ExitCodeInvalidData)
		}
	}
	if outputFormat != "" {
		if !isOutputFormat(outputFormat) {
			tempLogger.Errorf("Invalid output format: %s", outputFormat)
			flag.Usage()
			os.Exit(ExitCodeInvalidData)
		}
		cfg.Output.Format = export.Format(outputFormat)
	}

	// now we are ready to instantiate our main logger
	cfg.Log.Stdout = os.Stderr
	logger := log.New(cfg.Log).WithLabel("source", "main")

	finder, err := subfactory.New(cfg)
	if err != nil {
		logger.Errorf("Failed to initialize the engine with config file %s (%v)", configFile, err)
		flag.Usage()
		os.Exit(ExitCodeInvalidData)
	}

	graph, err := finder.LoadGraph(
		map[string][]byte{graphFile: fileCtx.ContentByKey(loadfile.KeyGraph)},
		graphFile,
		subfactory.GraphFormat(graphFormat),
	)
	if err != nil {
		logger.Errorf("Invalid dependency graph (%v)", err)
		os.Exit(ExitCodeInvalidData)
	}

	os.Exit(findClusters(finder, graph, seedSets, logger))
}

func findClusters(
	finder subfactory.Engine,
	graph depgraph.DependencyGraph,
	seedSets [][]depgraph.Item,
	logger log.Logger,
) int {
	ctx, cancel := context.WithCancel(context.Background())
	ctrlC := make(chan os.Signal, 2)
	signal.Notify(ctrlC, os.Interrupt)

	go handleOSInterrupt(ctrlC, cancel, logger)
	defer func() {
		signal.Stop(ctrlC)
		close(ctrlC) // Ensure that the goroutine exits
		cancel()
	}()

	clusters, err := finder.FindClusters(ctx, graph, seedSets)
	if err != nil {
		logger.Errorf("Cluster search failed (%v)", err)
		return ExitCodeSearchFailed
	}
	if err := finder.Export(os.Stdout, graph, clusters); err != nil {
		logger.Errorf("Failed to write the result (%v)", err)
		return ExitCodeSearchFailed
	}
	return ExitCodeOK
}

func handleOSInterrupt(ctrlC chan os.Signal, cancel context.CancelFunc, logger log.Logger) {
	_, ok := <-ctrlC
	if !ok {
		return
	}
	logger.Infof("Cancelling the cluster search.")
	cancel()

	_, ok = <-ctrlC
	if !ok {
		return
	}
	logger.Warningf("Force exiting.")
	os.Exit(ExitCodeSearchFailed)
}

func isOutputFormat(value string) bool {
	for _, format := range export.Formats {
		if string(format) == value {
			return true
		}
	}
	return false
}
