package subfactory_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	log "go.arcalot.io/log/v2"
	"go.flow.arcalot.io/subfactory"
	"go.flow.arcalot.io/subfactory/cluster"
	"go.flow.arcalot.io/subfactory/depgraph"
	"go.flow.arcalot.io/subfactory/dot"
	"go.flow.arcalot.io/subfactory/export"

	"go.arcalot.io/assert"
	"go.flow.arcalot.io/subfactory/config"
)

const recipeDOT = `digraph recipes {
	"petroleum-gas" -> coal
	"petroleum-gas" -> "crude-oil"
	"petroleum-gas" -> "light-oil" -> "crude-oil"
	"petroleum-gas" -> steam -> water
	"petroleum-gas" -> water
	battery -> "sulfuric-acid" -> sulfur
	battery -> "petroleum-gas"
	"sulfuric-acid" -> "iron-plate"
}`

const recipeYAML = `- name: battery
  ingredients: [sulfuric-acid, petroleum-gas]
- name: sulfuric-acid
  ingredients: [sulfur, iron-plate]
`

func createTestEngine(t *testing.T) subfactory.Engine {
	return createTestEngineWithConfig(t, config.Default())
}

func createTestEngineWithConfig(t *testing.T, cfg *config.Config) subfactory.Engine {
	cfg.Log.T = t
	cfg.Log.Level = log.LevelDebug
	cfg.Log.Destination = log.DestinationTest
	e, err := subfactory.New(cfg)
	assert.NoError(t, err)
	return e
}

func loadTestGraph(t *testing.T, e subfactory.Engine) depgraph.DependencyGraph {
	return assert.NoErrorR[depgraph.DependencyGraph](t)(e.LoadGraph(
		map[string][]byte{"recipe.dot": []byte(recipeDOT)},
		"recipe.dot",
		"",
	))
}

func TestDetectGraphFormat(t *testing.T) {
	assert.Equals(t, subfactory.DetectGraphFormat("recipe.dot"), subfactory.GraphFormatDOT)
	assert.Equals(t, subfactory.DetectGraphFormat("dir/recipe.GV"), subfactory.GraphFormatDOT)
	assert.Equals(t, subfactory.DetectGraphFormat("recipes.yaml"), subfactory.GraphFormatRecipes)
	assert.Equals(t, subfactory.DetectGraphFormat("recipes.json"), subfactory.GraphFormatRecipes)
}

func TestNoGraphFile(t *testing.T) {
	_, err := createTestEngine(t).LoadGraph(map[string][]byte{}, "recipe.dot", "")
	assert.Error(t, err)
	if !errors.Is(err, subfactory.ErrNoGraphFile) {
		t.Fatalf("Incorrect error returned.")
	}
}

func TestEmptyGraphFile(t *testing.T) {
	_, err := createTestEngine(t).LoadGraph(map[string][]byte{"recipe.dot": []byte(" \n")}, "recipe.dot", "")
	assert.Error(t, err)
	if !errors.Is(err, subfactory.ErrEmptyGraphFile) {
		t.Fatalf("Incorrect error returned.")
	}
}

func TestUnknownGraphFormat(t *testing.T) {
	_, err := createTestEngine(t).LoadGraph(map[string][]byte{"recipe.dot": []byte(recipeDOT)}, "recipe.dot", "xml")
	var unknown subfactory.ErrUnknownFormat
	assert.Equals(t, errors.As(err, &unknown), true)
	assert.Equals(t, unknown.Format, subfactory.GraphFormat("xml"))
}

func TestInvalidGraphFile(t *testing.T) {
	_, err := createTestEngine(t).LoadGraph(
		map[string][]byte{"recipe.dot": []byte("digraph { a -> }")},
		"recipe.dot",
		"",
	)
	assert.Error(t, err)
	var parseErr *dot.ParseError
	assert.Equals(t, errors.As(err, &parseErr), true)
	assert.Equals(t, parseErr.Line, 1)
}

func TestLoadRecipes(t *testing.T) {
	g := assert.NoErrorR[depgraph.DependencyGraph](t)(createTestEngine(t).LoadGraph(
		map[string][]byte{"recipes.yaml": []byte(recipeYAML), "other.txt": []byte("ignored")},
		"recipes.yaml",
		"",
	))
	assert.Equals(t, g.IngredientsOf("battery"), []depgraph.Item{"petroleum-gas", "sulfuric-acid"})
}

func TestRejectCycles(t *testing.T) {
	cfg := config.Default()
	cfg.Graph.RejectCycles = true
	_, err := createTestEngineWithConfig(t, cfg).LoadGraph(
		map[string][]byte{"cycle.dot": []byte("digraph { a -> b -> a }")},
		"cycle.dot",
		subfactory.GraphFormatDOT,
	)
	assert.Equals(t, errors.Is(err, depgraph.ErrGraphHasCycles), true)
}

func TestFindCluster(t *testing.T) {
	e := createTestEngine(t)
	g := loadTestGraph(t, e)
	c := assert.NoErrorR[*cluster.Cluster](t)(e.FindCluster(g, []depgraph.Item{"petroleum-gas"}))
	assert.Equals(t, c.Members(), []depgraph.Item{
		"coal", "crude-oil", "light-oil", "petroleum-gas", "steam", "water",
	})
	assert.Equals(t, len(c.Frontier()), 0)
}

func TestFindClusterUnknownSeed(t *testing.T) {
	e := createTestEngine(t)
	g := loadTestGraph(t, e)
	c := assert.NoErrorR[*cluster.Cluster](t)(e.FindCluster(g, []depgraph.Item{"rocket-fuel"}))
	assert.Equals(t, c.UnknownSeeds(), []depgraph.Item{"rocket-fuel"})
	assert.Equals(t, c.Members(), []depgraph.Item{"rocket-fuel"})
}

func TestFindClusters(t *testing.T) {
	e := createTestEngine(t)
	g := loadTestGraph(t, e)
	seedSets := [][]depgraph.Item{
		{"battery"},
		{"petroleum-gas"},
		{"sulfuric-acid"},
		{"battery"},
	}
	clusters := assert.NoErrorR[[]*cluster.Cluster](t)(e.FindClusters(context.Background(), g, seedSets))
	assert.Equals(t, len(clusters), len(seedSets))
	for i, seeds := range seedSets {
		expected := assert.NoErrorR[*cluster.Cluster](t)(e.FindCluster(g, seeds))
		assert.Equals(t, clusters[i].Seeds(), seeds)
		assert.Equals(t, clusters[i].Equals(expected), true)
	}
	assert.Equals(t, clusters[0].Equals(clusters[3]), true)
}

func TestFindClustersInvalidSeedSet(t *testing.T) {
	e := createTestEngine(t)
	g := loadTestGraph(t, e)
	_, err := e.FindClusters(context.Background(), g, [][]depgraph.Item{{"battery"}, {}})
	assert.Error(t, err)
	var invalid cluster.ErrInvalidInput
	assert.Equals(t, errors.As(err, &invalid), true)
	assert.Contains(t, err.Error(), "seed set 2")

	_, err = e.FindClusters(context.Background(), g, nil)
	assert.Equals(t, errors.Is(err, subfactory.ErrNoSeeds), true)
}

func TestFindClustersCancelled(t *testing.T) {
	e := createTestEngine(t)
	g := loadTestGraph(t, e)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.FindClusters(ctx, g, [][]depgraph.Item{{"battery"}})
	assert.Equals(t, errors.Is(err, context.Canceled), true)
}

func TestExport(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Format = export.FormatDOT
	e := createTestEngineWithConfig(t, cfg)
	g := loadTestGraph(t, e)
	c := assert.NoErrorR[*cluster.Cluster](t)(e.FindCluster(g, []depgraph.Item{"battery"}))

	buf := bytes.NewBuffer(nil)
	assert.NoError(t, e.Export(buf, g, []*cluster.Cluster{c}))
	assert.Equals(t, buf.String(), export.DOT(g, c).String())

	parsed, err := dot.Parse(buf.Bytes(), "cluster.dot")
	assert.NoError(t, err)
	_, ok := parsed.Node("sulfuric-acid")
	assert.Equals(t, ok, true)
}
