package export_test

import (
	"bytes"
	"errors"
	"testing"

	"go.arcalot.io/assert"
	"go.arcalot.io/lang"
	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/subfactory/cluster"
	"go.flow.arcalot.io/subfactory/depgraph"
	"go.flow.arcalot.io/subfactory/export"
	"go.flow.arcalot.io/subfactory/internal/tableprinter"
	"gopkg.in/yaml.v3"
)

func batteryCluster(t *testing.T) (depgraph.DependencyGraph, *cluster.Cluster) {
	g := lang.Must2(depgraph.FromRecipes(map[depgraph.Item][]depgraph.Item{
		"battery":       {"sulfuric-acid", "petroleum-gas"},
		"sulfuric-acid": {"sulfur", "iron-plate"},
	}))
	c := assert.NoErrorR[*cluster.Cluster](t)(cluster.Find(g, []depgraph.Item{"battery"}))
	return g, c
}

func testLogger(t *testing.T) log.Logger {
	return log.New(log.Config{Level: log.LevelDebug, Destination: log.DestinationTest, T: t})
}

func TestDOT(t *testing.T) {
	g, c := batteryCluster(t)
	assert.Equals(t, export.DOT(g, c).String(), `digraph cluster {
  graph [label="seeds: battery"];
  node [shape=box];
  battery [style="filled,bold"];
  "petroleum-gas" [style=filled];
  "sulfuric-acid" [style=dashed];
  battery -> "petroleum-gas";
  battery -> "sulfuric-acid";
}
`)
}

func TestMermaid(t *testing.T) {
	g, c := batteryCluster(t)
	diagram := assert.NoErrorR[string](t)(export.Mermaid(g, c))
	assert.Contains(t, diagram, "battery")
	assert.Contains(t, diagram, "petroleum-gas")
	assert.Contains(t, diagram, "sulfuric-acid")
}

func TestYAML(t *testing.T) {
	_, c := batteryCluster(t)
	buf := bytes.NewBuffer(nil)
	assert.NoError(t, export.WriteYAML(buf, []*cluster.Cluster{c}, export.Options{}))

	var doc export.Document
	assert.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equals(t, doc, export.Document{
		Seeds:    []depgraph.Item{"battery"},
		Members:  []depgraph.Item{"battery", "petroleum-gas"},
		Frontier: []depgraph.Item{"sulfuric-acid"},
		Rounds:   2,
	})
	assert.Contains(t, buf.String(), "rounds: 2")
	assert.Equals(t, bytes.Contains(buf.Bytes(), []byte("steps")), false)
}

func TestYAMLSteps(t *testing.T) {
	_, c := batteryCluster(t)
	doc := export.NewDocument(c, export.Options{IncludeSteps: true})
	assert.Equals(t, doc.Steps, []cluster.Step{
		{
			Round:          1,
			Kind:           cluster.MergeKindScored,
			Item:           "petroleum-gas",
			Score:          1,
			FrontierBefore: 2,
			FrontierAfter:  1,
		},
	})
}

func TestYAMLMultipleClusters(t *testing.T) {
	g, battery := batteryCluster(t)
	acid := assert.NoErrorR[*cluster.Cluster](t)(cluster.Find(g, []depgraph.Item{"sulfuric-acid"}))
	buf := bytes.NewBuffer(nil)
	assert.NoError(t, export.Write(
		buf,
		export.FormatYAML,
		g,
		[]*cluster.Cluster{battery, acid},
		export.Options{},
		testLogger(t),
	))
	var docs []export.Document
	assert.NoError(t, yaml.Unmarshal(buf.Bytes(), &docs))
	assert.Equals(t, len(docs), 2)
	assert.Equals(t, docs[0].Seeds, []depgraph.Item{"battery"})
	assert.Equals(t, docs[1].Seeds, []depgraph.Item{"sulfuric-acid"})
}

func TestTable(t *testing.T) {
	g, c := batteryCluster(t)
	expected := bytes.NewBuffer(nil)
	assert.NoError(t, tableprinter.PrintTable(expected, []string{"item", "role"}, [][]string{
		{"sulfuric-acid", "frontier"},
		{"petroleum-gas", "member"},
		{"battery", "seed"},
	}))
	buf := bytes.NewBuffer(nil)
	assert.NoError(t, export.Write(buf, export.FormatTable, g, []*cluster.Cluster{c}, export.Options{}, testLogger(t)))
	assert.Equals(t, buf.String(), expected.String())
}

func TestWriteUnknownFormat(t *testing.T) {
	g, c := batteryCluster(t)
	err := export.Write(bytes.NewBuffer(nil), "svg", g, []*cluster.Cluster{c}, export.Options{}, testLogger(t))
	var unknown export.ErrUnknownFormat
	assert.Equals(t, errors.As(err, &unknown), true)
	assert.Equals(t, unknown.Format, export.Format("svg"))
}

func TestWriteDOT(t *testing.T) {
	g, c := batteryCluster(t)
	buf := bytes.NewBuffer(nil)
	assert.NoError(t, export.Write(buf, export.FormatDOT, g, []*cluster.Cluster{c}, export.Options{}, testLogger(t)))
	assert.Equals(t, buf.String(), export.DOT(g, c).String())
}
