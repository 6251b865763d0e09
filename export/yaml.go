package export

import (
	"io"

	"go.flow.arcalot.io/subfactory/cluster"
	"go.flow.arcalot.io/subfactory/depgraph"
	"gopkg.in/yaml.v3"
)

// Document is the serializable form of a cluster.
type Document struct {
	Seeds        []depgraph.Item `json:"seeds" yaml:"seeds"`
	UnknownSeeds []depgraph.Item `json:"unknown_seeds,omitempty" yaml:"unknown_seeds,omitempty"`
	Members      []depgraph.Item `json:"members" yaml:"members"`
	Frontier     []depgraph.Item `json:"frontier" yaml:"frontier"`
	Rounds       int             `json:"rounds" yaml:"rounds"`
	Steps        []cluster.Step  `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// NewDocument converts the cluster into a Document.
func NewDocument(c *cluster.Cluster, options Options) Document {
	doc := Document{
		Seeds:        c.Seeds(),
		UnknownSeeds: c.UnknownSeeds(),
		Members:      c.Members(),
		Frontier:     c.Frontier(),
		Rounds:       c.Rounds(),
	}
	if doc.Frontier == nil {
		doc.Frontier = []depgraph.Item{}
	}
	if options.IncludeSteps {
		doc.Steps = c.Steps()
	}
	return doc
}

// WriteYAML writes a single cluster as a YAML document, or several as a YAML list.
func WriteYAML(w io.Writer, clusters []*cluster.Cluster, options Options) error {
	docs := make([]Document, len(clusters))
	for i, c := range clusters {
		docs[i] = NewDocument(c, options)
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	var err error
	if len(docs) == 1 {
		err = encoder.Encode(docs[0])
	} else {
		err = encoder.Encode(docs)
	}
	if err != nil {
		return err
	}
	return encoder.Close()
}
