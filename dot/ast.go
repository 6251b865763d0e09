// Package dot reads and writes the Graphviz DOT language. Subgraphs and ports are not supported.
package dot

// GraphType declares whether the edges of a graph are directed.
type GraphType string

const (
	// GraphTypeGraph is an undirected graph. Edges are written with "--".
	GraphTypeGraph GraphType = "graph"
	// GraphTypeDigraph is a directed graph. Edges are written with "->".
	GraphTypeDigraph GraphType = "digraph"
)

// EdgeOperator returns the edge operator valid for this graph type.
func (g GraphType) EdgeOperator() string {
	if g == GraphTypeDigraph {
		return "->"
	}
	return "--"
}

// Attribute is a single key=value pair. HTML is true if the value was written as an HTML-like label (<...>), in
// which case Value holds the text between the outer angle brackets.
type Attribute struct {
	Key   string
	Value string
	HTML  bool
}

// Attributes is an ordered attribute list. Keys are unique; setting an existing key replaces its value in place.
type Attributes []Attribute

// Get returns the value of the attribute with the given key.
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Set adds or replaces an attribute.
func (a *Attributes) Set(attr Attribute) {
	for i, existing := range *a {
		if existing.Key == attr.Key {
			(*a)[i] = attr
			return
		}
	}
	*a = append(*a, attr)
}

// Merge sets every attribute of other on a, in order.
func (a *Attributes) Merge(other Attributes) {
	for _, attr := range other {
		a.Set(attr)
	}
}

// Map returns the attributes as a plain map.
func (a Attributes) Map() map[string]string {
	result := make(map[string]string, len(a))
	for _, attr := range a {
		result[attr.Key] = attr.Value
	}
	return result
}

// Node is a graph node with its attributes.
type Node struct {
	ID         string
	Attributes Attributes
}

// Edge connects two nodes. In a digraph it points from From to To.
type Edge struct {
	From       string
	To         string
	Attributes Attributes
}

// Graph is a parsed or constructed DOT graph. Nodes and edges are kept in the order they were first declared.
type Graph struct {
	Strict bool
	Type   GraphType
	// ID is the optional name of the graph. An empty ID is not written.
	ID string
	// GraphAttributes holds the global graph attributes, including bare key=value statements.
	GraphAttributes Attributes
	// NodeAttributes holds the global node attributes.
	NodeAttributes Attributes
	// EdgeAttributes holds the global edge attributes.
	EdgeAttributes Attributes

	Nodes []*Node
	Edges []*Edge

	nodeIndex map[string]*Node
}

// NewGraph creates an empty graph of the given type.
func NewGraph(graphType GraphType) *Graph {
	return &Graph{
		Type:      graphType,
		nodeIndex: map[string]*Node{},
	}
}

// AddNode declares a node. Declaring an existing node again merges the attributes into the existing node.
func (g *Graph) AddNode(id string, attributes ...Attribute) *Node {
	if g.nodeIndex == nil {
		g.nodeIndex = map[string]*Node{}
	}
	n, ok := g.nodeIndex[id]
	if !ok {
		n = &Node{ID: id}
		g.nodeIndex[id] = n
		g.Nodes = append(g.Nodes, n)
	}
	n.Attributes.Merge(attributes)
	return n
}

// AddEdge adds an edge, declaring both ends as attribute-less nodes if they are not known yet.
func (g *Graph) AddEdge(from string, to string, attributes ...Attribute) *Edge {
	g.AddNode(from)
	g.AddNode(to)
	e := &Edge{
		From:       from,
		To:         to,
		Attributes: append(Attributes(nil), attributes...),
	}
	g.Edges = append(g.Edges, e)
	return e
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodeIndex[id]
	return n, ok
}

// LabelIndex maps the label attribute of every labelled node to that node. If several nodes share a label, the
// first one declared wins.
func (g *Graph) LabelIndex() map[string]*Node {
	result := map[string]*Node{}
	for _, n := range g.Nodes {
		label, ok := n.Attributes.Get("label")
		if !ok {
			continue
		}
		if _, exists := result[label]; !exists {
			result[label] = n
		}
	}
	return result
}

// Edge returns the first edge between the two nodes. In an undirected graph the direction does not matter.
func (g *Graph) Edge(from string, to string) (*Edge, bool) {
	for _, e := range g.Edges {
		if e.From == from && e.To == to {
			return e, true
		}
		if g.Type == GraphTypeGraph && e.From == to && e.To == from {
			return e, true
		}
	}
	return nil, false
}
