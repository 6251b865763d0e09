// Package yaml offers a simplified YAML parser abstraction that parses YAML into a tree of maps, sequences and
// strings, keeping the tag and the source position of every node. The recipe loader uses the positions to point
// at the offending recipe when it reports an error.
package yaml

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when the input contains no YAML document.
var ErrEmptyDocument = errors.New("empty YAML document")

// New creates a new YAML parser.
func New() Parser {
	return &parser{}
}

// Parser is a YAML parser that parses into a simplified value structure.
type Parser interface {
	// Parse parses the provided value into the simplified node representation.
	Parse(data []byte) (Node, error)
}

// TypeID represents the value structure in accordance with the YAML specification 10.1.1.
// See https://yaml.org/spec/1.2.2/#101-failsafe-schema for details.
type TypeID string

const (
	// TypeIDMap is a generic map in accordance with the YAML specification 10.1.1.1.
	TypeIDMap TypeID = "map"
	// TypeIDSequence is a generic sequence in accordance with YAML specification 10.1.1.2.
	TypeIDSequence TypeID = "seq"
	// TypeIDString is a generic string in accordance with YAML specification 10.1.1.3.
	TypeIDString TypeID = "str"
)

// Node is a simplified representation of a YAML node.
type Node interface {
	Type() TypeID
	// Tag returns a YAML tag if any.
	Tag() string
	// Contents returns the contents as further Node items. For maps, this will contain the keys and values
	// alternating, while for sequences this will contain as many nodes as there are items. For strings, this will
	// contain no items.
	Contents() []Node
	// Value returns the value in case of a string node.
	Value() string
	// Line returns the 1-based line the node starts on.
	Line() int
	// Column returns the 1-based column the node starts on.
	Column() int
	// MapKeys returns the keys of a map node in document order.
	MapKeys() []string
	// MapValue returns the value for the given key of a map node.
	MapValue(key string) (Node, bool)
}

type node struct {
	typeID   TypeID
	tag      string
	contents []Node
	value    string
	line     int
	column   int
}

func (n node) Contents() []Node {
	return n.contents
}

func (n node) Type() TypeID {
	return n.typeID
}

func (n node) Tag() string {
	return n.tag
}

func (n node) Value() string {
	return n.value
}

func (n node) Line() int {
	return n.line
}

func (n node) Column() int {
	return n.column
}

func (n node) MapKeys() []string {
	if n.typeID != TypeIDMap {
		return nil
	}
	keys := make([]string, 0, len(n.contents)/2)
	for i := 0; i+1 < len(n.contents); i += 2 {
		keys = append(keys, n.contents[i].Value())
	}
	return keys
}

func (n node) MapValue(key string) (Node, bool) {
	if n.typeID != TypeIDMap {
		return nil, false
	}
	for i := 0; i+1 < len(n.contents); i += 2 {
		if n.contents[i].Value() == key {
			return n.contents[i+1], true
		}
	}
	return nil, false
}

type parser struct {
}

func (p parser) Parse(data []byte) (Node, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	if n.Kind == 0 || (n.Kind == yaml.DocumentNode && len(n.Content) == 0) {
		return nil, ErrEmptyDocument
	}
	return p.transform(&n)
}

func (p parser) transform(n *yaml.Node) (Node, error) {
	var t TypeID
	switch n.Kind {
	case yaml.MappingNode:
		t = TypeIDMap
	case yaml.SequenceNode:
		t = TypeIDSequence
	case yaml.ScalarNode:
		t = TypeIDString
	case yaml.DocumentNode:
		return p.transform(n.Content[0])
	case yaml.AliasNode:
		return p.transform(n.Alias)
	default:
		return nil, fmt.Errorf("unsupported node type: %d", n.Kind)
	}

	contents := make([]Node, len(n.Content))
	for i, subNode := range n.Content {
		subContent, err := p.transform(subNode)
		if err != nil {
			return nil, err
		}
		contents[i] = subContent
	}

	return &node{
		t,
		n.Tag,
		contents,
		n.Value,
		n.Line,
		n.Column,
	}, nil
}
