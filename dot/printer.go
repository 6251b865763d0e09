package dot

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Write serializes the graph as DOT. IDs that are not plain identifiers or numerals are quoted, so the output
// parses back into an equal graph.
func (g *Graph) Write(w io.Writer) error {
	buf := bufio.NewWriter(w)
	if g.Strict {
		_, _ = buf.WriteString("strict ")
	}
	graphType := g.Type
	if graphType == "" {
		graphType = GraphTypeDigraph
	}
	_, _ = buf.WriteString(string(graphType))
	if g.ID != "" {
		_, _ = buf.WriteString(" " + FormatID(g.ID))
	}
	_, _ = buf.WriteString(" {\n")
	for _, global := range []struct {
		keyword    string
		attributes Attributes
	}{
		{"graph", g.GraphAttributes},
		{"node", g.NodeAttributes},
		{"edge", g.EdgeAttributes},
	} {
		if len(global.attributes) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(buf, "  %s%s;\n", global.keyword, formatAttributes(global.attributes))
	}
	for _, n := range g.Nodes {
		_, _ = fmt.Fprintf(buf, "  %s%s;\n", FormatID(n.ID), formatAttributes(n.Attributes))
	}
	for _, e := range g.Edges {
		_, _ = fmt.Fprintf(
			buf,
			"  %s %s %s%s;\n",
			FormatID(e.From),
			graphType.EdgeOperator(),
			FormatID(e.To),
			formatAttributes(e.Attributes),
		)
	}
	_, _ = buf.WriteString("}\n")
	return buf.Flush()
}

// String returns the DOT serialization of the graph.
func (g *Graph) String() string {
	var sb strings.Builder
	_ = g.Write(&sb)
	return sb.String()
}

// Quote returns the value as a DOT quoted string.
func Quote(value string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value) + `"`
}

// FormatID returns the value as a bare DOT ID if it is an identifier or a numeral, and quoted otherwise.
func FormatID(value string) string {
	if isBareIdentifier(value) || isNumeral(value) {
		return value
	}
	return Quote(value)
}

func isBareIdentifier(value string) bool {
	if value == "" {
		return false
	}
	for i, r := range value {
		if (i == 0 && !isIdentStart(r)) || !isIdentPart(r) {
			return false
		}
	}
	for _, reserved := range reservedWords {
		if strings.EqualFold(value, reserved) {
			return false
		}
	}
	return true
}

func isNumeral(value string) bool {
	p := newParser(value, "")
	if _, err := p.numeral(); err != nil {
		return false
	}
	return p.eof()
}

func formatAttributes(attributes Attributes) string {
	if len(attributes) == 0 {
		return ""
	}
	parts := make([]string, len(attributes))
	for i, attr := range attributes {
		value := FormatID(attr.Value)
		if attr.HTML {
			value = "<" + attr.Value + ">"
		}
		parts[i] = FormatID(attr.Key) + "=" + value
	}
	return " [" + strings.Join(parts, ", ") + "]"
}
