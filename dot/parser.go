package dot

import (
	"strings"
)

// Parse reads a DOT document. The filename is only used in error messages. Errors are returned as *ParseError.
func Parse(data []byte, filename string) (*Graph, error) {
	p := newParser(string(data), filename)
	g, err := p.graph()
	if err != nil {
		if isFatal(err) || p.furthest == nil {
			return nil, err
		}
		return nil, p.furthest
	}
	return g, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(data string, filename string) (*Graph, error) {
	return Parse([]byte(data), filename)
}

// id is a parsed DOT identifier.
type id struct {
	value string
	html  bool
}

type statementKind int

const (
	statementAttributes statementKind = iota
	statementAssignment
	statementEdge
	statementNode
)

type statement struct {
	kind       statementKind
	target     string
	ids        []id
	attributes Attributes
}

// graph: [strict] (graph | digraph) [ID] '{' stmt_list '}'
func (p *parser) graph() (*Graph, error) {
	_, strict, err := optional[string](p, func() (string, error) { return p.keyword("strict") })
	if err != nil {
		return nil, err
	}
	graphType, err := p.keyword(string(GraphTypeGraph), string(GraphTypeDigraph))
	if err != nil {
		return nil, err
	}
	p.graphType = GraphType(graphType)
	g := NewGraph(p.graphType)
	g.Strict = strict
	graphID, ok, err := optional[id](p, p.id)
	if err != nil {
		return nil, err
	}
	if ok {
		g.ID = graphID.value
	}
	if err := p.symbol("{"); err != nil {
		return nil, err
	}
	statements, err := many[statement](p, p.terminatedStatement)
	if err != nil {
		return nil, err
	}
	for _, stmt := range statements {
		g.apply(stmt)
	}
	if err := p.symbol("}"); err != nil {
		return nil, err
	}
	if err := p.skipSpace(); err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.fail("end of input")
	}
	return g, nil
}

func (p *parser) terminatedStatement() (statement, error) {
	stmt, err := p.statement()
	if err != nil {
		return stmt, err
	}
	if _, _, err := optional[struct{}](p, func() (struct{}, error) { return struct{}{}, p.symbol(";") }); err != nil {
		return stmt, err
	}
	return stmt, nil
}

// statement: attr_stmt | ID '=' ID | edge_stmt | node_stmt
func (p *parser) statement() (statement, error) {
	if err := p.unsupported(); err != nil {
		return statement{}, err
	}
	return choice[statement](
		p,
		p.attributeStatement,
		p.assignment,
		p.edgeStatement,
		p.nodeStatement,
	)
}

// unsupported rejects subgraphs, which are valid DOT but have no meaning for a dependency graph.
func (p *parser) unsupported() error {
	if err := p.skipSpace(); err != nil {
		return err
	}
	if strings.EqualFold(p.word(), "subgraph") || p.peek() == '{' {
		return p.fatalAt(p.pos, "subgraphs are not supported")
	}
	return nil
}

// attr_stmt: (graph | node | edge) attr_list
func (p *parser) attributeStatement() (statement, error) {
	target, err := p.keyword("graph", "node", "edge")
	if err != nil {
		return statement{}, err
	}
	attributes, err := p.attributeLists()
	if err != nil {
		return statement{}, err
	}
	return statement{kind: statementAttributes, target: target, attributes: attributes}, nil
}

// assignment: ID '=' ID, a graph attribute.
func (p *parser) assignment() (statement, error) {
	attr, err := p.attribute()
	if err != nil {
		return statement{}, err
	}
	return statement{kind: statementAssignment, attributes: Attributes{attr}}, nil
}

// edge_stmt: node_id (edgeop node_id)+ [attr_list]
func (p *parser) edgeStatement() (statement, error) {
	first, err := p.nodeID()
	if err != nil {
		return statement{}, err
	}
	rest, err := many1[id](p, p.edgeTarget)
	if err != nil {
		return statement{}, err
	}
	attributes, _, err := optional[Attributes](p, p.attributeLists)
	if err != nil {
		return statement{}, err
	}
	return statement{
		kind:       statementEdge,
		ids:        append([]id{first}, rest...),
		attributes: attributes,
	}, nil
}

func (p *parser) edgeTarget() (id, error) {
	if err := p.skipSpace(); err != nil {
		return id{}, err
	}
	start := p.pos
	var op string
	switch {
	case strings.HasPrefix(p.rest(), "->"):
		op = "->"
	case strings.HasPrefix(p.rest(), "--"):
		op = "--"
	default:
		return id{}, p.fail(`"->"`, `"--"`)
	}
	if op != p.graphType.EdgeOperator() {
		return id{}, p.fatalAt(start, "%q is not a valid edge operator in a %s, use %q", op, p.graphType, p.graphType.EdgeOperator())
	}
	p.advanceString(op)
	return p.nodeID()
}

// node_stmt: node_id [attr_list]
func (p *parser) nodeStatement() (statement, error) {
	node, err := p.nodeID()
	if err != nil {
		return statement{}, err
	}
	attributes, _, err := optional[Attributes](p, p.attributeLists)
	if err != nil {
		return statement{}, err
	}
	return statement{kind: statementNode, ids: []id{node}, attributes: attributes}, nil
}

// nodeID is an ID that is not followed by a port.
func (p *parser) nodeID() (id, error) {
	node, err := p.id()
	if err != nil {
		return node, err
	}
	if err := p.skipSpace(); err != nil {
		return node, err
	}
	if p.peek() == ':' {
		return node, p.fatalAt(p.pos, "ports are not supported")
	}
	return node, nil
}

// attr_list: ('[' [a_list] ']')+
func (p *parser) attributeLists() (Attributes, error) {
	lists, err := many1[Attributes](p, p.attributeList)
	if err != nil {
		return nil, err
	}
	var result Attributes
	for _, list := range lists {
		result.Merge(list)
	}
	return result, nil
}

func (p *parser) attributeList() (Attributes, error) {
	if err := p.symbol("["); err != nil {
		return nil, err
	}
	attributes, err := many[Attribute](p, p.listAttribute)
	if err != nil {
		return nil, err
	}
	if err := p.symbol("]"); err != nil {
		return nil, err
	}
	var result Attributes
	result.Merge(attributes)
	return result, nil
}

// listAttribute: ID '=' ID [';' | ',']
func (p *parser) listAttribute() (Attribute, error) {
	attr, err := p.attribute()
	if err != nil {
		return attr, err
	}
	_, _, err = optional[string](p, func() (string, error) {
		return choice[string](
			p,
			func() (string, error) { return ";", p.symbol(";") },
			func() (string, error) { return ",", p.symbol(",") },
		)
	})
	return attr, err
}

func (p *parser) attribute() (Attribute, error) {
	key, err := p.id()
	if err != nil {
		return Attribute{}, err
	}
	if err := p.symbol("="); err != nil {
		return Attribute{}, err
	}
	value, err := p.id()
	if err != nil {
		return Attribute{}, err
	}
	return Attribute{Key: key.value, Value: value.value, HTML: value.html}, nil
}

// id: quoted string | HTML string | identifier | numeral
func (p *parser) id() (id, error) {
	if err := p.skipSpace(); err != nil {
		return id{}, err
	}
	return choice[id](p, p.quotedID, p.htmlID, p.identifier, p.numeral)
}

// quotedID reads one or more double-quoted strings joined with '+'.
func (p *parser) quotedID() (id, error) {
	value, err := p.quotedString()
	if err != nil {
		return id{}, err
	}
	for {
		next, ok, err := optional[string](p, func() (string, error) {
			if err := p.symbol("+"); err != nil {
				return "", err
			}
			if err := p.skipSpace(); err != nil {
				return "", err
			}
			return p.quotedString()
		})
		if err != nil {
			return id{}, err
		}
		if !ok {
			return id{value: value}, nil
		}
		value += next
	}
}

// quotedString reads a double-quoted string. Only \" and \\ are unescaped; a backslash before a line break
// continues the string on the next line. Other escapes are kept as written.
func (p *parser) quotedString() (string, error) {
	if p.peek() != '"' {
		return "", p.fail("quoted string")
	}
	start := p.pos
	p.advance()
	var result strings.Builder
	for {
		r := p.advance()
		switch r {
		case eofRune:
			return "", p.fatalAt(start, "unterminated quoted string")
		case '"':
			return result.String(), nil
		case '\\':
			next := p.peek()
			switch {
			case next == '"' || next == '\\':
				result.WriteRune(p.advance())
			case next == '\r' && strings.HasPrefix(p.rest(), "\r\n"):
				p.advanceString("\r\n")
			case isLineTerminator(next):
				p.advance()
			default:
				result.WriteRune(r)
			}
		default:
			result.WriteRune(r)
		}
	}
}

// htmlID reads an HTML-like string. Angle brackets inside it must be balanced.
func (p *parser) htmlID() (id, error) {
	if p.peek() != '<' {
		return id{}, p.fail("HTML string")
	}
	start := p.pos
	p.advance()
	depth := 1
	valueStart := p.pos.offset
	for {
		switch p.advance() {
		case eofRune:
			return id{}, p.fatalAt(start, "unterminated HTML string")
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return id{value: p.input[valueStart : p.pos.offset-1], html: true}, nil
			}
		}
	}
}

var reservedWords = []string{"strict", "graph", "digraph", "node", "edge", "subgraph"}

// identifier reads a bare identifier. Keywords are not identifiers.
func (p *parser) identifier() (id, error) {
	word := p.word()
	if word == "" {
		return id{}, p.fail("identifier")
	}
	for _, reserved := range reservedWords {
		if strings.EqualFold(word, reserved) {
			return id{}, p.fail("identifier")
		}
	}
	p.advanceString(word)
	return id{value: word}, nil
}

// numeral: [-]?(.[0-9]+ | [0-9]+(.[0-9]*)?)
func (p *parser) numeral() (id, error) {
	start := p.pos.offset
	if p.peek() == '-' {
		p.advance()
	}
	digits := p.digits()
	if p.peek() == '.' {
		p.advance()
		fraction := p.digits()
		if digits == 0 && fraction == 0 {
			return id{}, p.fail("number")
		}
	} else if digits == 0 {
		return id{}, p.fail("number")
	}
	return id{value: p.input[start:p.pos.offset]}, nil
}

func (p *parser) digits() int {
	count := 0
	for isDigit(p.peek()) {
		p.advance()
		count++
	}
	return count
}

func (g *Graph) apply(stmt statement) {
	switch stmt.kind {
	case statementAttributes:
		switch stmt.target {
		case "graph":
			g.GraphAttributes.Merge(stmt.attributes)
		case "node":
			g.NodeAttributes.Merge(stmt.attributes)
		case "edge":
			g.EdgeAttributes.Merge(stmt.attributes)
		}
	case statementAssignment:
		g.GraphAttributes.Merge(stmt.attributes)
	case statementNode:
		g.AddNode(stmt.ids[0].value, stmt.attributes...)
	case statementEdge:
		for i := 1; i < len(stmt.ids); i++ {
			from := stmt.ids[i-1].value
			to := stmt.ids[i].value
			if existing, ok := g.Edge(from, to); ok && g.Strict {
				existing.Attributes.Merge(stmt.attributes)
				continue
			}
			g.AddEdge(from, to, stmt.attributes...)
		}
	}
}
