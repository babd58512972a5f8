// Package dot reads Graphviz DOT source into a graph document, so DOT files
// can be drawn and highlighted like JSON or YAML ones.
//
// Only the structure is kept: node IDs, node labels and edges. Subgraphs are
// flattened, an edge to a subgraph connects every node inside it, and node
// ports and all other attributes are ignored.
package dot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonybishopric/graphfocus/pkg/graph"
)

// Parse parses DOT source into a document. Nodes appear in order of first
// mention and edges in source order. Undirected edges keep the direction
// they are written in.
func Parse(filename string, src []byte) (*graph.Document, error) {
	p := newParser(filename, src)
	p.parseGraph()

	errs := append(p.s.errs, p.errs...)
	if len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return p.doc, fmt.Errorf("parse errors:\n%s", strings.Join(msgs, "\n"))
	}
	return p.doc, nil
}

// Load reads and parses a DOT file.
func Load(path string) (*graph.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dot: %w", err)
	}
	return Parse(filepath.Base(path), src)
}

// IsDOT reports whether a path has a DOT extension.
func IsDOT(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dot", ".gv":
		return true
	}
	return false
}

type parser struct {
	s    *scanner
	tok  item
	peek item
	errs []error

	directed bool
	doc      *graph.Document
	index    map[string]int
}

func newParser(filename string, src []byte) *parser {
	p := &parser{
		s:     newScanner(filename, src),
		doc:   &graph.Document{Nodes: []graph.Node{}, Edges: []graph.Edge{}},
		index: make(map[string]int),
	}
	p.next()
	p.next()
	return p
}

func (p *parser) next() {
	p.tok = p.peek
	p.peek = p.s.scan()
}

func (p *parser) errorf(pos Position, format string, args ...any) {
	p.errs = append(p.errs, fmt.Errorf("%s: %s", pos, fmt.Sprintf(format, args...)))
}

func (p *parser) expect(k kind) bool {
	if p.tok.kind != k {
		p.errorf(p.tok.pos, "expected %s, got %s", k, p.tok.kind)
		return false
	}
	p.next()
	return true
}

// touch records a node on first mention and returns its ID.
func (p *parser) touch(id string) string {
	if _, ok := p.index[id]; !ok {
		p.index[id] = len(p.doc.Nodes)
		p.doc.Nodes = append(p.doc.Nodes, graph.Node{ID: id})
	}
	return id
}

// parseGraph parses: [ 'strict' ] ('graph' | 'digraph') [ ID ] '{' stmt_list '}'
func (p *parser) parseGraph() {
	if p.tok.keyword("strict") {
		p.next()
	}
	switch {
	case p.tok.keyword("digraph"):
		p.directed = true
	case p.tok.keyword("graph"):
	default:
		p.errorf(p.tok.pos, "expected 'graph' or 'digraph', got %s", p.tok.kind)
		return
	}
	p.next()

	if p.tok.kind == ident {
		p.next()
	}
	if !p.expect(lbrace) {
		return
	}
	p.parseStmtList()
	p.expect(rbrace)
	if p.tok.kind != eof {
		p.errorf(p.tok.pos, "unexpected %s after graph", p.tok.kind)
	}
}

// parseStmtList parses statements up to the closing brace and returns every
// node ID mentioned, in order.
func (p *parser) parseStmtList() []string {
	var ids []string
	for p.tok.kind != rbrace && p.tok.kind != eof {
		start := p.tok
		ids = append(ids, p.parseStmt()...)
		if p.tok.kind == semi {
			p.next()
		}
		if p.tok == start {
			p.errorf(p.tok.pos, "unexpected %s", p.tok.kind)
			p.next()
		}
	}
	return ids
}

func (p *parser) parseStmt() []string {
	switch {
	case p.tok.keyword("graph") || p.tok.keyword("node") || p.tok.keyword("edge"):
		p.next()
		p.parseAttrLists()
		return nil
	case p.tok.keyword("subgraph") || p.tok.kind == lbrace:
		return p.parseEdgeChain(p.parseSubgraph())
	case p.tok.kind == ident && p.peek.kind == equal:
		p.next()
		p.next()
		if p.tok.kind == ident {
			p.next()
		} else {
			p.errorf(p.tok.pos, "expected ID after '=', got %s", p.tok.kind)
		}
		return nil
	case p.tok.kind == ident:
		id := p.parseNodeID()
		if p.tok.kind == arrow || p.tok.kind == dashdash {
			return p.parseEdgeChain([]string{id})
		}
		if label, ok := p.parseAttrLists()["label"]; ok {
			p.doc.Nodes[p.index[id]].Label = label
		}
		return []string{id}
	}
	return nil
}

// parseSubgraph parses: [ 'subgraph' [ ID ] ] '{' stmt_list '}'
func (p *parser) parseSubgraph() []string {
	if p.tok.keyword("subgraph") {
		p.next()
		if p.tok.kind == ident {
			p.next()
		}
	}
	if !p.expect(lbrace) {
		return nil
	}
	ids := p.parseStmtList()
	p.expect(rbrace)
	return ids
}

// parseNodeID parses: ID [ ':' ID [ ':' ID ] ]
func (p *parser) parseNodeID() string {
	id := p.touch(p.tok.lit)
	p.next()
	for i := 0; i < 2 && p.tok.kind == colon; i++ {
		p.next()
		if p.tok.kind != ident {
			p.errorf(p.tok.pos, "expected port, got %s", p.tok.kind)
			break
		}
		p.next()
	}
	return id
}

// parseEdgeChain parses the rest of: endpoint ( edgeop endpoint )+ [ attr_list ]
func (p *parser) parseEdgeChain(left []string) []string {
	if p.tok.kind != arrow && p.tok.kind != dashdash {
		return left
	}
	mentioned := append([]string(nil), left...)
	for p.tok.kind == arrow || p.tok.kind == dashdash {
		if p.tok.kind == arrow && !p.directed {
			p.errorf(p.tok.pos, "'->' in undirected graph")
		}
		if p.tok.kind == dashdash && p.directed {
			p.errorf(p.tok.pos, "'--' in directed graph")
		}
		p.next()

		var right []string
		switch {
		case p.tok.keyword("subgraph") || p.tok.kind == lbrace:
			right = p.parseSubgraph()
		case p.tok.kind == ident:
			right = []string{p.parseNodeID()}
		default:
			p.errorf(p.tok.pos, "expected edge target, got %s", p.tok.kind)
			return mentioned
		}
		for _, src := range left {
			for _, dst := range right {
				p.doc.Edges = append(p.doc.Edges, graph.Edge{Source: src, Target: dst})
			}
		}
		mentioned = append(mentioned, right...)
		left = right
	}
	p.parseAttrLists()
	return mentioned
}

// parseAttrLists parses zero or more '[' a_list ']' and returns the
// attributes, later keys overwriting earlier ones.
func (p *parser) parseAttrLists() map[string]string {
	attrs := make(map[string]string)
	for p.tok.kind == lbracket {
		p.next()
		for p.tok.kind == ident {
			key := p.tok.lit
			p.next()
			val := "true"
			if p.tok.kind == equal {
				p.next()
				if p.tok.kind != ident {
					p.errorf(p.tok.pos, "expected value for %s, got %s", key, p.tok.kind)
					break
				}
				val = p.tok.lit
				p.next()
			}
			attrs[key] = val
			if p.tok.kind == comma || p.tok.kind == semi {
				p.next()
			}
		}
		p.expect(rbracket)
	}
	return attrs
}
