package morpheme

import (
	"github.com/alecthomas/morpheme/lexer"
)

// denseKindLimit bounds the size of a dense per-kind dispatch array. Kind
// sets beyond it compile to a map.
const denseKindLimit = 128

// A ParseTable is a compiled Parser: a sparse transition structure built
// once and reused across many parses. Compilation flattens single-entry
// branch maps to direct key tests and lays dense kind sets out as arrays.
type ParseTable struct {
	root *node
}

type node struct {
	op nodeOp

	// nAction
	action Action

	// nKindSingle / nTextSingle
	kind  lexer.Kind
	text  string
	child *node

	// nKindArray / nKindMap
	dense  []*node
	sparse map[lexer.Kind]*node
	byText map[lexer.Kind]map[string]*node
}

type nodeOp int

const (
	nAction nodeOp = iota
	nKindSingle
	nTextSingle
	nKindArray
	nKindMap
)

// Compile converts a declarative parser into a reusable ParseTable.
// Compiling is comparatively expensive and must not happen per parse; build
// the table once and share it.
func Compile(p Parser) (*ParseTable, error) {
	root, err := compileNode(p)
	if err != nil {
		return nil, err
	}
	return &ParseTable{root: root}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(p Parser) *ParseTable {
	t, err := Compile(p)
	if err != nil {
		panic(err)
	}
	return t
}

func compileNode(p Parser) (*node, error) {
	switch p.op {
	case opBacktrack:
		return &node{op: nAction, action: func(*Stream) Result { return backtrack() }}, nil
	case opConst:
		v := p.value
		return &node{op: nAction, action: func(*Stream) Result { return succeed(v) }}, nil
	case opFail:
		msg := p.msg
		return &node{op: nAction, action: func(s *Stream) Result { return failHere(msg, s) }}, nil
	case opUpdate:
		return &node{op: nAction, action: p.action}, nil
	default:
		return compileTable(p.table)
	}
}

func compileTable(t *branchSet) (*node, error) {
	textCount := 0
	for _, texts := range t.byText {
		textCount += len(texts)
	}

	// A branch map with exactly one entry compiles to a direct single-key
	// test rather than a size-one array or map.
	if len(t.byKind) == 1 && textCount == 0 {
		for kind, sub := range t.byKind {
			child, err := compileNode(sub)
			if err != nil {
				return nil, err
			}
			return &node{op: nKindSingle, kind: kind, child: child}, nil
		}
	}
	if len(t.byKind) == 0 && textCount == 1 {
		for kind, texts := range t.byText {
			for text, sub := range texts {
				child, err := compileNode(sub)
				if err != nil {
					return nil, err
				}
				return &node{op: nTextSingle, kind: kind, text: text, child: child}, nil
			}
		}
	}

	out := &node{}
	maxKind := lexer.Kind(-1)
	denseOK := true
	for kind := range t.byKind {
		if kind < 0 {
			denseOK = false
		}
		if kind > maxKind {
			maxKind = kind
		}
	}
	if denseOK && int(maxKind) < denseKindLimit {
		out.op = nKindArray
		out.dense = make([]*node, int(maxKind)+1)
		for kind, sub := range t.byKind {
			child, err := compileNode(sub)
			if err != nil {
				return nil, err
			}
			out.dense[kind] = child
		}
	} else {
		out.op = nKindMap
		out.sparse = make(map[lexer.Kind]*node, len(t.byKind))
		for kind, sub := range t.byKind {
			child, err := compileNode(sub)
			if err != nil {
				return nil, err
			}
			out.sparse[kind] = child
		}
	}
	if textCount > 0 {
		out.byText = make(map[lexer.Kind]map[string]*node, len(t.byText))
		for kind, texts := range t.byText {
			m := make(map[string]*node, len(texts))
			for text, sub := range texts {
				child, err := compileNode(sub)
				if err != nil {
					return nil, err
				}
				m[text] = child
			}
			out.byText[kind] = m
		}
	}
	return out, nil
}

// Parse runs the compiled table over a stream.
func (t *ParseTable) Parse(s *Stream) Result {
	return t.root.run(s)
}

func (n *node) run(s *Stream) Result {
	switch n.op {
	case nAction:
		return n.action(s)

	case nKindSingle:
		tok, ok := s.Look1()
		if !ok || tok.Kind != n.kind {
			return backtrack()
		}
		return n.child.run(s)

	case nTextSingle:
		tok, ok := s.Look1()
		if !ok || tok.Kind != n.kind || tok.Value() != n.text {
			return backtrack()
		}
		return n.child.run(s)

	default:
		tok, ok := s.Look1()
		if !ok {
			return backtrack()
		}
		if texts, ok := n.byText[tok.Kind]; ok {
			if child, ok := texts[tok.Value()]; ok {
				if r := child.run(s); r.Status != Backtracked {
					return r
				}
			}
		}
		var child *node
		if n.op == nKindArray {
			if int(tok.Kind) >= 0 && int(tok.Kind) < len(n.dense) {
				child = n.dense[tok.Kind]
			}
		} else {
			child = n.sparse[tok.Kind]
		}
		if child == nil {
			return backtrack()
		}
		return child.run(s)
	}
}
