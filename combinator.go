package morpheme

import (
	"github.com/alecthomas/morpheme/lexer"
)

// A Parser is a declarative description of a parse, built from a closed set
// of five shapes: Backtrack, Const, Fail, Update (an opaque token-stream
// primitive) and Table (branches keyed by token kind, and by exact token
// text within a kind). Parsers are values; they are assembled once and
// compiled with Compile into a reusable ParseTable.
//
// Unlike the regex algebra, choice over parsers is permissive: overlapping
// table branches merge and remain tried in order rather than being rejected
// at construction time.
type Parser struct {
	op     parserOp
	value  interface{}
	msg    string
	action Action
	table  *branchSet
}

type parserOp int

const (
	opBacktrack parserOp = iota
	opConst
	opFail
	opUpdate
	opTable
)

type branchSet struct {
	byKind map[lexer.Kind]Parser
	byText map[lexer.Kind]map[string]Parser
}

// Backtrack is the parser that always backtracks.
func Backtrack() Parser {
	return Parser{op: opBacktrack}
}

// Const is the parser that consumes nothing and succeeds with v.
func Const(v interface{}) Parser {
	return Parser{op: opConst, value: v}
}

// FailWith is the parser that always fails hard with msg at the cursor.
func FailWith(msg string) Parser {
	return Parser{op: opFail, msg: msg}
}

// Update wraps an opaque token-stream primitive as a parser.
func Update(a Action) Parser {
	return Parser{op: opUpdate, action: a}
}

// Match dispatches to p when the next token has the given kind. The token
// is not consumed by the dispatch; p sees it.
func Match(kind lexer.Kind, p Parser) Parser {
	return Parser{op: opTable, table: &branchSet{
		byKind: map[lexer.Kind]Parser{kind: p},
	}}
}

// MatchText dispatches to p when the next token has the given kind and
// exactly the given text. Text branches are tried before the kind-generic
// branch for the same kind.
func MatchText(kind lexer.Kind, text string, p Parser) Parser {
	return Parser{op: opTable, table: &branchSet{
		byText: map[lexer.Kind]map[string]Parser{kind: {text: p}},
	}}
}

// EOF succeeds with no value at end of stream.
func EOF() Parser {
	return Update(GuardEOF)
}

// Term consumes one token of the given kind and succeeds with f applied to
// it. The usual way to capture a token's text.
func Term(kind lexer.Kind, f func(lexer.Token) interface{}) Parser {
	return Match(kind, Update(Token(kind, func(tok lexer.Token) Action {
		return func(*Stream) Result { return succeed(f(tok)) }
	})))
}

// Text consumes one token of the given kind and text, succeeding with the
// text.
func Text(kind lexer.Kind, text string) Parser {
	return MatchText(kind, text, Update(TokenText(text, func(tok lexer.Token) Action {
		return func(*Stream) Result { return succeed(tok.Value()) }
	})))
}

// Bind sequences p with a continuation on its value. On a Table shape the
// continuation is bound into every leaf; on Update it is folded into the
// sequential primitive.
func Bind(p Parser, f func(interface{}) Parser) Parser {
	switch p.op {
	case opBacktrack, opFail:
		return p
	case opConst:
		return f(p.value)
	case opUpdate:
		action := p.action
		return Update(func(s *Stream) Result {
			r := action(s)
			if r.Status != Success {
				return r
			}
			return interpret(f(r.Value), s)
		})
	default: // opTable
		out := &branchSet{}
		if p.table.byKind != nil {
			out.byKind = make(map[lexer.Kind]Parser, len(p.table.byKind))
			for kind, sub := range p.table.byKind {
				out.byKind[kind] = Bind(sub, f)
			}
		}
		if p.table.byText != nil {
			out.byText = make(map[lexer.Kind]map[string]Parser, len(p.table.byText))
			for kind, texts := range p.table.byText {
				m := make(map[string]Parser, len(texts))
				for text, sub := range texts {
					m[text] = Bind(sub, f)
				}
				out.byText[kind] = m
			}
		}
		return Parser{op: opTable, table: out}
	}
}

// Seq sequences parsers, succeeding with the value of the last.
func Seq(parsers ...Parser) Parser {
	if len(parsers) == 0 {
		return Const(nil)
	}
	out := parsers[len(parsers)-1]
	for i := len(parsers) - 2; i >= 0; i-- {
		p := parsers[i]
		next := out
		out = Bind(p, func(interface{}) Parser { return next })
	}
	return out
}

// Choice tries parsers as ordered alternatives. Two Tables merge their
// branch maps key by key using recursive choice, so overlapping
// continuations remain tried in order; a non-Table alternative is drained
// first, falling back to the Table.
func Choice(parsers ...Parser) Parser {
	out := Backtrack()
	for i := len(parsers) - 1; i >= 0; i-- {
		out = choice2(parsers[i], out)
	}
	return out
}

func choice2(a, b Parser) Parser {
	switch {
	case a.op == opBacktrack:
		return b
	case b.op == opBacktrack:
		return a
	case a.op == opTable && b.op == opTable:
		return mergeTables(a, b)
	case a.op == opConst || a.op == opFail:
		return a
	case a.op == opUpdate || b.op != opTable:
		// Drain the non-Table branch first, falling back to the Table.
		first, second := a, b
		if a.op == opTable {
			first, second = b, a
		}
		return Update(func(s *Stream) Result {
			r := interpret(first, s)
			if r.Status == Backtracked {
				return interpret(second, s)
			}
			return r
		})
	default:
		return a
	}
}

func mergeTables(a, b Parser) Parser {
	out := &branchSet{}
	for kind, sub := range a.table.byKind {
		out.kindBranch(kind, sub)
	}
	for kind, sub := range b.table.byKind {
		if prev, ok := out.byKind[kind]; ok {
			out.byKind[kind] = choice2(prev, sub)
		} else {
			out.kindBranch(kind, sub)
		}
	}
	for kind, texts := range a.table.byText {
		for text, sub := range texts {
			out.textBranch(kind, text, sub)
		}
	}
	for kind, texts := range b.table.byText {
		for text, sub := range texts {
			if prev, ok := out.byText[kind][text]; ok {
				out.byText[kind][text] = choice2(prev, sub)
			} else {
				out.textBranch(kind, text, sub)
			}
		}
	}
	return Parser{op: opTable, table: out}
}

func (b *branchSet) kindBranch(kind lexer.Kind, p Parser) {
	if b.byKind == nil {
		b.byKind = map[lexer.Kind]Parser{}
	}
	b.byKind[kind] = p
}

func (b *branchSet) textBranch(kind lexer.Kind, text string, p Parser) {
	if b.byText == nil {
		b.byText = map[lexer.Kind]map[string]Parser{}
	}
	if b.byText[kind] == nil {
		b.byText[kind] = map[string]Parser{}
	}
	b.byText[kind][text] = p
}

// interpret runs a parser built at parse time, such as the result of a Bind
// continuation. The static structure of a grammar should be compiled once
// instead; interpretation exists for the dynamic leaves.
func interpret(p Parser, s *Stream) Result {
	switch p.op {
	case opBacktrack:
		return backtrack()
	case opConst:
		return succeed(p.value)
	case opFail:
		return failHere(p.msg, s)
	case opUpdate:
		return p.action(s)
	default: // opTable
		tok, ok := s.Look1()
		if !ok {
			return backtrack()
		}
		if texts, ok := p.table.byText[tok.Kind]; ok {
			if sub, ok := texts[tok.Value()]; ok {
				if r := interpret(sub, s); r.Status != Backtracked {
					return r
				}
			}
		}
		if sub, ok := p.table.byKind[tok.Kind]; ok {
			return interpret(sub, s)
		}
		return backtrack()
	}
}

// failHere builds the hard failure for Fail shapes, enriched with the
// cursor position and lookahead token.
func failHere(msg string, s *Stream) Result {
	err := Errorf(lexer.At(s.LookPos()), "%s", msg)
	if tok, ok := s.Look1(); ok {
		err.Token = &tok
	}
	return failed(err)
}
