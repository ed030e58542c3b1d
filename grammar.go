package morpheme

import (
	"github.com/alecthomas/morpheme/lexer"
)

// A Grammar bundles a lexer definition with a compiled parse table. It is
// immutable once constructed and may be shared across concurrent parses;
// each Parse call owns its own lexer and stream state.
type Grammar struct {
	tabWidth int
	typeName string
	def      lexer.Definition
	mapper   Mapper
	table    *ParseTable
}

// An Option to modify the behaviour of a Grammar.
type Option func(g *Grammar) error

// TabWidth sets the tab width used for column tracking.
func TabWidth(n int) Option {
	return func(g *Grammar) error {
		g.tabWidth = n
		return nil
	}
}

// Type names the data type being parsed; parse errors are tagged with it.
func Type(name string) Option {
	return func(g *Grammar) error {
		g.typeName = name
		return nil
	}
}

// New builds a Grammar from a lexer definition and a declarative parser,
// compiling the parser once.
func New(def lexer.Definition, p Parser, options ...Option) (*Grammar, error) {
	table, err := Compile(p)
	if err != nil {
		return nil, err
	}
	g := &Grammar{
		tabWidth: lexer.DefaultTabWidth,
		def:      def,
		table:    table,
	}
	for _, option := range options {
		if err := option(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Must is like New but panics on error.
func Must(def lexer.Definition, p Parser, options ...Option) *Grammar {
	g, err := New(def, p, options...)
	if err != nil {
		panic(err)
	}
	return g
}

// Parse lexes text, then runs the compiled parser over the token lines,
// threading state through the Stream. A parser Backtrack at top level and
// a parser Fail both surface as a *ParseError; lexer errors are normalized
// into the same shape.
func (g *Grammar) Parse(state interface{}, text string) (interface{}, error) {
	r, err := g.ParseResult(state, text)
	if err != nil {
		return nil, err
	}
	switch r.Status {
	case Success:
		return r.Value, nil
	case Failed:
		if r.Err.Type == "" {
			r.Err.Type = g.typeName
		}
		return nil, r.Err
	default:
		return nil, &ParseError{Type: g.typeName, Msg: "no grammar alternative matched"}
	}
}

// ParseResult is Parse exposing the raw tri-state result. The error return
// is non-nil only for lexer-phase errors.
func (g *Grammar) ParseResult(state interface{}, text string) (Result, error) {
	lines, err := g.def.Tokenize(text, g.tabWidth)
	if err != nil {
		perr := normalizeError(err)
		if perr.Type == "" {
			perr.Type = g.typeName
		}
		return Result{}, perr
	}
	if g.mapper != nil {
		lines, err = g.applyMapper(lines)
		if err != nil {
			perr := normalizeError(err)
			if perr.Type == "" {
				perr.Type = g.typeName
			}
			return Result{}, perr
		}
	}
	return g.table.Parse(NewStream(lines, state)), nil
}
