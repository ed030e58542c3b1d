// Package ebnf compiles an EBNF lexical grammar into regex-driven lexer
// rules.
//
// The grammar syntax is as defined by "golang.org/x/exp/ebnf". Upper-case
// productions become token rules, in source order; lower-case productions
// are inlined where referenced. Each production must reduce to a linear
// sequence of literals and character classes with optional repetition.
// Nested structure beyond that is rejected, since the dispatch-table lexer
// has no general alternation within one token.
//
// An example grammar for whitespace and identifiers:
//
//	Identifier = alpha { alpha | number } .
//	Whitespace = "\n" | "\r" | "\t" | " " .
//	alpha = "a"…"z" | "A"…"Z" | "_" .
//	number = "0"…"9" .
package ebnf

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/alecthomas/morpheme/charset"
	"github.com/alecthomas/morpheme/lexer"
	"github.com/alecthomas/morpheme/regex"
)

// Option for configuring the compiled rules.
type Option func(*config)

type config struct {
	elide map[string]bool
}

// Elide drops the named productions' tokens from the output stream.
func Elide(names ...string) Option {
	return func(c *config) {
		for _, name := range names {
			c.elide[name] = true
		}
	}
}

// New compiles an EBNF grammar into a rule-driven lexer definition.
func New(grammar string, options ...Option) (*lexer.RuleLexer, error) {
	rules, err := Rules(grammar, options...)
	if err != nil {
		return nil, err
	}
	return lexer.CompileRules(rules)
}

// Must is like New but panics on error.
func Must(grammar string, options ...Option) *lexer.RuleLexer {
	def, err := New(grammar, options...)
	if err != nil {
		panic(err)
	}
	return def
}

// Rules compiles an EBNF grammar to lexer rules without building the
// dispatch table, for callers composing rule sets themselves.
func Rules(grammar string, options ...Option) (lexer.Rules, error) {
	cfg := &config{elide: map[string]bool{}}
	for _, option := range options {
		option(cfg)
	}
	ast, err := ebnf.Parse("<grammar>", strings.NewReader(grammar))
	if err != nil {
		return nil, err
	}
	for _, production := range ast {
		if err := validate(ast, production.Expr); err != nil {
			return nil, err
		}
	}

	exported := []*ebnf.Production{}
	for name, production := range ast {
		ch := name[0:1]
		if strings.ToUpper(ch) == ch {
			exported = append(exported, production)
		}
	}
	// ebnf.Grammar is a map; order rules by source position.
	sort.Slice(exported, func(i, j int) bool {
		return exported[i].Pos().Offset < exported[j].Pos().Offset
	})

	rules := make(lexer.Rules, 0, len(exported))
	for _, production := range exported {
		name := production.Name.String
		pattern, err := compile(ast, production.Expr)
		if err != nil {
			return nil, err
		}
		rules = append(rules, lexer.Rule{
			Name:    name,
			Pattern: pattern,
			Elide:   cfg.elide[name],
		})
	}
	return rules, nil
}

// validate checks that every referenced production exists. Reachability is
// deliberately not checked: a lexical grammar has many roots.
func validate(ast ebnf.Grammar, expr ebnf.Expression) error {
	switch n := expr.(type) {
	case ebnf.Alternative:
		for _, sub := range n {
			if err := validate(ast, sub); err != nil {
				return err
			}
		}
	case ebnf.Sequence:
		for _, sub := range n {
			if err := validate(ast, sub); err != nil {
				return err
			}
		}
	case *ebnf.Group:
		return validate(ast, n.Body)
	case *ebnf.Option:
		return validate(ast, n.Body)
	case *ebnf.Repetition:
		return validate(ast, n.Body)
	case *ebnf.Name:
		if ast[n.String] == nil {
			return exprError(expr, "unknown production "+n.String)
		}
	}
	return nil
}

// compile reduces an EBNF expression to a linear regex.
func compile(ast ebnf.Grammar, expr ebnf.Expression) (regex.Regex, error) {
	switch n := expr.(type) {
	case ebnf.Sequence:
		out := regex.Regex{}
		for _, sub := range n {
			part, err := compile(ast, sub)
			if err != nil {
				return regex.Regex{}, err
			}
			out, err = out.Concat(part)
			if err != nil {
				return regex.Regex{}, err
			}
		}
		return out, nil

	case *ebnf.Token:
		return regex.New(regex.Lit(n.String))

	case *ebnf.Range:
		set, err := rangeSet(n)
		if err != nil {
			return regex.Regex{}, err
		}
		return regex.New(regex.Class(set))

	case ebnf.Alternative:
		set, err := classOf(ast, n)
		if err != nil {
			return regex.Regex{}, err
		}
		return regex.New(regex.Class(set))

	case *ebnf.Group:
		return compile(ast, n.Body)

	case *ebnf.Name:
		return compile(ast, ast[n.String].Expr)

	case *ebnf.Option:
		return repeated(ast, n.Body, regex.Between(0, 1))

	case *ebnf.Repetition:
		return repeated(ast, n.Body, regex.AtLeast(0))

	default:
		return regex.Regex{}, exprError(expr, "unsupported expression")
	}
}

// repeated compiles a body that must reduce to a single once-repeated unit
// and applies rep to it.
func repeated(ast ebnf.Grammar, body ebnf.Expression, rep regex.Repeater) (regex.Regex, error) {
	inner, err := compile(ast, body)
	if err != nil {
		return regex.Regex{}, err
	}
	units := inner.Units()
	if len(units) != 1 || units[0].Repeater() != regex.Once {
		return regex.Regex{}, exprError(body, "repetition body must be a single atom")
	}
	return regex.New(units[0].Repeat(rep))
}

// classOf folds an expression into a character class.
func classOf(ast ebnf.Grammar, expr ebnf.Expression) (charset.Set, error) {
	switch n := expr.(type) {
	case ebnf.Alternative:
		out := charset.Empty
		for _, sub := range n {
			set, err := classOf(ast, sub)
			if err != nil {
				return charset.Set{}, err
			}
			out = out.Union(set)
		}
		return out, nil

	case *ebnf.Token:
		if utf8.RuneCountInString(n.String) != 1 {
			return charset.Set{}, exprError(expr, "alternative branches must be single characters or ranges")
		}
		return charset.AnyOf(n.String), nil

	case *ebnf.Range:
		return rangeSet(n)

	case *ebnf.Group:
		return classOf(ast, n.Body)

	case *ebnf.Name:
		return classOf(ast, ast[n.String].Expr)

	default:
		return charset.Set{}, exprError(expr, "alternative branches must be single characters or ranges")
	}
}

func rangeSet(n *ebnf.Range) (charset.Set, error) {
	begin, _ := utf8.DecodeRuneInString(n.Begin.String)
	end, _ := utf8.DecodeRuneInString(n.End.String)
	if utf8.RuneCountInString(n.Begin.String) != 1 || utf8.RuneCountInString(n.End.String) != 1 {
		return charset.Set{}, exprError(n, "range bounds must be single runes")
	}
	return charset.Range(begin, end), nil
}

func exprError(expr ebnf.Expression, message string) error {
	pos := expr.Pos()
	return lexer.Errorf(lexer.Position{Line: pos.Line, Column: pos.Column}, "%s", message)
}
