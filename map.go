package morpheme

import (
	"strconv"
	"strings"

	"github.com/alecthomas/morpheme/lexer"
)

// Mapper function for mutating tokens between lexing and parsing.
type Mapper func(token lexer.Token) (lexer.Token, error)

// Map is an Option that applies a mapping function to each token from the
// lexer.
//
// This can be useful to eg. upper-case all tokens of a certain kind, or
// dequote strings.
//
// "kinds" specifies the token kinds the Mapper applies to. If empty, all
// tokens are mapped.
func Map(mapper Mapper, kinds ...lexer.Kind) Option {
	return func(g *Grammar) error {
		targeted := targetKinds(mapper, kinds)
		next := g.mapper
		if next == nil {
			g.mapper = targeted
			return nil
		}
		g.mapper = func(token lexer.Token) (lexer.Token, error) {
			t, err := next(token)
			if err != nil {
				return t, err
			}
			return targeted(t)
		}
		return nil
	}
}

// Unquote applies strconv.Unquote-style unquoting to tokens of the given
// kinds.
func Unquote(kinds ...lexer.Kind) Option {
	return Map(func(t lexer.Token) (lexer.Token, error) {
		value, err := unquote(t.Value())
		if err != nil {
			return t, lexer.Errorf(lexer.Position{}, "invalid quoted string %q: %s", t.Value(), err)
		}
		return lexer.Text(t.Kind, value), nil
	}, kinds...)
}

// Upper upper-cases all tokens of the given kinds. Useful for case
// normalisation.
func Upper(kinds ...lexer.Kind) Option {
	return Map(func(t lexer.Token) (lexer.Token, error) {
		return lexer.Text(t.Kind, strings.ToUpper(t.Value())), nil
	}, kinds...)
}

func unquote(s string) (string, error) {
	if len(s) < 2 {
		return "", strconv.ErrSyntax
	}
	quote := s[0]
	s = s[1 : len(s)-1]
	out := ""
	for s != "" {
		value, _, tail, err := strconv.UnquoteChar(s, quote)
		if err != nil {
			return "", err
		}
		s = tail
		out += string(value)
	}
	return out, nil
}

func targetKinds(mapper Mapper, kinds []lexer.Kind) Mapper {
	if len(kinds) == 0 {
		return mapper
	}
	match := make(map[lexer.Kind]bool, len(kinds))
	for _, k := range kinds {
		match[k] = true
	}
	return func(token lexer.Token) (lexer.Token, error) {
		if !match[token.Kind] {
			return token, nil
		}
		return mapper(token)
	}
}

// applyMapper rewrites every token through the grammar's mapper, keeping
// the line structure intact.
func (g *Grammar) applyMapper(lines []lexer.Line) ([]lexer.Line, error) {
	out := make([]lexer.Line, len(lines))
	for i, line := range lines {
		mapped := lexer.Line{Number: line.Number, Tokens: make([]lexer.Spanned, len(line.Tokens))}
		for j, spanned := range line.Tokens {
			token, err := g.mapper(spanned.Token)
			if err != nil {
				return nil, err
			}
			mapped.Tokens[j] = lexer.Spanned{Column: spanned.Column, Token: token}
		}
		out[i] = mapped
	}
	return out, nil
}
