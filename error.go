package morpheme

import (
	"fmt"

	"github.com/alecthomas/morpheme/lexer"
)

// Error represents an error while parsing.
//
// The error will contain positional information if available.
type Error interface {
	error
	// Unadorned message.
	Message() string
	// Location the error occurred at.
	Location() lexer.Location
}

// A ParseError is the one run-time error shape of both phases: lexer errors
// are normalized into it so a single renderer serves lexing and parsing.
type ParseError struct {
	// Type optionally names the data type being parsed.
	Type string
	Loc  lexer.Location
	Msg  string
	// Token is the offending lookahead token, if any.
	Token *lexer.Token
}

func (p *ParseError) Message() string { return p.Msg }

func (p *ParseError) Location() lexer.Location { return p.Loc }

func (p *ParseError) Error() string {
	msg := p.Msg
	if p.Token != nil && p.Token.Value() != "" {
		msg = fmt.Sprintf("%s (got %q)", msg, p.Token.Value())
	}
	if p.Type != "" {
		msg = fmt.Sprintf("%s: %s", p.Type, msg)
	}
	if !p.Loc.Known() {
		return msg
	}
	return fmt.Sprintf("%s: %s", p.Loc, msg)
}

// Errorf creates a new ParseError at the given location.
func Errorf(loc lexer.Location, format string, args ...interface{}) *ParseError {
	return &ParseError{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

// normalizeError converts a lexer error into the shared ParseError shape.
// ParseErrors pass through unmodified.
func normalizeError(err error) *ParseError {
	switch e := err.(type) {
	case *ParseError:
		return e
	case *lexer.Error:
		return &ParseError{Loc: lexer.At(e.Pos), Msg: e.Message}
	default:
		return &ParseError{Msg: err.Error()}
	}
}
