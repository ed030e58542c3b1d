// Package lexer defines the line/column-tracking scanner and the token
// shapes shared by lexing and parsing.
//
// A Lexer is a sequential scanner over remaining input with an accumulation
// buffer of consumed-but-uncommitted characters. Committing the buffer
// produces a Token in its most compact storage form, advances the cursor
// across embedded newlines and tab stops, and appends to the per-line token
// list. Tokens are grouped into Lines so a position need not be stored with
// every token.
//
// Scanners may be hand-written against the primitives here, or compiled
// from regex rules; see CompileRules.
package lexer

import (
	"strings"
	"unicode/utf8"
)

// DefaultTabWidth is used when a Definition is given a tab width of zero.
const DefaultTabWidth = 8

// A Definition turns source text into token lines.
type Definition interface {
	// Tokenize lexes text to completion or to the first error.
	Tokenize(text string, tabWidth int) ([]Line, error)
}

// Func adapts a hand-written scan function into a Definition. The function
// must drive the Lexer to end of input or return a located error.
type Func func(l *Lexer) error

// Tokenize implements Definition.
func (f Func) Tokenize(text string, tabWidth int) ([]Line, error) {
	l := New(text, tabWidth)
	if err := f(l); err != nil {
		return nil, err
	}
	return l.Lines(), nil
}

// A Lexer scans text sequentially, tracking line and column.
type Lexer struct {
	tabWidth int
	pos      Position // start of the accumulation buffer
	input    string   // remainder beyond the buffer
	buffer   string   // consumed but uncommitted
	lines    []Line
	count    int // monotonic count of emitted tokens
}

// New creates a Lexer over text. A tabWidth of zero selects
// DefaultTabWidth.
func New(text string, tabWidth int) *Lexer {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return &Lexer{
		tabWidth: tabWidth,
		pos:      Position{Line: 1, Column: 1},
		input:    text,
	}
}

// Pos returns the position of the start of the accumulation buffer.
func (l *Lexer) Pos() Position {
	return l.pos
}

// EOF reports whether all input beyond the buffer is consumed.
func (l *Lexer) EOF() bool {
	return l.input == ""
}

// Count returns the number of tokens emitted so far.
func (l *Lexer) Count() int {
	return l.count
}

// Lines returns the emitted token lines.
func (l *Lexer) Lines() []Line {
	return l.lines
}

// Peek returns the next unconsumed rune without consuming it.
func (l *Lexer) Peek() (rune, bool) {
	r, size := utf8.DecodeRuneInString(l.input)
	return r, size > 0
}

// Take consumes one rune into the buffer.
func (l *Lexer) Take() (rune, bool) {
	r, size := utf8.DecodeRuneInString(l.input)
	if size == 0 {
		return 0, false
	}
	l.buffer += l.input[:size]
	l.input = l.input[size:]
	return r, true
}

// TakeWhile consumes runes satisfying pred into the buffer and returns them.
func (l *Lexer) TakeWhile(pred func(rune) bool) string {
	n := l.scanWhile(pred)
	taken := l.input[:n]
	l.buffer += taken
	l.input = l.input[n:]
	return taken
}

// PeekWhile returns the runes TakeWhile would consume, without consuming:
// the copying form of consume-while for non-destructive lookahead.
func (l *Lexer) PeekWhile(pred func(rune) bool) string {
	return l.input[:l.scanWhile(pred)]
}

func (l *Lexer) scanWhile(pred func(rune) bool) int {
	n := 0
	for n < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[n:])
		if size == 0 || !pred(r) {
			break
		}
		n += size
	}
	return n
}

// Literal consumes text into the buffer iff the input starts with it.
func (l *Lexer) Literal(text string) bool {
	if !strings.HasPrefix(l.input, text) {
		return false
	}
	l.buffer += text
	l.input = l.input[len(text):]
	return true
}

// Emit commits the buffer as a token of the given kind: the most compact of
// the three token forms is chosen, the cursor advances across the committed
// text, and the token is appended to the line it started on.
func (l *Lexer) Emit(kind Kind) Token {
	var token Token
	switch runes := utf8.RuneCountInString(l.buffer); runes {
	case 0:
		token = Bare(kind)
	case 1:
		r, _ := utf8.DecodeRuneInString(l.buffer)
		token = Char(kind, r)
	default:
		token = Text(kind, l.buffer)
	}
	start := l.pos
	l.commit()
	if n := len(l.lines); n == 0 || l.lines[n-1].Number != start.Line {
		l.lines = append(l.lines, Line{Number: start.Line})
	}
	line := &l.lines[len(l.lines)-1]
	line.Tokens = append(line.Tokens, Spanned{Column: start.Column, Token: token})
	l.count++
	return token
}

// Discard commits the buffer without emitting a token.
func (l *Lexer) Discard() {
	l.commit()
}

// Restore pushes the buffer back onto the input without advancing. This is
// an explicit opt-in for backtracking scanners; it is inherently wasteful
// and ordinary backtracking should not need it.
func (l *Lexer) Restore() {
	l.input = l.buffer + l.input
	l.buffer = ""
}

// commit advances the cursor across the buffer, honouring newlines and tab
// stops, then clears it.
func (l *Lexer) commit() {
	for _, r := range l.buffer {
		switch r {
		case '\n':
			l.pos.Line++
			l.pos.Column = 1
		case '\t':
			l.pos.Column = ((l.pos.Column-1)/l.tabWidth+1)*l.tabWidth + 1
		default:
			l.pos.Column++
		}
	}
	l.buffer = ""
}

// Errorf returns a located error at the current position.
func (l *Lexer) Errorf(format string, args ...interface{}) *Error {
	return Errorf(l.pos, format, args...)
}

// ScanUntil consumes buffered input up to and including terminator. Per
// step it tries, in order: end of input (stop, unterminated), the
// terminator (stop, terminated), escape followed by one more
// terminator/escape/any character, the scan hook, then any single
// character. It serves string and character literals and both
// inline-delimited and end-of-line comment styles.
//
// A nil scan hook is permitted. The escape may be empty to disable
// escaping.
func (l *Lexer) ScanUntil(scan func(l *Lexer) bool, escape, terminator string) bool {
	for {
		switch {
		case l.EOF():
			return false
		case l.Literal(terminator):
			return true
		case escape != "" && l.Literal(escape):
			if !l.Literal(terminator) && !l.Literal(escape) {
				l.Take()
			}
		case scan != nil && scan(l):
		default:
			l.Take()
		}
	}
}
