package morpheme

import "github.com/alecthomas/morpheme/lexer"

// A Stream consumes a line-compressed token sequence with single-token
// lookahead and pushback. It also threads an arbitrary user payload through
// the parse. A Stream is single-owner for the duration of one parse.
type Stream struct {
	lines []lexer.Line
	line  int // index into lines
	index int // index into the current line's tokens
	// pushback holds unshifted tokens, most recent last. It doubles as the
	// lookahead cache and is drained before the lines are touched again.
	pushback []pending
	state    interface{}
}

type pending struct {
	tok lexer.Token
	pos lexer.Position
}

// NewStream creates a Stream over lines with the given initial user state.
func NewStream(lines []lexer.Line, state interface{}) *Stream {
	return &Stream{lines: lines, state: state}
}

// State returns the user payload.
func (s *Stream) State() interface{} { return s.state }

// SetState replaces the user payload.
func (s *Stream) SetState(v interface{}) { s.state = v }

// Shift pops the next token and its position. It returns false at end of
// stream.
func (s *Stream) Shift() (lexer.Token, lexer.Position, bool) {
	if n := len(s.pushback); n > 0 {
		p := s.pushback[n-1]
		s.pushback = s.pushback[:n-1]
		return p.tok, p.pos, true
	}
	for s.line < len(s.lines) {
		line := s.lines[s.line]
		if s.index < len(line.Tokens) {
			spanned := line.Tokens[s.index]
			s.index++
			pos := lexer.Position{Line: line.Number, Column: spanned.Column}
			return spanned.Token, pos, true
		}
		s.line++
		s.index = 0
	}
	return lexer.Token{}, lexer.Position{}, false
}

// Unshift pushes a token back onto the stream. Outside this package's own
// lookahead it is an anti-pattern; prefer Look1.
func (s *Stream) Unshift(tok lexer.Token, pos lexer.Position) {
	s.pushback = append(s.pushback, pending{tok: tok, pos: pos})
}

// Look1 returns the next token without consuming it.
func (s *Stream) Look1() (lexer.Token, bool) {
	tok, pos, ok := s.Shift()
	if !ok {
		return lexer.Token{}, false
	}
	s.Unshift(tok, pos)
	return tok, true
}

// LookPos returns the position of the next token, or the zero (unknown)
// position at end of stream.
func (s *Stream) LookPos() lexer.Position {
	tok, pos, ok := s.Shift()
	if !ok {
		return lexer.Position{}
	}
	s.Unshift(tok, pos)
	return pos
}

// GuardEOF succeeds with no value iff the stream is exhausted.
func GuardEOF(s *Stream) Result {
	if _, ok := s.Look1(); ok {
		return backtrack()
	}
	return succeed(nil)
}

// Token shifts the next token and continues with cont when it has the given
// kind; otherwise the token is restored and the action backtracks.
func Token(kind lexer.Kind, cont func(lexer.Token) Action) Action {
	return func(s *Stream) Result {
		tok, pos, ok := s.Shift()
		if !ok {
			return backtrack()
		}
		if tok.Kind != kind {
			s.Unshift(tok, pos)
			return backtrack()
		}
		return cont(tok)(s)
	}
}

// TokenText shifts the next token and continues with cont when its text is
// exactly text; otherwise the token is restored and the action backtracks.
func TokenText(text string, cont func(lexer.Token) Action) Action {
	return func(s *Stream) Result {
		tok, pos, ok := s.Shift()
		if !ok {
			return backtrack()
		}
		if tok.Value() != text {
			s.Unshift(tok, pos)
			return backtrack()
		}
		return cont(tok)(s)
	}
}

// Marker remembers the stream position before running a; if a fails, the
// failure's location is rewritten to start at the marker rather than the
// failure site, for "expected X starting here" diagnostics.
func Marker(a Action) Action {
	return func(s *Stream) Result {
		start := s.LookPos()
		r := a(s)
		if r.Status == Failed && r.Err != nil && start.Known() {
			if r.Err.Loc.Known() {
				r.Err.Loc.Start = start
			} else {
				r.Err.Loc = lexer.At(start)
			}
		}
		return r
	}
}

// Expect converts a backtrack from a into a located failure carrying
// "expecting <msg>" and the offending lookahead token.
func Expect(msg string, a Action) Action {
	return func(s *Stream) Result {
		r := a(s)
		if r.Status != Backtracked {
			return r
		}
		err := Errorf(lexer.At(s.LookPos()), "expecting %s", msg)
		if tok, ok := s.Look1(); ok {
			err.Token = &tok
		}
		return failed(err)
	}
}
