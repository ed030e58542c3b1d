package morpheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alecthomas/morpheme/lexer"
)

const (
	testNumber lexer.Kind = iota
	testIdent
	testPunct
)

func testLines() []lexer.Line {
	return []lexer.Line{
		{Number: 1, Tokens: []lexer.Spanned{
			{Column: 1, Token: lexer.Text(testNumber, "12")},
			{Column: 3, Token: lexer.Char(testPunct, '+')},
		}},
		{Number: 2, Tokens: []lexer.Spanned{
			{Column: 1, Token: lexer.Text(testIdent, "x")},
		}},
	}
}

func TestStreamShiftWalksLines(t *testing.T) {
	s := NewStream(testLines(), nil)

	tok, pos, ok := s.Shift()
	require.True(t, ok)
	assert.Equal(t, "12", tok.Value())
	assert.Equal(t, lexer.Position{Line: 1, Column: 1}, pos)

	tok, pos, ok = s.Shift()
	require.True(t, ok)
	assert.Equal(t, "+", tok.Value())
	assert.Equal(t, lexer.Position{Line: 1, Column: 3}, pos)

	tok, pos, ok = s.Shift()
	require.True(t, ok)
	assert.Equal(t, "x", tok.Value())
	assert.Equal(t, lexer.Position{Line: 2, Column: 1}, pos)

	_, _, ok = s.Shift()
	assert.False(t, ok)
}

func TestStreamUnshift(t *testing.T) {
	s := NewStream(testLines(), nil)
	tok, pos, ok := s.Shift()
	require.True(t, ok)
	s.Unshift(tok, pos)

	again, againPos, ok := s.Shift()
	require.True(t, ok)
	assert.Equal(t, tok, again)
	assert.Equal(t, pos, againPos)
}

func TestStreamLook1DoesNotConsume(t *testing.T) {
	s := NewStream(testLines(), nil)
	tok, ok := s.Look1()
	require.True(t, ok)
	assert.Equal(t, "12", tok.Value())

	tok, ok = s.Look1()
	require.True(t, ok)
	assert.Equal(t, "12", tok.Value())

	assert.Equal(t, lexer.Position{Line: 1, Column: 1}, s.LookPos())
}

func TestStreamLookPosAtEOF(t *testing.T) {
	s := NewStream(nil, nil)
	assert.Equal(t, lexer.Position{}, s.LookPos())
	assert.False(t, s.LookPos().Known())
}

func TestStreamState(t *testing.T) {
	s := NewStream(nil, 42)
	assert.Equal(t, 42, s.State())
	s.SetState("done")
	assert.Equal(t, "done", s.State())
}

func TestGuardEOF(t *testing.T) {
	s := NewStream(nil, nil)
	r := GuardEOF(s)
	assert.Equal(t, Success, r.Status)
	assert.Nil(t, r.Value)

	s = NewStream(testLines(), nil)
	r = GuardEOF(s)
	assert.Equal(t, Backtracked, r.Status)
}

func TestTokenRestoresOnMismatch(t *testing.T) {
	s := NewStream(testLines(), nil)
	r := Token(testIdent, func(tok lexer.Token) Action {
		return func(*Stream) Result { return succeed(tok.Value()) }
	})(s)
	require.Equal(t, Backtracked, r.Status)

	// The mismatched token is back on the stream.
	tok, ok := s.Look1()
	require.True(t, ok)
	assert.Equal(t, "12", tok.Value())
}

func TestTokenConsumesOnMatch(t *testing.T) {
	s := NewStream(testLines(), nil)
	r := Token(testNumber, func(tok lexer.Token) Action {
		return func(*Stream) Result { return succeed(tok.Value()) }
	})(s)
	require.Equal(t, Success, r.Status)
	assert.Equal(t, "12", r.Value)

	tok, ok := s.Look1()
	require.True(t, ok)
	assert.Equal(t, "+", tok.Value())
}

func TestTokenTextMatchesExactText(t *testing.T) {
	s := NewStream(testLines(), nil)
	r := TokenText("12", func(tok lexer.Token) Action {
		return func(*Stream) Result { return succeed(nil) }
	})(s)
	require.Equal(t, Success, r.Status)

	r = TokenText("12", func(tok lexer.Token) Action {
		return func(*Stream) Result { return succeed(nil) }
	})(s)
	require.Equal(t, Backtracked, r.Status)
}

func TestMarkerRewritesFailureStart(t *testing.T) {
	s := NewStream(testLines(), nil)
	fail := func(s *Stream) Result {
		// Consume two tokens, then fail at the cursor.
		s.Shift()
		s.Shift()
		return failed(Errorf(lexer.At(s.LookPos()), "boom"))
	}
	r := Marker(fail)(s)
	require.Equal(t, Failed, r.Status)
	assert.Equal(t, lexer.Position{Line: 1, Column: 1}, r.Err.Loc.Start)
	assert.Equal(t, lexer.Position{Line: 2, Column: 1}, r.Err.Loc.End)
}

func TestExpectConvertsBacktrackToFailure(t *testing.T) {
	s := NewStream(testLines(), nil)
	r := Expect("identifier", func(*Stream) Result { return backtrack() })(s)
	require.Equal(t, Failed, r.Status)
	assert.Equal(t, "expecting identifier", r.Err.Msg)
	require.NotNil(t, r.Err.Token)
	assert.Equal(t, "12", r.Err.Token.Value())
	assert.Equal(t, lexer.Position{Line: 1, Column: 1}, r.Err.Loc.Start)
}

func TestExpectPassesThroughSuccess(t *testing.T) {
	s := NewStream(testLines(), nil)
	r := Expect("anything", func(*Stream) Result { return succeed(7) })(s)
	require.Equal(t, Success, r.Status)
	assert.Equal(t, 7, r.Value)
}
