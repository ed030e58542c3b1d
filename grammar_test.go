package morpheme

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alecthomas/morpheme/charset"
	"github.com/alecthomas/morpheme/lexer"
	"github.com/alecthomas/morpheme/regex"
)

func calcDef(t *testing.T) *lexer.RuleLexer {
	t.Helper()
	return lexer.MustRules(lexer.Rules{
		{Name: "Number", Pattern: regex.MustNew(regex.Class(charset.Range('0', '9')).Repeat(regex.AtLeast(1)))},
		{Name: "Plus", Pattern: regex.MustNew(regex.Lit("+"))},
		{Name: "Whitespace", Pattern: regex.MustNew(regex.Class(charset.AnyOf(" \t")).Repeat(regex.AtLeast(1))), Elide: true},
	})
}

func sumParser(def *lexer.RuleLexer) Parser {
	number, _ := def.Kinds().Kind("Number")
	plus, _ := def.Kinds().Kind("Plus")
	digits := Term(number, func(tok lexer.Token) interface{} {
		n, _ := strconv.Atoi(tok.Value())
		return n
	})
	return Bind(digits, func(a interface{}) Parser {
		return Seq(Text(plus, "+"), Bind(digits, func(b interface{}) Parser {
			return Seq(EOF(), Const(a.(int)+b.(int)))
		}))
	})
}

func TestGrammarParse(t *testing.T) {
	def := calcDef(t)
	g := Must(def, sumParser(def))

	value, err := g.Parse(nil, "12+7")
	require.NoError(t, err)
	assert.Equal(t, 19, value)
}

func TestGrammarIsReusable(t *testing.T) {
	def := calcDef(t)
	g := Must(def, sumParser(def))

	for _, test := range []struct {
		input string
		sum   int
	}{
		{"1+1", 2},
		{"40 + 2", 42},
		{"0+0", 0},
	} {
		value, err := g.Parse(nil, test.input)
		require.NoError(t, err, test.input)
		assert.Equal(t, test.sum, value, test.input)
	}
}

func TestGrammarBacktrackAtTopLevel(t *testing.T) {
	def := calcDef(t)
	g := Must(def, sumParser(def), Type("sum"))

	_, err := g.Parse(nil, "+12")
	require.Error(t, err)
	assert.Equal(t, "sum: no grammar alternative matched", err.Error())
}

func TestGrammarLexerErrorNormalized(t *testing.T) {
	def := calcDef(t)
	g := Must(def, sumParser(def), Type("sum"))

	_, err := g.Parse(nil, "12&34")
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok, "lexer errors must surface as *ParseError, got %T", err)
	assert.Equal(t, "sum", perr.Type)
	assert.Equal(t, lexer.Position{Line: 1, Column: 3}, perr.Loc.Start)
	assert.Contains(t, perr.Msg, "no token matches input")
}

func TestGrammarEmptyInputEOFOnly(t *testing.T) {
	def := calcDef(t)
	g := Must(def, EOF())

	value, err := g.Parse(nil, "")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestParseResultExposesBacktrack(t *testing.T) {
	def := calcDef(t)
	g := Must(def, sumParser(def))

	r, err := g.ParseResult(nil, "+")
	require.NoError(t, err)
	assert.Equal(t, Backtracked, r.Status)
}

func TestGrammarStateThreading(t *testing.T) {
	def := calcDef(t)
	record := Update(func(s *Stream) Result {
		return succeed(s.State())
	})
	g := Must(def, record)

	value, err := g.Parse("initial", "")
	require.NoError(t, err)
	assert.Equal(t, "initial", value)
}

func TestGrammarTabWidth(t *testing.T) {
	def := calcDef(t)
	at := Update(func(s *Stream) Result { return succeed(s.LookPos()) })

	g := Must(def, at, TabWidth(4))
	value, err := g.Parse(nil, "\t9")
	require.NoError(t, err)
	assert.Equal(t, lexer.Position{Line: 1, Column: 5}, value)

	g = Must(def, at)
	value, err = g.Parse(nil, "\t9")
	require.NoError(t, err)
	assert.Equal(t, lexer.Position{Line: 1, Column: 9}, value)
}

func stringDef(t *testing.T) *lexer.RuleLexer {
	t.Helper()
	return lexer.MustRules(lexer.Rules{
		{Name: "String", Pattern: regex.MustNew(
			regex.Lit(`"`),
			regex.Class(charset.NoneOf(`"`)).Repeat(regex.AtLeast(0)),
			regex.Lit(`"`),
		)},
		{Name: "Ident", Pattern: regex.MustNew(regex.Class(charset.Range('a', 'z')).Repeat(regex.AtLeast(1)))},
		{Name: "Whitespace", Pattern: regex.MustNew(regex.Class(charset.AnyOf(" ")).Repeat(regex.AtLeast(1))), Elide: true},
	})
}

func TestUnquoteOption(t *testing.T) {
	def := stringDef(t)
	str, _ := def.Kinds().Kind("String")
	g := Must(def, Term(str, func(tok lexer.Token) interface{} { return tok.Value() }), Unquote(str))

	value, err := g.Parse(nil, `"hello world"`)
	require.NoError(t, err)
	assert.Equal(t, "hello world", value)
}

func TestUpperOption(t *testing.T) {
	def := stringDef(t)
	ident, _ := def.Kinds().Kind("Ident")
	g := Must(def, Term(ident, func(tok lexer.Token) interface{} { return tok.Value() }), Upper(ident))

	value, err := g.Parse(nil, "hello")
	require.NoError(t, err)
	assert.Equal(t, "HELLO", value)
}

func TestMapTargetsOnlyGivenKinds(t *testing.T) {
	def := stringDef(t)
	str, _ := def.Kinds().Kind("String")
	ident, _ := def.Kinds().Kind("Ident")
	both := Bind(Term(ident, func(tok lexer.Token) interface{} { return tok.Value() }), func(a interface{}) Parser {
		return Bind(Term(str, func(tok lexer.Token) interface{} { return tok.Value() }), func(b interface{}) Parser {
			return Const([]string{a.(string), b.(string)})
		})
	})
	g := Must(def, both, Upper(ident))

	value, err := g.Parse(nil, `abc "def"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC", `"def"`}, value)
}

func TestMapOptionsChain(t *testing.T) {
	def := stringDef(t)
	str, _ := def.Kinds().Kind("String")
	g := Must(def, Term(str, func(tok lexer.Token) interface{} { return tok.Value() }),
		Unquote(str), Upper(str))

	value, err := g.Parse(nil, `"hello"`)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", value)
}

func TestMapperErrorCarriesGrammarType(t *testing.T) {
	def := stringDef(t)
	str, _ := def.Kinds().Kind("String")
	g := Must(def, Term(str, func(tok lexer.Token) interface{} { return tok.Value() }),
		Unquote(str), Type("config"))

	_, err := g.Parse(nil, `"\q"`)
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, "config", perr.Type)
	assert.Contains(t, err.Error(), "config: invalid quoted string")
}

func TestParseErrorRendering(t *testing.T) {
	tok := lexer.Text(0, "+")
	err := &ParseError{
		Type:  "expr",
		Loc:   lexer.At(lexer.Position{Line: 2, Column: 5}),
		Msg:   "expecting number",
		Token: &tok,
	}
	assert.Equal(t, `2:5: expr: expecting number (got "+")`, err.Error())
	assert.Equal(t, "expecting number", err.Message())

	var _ Error = err
}

func TestParseErrorUnknownLocation(t *testing.T) {
	err := &ParseError{Msg: "boom"}
	assert.Equal(t, "boom", err.Error())
}
