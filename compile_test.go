package morpheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alecthomas/morpheme/lexer"
)

func TestCompileSingleKindEntry(t *testing.T) {
	table, err := Compile(Match(testNumber, Const(1)))
	require.NoError(t, err)
	assert.Equal(t, nKindSingle, table.root.op)
	assert.Equal(t, testNumber, table.root.kind)
}

func TestCompileSingleTextEntry(t *testing.T) {
	table, err := Compile(MatchText(testPunct, "+", Const(1)))
	require.NoError(t, err)
	assert.Equal(t, nTextSingle, table.root.op)
	assert.Equal(t, testPunct, table.root.kind)
	assert.Equal(t, "+", table.root.text)
}

func TestCompileDenseKindArray(t *testing.T) {
	p := Choice(
		Match(testNumber, Const("number")),
		Match(testIdent, Const("ident")),
		Match(testPunct, Const("punct")),
	)
	table, err := Compile(p)
	require.NoError(t, err)
	require.Equal(t, nKindArray, table.root.op)
	assert.Len(t, table.root.dense, 3)
}

func TestCompileSparseKindMap(t *testing.T) {
	big := lexer.Kind(denseKindLimit + 1)
	p := Choice(
		Match(testNumber, Const("number")),
		Match(big, Const("big")),
	)
	table, err := Compile(p)
	require.NoError(t, err)
	assert.Equal(t, nKindMap, table.root.op)
}

func TestCompileNegativeKindUsesMap(t *testing.T) {
	p := Choice(
		Match(lexer.EOF, Const("eof")),
		Match(testNumber, Const("number")),
	)
	table, err := Compile(p)
	require.NoError(t, err)
	assert.Equal(t, nKindMap, table.root.op)
}

func TestCompileMixedTextAndKindBranches(t *testing.T) {
	p := Choice(
		Text(testIdent, "if"),
		Term(testIdent, func(tok lexer.Token) interface{} { return "ident" }),
		Term(testNumber, func(tok lexer.Token) interface{} { return "number" }),
	)
	table, err := Compile(p)
	require.NoError(t, err)
	require.Equal(t, nKindArray, table.root.op)
	require.Contains(t, table.root.byText, testIdent)
	assert.Contains(t, table.root.byText[testIdent], "if")
}

func TestParseTableIsReusable(t *testing.T) {
	table := MustCompile(Term(testNumber, func(tok lexer.Token) interface{} { return tok.Value() }))
	for i := 0; i < 3; i++ {
		r := table.Parse(NewStream(testLines(), nil))
		require.Equal(t, Success, r.Status)
		assert.Equal(t, "12", r.Value)
	}
}
