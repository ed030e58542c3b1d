package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alecthomas/morpheme/charset"
	"github.com/alecthomas/morpheme/regex"
)

var (
	identRe  = regex.MustNew(regex.Class(charset.Range('a', 'z')).Repeat(regex.AtLeast(1)))
	digitsRe = regex.MustNew(regex.Class(charset.Range('0', '9')).Repeat(regex.AtLeast(1)))
	plusRe   = regex.MustNew(regex.Lit("+"))
	arrowRe  = regex.MustNew(regex.Lit("->"))
	minusRe  = regex.MustNew(regex.Lit("-"))
)

func testAlts() []Alt {
	return []Alt{
		{identRe, "ident"},
		{digitsRe, "digits"},
		{plusRe, "plus"},
		{arrowRe, "arrow"},
		{minusRe, "minus"},
	}
}

func TestMatch(t *testing.T) {
	table, err := New(testAlts(), nil)
	require.NoError(t, err)

	tests := []struct {
		input   string
		text    string
		payload interface{}
		ok      bool
	}{
		{"hello world", "hello", "ident", true},
		{"123+4", "123", "digits", true},
		{"+4", "+", "plus", true},
		{"->x", "->", "arrow", true},
		{"-x", "-", "minus", true},
		{"", "", nil, false},
		{"!x", "", nil, false},
		{"�x", "", nil, false},
	}
	for _, test := range tests {
		text, payload, ok := table.Match(test.input)
		assert.Equal(t, test.ok, ok, "%q", test.input)
		assert.Equal(t, test.text, text, "%q", test.input)
		assert.Equal(t, test.payload, payload, "%q", test.input)
	}
}

func TestRejectsShadowedAlternative(t *testing.T) {
	abc := regex.MustNew(regex.Lit("abc"))
	_, err := New([]Alt{{identRe, 1}, {abc, 2}}, nil)
	require.Error(t, err)
	serr, ok := err.(*regex.ShadowError)
	require.True(t, ok)
	assert.Equal(t, regex.Parallel, serr.Mode)
}

func TestRejectsMultipleDeadBranches(t *testing.T) {
	abc := regex.MustNew(regex.Lit("abc"))
	xyz := regex.MustNew(regex.Lit("xyz"))
	_, err := New([]Alt{{identRe, 1}, {abc, 2}, {xyz, 3}}, nil)
	require.Error(t, err)
	cerr, ok := err.(*CutError)
	require.True(t, ok)
	assert.Len(t, cerr.Branches, 2)
}

func TestMergesIdenticalPatterns(t *testing.T) {
	merge := func(a, b interface{}) (interface{}, error) { return a.(int) + b.(int), nil }
	table, err := New([]Alt{{plusRe, 1}, {plusRe, 2}}, merge)
	require.NoError(t, err)
	require.Len(t, table.Alternatives(), 1)
	_, payload, ok := table.Match("+")
	require.True(t, ok)
	assert.Equal(t, 3, payload)
}

func TestDuplicateWithoutMergerFails(t *testing.T) {
	_, err := New([]Alt{{plusRe, 1}, {plusRe, 2}}, nil)
	require.Error(t, err)
}

func TestEmptyTableBacktracks(t *testing.T) {
	table, err := New(nil, nil)
	require.NoError(t, err)
	_, _, ok := table.Match("anything")
	assert.False(t, ok)
}

// Dispatch must agree with plain ordered choice over the original list.
func TestEquivalentToOrderedChoice(t *testing.T) {
	table, err := New(testAlts(), nil)
	require.NoError(t, err)

	inputs := []string{
		"abc", "a", "zebra9", "90210", "7", "+", "++", "->", "-", "-->",
		"", " ", "!", "Abc", "a+b", "12->3",
	}
	for _, input := range inputs {
		text, payload, ok := table.Match(input)

		var wantText string
		var wantPayload interface{}
		wantOK := false
		for _, alt := range testAlts() {
			if n, matched := alt.Pattern.MatchPrefix(input); matched && n > 0 {
				wantText, wantPayload, wantOK = input[:n], alt.Payload, true
				break
			}
		}
		assert.Equal(t, wantOK, ok, "%q", input)
		assert.Equal(t, wantText, text, "%q", input)
		assert.Equal(t, wantPayload, payload, "%q", input)
	}
}
