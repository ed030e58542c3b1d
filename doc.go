// Package morpheme constructs two-phase parsers from declarative
// combinators that compile to statically-validated dispatch structures.
//
// A grammar has two halves. The lexical half is either a hand-written
// scanner over lexer.Lexer primitives or a set of regex rules compiled into
// a character-indexed dispatch table; both produce line-grouped tokens. The
// syntactic half is a Parser value assembled from a closed set of
// combinator shapes and compiled once, with Compile, into a ParseTable that
// dispatches on token kind and text.
//
// Ambiguity is handled differently on the two levels. The regex algebra
// rejects shadowed patterns while the grammar is being built: a sequence
// whose earlier element always swallows the input of a later one, or an
// alternative unreachable behind an earlier one, is a construction error.
// The combinator algebra is instead permissive: overlapping branches merge
// and are tried in order.
//
// A minimal calculator:
//
//	def := lexer.MustRules(lexer.Rules{
//	    {Name: "Number", Pattern: regex.MustNew(regex.Class(charset.Range('0', '9')).Repeat(regex.AtLeast(1)))},
//	    {Name: "Plus", Pattern: regex.MustNew(regex.Lit("+"))},
//	})
//	number, _ := def.Kinds().Kind("Number")
//	plus, _ := def.Kinds().Kind("Plus")
//	digits := morpheme.Term(number, func(t lexer.Token) interface{} {
//	    n, _ := strconv.Atoi(t.Value())
//	    return n
//	})
//	sum := morpheme.Bind(digits, func(a interface{}) morpheme.Parser {
//	    return morpheme.Seq(morpheme.Text(plus, "+"), morpheme.Bind(digits, func(b interface{}) morpheme.Parser {
//	        return morpheme.Const(a.(int) + b.(int))
//	    }))
//	})
//	grammar := morpheme.Must(def, sum)
//	value, err := grammar.Parse(nil, "12+7")
package morpheme
