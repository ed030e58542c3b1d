package lexer

import (
	"fmt"

	"github.com/alecthomas/morpheme/dispatch"
	"github.com/alecthomas/morpheme/regex"
)

// A Rule matches one token pattern. Rules sharing a Name share a Kind.
// Elided rules consume input without emitting a token.
type Rule struct {
	Name    string
	Pattern regex.Regex
	Elide   bool
}

// Rules in priority order.
type Rules []Rule

// A RuleLexer is a Definition compiled from Rules: token recognition
// dispatches on the first rune through a dispatch.Table.
type RuleLexer struct {
	table *dispatch.Table
	kinds *KindSet
}

type ruleAction struct {
	kind  Kind
	elide bool
}

// CompileRules builds a RuleLexer, assigning dense kinds in rule order and
// validating the patterns against each other.
func CompileRules(rules Rules) (*RuleLexer, error) {
	kinds := NewKindSet()
	alts := make([]dispatch.Alt, 0, len(rules))
	for _, rule := range rules {
		if rule.Pattern.Len() == 0 {
			return nil, fmt.Errorf("rule %q: empty pattern", rule.Name)
		}
		alts = append(alts, dispatch.Alt{
			Pattern: rule.Pattern,
			Payload: ruleAction{kind: kinds.Add(rule.Name), elide: rule.Elide},
		})
	}
	table, err := dispatch.New(alts, mergeRuleActions)
	if err != nil {
		return nil, err
	}
	return &RuleLexer{table: table, kinds: kinds}, nil
}

// MustRules is like CompileRules but panics on error.
func MustRules(rules Rules) *RuleLexer {
	def, err := CompileRules(rules)
	if err != nil {
		panic(err)
	}
	return def
}

func mergeRuleActions(a, b interface{}) (interface{}, error) {
	left, right := a.(ruleAction), b.(ruleAction)
	if left != right {
		return nil, fmt.Errorf("identical patterns produce different tokens")
	}
	return left, nil
}

// Kinds returns the kind set assigned during compilation.
func (d *RuleLexer) Kinds() *KindSet {
	return d.kinds
}

// Tokenize implements Definition.
func (d *RuleLexer) Tokenize(text string, tabWidth int) ([]Line, error) {
	l := New(text, tabWidth)
	for !l.EOF() {
		matched, payload, ok := d.table.Match(l.input)
		if !ok || matched == "" {
			return nil, l.Errorf("no token matches input %q", head(l.input))
		}
		l.Literal(matched)
		action := payload.(ruleAction)
		if action.elide {
			l.Discard()
		} else {
			l.Emit(action.kind)
		}
	}
	return l.Lines(), nil
}

// head truncates s for use in error messages.
func head(s string) string {
	if len(s) > 10 {
		return s[:10] + "..."
	}
	return s
}
