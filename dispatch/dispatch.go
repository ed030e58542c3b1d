// Package dispatch compiles a list of (regex, payload) alternatives into a
// character-indexed table giving O(1) candidate selection from one rune of
// lookahead.
//
// Construction validates the alternatives: a later alternative whose pattern
// is parallel-shadowed by an earlier one is unreachable and rejected;
// alternatives with identical patterns have their payloads merged. The table
// is immutable once built and may be shared across concurrent callers.
//
// The bucket array spans the union of the alternatives' initial character
// sets. An inverted or very large class in initial position forces an array
// covering most of the character domain; avoid that pattern where memory
// matters.
package dispatch

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/morpheme/regex"
)

// An Alt pairs a pattern with an arbitrary payload returned on match.
type Alt struct {
	Pattern regex.Regex
	Payload interface{}
}

// A Merger combines the payloads of two alternatives with identical
// patterns.
type Merger func(a, b interface{}) (interface{}, error)

// A CutError reports alternatives that can never match: each listed branch
// is parallel-shadowed by an earlier one.
type CutError struct {
	Branches []regex.Regex
}

func (e *CutError) Error() string {
	rendered := make([]string, len(e.Branches))
	for i, r := range e.Branches {
		rendered[i] = r.String()
	}
	return fmt.Sprintf("invalid grammar: unreachable alternatives: %s", strings.Join(rendered, ", "))
}

// A Table dispatches on the first rune of input to the alternatives that
// could start with it.
type Table struct {
	base    rune
	buckets [][]Alt
	alts    []Alt
}

// Must is like New but panics on error.
func Must(alts []Alt, merge Merger) *Table {
	t, err := New(alts, merge)
	if err != nil {
		panic(err)
	}
	return t
}

// New builds a Table from alternatives in priority order. Identical patterns
// are merged with merge; a nil merge rejects duplicates. A later alternative
// parallel-shadowed by an earlier, different pattern is a construction
// error.
func New(alts []Alt, merge Merger) (*Table, error) {
	kept, err := validate(alts, merge)
	if err != nil {
		return nil, err
	}
	t := &Table{alts: kept}

	lo, hi := rune(utf8.MaxRune), rune(0)
	for _, alt := range kept {
		for _, iv := range alt.Pattern.First().Intervals() {
			if iv.Lo < lo {
				lo = iv.Lo
			}
			if iv.Hi > hi {
				hi = iv.Hi
			}
		}
	}
	if lo > hi {
		return t, nil
	}
	t.base = lo
	t.buckets = make([][]Alt, hi-lo+1)
	for _, alt := range kept {
		for _, iv := range alt.Pattern.First().Intervals() {
			for r := iv.Lo; r <= iv.Hi; r++ {
				t.buckets[r-lo] = append(t.buckets[r-lo], alt)
			}
		}
	}
	return t, nil
}

func validate(alts []Alt, merge Merger) ([]Alt, error) {
	kept := make([]Alt, 0, len(alts))
	cut := []regex.Regex{}
next:
	for _, alt := range alts {
		for i, prev := range kept {
			if prev.Pattern.Equal(alt.Pattern) {
				if merge == nil {
					return nil, fmt.Errorf("duplicate pattern %s with no payload merge", alt.Pattern)
				}
				merged, err := merge(prev.Payload, alt.Payload)
				if err != nil {
					return nil, err
				}
				kept[i].Payload = merged
				continue next
			}
			if regex.ShadowsParallel(prev.Pattern, alt.Pattern) {
				cut = append(cut, alt.Pattern)
				continue next
			}
		}
		kept = append(kept, alt)
	}
	if len(cut) == 1 {
		first := kept[0].Pattern
		for _, prev := range kept {
			if regex.ShadowsParallel(prev.Pattern, cut[0]) {
				first = prev.Pattern
				break
			}
		}
		return nil, &regex.ShadowError{Mode: regex.Parallel, Left: first, Right: cut[0]}
	}
	if len(cut) > 1 {
		return nil, &CutError{Branches: cut}
	}
	return kept, nil
}

// Alternatives returns the validated alternatives in priority order.
func (t *Table) Alternatives() []Alt {
	out := make([]Alt, len(t.alts))
	copy(out, t.alts)
	return out
}

// Match peeks one rune of s and tries the bucketed alternatives as an
// ordered choice, returning the matched prefix and the winning payload.
// A first rune outside the table's span backtracks (ok false).
func (t *Table) Match(s string) (text string, payload interface{}, ok bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r < t.base || int(r-t.base) >= len(t.buckets) {
		return "", nil, false
	}
	for _, alt := range t.buckets[r-t.base] {
		if n, matched := alt.Pattern.MatchPrefix(s); matched {
			return s[:n], alt.Payload, true
		}
	}
	return "", nil, false
}
