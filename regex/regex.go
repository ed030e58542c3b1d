// Package regex implements the regular-expression algebra underpinning the
// dispatch table and the rule-driven lexer: finite sequences of repeated
// literal or character-class atoms with greedy bounded matching.
//
// Sequences are built only through New, Append and Concat, which merge
// compatible adjacent units and reject compositions where an earlier unit
// provably consumes everything a later unit could match (series shadowing).
// Ambiguity is therefore a construction-time error, never a silent runtime
// preference.
package regex

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/morpheme/charset"
)

// A Regex is an ordered sequence of units. The zero value matches only the
// empty string. Regexes are immutable once constructed.
type Regex struct {
	units []Unit
}

// New builds a Regex from units, merging compatible neighbours and rejecting
// series-shadowed pairs with a *ShadowError.
func New(units ...Unit) (Regex, error) {
	out := Regex{}
	for _, u := range units {
		var err error
		out, err = out.Append(u)
		if err != nil {
			return Regex{}, err
		}
	}
	return out, nil
}

// MustNew is like New but panics on error.
func MustNew(units ...Unit) Regex {
	r, err := New(units...)
	if err != nil {
		panic(err)
	}
	return r
}

// Append returns a new Regex with u appended. Adjacent literal units with
// "exactly once" bounds concatenate; adjacent class units over an identical
// set combine their bounds by addition; any other pair failing the
// series-shadow test is a construction error.
func (r Regex) Append(u Unit) (Regex, error) {
	if u.IsNull() {
		return r, nil
	}
	if len(r.units) == 0 {
		return Regex{units: []Unit{u}}, nil
	}
	last := r.units[len(r.units)-1]
	switch {
	case last.isLit && u.isLit && last.rep == Once && u.rep == Once:
		merged := Lit(last.lit + u.lit)
		return r.replaceLast(merged), nil
	case !last.isLit && !u.isLit && last.class.Equal(u.class):
		merged := Class(last.class).Repeat(last.rep.add(u.rep))
		return r.replaceLast(merged), nil
	case ShadowsSeries(last, u):
		return Regex{}, &ShadowError{Mode: Series, Left: r, Right: Regex{units: []Unit{u}}}
	}
	units := make([]Unit, len(r.units)+1)
	copy(units, r.units)
	units[len(r.units)] = u
	return Regex{units: units}, nil
}

func (r Regex) replaceLast(u Unit) Regex {
	units := make([]Unit, len(r.units))
	copy(units, r.units)
	units[len(units)-1] = u
	return Regex{units: units}
}

// Concat returns the concatenation of r and o under the same canonical
// merging and shadow rules as Append.
func (r Regex) Concat(o Regex) (Regex, error) {
	out := r
	for _, u := range o.units {
		var err error
		out, err = out.Append(u)
		if err != nil {
			if serr, ok := err.(*ShadowError); ok {
				serr.Left, serr.Right = r, o
			}
			return Regex{}, err
		}
	}
	return out, nil
}

// Units returns the canonical unit sequence.
func (r Regex) Units() []Unit {
	out := make([]Unit, len(r.units))
	copy(out, r.units)
	return out
}

// Len returns the number of units after canonical merging.
func (r Regex) Len() int {
	return len(r.units)
}

// Equal reports whether two regexes have identical canonical forms.
func (r Regex) Equal(o Regex) bool {
	if len(r.units) != len(o.units) {
		return false
	}
	for i, u := range r.units {
		if !u.Equal(o.units[i]) {
			return false
		}
	}
	return true
}

// First returns the set of runes a match can start with. Leading units that
// admit zero repetitions contribute and are skipped past; the empty regex
// yields the empty set.
func (r Regex) First() charset.Set {
	out := charset.Empty
	for _, u := range r.units {
		out = out.Union(u.First())
		if u.rep.Min > 0 {
			break
		}
	}
	return out
}

// MatchPrefix greedily matches r against the start of s, returning the
// number of bytes consumed. Units match in sequence without backtracking
// between them; the series-shadow construction rule is what keeps greedy
// per-unit matching from starving successors of identical input.
func (r Regex) MatchPrefix(s string) (int, bool) {
	n := 0
	for _, u := range r.units {
		consumed, ok := u.matchPrefix(s[n:])
		if !ok {
			return 0, false
		}
		n += consumed
	}
	return n, true
}

// Match reports whether r matches all of s.
func (r Regex) Match(s string) bool {
	n, ok := r.MatchPrefix(s)
	return ok && n == len(s)
}

// Find returns the byte offset and length of the first non-empty match in s.
func (r Regex) Find(s string) (start, length int, ok bool) {
	first := r.First()
	for i, c := range s {
		if !first.Contains(c) {
			continue
		}
		if n, matched := r.MatchPrefix(s[i:]); matched && n > 0 {
			return i, n, true
		}
	}
	return 0, 0, false
}

// Split slices s around each non-empty match of r, in the manner of
// strings.Split.
func (r Regex) Split(s string) []string {
	out := []string{}
	for {
		start, length, ok := r.Find(s)
		if !ok {
			return append(out, s)
		}
		out = append(out, s[:start])
		s = s[start+length:]
	}
}

// String renders the regex in regex-like syntax with escaped metacharacters.
func (r Regex) String() string {
	var sb strings.Builder
	for _, u := range r.units {
		sb.WriteString(u.String())
	}
	return sb.String()
}

// runeLen returns the rune length of a literal's text.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
