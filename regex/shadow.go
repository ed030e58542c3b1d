package regex

import (
	"fmt"
	"strings"
)

// ShadowMode distinguishes the two composition modes under which one
// pattern can make another unmatchable.
type ShadowMode int

const (
	// Series: the left pattern precedes the right in sequence and always
	// consumes all input the right could have matched.
	Series ShadowMode = iota
	// Parallel: the left pattern is an earlier alternative and matches a
	// superset of the right's inputs, making the right unreachable.
	Parallel
)

func (m ShadowMode) String() string {
	if m == Series {
		return "series"
	}
	return "parallel"
}

// A ShadowError is a construction-time grammar error: the composition of
// Left and Right in the given mode can never let Right match. The grammar
// itself must be fixed; the error is never recoverable per-match.
type ShadowError struct {
	Mode        ShadowMode
	Left, Right Regex
}

func (e *ShadowError) Error() string {
	return fmt.Sprintf("invalid grammar: %s shadows %s in %s composition", e.Left, e.Right, e.Mode)
}

// ShadowsSeries reports whether matching a then b in sequence can never
// succeed: every greedy match of a necessarily consumes all text b alone
// could have matched immediately after. This requires a to be unbounded
// above.
func ShadowsSeries(a, b Unit) bool {
	if a.rep.Bounded() {
		return false
	}
	switch {
	case a.isLit && b.isLit:
		return repetitionOf(b.lit, a.lit) > 0
	case !a.isLit && !b.isLit:
		return b.class.Subtract(a.class).IsEmpty()
	case !a.isLit && b.isLit:
		return litWithin(b.lit, a)
	default: // a literal, b class
		return runeLen(a.lit) == 1 && b.class.Subtract(a.First()).IsEmpty()
	}
}

// ShadowsParallel reports whether a as an earlier alternative makes b
// unreachable: any input b would match, a (tried first) also matches. Unit
// pairs are compared positionally; when a's final unit is bounded only the
// single-repetition literal-prefix rule applies, never class subsumption.
func ShadowsParallel(a, b Regex) bool {
	m, n := len(a.units), len(b.units)
	if m == 0 {
		return true
	}
	if m > n {
		return false
	}
	for i := 0; i < m-1; i++ {
		if !unitShadowsParallel(a.units[i], b.units[i]) {
			return false
		}
	}
	last, blast := a.units[m-1], b.units[m-1]
	if !last.rep.Bounded() {
		return unitShadowsParallel(last, blast)
	}
	return last.isLit && last.rep == Once && blast.isLit &&
		blast.rep.Min >= 1 && strings.HasPrefix(blast.lit, last.lit)
}

// unitShadowsParallel reports whether every match of b is also a match of a
// under greedy first-alternative-wins selection.
func unitShadowsParallel(a, b Unit) bool {
	switch {
	case !a.isLit && !b.isLit:
		return b.class.Subtract(a.class).IsEmpty() && a.rep.Min <= b.rep.Min
	case a.isLit && b.isLit:
		k := repetitionOf(b.lit, a.lit)
		return k > 0 && a.rep.Min <= k*b.rep.Min
	case !a.isLit && b.isLit:
		return litWithin(b.lit, a) && a.rep.Min <= runeLen(b.lit)*b.rep.Min
	default: // a literal, b class
		return runeLen(a.lit) == 1 && b.class.Subtract(a.First()).IsEmpty() &&
			a.rep.Min <= b.rep.Min
	}
}

// repetitionOf returns k > 0 such that s == strings.Repeat(base, k), or 0.
func repetitionOf(s, base string) int {
	if base == "" || len(s)%len(base) != 0 || s == "" {
		return 0
	}
	k := len(s) / len(base)
	if strings.Repeat(base, k) != s {
		return 0
	}
	return k
}

// litWithin reports whether every rune of lit is in class unit a's set.
func litWithin(lit string, a Unit) bool {
	if lit == "" {
		return false
	}
	for _, r := range lit {
		if !a.class.Contains(r) {
			return false
		}
	}
	return true
}
