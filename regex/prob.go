package regex

import (
	"math"
	"sort"
	"strings"

	"github.com/alecthomas/morpheme/charset"
)

// The probability heuristic estimates how likely a uniformly random string
// is to match a pattern: a literal decays exponentially with its length per
// repetition, a class contributes its size as a linear factor raised to the
// repetition count. Values are combined multiplicatively across a sequence
// and compared in log-space; the heuristic exists only to give Regex and
// Unit a total order for diagnostic sorting.

var logDomain = math.Log(float64(charset.MaxRune) + 1)

// logProb returns the log of the unit's match probability at its minimum
// repetition count.
func (u Unit) logProb() float64 {
	reps := u.rep.Min
	if reps == 0 {
		return 0
	}
	if u.isLit {
		return -float64(runeLen(u.lit)*reps) * logDomain
	}
	size := u.class.Len()
	if size == 0 {
		return math.Inf(-1)
	}
	return float64(reps) * (math.Log(float64(size)) - logDomain)
}

func (r Regex) logProb() float64 {
	p := 0.0
	for _, u := range r.units {
		p += u.logProb()
	}
	return p
}

// Compare orders regexes by descending match probability, breaking ties
// with the rendered form. It is a total order suitable for sorting.
func Compare(a, b Regex) int {
	pa, pb := a.logProb(), b.logProb()
	switch {
	case pa > pb:
		return -1
	case pa < pb:
		return 1
	default:
		return strings.Compare(a.String(), b.String())
	}
}

// CompareUnits orders units in the same manner as Compare.
func CompareUnits(a, b Unit) int {
	pa, pb := a.logProb(), b.logProb()
	switch {
	case pa > pb:
		return -1
	case pa < pb:
		return 1
	default:
		return strings.Compare(a.String(), b.String())
	}
}

// Sort sorts regexes in place into the diagnostic order of Compare.
func Sort(rs []Regex) {
	sort.SliceStable(rs, func(i, j int) bool { return Compare(rs[i], rs[j]) < 0 })
}
