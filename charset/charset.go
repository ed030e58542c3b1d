// Package charset implements an interval-set algebra over runes.
//
// Sets are kept in canonical form: sorted, non-overlapping, non-adjacent
// intervals. All operations return new sets; a Set is immutable once built
// and may be shared freely.
package charset

import (
	"sort"
	"unicode"
)

// MaxRune is the upper bound of the character domain. Complement is taken
// relative to [0, MaxRune].
const MaxRune = unicode.MaxRune

// An Interval is an inclusive range of runes.
type Interval struct {
	Lo, Hi rune
}

// A Set of runes, stored as canonical intervals.
type Set struct {
	intervals []Interval
}

// Empty is the set containing no runes.
var Empty = Set{}

// Any is the set containing every rune in the domain.
var Any = Set{intervals: []Interval{{0, MaxRune}}}

// Within returns the set covering the given intervals.
func Within(intervals ...Interval) Set {
	return normalize(intervals)
}

// Range returns the set of runes in [lo, hi].
func Range(lo, hi rune) Set {
	return Within(Interval{lo, hi})
}

// AnyOf returns the set of runes occurring in chars.
func AnyOf(chars string) Set {
	intervals := make([]Interval, 0, len(chars))
	for _, r := range chars {
		intervals = append(intervals, Interval{r, r})
	}
	return normalize(intervals)
}

// Without returns the complement of Within(intervals...).
func Without(intervals ...Interval) Set {
	return Within(intervals...).Complement()
}

// NoneOf returns the complement of AnyOf(chars).
func NoneOf(chars string) Set {
	return AnyOf(chars).Complement()
}

// normalize sorts, clamps and merges intervals into canonical form.
func normalize(intervals []Interval) Set {
	clamped := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.Lo > iv.Hi {
			iv.Lo, iv.Hi = iv.Hi, iv.Lo
		}
		if iv.Hi < 0 || iv.Lo > MaxRune {
			continue
		}
		if iv.Lo < 0 {
			iv.Lo = 0
		}
		if iv.Hi > MaxRune {
			iv.Hi = MaxRune
		}
		clamped = append(clamped, iv)
	}
	if len(clamped) == 0 {
		return Set{}
	}
	sort.Slice(clamped, func(i, j int) bool { return clamped[i].Lo < clamped[j].Lo })
	out := clamped[:1]
	for _, iv := range clamped[1:] {
		last := &out[len(out)-1]
		if iv.Lo <= last.Hi+1 {
			if iv.Hi > last.Hi {
				last.Hi = iv.Hi
			}
			continue
		}
		out = append(out, iv)
	}
	return Set{intervals: out}
}

// Intervals returns the canonical intervals of the set.
func (s Set) Intervals() []Interval {
	out := make([]Interval, len(s.intervals))
	copy(out, s.intervals)
	return out
}

// Contains reports whether r is in the set.
func (s Set) Contains(r rune) bool {
	i := sort.Search(len(s.intervals), func(i int) bool { return s.intervals[i].Hi >= r })
	return i < len(s.intervals) && s.intervals[i].Lo <= r
}

// Len returns the number of runes in the set.
func (s Set) Len() int {
	n := 0
	for _, iv := range s.intervals {
		n += int(iv.Hi-iv.Lo) + 1
	}
	return n
}

// IsEmpty reports whether the set contains no runes.
func (s Set) IsEmpty() bool {
	return len(s.intervals) == 0
}

// Equal reports whether two sets contain the same runes.
func (s Set) Equal(o Set) bool {
	if len(s.intervals) != len(o.intervals) {
		return false
	}
	for i, iv := range s.intervals {
		if iv != o.intervals[i] {
			return false
		}
	}
	return true
}

// Union returns the set of runes in either s or o.
func (s Set) Union(o Set) Set {
	return normalize(append(s.Intervals(), o.intervals...))
}

// Complement returns the set of domain runes not in s.
func (s Set) Complement() Set {
	out := make([]Interval, 0, len(s.intervals)+1)
	next := rune(0)
	for _, iv := range s.intervals {
		if iv.Lo > next {
			out = append(out, Interval{next, iv.Lo - 1})
		}
		next = iv.Hi + 1
	}
	if next <= MaxRune {
		out = append(out, Interval{next, MaxRune})
	}
	return Set{intervals: out}
}

// Intersect returns the set of runes in both s and o.
func (s Set) Intersect(o Set) Set {
	out := []Interval{}
	i, j := 0, 0
	for i < len(s.intervals) && j < len(o.intervals) {
		a, b := s.intervals[i], o.intervals[j]
		lo, hi := a.Lo, a.Hi
		if b.Lo > lo {
			lo = b.Lo
		}
		if b.Hi < hi {
			hi = b.Hi
		}
		if lo <= hi {
			out = append(out, Interval{lo, hi})
		}
		if a.Hi < b.Hi {
			i++
		} else {
			j++
		}
	}
	return Set{intervals: out}
}

// Subtract returns the set of runes in s but not in o.
func (s Set) Subtract(o Set) Set {
	return s.Intersect(o.Complement())
}

// Decompose returns whichever of s or its complement has fewer intervals,
// along with a flag that is true when the complement was chosen. Consumers
// wanting the cheaper representation (and the pretty-printer) use this.
func (s Set) Decompose() (Set, bool) {
	c := s.Complement()
	if len(c.intervals) < len(s.intervals) {
		return c, true
	}
	return s, false
}
