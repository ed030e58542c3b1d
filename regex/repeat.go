package regex

import "fmt"

// Unbounded is the Max value of a Repeater with no upper bound.
const Unbounded = -1

// A Repeater is the (min, max) repetition bound of a Unit. Max may be
// Unbounded. The zero value matches exactly zero repetitions.
type Repeater struct {
	Min, Max int
}

// Once is the canonical "exactly once" repetition.
var Once = Repeater{Min: 1, Max: 1}

// Between returns a Repeater matching between min and max repetitions.
// Reversed bounds are swapped and negative bounds clamp to zero, so passing
// Unbounded as max does not build an unbounded repeat; use AtLeast for
// repeats with no upper bound.
func Between(min, max int) Repeater {
	if min > max {
		min, max = max, min
	}
	if min < 0 {
		min = 0
	}
	if max < 0 {
		max = 0
	}
	return Repeater{Min: min, Max: max}
}

// Times returns a Repeater matching exactly n repetitions.
func Times(n int) Repeater {
	return Between(n, n)
}

// AtLeast returns a Repeater matching min or more repetitions.
func AtLeast(min int) Repeater {
	if min < 0 {
		min = 0
	}
	return Repeater{Min: min, Max: Unbounded}
}

// Bounded reports whether the repeater has an upper bound.
func (r Repeater) Bounded() bool {
	return r.Max != Unbounded
}

// IsNull reports whether the repeater admits no repetitions at all.
func (r Repeater) IsNull() bool {
	return r.Min == 0 && r.Max == 0
}

// add combines the bounds of two repeaters applied back to back.
func (r Repeater) add(o Repeater) Repeater {
	out := Repeater{Min: r.Min + o.Min}
	if r.Bounded() && o.Bounded() {
		out.Max = r.Max + o.Max
	} else {
		out.Max = Unbounded
	}
	return out
}

// String renders the repeater as a regex repetition suffix.
func (r Repeater) String() string {
	switch {
	case r == Once:
		return ""
	case r.Min == 0 && r.Max == 1:
		return "?"
	case r.Min == 0 && r.Max == Unbounded:
		return "*"
	case r.Min == 1 && r.Max == Unbounded:
		return "+"
	case r.Max == Unbounded:
		return fmt.Sprintf("{%d,}", r.Min)
	case r.Min == r.Max:
		return fmt.Sprintf("{%d}", r.Min)
	default:
		return fmt.Sprintf("{%d,%d}", r.Min, r.Max)
	}
}
