package regex

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/morpheme/charset"
)

// A Unit is one repeated atom of a Regex: either a literal string or a
// character class, paired with a repetition bound.
type Unit struct {
	lit   string
	class charset.Set
	isLit bool
	rep   Repeater
}

// Lit returns a unit matching text exactly once.
func Lit(text string) Unit {
	return Unit{lit: text, isLit: true, rep: Once}
}

// Class returns a unit matching one rune from set.
func Class(set charset.Set) Unit {
	return Unit{class: set, rep: Once}
}

// Repeat returns a copy of the unit with the given repetition bound.
func (u Unit) Repeat(rep Repeater) Unit {
	u.rep = rep
	return u
}

// Repeater returns the unit's repetition bound.
func (u Unit) Repeater() Repeater {
	return u.rep
}

// IsLiteral reports whether the unit is a literal-string atom.
func (u Unit) IsLiteral() bool { return u.isLit }

// Literal returns the literal text of a literal unit, or "".
func (u Unit) Literal() string { return u.lit }

// Set returns the character class of a class unit, or the empty set.
func (u Unit) Set() charset.Set { return u.class }

// IsNull reports whether the unit can never consume input: its repeater is
// (0,0) or its literal/class is itself empty.
func (u Unit) IsNull() bool {
	if u.rep.IsNull() {
		return true
	}
	if u.isLit {
		return u.lit == ""
	}
	return u.class.IsEmpty()
}

// Equal reports whether two units are structurally identical.
func (u Unit) Equal(o Unit) bool {
	if u.isLit != o.isLit || u.rep != o.rep {
		return false
	}
	if u.isLit {
		return u.lit == o.lit
	}
	return u.class.Equal(o.class)
}

// First returns the set of runes a match of the unit can start with.
func (u Unit) First() charset.Set {
	if u.IsNull() {
		return charset.Empty
	}
	if u.isLit {
		r, _ := utf8.DecodeRuneInString(u.lit)
		return charset.AnyOf(string(r))
	}
	return u.class
}

// matchPrefix greedily matches the unit against the start of s, returning
// the number of bytes consumed. A literal unit consumes whole copies of its
// text; a class unit consumes runes from its class. Both consume as many
// repetitions as the bound allows and succeed only when at least Min
// repetitions matched.
func (u Unit) matchPrefix(s string) (int, bool) {
	if u.isLit {
		return u.matchLiteral(s)
	}
	return u.matchClass(s)
}

func (u Unit) matchLiteral(s string) (int, bool) {
	if u.lit == "" {
		return 0, true
	}
	n, count := 0, 0
	for u.rep.Max == Unbounded || count < u.rep.Max {
		if !strings.HasPrefix(s[n:], u.lit) {
			break
		}
		n += len(u.lit)
		count++
	}
	return n, count >= u.rep.Min
}

func (u Unit) matchClass(s string) (int, bool) {
	n, count := 0, 0
	for u.rep.Max == Unbounded || count < u.rep.Max {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 || !u.class.Contains(r) {
			break
		}
		n += size
		count++
	}
	return n, count >= u.rep.Min
}

// String renders the unit in regex-like syntax.
func (u Unit) String() string {
	if !u.isLit {
		return u.class.String() + u.rep.String()
	}
	var sb strings.Builder
	for _, r := range u.lit {
		sb.WriteString(charset.EscapeRune(r))
	}
	text := sb.String()
	if u.rep == Once {
		return text
	}
	if utf8.RuneCountInString(u.lit) > 1 {
		return "(" + text + ")" + u.rep.String()
	}
	return text + u.rep.String()
}
