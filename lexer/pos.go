package lexer

import "fmt"

// A Position is a 1-based line/column cursor. The zero value is "unknown".
type Position struct {
	Line   int
	Column int
}

// Known reports whether the position carries real coordinates.
func (p Position) Known() bool {
	return p.Line > 0
}

// Before reports whether p precedes o in the source.
func (p Position) Before(o Position) bool {
	return p.Line < o.Line || (p.Line == o.Line && p.Column < o.Column)
}

func (p Position) String() string {
	if !p.Known() {
		return "?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// A Location is a source span. The zero value is the unknown location, which
// is the identity element of Merge.
type Location struct {
	Start Position
	End   Position
}

// At returns the single-position span at pos.
func At(pos Position) Location {
	return Location{Start: pos, End: pos}
}

// Span returns the location covering [start, end].
func Span(start, end Position) Location {
	return Location{Start: start, End: end}
}

// Known reports whether the location is known.
func (l Location) Known() bool {
	return l.Start.Known()
}

// Merge returns the smallest span covering both locations. Merging with the
// unknown location returns the other operand unchanged.
func (l Location) Merge(o Location) Location {
	if !l.Known() {
		return o
	}
	if !o.Known() {
		return l
	}
	out := l
	if o.Start.Before(out.Start) {
		out.Start = o.Start
	}
	if out.End.Before(o.End) {
		out.End = o.End
	}
	return out
}

func (l Location) String() string {
	if !l.Known() {
		return "?"
	}
	if l.Start == l.End {
		return l.Start.String()
	}
	return fmt.Sprintf("%s-%s", l.Start, l.End)
}
