package charset

import (
	"fmt"
	"strings"
	"unicode"
)

const metacharacters = `\[]^-(){}*+?.|`

// EscapeRune renders r for inclusion in a regex-like diagnostic string.
// Metacharacters are backslash-escaped; non-printable runes are rendered as
// \xHH, or \u{HHHH} beyond 0xFF.
func EscapeRune(r rune) string {
	switch {
	case strings.ContainsRune(metacharacters, r):
		return `\` + string(r)
	case r == '\n':
		return `\n`
	case r == '\r':
		return `\r`
	case r == '\t':
		return `\t`
	case unicode.IsPrint(r):
		return string(r)
	case r <= 0xff:
		return fmt.Sprintf(`\x%02X`, r)
	default:
		return fmt.Sprintf(`\u{%04X}`, r)
	}
}

// String renders the set in character-class syntax, eg. [a-z0-9] or [^\x00-/].
// The cheaper of the set and its complement is printed, per Decompose.
func (s Set) String() string {
	set, negated := s.Decompose()
	var sb strings.Builder
	sb.WriteByte('[')
	if negated {
		sb.WriteByte('^')
	}
	for _, iv := range set.intervals {
		switch {
		case iv.Lo == iv.Hi:
			sb.WriteString(EscapeRune(iv.Lo))
		case iv.Hi == iv.Lo+1:
			sb.WriteString(EscapeRune(iv.Lo))
			sb.WriteString(EscapeRune(iv.Hi))
		default:
			sb.WriteString(EscapeRune(iv.Lo))
			sb.WriteByte('-')
			sb.WriteString(EscapeRune(iv.Hi))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// GoString implements fmt.GoStringer for debugging output.
func (s Set) GoString() string {
	return fmt.Sprintf("charset.Within(%#v...)", s.intervals)
}
