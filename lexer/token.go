package lexer

import "fmt"

// A Kind identifies a class of token. Grammars assign their own dense IDs
// through a KindSet; EOF is reserved.
type Kind int

// EOF marks the end of the token stream.
const EOF Kind = -1

// A KindSet assigns dense integer token kinds to symbolic names, one set per
// grammar.
type KindSet struct {
	names  []string
	byName map[string]Kind
}

// NewKindSet creates a KindSet containing the given names in order.
func NewKindSet(names ...string) *KindSet {
	ks := &KindSet{byName: map[string]Kind{}}
	for _, name := range names {
		ks.Add(name)
	}
	return ks
}

// Add returns the kind for name, assigning the next dense ID if it is new.
func (ks *KindSet) Add(name string) Kind {
	if k, ok := ks.byName[name]; ok {
		return k
	}
	k := Kind(len(ks.names))
	ks.names = append(ks.names, name)
	ks.byName[name] = k
	return k
}

// Kind looks up the kind for name.
func (ks *KindSet) Kind(name string) (Kind, bool) {
	k, ok := ks.byName[name]
	return k, ok
}

// Name returns the symbolic name of a kind.
func (ks *KindSet) Name(k Kind) string {
	if k == EOF {
		return "EOF"
	}
	if int(k) < 0 || int(k) >= len(ks.names) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return ks.names[k]
}

// Len returns the number of kinds defined.
func (ks *KindSet) Len() int {
	return len(ks.names)
}

type tokenForm uint8

const (
	formBare tokenForm = iota
	formChar
	formText
)

// A Token is a kind plus optional text. Producers choose one of three
// storage forms to avoid retaining text where the kind alone suffices;
// Value recovers the text in all forms.
type Token struct {
	Kind Kind
	form tokenForm
	char rune
	text string
}

// Bare returns a token carrying no text.
func Bare(kind Kind) Token {
	return Token{Kind: kind}
}

// Char returns a token whose text is the single rune r.
func Char(kind Kind, r rune) Token {
	return Token{Kind: kind, form: formChar, char: r}
}

// Text returns a token carrying full text.
func Text(kind Kind, text string) Token {
	return Token{Kind: kind, form: formText, text: text}
}

// Value returns the token's text. A bare token yields "".
func (t Token) Value() string {
	switch t.form {
	case formChar:
		return string(t.char)
	case formText:
		return t.text
	default:
		return ""
	}
}

// EOF reports whether this is the end-of-stream token.
func (t Token) EOF() bool {
	return t.Kind == EOF
}

func (t Token) String() string {
	if t.EOF() {
		return "<EOF>"
	}
	return t.Value()
}

func (t Token) GoString() string {
	return fmt.Sprintf("Token{%d, %q}", t.Kind, t.Value())
}

// A Spanned is a token with the column it started on.
type Spanned struct {
	Column int
	Token  Token
}

// A Line groups the tokens that started on one source line, so that a
// position need not be stored with every token.
type Line struct {
	Number int
	Tokens []Spanned
}
