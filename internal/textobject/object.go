package textobject

import "fmt"

// Kind identifies the text being selected.
type Kind uint8

const (
	Word Kind = iota + 1
	BigWord
	Sentence
	Paragraph
	Paren
	Bracket
	Brace
	Angle
	DoubleQuote
	SingleQuote
	BackQuote
	Tag
)

var kindKeys = map[rune]Kind{
	'w': Word, 'W': BigWord, 's': Sentence, 'p': Paragraph,
	'(': Paren, ')': Paren, 'b': Paren,
	'[': Bracket, ']': Bracket,
	'{': Brace, '}': Brace, 'B': Brace,
	'<': Angle, '>': Angle,
	'"': DoubleQuote, '\'': SingleQuote, '`': BackQuote,
	't': Tag,
}

// KindFromKey returns the object selected by the key typed after i or a.
func KindFromKey(r rune) (Kind, bool) {
	k, ok := kindKeys[r]
	return k, ok
}

// Key returns the canonical key for the kind.
func (k Kind) Key() rune {
	switch k {
	case Word:
		return 'w'
	case BigWord:
		return 'W'
	case Sentence:
		return 's'
	case Paragraph:
		return 'p'
	case Paren:
		return '('
	case Bracket:
		return '['
	case Brace:
		return '{'
	case Angle:
		return '<'
	case DoubleQuote:
		return '"'
	case SingleQuote:
		return '\''
	case BackQuote:
		return '`'
	case Tag:
		return 't'
	}
	return 0
}

func (k Kind) delimiters() (open, close byte) {
	switch k {
	case Paren:
		return '(', ')'
	case Bracket:
		return '[', ']'
	case Brace:
		return '{', '}'
	case Angle:
		return '<', '>'
	case DoubleQuote:
		return '"', '"'
	case SingleQuote:
		return '\'', '\''
	case BackQuote:
		return '`', '`'
	}
	return 0, 0
}

// Object is a text object request.
type Object struct {
	Kind  Kind
	Inner bool
}

// String returns the object as typed, for example "iw" or "a(".
func (o Object) String() string {
	prefix := "a"
	if o.Inner {
		prefix = "i"
	}
	if k := o.Kind.Key(); k != 0 {
		return prefix + string(k)
	}
	return fmt.Sprintf("%sKind(%d)", prefix, o.Kind)
}
