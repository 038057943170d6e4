// Package token defines the lexical tokens produced by the expression
// parser when token collection is enabled. Tokens exist solely to support
// syntax highlighting and tooling; evaluation never consults them.
package token

// Kind classifies a lexical token.
type Kind int

const (
	// KindNumber is a numeric literal such as 42 or 3.14.
	KindNumber Kind = iota

	// KindBoolean is the literal true or false.
	KindBoolean

	// KindString is a double-quoted string literal, including its quotes.
	KindString

	// KindIdentifier is a variable or function name.
	KindIdentifier

	// KindOperator is any unary, binary, or ternary operator symbol.
	KindOperator

	// KindParenthesis is an opening or closing parenthesis.
	KindParenthesis

	// KindComma separates function call arguments.
	KindComma

	// KindWhitespace is a run of whitespace between other tokens.
	KindWhitespace

	// KindUnknown is a character the lexer could not classify.
	KindUnknown
)

// String returns a string representation of the token kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"

	case KindBoolean:
		return "Boolean"

	case KindString:
		return "String"

	case KindIdentifier:
		return "Identifier"

	case KindOperator:
		return "Operator"

	case KindParenthesis:
		return "Parenthesis"

	case KindComma:
		return "Comma"

	case KindWhitespace:
		return "Whitespace"

	default:
		return "Unknown"
	}
}

// Token describes one lexical unit of an expression source string.
// The invariant Start+Length <= len(source) always holds, and Text is the
// verbatim source slice [Start, Start+Length).
type Token struct {
	Kind   Kind
	Start  int
	Length int
	Text   string
}

// End returns the byte offset one past the token's final character.
func (t Token) End() int { return t.Start + t.Length }
