package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/exprkit/lang/token"
)

// Token styles for terminal syntax highlighting.
var (
	numberStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	booleanStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	stringStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	identStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	opStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	punctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	unknownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("1"))
)

func styleFor(kind token.Kind) lipgloss.Style {
	switch kind {
	case token.KindNumber:
		return numberStyle

	case token.KindBoolean:
		return booleanStyle

	case token.KindString:
		return stringStyle

	case token.KindIdentifier:
		return identStyle

	case token.KindOperator:
		return opStyle

	case token.KindParenthesis, token.KindComma:
		return punctStyle

	case token.KindWhitespace:
		return lipgloss.NewStyle()

	default:
		return unknownStyle
	}
}

// Highlight renders source with ANSI colors applied per token. Byte ranges
// not covered by any token are passed through unstyled, so partial token
// streams still render the complete source.
func Highlight(source string, tokens []token.Token) string {
	var b strings.Builder

	pos := 0

	for _, tok := range tokens {
		if tok.Start > pos {
			b.WriteString(source[pos:tok.Start])
		}

		b.WriteString(styleFor(tok.Kind).Render(tok.Text))
		pos = tok.End()
	}

	if pos < len(source) {
		b.WriteString(source[pos:])
	}

	return b.String()
}
