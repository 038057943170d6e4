package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/exprkit/lang"
)

// ctrlCommands are the available colon-prefixed REPL commands.
var ctrlCommands = []string{"help", "vars", "funcs", "clear", "quit"}

// keywords are the word-spelled operators and literals of the expression
// grammar offered as completion candidates.
var keywords = []string{"true", "false", "and", "or", "xor", "not", "in"}

// isWordBoundary returns true if the rune delimits a word for completion
// purposes. Dots are not boundaries because variable names may contain
// them (e.g., pos.x).
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r',
		'(', ')', '"',
		'+', '-', '*', '/',
		'<', '>', '=', '!',
		'&', '|', '^', ',', '?', ':':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor position and its byte
// boundaries within input. Returns an empty word when the cursor sits on a
// boundary (after a space, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidateNames returns the full candidate list: grammar keywords,
// standard library functions, and every variable resolvable through the
// session environment.
func candidateNames(env *sessionEnv) []string {
	names := make([]string, 0, len(keywords))
	names = append(names, keywords...)

	for fn := range lang.Functions() {
		names = append(names, fn)
	}

	return append(names, env.Names()...)
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. Colon-prefixed input completes against REPL commands instead of
// expression candidates.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, start, end := wordBounds(input, cursor)

	var candidates []string

	if cmd, ok := strings.CutPrefix(input, ":"); ok {
		word = strings.TrimSpace(cmd)
		start, end = len(input)-len(word), len(input)
		candidates = ctrlCommands
	} else {
		candidates = candidateNames(m.env)
	}

	if word == "" {
		return nil, start, end
	}

	return fuzzy.Find(word, candidates), start, end
}

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit within the given terminal width. The selected candidate (when
// tabbing) uses the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := tabActive && i == suggIdx
		rendered := renderCandidate(match, selected)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += lipgloss.Width(sep)
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth

		if i == len(matches)-1 {
			break
		}
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Standard functions are displayed with a "()" suffix.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	// Suffix is display-only and never inserted by completion
	if lang.IsStandardFunction(match.Str) {
		b.WriteString(baseStyle.Render("()"))
	}

	return b.String()
}
