package lang

import (
	"errors"
	"testing"

	"github.com/ardnew/exprkit/lang/token"
)

func TestParseLiteralNumber(t *testing.T) {
	x, err := Parse(t.Context(), "42", WithoutCache())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	root := x.Root()
	if root.Kind != KindLiteral || !root.Literal.Equal(Number(42)) {
		t.Errorf("expected literal 42, got %+v", root)
	}
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3)
	x, err := Parse(t.Context(), "1 + 2 * 3", WithoutCache())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	root := x.Root()
	if root.Kind != KindBinary || root.Op != OpAdd {
		t.Fatalf("expected + at root, got %+v", root)
	}

	if root.Right.Kind != KindBinary || root.Right.Op != OpMul {
		t.Errorf("expected * as right child, got %+v", root.Right)
	}
}

func TestParseParenthesesOverridePrecedence(t *testing.T) {
	x, err := Parse(t.Context(), "(1 + 2) * 3", WithoutCache())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	root := x.Root()
	if root.Kind != KindBinary || root.Op != OpMul {
		t.Fatalf("expected * at root, got %+v", root)
	}

	if root.Left.Kind != KindBinary || root.Left.Op != OpAdd {
		t.Errorf("expected + as left child, got %+v", root.Left)
	}
}

func TestParseTernaryRightAssociative(t *testing.T) {
	// a ? b : c ? d : e parses as a ? b : (c ? d : e)
	x, err := Parse(t.Context(), "true ? 1 : false ? 2 : 3", WithoutCache())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	root := x.Root()
	if root.Kind != KindTernary {
		t.Fatalf("expected ternary at root, got %+v", root)
	}

	if root.Else.Kind != KindTernary {
		t.Errorf("expected nested ternary in else branch, got %+v", root.Else)
	}
}

func TestParseWordOperators(t *testing.T) {
	tests := []struct {
		source string
		op     Op
	}{
		{source: "true or false", op: OpOr},
		{source: "true and false", op: OpAnd},
		{source: "true xor false", op: OpXor},
		{source: `"a" in "abc"`, op: OpIn},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			x, err := Parse(t.Context(), tt.source, WithoutCache())
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			root := x.Root()
			if root.Kind != KindBinary || root.Op != tt.op {
				t.Errorf("expected %v at root, got %+v", tt.op, root)
			}
		})
	}
}

func TestParseWordOperatorBoundary(t *testing.T) {
	// Identifiers with operator-word prefixes must not be split: "order"
	// must not lex as "or" + "der".
	x, err := Parse(t.Context(), "order", WithoutCache())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	root := x.Root()
	if root.Kind != KindVariable || root.Name != "order" {
		t.Errorf("expected variable 'order', got %+v", root)
	}

	x, err = Parse(t.Context(), "input", WithoutCache())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	root = x.Root()
	if root.Kind != KindVariable || root.Name != "input" {
		t.Errorf("expected variable 'input', got %+v", root)
	}
}

func TestParseDottedIdentifier(t *testing.T) {
	x, err := Parse(t.Context(), "pos.x + pos.y", WithoutCache())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	root := x.Root()
	if root.Left.Kind != KindVariable || root.Left.Name != "pos.x" {
		t.Errorf("expected variable 'pos.x', got %+v", root.Left)
	}
}

func TestParseStringEscapes(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "newline", source: `"a\nb"`, want: "a\nb"},
		{name: "tab", source: `"a\tb"`, want: "a\tb"},
		{name: "carriage return", source: `"a\rb"`, want: "a\rb"},
		{name: "backslash", source: `"a\\b"`, want: `a\b`},
		{name: "quote", source: `"a\"b"`, want: `a"b`},
		{name: "unknown escape preserved", source: `"a\qb"`, want: `a\qb`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := Parse(t.Context(), tt.source, WithoutCache())
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			root := x.Root()
			if !root.Literal.Equal(String(tt.want)) {
				t.Errorf("expected %q, got %v", tt.want, root.Literal)
			}
		})
	}
}

func TestParseFunctionCall(t *testing.T) {
	x, err := Parse(t.Context(), "max(1, 2 + 3)", WithoutCache())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	root := x.Root()
	if root.Kind != KindCall || root.Name != "max" {
		t.Fatalf("expected call to max, got %+v", root)
	}

	if len(root.Args) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(root.Args))
	}

	if root.Args[1].Kind != KindBinary || root.Args[1].Op != OpAdd {
		t.Errorf("expected + as second argument, got %+v", root.Args[1])
	}
}

func TestParseEmptyArgumentList(t *testing.T) {
	x, err := Parse(t.Context(), "now()", WithoutCache())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	root := x.Root()
	if root.Kind != KindCall || len(root.Args) != 0 {
		t.Errorf("expected zero-arg call, got %+v", root)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "empty input", source: ""},
		{name: "whitespace only", source: "   "},
		{name: "unterminated string", source: `"abc`},
		{name: "malformed number", source: "1.2.3"},
		{name: "missing ternary colon", source: "true ? 1"},
		{name: "missing close paren", source: "(1 + 2"},
		{name: "missing call paren", source: "max(1, 2"},
		{name: "trailing input", source: "1 + 2 )"},
		{name: "dangling operator", source: "1 +"},
		{name: "unrecognized character", source: "1 @ 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(t.Context(), tt.source, WithoutCache())
			if !errors.Is(err, ErrParse) {
				t.Errorf("expected ErrParse, got %v", err)
			}
		})
	}
}

func TestParseTokensDisabledByDefault(t *testing.T) {
	x, err := Parse(t.Context(), "1 + 2", WithoutCache())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(x.Tokens()) != 0 {
		t.Errorf("expected no tokens without WithTokens, got %d", len(x.Tokens()))
	}
}

func TestParseTokenCoverage(t *testing.T) {
	source := `max(pos.x, 2) > 1 ? "hi" : "lo"`

	x, err := Parse(t.Context(), source, WithTokens(true), WithoutCache())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	tokens := x.Tokens()
	if len(tokens) == 0 {
		t.Fatal("expected tokens to be collected")
	}

	// Tokens must be emitted left to right with no gaps or overlaps, and
	// each Text must be the verbatim source slice.
	pos := 0

	for i, tok := range tokens {
		if tok.Start != pos {
			t.Fatalf("token %d: expected start %d, got %d", i, pos, tok.Start)
		}

		if tok.End() > len(source) {
			t.Fatalf("token %d: end %d exceeds source", i, tok.End())
		}

		if tok.Text != source[tok.Start:tok.End()] {
			t.Errorf("token %d: text %q does not match source slice", i, tok.Text)
		}

		pos = tok.End()
	}

	if pos != len(source) {
		t.Errorf("tokens cover %d bytes of %d", pos, len(source))
	}
}

func TestParseTokenKinds(t *testing.T) {
	source := `min(1, 2) == true`

	x, err := Parse(t.Context(), source, WithTokens(true), WithoutCache())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	want := []token.Kind{
		token.KindIdentifier,  // min
		token.KindParenthesis, // (
		token.KindNumber,      // 1
		token.KindComma,       // ,
		token.KindWhitespace,  // space
		token.KindNumber,      // 2
		token.KindParenthesis, // )
		token.KindWhitespace,  // space
		token.KindOperator,    // ==
		token.KindWhitespace,  // space
		token.KindBoolean,     // true
	}

	tokens := x.Tokens()
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(tokens), tokens)
	}

	for i, kind := range want {
		if tokens[i].Kind != kind {
			t.Errorf("token %d: expected %v, got %v (%q)",
				i, kind, tokens[i].Kind, tokens[i].Text,
			)
		}
	}
}

func TestParseNegativeNumberLiteral(t *testing.T) {
	// Unary minus wraps the literal; it is not part of the number token.
	x, err := Parse(t.Context(), "-5", WithoutCache())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	root := x.Root()
	if root.Kind != KindUnary || root.Op != OpNeg {
		t.Fatalf("expected unary negation, got %+v", root)
	}

	if root.Left.Kind != KindLiteral || !root.Left.Literal.Equal(Number(5)) {
		t.Errorf("expected literal 5 operand, got %+v", root.Left)
	}
}
