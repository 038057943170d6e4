package lang

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/exprkit/lang/token"
)

// parser is a single-pass recursive-descent parser over one source string.
// A parser is used for exactly one parse and holds no state afterwards.
//
// Grammar, lowest to highest precedence:
//
//	Ternary        : OrExpr [ "?" Ternary ":" Ternary ]
//	OrExpr         : AndExpr { ("||" | "or") AndExpr }
//	AndExpr        : XorExpr { ("&&" | "and") XorExpr }
//	XorExpr        : Equality { "xor" Equality }
//	Equality       : Relational { ("==" | "!=") Relational }
//	Relational     : Additive { ("<" | ">" | "<=" | ">=" | "in") Additive }
//	Additive       : Multiplicative { ("+" | "-") Multiplicative }
//	Multiplicative : Unary { ("*" | "/") Unary }
//	Unary          : ("!" | "not" | "-") Unary | Primary
//	Primary        : number | boolean | string | identifier [ "(" Args ")" ]
//	               | "(" Ternary ")"
type parser struct {
	src     string
	pos     int
	collect bool
	tokens  []token.Token
}

func newParser(source string, collect bool) *parser {
	return &parser{src: source, collect: collect}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isIdentChar reports whether c may appear inside an identifier.
// Dots and underscores are interior characters so dotted variable paths
// like pos.x lex as a single opaque name.
func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '.' || c == '_'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// addToken records a token when collection is enabled.
func (p *parser) addToken(kind token.Kind, start, length int) {
	if !p.collect || start+length > len(p.src) {
		return
	}

	p.tokens = append(p.tokens, token.Token{
		Kind:   kind,
		Start:  start,
		Length: length,
		Text:   p.src[start : start+length],
	})
}

// skipWhitespace advances past whitespace, recording it as a single token.
func (p *parser) skipWhitespace() {
	start := p.pos
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}

	if p.pos > start {
		p.addToken(token.KindWhitespace, start, p.pos-start)
	}
}

// matchSymbol consumes sym if it appears next, recording an operator token.
func (p *parser) matchSymbol(sym string) bool {
	p.skipWhitespace()

	if !strings.HasPrefix(p.src[p.pos:], sym) {
		return false
	}

	p.addToken(token.KindOperator, p.pos, len(sym))
	p.pos += len(sym)

	return true
}

// matchWord consumes a keyword operator (or, and, xor, in, not).
// The keyword must not be immediately followed by an identifier character,
// so a variable such as "order" or "input" is never split.
func (p *parser) matchWord(word string) bool {
	p.skipWhitespace()

	if !strings.HasPrefix(p.src[p.pos:], word) {
		return false
	}

	if next := p.pos + len(word); next < len(p.src) && isIdentChar(p.src[next]) {
		return false
	}

	p.addToken(token.KindOperator, p.pos, len(word))
	p.pos += len(word)

	return true
}

// matchDelim consumes a single delimiter byte, recording the appropriate
// token kind for parentheses and commas.
func (p *parser) matchDelim(c byte) bool {
	p.skipWhitespace()

	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return false
	}

	kind := token.KindOperator

	switch c {
	case '(', ')':
		kind = token.KindParenthesis
	case ',':
		kind = token.KindComma
	}

	p.addToken(kind, p.pos, 1)
	p.pos++

	return true
}

// peek returns the next non-whitespace byte without consuming it,
// or 0 at end of input.
func (p *parser) peek() byte {
	p.skipWhitespace()

	if p.pos >= len(p.src) {
		return 0
	}

	return p.src[p.pos]
}

// parse consumes the entire source string and returns the root node.
// Any unconsumed non-whitespace input after the top-level rule is an error.
func (p *parser) parse() (*Node, error) {
	root, err := p.parseTernary()
	if err != nil {
		return nil, err
	}

	p.skipWhitespace()

	if p.pos < len(p.src) {
		return nil, ErrParse.
			Wrap(errNote("incomplete expression parsing")).
			With(slog.Int("offset", p.pos))
	}

	return root, nil
}

// parseTernary parses the conditional operator (right-associative).
func (p *parser) parseTernary() (*Node, error) {
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if !p.matchSymbol("?") {
		return cond, nil
	}

	then, err := p.parseTernary()
	if err != nil {
		return nil, err
	}

	if !p.matchSymbol(":") {
		return nil, ErrParse.
			Wrap(errNote("expected ':' in ternary expression")).
			With(slog.Int("offset", p.pos))
	}

	els, err := p.parseTernary()
	if err != nil {
		return nil, err
	}

	return &Node{Kind: KindTernary, Cond: cond, Then: then, Else: els}, nil
}

func (p *parser) parseOr() (*Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.matchSymbol("||") || p.matchWord("or") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		left = &Node{Kind: KindBinary, Op: OpOr, Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) parseAnd() (*Node, error) {
	left, err := p.parseXor()
	if err != nil {
		return nil, err
	}

	for p.matchSymbol("&&") || p.matchWord("and") {
		right, err := p.parseXor()
		if err != nil {
			return nil, err
		}

		left = &Node{Kind: KindBinary, Op: OpAnd, Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) parseXor() (*Node, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}

	for p.matchWord("xor") {
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}

		left = &Node{Kind: KindBinary, Op: OpXor, Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) parseEquality() (*Node, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}

	for {
		var op Op

		switch {
		case p.matchSymbol("=="):
			op = OpEq
		case p.matchSymbol("!="):
			op = OpNe
		default:
			return left, nil
		}

		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}

		left = &Node{Kind: KindBinary, Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseRelational() (*Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for {
		var op Op

		switch {
		case p.matchSymbol(">="):
			op = OpGe
		case p.matchSymbol("<="):
			op = OpLe
		case p.matchSymbol(">"):
			op = OpGt
		case p.matchSymbol("<"):
			op = OpLt
		case p.matchWord("in"):
			op = OpIn
		default:
			return left, nil
		}

		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}

		left = &Node{Kind: KindBinary, Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseAdditive() (*Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for {
		var op Op

		switch {
		case p.matchSymbol("+"):
			op = OpAdd
		case p.matchSymbol("-"):
			op = OpSub
		default:
			return left, nil
		}

		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		left = &Node{Kind: KindBinary, Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseMultiplicative() (*Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		var op Op

		switch {
		case p.matchSymbol("*"):
			op = OpMul
		case p.matchSymbol("/"):
			op = OpDiv
		default:
			return left, nil
		}

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		left = &Node{Kind: KindBinary, Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (*Node, error) {
	if p.matchSymbol("!") || p.matchWord("not") {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &Node{Kind: KindUnary, Op: OpNot, Left: operand}, nil
	}

	if p.matchSymbol("-") {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &Node{Kind: KindUnary, Op: OpNeg, Left: operand}, nil
	}

	return p.parsePrimary()
}

func (p *parser) parsePrimary() (*Node, error) {
	if p.matchDelim('(') {
		expr, err := p.parseTernary()
		if err != nil {
			return nil, err
		}

		if !p.matchDelim(')') {
			return nil, ErrParse.
				Wrap(errNote("missing closing parenthesis")).
				With(slog.Int("offset", p.pos))
		}

		return expr, nil
	}

	c := p.peek()

	switch {
	case isDigit(c) || c == '.':
		return p.parseNumber()

	case c == '"':
		return p.parseString()

	case isLetter(c):
		return p.parseIdentifier()
	}

	if p.pos < len(p.src) {
		p.addToken(token.KindUnknown, p.pos, 1)

		return nil, ErrParse.
			Wrap(errNote("unrecognized expression")).
			With(slog.Int("offset", p.pos))
	}

	return nil, ErrParse.Wrap(errNote("unexpected end of expression"))
}

// parseNumber scans a run of digits and dots. Validation is delegated to
// strconv so malformed runs like "1.2.3" fail as a unit.
func (p *parser) parseNumber() (*Node, error) {
	start := p.pos
	for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}

	text := p.src[start:p.pos]
	p.addToken(token.KindNumber, start, p.pos-start)

	num, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, ErrParse.
			Wrap(errNote("invalid number format: " + text)).
			With(slog.Int("offset", start))
	}

	return &Node{Kind: KindLiteral, Literal: Number(num)}, nil
}

// parseString scans a double-quoted string literal with escape sequences
// \n \t \r \\ \". An unrecognized escape preserves the backslash and the
// following character unchanged.
func (p *parser) parseString() (*Node, error) {
	start := p.pos
	p.pos++ // opening quote

	var str strings.Builder

	for p.pos < len(p.src) && p.src[p.pos] != '"' {
		if p.src[p.pos] == '\\' && p.pos+1 < len(p.src) {
			p.pos++

			switch p.src[p.pos] {
			case 'n':
				str.WriteByte('\n')
			case 't':
				str.WriteByte('\t')
			case 'r':
				str.WriteByte('\r')
			case '\\':
				str.WriteByte('\\')
			case '"':
				str.WriteByte('"')
			default:
				str.WriteByte('\\')
				str.WriteByte(p.src[p.pos])
			}

			p.pos++

			continue
		}

		str.WriteByte(p.src[p.pos])
		p.pos++
	}

	if p.pos >= len(p.src) {
		return nil, ErrParse.
			Wrap(errNote("unterminated string literal")).
			With(slog.Int("offset", start))
	}

	p.pos++ // closing quote
	p.addToken(token.KindString, start, p.pos-start)

	return &Node{Kind: KindLiteral, Literal: String(str.String())}, nil
}

// parseIdentifier scans an identifier and classifies it as a boolean
// literal, a function call (when followed by an argument list), or a
// variable reference.
func (p *parser) parseIdentifier() (*Node, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdentChar(p.src[p.pos]) {
		p.pos++
	}

	text := p.src[start:p.pos]

	switch text {
	case "true":
		p.addToken(token.KindBoolean, start, len(text))

		return &Node{Kind: KindLiteral, Literal: Boolean(true)}, nil

	case "false":
		p.addToken(token.KindBoolean, start, len(text))

		return &Node{Kind: KindLiteral, Literal: Boolean(false)}, nil
	}

	p.addToken(token.KindIdentifier, start, len(text))

	if !p.matchDelim('(') {
		return &Node{Kind: KindVariable, Name: text}, nil
	}

	var args []*Node

	if !p.matchDelim(')') {
		for {
			arg, err := p.parseTernary()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			if !p.matchDelim(',') {
				break
			}
		}

		if !p.matchDelim(')') {
			return nil, ErrParse.
				Wrap(errNote("missing closing parenthesis in function call")).
				With(slog.Int("offset", p.pos))
		}
	}

	return &Node{Kind: KindCall, Name: text, Args: args}, nil
}
