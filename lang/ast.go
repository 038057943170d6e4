package lang

import (
	"github.com/ardnew/exprkit/lang/token"
	"github.com/ardnew/exprkit/log"
)

// Kind indicates the variant of an AST node.
type Kind int

const (
	// KindLiteral is a number, boolean, or string literal.
	KindLiteral Kind = iota

	// KindVariable is a reference resolved through the Environment.
	KindVariable

	// KindUnary is a unary operation (!, not, unary minus).
	KindUnary

	// KindBinary is a binary operation.
	KindBinary

	// KindTernary is the conditional operator cond ? then : else.
	KindTernary

	// KindCall is a function call with zero or more arguments.
	KindCall
)

// String returns a string representation of the node kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"

	case KindVariable:
		return "Variable"

	case KindUnary:
		return "Unary"

	case KindBinary:
		return "Binary"

	case KindTernary:
		return "Ternary"

	case KindCall:
		return "Call"

	default:
		return "Unknown"
	}
}

// Op identifies an operator applied by a unary or binary node.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpIn
	OpAnd
	OpOr
	OpXor
	OpNot
	OpNeg
)

// String returns the source spelling of the operator.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	case OpIn:
		return "in"
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpXor:
		return "xor"
	case OpNot:
		return "!"
	case OpNeg:
		return "-"
	default:
		return "?"
	}
}

// Node is one node of the abstract syntax tree. The variant set is closed:
// evaluation dispatches on Kind with an exhaustive switch rather than
// virtual methods, so every consumer handles every kind.
//
// Which fields are meaningful depends on Kind:
//
//	KindLiteral   Literal
//	KindVariable  Name
//	KindUnary     Op, Left (the operand)
//	KindBinary    Op, Left, Right
//	KindTernary   Cond, Then, Else
//	KindCall      Name, Args
//
// Nodes are built once by the parser and never mutated, so a tree may be
// shared and evaluated concurrently.
type Node struct {
	Kind    Kind
	Literal Value
	Name    string
	Op      Op
	Left    *Node
	Right   *Node
	Cond    *Node
	Then    *Node
	Else    *Node
	Args    []*Node
}

// Expression is a parsed, immutable expression ready for evaluation.
// It may be cached and evaluated any number of times against any number of
// Environments, including concurrently.
type Expression struct {
	root   *Node
	source string
	tokens []token.Token
	opts   optionsKey
	logger log.Logger
}

// Root returns the root node of the syntax tree.
func (x *Expression) Root() *Node { return x.root }

// Source returns the original source text the expression was parsed from.
func (x *Expression) Source() string { return x.source }

// Tokens returns the token sequence collected during parsing, or nil when
// token collection was not enabled. The sequence covers the source
// left-to-right, including whitespace, and must not be mutated.
func (x *Expression) Tokens() []token.Token { return x.tokens }
