package lang

import (
	"context"
	"log/slog"
	"strings"
)

// Evaluate walks the syntax tree and computes its Value against env.
//
// The env may be nil, in which case only literals, operators, and standard
// functions are available. Evaluation is deterministic given its inputs;
// the only side effects are those of the Environment callbacks themselves.
// Exactly one branch of a ternary is evaluated, and the logical AND/OR
// operators short-circuit, so untaken operands never reach the Environment.
func (x *Expression) Evaluate(
	ctx context.Context,
	env Environment,
) (Value, error) {
	x.logger.TraceContext(
		ctx,
		"evaluate start",
		slog.Int("source_length", len(x.source)),
		slog.Bool("environment", env != nil),
	)

	result, err := evalNode(x.root, env)
	if err != nil {
		return Value{}, err
	}

	x.logger.TraceContext(
		ctx,
		"evaluate complete",
		slog.String("result_type", result.Type().String()),
	)

	return result, nil
}

// evalNode dispatches on the node kind. The variant set is closed, so the
// default case is unreachable for parser-built trees.
func evalNode(n *Node, env Environment) (Value, error) {
	switch n.Kind {
	case KindLiteral:
		return n.Literal, nil

	case KindVariable:
		if env == nil {
			return Value{}, ErrUnknownVariable.
				With(slog.String("name", n.Name)).
				Wrap(errNote(n.Name))
		}

		return env.Get(n.Name)

	case KindUnary:
		return evalUnary(n, env)

	case KindBinary:
		return evalBinary(n, env)

	case KindTernary:
		return evalTernary(n, env)

	case KindCall:
		return evalCall(n, env)

	default:
		return Value{}, ErrType.Wrap(errNote("invalid node kind"))
	}
}

func evalUnary(n *Node, env Environment) (Value, error) {
	operand, err := evalNode(n.Left, env)
	if err != nil {
		return Value{}, err
	}

	switch n.Op {
	case OpNot:
		// NOT accepts any type through boolean coercion.
		b, err := operand.AsBoolean()
		if err != nil {
			return Value{}, err
		}

		return Boolean(!b), nil

	case OpNeg:
		if !operand.IsNumber() {
			return Value{}, ErrType.
				Wrap(errNote("negation requires a number operand")).
				With(slog.String("operand_type", operand.Type().String()))
		}

		num, err := operand.AsNumber()
		if err != nil {
			return Value{}, err
		}

		return Number(-num), nil

	default:
		return Value{}, ErrType.Wrap(errNote("unsupported unary operator"))
	}
}

func evalBinary(n *Node, env Environment) (Value, error) {
	// Logical operators coerce both operands to boolean and accept any
	// type. AND and OR evaluate the right operand only when the left does
	// not already decide the result; XOR always evaluates both sides.
	switch n.Op {
	case OpAnd, OpOr:
		return evalShortCircuit(n, env)

	case OpXor:
		lhs, err := evalNode(n.Left, env)
		if err != nil {
			return Value{}, err
		}

		rhs, err := evalNode(n.Right, env)
		if err != nil {
			return Value{}, err
		}

		a, err := lhs.AsBoolean()
		if err != nil {
			return Value{}, err
		}

		b, err := rhs.AsBoolean()
		if err != nil {
			return Value{}, err
		}

		return Boolean(a != b), nil
	}

	lhs, err := evalNode(n.Left, env)
	if err != nil {
		return Value{}, err
	}

	rhs, err := evalNode(n.Right, env)
	if err != nil {
		return Value{}, err
	}

	switch {
	case lhs.IsString() || rhs.IsString():
		return evalStringOp(n.Op, lhs, rhs)

	case lhs.IsNumber() && rhs.IsNumber():
		return evalNumberOp(n.Op, lhs, rhs)

	case lhs.IsBoolean() && rhs.IsBoolean():
		return evalBooleanOp(n.Op, lhs, rhs)

	default:
		return Value{}, ErrType.
			Wrap(errNote("unsupported operand types")).
			With(
				slog.String("op", n.Op.String()),
				slog.String("lhs_type", lhs.Type().String()),
				slog.String("rhs_type", rhs.Type().String()),
			)
	}
}

func evalShortCircuit(n *Node, env Environment) (Value, error) {
	lhs, err := evalNode(n.Left, env)
	if err != nil {
		return Value{}, err
	}

	a, err := lhs.AsBoolean()
	if err != nil {
		return Value{}, err
	}

	// The right operand is skipped entirely when the left decides.
	if (n.Op == OpAnd && !a) || (n.Op == OpOr && a) {
		return Boolean(a), nil
	}

	rhs, err := evalNode(n.Right, env)
	if err != nil {
		return Value{}, err
	}

	b, err := rhs.AsBoolean()
	if err != nil {
		return Value{}, err
	}

	return Boolean(b), nil
}

// evalStringOp applies op when either operand is a string.
func evalStringOp(op Op, lhs, rhs Value) (Value, error) {
	bothStrings := lhs.IsString() && rhs.IsString()

	switch op {
	case OpAdd:
		// Concatenation coerces both operands to string.
		a, err := lhs.AsString()
		if err != nil {
			return Value{}, err
		}

		b, err := rhs.AsString()
		if err != nil {
			return Value{}, err
		}

		return String(a + b), nil

	case OpEq:
		if bothStrings {
			return Boolean(lhs.Equal(rhs)), nil
		}

		// A string never equals a non-string.
		return Boolean(false), nil

	case OpNe:
		if bothStrings {
			return Boolean(!lhs.Equal(rhs)), nil
		}

		return Boolean(true), nil

	case OpGt, OpLt, OpGe, OpLe:
		if !bothStrings {
			return Value{}, ErrType.Wrap(
				errNote("string comparison operators require two string operands"),
			)
		}

		a, _ := lhs.AsString()
		b, _ := rhs.AsString()
		cmp := strings.Compare(a, b)

		switch op {
		case OpGt:
			return Boolean(cmp > 0), nil
		case OpLt:
			return Boolean(cmp < 0), nil
		case OpGe:
			return Boolean(cmp >= 0), nil
		default:
			return Boolean(cmp <= 0), nil
		}

	case OpIn:
		if !bothStrings {
			return Value{}, ErrType.Wrap(
				errNote("in operator requires two string operands"),
			)
		}

		needle, _ := lhs.AsString()
		haystack, _ := rhs.AsString()

		// An empty needle is contained in every haystack.
		return Boolean(strings.Contains(haystack, needle)), nil

	default:
		return Value{}, ErrType.Wrap(errNote("unsupported string operator"))
	}
}

func evalNumberOp(op Op, lhs, rhs Value) (Value, error) {
	a, err := lhs.AsNumber()
	if err != nil {
		return Value{}, err
	}

	b, err := rhs.AsNumber()
	if err != nil {
		return Value{}, err
	}

	switch op {
	case OpAdd:
		return Number(a + b), nil
	case OpSub:
		return Number(a - b), nil
	case OpMul:
		return Number(a * b), nil
	case OpDiv:
		if b == 0 {
			return Value{}, ErrDivisionByZero
		}

		return Number(a / b), nil
	case OpGt:
		return Boolean(a > b), nil
	case OpLt:
		return Boolean(a < b), nil
	case OpGe:
		return Boolean(a >= b), nil
	case OpLe:
		return Boolean(a <= b), nil
	case OpEq:
		return Boolean(a == b), nil
	case OpNe:
		return Boolean(a != b), nil
	default:
		return Value{}, ErrType.Wrap(errNote("unsupported numeric operator"))
	}
}

// evalBooleanOp applies op to two strict booleans.
// Only equality and inequality are defined.
func evalBooleanOp(op Op, lhs, rhs Value) (Value, error) {
	switch op {
	case OpEq:
		return Boolean(lhs.Equal(rhs)), nil

	case OpNe:
		return Boolean(!lhs.Equal(rhs)), nil

	default:
		return Value{}, ErrType.
			Wrap(errNote("unsupported boolean operator")).
			With(slog.String("op", op.String()))
	}
}

func evalTernary(n *Node, env Environment) (Value, error) {
	cond, err := evalNode(n.Cond, env)
	if err != nil {
		return Value{}, err
	}

	b, err := cond.AsBoolean()
	if err != nil {
		return Value{}, err
	}

	// The untaken branch must not be evaluated: it may reach
	// side-effecting Environment callbacks.
	if b {
		return evalNode(n.Then, env)
	}

	return evalNode(n.Else, env)
}

func evalCall(n *Node, env Environment) (Value, error) {
	// Arguments are evaluated left-to-right, unconditionally.
	args := make([]Value, len(n.Args))

	for i, arg := range n.Args {
		val, err := evalNode(arg, env)
		if err != nil {
			return Value{}, err
		}

		args[i] = val
	}

	// The standard library is consulted first so it remains available
	// without an Environment. A non-matching name, arity, or argument
	// type is not an error; the call falls through to the Environment.
	result, found, err := callStandard(n.Name, args)
	if err != nil {
		return Value{}, err
	}

	if found {
		return result, nil
	}

	if env == nil {
		return Value{}, ErrUnknownFunction.
			With(slog.String("name", n.Name)).
			Wrap(errNote(n.Name))
	}

	return env.Call(n.Name, args)
}
