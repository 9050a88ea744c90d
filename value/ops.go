package value

import "fmt"

// BinaryOp applies one of the Sass binary operators across the full
// cross-type matrix in spec.md §4.2: pure-Number arithmetic, string
// concatenation, color channel-wise math, list/slash-separator `/`
// ambiguity, and the universal `==`/`!=`/`and`/`or` that never error
// regardless of operand type.
func BinaryOp(op string, a, b Value) (Value, error) {
	switch op {
	case "==":
		return boolOf(Equal(a, b)), nil
	case "!=":
		return boolOf(!Equal(a, b)), nil
	case "and":
		if !a.Truthy() {
			return a, nil
		}
		return b, nil
	case "or":
		if a.Truthy() {
			return a, nil
		}
		return b, nil
	}

	switch op {
	case "<", "<=", ">", ">=":
		an, aok := a.(*Number)
		bn, bok := b.(*Number)
		if !aok || !bok {
			return nil, fmt.Errorf("Undefined operation %q %s %q.", a.String(), op, b.String())
		}
		c, err := an.CompareTo(bn)
		if err != nil {
			return nil, err
		}
		switch op {
		case "<":
			return boolOf(c < 0), nil
		case "<=":
			return boolOf(c <= 0), nil
		case ">":
			return boolOf(c > 0), nil
		default:
			return boolOf(c >= 0), nil
		}
	}

	switch op {
	case "+":
		return add(a, b)
	case "-":
		return sub(a, b)
	case "*":
		return mul(a, b)
	case "/":
		return div(a, b)
	case "%":
		return mod(a, b)
	}
	return nil, fmt.Errorf("unknown operator %q", op)
}

func boolOf(v bool) Bool {
	if v {
		return True
	}
	return False
}

func add(a, b Value) (Value, error) {
	switch av := a.(type) {
	case *Number:
		if bv, ok := b.(*Number); ok {
			return av.Add(bv)
		}
		return StringAdd(av, b), nil
	case *String:
		return StringAdd(av, b), nil
	case *Color:
		if bv, ok := b.(*Color); ok {
			return colorChannelOp(av, bv, func(x, y float64) float64 { return x + y })
		}
	}
	if _, ok := a.(*List); ok {
		return StringAdd(a, b), nil
	}
	return StringAdd(a, b), nil
}

func sub(a, b Value) (Value, error) {
	an, aok := a.(*Number)
	bn, bok := b.(*Number)
	if aok && bok {
		return an.Subtract(bn)
	}
	if ac, ok := a.(*Color); ok {
		if bc, ok := b.(*Color); ok {
			return colorChannelOp(ac, bc, func(x, y float64) float64 { return x - y })
		}
	}
	// Non-number minus renders as a bare subtraction between the two
	// operands' string forms, matching how Sass falls back for
	// unsupported operand pairs (e.g. "foo" - 1 => "foo-1").
	return NewUnquoted(a.String() + "-" + b.String()), nil
}

func mul(a, b Value) (Value, error) {
	an, aok := a.(*Number)
	bn, bok := b.(*Number)
	if !aok || !bok {
		return nil, fmt.Errorf("Undefined operation %q * %q.", a.String(), b.String())
	}
	return an.Multiply(bn)
}

func div(a, b Value) (Value, error) {
	an, aok := a.(*Number)
	bn, bok := b.(*Number)
	if aok && bok {
		return an.Divide(bn)
	}
	if ac, ok := a.(*Color); ok {
		if bc, ok := b.(*Color); ok {
			return colorChannelOp(ac, bc, func(x, y float64) float64 {
				if y == 0 {
					return 0
				}
				return x / y
			})
		}
	}
	// Division between operands that aren't both numbers is slash
	// separation, not arithmetic: the parser/evaluator decide whether
	// a `/` site is division (both number-typed, required context) or
	// produces a two-element slash list; this fallback covers the
	// latter when BinaryOp is invoked directly on non-numeric operands.
	return NewList([]Value{a, b}, SepSlash), nil
}

func mod(a, b Value) (Value, error) {
	an, aok := a.(*Number)
	bn, bok := b.(*Number)
	if !aok || !bok {
		return nil, fmt.Errorf("Undefined operation %q %% %q.", a.String(), b.String())
	}
	return an.Modulo(bn)
}

func colorChannelOp(a, b *Color, f func(x, y float64) float64) (Value, error) {
	if a.A != 1 && b.A != 1 && !FuzzyEquals(a.A, b.A) {
		return nil, fmt.Errorf("Alpha channels must be equal: %s and %s.", a.String(), b.String())
	}
	clampCh := func(x float64) int { return int(x) }
	return ColorFromRGB(
		clampCh(f(float64(a.R), float64(b.R))),
		clampCh(f(float64(a.G), float64(b.G))),
		clampCh(f(float64(a.B), float64(b.B))),
		a.A,
	), nil
}

// UnaryMinus implements the `-` prefix operator: numeric negation for
// numbers, a plain-CSS passthrough string for anything else.
func UnaryMinus(v Value) (Value, error) {
	if n, ok := v.(*Number); ok {
		return &Number{Val: -n.Val, Numer: n.Numer, Denom: n.Denom}, nil
	}
	return NewUnquoted("-" + v.String()), nil
}

// UnaryNot implements the `not` prefix operator using Sass truthiness
// (only false and null are falsey).
func UnaryNot(v Value) Value {
	return boolOf(!v.Truthy())
}
