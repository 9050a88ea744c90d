package builtin

import (
	"fmt"
	"math"

	"github.com/titpetric/sassgo/value"
)

// Grounded on functions/math.go's Ceil/Floor/Round/Abs/Sqrt/Pow/Min/Max
// /Percentage -- same operations, generalized from parsing/formatting
// plain number-with-unit strings to operating on value.Number directly
// and preserving its unit rather than re-parsing text.
func mathFunctions() []*Entry {
	unary := func(name string, fn func(float64) float64) *Entry {
		return &Entry{Module: "math", Name: name, MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			n, err := number(args, 0, name)
			if err != nil {
				return nil, err
			}
			return &value.Number{Val: fn(n.Val), Numer: n.Numer, Denom: n.Denom}, nil
		}}
	}

	return []*Entry{
		unary("ceil", math.Ceil),
		unary("floor", math.Floor),
		unary("round", math.Round),
		unary("abs", math.Abs),
		unary("sqrt", func(v float64) float64 { return math.Sqrt(v) }),
		{Module: "math", Name: "pow", MinArgs: 2, MaxArgs: 2, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			base, err := number(args, 0, "pow")
			if err != nil {
				return nil, err
			}
			exp, err := number(args, 1, "pow")
			if err != nil {
				return nil, err
			}
			return value.NewNumber(math.Pow(base.Val, exp.Val)), nil
		}},
		{Module: "math", Name: "percentage", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			n, err := number(args, 0, "percentage")
			if err != nil {
				return nil, err
			}
			if !n.IsUnitless() {
				return nil, fmt.Errorf("percentage: $number: %s is not unitless", n.String())
			}
			return value.NewNumberUnit(n.Val*100, "%"), nil
		}},
		{Module: "math", Name: "div", MinArgs: 2, MaxArgs: 2, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			a, err := number(args, 0, "div")
			if err != nil {
				return nil, err
			}
			b, err := number(args, 1, "div")
			if err != nil {
				return nil, err
			}
			return a.Divide(b)
		}},
		{Module: "math", Name: "min", MinArgs: 1, MaxArgs: -1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			return minMax(args, "min", func(a, b float64) bool { return a < b })
		}},
		{Module: "math", Name: "max", MinArgs: 1, MaxArgs: -1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			return minMax(args, "max", func(a, b float64) bool { return a > b })
		}},
		{Module: "math", Name: "clamp", MinArgs: 3, MaxArgs: 3, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			lo, err := number(args, 0, "clamp")
			if err != nil {
				return nil, err
			}
			v, err := number(args, 1, "clamp")
			if err != nil {
				return nil, err
			}
			hi, err := number(args, 2, "clamp")
			if err != nil {
				return nil, err
			}
			val := v.Val
			if val < lo.Val {
				val = lo.Val
			}
			if val > hi.Val {
				val = hi.Val
			}
			return &value.Number{Val: val, Numer: v.Numer, Denom: v.Denom}, nil
		}},
	}
}

func minMax(args []value.Value, name string, better func(a, b float64) bool) (value.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: at least one argument required", name)
	}
	best, err := number(args, 0, name)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(args); i++ {
		n, err := number(args, i, name)
		if err != nil {
			return nil, err
		}
		if better(n.Val, best.Val) {
			best = n
		}
	}
	return best, nil
}
