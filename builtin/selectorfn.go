package builtin

import (
	"fmt"

	"github.com/titpetric/sassgo/selector"
	"github.com/titpetric/sassgo/value"
)

// No prior-implementation equivalent -- LESS has no selector-manipulation
// functions at all. Grounded directly on the selector package's own algebra
// (Parse/Unify/ResolveNesting/IsSuperselector), exposing it to Sass
// source the way spec.md §4.4's "selector" module requires.
//
// Selector arguments are taken as plain strings (quoted or not) and
// parsed with selector.Parse; real Sass also accepts a selector
// already represented as a list-of-lists, which sassgo does not
// accept: the evaluator passes arguments through unchanged, so such a
// list fails selectorArg's string check with a "not a string" error.
func selectorFunctions() []*Entry {
	return []*Entry{
		{Module: "selector", Name: "is-superselector", MinArgs: 2, MaxArgs: 2, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			a, err := selectorArg(args, 0, "is-superselector")
			if err != nil {
				return nil, err
			}
			b, err := selectorArg(args, 1, "is-superselector")
			if err != nil {
				return nil, err
			}
			for _, bc := range b.Complexes {
				matched := false
				for _, ac := range a.Complexes {
					if selector.IsSuperselector(ac, bc) {
						matched = true
						break
					}
				}
				if !matched {
					return value.Bool(false), nil
				}
			}
			return value.Bool(true), nil
		}},
		{Module: "selector", Name: "selector-parse", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			l, err := selectorArg(args, 0, "selector-parse")
			if err != nil {
				return nil, err
			}
			return value.NewUnquoted(l.String()), nil
		}},
		{Module: "selector", Name: "selector-nest", MinArgs: 1, MaxArgs: -1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			cur, err := selectorArg(args, 0, "selector-nest")
			if err != nil {
				return nil, err
			}
			for i := 1; i < len(args); i++ {
				inner, err := selectorArg(args, i, "selector-nest")
				if err != nil {
					return nil, err
				}
				cur, err = selector.ResolveNesting(cur, inner)
				if err != nil {
					return nil, fmt.Errorf("selector-nest: %w", err)
				}
			}
			return value.NewUnquoted(cur.String()), nil
		}},
		{Module: "selector", Name: "selector-append", MinArgs: 1, MaxArgs: -1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			cur, err := str(args, 0, "selector-append")
			if err != nil {
				return nil, err
			}
			text := cur.Text
			for i := 1; i < len(args); i++ {
				next, err := str(args, i, "selector-append")
				if err != nil {
					return nil, err
				}
				text += next.Text
			}
			l, err := selector.Parse(text)
			if err != nil {
				return nil, fmt.Errorf("selector-append: %w", err)
			}
			return value.NewUnquoted(l.String()), nil
		}},
		{Module: "selector", Name: "selector-unify", MinArgs: 2, MaxArgs: 2, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			a, err := selectorArg(args, 0, "selector-unify")
			if err != nil {
				return nil, err
			}
			b, err := selectorArg(args, 1, "selector-unify")
			if err != nil {
				return nil, err
			}
			var out []selector.Complex
			for _, ac := range a.Complexes {
				for _, bc := range b.Complexes {
					if len(ac.Components) != 1 || len(bc.Components) != 1 {
						continue // weaving multi-component complex selectors is out of scope
					}
					merged, ok := selector.Unify(ac.Components[0].Compound, bc.Components[0].Compound)
					if !ok {
						continue
					}
					out = append(out, selector.Complex{Components: []selector.Component{{Compound: merged}}})
				}
			}
			if len(out) == 0 {
				return value.NullValue, nil
			}
			return value.NewUnquoted(selector.List{Complexes: out}.String()), nil
		}},
		{Module: "selector", Name: "simple-selectors", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			s, err := str(args, 0, "simple-selectors")
			if err != nil {
				return nil, err
			}
			l, err := selector.Parse(s.Text)
			if err != nil {
				return nil, fmt.Errorf("simple-selectors: %w", err)
			}
			if len(l.Complexes) != 1 || len(l.Complexes[0].Components) != 1 {
				return nil, fmt.Errorf("simple-selectors: %q is not a compound selector", s.Text)
			}
			simples := l.Complexes[0].Components[0].Compound.Simples
			elems := make([]value.Value, len(simples))
			for i, sm := range simples {
				elems[i] = value.NewUnquoted(sm.String())
			}
			return &value.List{Elems: elems, Sep: value.SepComma}, nil
		}},
	}
}

func selectorArg(args []value.Value, i int, name string) (selector.List, error) {
	s, err := str(args, i, name)
	if err != nil {
		return selector.List{}, err
	}
	l, err := selector.Parse(s.Text)
	if err != nil {
		return selector.List{}, fmt.Errorf("%s: %w", name, err)
	}
	return l, nil
}
