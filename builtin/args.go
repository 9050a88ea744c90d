package builtin

import (
	"fmt"

	"github.com/titpetric/sassgo/value"
)

func number(args []value.Value, i int, name string) (*value.Number, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("%s: missing argument", name)
	}
	n, ok := args[i].(*value.Number)
	if !ok {
		return nil, fmt.Errorf("%s: %s is not a number", name, args[i].String())
	}
	return n, nil
}

func optionalNumber(args []value.Value, i int, def float64) float64 {
	if i >= len(args) {
		return def
	}
	if n, ok := args[i].(*value.Number); ok {
		return n.Val
	}
	return def
}

func str(args []value.Value, i int, name string) (*value.String, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("%s: missing argument", name)
	}
	s, ok := args[i].(*value.String)
	if !ok {
		return nil, fmt.Errorf("%s: %s is not a string", name, args[i].String())
	}
	return s, nil
}

func color(args []value.Value, i int, name string) (*value.Color, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("%s: missing argument", name)
	}
	c, ok := args[i].(*value.Color)
	if !ok {
		return nil, fmt.Errorf("%s: %s is not a color", name, args[i].String())
	}
	return c, nil
}

func list(args []value.Value, i int) *value.List {
	if i >= len(args) {
		return &value.List{}
	}
	if l, ok := args[i].(*value.List); ok {
		return l
	}
	return &value.List{Elems: []value.Value{args[i]}, Sep: value.SepUndecided}
}
