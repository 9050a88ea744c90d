package builtin

import (
	"fmt"

	"github.com/titpetric/sassgo/value"
)

// Grounded on functions/math.go's Range/Extract (list-shaped helpers
// operating on comma-joined strings) and expression/list.go's List
// type -- generalized to operate on value.List directly instead of
// splitting/joining text on every call.
func listFunctions() []*Entry {
	return []*Entry{
		{Module: "list", Name: "length", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			return value.NewNumber(float64(len(list(args, 0).Elems))), nil
		}},
		{Module: "list", Name: "nth", MinArgs: 2, MaxArgs: 2, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			l := list(args, 0)
			idx, err := listIndex(args, 1, len(l.Elems), "nth")
			if err != nil {
				return nil, err
			}
			return l.Elems[idx], nil
		}},
		{Module: "list", Name: "set-nth", MinArgs: 3, MaxArgs: 3, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			l := list(args, 0)
			idx, err := listIndex(args, 1, len(l.Elems), "set-nth")
			if err != nil {
				return nil, err
			}
			elems := append([]value.Value(nil), l.Elems...)
			elems[idx] = args[2]
			return &value.List{Elems: elems, Sep: l.Sep, Bracketed: l.Bracketed}, nil
		}},
		{Module: "list", Name: "join", MinArgs: 2, MaxArgs: 3, Fn: func(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
			a, b := list(args, 0), list(args, 1)
			sep := a.Sep
			if sep == value.SepUndecided {
				sep = b.Sep
			}
			if s, ok := kwargs["separator"]; ok {
				sep = separatorFromValue(s, sep)
			} else if len(args) > 2 {
				sep = separatorFromValue(args[2], sep)
			}
			elems := append(append([]value.Value(nil), a.Elems...), b.Elems...)
			return &value.List{Elems: elems, Sep: sep}, nil
		}},
		{Module: "list", Name: "append", MinArgs: 2, MaxArgs: 3, Fn: func(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
			l := list(args, 0)
			sep := l.Sep
			if sep == value.SepUndecided {
				sep = value.SepSpace
			}
			if s, ok := kwargs["separator"]; ok {
				sep = separatorFromValue(s, sep)
			} else if len(args) > 2 {
				sep = separatorFromValue(args[2], sep)
			}
			elems := append(append([]value.Value(nil), l.Elems...), args[1])
			return &value.List{Elems: elems, Sep: sep, Bracketed: l.Bracketed}, nil
		}},
		{Module: "list", Name: "index", MinArgs: 2, MaxArgs: 2, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			l := list(args, 0)
			for i, e := range l.Elems {
				if value.Equal(e, args[1]) {
					return value.NewNumber(float64(i + 1)), nil
				}
			}
			return value.NullValue, nil
		}},
		{Module: "list", Name: "is-bracketed", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			return value.Bool(list(args, 0).Bracketed), nil
		}},
		{Module: "list", Name: "list-separator", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			switch list(args, 0).Sep {
			case value.SepComma:
				return value.NewUnquoted("comma"), nil
			case value.SepSlash:
				return value.NewUnquoted("slash"), nil
			default:
				return value.NewUnquoted("space"), nil
			}
		}},
		{Module: "list", Name: "zip", MinArgs: 1, MaxArgs: -1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			lists := make([]*value.List, len(args))
			shortest := -1
			for i, a := range args {
				lists[i] = list([]value.Value{a}, 0)
				if shortest == -1 || len(lists[i].Elems) < shortest {
					shortest = len(lists[i].Elems)
				}
			}
			out := make([]value.Value, shortest)
			for i := 0; i < shortest; i++ {
				row := make([]value.Value, len(lists))
				for j, l := range lists {
					row[j] = l.Elems[i]
				}
				out[i] = &value.List{Elems: row, Sep: value.SepSpace}
			}
			return &value.List{Elems: out, Sep: value.SepComma}, nil
		}},
	}
}

func listIndex(args []value.Value, i, length int, name string) (int, error) {
	n, err := number(args, i, name)
	if err != nil {
		return 0, err
	}
	idx, err := n.AssertInt(name)
	if err != nil {
		return 0, err
	}
	if idx < 0 {
		idx += int64(length) + 1
	}
	if idx < 1 || int(idx) > length {
		return 0, fmt.Errorf("%s: index %d out of bounds for list of length %d", name, idx, length)
	}
	return int(idx) - 1, nil
}

func separatorFromValue(v value.Value, def value.Separator) value.Separator {
	s, ok := v.(*value.String)
	if !ok {
		return def
	}
	switch s.Text {
	case "comma":
		return value.SepComma
	case "space":
		return value.SepSpace
	case "slash":
		return value.SepSlash
	default:
		return def
	}
}
