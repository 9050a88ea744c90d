package builtin

import (
	"fmt"

	"github.com/titpetric/sassgo/value"
)

// Grounded on value/map.go's insertion-ordered Map -- the prior LESS
// implementation has no map/dictionary concept at all (LESS has no map
// literal), so these are built directly from spec.md §4.4's "map"
// module against the Map type spec.md §3.2 already defines, rather
// than adapted from any existing function.
func mapFunctions() []*Entry {
	return []*Entry{
		{Module: "map", Name: "get", MinArgs: 2, MaxArgs: 2, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			m, ok := args[0].(*value.Map)
			if !ok {
				return nil, errNotAMap("get", args[0])
			}
			if v, found := m.Get(args[1]); found {
				return v, nil
			}
			return value.NullValue, nil
		}},
		{Module: "map", Name: "has-key", MinArgs: 2, MaxArgs: 2, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			m, ok := args[0].(*value.Map)
			if !ok {
				return nil, errNotAMap("has-key", args[0])
			}
			_, found := m.Get(args[1])
			return value.Bool(found), nil
		}},
		{Module: "map", Name: "set", MinArgs: 3, MaxArgs: 3, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			m, ok := args[0].(*value.Map)
			if !ok {
				return nil, errNotAMap("set", args[0])
			}
			out := cloneMap(m)
			out.Set(args[1], args[2])
			return out, nil
		}},
		{Module: "map", Name: "remove", MinArgs: 2, MaxArgs: -1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			m, ok := args[0].(*value.Map)
			if !ok {
				return nil, errNotAMap("remove", args[0])
			}
			out := value.NewMap()
			for i, k := range m.Keys {
				remove := false
				for _, key := range args[1:] {
					if value.Equal(k, key) {
						remove = true
						break
					}
				}
				if !remove {
					out.Set(k, m.Vals[i])
				}
			}
			return out, nil
		}},
		{Module: "map", Name: "merge", MinArgs: 2, MaxArgs: 2, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			a, ok := args[0].(*value.Map)
			if !ok {
				return nil, errNotAMap("merge", args[0])
			}
			b, ok := args[1].(*value.Map)
			if !ok {
				return nil, errNotAMap("merge", args[1])
			}
			out := cloneMap(a)
			for i, k := range b.Keys {
				out.Set(k, b.Vals[i])
			}
			return out, nil
		}},
		{Module: "map", Name: "keys", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			m, ok := args[0].(*value.Map)
			if !ok {
				return nil, errNotAMap("keys", args[0])
			}
			return &value.List{Elems: append([]value.Value(nil), m.Keys...), Sep: value.SepComma}, nil
		}},
		{Module: "map", Name: "values", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			m, ok := args[0].(*value.Map)
			if !ok {
				return nil, errNotAMap("values", args[0])
			}
			return &value.List{Elems: append([]value.Value(nil), m.Vals...), Sep: value.SepComma}, nil
		}},
	}
}

func cloneMap(m *value.Map) *value.Map {
	out := value.NewMap()
	for i, k := range m.Keys {
		out.Set(k, m.Vals[i])
	}
	return out
}

func errNotAMap(name string, v value.Value) error {
	return fmt.Errorf("%s: %s is not a map", name, v.String())
}
