// Package builtin implements the fixed table of built-in functions
// spec.md §4.4 groups by module: math, color, list, map, meta, string,
// selector. Each function gets a uniform typed signature over already-
// evaluated arguments rather than the prior implementation's plain-string, ad hoc-
// arity functions, per spec.md §9's redesign note -- generalizing the
// same sum-type-over-duck-typing move value/ast already made.
package builtin

import "github.com/titpetric/sassgo/value"

// Func is a built-in function's handler: positional arguments plus any
// named arguments passed by keyword at the call site. The evaluator
// checks the argument count against the Entry's MinArgs/MaxArgs before
// calling a handler; handlers validate argument types themselves and
// return a uniform runtime error (spec.md §4.4 "Signature errors
// produce a uniform runtime error").
type Func func(args []value.Value, kwargs map[string]value.Value) (value.Value, error)

// Entry describes one built-in, including its module for `@use
// "sass:<module>"`-qualified lookup.
type Entry struct {
	Module  string
	Name    string
	MinArgs int
	MaxArgs int // -1 means unbounded (the function takes a rest arg)
	Fn      Func
}

// Table is the flat name -> Entry registry, grounded on the prior implementation's
// functions/registry.go DefaultFuncMap: one big map literal assembled
// from small per-concern files, just with a typed Entry instead of a
// bare `interface{}`.
func Table() map[string]*Entry {
	t := make(map[string]*Entry)
	addAll(t, mathFunctions())
	addAll(t, colorFunctions())
	addAll(t, stringFunctions())
	addAll(t, listFunctions())
	addAll(t, mapFunctions())
	addAll(t, metaFunctions())
	addAll(t, selectorFunctions())
	return t
}

func addAll(t map[string]*Entry, entries []*Entry) {
	for _, e := range entries {
		t[e.Name] = e
	}
}

// ModuleNames returns every built-in name belonging to the given
// `sass:` module, for resolving a namespaced call like `math.round($x)`.
func ModuleNames(module string) []string {
	var names []string
	for _, e := range Table() {
		if e.Module == module {
			names = append(names, e.Name)
		}
	}
	return names
}
