package builtin

import "github.com/titpetric/sassgo/value"

// Grounded on functions/types.go's IsNumberFunction/IsStringFunction/
// IsColorFunction family (boolean type tests over a formatted string),
// generalized from string-sniffing to a direct type switch over
// value.Value, and expanded to type-of/inspect which the prior implementation's
// LESS subset had no equivalent for since LESS never exposed a Sass
// value's type name to the author.
//
// feature-exists/function-exists/variable-exists/global-variable-exists
// need access to the evaluator's scope and function table, which this
// package does not have -- those four are implemented directly in
// `eval` instead of here.
func metaFunctions() []*Entry {
	return []*Entry{
		{Module: "meta", Name: "type-of", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			return value.NewUnquoted(value.TypeName(args[0])), nil
		}},
		{Module: "meta", Name: "inspect", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			return value.NewUnquoted(args[0].String()), nil
		}},
	}
}
