// Package value implements the Sass value model: numbers with units,
// colors, strings, lists, maps, booleans, null, calculations and
// first-class callables, per spec.md §3.2.
//
// expression.Value in the prior LESS implementation this package grew
// out of modeled all of these as one flat struct with sentinel
// zero-fields ("Number is set if this is numeric, Color is set if this
// is a color, otherwise fall back to Raw"). spec.md's DESIGN NOTES call
// that duck-typed dispatch out explicitly and ask for a tagged union
// instead; Value below is that sum type, and every operator becomes a
// function over it rather than a method resolved by inspecting which
// field happens to be set.
package value

import "fmt"

// Value is any Sass runtime value.
type Value interface {
	sassValue()
	// Truthy reports whether the value is truthy. Only Bool(false) and
	// Null are falsey; everything else, including the number 0 and the
	// empty string, is truthy, per spec.md §3.2.
	Truthy() bool
	// String renders the value the way it would be interpolated into
	// CSS text (unquoted strings verbatim, quoted strings without their
	// quotes) -- NOT the same as the serializer's CSS output form.
	String() string
}

// Bool is one of the two boolean singletons.
type Bool bool

func (Bool) sassValue()        {}
func (b Bool) Truthy() bool    { return bool(b) }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Null is the one null singleton.
type Null struct{}

func (Null) sassValue()      {}
func (Null) Truthy() bool    { return false }
func (Null) String() string  { return "null" }

// True, False and NullValue are the canonical singletons; builtins and
// the evaluator should return these instead of constructing new ones,
// though value.Equal treats any Bool/Null the same regardless.
var (
	True      Value = Bool(true)
	False     Value = Bool(false)
	NullValue Value = Null{}
)

// Calculation is an unresolved calc()-family value: a name ("calc",
// "min", "max", "clamp", "env") plus its operand tree. It stays
// unresolved until serialization, per spec.md §3.2.
type Calculation struct {
	Name string
	Args []Value
}

func (*Calculation) sassValue()     {}
func (*Calculation) Truthy() bool   { return true }
func (c *Calculation) String() string {
	s := c.Name + "("
	for i, a := range c.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

// CallableKind distinguishes a first-class reference to a mixin from
// one to a function.
type CallableKind int

const (
	CallableFunction CallableKind = iota
	CallableMixin
)

// Callable is a first-class reference to a builtin or user-defined
// mixin/function, as returned by meta.get-function et al.
type Callable struct {
	Name string
	Kind CallableKind
	// Def is opaque here (an *ast.Callable in practice) to avoid an
	// import cycle between value and ast; the eval package type-asserts
	// it back when invoking.
	Def interface{}
}

func (*Callable) sassValue()   {}
func (*Callable) Truthy() bool { return true }
func (c *Callable) String() string {
	return fmt.Sprintf("get-function(%q)", c.Name)
}
