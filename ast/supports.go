package ast

// SupportsCondition is the `@supports` feature-query grammar: a
// boolean combination of declaration checks. Kept as its own small sum
// type (distinct from the general expression grammar) because its
// `and`/`or`/`not` combinators bind over *declarations*, not values --
// the condition is never evaluated by this compiler (feature support is
// a browser-time fact), only reconstructed verbatim by
// Evaluator.serializeSupports for output.
type SupportsCondition interface {
	node()
	supportsCond()
}

// SupportsDeclaration is `(name: value)`, the base case of a feature query.
type SupportsDeclaration struct {
	Name  Interpolation
	Value Interpolation
}

func (*SupportsDeclaration) node()          {}
func (*SupportsDeclaration) supportsCond() {}

// SupportsNegation is `not <condition>`.
type SupportsNegation struct {
	Condition SupportsCondition
}

func (*SupportsNegation) node()          {}
func (*SupportsNegation) supportsCond() {}

// SupportsOperation is `<condition> (and|or) <condition>`. Sass
// requires same-operator chains to not mix and/or without parens; the
// parser enforces that and always produces a left-associative chain.
type SupportsOperation struct {
	Left  SupportsCondition
	Op    string // "and" or "or"
	Right SupportsCondition
}

func (*SupportsOperation) node()          {}
func (*SupportsOperation) supportsCond() {}

// SupportsInterpolation is a bare `#{...}` standing in for an entire
// condition.
type SupportsInterpolation struct {
	Interp Interpolation
}

func (*SupportsInterpolation) node()          {}
func (*SupportsInterpolation) supportsCond() {}

// SupportsRaw is a condition the parser could not further structure
// (e.g. a selector() or font-tech() function test) -- kept as
// interpolated text and emitted verbatim.
type SupportsRaw struct {
	Text Interpolation
}

func (*SupportsRaw) node()          {}
func (*SupportsRaw) supportsCond() {}
