package ast

import "github.com/titpetric/sassgo/diag"

// NumberLit is a literal number: "1", "1px", "1.5e3deg". Repr holds
// the number token's exact source text, for every literal; the
// evaluator builds its value.Number from Value and Unit and does not
// read Repr.
type NumberLit struct {
	Value    float64
	Unit     string
	Repr     string
	NodeSpan diag.Span
}

func (*NumberLit) node()            {}
func (*NumberLit) expr()            {}
func (n *NumberLit) Span() diag.Span { return n.NodeSpan }

// HexColorLit is a literal color written as a hex code: #fff, #a1b2c3,
// #aabbccdd. Named colors ("red", "rebeccapurple") are NOT a distinct
// literal kind -- they parse as a plain Ident and are recognized
// against the named-color table at evaluation time, the same way
// dart-sass's own parser treats them as ordinary identifiers.
type HexColorLit struct {
	Text     string // source text including the leading '#'
	NodeSpan diag.Span
}

func (*HexColorLit) node()            {}
func (*HexColorLit) expr()            {}
func (h *HexColorLit) Span() diag.Span { return h.NodeSpan }

// StringLit is a quoted or unquoted string literal. Text may itself
// contain interpolation holes (e.g. "foo#{$bar}baz").
type StringLit struct {
	Text     Interpolation
	Quoted   bool
	NodeSpan diag.Span
}

func (*StringLit) node()            {}
func (*StringLit) expr()            {}
func (s *StringLit) Span() diag.Span { return s.NodeSpan }

// BoolLit is a literal `true`/`false`.
type BoolLit struct {
	Value    bool
	NodeSpan diag.Span
}

func (*BoolLit) node()            {}
func (*BoolLit) expr()            {}
func (b *BoolLit) Span() diag.Span { return b.NodeSpan }

// NullLit is the literal `null`.
type NullLit struct {
	NodeSpan diag.Span
}

func (*NullLit) node()            {}
func (*NullLit) expr()            {}
func (n *NullLit) Span() diag.Span { return n.NodeSpan }

// VarRef is a variable reference, `$name`, optionally namespaced
// (`namespace.$name` under @use).
type VarRef struct {
	Namespace string
	Name      string
	NodeSpan  diag.Span
}

func (*VarRef) node()            {}
func (*VarRef) expr()            {}
func (v *VarRef) Span() diag.Span { return v.NodeSpan }

// InterpolatedExpr wraps a standalone #{...} appearing where an
// expression is expected (e.g. inside a list literal).
type InterpolatedExpr struct {
	Interp   Interpolation
	NodeSpan diag.Span
}

func (*InterpolatedExpr) node()            {}
func (*InterpolatedExpr) expr()            {}
func (e *InterpolatedExpr) Span() diag.Span { return e.NodeSpan }

// Call is both a Sass function invocation and a plain CSS function
// call -- the two are not distinguished until evaluation, when the
// evaluator either finds Name in scope or falls back to emitting the
// call literally (spec.md §4.4).
type Call struct {
	Namespace string
	Name      string
	Args      ArgumentInvocation
	NodeSpan  diag.Span
}

func (*Call) node()            {}
func (*Call) expr()            {}
func (c *Call) Span() diag.Span { return c.NodeSpan }

// IfCall is the special `if(condition, if-true, if-false)` form: unlike
// an ordinary function call, its arguments are evaluated lazily (only
// the taken branch), per spec.md §3.1 listing it as its own expression
// variant rather than a regular call.
type IfCall struct {
	Cond     Expr
	Then     Expr
	Else     Expr
	NodeSpan diag.Span
}

func (*IfCall) node()            {}
func (*IfCall) expr()            {}
func (i *IfCall) Span() diag.Span { return i.NodeSpan }

// ListSep names a list literal's element separator.
type ListSep int

const (
	SepUndecided ListSep = iota
	SepSpace
	SepComma
)

// ListExpr is a list literal: `1 2 3`, `1, 2, 3`, `[1, 2]`.
type ListExpr struct {
	Elems     []Expr
	Sep       ListSep
	Bracketed bool
	NodeSpan  diag.Span
}

func (*ListExpr) node()            {}
func (*ListExpr) expr()            {}
func (l *ListExpr) Span() diag.Span { return l.NodeSpan }

// MapExpr is a map literal: `(k1: v1, k2: v2)`.
type MapExpr struct {
	Keys     []Expr
	Vals     []Expr
	NodeSpan diag.Span
}

func (*MapExpr) node()            {}
func (*MapExpr) expr()            {}
func (m *MapExpr) Span() diag.Span { return m.NodeSpan }

// Paren is a parenthesized expression, kept as its own node (rather
// than discarded during parsing) so `(1, 2)` can be told apart from a
// bare list when it matters for map-vs-list disambiguation.
type Paren struct {
	Inner    Expr
	NodeSpan diag.Span
}

func (*Paren) node()            {}
func (*Paren) expr()            {}
func (p *Paren) Span() diag.Span { return p.NodeSpan }

// Unary is a prefix operator: `+`, `-`, `not`. There is no unary `/`: a
// leading `/` lexes as its own KindSlash token, which the expression
// parser rejects as a parse error.
type Unary struct {
	Op       string
	Operand  Expr
	NodeSpan diag.Span
}

func (*Unary) node()            {}
func (*Unary) expr()            {}
func (u *Unary) Span() diag.Span { return u.NodeSpan }

// Binary is a binary operator expression. For Op == "/" between two
// numeric literals, MaybeSlash records that the parser could not rule
// out slash-separation; the evaluator picks division vs. a two-element
// slash list based on surrounding context, per spec.md §4.2.
type Binary struct {
	Left       Expr
	Op         string
	Right      Expr
	MaybeSlash bool
	NodeSpan   diag.Span
}

func (*Binary) node()            {}
func (*Binary) expr()            {}
func (b *Binary) Span() diag.Span { return b.NodeSpan }

// ParentSelectorExpr is a bare `&` appearing as a value expression
// (e.g. in `$sel: &;`), distinct from `&` inside a selector prelude.
type ParentSelectorExpr struct {
	NodeSpan diag.Span
}

func (*ParentSelectorExpr) node()            {}
func (*ParentSelectorExpr) expr()            {}
func (p *ParentSelectorExpr) Span() diag.Span { return p.NodeSpan }
