// Package ast defines the Sass abstract syntax tree: the statement and
// expression sum types the parser produces and the evaluator walks.
//
// ast.Rule/ast.Value in the prior LESS implementation this package grew
// out of modeled LESS as a flat struct with a handful of fields reused
// across unrelated node kinds (one Rule type covers style rules, mixin
// definitions and mixin calls at once, distinguished by which fields
// happen to be non-nil). This package keeps that node()/stmt()/value()
// marker-method shape but gives every distinct grammar production its
// own type, per spec.md §9's "deep inheritance" design note (sum types,
// one tag per variant, operations become switches instead of field
// sniffing).
package ast

import "github.com/titpetric/sassgo/diag"

// Node is the base interface every AST type implements.
type Node interface {
	node()
}

// Statement is anything that can appear in a stylesheet or block body.
type Statement interface {
	Node
	stmt()
	Span() diag.Span
}

// Expr is anything that evaluates to a value.Value.
type Expr interface {
	Node
	expr()
	Span() diag.Span
}

// Interpolation is a sequence alternating plain string fragments and
// expression holes: len(Parts) == len(Exprs)+1. An interpolation with
// no holes is "plain", per spec.md §3.1/GLOSSARY.
type Interpolation struct {
	Parts    []string
	Exprs    []Expr
	NodeSpan diag.Span
}

func (i *Interpolation) node()          {}
func (i *Interpolation) Span() diag.Span { return i.NodeSpan }

// Plain reports whether the interpolation contains no expression holes.
func (i *Interpolation) Plain() bool { return len(i.Exprs) == 0 }

// PlainText returns the literal text when Plain() is true.
func (i *Interpolation) PlainText() string {
	if len(i.Parts) == 0 {
		return ""
	}
	return i.Parts[0]
}

// NewPlainInterpolation wraps a literal string with no holes.
func NewPlainInterpolation(text string, sp diag.Span) *Interpolation {
	return &Interpolation{Parts: []string{text}, NodeSpan: sp}
}

// Stylesheet is the root node: an ordered list of top-level statements
// plus the URL it was parsed from (used for span attribution and as a
// default canonical URL before the importer assigns one).
type Stylesheet struct {
	URL        string
	Statements []Statement
	NodeSpan   diag.Span
}

func (s *Stylesheet) node()          {}
func (s *Stylesheet) Span() diag.Span { return s.NodeSpan }

// Parameter is one entry of a @mixin/@function parameter list: a name,
// an optional default expression, and a rest ("...") flag.
type Parameter struct {
	Name    string
	Default Expr
	Rest    bool
}

// Argument is one entry of a call's argument list. Name == "" marks a
// positional argument; Name != "" is a keyword argument ($name: value).
type Argument struct {
	Name  string
	Value Expr
}

// ArgumentInvocation is the full argument list at a call site,
// including an optional trailing rest expression ("...") that expands
// to both positional and keyword arguments at call time.
type ArgumentInvocation struct {
	Positional []Argument
	Rest       Expr // non-nil when the call ends in `...`
	NodeSpan   diag.Span
}

func (a *ArgumentInvocation) node()          {}
func (a *ArgumentInvocation) Span() diag.Span { return a.NodeSpan }

// ConfigVar is one entry of a `with (...)` configuration payload on
// @use/@forward: $name: value, optionally marked !default.
type ConfigVar struct {
	Name    string
	Value   Expr
	Default bool
}

// ContentBlock is the body captured at an @include call site and later
// substituted for @content inside the invoked mixin, along with the
// arguments the mixin's @content accepts (@content(...) forwarding).
type ContentBlock struct {
	Params     []Parameter
	Statements []Statement
	NodeSpan   diag.Span
}

func (c *ContentBlock) node()          {}
func (c *ContentBlock) Span() diag.Span { return c.NodeSpan }
