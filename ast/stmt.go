package ast

import "github.com/titpetric/sassgo/diag"

// VarDecl is a top-level or nested `$name: expr [!default] [!global];`.
type VarDecl struct {
	Namespace string
	Name      string
	Value     Expr
	Default   bool
	Global    bool
	NodeSpan  diag.Span
}

func (*VarDecl) node()            {}
func (*VarDecl) stmt()            {}
func (v *VarDecl) Span() diag.Span { return v.NodeSpan }

// StyleRule is `prelude { body }`. Prelude is captured as interpolation
// at parse time and only parsed into a selector list once the
// evaluator has substituted its expression holes (spec.md §4.1
// "selectors are parsed lazily").
type StyleRule struct {
	Prelude  Interpolation
	Body     []Statement
	NodeSpan diag.Span
}

func (*StyleRule) node()            {}
func (*StyleRule) stmt()            {}
func (s *StyleRule) Span() diag.Span { return s.NodeSpan }

// Declaration is `name: value;` with optional nested declarations
// (`font: { size: 1em; weight: bold; }`), in which case Value may be
// nil (the shorthand prefix has no value of its own) or present
// alongside Children.
type Declaration struct {
	Name     Interpolation
	Value    Expr
	Children []Statement
	NodeSpan diag.Span
}

func (*Declaration) node()            {}
func (*Declaration) stmt()            {}
func (d *Declaration) Span() diag.Span { return d.NodeSpan }

// CustomPropertyDecl is `--name: <free-form token text>;`. Its value is
// never parsed as a Sass expression -- only interpolation holes inside
// it are evaluated, per spec.md §4.1 "Custom properties".
type CustomPropertyDecl struct {
	Name     string
	Value    Interpolation
	NodeSpan diag.Span
}

func (*CustomPropertyDecl) node()            {}
func (*CustomPropertyDecl) stmt()            {}
func (c *CustomPropertyDecl) Span() diag.Span { return c.NodeSpan }

// LoudComment is a `/* ... */` comment, preserved in the CSS output;
// it may contain interpolation.
type LoudComment struct {
	Text     Interpolation
	NodeSpan diag.Span
}

func (*LoudComment) node()            {}
func (*LoudComment) stmt()            {}
func (c *LoudComment) Span() diag.Span { return c.NodeSpan }

// SilentComment is a `// ...` comment, dropped entirely from output.
type SilentComment struct {
	Text     string
	NodeSpan diag.Span
}

func (*SilentComment) node()            {}
func (*SilentComment) stmt()            {}
func (c *SilentComment) Span() diag.Span { return c.NodeSpan }

// IfClause is one `@if`/`@else if`/`@else` arm. Cond == nil marks the
// final unconditional `@else`.
type IfClause struct {
	Cond Expr
	Body []Statement
}

// If is the full `@if ... @else if ... @else ...` chain.
type If struct {
	Clauses  []IfClause
	NodeSpan diag.Span
}

func (*If) node()            {}
func (*If) stmt()            {}
func (i *If) Span() diag.Span { return i.NodeSpan }

// Each is `@each $v1, $v2, ... in <list-expr> { body }`. Multiple
// variables destructure each list element (itself expected to be a
// list/map entry) per spec.md §4.4.
type Each struct {
	Vars     []string
	List     Expr
	Body     []Statement
	NodeSpan diag.Span
}

func (*Each) node()            {}
func (*Each) stmt()            {}
func (e *Each) Span() diag.Span { return e.NodeSpan }

// For is `@for $v from <from> [through|to] <to> { body }`. Exclusive
// is true for `to` (excludes the endpoint), false for `through`.
type For struct {
	Var       string
	From      Expr
	To        Expr
	Exclusive bool
	Body      []Statement
	NodeSpan  diag.Span
}

func (*For) node()            {}
func (*For) stmt()            {}
func (f *For) Span() diag.Span { return f.NodeSpan }

// While is `@while <cond> { body }`.
type While struct {
	Cond     Expr
	Body     []Statement
	NodeSpan diag.Span
}

func (*While) node()            {}
func (*While) stmt()            {}
func (w *While) Span() diag.Span { return w.NodeSpan }

// Return is `@return <expr>;`, legal only inside a @function body.
type Return struct {
	Value    Expr
	NodeSpan diag.Span
}

func (*Return) node()            {}
func (*Return) stmt()            {}
func (r *Return) Span() diag.Span { return r.NodeSpan }

// Warn is `@warn <expr>;`.
type Warn struct {
	Value    Expr
	NodeSpan diag.Span
}

func (*Warn) node()            {}
func (*Warn) stmt()            {}
func (w *Warn) Span() diag.Span { return w.NodeSpan }

// Debug is `@debug <expr>;`.
type Debug struct {
	Value    Expr
	NodeSpan diag.Span
}

func (*Debug) node()            {}
func (*Debug) stmt()            {}
func (d *Debug) Span() diag.Span { return d.NodeSpan }

// ErrorStmt is `@error <expr>;`; aborts compilation with the current
// stack trace when evaluated.
type ErrorStmt struct {
	Value    Expr
	NodeSpan diag.Span
}

func (*ErrorStmt) node()            {}
func (*ErrorStmt) stmt()            {}
func (e *ErrorStmt) Span() diag.Span { return e.NodeSpan }

// AtRootQuery is the `(with: ...)`/`(without: ...)` payload of
// `@at-root`. A nil query means "without: rule" (the default: escape
// only the enclosing style rules, keep media/supports).
type AtRootQuery struct {
	Without bool // true for "without", false for "with"
	Names   []string
	All     bool // "all" keyword
}

// AtRoot is `@at-root [query] { body }` or `@at-root <style-rule>`.
type AtRoot struct {
	Query    *AtRootQuery
	Body     []Statement
	NodeSpan diag.Span
}

func (*AtRoot) node()            {}
func (*AtRoot) stmt()            {}
func (a *AtRoot) Span() diag.Span { return a.NodeSpan }

// ExtendRule is `@extend <selector> [!optional];`.
type ExtendRule struct {
	Selector Interpolation
	Optional bool
	NodeSpan diag.Span
}

func (*ExtendRule) node()            {}
func (*ExtendRule) stmt()            {}
func (e *ExtendRule) Span() diag.Span { return e.NodeSpan }

// Use is `@use <url> [as <namespace>|*] [with (...)];`.
type Use struct {
	URL           string
	Namespace     string // "" means derive from URL; "*" means global
	Configuration []ConfigVar
	NodeSpan      diag.Span
}

func (*Use) node()            {}
func (*Use) stmt()            {}
func (u *Use) Span() diag.Span { return u.NodeSpan }

// Forward is `@forward <url> [as <prefix>-*] [show ...|hide ...] [with (...)];`.
type Forward struct {
	URL           string
	Prefix        string
	Show          []string
	Hide          []string
	Configuration []ConfigVar
	NodeSpan      diag.Span
}

func (*Forward) node()            {}
func (*Forward) stmt()            {}
func (f *Forward) Span() diag.Span { return f.NodeSpan }

// Import is the legacy `@import <url>, <url>, ...;`. Each URL is kept
// as written; canonicalization/dispatch (as a real Sass import vs. a
// plain CSS @import passthrough for http(s):// or url(...) targets)
// happens in the importer/evaluator.
type Import struct {
	URLs     []string
	NodeSpan diag.Span
}

func (*Import) node()            {}
func (*Import) stmt()            {}
func (i *Import) Span() diag.Span { return i.NodeSpan }

// Include is `@include [namespace.]name(args) [{ content }];`.
type Include struct {
	Namespace string
	Name      string
	Args      ArgumentInvocation
	Content   *ContentBlock
	NodeSpan  diag.Span
}

func (*Include) node()            {}
func (*Include) stmt()            {}
func (i *Include) Span() diag.Span { return i.NodeSpan }

// ContentRule is a bare `@content [(args)];` inside a mixin body.
type ContentRule struct {
	Args     ArgumentInvocation
	NodeSpan diag.Span
}

func (*ContentRule) node()            {}
func (*ContentRule) stmt()            {}
func (c *ContentRule) Span() diag.Span { return c.NodeSpan }

// FunctionDecl is `@function name(params) { body }`.
type FunctionDecl struct {
	Name     string
	Params   []Parameter
	Body     []Statement
	NodeSpan diag.Span
}

func (*FunctionDecl) node()            {}
func (*FunctionDecl) stmt()            {}
func (f *FunctionDecl) Span() diag.Span { return f.NodeSpan }

// MixinDecl is `@mixin name[(params)] { body }`. AcceptsContent is
// true when the body references @content anywhere (computed once at
// parse time so @include can reject a content block passed to a mixin
// that can't use one).
type MixinDecl struct {
	Name           string
	Params         []Parameter
	AcceptsContent bool
	Body           []Statement
	NodeSpan       diag.Span
}

func (*MixinDecl) node()            {}
func (*MixinDecl) stmt()            {}
func (m *MixinDecl) Span() diag.Span { return m.NodeSpan }

// KeyframeBlock is one `<selector-list> { body }` entry inside
// `@keyframes`, where each selector is `from`, `to`, or an `N%`.
type KeyframeBlock struct {
	Selectors []string
	Body      []Statement
	NodeSpan  diag.Span
}

func (*KeyframeBlock) node()            {}
func (*KeyframeBlock) stmt()            {}
func (k *KeyframeBlock) Span() diag.Span { return k.NodeSpan }

// Keyframes is `@keyframes <name> { ...KeyframeBlock }`, optionally
// vendor-prefixed (Name carries any `-webkit-`/`-moz-` prefix verbatim).
type Keyframes struct {
	Name     string
	Body     []Statement
	NodeSpan diag.Span
}

func (*Keyframes) node()            {}
func (*Keyframes) stmt()            {}
func (k *Keyframes) Span() diag.Span { return k.NodeSpan }

// Media is `@media <query> { body }`. Query is interpolation because
// media features may themselves contain `#{...}`.
type Media struct {
	Query    Interpolation
	Body     []Statement
	NodeSpan diag.Span
}

func (*Media) node()            {}
func (*Media) stmt()            {}
func (m *Media) Span() diag.Span { return m.NodeSpan }

// Supports is `@supports <condition> { body }`.
type Supports struct {
	Condition SupportsCondition
	Body      []Statement
	NodeSpan  diag.Span
}

func (*Supports) node()            {}
func (*Supports) stmt()            {}
func (s *Supports) Span() diag.Span { return s.NodeSpan }

// GenericAtRule is any at-rule spec.md doesn't name a dedicated
// variant for (`@font-face`, `@page`, `@namespace`, vendor at-rules,
// ...). Body is nil for a statement-form at-rule (no braces).
type GenericAtRule struct {
	Name     string
	Prelude  Interpolation
	Body     []Statement
	NodeSpan diag.Span
}

func (*GenericAtRule) node()            {}
func (*GenericAtRule) stmt()            {}
func (g *GenericAtRule) Span() diag.Span { return g.NodeSpan }
