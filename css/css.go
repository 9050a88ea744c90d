// Package css is the resolved CSS tree: what the evaluator produces
// from a Sass AST and what the extend engine rewrites and the
// serializer walks. Every Sass-only construct (variables, mixins,
// control flow, nesting, interpolation) has already been resolved by
// the time a node exists here, per spec.md §3.4 -- style rules never
// contain other style rules, selectors are plain resolved strings
// backed by the selector package's structured model, and values are
// final text ready for output.
package css

import "github.com/titpetric/sassgo/diag"

// Node is the common interface every CSS tree node implements, mirroring
// ast.Node's marker-method shape.
type Node interface {
	cssNode()
	Span() diag.Span
}

// Stylesheet is the root of a resolved CSS tree, one per compiled entry
// point after imports have been inlined.
type Stylesheet struct {
	Nodes []Node
	span  diag.Span
}

func NewStylesheet(nodes []Node, span diag.Span) *Stylesheet {
	return &Stylesheet{Nodes: nodes, span: span}
}

func (*Stylesheet) cssNode()         {}
func (s *Stylesheet) Span() diag.Span { return s.span }

// StyleRule is a resolved selector list with a flat sequence of
// declarations, comments, and at-rules. It never contains another
// StyleRule -- nesting has already been flattened by the evaluator via
// selector.ResolveNesting.
type StyleRule struct {
	Selector string // the selector list's serialized text, e.g. "div.a, div.b"
	Body     []Node
	span     diag.Span
}

func NewStyleRule(sel string, body []Node, span diag.Span) *StyleRule {
	return &StyleRule{Selector: sel, Body: body, span: span}
}

func (*StyleRule) cssNode()         {}
func (s *StyleRule) Span() diag.Span { return s.span }

// Declaration is a single resolved "name: value" pair. NestedBody
// covers the rare custom-property interpolation edge case spec.md §3.4
// calls out, where a property with a block-valued form needs to carry
// its own nested style rule rather than collapsing to plain text.
type Declaration struct {
	Name       string
	Value      string
	Important  bool
	NestedBody []Node
	span       diag.Span
}

func NewDeclaration(name, value string, important bool, span diag.Span) *Declaration {
	return &Declaration{Name: name, Value: value, Important: important, span: span}
}

func (*Declaration) cssNode()         {}
func (d *Declaration) Span() diag.Span { return d.span }

// AtRuleKind records which kind of at-rule produced a node (media,
// supports, keyframes, or a generic pass-through). The serializer
// writes every kind the same way and does no query merging.
type AtRuleKind int

const (
	AtRuleGeneric AtRuleKind = iota
	AtRuleMedia
	AtRuleSupports
	AtRuleKeyframes
	AtRuleFontFace
	AtRulePage
)

// AtRule is a resolved at-rule: "@media (...)", "@supports (...)",
// "@keyframes name", "@font-face", or any unrecognized "@name prelude".
type AtRule struct {
	Kind    AtRuleKind
	Name    string // without the leading "@"
	Prelude string
	Body    []Node
	span    diag.Span
}

func NewAtRule(kind AtRuleKind, name, prelude string, body []Node, span diag.Span) *AtRule {
	return &AtRule{Kind: kind, Name: name, Prelude: prelude, Body: body, span: span}
}

func (*AtRule) cssNode()         {}
func (a *AtRule) Span() diag.Span { return a.span }

// Import is a plain CSS "@import" that survived evaluation (a URL Sass
// couldn't resolve as a module load, or one explicitly marked
// plain-CSS, per spec.md §5's load-vs-import distinction).
type Import struct {
	URL      string
	Media    string
	span     diag.Span
}

func NewImport(url, media string, span diag.Span) *Import {
	return &Import{URL: url, Media: media, span: span}
}

func (*Import) cssNode()         {}
func (i *Import) Span() diag.Span { return i.span }

// Comment is a "/* ... */" comment preserved in the output (a Sass
// "//" line comment never reaches this tree at all).
type Comment struct {
	Text string
	span diag.Span
}

func NewComment(text string, span diag.Span) *Comment {
	return &Comment{Text: text, span: span}
}

func (*Comment) cssNode()         {}
func (c *Comment) Span() diag.Span { return c.span }

// Charset is a synthesized "@charset" rule the serializer emits first
// when the output contains non-ASCII text, per spec.md §6's output
// rules.
type Charset struct {
	Encoding string
	span     diag.Span
}

func NewCharset(encoding string, span diag.Span) *Charset {
	return &Charset{Encoding: encoding, span: span}
}

func (*Charset) cssNode()         {}
func (c *Charset) Span() diag.Span { return c.span }
