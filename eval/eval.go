// Package eval is the tree-walking evaluator: it turns a parsed
// ast.Stylesheet into a resolved css.Stylesheet by walking statements
// and expressions against a lexical scope chain, per spec.md §4.4.
//
// Grounded on renderer/renderer.go's Renderer: a two-pass structure
// (collect mixins/extends, then render) driving a recursive
// renderStatement/renderRule/renderValue switch over one flat LESS AST.
// This package keeps that recursive-descent shape -- no bytecode, no
// separate collection pass for mixins/functions since Sass's hoisting
// rules are simpler than LESS's forward-reference mixin resolution --
// but drives it off the ast/value/css sum types instead of LESS's
// single ast.Rule/ast.Value structs.
package eval

import (
	"fmt"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/builtin"
	"github.com/titpetric/sassgo/css"
	"github.com/titpetric/sassgo/diag"
	"github.com/titpetric/sassgo/extend"
	"github.com/titpetric/sassgo/selector"
	"github.com/titpetric/sassgo/value"
)

// Evaluator walks one compile unit's Sass AST. One Evaluator is used
// per `sassgo.Compile` call; @use/@forward loads a fresh child
// Evaluator per module through the Loader so each module's variables,
// functions and mixins stay in their own namespace (spec.md §4.5).
type Evaluator struct {
	Scope  *Scope
	Logger *diag.Logger
	Loader Loader

	// Files backs span-to-source lookups for error reporting; index 0
	// is always the entry stylesheet, further entries are appended as
	// modules are loaded.
	Files []*diag.SourceFile

	// namespaces maps an `@use ... as <ns>` namespace to the module it
	// loaded, for `<ns>.$var`/`<ns>.name(...)` resolution.
	namespaces map[string]*Module

	// builtinNS maps a namespace bound via `@use "sass:<module>"` to
	// that built-in module's name, so `math.round($x)` resolves against
	// builtin.Table() instead of the user-module namespaces above.
	builtinNS map[string]string

	// loadedModules caches a loaded module by its canonical URL so
	// `@use`-ing the same file twice from different places only runs
	// its top-level statements once, per spec.md §4.5.
	loadedModules map[string]*Module

	// HostFunctions holds functions registered from outside the
	// compiled stylesheet (spec.md §6's "functions" compile option),
	// keyed by name the same way builtin.Table is. Checked after user
	// @function definitions and before the built-in table, so a host
	// function with a built-in's name takes precedence over that
	// built-in for unprefixed calls; a call through a `@use "sass:..."`
	// namespace still reaches the built-in.
	HostFunctions map[string]*builtin.Entry

	// url is the canonical URL of the stylesheet currently being
	// evaluated, passed to the Loader as the "from" side of a relative
	// @use/@import/@forward URL.
	url string

	// currentSelector is the resolved selector list of the innermost
	// enclosing style rule, consulted by a bare "&" used as a value
	// expression (e.g. `$sel: &;`). nil at the stylesheet root.
	currentSelector *selector.List

	// trace is the current call-site stack, pushed by callMixin/
	// callUserFunction and used to annotate a RuntimeError with spec.md
	// §7's "stack of call-site spans".
	trace []diag.Frame

	// pendingReturn is set by evaluating a `@return` statement and
	// checked after every statement inside a @function body so a
	// @return nested inside @if/@each/@for/@while still unwinds the
	// whole call, the way a Go function would use a plain `return`.
	pendingReturn *value.Value
}

// Module is the result of loading one stylesheet through a Loader: its
// own scope (so `@use` gives each module an independent namespace) and
// the CSS it contributed at load time (`@use` emits a loaded module's
// top-level CSS exactly once, at its first load site).
type Module struct {
	Scope *Scope
	CSS   []css.Node
}

// NewEvaluator builds an Evaluator for a fresh compile unit.
func NewEvaluator(logger *diag.Logger, loader Loader) *Evaluator {
	if logger == nil {
		logger = diag.NewLogger()
	}
	return &Evaluator{
		Scope:         NewScope(),
		Logger:        logger,
		Loader:        loader,
		namespaces:    make(map[string]*Module),
		builtinNS:     make(map[string]string),
		loadedModules: make(map[string]*Module),
		HostFunctions: make(map[string]*builtin.Entry),
	}
}

// blockCtx is the per-recursion-level context threaded through
// statement evaluation: the resolved selector list of every enclosing
// style rule (nil at the stylesheet root), the extend registry for the
// current media/supports boundary, and the output node slice the
// current block appends into. Generalizes the prior implementation's renderRule
// taking an explicit "parent selector" string parameter into a small
// struct so the growing number of things a nested block needs to know
// (selector, extend boundary, @content closure) doesn't turn into an
// ever-longer parameter list.
type blockCtx struct {
	selector *selector.List // nil outside any style rule
	reg      *extend.Registry
	content  *contentClosure // non-nil inside a mixin body that received @content
	inKeyframes bool
}

// child returns a copy of ctx for a nested block, keeping the same
// extend registry (only media/supports boundaries get a fresh one) and
// content closure (still in scope down through nested control flow and
// style rules) but allowing the caller to override the selector.
func (c blockCtx) child(sel *selector.List) blockCtx {
	c.selector = sel
	return c
}

// Run evaluates a top-level stylesheet, returning the resolved CSS
// tree with `@extend` already applied and placeholder-only rules
// stripped, per spec.md §4.3's per-boundary extend model.
func (e *Evaluator) Run(sheet *ast.Stylesheet) (*css.Stylesheet, error) {
	e.url = sheet.URL
	reg := extend.NewRegistry()
	ctx := blockCtx{reg: reg}
	var nodes []css.Node
	if err := e.evalStatements(sheet.Statements, &ctx, &nodes); err != nil {
		return nil, err
	}
	if err := extend.Apply(nodes, reg); err != nil {
		return nil, err
	}
	nodes = extend.StripPlaceholders(nodes)
	return css.NewStylesheet(nodes, sheet.Span()), nil
}

// runtimeErr builds a *diag.RuntimeError carrying the current call
// trace, the uniform error shape spec.md §7 asks every evaluation
// failure to produce.
func (e *Evaluator) runtimeErr(sp diag.Span, format string, args ...interface{}) error {
	trace := append([]diag.Frame(nil), e.trace...)
	return &diag.RuntimeError{Span: sp, Message: fmt.Sprintf(format, args...), Trace: trace}
}

func (e *Evaluator) pushTrace(sp diag.Span, label string) {
	e.trace = append(e.trace, diag.Frame{Span: sp, Label: label})
}

func (e *Evaluator) popTrace() {
	if len(e.trace) > 0 {
		e.trace = e.trace[:len(e.trace)-1]
	}
}

// resolveScope returns the scope a namespaced reference should look
// in: the module's own scope for `ns.$foo`/`ns.foo()`, or the current
// scope for an unqualified reference.
func (e *Evaluator) resolveScope(namespace string) (*Scope, error) {
	if namespace == "" {
		return e.Scope, nil
	}
	mod, ok := e.namespaces[namespace]
	if !ok {
		return nil, fmt.Errorf("There is no module with namespace %q.", namespace)
	}
	return mod.Scope, nil
}
