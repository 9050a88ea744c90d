package eval

import (
	"context"
	"strings"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/css"
	"github.com/titpetric/sassgo/diag"
	"github.com/titpetric/sassgo/extend"
	"github.com/titpetric/sassgo/selector"
	"github.com/titpetric/sassgo/value"
)

// evalStatements walks one statement list, appending the CSS it
// produces to out. Grounded on renderer.go's renderStatement dispatch
// switch, generalized from LESS's single ast.Rule/ast.Value shape to
// the full ast.Statement sum type. Stops early once a @return has set
// e.pendingReturn, the way a Go function body stops at a bare return.
func (e *Evaluator) evalStatements(stmts []ast.Statement, ctx *blockCtx, out *[]css.Node) error {
	for _, stmt := range stmts {
		if err := e.evalStatement(stmt, ctx, out); err != nil {
			return err
		}
		if e.pendingReturn != nil {
			return nil
		}
	}
	return nil
}

func (e *Evaluator) evalStatement(stmt ast.Statement, ctx *blockCtx, out *[]css.Node) error {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return e.evalVarDecl(s)
	case *ast.StyleRule:
		return e.evalStyleRule(s, ctx, out)
	case *ast.Declaration:
		return e.evalDeclaration(s, ctx, out)
	case *ast.CustomPropertyDecl:
		text, err := e.evalInterpolation(&s.Value)
		if err != nil {
			return err
		}
		*out = append(*out, css.NewDeclaration(s.Name, text, false, s.Span()))
		return nil
	case *ast.LoudComment:
		text, err := e.evalInterpolation(&s.Text)
		if err != nil {
			return err
		}
		*out = append(*out, css.NewComment(text, s.Span()))
		return nil
	case *ast.SilentComment:
		return nil
	case *ast.If:
		return e.evalIf(s, ctx, out)
	case *ast.Each:
		return e.evalEach(s, ctx, out)
	case *ast.For:
		return e.evalFor(s, ctx, out)
	case *ast.While:
		return e.evalWhile(s, ctx, out)
	case *ast.Return:
		v, err := e.evalExpr(s.Value)
		if err != nil {
			return err
		}
		e.pendingReturn = &v
		return nil
	case *ast.Warn:
		v, err := e.evalExpr(s.Value)
		if err != nil {
			return err
		}
		e.Logger.Warn(v.String(), e.trace)
		return nil
	case *ast.Debug:
		v, err := e.evalExpr(s.Value)
		if err != nil {
			return err
		}
		e.Logger.Debug(s.Span(), v.String())
		e.Logger.DebugDump(v.String(), v)
		return nil
	case *ast.ErrorStmt:
		v, err := e.evalExpr(s.Value)
		if err != nil {
			return err
		}
		return e.runtimeErr(s.Span(), "%s", v.String())
	case *ast.AtRoot:
		return e.evalAtRoot(s, ctx, out)
	case *ast.ExtendRule:
		return e.evalExtend(s, ctx)
	case *ast.Use:
		return e.evalUse(s, out)
	case *ast.Forward:
		return e.evalForward(s)
	case *ast.Import:
		return e.evalImport(s, out)
	case *ast.Include:
		return e.callMixin(s, ctx, out)
	case *ast.ContentRule:
		return e.evalContent(s, ctx, out)
	case *ast.FunctionDecl:
		e.Scope.DeclareFunc(s.Name, s)
		return nil
	case *ast.MixinDecl:
		e.Scope.DeclareMixin(s.Name, s)
		return nil
	case *ast.KeyframeBlock:
		return e.evalKeyframeBlock(s, out)
	case *ast.Keyframes:
		return e.evalKeyframes(s, out)
	case *ast.Media:
		return e.evalMedia(s, ctx, out)
	case *ast.Supports:
		return e.evalSupports(s, ctx, out)
	case *ast.GenericAtRule:
		return e.evalGenericAtRule(s, ctx, out)
	default:
		return e.runtimeErr(stmt.Span(), "unsupported statement %T", stmt)
	}
}

func (e *Evaluator) evalVarDecl(s *ast.VarDecl) error {
	v, err := e.evalExpr(s.Value)
	if err != nil {
		return err
	}
	scope, err := e.resolveScope(s.Namespace)
	if err != nil {
		return e.runtimeErr(s.Span(), "%s", err)
	}
	scope.SetVar(s.Name, v, s.Global, s.Default)
	return nil
}

func (e *Evaluator) evalStyleRule(s *ast.StyleRule, ctx *blockCtx, out *[]css.Node) error {
	text, err := e.evalInterpolation(&s.Prelude)
	if err != nil {
		return err
	}
	inner, err := selector.Parse(text)
	if err != nil {
		return e.runtimeErr(s.Span(), "%s", err)
	}
	var resolved selector.List
	if ctx.selector != nil {
		resolved, err = selector.ResolveNesting(*ctx.selector, inner)
		if err != nil {
			return e.runtimeErr(s.Span(), "%s", err)
		}
	} else {
		resolved = inner
	}

	savedSel := e.currentSelector
	e.currentSelector = &resolved
	defer func() { e.currentSelector = savedSel }()

	childCtx := ctx.child(&resolved)
	var body []css.Node
	if err := e.evalStatements(s.Body, &childCtx, &body); err != nil {
		return err
	}
	var own, hoisted []css.Node
	for _, n := range body {
		if r, ok := n.(*css.AtRule); ok && r.Body != nil {
			hoisted = append(hoisted, n)
		} else if _, ok := n.(*css.StyleRule); ok {
			hoisted = append(hoisted, n)
		} else {
			own = append(own, n)
		}
	}
	if len(own) > 0 {
		*out = append(*out, css.NewStyleRule(resolved.String(), own, s.Span()))
	}
	*out = append(*out, hoisted...)
	return nil
}

func (e *Evaluator) evalDeclaration(s *ast.Declaration, ctx *blockCtx, out *[]css.Node) error {
	name, err := e.evalInterpolation(&s.Name)
	if err != nil {
		return err
	}
	text := ""
	important := false
	if s.Value != nil {
		v, err := e.evalExpr(s.Value)
		if err != nil {
			return err
		}
		text, important = splitImportant(v.String())
	}
	var nested []css.Node
	if len(s.Children) > 0 {
		if err := e.evalStatements(s.Children, ctx, &nested); err != nil {
			return err
		}
	}
	if text == "" && len(nested) == 0 {
		return nil
	}
	decl := css.NewDeclaration(name, text, important, s.Span())
	decl.NestedBody = nested
	*out = append(*out, decl)
	return nil
}

// splitImportant strips a trailing "!important" marker the way the
// value model renders it -- as the literal trailing text of a
// space-separated value -- since ast.Declaration carries no separate
// Important field (css.Declaration does, and this function's second
// result fills it); the parser leaves "!important" embedded in the
// value expression as ordinary trailing text instead of a dedicated
// AST flag.
func splitImportant(text string) (string, bool) {
	trimmed := strings.TrimRight(text, " \t")
	lower := strings.ToLower(trimmed)
	if strings.HasSuffix(lower, "!important") {
		rest := strings.TrimRight(trimmed[:len(trimmed)-len("!important")], " \t")
		return rest, true
	}
	return text, false
}

func (e *Evaluator) evalIf(s *ast.If, ctx *blockCtx, out *[]css.Node) error {
	for _, clause := range s.Clauses {
		if clause.Cond != nil {
			v, err := e.evalExpr(clause.Cond)
			if err != nil {
				return err
			}
			if !v.Truthy() {
				continue
			}
		}
		return e.evalStatements(clause.Body, ctx, out)
	}
	return nil
}

func (e *Evaluator) evalEach(s *ast.Each, ctx *blockCtx, out *[]css.Node) error {
	list, err := e.evalExpr(s.List)
	if err != nil {
		return err
	}
	for _, item := range iterableElements(list) {
		bindEachVars(e.Scope, s.Vars, item)
		if err := e.evalStatements(s.Body, ctx, out); err != nil {
			return err
		}
		if e.pendingReturn != nil {
			return nil
		}
	}
	return nil
}

// iterableElements normalizes a @each list expression into the
// sequence it iterates: a list's own elements, a map's entries as
// 2-element [key, value] lists, or a single-element slice for anything
// else (spec.md §4.4 "a bare value iterates as a one-element list").
func iterableElements(v value.Value) []value.Value {
	switch l := v.(type) {
	case *value.List:
		return l.Elems
	case *value.ArgList:
		return l.Elems
	case *value.Map:
		out := make([]value.Value, l.Len())
		for i := range l.Keys {
			out[i] = value.NewList([]value.Value{l.Keys[i], l.Vals[i]}, value.SepSpace)
		}
		return out
	default:
		return []value.Value{v}
	}
}

func bindEachVars(scope *Scope, vars []string, item value.Value) {
	if len(vars) == 1 {
		scope.SetVar(vars[0], item, false, false)
		return
	}
	var parts []value.Value
	if l, ok := item.(*value.List); ok {
		parts = l.Elems
	} else {
		parts = []value.Value{item}
	}
	for i, name := range vars {
		if i < len(parts) {
			scope.SetVar(name, parts[i], false, false)
		} else {
			scope.SetVar(name, value.NullValue, false, false)
		}
	}
}

func (e *Evaluator) evalFor(s *ast.For, ctx *blockCtx, out *[]css.Node) error {
	fromV, err := e.evalExpr(s.From)
	if err != nil {
		return err
	}
	toV, err := e.evalExpr(s.To)
	if err != nil {
		return err
	}
	fromN, ok := fromV.(*value.Number)
	if !ok {
		return e.runtimeErr(s.Span(), "%s is not a number.", fromV.String())
	}
	toN, ok := toV.(*value.Number)
	if !ok {
		return e.runtimeErr(s.Span(), "%s is not a number.", toV.String())
	}
	from, err := fromN.AssertInt("from")
	if err != nil {
		return e.runtimeErr(s.Span(), "%s", err)
	}
	to, err := toN.AssertInt("to")
	if err != nil {
		return e.runtimeErr(s.Span(), "%s", err)
	}

	step := int64(1)
	if to < from {
		step = -1
	}
	for i := from; (step > 0 && (s.Exclusive && i < to || !s.Exclusive && i <= to)) || (step < 0 && (s.Exclusive && i > to || !s.Exclusive && i >= to)); i += step {
		e.Scope.SetVar(s.Var, value.NewNumber(float64(i)), false, false)
		if err := e.evalStatements(s.Body, ctx, out); err != nil {
			return err
		}
		if e.pendingReturn != nil {
			return nil
		}
	}
	return nil
}

// maxWhileIterations bounds a `@while` loop so a runaway condition
// (e.g. a typo'd counter that never advances) fails the compile
// instead of hanging it forever -- there's no equivalent guard in real
// Sass, which will in fact hang on such input; this cap only exists
// because this compiler has no way to interrupt a wedged evaluation.
const maxWhileIterations = 1_000_000

func (e *Evaluator) evalWhile(s *ast.While, ctx *blockCtx, out *[]css.Node) error {
	for i := 0; ; i++ {
		if i >= maxWhileIterations {
			return e.runtimeErr(s.Span(), "@while loop did not terminate after %d iterations.", maxWhileIterations)
		}
		cond, err := e.evalExpr(s.Cond)
		if err != nil {
			return err
		}
		if !cond.Truthy() {
			return nil
		}
		if err := e.evalStatements(s.Body, ctx, out); err != nil {
			return err
		}
		if e.pendingReturn != nil {
			return nil
		}
	}
}

// evalAtRoot implements @at-root's default "without: rule" behavior:
// the body evaluates with no enclosing selector, so any nested style
// rule starts fresh instead of combining with an ancestor. Scope cut:
// an explicit (with: ...)/(without: media)/(without: all) query is not
// honored, nor is output repositioned past an enclosing @media/
// @supports -- the body still lands wherever @at-root appears in the
// tree, only its selector nesting is reset.
func (e *Evaluator) evalAtRoot(s *ast.AtRoot, ctx *blockCtx, out *[]css.Node) error {
	childCtx := ctx.child(nil)
	savedSel := e.currentSelector
	e.currentSelector = nil
	defer func() { e.currentSelector = savedSel }()
	return e.evalStatements(s.Body, &childCtx, out)
}

func (e *Evaluator) evalExtend(s *ast.ExtendRule, ctx *blockCtx) error {
	if ctx.selector == nil {
		return e.runtimeErr(s.Span(), "@extend may only be used within style rules.")
	}
	text, err := e.evalInterpolation(&s.Selector)
	if err != nil {
		return err
	}
	targets, err := selector.Parse(text)
	if err != nil {
		return e.runtimeErr(s.Span(), "%s", err)
	}
	for _, target := range targets.Complexes {
		if len(target.Components) != 1 {
			if s.Optional {
				continue
			}
			return e.runtimeErr(s.Span(), "expected selector.")
		}
		for _, extender := range ctx.selector.Complexes {
			ctx.reg.Register(extend.Extension{
				Extender: extender,
				Target:   target.Components[0].Compound,
				Optional: s.Optional,
				Span:     s.Span(),
			})
		}
	}
	return nil
}

func (e *Evaluator) evalKeyframeBlock(s *ast.KeyframeBlock, out *[]css.Node) error {
	var body []css.Node
	ctx := blockCtx{reg: extend.NewRegistry()}
	if err := e.evalStatements(s.Body, &ctx, &body); err != nil {
		return err
	}
	*out = append(*out, css.NewStyleRule(strings.Join(s.Selectors, ", "), body, s.Span()))
	return nil
}

func (e *Evaluator) evalKeyframes(s *ast.Keyframes, out *[]css.Node) error {
	reg := extend.NewRegistry()
	ctx := blockCtx{reg: reg, inKeyframes: true}
	var body []css.Node
	if err := e.evalStatements(s.Body, &ctx, &body); err != nil {
		return err
	}
	*out = append(*out, css.NewAtRule(css.AtRuleKeyframes, "keyframes", s.Name, body, s.Span()))
	return nil
}

func (e *Evaluator) evalMedia(s *ast.Media, ctx *blockCtx, out *[]css.Node) error {
	query, err := e.evalInterpolation(&s.Query)
	if err != nil {
		return err
	}
	reg := extend.NewRegistry()
	childCtx := ctx.child(ctx.selector)
	childCtx.reg = reg
	var body []css.Node
	if err := e.evalStatements(s.Body, &childCtx, &body); err != nil {
		return err
	}
	if err := extend.Apply(body, reg); err != nil {
		return err
	}
	body = extend.StripPlaceholders(body)
	if ctx.selector != nil {
		body = bubbleDeclarations(body, ctx.selector.String(), s.Span())
	}
	*out = append(*out, css.NewAtRule(css.AtRuleMedia, "media", query, body, s.Span()))
	return nil
}

func (e *Evaluator) evalSupports(s *ast.Supports, ctx *blockCtx, out *[]css.Node) error {
	prelude, err := e.serializeSupports(s.Condition)
	if err != nil {
		return err
	}
	reg := extend.NewRegistry()
	childCtx := ctx.child(ctx.selector)
	childCtx.reg = reg
	var body []css.Node
	if err := e.evalStatements(s.Body, &childCtx, &body); err != nil {
		return err
	}
	if err := extend.Apply(body, reg); err != nil {
		return err
	}
	body = extend.StripPlaceholders(body)
	if ctx.selector != nil {
		body = bubbleDeclarations(body, ctx.selector.String(), s.Span())
	}
	*out = append(*out, css.NewAtRule(css.AtRuleSupports, "supports", prelude, body, s.Span()))
	return nil
}

func (e *Evaluator) evalGenericAtRule(s *ast.GenericAtRule, ctx *blockCtx, out *[]css.Node) error {
	prelude, err := e.evalInterpolation(&s.Prelude)
	if err != nil {
		return err
	}
	if s.Body == nil {
		*out = append(*out, css.NewAtRule(kindFor(s.Name), s.Name, prelude, nil, s.Span()))
		return nil
	}
	reg := extend.NewRegistry()
	childCtx := ctx.child(ctx.selector)
	childCtx.reg = reg
	var body []css.Node
	if err := e.evalStatements(s.Body, &childCtx, &body); err != nil {
		return err
	}
	if err := extend.Apply(body, reg); err != nil {
		return err
	}
	body = extend.StripPlaceholders(body)
	if ctx.selector != nil {
		body = bubbleDeclarations(body, ctx.selector.String(), s.Span())
	}
	*out = append(*out, css.NewAtRule(kindFor(s.Name), s.Name, prelude, body, s.Span()))
	return nil
}

func kindFor(name string) css.AtRuleKind {
	switch strings.ToLower(name) {
	case "font-face":
		return css.AtRuleFontFace
	case "page":
		return css.AtRulePage
	default:
		return css.AtRuleGeneric
	}
}

// bubbleDeclarations groups the bare declarations/comments produced
// directly inside an at-rule body into a synthesized style rule using
// the enclosing selector, matching how `.a { @media screen { color:
// red; } }` emits `@media screen { .a { color: red; } }` rather than a
// bare declaration with no selector. Grounded on renderer.go's
// renderAtRuleWithContext bubbling pass, generalized from its single
// accumulator to run over the already-evaluated css.Node list instead
// of re-walking the LESS AST.
func bubbleDeclarations(nodes []css.Node, sel string, span diag.Span) []css.Node {
	var out []css.Node
	var pending []css.Node
	flush := func() {
		if len(pending) > 0 {
			out = append(out, css.NewStyleRule(sel, pending, span))
			pending = nil
		}
	}
	for _, n := range nodes {
		switch n.(type) {
		case *css.Declaration, *css.Comment:
			pending = append(pending, n)
		default:
			flush()
			out = append(out, n)
		}
	}
	flush()
	return out
}

// evalUse implements `@use`: "sass:<module>" binds a built-in module
// namespace directly; anything else goes through the Loader, caching
// by canonical URL so a module's top-level CSS is only emitted once.
func (e *Evaluator) evalUse(s *ast.Use, out *[]css.Node) error {
	if mod, ok := strings.CutPrefix(s.URL, "sass:"); ok {
		ns := s.Namespace
		if ns == "" {
			ns = mod
		}
		e.builtinNS[ns] = mod
		return nil
	}
	if e.Loader == nil {
		return e.runtimeErr(s.Span(), "no loader configured for @use %q", s.URL)
	}

	mod, fresh, err := e.loadModule(s.URL)
	if err != nil {
		return e.runtimeErr(s.Span(), "%s", err)
	}
	if err := e.applyConfiguration(mod.Scope, s.Configuration, s.Span()); err != nil {
		return err
	}
	if fresh {
		*out = append(*out, mod.CSS...)
	}
	ns := s.Namespace
	if ns == "" {
		ns = defaultNamespace(s.URL)
	}
	if ns != "*" {
		e.namespaces[ns] = mod
	} else {
		mergeModuleInto(e.Scope.root, mod.Scope.root, "")
	}
	return nil
}

// evalForward re-exports a loaded module's members into the current
// module's own root scope so a consumer that @use's this file sees
// them unqualified (or prefixed), rather than behind this file's own
// namespace. Scope cut: real @forward re-exports into the *consuming*
// module's namespace without polluting this module's own globals;
// here the members land directly in this file's root scope, so a
// forwarded name also becomes usable, unprefixed, from within the
// forwarding file itself.
func (e *Evaluator) evalForward(s *ast.Forward) error {
	if e.Loader == nil {
		return e.runtimeErr(s.Span(), "no loader configured for @forward %q", s.URL)
	}
	mod, _, err := e.loadModule(s.URL)
	if err != nil {
		return e.runtimeErr(s.Span(), "%s", err)
	}
	if err := e.applyConfiguration(mod.Scope, s.Configuration, s.Span()); err != nil {
		return err
	}
	mergeModuleInto(e.Scope.root, mod.Scope.root, s.Prefix, s.Show, s.Hide)
	return nil
}

func (e *Evaluator) applyConfiguration(scope *Scope, cfg []ast.ConfigVar, sp diag.Span) error {
	for _, c := range cfg {
		v, err := e.evalExpr(c.Value)
		if err != nil {
			return err
		}
		scope.SetVar(c.Name, v, true, c.Default)
	}
	return nil
}

// loadModule loads and evaluates url (relative to the current
// stylesheet's URL) through the Loader, returning the cached Module
// and false if it was already loaded by canonical URL.
func (e *Evaluator) loadModule(url string) (*Module, bool, error) {
	sheet, canonical, err := e.Loader.Load(context.Background(), e.url, url)
	if err != nil {
		return nil, false, err
	}
	if mod, ok := e.loadedModules[canonical]; ok {
		return mod, false, nil
	}
	sub := &Evaluator{
		Scope:         NewScope(),
		Logger:        e.Logger,
		Loader:        e.Loader,
		namespaces:    make(map[string]*Module),
		builtinNS:     make(map[string]string),
		loadedModules: e.loadedModules,
		url:           canonical,
	}
	sheetOut, err := sub.Run(sheet)
	if err != nil {
		return nil, false, err
	}
	mod := &Module{Scope: sub.Scope, CSS: sheetOut.Nodes}
	e.loadedModules[canonical] = mod
	return mod, true, nil
}

func defaultNamespace(url string) string {
	base := url
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, ".scss")
	base = strings.TrimSuffix(base, ".sass")
	base = strings.TrimPrefix(base, "_")
	return base
}

// mergeModuleInto copies a loaded module's root-level variable,
// function and mixin bindings into dst, optionally filtered to a
// show/hide allowlist (for @forward) and prefixed.
func mergeModuleInto(dst, src *Frame, prefix string, showHide ...[]string) {
	var show, hide []string
	if len(showHide) > 0 {
		show = showHide[0]
	}
	if len(showHide) > 1 {
		hide = showHide[1]
	}
	allowed := func(name string) bool {
		if len(show) > 0 {
			for _, s := range show {
				if s == name {
					return true
				}
			}
			return false
		}
		for _, h := range hide {
			if h == name {
				return false
			}
		}
		return true
	}
	for name, v := range src.vars {
		if allowed(name) {
			dst.vars[prefix+name] = v
		}
	}
	for name, f := range src.funcs {
		if allowed(name) {
			dst.funcs[prefix+name] = f
		}
	}
	for name, m := range src.mixins {
		if allowed(name) {
			dst.mixins[prefix+name] = m
		}
	}
}

// evalImport implements legacy `@import`: a URL recognized as plain
// CSS (an absolute http(s) URL, one ending in ".css", or one written
// with an explicit url(...)) passes through as a CSS @import; anything
// else loads as a Sass partial whose top-level bindings join the
// current scope directly (legacy imports share one global scope,
// unlike the namespaced @use).
func (e *Evaluator) evalImport(s *ast.Import, out *[]css.Node) error {
	for _, url := range s.URLs {
		if isPlainCSSImport(url) {
			*out = append(*out, css.NewImport(url, "", s.Span()))
			continue
		}
		if e.Loader == nil {
			return e.runtimeErr(s.Span(), "no loader configured for @import %q", url)
		}
		mod, fresh, err := e.loadModule(url)
		if err != nil {
			return e.runtimeErr(s.Span(), "%s", err)
		}
		mergeModuleInto(e.Scope.root, mod.Scope.root, "")
		if fresh {
			*out = append(*out, mod.CSS...)
		}
	}
	return nil
}

func isPlainCSSImport(url string) bool {
	lower := strings.ToLower(strings.TrimSpace(url))
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//") ||
		strings.HasPrefix(lower, "url(") ||
		strings.HasSuffix(lower, ".css")
}
