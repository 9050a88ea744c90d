package eval

import (
	"fmt"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/css"
	"github.com/titpetric/sassgo/diag"
	"github.com/titpetric/sassgo/extend"
	"github.com/titpetric/sassgo/value"
)

// contentClosure is the body captured at an `@include ... { ... }` call
// site, substituted wherever the invoked mixin writes a bare
// `@content;`. frame pins the lexical scope the content block should
// see -- the call site's, not the mixin body's -- so a variable the
// block references resolves against whatever was in scope where the
// author wrote it, per spec.md §4.4's @content closure rule. Grounded
// on how renderer.go threads a mixin call's nested Rules recursively;
// generalized here into an explicit closure since Sass content blocks
// can be invoked from arbitrarily deep inside the mixin body, not just
// spliced in once at the call site the way LESS detached rulesets are.
type contentClosure struct {
	frame  *Frame
	stmts  []ast.Statement
	params []ast.Parameter
}

// bindParams binds positional and keyword arguments against a
// @mixin/@function's declared parameters into the current (just-
// pushed) scope frame, evaluating default expressions for any
// parameter left unfilled and collecting a trailing "..." parameter
// into an ArgList. Grounded on renderer.go's bindMixinArguments,
// generalized from LESS's positional-only binding to Sass's
// positional+keyword+rest model.
func (e *Evaluator) bindParams(params []ast.Parameter, positional []value.Value, kwargs map[string]value.Value, sp diag.Span, label string) error {
	used := make(map[string]bool, len(kwargs))
	pi := 0
	for _, p := range params {
		if p.Rest {
			rest := append([]value.Value(nil), positional[pi:]...)
			pi = len(positional)
			leftover := make(map[string]value.Value)
			for k, v := range kwargs {
				if !used[k] {
					leftover[k] = v
					used[k] = true
				}
			}
			e.Scope.SetVar(p.Name, value.NewArgList(rest, leftover, value.SepComma), false, false)
			continue
		}
		if pi < len(positional) {
			e.Scope.SetVar(p.Name, positional[pi], false, false)
			pi++
			continue
		}
		if v, ok := kwargs[p.Name]; ok {
			used[p.Name] = true
			e.Scope.SetVar(p.Name, v, false, false)
			continue
		}
		if p.Default != nil {
			v, err := e.evalExpr(p.Default)
			if err != nil {
				return err
			}
			e.Scope.SetVar(p.Name, v, false, false)
			continue
		}
		return e.runtimeErr(sp, "%s: Missing argument $%s.", label, p.Name)
	}
	if pi < len(positional) {
		return e.runtimeErr(sp, "%s: %d positional arguments were passed but only %d were expected.", label, len(positional), pi)
	}
	for k := range kwargs {
		if !used[k] {
			return e.runtimeErr(sp, "%s: No argument named $%s.", label, k)
		}
	}
	return nil
}

// callUserFunction invokes a @function definition: its body runs in a
// fresh isolating frame chained off its defining module's scope (a
// dynamic-scoping approximation -- the frame active at the call site is
// swapped out for the declaring scope's root/top for the duration of
// the call, rather than a true lexical closure captured at declaration
// time), per spec.md §4.4's "functions require an explicit @return".
func (e *Evaluator) callUserFunction(call *ast.Call, fn *ast.FunctionDecl, defScope *Scope) (value.Value, error) {
	positional, kwargs, err := e.evalArgs(call.Args)
	if err != nil {
		return nil, err
	}

	savedTop, savedRoot, savedReturn := e.Scope.top, e.Scope.root, e.pendingReturn
	e.Scope.top = newFrame(defScope.top, true)
	e.Scope.root = defScope.root
	e.pendingReturn = nil
	defer func() {
		e.Scope.top, e.Scope.root, e.pendingReturn = savedTop, savedRoot, savedReturn
	}()

	if err := e.bindParams(fn.Params, positional, kwargs, call.Span(), fmt.Sprintf("function %q", fn.Name)); err != nil {
		return nil, err
	}

	e.pushTrace(call.Span(), fmt.Sprintf("function \"%s\"", fn.Name))
	defer e.popTrace()

	var discard []css.Node
	ctx := blockCtx{reg: extend.NewRegistry()}
	if err := e.evalStatements(fn.Body, &ctx, &discard); err != nil {
		return nil, err
	}
	if e.pendingReturn == nil {
		return nil, e.runtimeErr(call.Span(), "Function finished without @return.")
	}
	return *e.pendingReturn, nil
}

// callMixin invokes a @mixin definition via @include: unlike a
// function, its body shares the @include call's extend boundary and
// selector nesting context (ctx), so style rules inside the mixin body
// still belong to whatever media/supports boundary the @include
// appears in.
func (e *Evaluator) callMixin(inc *ast.Include, ctx *blockCtx, out *[]css.Node) error {
	scope, err := e.resolveScope(inc.Namespace)
	if err != nil {
		return e.runtimeErr(inc.Span(), "%s", err)
	}
	mixin, ok := scope.LookupMixin(inc.Name)
	if !ok {
		return e.runtimeErr(inc.Span(), "Undefined mixin.")
	}
	if inc.Content != nil && !mixin.AcceptsContent {
		return e.runtimeErr(inc.Span(), "Mixin %q doesn't accept a content block.", inc.Name)
	}

	positional, kwargs, err := e.evalArgs(inc.Args)
	if err != nil {
		return err
	}

	callerTop := e.Scope.top
	e.Scope.top = newFrame(scope.top, true)
	defer func() { e.Scope.top = callerTop }()

	if err := e.bindParams(mixin.Params, positional, kwargs, inc.Span(), fmt.Sprintf("mixin %q", inc.Name)); err != nil {
		return err
	}

	var closure *contentClosure
	if inc.Content != nil {
		closure = &contentClosure{frame: callerTop, stmts: inc.Content.Statements, params: inc.Content.Params}
	}

	childCtx := *ctx
	childCtx.content = closure

	e.pushTrace(inc.Span(), fmt.Sprintf("mixin \"%s\"", inc.Name))
	defer e.popTrace()

	return e.evalStatements(mixin.Body, &childCtx, out)
}

// evalContent runs the content block captured at the enclosing mixin's
// @include call site, restoring the caller's scope for the block's
// duration and emitting into the same output position @content
// appears at inside the mixin body.
func (e *Evaluator) evalContent(rule *ast.ContentRule, ctx *blockCtx, out *[]css.Node) error {
	if ctx.content == nil {
		return e.runtimeErr(rule.Span(), "No content block was passed to this mixin.")
	}
	positional, kwargs, err := e.evalArgs(rule.Args)
	if err != nil {
		return err
	}

	savedTop := e.Scope.top
	e.Scope.top = newFrame(ctx.content.frame, len(ctx.content.params) > 0)
	defer func() { e.Scope.top = savedTop }()

	if len(ctx.content.params) > 0 {
		if err := e.bindParams(ctx.content.params, positional, kwargs, rule.Span(), "content block"); err != nil {
			return err
		}
	}

	contentCtx := *ctx
	contentCtx.content = nil
	return e.evalStatements(ctx.content.stmts, &contentCtx, out)
}
