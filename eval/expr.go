package eval

import (
	"fmt"
	"strings"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/builtin"
	"github.com/titpetric/sassgo/value"
)

// evalExpr walks one expression node to a runtime value. Grounded on
// renderer.go's renderValue/evaluateBinaryOp/evaluateFunction switch,
// replacing its string-formatted ast.Value with the typed value.Value
// sum type and its name-switch function dispatch with builtin.Table
// plus user @function lookup.
func (e *Evaluator) evalExpr(expr ast.Expr) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.NumberLit:
		return value.NewNumberUnit(n.Value, n.Unit), nil
	case *ast.HexColorLit:
		return parseHexColor(n.Text)
	case *ast.StringLit:
		text, err := e.evalInterpolation(&n.Text)
		if err != nil {
			return nil, err
		}
		if n.Quoted {
			return &value.String{Text: text, Quoted: true}, nil
		}
		return value.NewUnquoted(text), nil
	case *ast.BoolLit:
		if n.Value {
			return value.True, nil
		}
		return value.False, nil
	case *ast.NullLit:
		return value.NullValue, nil
	case *ast.VarRef:
		scope, err := e.resolveScope(n.Namespace)
		if err != nil {
			return nil, e.runtimeErr(n.Span(), "%s", err)
		}
		v, ok := scope.LookupVar(n.Name)
		if !ok {
			return nil, e.runtimeErr(n.Span(), "Undefined variable.")
		}
		return v, nil
	case *ast.InterpolatedExpr:
		text, err := e.evalInterpolation(&n.Interp)
		if err != nil {
			return nil, err
		}
		return value.NewUnquoted(text), nil
	case *ast.Call:
		return e.evalCall(n)
	case *ast.IfCall:
		cond, err := e.evalExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		if cond.Truthy() {
			return e.evalExpr(n.Then)
		}
		return e.evalExpr(n.Else)
	case *ast.ListExpr:
		elems := make([]value.Value, len(n.Elems))
		for i, el := range n.Elems {
			v, err := e.evalExpr(el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		sep := value.SepSpace
		switch n.Sep {
		case ast.SepComma:
			sep = value.SepComma
		case ast.SepUndecided:
			sep = value.SepUndecided
		}
		return &value.List{Elems: elems, Sep: sep, Bracketed: n.Bracketed}, nil
	case *ast.MapExpr:
		m := value.NewMap()
		for i, k := range n.Keys {
			kv, err := e.evalExpr(k)
			if err != nil {
				return nil, err
			}
			vv, err := e.evalExpr(n.Vals[i])
			if err != nil {
				return nil, err
			}
			m.Set(kv, vv)
		}
		return m, nil
	case *ast.Paren:
		return e.evalExpr(n.Inner)
	case *ast.Unary:
		v, err := e.evalExpr(n.Operand)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case "-":
			return value.UnaryMinus(v)
		case "not":
			return value.UnaryNot(v), nil
		case "+":
			return v, nil
		}
		return nil, e.runtimeErr(n.Span(), "unknown unary operator %q", n.Op)
	case *ast.Binary:
		return e.evalBinary(n)
	case *ast.ParentSelectorExpr:
		if e.currentSelector == nil {
			return nil, e.runtimeErr(n.Span(), "Top-level selectors may not contain the parent selector \"&\".")
		}
		return value.NewUnquoted(e.currentSelector.String()), nil
	default:
		return nil, e.runtimeErr(expr.Span(), "unsupported expression node %T", expr)
	}
}

func (e *Evaluator) evalBinary(n *ast.Binary) (value.Value, error) {
	// "and"/"or" short-circuit: the right operand must not be evaluated
	// (and its side effects, if any function call has some, skipped)
	// unless it's needed, per spec.md §4.2.
	if n.Op == "and" || n.Op == "or" {
		l, err := e.evalExpr(n.Left)
		if err != nil {
			return nil, err
		}
		if n.Op == "and" && !l.Truthy() {
			return l, nil
		}
		if n.Op == "or" && l.Truthy() {
			return l, nil
		}
		return e.evalExpr(n.Right)
	}

	l, err := e.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	r, err := e.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}
	if n.Op == "/" && n.MaybeSlash {
		if _, ok := l.(*value.Number); ok {
			if _, ok := r.(*value.Number); ok {
				return value.NewList([]value.Value{l, r}, value.SepSlash), nil
			}
		}
	}
	v, err := value.BinaryOp(n.Op, l, r)
	if err != nil {
		return nil, e.runtimeErr(n.Span(), "%s", err)
	}
	return v, nil
}

// evalInterpolation substitutes every "#{...}" hole, rendering each
// expression's value the way it would appear in CSS text (Value.String,
// never the quoted form), and concatenates it with the surrounding
// literal fragments. Grounded on renderer.go's resolveInterpolation,
// generalized from a regexp substitution over raw source text to a walk
// over the already-tokenized Parts/Exprs pair the lexer produced.
func (e *Evaluator) evalInterpolation(interp *ast.Interpolation) (string, error) {
	if interp.Plain() {
		return interp.PlainText(), nil
	}
	var b strings.Builder
	for i, part := range interp.Parts {
		b.WriteString(part)
		if i < len(interp.Exprs) {
			v, err := e.evalExpr(interp.Exprs[i])
			if err != nil {
				return "", err
			}
			b.WriteString(v.String())
		}
	}
	return b.String(), nil
}

// evalCall resolves a function call: a user @function definition first,
// then a sass: built-in module function, then a host function
// registered via the "functions" compile option, then a flat built-in
// lookup for legacy unprefixed names, and finally a plain CSS function
// passthrough -- mirroring renderer.go's evaluateFunction falling back
// to IsRegisteredFunction/emitting the call literally.
func (e *Evaluator) evalCall(call *ast.Call) (value.Value, error) {
	if call.Namespace != "" {
		if mod, ok := e.builtinNS[call.Namespace]; ok {
			if entry := findBuiltin(mod, call.Name); entry != nil {
				return e.callBuiltin(call, entry)
			}
			return nil, e.runtimeErr(call.Span(), "Undefined function.")
		}
		scope, err := e.resolveScope(call.Namespace)
		if err != nil {
			return nil, e.runtimeErr(call.Span(), "%s", err)
		}
		if fn, ok := scope.LookupFunc(call.Name); ok {
			return e.callUserFunction(call, fn, scope)
		}
		return nil, e.runtimeErr(call.Span(), "Undefined function.")
	}

	if fn, ok := e.Scope.LookupFunc(call.Name); ok {
		return e.callUserFunction(call, fn, e.Scope)
	}
	if entry, ok := e.HostFunctions[call.Name]; ok {
		return e.callBuiltin(call, entry)
	}
	if entry, ok := builtin.Table()[call.Name]; ok {
		return e.callBuiltin(call, entry)
	}
	return e.plainCSSCall(call)
}

func findBuiltin(module, name string) *builtin.Entry {
	if e, ok := builtin.Table()[name]; ok && e.Module == module {
		return e
	}
	return nil
}

// callBuiltin evaluates a call's arguments positionally/by-keyword and
// invokes a built-in Func, enforcing its declared arity.
func (e *Evaluator) callBuiltin(call *ast.Call, entry *builtin.Entry) (value.Value, error) {
	args, kwargs, err := e.evalArgs(call.Args)
	if err != nil {
		return nil, err
	}
	if len(args) < entry.MinArgs || (entry.MaxArgs >= 0 && len(args) > entry.MaxArgs) {
		return nil, e.runtimeErr(call.Span(), "%s() takes between %d and %d arguments.", entry.Name, entry.MinArgs, entry.MaxArgs)
	}
	v, err := entry.Fn(args, kwargs)
	if err != nil {
		return nil, e.runtimeErr(call.Span(), "%s", err)
	}
	return v, nil
}

// plainCSSCall renders an unrecognized bare call literally, the way an
// ordinary CSS function (rgb(), url(), var(), a vendor function dart-
// sass doesn't know about) passes through untouched.
func (e *Evaluator) plainCSSCall(call *ast.Call) (value.Value, error) {
	var b strings.Builder
	b.WriteString(call.Name)
	b.WriteByte('(')
	for i, a := range call.Args.Positional {
		if i > 0 {
			b.WriteString(", ")
		}
		v, err := e.evalExpr(a.Value)
		if err != nil {
			return nil, err
		}
		if a.Name != "" {
			b.WriteString("$" + a.Name + ": ")
		}
		b.WriteString(v.String())
	}
	if call.Args.Rest != nil {
		v, err := e.evalExpr(call.Args.Rest)
		if err != nil {
			return nil, err
		}
		if len(call.Args.Positional) > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteByte(')')
	return value.NewUnquoted(b.String()), nil
}

// evalArgs evaluates a call's argument list into positional values plus
// a keyword map, expanding a trailing rest argument (a List/ArgList/Map)
// the way `...` forwarding does for a built-in call.
func (e *Evaluator) evalArgs(inv ast.ArgumentInvocation) ([]value.Value, map[string]value.Value, error) {
	var positional []value.Value
	var kwargs map[string]value.Value
	for _, a := range inv.Positional {
		v, err := e.evalExpr(a.Value)
		if err != nil {
			return nil, nil, err
		}
		if a.Name != "" {
			if kwargs == nil {
				kwargs = make(map[string]value.Value)
			}
			kwargs[a.Name] = v
			continue
		}
		positional = append(positional, v)
	}
	if inv.Rest != nil {
		v, err := e.evalExpr(inv.Rest)
		if err != nil {
			return nil, nil, err
		}
		switch rv := v.(type) {
		case *value.ArgList:
			positional = append(positional, rv.Elems...)
			for k, kv := range rv.Keywords {
				if kwargs == nil {
					kwargs = make(map[string]value.Value)
				}
				kwargs[k] = kv
			}
		case *value.List:
			positional = append(positional, rv.Elems...)
		case *value.Map:
			for i, k := range rv.Keys {
				name, ok := k.(*value.String)
				if !ok {
					return nil, nil, e.runtimeErr(inv.Span(), "Variable keyword arguments must be strings.")
				}
				if kwargs == nil {
					kwargs = make(map[string]value.Value)
				}
				kwargs[name.Text] = rv.Vals[i]
			}
		default:
			positional = append(positional, v)
		}
	}
	return positional, kwargs, nil
}

// parseHexColor converts a "#rgb"/"#rgba"/"#rrggbb"/"#rrggbbaa" literal
// into a Color, preserving its literal text for idempotent output.
func parseHexColor(text string) (value.Value, error) {
	hex := strings.TrimPrefix(text, "#")
	expand := func(c byte) (byte, byte) { return c, c }
	hexVal := func(c byte) int {
		switch {
		case c >= '0' && c <= '9':
			return int(c - '0')
		case c >= 'a' && c <= 'f':
			return int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			return int(c-'A') + 10
		}
		return 0
	}
	byteAt := func(hi, lo byte) int { return hexVal(hi)*16 + hexVal(lo) }

	var r, g, b int
	a := 1.0
	switch len(hex) {
	case 3, 4:
		rh, rl := expand(hex[0])
		gh, gl := expand(hex[1])
		bh, bl := expand(hex[2])
		r, g, b = byteAt(rh, rl), byteAt(gh, gl), byteAt(bh, bl)
		if len(hex) == 4 {
			ah, al := expand(hex[3])
			a = float64(byteAt(ah, al)) / 255
		}
	case 6, 8:
		r = byteAt(hex[0], hex[1])
		g = byteAt(hex[2], hex[3])
		b = byteAt(hex[4], hex[5])
		if len(hex) == 8 {
			a = float64(byteAt(hex[6], hex[7])) / 255
		}
	default:
		return nil, fmt.Errorf("invalid hex color %q", text)
	}
	c := value.ColorFromRGB(r, g, b, a)
	c.Repr = value.ReprHex6
	c.Text = text
	return c, nil
}
