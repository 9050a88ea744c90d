package eval

import (
	"fmt"

	"github.com/titpetric/sassgo/ast"
)

// serializeSupports reconstructs the literal `@supports` prelude text
// from a parsed condition tree, resolving any interpolation holes
// along the way. This is the text that actually reaches the CSS
// output; a browser, not this compiler, is what ultimately judges the
// feature query, so no further evaluation of the condition happens
// here or anywhere else.
func (e *Evaluator) serializeSupports(cond ast.SupportsCondition) (string, error) {
	switch c := cond.(type) {
	case *ast.SupportsDeclaration:
		name, err := e.evalInterpolation(&c.Name)
		if err != nil {
			return "", err
		}
		value, err := e.evalInterpolation(&c.Value)
		if err != nil {
			return "", err
		}
		return "(" + name + ": " + value + ")", nil
	case *ast.SupportsNegation:
		inner, err := e.serializeSupports(c.Condition)
		if err != nil {
			return "", err
		}
		return "not " + inner, nil
	case *ast.SupportsOperation:
		left, err := e.serializeSupports(c.Left)
		if err != nil {
			return "", err
		}
		right, err := e.serializeSupports(c.Right)
		if err != nil {
			return "", err
		}
		return left + " " + c.Op + " " + right, nil
	case *ast.SupportsInterpolation:
		return e.evalInterpolation(&c.Interp)
	case *ast.SupportsRaw:
		return e.evalInterpolation(&c.Text)
	default:
		return "", fmt.Errorf("unsupported @supports condition %T", cond)
	}
}
