package parser

import (
	"strings"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/lexer"
)

// parseArgumentInvocation parses a call's "(args)" list: the opening
// paren is expected to be the current token. A leading "$name:" marks a
// keyword argument; a trailing "<expr>..." marks the rest-argument that
// expands into both positional and keyword arguments at call time.
func (p *Parser) parseArgumentInvocation() (*ast.ArgumentInvocation, error) {
	start := p.cur().Start
	if _, err := p.expect(lexer.KindLParen, "argument list"); err != nil {
		return nil, err
	}
	inv := &ast.ArgumentInvocation{}
	for !p.at(lexer.KindRParen) {
		arg, rest, err := p.parseOneArgument()
		if err != nil {
			return nil, err
		}
		if rest {
			inv.Rest = arg.Value
		} else {
			inv.Positional = append(inv.Positional, arg)
		}
		if !p.match(lexer.KindComma) {
			break
		}
	}
	if _, err := p.expect(lexer.KindRParen, "argument list"); err != nil {
		return nil, err
	}
	inv.NodeSpan = p.span(start)
	return inv, nil
}

func (p *Parser) parseOneArgument() (ast.Argument, bool, error) {
	name := ""
	if p.at(lexer.KindVariable) && p.peekAfter(1).Kind == lexer.KindColon {
		name = strings.TrimPrefix(p.advance().Text, "$")
		p.advance() // colon
	}
	val, err := p.parseSpaceList()
	if err != nil {
		return ast.Argument{}, false, err
	}
	if p.match(lexer.KindEllipsis) {
		return ast.Argument{Name: name, Value: val}, true, nil
	}
	return ast.Argument{Name: name, Value: val}, false, nil
}

// parseParameterList parses a @mixin/@function declaration's
// "(params)" list: each parameter is "$name", "$name: default", or a
// final "$name...".
func (p *Parser) parseParameterList() ([]ast.Parameter, error) {
	if _, err := p.expect(lexer.KindLParen, "parameter list"); err != nil {
		return nil, err
	}
	var params []ast.Parameter
	for !p.at(lexer.KindRParen) {
		tok, err := p.expect(lexer.KindVariable, "parameter")
		if err != nil {
			return nil, err
		}
		param := ast.Parameter{Name: strings.TrimPrefix(tok.Text, "$")}
		if p.match(lexer.KindEllipsis) {
			param.Rest = true
			params = append(params, param)
			break
		}
		if p.match(lexer.KindColon) {
			def, err := p.parseSpaceList()
			if err != nil {
				return nil, err
			}
			param.Default = def
		}
		params = append(params, param)
		if !p.match(lexer.KindComma) {
			break
		}
	}
	if _, err := p.expect(lexer.KindRParen, "parameter list"); err != nil {
		return nil, err
	}
	return params, nil
}
