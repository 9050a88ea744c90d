package parser

import (
	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/lexer"
)

// captureInterpolation slices literal text directly out of the original
// source between expression holes -- never from reassembled token
// text -- so whitespace inside a selector prelude, property name, or
// at-rule prelude survives byte-for-byte until the evaluator re-parses
// it, per spec.md §4.1 "selectors are parsed lazily". It stops at the
// first token for which stop returns true, without consuming it;
// whitespace between the last literal text and that token is dropped.
func (p *Parser) captureInterpolation(stop func(lexer.Kind) bool) (ast.Interpolation, error) {
	overallStart := p.cur().Start
	var parts []string
	var exprs []ast.Expr
	literalStart := p.cur().Start

	for {
		if p.at(lexer.KindEOF) {
			break
		}
		if p.at(lexer.KindInterpStart) {
			parts = append(parts, p.src[literalStart:p.cur().Start])
			p.advance()
			e, err := p.parseExpression()
			if err != nil {
				return ast.Interpolation{}, err
			}
			exprs = append(exprs, e)
			if _, err := p.expect(lexer.KindInterpEnd, "interpolation"); err != nil {
				return ast.Interpolation{}, err
			}
			literalStart = p.prevEnd()
			continue
		}
		if stop(p.cur().Kind) {
			break
		}
		p.advance()
	}
	end := p.cur().Start
	for end > literalStart && (p.src[end-1] == ' ' || p.src[end-1] == '\t' || p.src[end-1] == '\r' || p.src[end-1] == '\n') {
		end--
	}
	parts = append(parts, p.src[literalStart:end])
	return ast.Interpolation{Parts: parts, Exprs: exprs, NodeSpan: p.span(overallStart)}, nil
}

// captureBalancedRaw is captureInterpolation's counterpart for text
// that may itself contain parens/brackets the caller doesn't want to
// stop inside of (an @supports function-like condition such as
// "selector(.foo > .bar)"). It always stops at an unmatched closing
// paren/bracket, in addition to whatever stopTop names for top-level
// (depth-zero) tokens.
func (p *Parser) captureBalancedRaw(stopTop func(lexer.Kind) bool) (ast.Interpolation, error) {
	overallStart := p.cur().Start
	var parts []string
	var exprs []ast.Expr
	literalStart := p.cur().Start
	depth := 0

	for {
		if p.at(lexer.KindEOF) {
			break
		}
		k := p.cur().Kind
		if k == lexer.KindRParen || k == lexer.KindRBracket {
			if depth == 0 {
				break
			}
			depth--
			p.advance()
			continue
		}
		if depth == 0 && stopTop(k) {
			break
		}
		if k == lexer.KindInterpStart {
			parts = append(parts, p.src[literalStart:p.cur().Start])
			p.advance()
			e, err := p.parseExpression()
			if err != nil {
				return ast.Interpolation{}, err
			}
			exprs = append(exprs, e)
			if _, err := p.expect(lexer.KindInterpEnd, "interpolation"); err != nil {
				return ast.Interpolation{}, err
			}
			literalStart = p.prevEnd()
			continue
		}
		if k == lexer.KindLParen || k == lexer.KindLBracket {
			depth++
		}
		p.advance()
	}
	parts = append(parts, p.src[literalStart:p.cur().Start])
	return ast.Interpolation{Parts: parts, Exprs: exprs, NodeSpan: p.span(overallStart)}, nil
}

func stopAtBrace(k lexer.Kind) bool { return k == lexer.KindLBrace }

func stopAtBraceOrSemi(k lexer.Kind) bool {
	return k == lexer.KindLBrace || k == lexer.KindRBrace || k == lexer.KindSemicolon
}

func stopAtColon(k lexer.Kind) bool { return k == lexer.KindColon }
