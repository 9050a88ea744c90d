package parser

import (
	"strconv"
	"strings"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/lexer"
)

// parseExpression is the top-level entry point: a comma-separated list
// layered above the operator-precedence ladder, since Sass list
// literals are not themselves precedence operators (spec.md §4.2).
func (p *Parser) parseExpression() (ast.Expr, error) {
	start := p.cur().Start
	first, err := p.parseSpaceList()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.KindComma) {
		return first, nil
	}
	elems := []ast.Expr{first}
	for p.match(lexer.KindComma) {
		if p.atListEnd() {
			break // trailing comma
		}
		e, err := p.parseSpaceList()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	return &ast.ListExpr{Elems: elems, Sep: ast.SepComma, NodeSpan: p.span(start)}, nil
}

func (p *Parser) atListEnd() bool {
	switch p.cur().Kind {
	case lexer.KindRParen, lexer.KindRBracket, lexer.KindSemicolon, lexer.KindLBrace,
		lexer.KindRBrace, lexer.KindColon, lexer.KindEOF:
		return true
	}
	return false
}

// parseSpaceList groups space-adjacent expressions ("1px solid red")
// into a single space-separated list.
func (p *Parser) parseSpaceList() (ast.Expr, error) {
	start := p.cur().Start
	first, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	var elems []ast.Expr
	for p.startsExpr() {
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if elems == nil {
		return first, nil
	}
	return &ast.ListExpr{Elems: append([]ast.Expr{first}, elems...), Sep: ast.SepSpace, NodeSpan: p.span(start)}, nil
}

// startsExpr reports whether the current token can begin another
// primary in a space list, used to decide whether to keep consuming
// elements of "1px solid red" without a separate lookahead grammar.
func (p *Parser) startsExpr() bool {
	switch p.cur().Kind {
	case lexer.KindIdent, lexer.KindVariable, lexer.KindNumber, lexer.KindHexColor,
		lexer.KindStringStart, lexer.KindLParen, lexer.KindLBracket, lexer.KindMinus,
		lexer.KindPlus, lexer.KindNot, lexer.KindAmpersand, lexer.KindInterpStart:
		return true
	}
	return false
}

func (p *Parser) parseOr() (ast.Expr, error) {
	start := p.cur().Start
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.KindOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: "or", Right: right, NodeSpan: p.span(start)}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	start := p.cur().Start
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.KindAnd) {
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: "and", Right: right, NodeSpan: p.span(start)}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	start := p.cur().Start
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch {
		case p.at(lexer.KindEq):
			op = "=="
		case p.at(lexer.KindNe):
			op = "!="
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right, NodeSpan: p.span(start)}
	}
}

func (p *Parser) parseRelational() (ast.Expr, error) {
	start := p.cur().Start
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch {
		case p.at(lexer.KindLt):
			op = "<"
		case p.at(lexer.KindLe):
			op = "<="
		case p.at(lexer.KindGt):
			op = ">"
		case p.at(lexer.KindGe):
			op = ">="
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right, NodeSpan: p.span(start)}
	}
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	start := p.cur().Start
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch {
		case p.at(lexer.KindPlus):
			op = "+"
		case p.at(lexer.KindMinus):
			op = "-"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right, NodeSpan: p.span(start)}
	}
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	start := p.cur().Start
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch {
		case p.at(lexer.KindStar):
			op = "*"
		case p.at(lexer.KindSlash):
			op = "/"
		case p.at(lexer.KindPercent):
			op = "%"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		maybeSlash := op == "/" && isNumberLike(left) && isNumberLike(right)
		left = &ast.Binary{Left: left, Op: op, Right: right, MaybeSlash: maybeSlash, NodeSpan: p.span(start)}
	}
}

func isNumberLike(e ast.Expr) bool {
	switch e.(type) {
	case *ast.NumberLit:
		return true
	}
	return false
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	start := p.cur().Start
	switch {
	case p.match(lexer.KindNot):
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: "not", Operand: operand, NodeSpan: p.span(start)}, nil
	case p.match(lexer.KindMinus):
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: "-", Operand: operand, NodeSpan: p.span(start)}, nil
	case p.match(lexer.KindPlus):
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: "+", Operand: operand, NodeSpan: p.span(start)}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	start := p.cur().Start
	switch p.cur().Kind {
	case lexer.KindNumber:
		tok := p.advance()
		val, unit := splitNumberText(tok.Text)
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, p.errf("invalid number %q", tok.Text)
		}
		return &ast.NumberLit{Value: f, Unit: unit, Repr: tok.Text, NodeSpan: p.span(start)}, nil

	case lexer.KindHexColor:
		tok := p.advance()
		return &ast.HexColorLit{Text: tok.Text, NodeSpan: p.span(start)}, nil

	case lexer.KindVariable:
		tok := p.advance()
		return &ast.VarRef{Name: strings.TrimPrefix(tok.Text, "$"), NodeSpan: p.span(start)}, nil

	case lexer.KindAmpersand:
		p.advance()
		return &ast.ParentSelectorExpr{NodeSpan: p.span(start)}, nil

	case lexer.KindStringStart:
		return p.parseStringLit()

	case lexer.KindInterpStart:
		p.advance()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.KindInterpEnd, "interpolation"); err != nil {
			return nil, err
		}
		interp := ast.Interpolation{Parts: []string{"", ""}, Exprs: []ast.Expr{e}, NodeSpan: p.span(start)}
		return &ast.InterpolatedExpr{Interp: interp, NodeSpan: p.span(start)}, nil

	case lexer.KindLParen:
		return p.parseParenOrMapOrList()

	case lexer.KindLBracket:
		return p.parseBracketedList()

	case lexer.KindIdent:
		return p.parseIdentLike()
	}
	return nil, p.errf("expected an expression, found %q", p.cur().Text)
}

// splitNumberText separates the lexer's combined "1.5e3deg"-shaped
// token text into its numeric and unit parts, mirroring the scan order
// lexer.Lexer.readNumber used to build that single token.
func splitNumberText(text string) (numPart, unit string) {
	i := 0
	for i < len(text) && isASCIIDigit(text[i]) {
		i++
	}
	if i < len(text) && text[i] == '.' && i+1 < len(text) && isASCIIDigit(text[i+1]) {
		i++
		for i < len(text) && isASCIIDigit(text[i]) {
			i++
		}
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < len(text) && (text[j] == '+' || text[j] == '-') {
			j++
		}
		if j < len(text) && isASCIIDigit(text[j]) {
			i = j
			for i < len(text) && isASCIIDigit(text[i]) {
				i++
			}
		}
	}
	return text[:i], text[i:]
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

// parseStringLit consumes a full KindStringStart..KindStringEnd run,
// reassembling its literal text and interpolation holes into an
// ast.Interpolation whose Parts/Exprs stay balanced even when a hole
// opens or closes the string with no adjacent literal run.
func (p *Parser) parseStringLit() (ast.Expr, error) {
	start := p.cur().Start
	p.advance() // opening quote

	var parts []string
	var exprs []ast.Expr
	for {
		switch p.cur().Kind {
		case lexer.KindStringText:
			parts = append(parts, p.advance().Text)
		case lexer.KindInterpStart:
			if len(parts) == len(exprs) {
				parts = append(parts, "")
			}
			p.advance()
			e, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.KindInterpEnd, "interpolation"); err != nil {
				return nil, err
			}
			exprs = append(exprs, e)
		case lexer.KindStringEnd:
			p.advance()
			if len(parts) == len(exprs) {
				parts = append(parts, "")
			}
			sp := p.span(start)
			return &ast.StringLit{
				Text:     ast.Interpolation{Parts: parts, Exprs: exprs, NodeSpan: sp},
				Quoted:   true,
				NodeSpan: sp,
			}, nil
		default:
			return nil, p.errf("unterminated string literal")
		}
	}
}

// parseIdentLike reads a bare identifier and decides among a keyword
// literal, a function call, a namespaced reference, and a plain
// unquoted string -- optionally fused with an immediately adjacent
// (no intervening whitespace) interpolation run, the shape
// "foo-#{$x}-bar" needs. An identifier immediately followed by "(" is
// always a call; namespacing ("mod.$var", "mod.func(...)") is only
// recognized when the dot directly touches both neighbors.
func (p *Parser) parseIdentLike() (ast.Expr, error) {
	start := p.cur().Start
	first := p.advance()

	if p.adjacent(first.End) && p.at(lexer.KindDot) {
		dot := p.cur()
		afterDot := p.peekAfter(1)
		if afterDot.Start == dot.End {
			switch afterDot.Kind {
			case lexer.KindVariable:
				p.advance() // dot
				v := p.advance()
				return &ast.VarRef{Namespace: first.Text, Name: strings.TrimPrefix(v.Text, "$"), NodeSpan: p.span(start)}, nil
			case lexer.KindIdent:
				savedPos := p.mark()
				p.advance() // dot
				name := p.advance()
				if p.adjacent(name.End) && p.at(lexer.KindLParen) {
					args, err := p.parseArgumentInvocation()
					if err != nil {
						return nil, err
					}
					return &ast.Call{Namespace: first.Text, Name: name.Text, Args: *args, NodeSpan: p.span(start)}, nil
				}
				p.reset(savedPos)
			}
		}
	}

	if p.adjacent(first.End) && p.at(lexer.KindLParen) {
		args, err := p.parseArgumentInvocation()
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(first.Text, "if") && args.Rest == nil && len(args.Positional) == 3 &&
			args.Positional[0].Name == "" && args.Positional[1].Name == "" && args.Positional[2].Name == "" {
			return &ast.IfCall{Cond: args.Positional[0].Value, Then: args.Positional[1].Value, Else: args.Positional[2].Value, NodeSpan: p.span(start)}, nil
		}
		return &ast.Call{Name: first.Text, Args: *args, NodeSpan: p.span(start)}, nil
	}

	switch strings.ToLower(first.Text) {
	case "true":
		return &ast.BoolLit{Value: true, NodeSpan: p.span(start)}, nil
	case "false":
		return &ast.BoolLit{Value: false, NodeSpan: p.span(start)}, nil
	case "null":
		return &ast.NullLit{NodeSpan: p.span(start)}, nil
	}

	if p.adjacent(first.End) && p.at(lexer.KindInterpStart) {
		parts := []string{first.Text}
		var exprs []ast.Expr
		for p.adjacent(p.prevEnd()) && (p.at(lexer.KindInterpStart) || p.at(lexer.KindIdent)) {
			if p.at(lexer.KindIdent) {
				parts[len(parts)-1] += p.advance().Text
				continue
			}
			p.advance()
			e, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.KindInterpEnd, "interpolation"); err != nil {
				return nil, err
			}
			exprs = append(exprs, e)
			parts = append(parts, "")
		}
		return &ast.StringLit{
			Text:     ast.Interpolation{Parts: parts, Exprs: exprs, NodeSpan: p.span(start)},
			Quoted:   false,
			NodeSpan: p.span(start),
		}, nil
	}

	return &ast.StringLit{
		Text:     *ast.NewPlainInterpolation(first.Text, p.span(start)),
		Quoted:   false,
		NodeSpan: p.span(start),
	}, nil
}

// adjacent reports whether the current token directly touches the
// given end offset, i.e. no whitespace or comment separates them --
// the signal used throughout parseIdentLike to tell "foo(" (a call)
// from "foo (" (a space-separated list of an ident and a parenthesized
// expression).
func (p *Parser) adjacent(end int) bool { return p.cur().Start == end }

func (p *Parser) peekAfter(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

// parseParenOrMapOrList disambiguates "(" into a parenthesized
// expression, a map literal, or a comma/space list, per the first
// element's trailing ":" -- the one place Sass's grammar genuinely
// needs a lookahead rather than pure precedence climbing.
func (p *Parser) parseParenOrMapOrList() (ast.Expr, error) {
	start := p.cur().Start
	p.advance() // (
	if p.match(lexer.KindRParen) {
		return &ast.ListExpr{Sep: ast.SepComma, NodeSpan: p.span(start)}, nil
	}

	firstKey, err := p.parseSpaceList()
	if err != nil {
		return nil, err
	}
	if p.match(lexer.KindColon) {
		firstVal, err := p.parseSpaceList()
		if err != nil {
			return nil, err
		}
		keys := []ast.Expr{firstKey}
		vals := []ast.Expr{firstVal}
		for p.match(lexer.KindComma) {
			k, err := p.parseSpaceList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.KindColon, "map entry"); err != nil {
				return nil, err
			}
			v, err := p.parseSpaceList()
			if err != nil {
				return nil, err
			}
			keys = append(keys, k)
			vals = append(vals, v)
		}
		if _, err := p.expect(lexer.KindRParen, "map literal"); err != nil {
			return nil, err
		}
		return &ast.MapExpr{Keys: keys, Vals: vals, NodeSpan: p.span(start)}, nil
	}

	if p.at(lexer.KindComma) {
		elems := []ast.Expr{firstKey}
		for p.match(lexer.KindComma) {
			if p.at(lexer.KindRParen) {
				break
			}
			e, err := p.parseSpaceList()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		if _, err := p.expect(lexer.KindRParen, "parenthesized list"); err != nil {
			return nil, err
		}
		return &ast.ListExpr{Elems: elems, Sep: ast.SepComma, NodeSpan: p.span(start)}, nil
	}

	if _, err := p.expect(lexer.KindRParen, "parenthesized expression"); err != nil {
		return nil, err
	}
	return &ast.Paren{Inner: firstKey, NodeSpan: p.span(start)}, nil
}

func (p *Parser) parseBracketedList() (ast.Expr, error) {
	start := p.cur().Start
	p.advance() // [
	if p.match(lexer.KindRBracket) {
		return &ast.ListExpr{Bracketed: true, Sep: ast.SepComma, NodeSpan: p.span(start)}, nil
	}
	first, err := p.parseSpaceList()
	if err != nil {
		return nil, err
	}
	elems := []ast.Expr{first}
	sep := ast.SepUndecided
	if p.at(lexer.KindComma) {
		sep = ast.SepComma
		for p.match(lexer.KindComma) {
			if p.at(lexer.KindRBracket) {
				break
			}
			e, err := p.parseSpaceList()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
	}
	if _, err := p.expect(lexer.KindRBracket, "bracketed list"); err != nil {
		return nil, err
	}
	return &ast.ListExpr{Elems: elems, Sep: sep, Bracketed: true, NodeSpan: p.span(start)}, nil
}
