// Package parser implements the two Sass parser entry points (SCSS and
// the indented syntax) sharing one recursive-descent grammar.
//
// Grounded on parser/parser.go: a Parser holding a token slice and a
// pos cursor, walked with peek/check/match/advance, backtracking via
// "save pos, try, restore pos on failure" rather than a parser
// generator. sassgo generalizes the prior implementation's single LESS grammar into
// the two-syntax, full-operator-precedence, lazily-parsed-selector
// grammar spec.md §4.1 requires; see SPEC_FULL.md §4.1 for the mapping
// of each generalization to its grounding source.
package parser

import (
	"fmt"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/diag"
	"github.com/titpetric/sassgo/lexer"
)

// Parser walks one token stream produced by lexer.Lexer.
type Parser struct {
	src       string
	url       string
	syntax    lexer.Syntax
	sourceIdx int
	toks      []lexer.Token
	pos       int
}

// New constructs a Parser for src. sourceIdx is the index this source
// occupies in the compile call's diag.SourceFile table, stamped onto
// every span the parser produces.
func New(src, url string, syntax lexer.Syntax, sourceIdx int) *Parser {
	toks := lexer.New(src, syntax).Tokenize()
	toks = stripComments(toks)
	if syntax == lexer.SyntaxSass {
		toks = desugarIndentation(toks)
	}
	return &Parser{src: src, url: url, syntax: syntax, sourceIdx: sourceIdx, toks: toks}
}

// stripComments removes silent comments from the stream (they carry no
// output and the grammar never needs to see them) and hands loud
// comments back as a side list consulted by the statement parser via
// loudCommentBefore, keeping the main grammar comment-free the way the
// prior implementation's ExtractComments pre-pass kept comments out of
// its own token walk.
func stripComments(in []lexer.Token) []lexer.Token {
	out := make([]lexer.Token, 0, len(in))
	for _, t := range in {
		if t.Kind == lexer.KindSilentComment {
			continue
		}
		out = append(out, t)
	}
	return out
}

// desugarIndentation rewrites the indented syntax's KindIndent/
// KindDedent/KindNewline tokens into the brace-and-semicolon shape the
// shared statement grammar already understands, so SCSS and Sass
// share one recursive-descent walk past this point: KindIndent becomes
// KindLBrace, KindDedent becomes KindRBrace, and a KindNewline that
// isn't immediately followed by KindIndent/KindDedent becomes
// KindSemicolon (a plain statement separator).
func desugarIndentation(in []lexer.Token) []lexer.Token {
	out := make([]lexer.Token, 0, len(in))
	for i, t := range in {
		switch t.Kind {
		case lexer.KindIndent:
			out = append(out, lexer.Token{Kind: lexer.KindLBrace, Text: "", Start: t.Start, End: t.Start})
		case lexer.KindDedent:
			out = append(out, lexer.Token{Kind: lexer.KindRBrace, Text: "", Start: t.Start, End: t.Start})
		case lexer.KindNewline:
			if i+1 < len(in) && (in[i+1].Kind == lexer.KindIndent || in[i+1].Kind == lexer.KindDedent) {
				continue
			}
			out = append(out, lexer.Token{Kind: lexer.KindSemicolon, Text: "", Start: t.Start, End: t.Start})
		default:
			out = append(out, t)
		}
	}
	return out
}

func (p *Parser) cur() lexer.Token { return p.toks[p.pos] }

func (p *Parser) at(k lexer.Kind) bool { return p.cur().Kind == k }

func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if t.Kind != lexer.KindEOF {
		p.pos++
	}
	return t
}

func (p *Parser) match(k lexer.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(k lexer.Kind, context string) (lexer.Token, error) {
	if p.at(k) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errf("expected %s while parsing %s, found %q", kindName(k), context, p.cur().Text)
}

func (p *Parser) span(start int) diag.Span {
	return diag.Span{Start: start, End: p.prevEnd(), Source: p.sourceIdx}
}

func (p *Parser) prevEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.toks[p.pos-1].End
}

func (p *Parser) errf(format string, args ...interface{}) error {
	return &diag.ParseError{
		Span:    diag.Span{Start: p.cur().Start, End: p.cur().End, Source: p.sourceIdx},
		Message: fmt.Sprintf(format, args...),
	}
}

// mark/reset implement the prior implementation's "savedPos := p.pos; ...; p.pos =
// savedPos" backtracking idiom (parser/parser.go's parseRule/
// isMixinCall), generalized into the five-rule declaration-vs-selector
// policy below (stmt.go).
func (p *Parser) mark() int      { return p.pos }
func (p *Parser) reset(pos int) { p.pos = pos }

func kindName(k lexer.Kind) string {
	names := map[lexer.Kind]string{
		lexer.KindLBrace: "{", lexer.KindRBrace: "}", lexer.KindLParen: "(", lexer.KindRParen: ")",
		lexer.KindColon: ":", lexer.KindSemicolon: ";", lexer.KindComma: ",",
		lexer.KindIdent: "identifier", lexer.KindVariable: "variable", lexer.KindEOF: "end of input",
	}
	if n, ok := names[k]; ok {
		return n
	}
	return "token"
}

// ParseStylesheet is the shared top-level entry point for both syntax
// modes -- the generalized Parse() of the prior implementation.
func ParseStylesheet(src, url string, syntax lexer.Syntax, sourceIdx int) (*ast.Stylesheet, error) {
	p := New(src, url, syntax, sourceIdx)
	start := p.cur().Start
	var stmts []ast.Statement
	for !p.at(lexer.KindEOF) {
		if p.match(lexer.KindSemicolon) {
			continue
		}
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if st != nil {
			stmts = append(stmts, st)
		}
	}
	return &ast.Stylesheet{URL: url, Statements: stmts, NodeSpan: p.span(start)}, nil
}
