package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo/lexer"
)

func kinds(toks []lexer.Token) []lexer.Kind {
	out := make([]lexer.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexerBasics(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []lexer.Kind
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []lexer.Kind{lexer.KindEOF},
		},
		{
			name:  "simple rule",
			input: "a { color: red; }",
			expected: []lexer.Kind{
				lexer.KindIdent, lexer.KindLBrace,
				lexer.KindIdent, lexer.KindColon, lexer.KindIdent, lexer.KindSemicolon,
				lexer.KindRBrace, lexer.KindEOF,
			},
		},
		{
			name:  "variable and hex color",
			input: "$primary: #fff;",
			expected: []lexer.Kind{
				lexer.KindVariable, lexer.KindColon, lexer.KindHexColor, lexer.KindSemicolon, lexer.KindEOF,
			},
		},
		{
			name:  "number with unit",
			input: "10px",
			expected: []lexer.Kind{
				lexer.KindNumber, lexer.KindEOF,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexer.New(tt.input, lexer.SyntaxSCSS).Tokenize()
			require.Equal(t, tt.expected, kinds(toks))
		})
	}
}

func TestLexerInterpolationInString(t *testing.T) {
	toks := lexer.New(`"a#{$b}c"`, lexer.SyntaxSCSS).Tokenize()
	got := kinds(toks)
	want := []lexer.Kind{
		lexer.KindStringStart, lexer.KindStringText,
		lexer.KindInterpStart, lexer.KindVariable, lexer.KindInterpEnd,
		lexer.KindStringText, lexer.KindStringEnd, lexer.KindEOF,
	}
	require.Equal(t, want, got)
}

func TestLexerInterpolationInSelector(t *testing.T) {
	toks := lexer.New(`.foo-#{$x} { }`, lexer.SyntaxSCSS).Tokenize()
	got := kinds(toks)
	want := []lexer.Kind{
		lexer.KindDot, lexer.KindIdent,
		lexer.KindInterpStart, lexer.KindVariable, lexer.KindInterpEnd,
		lexer.KindLBrace, lexer.KindRBrace, lexer.KindEOF,
	}
	require.Equal(t, want, got)
}

func TestLexerIndentedSyntaxEmitsIndentDedent(t *testing.T) {
	src := "a\n  color: red\nb\n  color: blue\n"
	toks := lexer.New(src, lexer.SyntaxSass).Tokenize()
	got := kinds(toks)
	require.Contains(t, got, lexer.KindIndent)
	require.Contains(t, got, lexer.KindDedent)
}

func TestLexerEscapesInString(t *testing.T) {
	toks := lexer.New(`"a\nb"`, lexer.SyntaxSCSS).Tokenize()
	require.Equal(t, lexer.KindStringStart, toks[0].Kind)
	require.Equal(t, lexer.KindStringText, toks[1].Kind)
	require.Equal(t, "a\nb", toks[1].Text)
}

func TestLexerKeywords(t *testing.T) {
	toks := lexer.New("not $a and $b or $c", lexer.SyntaxSCSS).Tokenize()
	got := kinds(toks)
	want := []lexer.Kind{
		lexer.KindNot, lexer.KindVariable, lexer.KindAnd, lexer.KindVariable,
		lexer.KindOr, lexer.KindVariable, lexer.KindEOF,
	}
	require.Equal(t, want, got)
}
