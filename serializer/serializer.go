// Package serializer turns a resolved css.Stylesheet into output text
// plus an optional version-3 source map, per spec.md §4.6/§4.8.
//
// Grounded on formatter/formatter.go's indent-tracking
// Formatter{indent int}, which walked the prior implementation's own AST directly
// with a writeIndent/brace/semicolon shape. This package keeps that
// shape but walks the already-resolved css tree instead (no variables,
// no nesting left to flatten), and adds a second, no-indent
// "compressed" style the prior implementation never had.
package serializer

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/titpetric/sassgo/css"
	"github.com/titpetric/sassgo/diag"
)

// Style selects the output mode spec.md §4.6 names.
type Style int

const (
	StyleExpanded Style = iota
	StyleCompressed
)

// Options controls Serialize's output.
type Options struct {
	Style Style

	// SourceMap, when true, makes Serialize also return a version-3
	// source map alongside the CSS text.
	SourceMap bool

	// OutputURL is the "file" field of the emitted source map, and
	// also what the trailing `/*# sourceMappingURL=... */` comment (in
	// expanded mode) points at when EmbedMap is false.
	OutputURL string

	// EmbedSources copies each referenced SourceFile's full text into
	// the map's sourcesContent array instead of leaving the map to
	// reference sources by URL only -- spec.md §9's Open Question,
	// decided off by default (see DESIGN.md).
	EmbedSources bool

	// EmbedMap inlines the whole source map as a base64 `data:` URL
	// inside the generated sourceMappingURL comment instead of pointing
	// at OutputURL+".map" on disk, per spec.md §6's
	// `source_map_embed` option.
	EmbedMap bool

	// Charset controls whether Serialize prepends an encoding marker
	// when the rendered CSS contains non-ASCII text: `@charset
	// "UTF-8";` in expanded mode, a UTF-8 BOM in compressed mode, per
	// spec.md §4.6. A stylesheet that never escapes ASCII gets neither
	// regardless of this flag.
	Charset bool
}

// Result is Serialize's output: the rendered CSS text and, when
// Options.SourceMap was set, its companion source map JSON.
type Result struct {
	CSS       string
	SourceMap string
}

// Serialize renders sheet per opts. files is the same []*diag.SourceFile
// table the compiling Evaluator accumulated, used to resolve each node's
// Span back to a file/line/column for the source map.
func Serialize(sheet *css.Stylesheet, files []*diag.SourceFile, opts Options) (Result, error) {
	s := &serializer{
		files:   files,
		opts:    opts,
		compact: opts.Style == StyleCompressed,
	}
	s.writeNodes(sheet.Nodes, true)

	text := s.output.String()
	if opts.Charset && containsNonASCII(text) {
		if s.compact {
			text = "﻿" + text
		} else {
			text = "@charset \"UTF-8\";\n" + text
		}
	}

	result := Result{CSS: text}
	if opts.SourceMap {
		result.SourceMap = s.buildSourceMap()
		if !s.compact {
			if opts.EmbedMap {
				encoded := base64.StdEncoding.EncodeToString([]byte(result.SourceMap))
				result.CSS += "\n/*# sourceMappingURL=data:application/json;base64," + encoded + " */\n"
			} else {
				result.CSS += "\n/*# sourceMappingURL=" + opts.OutputURL + ".map */\n"
			}
		}
	}
	return result, nil
}

// serializer holds the walk's mutable state: the growing output buffer,
// the current indent depth (expanded mode only), and the line/column
// mappings recorded as each node is written, for the source map pass.
type serializer struct {
	files   []*diag.SourceFile
	opts    Options
	compact bool

	output bytes.Buffer
	indent int

	line, col int // current position in output, 0-based for VLQ math
	mappings  []mapping
}

// mapping is one source-map segment: where in the generated output a
// node started, and where in its original source it came from.
type mapping struct {
	genLine, genCol int
	source          int
	srcLine, srcCol int
}

func (s *serializer) writeIndent() {
	if s.compact {
		return
	}
	for i := 0; i < s.indent*2; i++ {
		s.write(" ")
	}
}

// write appends text to the output buffer, keeping the serializer's
// line/column counters in sync for source-map emission.
func (s *serializer) write(text string) {
	for _, r := range text {
		if r == '\n' {
			s.line++
			s.col = 0
		} else {
			s.col++
		}
	}
	s.output.WriteString(text)
}

// mark records a mapping from the output's current position back to
// sp, called at the start of every node the serializer writes.
func (s *serializer) mark(sp diag.Span) {
	if !s.opts.SourceMap || sp.Source < 0 || sp.Source >= len(s.files) {
		return
	}
	line, col, _ := diag.Line(s.files[sp.Source], sp.Start)
	s.mappings = append(s.mappings, mapping{
		genLine: s.line, genCol: s.col,
		source: sp.Source, srcLine: line - 1, srcCol: col - 1,
	})
}

func (s *serializer) writeNodes(nodes []css.Node, topLevel bool) {
	for i, n := range nodes {
		if !s.compact && i > 0 && topLevel {
			s.write("\n")
		}
		s.writeNode(n)
	}
}

func (s *serializer) writeNode(n css.Node) {
	switch node := n.(type) {
	case *css.Charset:
		s.mark(node.Span())
		s.write(`@charset "` + node.Encoding + `";`)
		s.newlineIfExpanded()
	case *css.Comment:
		if s.compact {
			return
		}
		s.mark(node.Span())
		s.writeIndent()
		s.write(node.Text)
		s.write("\n")
	case *css.Import:
		s.mark(node.Span())
		s.writeIndent()
		s.write(`@import "` + node.URL + `"`)
		if node.Media != "" {
			s.write(" " + node.Media)
		}
		s.write(";")
		s.newlineIfExpanded()
	case *css.StyleRule:
		s.writeStyleRule(node)
	case *css.AtRule:
		s.writeAtRule(node)
	case *css.Declaration:
		s.writeDeclaration(node)
	}
}

func (s *serializer) newlineIfExpanded() {
	if !s.compact {
		s.write("\n")
	}
}

func (s *serializer) writeStyleRule(rule *css.StyleRule) {
	s.mark(rule.Span())
	s.writeIndent()
	s.write(serializeSelectorList(rule.Selector, s.compact))
	s.write("{")
	s.newlineIfExpanded()
	s.indent++
	s.writeBody(rule.Body)
	s.indent--
	s.writeIndent()
	s.write("}")
	s.newlineIfExpanded()
}

func (s *serializer) writeAtRule(rule *css.AtRule) {
	s.mark(rule.Span())
	s.writeIndent()
	s.write("@" + rule.Name)
	if rule.Prelude != "" {
		s.write(" " + rule.Prelude)
	}
	if rule.Body == nil {
		s.write(";")
		s.newlineIfExpanded()
		return
	}
	if !s.compact {
		s.write(" ")
	}
	s.write("{")
	s.newlineIfExpanded()
	s.indent++
	s.writeBody(rule.Body)
	s.indent--
	s.writeIndent()
	s.write("}")
	s.newlineIfExpanded()
}

// writeBody writes a block's contents -- a mix of declarations, nested
// rules, comments and at-rules -- tracking each declaration's position
// against the body so only the block's last declaration can drop its
// trailing semicolon in compressed mode. Used for style-rule bodies,
// every at-rule body (including @font-face/@page's flat declaration
// lists and @keyframes' list of keyframe StyleRules), and, via
// writeNodes, the stylesheet root itself.
func (s *serializer) writeBody(body []css.Node) {
	for i, n := range body {
		if decl, ok := n.(*css.Declaration); ok {
			s.writeDeclarationInline(decl, i == len(body)-1)
			continue
		}
		s.writeNode(n)
	}
}

func (s *serializer) writeDeclaration(decl *css.Declaration) {
	s.writeDeclarationInline(decl, true)
}

// writeDeclarationInline writes one "name: value" pair. last controls
// whether the trailing semicolon can be dropped in compressed mode --
// the final declaration of a block never needs one.
func (s *serializer) writeDeclarationInline(decl *css.Declaration, last bool) {
	s.mark(decl.Span())
	s.writeIndent()
	s.write(decl.Name)
	if s.compact {
		s.write(":")
	} else {
		s.write(": ")
	}
	value := decl.Value
	if s.compact {
		value = compressValue(value)
	}
	s.write(value)
	if decl.Important {
		s.write(" !important")
	}
	if decl.NestedBody != nil {
		s.write("{")
		s.newlineIfExpanded()
		s.indent++
		s.writeBody(decl.NestedBody)
		s.indent--
		s.writeIndent()
		s.write("}")
	} else if !s.compact || !last {
		s.write(";")
	}
	s.newlineIfExpanded()
}

// serializeSelectorList normalizes the comma spacing of an already-
// resolved selector list string: "a, b" in expanded mode, "a,b" in
// compressed mode, followed by a single space before the opening brace
// (expanded) or none at all (compressed).
func serializeSelectorList(sel string, compact bool) string {
	parts := strings.Split(sel, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	sep := ", "
	suffix := " "
	if compact {
		sep = ","
		suffix = ""
	}
	return strings.Join(parts, sep) + suffix
}

// compressValue applies the text-level minifications spec.md §4.6
// describes for compressed mode that value.Number/value.Color's own
// String() methods (already baked into decl.Value by eval time) don't
// do on their own: strip a redundant leading zero before a decimal
// point ("0.5" -> ".5", "-0.5" -> "-.5").
func compressValue(v string) string {
	var out strings.Builder
	out.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '0' && i+1 < len(v) && v[i+1] == '.' {
			prevIsDigit := i > 0 && isDigit(v[i-1])
			if !prevIsDigit {
				continue
			}
		}
		out.WriteByte(c)
	}
	return out.String()
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func containsNonASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return true
		}
	}
	return false
}
