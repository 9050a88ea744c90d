// Package diag carries source spans, the typed error kinds raised across
// the compiler, and the warning/debug logger.
package diag

import "fmt"

// SourceFile is one loaded stylesheet: its canonical URL and its text.
// Spans index into a table of these so the printer can always recover
// the original text, even across imports.
type SourceFile struct {
	URL  string
	Text string
}

// Span identifies a byte range inside one SourceFile. Spans are used
// exclusively for diagnostics and source maps; they never participate
// in structural equality of AST or value nodes.
type Span struct {
	Start, End int
	Source     int // index into the Compile call's []*SourceFile table
}

// Line reports the 1-based line and column of offset within file, plus
// the full text of that line (without its trailing newline).
func Line(file *SourceFile, offset int) (line, col int, text string) {
	if file == nil || offset < 0 || offset > len(file.Text) {
		return 1, 1, ""
	}
	line = 1
	lineStart := 0
	for i := 0; i < offset && i < len(file.Text); i++ {
		if file.Text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	lineEnd := len(file.Text)
	if idx := indexByte(file.Text[lineStart:], '\n'); idx >= 0 {
		lineEnd = lineStart + idx
	}
	col = offset - lineStart + 1
	return line, col, file.Text[lineStart:lineEnd]
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// Highlight renders a caret-underlined excerpt of the span's source
// line, in the style every CLI Sass/LESS-family tool prints on error.
func Highlight(files []*SourceFile, sp Span) string {
	if sp.Source < 0 || sp.Source >= len(files) {
		return ""
	}
	file := files[sp.Source]
	line, col, text := Line(file, sp.Start)
	width := sp.End - sp.Start
	if width < 1 {
		width = 1
	}
	if col-1+width > len(text) {
		width = len(text) - (col - 1)
		if width < 1 {
			width = 1
		}
	}
	caret := ""
	for i := 0; i < col-1; i++ {
		caret += " "
	}
	for i := 0; i < width; i++ {
		caret += "^"
	}
	return fmt.Sprintf("  %s:%d:%d\n  |\n  | %s\n  | %s", file.URL, line, col, text, caret)
}
