// Package sassgo is the host façade spec.md §6 describes: a library
// entry point wrapping the lexer/parser/eval/serializer pipeline
// behind two calls, Compile and CompileString, plus the compile-time
// configuration table (syntax, output style, load paths, extra
// importers, host functions, source maps, logger quietness and
// deprecation handling).
//
// Grounded on handler.go's ServeHTTP, the prior implementation's own "read a file,
// parse it, render it, hand back the result or an error" façade —
// generalized here from one fixed LESS pipeline into a configurable
// one, and from an HTTP-specific entry point into a plain library call
// the CLI and the HTTP adapter (below) both sit on top of.
package sassgo

import (
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/titpetric/sassgo/builtin"
	"github.com/titpetric/sassgo/diag"
	"github.com/titpetric/sassgo/eval"
	"github.com/titpetric/sassgo/importer"
	"github.com/titpetric/sassgo/lexer"
	"github.com/titpetric/sassgo/parser"
	"github.com/titpetric/sassgo/serializer"
	"github.com/titpetric/sassgo/value"
)

// Syntax selects which of the two concrete grammars spec.md §4.1
// describes a source string is written in.
type Syntax int

const (
	SyntaxSCSS Syntax = iota
	SyntaxSass
)

func (s Syntax) lexerSyntax() lexer.Syntax {
	if s == SyntaxSass {
		return lexer.SyntaxSass
	}
	return lexer.SyntaxSCSS
}

// OutputStyle selects the serializer.Style spec.md §4.6 names.
type OutputStyle int

const (
	OutputExpanded OutputStyle = iota
	OutputCompressed
)

func (o OutputStyle) serializerStyle() serializer.Style {
	if o == OutputCompressed {
		return serializer.StyleCompressed
	}
	return serializer.StyleExpanded
}

// Function is a user-defined callable registered via Options.Functions
// (spec.md §6's "functions" configuration entry), invoked the same way
// a built-in sass: module function is: positional/keyword arguments
// already evaluated to value.Value, arity enforced before Fn runs.
type Function struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 means unbounded
	Fn      func(args []value.Value, kwargs map[string]value.Value) (value.Value, error)
}

// Options is the compile-time configuration table spec.md §6 lists.
type Options struct {
	Syntax Syntax
	Style  OutputStyle

	// LoadPaths are filesystem roots searched, in order, for
	// @use/@forward/@import URLs the entry stylesheet's own directory
	// doesn't resolve.
	LoadPaths []string

	// Importers are additional, non-filesystem import sources tried
	// after LoadPaths, in order.
	Importers []importer.Importer

	// Functions registers host callables invocable from Sass source
	// the same way a built-in function is.
	Functions []Function

	SourceMap             bool
	SourceMapEmbedSources bool
	SourceMapEmbed bool

	Quiet     bool
	QuietDeps bool
	Verbose   bool

	// FatalDeprecations, FutureDeprecations and SilenceDeprecations
	// name deprecation tags (diag.Logger.SetDeprecationStatus's tag
	// argument) to treat as hard errors, opt-in-early warnings, or
	// dropped entirely.
	FatalDeprecations   []string
	FutureDeprecations  []string
	SilenceDeprecations []string

	// NoCharset suppresses the serializer's automatic `@charset`/BOM
	// marker, which is otherwise emitted when the output contains
	// non-ASCII text (the zero value keeps it enabled).
	NoCharset bool

	// Logger, when set, is used (and mutated per Quiet/Verbose/
	// deprecation settings above) instead of a fresh diag.NewLogger.
	Logger *diag.Logger
}

// CompileInput is Compile's argument: an entry stylesheet to read from
// a filesystem, plus the Options governing how it's compiled.
type CompileInput struct {
	// FS is the filesystem the entry path (and, unless overridden by
	// LoadPaths, its relative imports) is read from. Defaults to
	// os.DirFS(".") when nil.
	FS fs.FS

	// Path is the entry stylesheet's path within FS.
	Path string

	Options Options
}

// CompileResult is what a successful Compile/CompileString returns:
// the rendered CSS, its source map (if requested), and the canonical
// URLs of every stylesheet the compilation loaded (the entry point
// first), for a host that wants to set up file-watching.
type CompileResult struct {
	CSS        string
	SourceMap  string
	LoadedURLs []string
}

func (o Options) charset() bool { return !o.NoCharset }

func (o Options) logger() *diag.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	l := diag.NewLogger()
	l.Quiet = o.Quiet
	l.Verbose = o.Verbose
	for _, tag := range o.FatalDeprecations {
		l.SetDeprecationStatus(tag, diag.DeprecationFatal)
	}
	for _, tag := range o.FutureDeprecations {
		l.SetDeprecationStatus(tag, diag.DeprecationFutureOptIn)
	}
	for _, tag := range o.SilenceDeprecations {
		l.SetDeprecationStatus(tag, diag.DeprecationSilenced)
	}
	return l
}

// buildLoader assembles one eval.Loader/eval.LoadAsync out of
// Options.LoadPaths (each wrapped in its own importer.FilesystemImporter
// rooted at that directory) and Options.Importers, composed through
// importer.Chain per spec.md §4.5's ordered-importer-list policy. The
// entry stylesheet's own directory is always tried first (as entryFS),
// matching "resolved against the current canonical URL" for the
// top-level file's own relative imports.
func buildLoader(entryFS fs.FS, opts Options) (eval.LoadAsync, *importer.FilesystemImporter, error) {
	files := importer.NewFiles()
	entryImp := importer.NewWithFiles(entryFS, files)
	chainImps := []importer.Importer{entryImp}
	for _, root := range opts.LoadPaths {
		chainImps = append(chainImps, importer.NewWithFiles(os.DirFS(root), files))
	}
	chainImps = append(chainImps, opts.Importers...)
	if len(chainImps) == 1 {
		return entryImp.AsLoader(), entryImp, nil
	}
	return importer.NewChain(chainImps...), entryImp, nil
}

// registerFunctions turns each Options.Functions entry into a
// builtin.Entry keyed by name in ev.HostFunctions, the registry
// eval.Evaluator.evalCall consults after user @function definitions
// and before the built-in table.
func registerFunctions(ev *eval.Evaluator, fns []Function) {
	for _, fn := range fns {
		ev.HostFunctions[fn.Name] = &builtin.Entry{
			Name:    fn.Name,
			MinArgs: fn.MinArgs,
			MaxArgs: fn.MaxArgs,
			Fn:      fn.Fn,
		}
	}
}

// compile runs the shared pipeline once the entry source, URL, FS and
// Options are known: parse, resolve imports while evaluating, flatten
// to a CSS tree, then serialize.
func compile(source, url string, entryFS fs.FS, opts Options) (CompileResult, error) {
	loader, entryImp, err := buildLoader(entryFS, opts)
	if err != nil {
		return CompileResult{}, err
	}

	idx := entryImp.RegisterEntry(url, source)
	sheet, err := parser.ParseStylesheet(source, url, opts.Syntax.lexerSyntax(), idx)
	if err != nil {
		return CompileResult{}, err
	}

	logger := opts.logger()
	ev := eval.NewEvaluator(logger, loader)
	registerFunctions(ev, opts.Functions)

	tree, err := ev.Run(sheet)
	if err != nil {
		files := entryImp.Files()
		return CompileResult{}, wrapDiagnostic(files, err)
	}
	logger.Summary()

	files := entryImp.Files()
	result, err := serializer.Serialize(tree, files, serializer.Options{
		Style:        opts.Style.serializerStyle(),
		SourceMap:    opts.SourceMap,
		OutputURL:    outputURL(url),
		EmbedSources: opts.SourceMapEmbedSources,
		EmbedMap:     opts.SourceMapEmbed,
		Charset:      opts.charset(),
	})
	if err != nil {
		return CompileResult{}, err
	}

	urls := make([]string, len(files))
	for i, f := range files {
		urls[i] = f.URL
	}
	return CompileResult{CSS: result.CSS, SourceMap: result.SourceMap, LoadedURLs: urls}, nil
}

// wrapDiagnostic renders a pipeline error with its caret-highlighted
// source excerpt, per spec.md §7's "single error-and-exit" shape,
// while still returning the original error value so callers can
// type-switch on *diag.RuntimeError/*diag.ImportError/etc.
func wrapDiagnostic(files []*diag.SourceFile, err error) error {
	return &diagnosticError{files: files, err: err}
}

type diagnosticError struct {
	files []*diag.SourceFile
	err   error
}

func (d *diagnosticError) Error() string { return diag.Print(d.files, d.err) }
func (d *diagnosticError) Unwrap() error { return d.err }

func outputURL(entryURL string) string {
	base := path.Base(entryURL)
	return strings.TrimSuffix(base, path.Ext(base)) + ".css"
}

// Compile reads input.Path from input.FS (os.DirFS(".") if nil),
// parses, evaluates and serializes it per input.Options.
func Compile(input CompileInput) (CompileResult, error) {
	fsys := input.FS
	if fsys == nil {
		fsys = os.DirFS(".")
	}
	data, err := fs.ReadFile(fsys, input.Path)
	if err != nil {
		return CompileResult{}, &diag.IOError{Path: input.Path, Wrapped: err}
	}
	return compile(string(data), input.Path, fsys, input.Options)
}

// CompileString compiles an in-memory source string. url identifies it
// for error spans and source maps (a synthetic name such as
// "stdin.scss" is fine); relative imports resolve against
// opts.LoadPaths and opts.Importers only, since there's no real
// directory to search alongside an in-memory entry point.
func CompileString(source, url string, opts Options) (CompileResult, error) {
	return compile(source, url, emptyFS{}, opts)
}

// emptyFS backs CompileString's entry-point importer: the in-memory
// source has no directory of its own, so its own relative imports
// resolve only through opts.LoadPaths/opts.Importers.
type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
