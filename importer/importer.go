// Package importer resolves `@use`/`@forward`/`@import` URLs against a
// filesystem, parses the result, and caches it by canonical URL.
//
// Grounded on importer/importer.go's Importer{fs fs.FS} + ResolveImports:
// that importer walked a parsed LESS stylesheet, found `@import`
// at-rules, read + re-parsed + spliced the imported statements straight
// into the caller's AST. sassgo generalizes this from "always LESS,
// always inline the statements" to the module-load model spec.md §4.5
// needs: Load returns the imported stylesheet as its own unit (so @use
// can give it an isolated scope) instead of mutating the caller's tree,
// and a canonical-URL cache makes repeat @use/@forward loads of the
// same file free after the first.
package importer

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/diag"
	"github.com/titpetric/sassgo/eval"
	"github.com/titpetric/sassgo/lexer"
	"github.com/titpetric/sassgo/parser"
)

// Importer is the capability spec.md §4.5 asks a load source to
// provide: turn a URL into a canonical form, load its contents, and
// report when it last changed (for a future watch-mode cache
// invalidation -- unused by Load itself today).
type Importer interface {
	Canonicalize(fromURL, url string) (string, bool)
	Load(ctx context.Context, canonicalURL string) (*ast.Stylesheet, error)
	ModificationTime(canonicalURL string) (int64, error)
}

// Files is the shared, mutex-protected source-file table one or more
// FilesystemImporters append into. Composing several FilesystemImporters
// (one per load_path root) into a Chain only produces a coherent merged
// file list for source maps/diag.Print if they all share one Files
// instance instead of each numbering its own loads from zero -- two
// importers independently assigning index 0 to different files would
// make diag.Span.Source ambiguous across the chain.
type Files struct {
	mu          sync.Mutex
	sourceFiles []*diag.SourceFile
	sourceIndex map[string]int
}

// NewFiles creates an empty, shareable source-file table.
func NewFiles() *Files {
	return &Files{sourceIndex: make(map[string]int)}
}

// register reserves (or returns the existing) index for url, recording
// text the first time url is seen.
func (f *Files) register(url, text string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if idx, ok := f.sourceIndex[url]; ok {
		return idx
	}
	idx := len(f.sourceFiles)
	f.sourceFiles = append(f.sourceFiles, &diag.SourceFile{URL: url, Text: text})
	f.sourceIndex[url] = idx
	return idx
}

// all returns a snapshot of every file registered so far, index-aligned
// with the sourceIdx stamped into each Load's parsed spans.
func (f *Files) all() []*diag.SourceFile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*diag.SourceFile(nil), f.sourceFiles...)
}

// FilesystemImporter implements Importer against an fs.FS, and also
// implements eval.Loader/eval.LoadAsync directly so it can be handed to
// eval.NewEvaluator as-is. It keeps the prior implementation's extractImportPath/
// option-parsing shape for legacy `@import`, and adds the partial/index
// search order `@use`/`@forward` need plus the `.import.{scss,sass}`
// shadow-file lookup legacy `@import` gets when both forms of a file
// exist side by side.
type FilesystemImporter struct {
	fs    fs.FS
	files *Files

	mu    sync.Mutex
	cache map[string]*ast.Stylesheet
	group singleflight.Group
}

// New creates a FilesystemImporter rooted at the given filesystem, with
// its own private Files table.
func New(filesystem fs.FS) *FilesystemImporter {
	return NewWithFiles(filesystem, NewFiles())
}

// NewWithFiles creates a FilesystemImporter that registers its loads
// into the given shared Files table instead of a private one -- used
// to compose several load_path roots into one Chain with one coherent
// source index.
func NewWithFiles(filesystem fs.FS, files *Files) *FilesystemImporter {
	return &FilesystemImporter{
		fs:    filesystem,
		files: files,
		cache: make(map[string]*ast.Stylesheet),
	}
}

// Files returns the source files loaded so far, index-aligned with the
// sourceIdx stamped into each Load's parsed spans, for a host to merge
// into its own diag.Print file table.
func (imp *FilesystemImporter) Files() []*diag.SourceFile {
	return imp.files.all()
}

// RegisterEntry reserves the next source-file slot for a stylesheet the
// host parses itself (the compile entry point, which doesn't go
// through Load since it has no URL to canonicalize against). Callers
// must parse with the returned index as parser.ParseStylesheet's
// sourceIdx so the entry point's spans line up with the same Files
// table every import resolves against.
func (imp *FilesystemImporter) RegisterEntry(url, text string) int {
	return imp.files.register(url, text)
}

// activeKey is the context key an in-flight Load chain stores its set
// of canonical URLs under, so a cycle is caught synchronously within one
// call tree without any shared mutable state between unrelated loads.
type activeKey struct{}

func activeSet(ctx context.Context) map[string]struct{} {
	if s, ok := ctx.Value(activeKey{}).(map[string]struct{}); ok {
		return s
	}
	return nil
}

func withActive(ctx context.Context, url string) (context.Context, error) {
	prev := activeSet(ctx)
	next := make(map[string]struct{}, len(prev)+1)
	for k := range prev {
		next[k] = struct{}{}
	}
	if _, ok := next[url]; ok {
		return ctx, fmt.Errorf("import cycle detected: %s", url)
	}
	next[url] = struct{}{}
	return context.WithValue(ctx, activeKey{}, next), nil
}

// Canonicalize resolves url relative to fromURL's directory without
// touching the filesystem, matching the prior implementation's resolvedPath
// construction in resolveImport (filepath.Join on the directory of the
// importing file, normalized to slash form for fs.FS).
func (imp *FilesystemImporter) Canonicalize(fromURL, url string) (string, bool) {
	clean := stripQuotes(extractImportPath(url))
	if clean == "" {
		clean = url
	}
	if isPlainCSSURL(clean) {
		return clean, false
	}
	dir := "."
	if fromURL != "" {
		dir = path.Dir(fromURL)
	}
	joined := path.Clean(path.Join(dir, clean))
	joined = strings.TrimPrefix(joined, "./")
	return joined, true
}

// resolveFile searches for a real file backing a canonicalized module
// URL, in Sass's load-path order: exact path with an extension, the
// `_name` partial form, then `name/_index`/`name/index` for directory
// loads -- tried first as .scss then .sass, per spec.md §4.5. Legacy
// `@import` additionally prefers a `.import.scss`/`.import.sass`
// shadow file over the plain one when both exist, so a library can
// expose a different surface to `@import` callers than to `@use`
// callers.
func (imp *FilesystemImporter) resolveFile(base string, legacyImport bool) (string, []byte, error) {
	dir, name := path.Split(base)
	candidates := make([]string, 0, 8)

	add := func(p string) { candidates = append(candidates, p) }

	if legacyImport {
		add(dir + name + ".import.scss")
		add(dir + name + ".import.sass")
		add(dir + "_" + name + ".import.scss")
		add(dir + "_" + name + ".import.sass")
	}
	for _, ext := range []string{".scss", ".sass", ".css"} {
		add(dir + name + ext)
	}
	add(dir + "_" + name + ".scss")
	add(dir + "_" + name + ".sass")
	add(dir + name + "/_index.scss")
	add(dir + name + "/_index.sass")
	add(dir + name + "/index.scss")
	add(dir + name + "/index.sass")

	for _, candidate := range candidates {
		candidate = strings.TrimPrefix(candidate, "./")
		data, err := fs.ReadFile(imp.fs, candidate)
		if err == nil {
			return candidate, data, nil
		}
	}
	return "", nil, fmt.Errorf("no such module %q", base)
}

// ModificationTime is unused by Load today; it exists to satisfy
// Importer for a future watch-mode cache, and errors since plain fs.FS
// doesn't expose mtimes without an fs.StatFS assertion this importer
// doesn't require of callers.
func (imp *FilesystemImporter) ModificationTime(canonicalURL string) (int64, error) {
	statFS, ok := imp.fs.(fs.StatFS)
	if !ok {
		return 0, fmt.Errorf("filesystem does not support stat")
	}
	info, err := statFS.Stat(canonicalURL)
	if err != nil {
		return 0, err
	}
	return info.ModTime().Unix(), nil
}

// Load implements Importer: parse canonicalURL's file from the cache or
// disk. It does not do cycle detection itself -- that's the eval.Loader
// entry point's job, since only Load (fromURL, url) pairs know the
// active call chain.
func (imp *FilesystemImporter) Load(ctx context.Context, canonicalURL string) (*ast.Stylesheet, error) {
	imp.mu.Lock()
	if sheet, ok := imp.cache[canonicalURL]; ok {
		imp.mu.Unlock()
		return sheet, nil
	}
	imp.mu.Unlock()

	v, err, _ := imp.group.Do(canonicalURL, func() (interface{}, error) {
		resolved, data, err := imp.resolveFile(canonicalURL, false)
		if err != nil {
			return nil, &diag.ImportError{Message: fmt.Sprintf("Can't find stylesheet to import: %s", canonicalURL), Wrapped: err}
		}
		syntax := lexer.SyntaxSCSS
		if strings.HasSuffix(resolved, ".sass") {
			syntax = lexer.SyntaxSass
		}

		idx := imp.files.register(resolved, string(data))

		sheet, err := parser.ParseStylesheet(string(data), resolved, syntax, idx)
		if err != nil {
			return nil, err
		}
		sheet.URL = resolved

		imp.mu.Lock()
		imp.cache[resolved] = sheet
		imp.cache[canonicalURL] = sheet
		imp.mu.Unlock()
		return sheet, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ast.Stylesheet), nil
}

// legacyLoad is the entry point the evaluator's `@import` handler uses:
// it prefers a `.import.{scss,sass}` shadow file over the plain module
// file, matching Sass's "legacy @import sees a different surface" rule
// the prior implementation's options.Less/options.CSS distinction gestured at
// without quite modeling (legacy LESS @import never had this concept).
func (imp *FilesystemImporter) legacyLoad(ctx context.Context, canonicalURL string) (*ast.Stylesheet, error) {
	resolved, data, err := imp.resolveFile(canonicalURL, true)
	if err != nil {
		return imp.Load(ctx, canonicalURL)
	}
	if !strings.Contains(resolved, ".import.") {
		return imp.Load(ctx, canonicalURL)
	}

	syntax := lexer.SyntaxSCSS
	if strings.HasSuffix(resolved, ".sass") {
		syntax = lexer.SyntaxSass
	}
	idx := imp.files.register(resolved, string(data))

	sheet, err := parser.ParseStylesheet(string(data), resolved, syntax, idx)
	if err != nil {
		return nil, err
	}
	sheet.URL = resolved
	return sheet, nil
}

// SassLoad resolves url relative to fromURL and parses it, refusing to
// recurse into a URL already on the active load stack. It backs
// eval.Loader through loaderAdapter below; it isn't eval.Loader.Load
// itself since Importer.Load already uses that name for a different
// signature (canonical URL only, no fromURL).
func (imp *FilesystemImporter) SassLoad(ctx context.Context, fromURL, url string) (*ast.Stylesheet, string, error) {
	canonical, isModule := imp.Canonicalize(fromURL, url)
	if !isModule {
		return nil, canonical, nil
	}
	ctx, err := withActive(ctx, canonical)
	if err != nil {
		return nil, "", &diag.ImportError{Message: err.Error()}
	}
	sheet, err := imp.legacyLoad(ctx, canonical)
	if err != nil {
		return nil, "", err
	}
	return sheet, canonical, nil
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func isPlainCSSURL(url string) bool {
	return strings.HasPrefix(url, "http://") ||
		strings.HasPrefix(url, "https://") ||
		strings.HasPrefix(url, "//") ||
		strings.HasPrefix(url, "url(") ||
		strings.HasSuffix(url, ".css")
}

// extractImportPath pulls the bare path out of an `@import`/`@use`
// argument, handling the same three forms the prior implementation's
// extractImportPath did: `url(...)`, a quoted string, or a bare token.
func extractImportPath(params string) string {
	params = strings.TrimSpace(params)

	if strings.HasPrefix(params, "url(") {
		start := strings.Index(params, "(") + 1
		end := strings.LastIndex(params, ")")
		if end > start {
			return stripQuotes(params[start:end])
		}
	}

	if strings.HasPrefix(params, `"`) || strings.HasPrefix(params, `'`) {
		quote := params[0]
		if end := strings.Index(params[1:], string(quote)); end >= 0 {
			return params[1 : end+1]
		}
	}

	if parts := strings.Fields(params); len(parts) > 0 {
		return stripQuotes(parts[0])
	}
	return ""
}

var _ eval.Loader = (*loaderAdapter)(nil)
var _ eval.LoadAsync = (*loaderAdapter)(nil)

// loaderAdapter exposes FilesystemImporter's Sass-facing SassLoad method
// as eval.Loader's Load so the package's public surface keeps
// Importer's Load(ctx, canonicalURL) and eval.Loader's
// Load(ctx, fromURL, url) separate instead of overloading one method
// name with two incompatible signatures.
type loaderAdapter struct {
	imp *FilesystemImporter
}

// AsLoader returns an eval.Loader/eval.LoadAsync backed by imp, for
// handing straight to eval.NewEvaluator.
func (imp *FilesystemImporter) AsLoader() eval.LoadAsync {
	return &loaderAdapter{imp: imp}
}

func (a *loaderAdapter) Load(ctx context.Context, fromURL, url string) (*ast.Stylesheet, string, error) {
	return a.imp.SassLoad(ctx, fromURL, url)
}

// LoadAll resolves a batch of URLs concurrently via errgroup, for the
// async evaluator entry point SPEC_FULL.md describes for independent
// `@use` preludes -- grounded on golang.org/x/sync/errgroup rather than
// a hand-rolled WaitGroup+mutex, the way the rest of this module reaches
// for x/sync over stdlib-only concurrency primitives.
func (a *loaderAdapter) LoadAll(ctx context.Context, fromURL string, urls []string) ([]eval.AsyncResult, error) {
	results := make([]eval.AsyncResult, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			sheet, canonical, err := a.Load(ctx, fromURL, url)
			results[i] = eval.AsyncResult{URL: url, Sheet: sheet, CanonicalURL: canonical, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
