package eval

import (
	"context"

	"github.com/titpetric/sassgo/ast"
)

// Loader resolves `@use`/`@forward`/`@import` URLs to a parsed
// stylesheet, generalizing the prior implementation's importer.Importer (a single
// filesystem-backed ResolveImports pass that inlines statements
// textually) into the module-load model spec.md §4.5 requires: each
// load returns its own Stylesheet rather than splicing statements into
// the caller's tree, so @use can give it an isolated Scope.
//
// The importer package implements this against a real filesystem,
// cache and load-stack cycle detector; eval only depends on the
// interface so it can be driven by a fake in tests.
type Loader interface {
	// Load resolves url relative to fromURL (the loading stylesheet's
	// own canonical URL, "" for the entry point) and returns its parsed
	// AST plus the canonical URL it resolved to, for @use's
	// once-per-canonical-URL caching.
	Load(ctx context.Context, fromURL, url string) (sheet *ast.Stylesheet, canonicalURL string, err error)
}

// LoadAsync is implemented by a Loader that can also resolve a batch of
// independent URLs concurrently; importer.FilesystemImporter does, via
// golang.org/x/sync/errgroup. The evaluator itself does not use it: it
// calls Load for one URL at a time and never type-asserts for LoadAsync.
type LoadAsync interface {
	Loader
	LoadAll(ctx context.Context, fromURL string, urls []string) ([]AsyncResult, error)
}

// AsyncResult is one entry of a LoadAll batch, paired back up with the
// URL that produced it since errgroup results arrive unordered with
// respect to completion time (though LoadAll preserves input order).
type AsyncResult struct {
	URL          string
	Sheet        *ast.Stylesheet
	CanonicalURL string
	Err          error
}
