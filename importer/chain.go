package importer

import (
	"context"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/diag"
	"github.com/titpetric/sassgo/eval"
)

// Chain composes several Importers into one, implementing eval.Loader/
// eval.LoadAsync so a host can hand `load_paths` (each wrapped in its
// own FilesystemImporter) plus any user-supplied Importers to
// eval.NewEvaluator as a single ordered Loader, per spec.md §4.5's "the
// core maintains an ordered list of importers" policy. The spec's "the
// importer that loaded the current stylesheet first" preference is
// honored via owner, recorded per canonical URL as each load succeeds.
//
// Simplification: Canonicalize is only asked of the first candidate
// importer -- every FilesystemImporter canonicalizes a relative URL
// identically regardless of which filesystem backs it, since
// Canonicalize never touches disk, so asking more than one would only
// matter for a custom Importer with its own URL scheme, a case spec.md
// §1 scopes to "concrete importers are collaborators" rather than core
// behavior. What differs per load_path root is whether Load actually
// finds the file, so Chain tries every candidate's Load in order and
// only advances on failure.
type Chain struct {
	importers []Importer
	owner     map[string]Importer
}

// NewChain builds a Chain trying importers in the given order.
func NewChain(importers ...Importer) *Chain {
	return &Chain{importers: importers, owner: make(map[string]Importer)}
}

func (c *Chain) candidates(fromURL string) []Importer {
	owner, ok := c.owner[fromURL]
	if !ok {
		return c.importers
	}
	ordered := make([]Importer, 0, len(c.importers)+1)
	ordered = append(ordered, owner)
	for _, imp := range c.importers {
		if imp != owner {
			ordered = append(ordered, imp)
		}
	}
	return ordered
}

var _ eval.Loader = (*Chain)(nil)
var _ eval.LoadAsync = (*Chain)(nil)

// Load resolves url against fromURL, detecting cycles across the whole
// chain (not just within one importer) the same way FilesystemImporter
// guards its own loads.
func (c *Chain) Load(ctx context.Context, fromURL, url string) (*ast.Stylesheet, string, error) {
	candidates := c.candidates(fromURL)
	if len(candidates) == 0 {
		return nil, "", &diag.ImportError{Message: "no importers configured"}
	}

	canonical, isModule := candidates[0].Canonicalize(fromURL, url)
	if !isModule {
		return nil, canonical, nil
	}

	loadCtx, err := withActive(ctx, canonical)
	if err != nil {
		return nil, "", &diag.ImportError{Message: err.Error()}
	}

	var lastErr error
	for _, imp := range candidates {
		sheet, err := imp.Load(loadCtx, canonical)
		if err != nil {
			lastErr = err
			continue
		}
		c.owner[canonical] = imp
		return sheet, canonical, nil
	}
	if lastErr == nil {
		lastErr = &diag.ImportError{Message: "Can't find stylesheet to import: " + url}
	}
	return nil, "", lastErr
}

// LoadAll resolves a batch of URLs sequentially; Chain's owner-affinity
// bookkeeping isn't safe for concurrent writes the way a single
// FilesystemImporter's mutex-guarded maps are, so unlike
// loaderAdapter.LoadAll this does not fan the batch out through
// errgroup. Independent single-importer loads still get the
// concurrent path through FilesystemImporter.AsLoader directly.
func (c *Chain) LoadAll(ctx context.Context, fromURL string, urls []string) ([]eval.AsyncResult, error) {
	results := make([]eval.AsyncResult, len(urls))
	for i, url := range urls {
		sheet, canonical, err := c.Load(ctx, fromURL, url)
		results[i] = eval.AsyncResult{URL: url, Sheet: sheet, CanonicalURL: canonical, Err: err}
	}
	return results, nil
}
