package importer_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/importer"
)

func TestChainFallsThroughToSecondRoot(t *testing.T) {
	first := fstest.MapFS{
		"main.scss": {Data: []byte(`@use "a";`)},
	}
	second := fstest.MapFS{
		"_a.scss": {Data: []byte(`$found: true;`)},
	}

	files := importer.NewFiles()
	firstImp := importer.NewWithFiles(first, files)
	secondImp := importer.NewWithFiles(second, files)
	chain := importer.NewChain(firstImp, secondImp)

	sheet, canonical, err := chain.Load(context.Background(), "main.scss", "a")
	require.NoError(t, err)
	assert.NotNil(t, sheet)
	assert.Equal(t, "a", canonical)
}

func TestChainSharesFilesTableAcrossRoots(t *testing.T) {
	first := fstest.MapFS{
		"_one.scss": {Data: []byte(`$one: 1;`)},
	}
	second := fstest.MapFS{
		"_two.scss": {Data: []byte(`$two: 2;`)},
	}

	files := importer.NewFiles()
	firstImp := importer.NewWithFiles(first, files)
	secondImp := importer.NewWithFiles(second, files)
	chain := importer.NewChain(firstImp, secondImp)

	_, oneCanonical, err := chain.Load(context.Background(), "main.scss", "one")
	require.NoError(t, err)
	_, twoCanonical, err := chain.Load(context.Background(), "main.scss", "two")
	require.NoError(t, err)

	assert.NotEqual(t, oneCanonical, twoCanonical)
	all := firstImp.Files()
	assert.Len(t, all, 2)
	assert.NotEqual(t, all[0].URL, all[1].URL)
}

func TestChainPrefersOwnerOfCurrentStylesheet(t *testing.T) {
	// "lib.scss" exists only in the second root, so resolving it picks
	// secondImp and records it as lib.scss's owner. A later import made
	// *from* lib.scss (fromURL == lib.scss's own canonical URL) should
	// consult secondImp first rather than starting over from firstImp,
	// per spec.md §4.5's "the importer that loaded the current
	// stylesheet first" policy.
	first := fstest.MapFS{
		"_nested.scss": {Data: []byte(`$from: first;`)},
	}
	second := fstest.MapFS{
		"_lib.scss":    {Data: []byte(`@use "nested";`)},
		"_nested.scss": {Data: []byte(`$from: second;`)},
	}

	files := importer.NewFiles()
	firstImp := importer.NewWithFiles(first, files)
	secondImp := importer.NewWithFiles(second, files)
	chain := importer.NewChain(firstImp, secondImp)

	_, libCanonical, err := chain.Load(context.Background(), "main.scss", "lib")
	require.NoError(t, err)

	sheet, nestedCanonical, err := chain.Load(context.Background(), libCanonical, "nested")
	require.NoError(t, err)
	assert.NotNil(t, sheet)
	assert.Equal(t, "nested", nestedCanonical)
	require.Len(t, sheet.Statements, 1)
	decl, ok := sheet.Statements[0].(*ast.VarDecl)
	require.True(t, ok)
	from, ok := decl.Value.(*ast.StringLit)
	require.True(t, ok)
	assert.Equal(t, "second", from.Text.PlainText())
}

func TestChainReturnsErrorWhenNoCandidateHasFile(t *testing.T) {
	first := fstest.MapFS{}
	second := fstest.MapFS{}

	files := importer.NewFiles()
	chain := importer.NewChain(
		importer.NewWithFiles(first, files),
		importer.NewWithFiles(second, files),
	)

	_, _, err := chain.Load(context.Background(), "main.scss", "missing")
	require.Error(t, err)
}
