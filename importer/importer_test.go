package importer

import (
	"context"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractImportPath(t *testing.T) {
	tests := []struct {
		name   string
		params string
		want   string
	}{
		{name: "quoted path", params: `"colors"`, want: "colors"},
		{name: "single quoted", params: `'colors'`, want: "colors"},
		{name: "url syntax", params: `url("reset.css")`, want: "reset.css"},
		{name: "url with spaces", params: `url( "reset.css" )`, want: "reset.css"},
		{name: "bare token", params: `colors`, want: "colors"},
		{name: "empty", params: ``, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractImportPath(tt.params)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestIsPlainCSSURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"reset.css", true},
		{"https://fonts.example.com/a.css", true},
		{"//fonts.example.com/a", true},
		{`url("a.css")`, true},
		{"colors", false},
		{"_partial", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isPlainCSSURL(tt.url), tt.url)
	}
}

func TestCanonicalize(t *testing.T) {
	imp := New(fstest.MapFS{})

	canonical, isModule := imp.Canonicalize("styles/main.scss", "colors")
	assert.True(t, isModule)
	assert.Equal(t, "styles/colors", canonical)

	canonical, isModule = imp.Canonicalize("", "colors")
	assert.True(t, isModule)
	assert.Equal(t, "colors", canonical)

	_, isModule = imp.Canonicalize("styles/main.scss", "reset.css")
	assert.False(t, isModule)
}

func TestResolveFilePartialAndIndex(t *testing.T) {
	fsys := fstest.MapFS{
		"_colors.scss":       &fstest.MapFile{Data: []byte(`$primary: blue;`)},
		"layout/_index.scss": &fstest.MapFile{Data: []byte(`.row { display: flex; }`)},
	}
	imp := New(fsys)

	resolved, data, err := imp.resolveFile("colors", false)
	require.NoError(t, err)
	assert.Equal(t, "_colors.scss", resolved)
	assert.Contains(t, string(data), "$primary")

	resolved, _, err = imp.resolveFile("layout", false)
	require.NoError(t, err)
	assert.Equal(t, "layout/_index.scss", resolved)
}

func TestResolveFileMissing(t *testing.T) {
	imp := New(fstest.MapFS{})
	_, _, err := imp.resolveFile("missing", false)
	require.Error(t, err)
}

func TestSassLoadSuccess(t *testing.T) {
	fsys := fstest.MapFS{
		"_colors.scss": &fstest.MapFile{Data: []byte(`$primary: blue;`)},
	}
	imp := New(fsys)
	loader := imp.AsLoader()

	sheet, canonical, err := loader.Load(context.Background(), "", "colors")
	require.NoError(t, err)
	assert.Equal(t, "colors", canonical)
	require.NotNil(t, sheet)
	assert.Len(t, sheet.Statements, 1)
}

func TestSassLoadCachesByCanonicalURL(t *testing.T) {
	fsys := fstest.MapFS{
		"_colors.scss": &fstest.MapFile{Data: []byte(`$primary: blue;`)},
	}
	imp := New(fsys)
	loader := imp.AsLoader()

	first, _, err := loader.Load(context.Background(), "", "colors")
	require.NoError(t, err)
	second, _, err := loader.Load(context.Background(), "", "colors")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestSassLoadMissingModule(t *testing.T) {
	imp := New(fstest.MapFS{})
	loader := imp.AsLoader()
	_, _, err := loader.Load(context.Background(), "", "missing")
	require.Error(t, err)
}

func TestSassLoadPlainCSSPassthrough(t *testing.T) {
	imp := New(fstest.MapFS{})
	loader := imp.AsLoader()
	sheet, canonical, err := loader.Load(context.Background(), "", "reset.css")
	require.NoError(t, err)
	assert.Nil(t, sheet)
	assert.Equal(t, "reset.css", canonical)
}

func TestSassLoadDetectsCycle(t *testing.T) {
	fsys := fstest.MapFS{
		"_a.scss": &fstest.MapFile{Data: []byte(`@use "b";`)},
		"_b.scss": &fstest.MapFile{Data: []byte(`@use "a";`)},
	}
	imp := New(fsys)
	loader := imp.AsLoader()

	ctx, err := withActive(context.Background(), "a")
	require.NoError(t, err)
	_, _, err = loader.Load(ctx, "", "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestLegacyImportPrefersShadowFile(t *testing.T) {
	fsys := fstest.MapFS{
		"_colors.scss":        &fstest.MapFile{Data: []byte(`$primary: blue;`)},
		"_colors.import.scss": &fstest.MapFile{Data: []byte(`$primary: red;`)},
	}
	imp := New(fsys)
	loader := imp.AsLoader()

	sheet, _, err := loader.Load(context.Background(), "", "colors")
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 1)
	assert.Equal(t, "_colors.import.scss", sheet.URL)
}

func TestLoadAllResolvesIndependentURLs(t *testing.T) {
	fsys := fstest.MapFS{
		"_a.scss": &fstest.MapFile{Data: []byte(`$a: 1;`)},
		"_b.scss": &fstest.MapFile{Data: []byte(`$b: 2;`)},
	}
	imp := New(fsys)
	loader := imp.AsLoader()

	results, err := loader.LoadAll(context.Background(), "", []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].URL)
	assert.Equal(t, "b", results[1].URL)
	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[1].Err)
}

func TestResolveFileWithRealFilesystem(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(tmpDir+"/_colors.scss", []byte(`$primary: teal;`), 0o644))

	imp := New(os.DirFS(tmpDir))
	loader := imp.AsLoader()

	sheet, canonical, err := loader.Load(context.Background(), "", "colors")
	require.NoError(t, err)
	assert.Equal(t, "colors", canonical)
	require.Len(t, sheet.Statements, 1)
}
