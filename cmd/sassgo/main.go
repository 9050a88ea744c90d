package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/titpetric/sassgo"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: sassgo <command> [args]\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  compile <file>  Compile Sass/SCSS to CSS\n")
		os.Exit(1)
	}

	cmd := os.Args[1]

	switch cmd {
	case "compile":
		compileCmd := flag.NewFlagSet("compile", flag.ExitOnError)
		compressed := compileCmd.Bool("compressed", false, "emit compressed output instead of expanded")
		indented := compileCmd.Bool("indented", false, "parse input as the indented Sass syntax instead of SCSS")
		loadPaths := compileCmd.String("load-path", "", "comma-separated list of additional import roots")
		sourceMap := compileCmd.Bool("source-map", false, "emit a companion source map")
		embedMap := compileCmd.Bool("embed-source-map", false, "inline the source map as a data: URL instead of a sibling .map file")
		quiet := compileCmd.Bool("quiet", false, "suppress warnings")
		verbose := compileCmd.Bool("verbose", false, "emit every repeated deprecation warning and a deep dump of every @debug value")
		compileCmd.Parse(os.Args[2:])

		args := compileCmd.Args()
		if len(args) != 1 {
			fmt.Fprintf(os.Stderr, "Usage: sassgo compile [flags] <file>\n")
			os.Exit(1)
		}

		if err := compileFile(args[0], compileOptions{
			compressed: *compressed,
			indented:   *indented,
			loadPaths:  splitLoadPaths(*loadPaths),
			sourceMap:  *sourceMap,
			embedMap:   *embedMap,
			quiet:      *quiet,
			verbose:    *verbose,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		os.Exit(1)
	}
}

func splitLoadPaths(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

type compileOptions struct {
	compressed bool
	indented   bool
	loadPaths  []string
	sourceMap  bool
	embedMap   bool
	quiet      bool
	verbose    bool
}

// compileFile reads, compiles and prints a stylesheet's CSS to stdout:
// read the entry path off disk, resolve its own directory as the
// default import root, render, print. Rendering goes through
// sassgo.Compile rather than a direct parser/renderer pair, since
// import resolution, evaluation and serialization are no longer
// separable steps a CLI driver walks by hand.
func compileFile(path string, opts compileOptions) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	style := sassgo.OutputExpanded
	if opts.compressed {
		style = sassgo.OutputCompressed
	}
	syntax := sassgo.SyntaxSCSS
	if opts.indented {
		syntax = sassgo.SyntaxSass
	}

	result, err := sassgo.Compile(sassgo.CompileInput{
		FS:   os.DirFS(dir),
		Path: base,
		Options: sassgo.Options{
			Syntax:         syntax,
			Style:          style,
			LoadPaths:      opts.loadPaths,
			SourceMap:      opts.sourceMap,
			SourceMapEmbed: opts.embedMap,
			Quiet:          opts.quiet,
			Verbose:        opts.verbose,
		},
	})
	if err != nil {
		return err
	}

	fmt.Print(result.CSS)
	if opts.sourceMap && !opts.embedMap {
		mapPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".css.map"
		if err := os.WriteFile(mapPath, []byte(result.SourceMap), 0644); err != nil {
			return fmt.Errorf("writing source map: %w", err)
		}
	}
	return nil
}
