package sassgo

import (
	"io/fs"
	"net/http"
	"strings"
)

// Handler serves compiled CSS for .scss/.sass source files living under
// fileSystem, at URLs prefixed with pathPrefix. Adapted from handler.go's
// ServeHTTP, generalized from one fixed LESS pipeline to the full
// Compile pipeline and its Options.
type Handler struct {
	pathPrefix string
	fileSystem fs.FS
	options    Options
}

// NewHandler creates an HTTP handler that compiles and serves Sass/SCSS
// files under fileSystem. pathPrefix is the URL path prefix to match and
// strip (e.g. "/assets/css"); opts governs every compilation the handler
// performs.
func NewHandler(fileSystem fs.FS, pathPrefix string, opts Options) http.Handler {
	return &Handler{pathPrefix: pathPrefix, fileSystem: fileSystem, options: opts}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.pathPrefix != "" && !strings.HasPrefix(r.URL.Path, h.pathPrefix) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if !hasSassExtension(r.URL.Path) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	srcPath := strings.TrimPrefix(r.URL.Path, h.pathPrefix)
	if h.pathPrefix != "/" {
		srcPath = strings.TrimPrefix(srcPath, "/")
	}

	info, err := fs.Stat(h.fileSystem, srcPath)
	if err != nil || info.IsDir() {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	result, err := Compile(CompileInput{FS: h.fileSystem, Path: srcPath, Options: h.options})
	if err != nil {
		http.Error(w, "Compilation Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if r.Method != http.MethodHead {
		w.Write([]byte(result.CSS))
	}
}

func hasSassExtension(p string) bool {
	return strings.HasSuffix(p, ".scss") || strings.HasSuffix(p, ".sass")
}

// NewMiddleware wraps NewHandler as HTTP middleware: requests under
// basePath ending in .scss/.sass are compiled and served directly;
// everything else passes through to next. Adapted from middleware.go's
// NewMiddleware, fixing its call to NewHandler(basePath, fileSystem) —
// the argument order didn't match NewHandler's own (fileSystem, pathPrefix)
// signature, so that path never actually worked.
func NewMiddleware(basePath string, fileSystem fs.FS, opts Options) func(http.Handler) http.Handler {
	handler := NewHandler(fileSystem, basePath, opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			if !strings.HasPrefix(r.URL.Path, basePath) || !hasSassExtension(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			handler.ServeHTTP(w, r)
		})
	}
}
