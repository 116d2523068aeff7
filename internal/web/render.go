package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names, one per template file next to layout.html.
const (
	pageLanding   = "landing"
	pageLoading   = "loading"
	pageEmpty     = "empty"
	pageDashboard = "dashboard"
	pageCrash     = "crash"
)

// pages holds one template set per page, each layered over the layout.
var pages = mustParsePages()

func mustParsePages() map[string]*template.Template {
	base := template.Must(template.ParseFS(templateFS, "templates/layout.html"))

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		panic(err)
	}

	out := make(map[string]*template.Template, len(files))
	for _, f := range files {
		name := strings.TrimSuffix(path.Base(f), ".html")
		if name == "layout" {
			continue
		}
		out[name] = template.Must(template.Must(base.Clone()).ParseFS(templateFS, f))
	}
	return out
}

// renderPage executes a page into a buffer first so a failing template never
// leaves a half-written response.
func renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	tmpl, ok := pages[name]
	if !ok {
		panic(goerr.New("unknown page", goerr.V("page", name)))
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		panic(goerr.Wrap(err, "failed to render page", goerr.V("page", name)))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		ctxlog.From(r.Context()).Warn("Failed to write page", "page", name, "error", err)
	}
}

// writeCrashPage is the last-resort page written by RecoverMiddleware.
func writeCrashPage(w http.ResponseWriter) {
	var buf bytes.Buffer
	if err := pages[pageCrash].ExecuteTemplate(&buf, "layout", messagePage{}); err != nil {
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = buf.WriteTo(w)
}
