package report

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"

	"github.com/dm/mistinfo/internal/model"
)

const htmlExt = ".html"

var pageTemplate = template.Must(template.New("report").Parse(
	`<html><head><title>Mist API Data</title>` +
		`<style>body { font-family: Arial, sans-serif; } pre { background-color: #f9f9f9; padding: 10px; }</style>` +
		`</head><body>` +
		`{{range .}}<h2>{{.Kind}}</h2><pre>{{.Body}}</pre>{{end}}` +
		`</body></html>` + "\n"))

// preEscaper escapes only what is significant inside element content, so
// the JSON in each <pre> block keeps its quotes verbatim.
var preEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

type section struct {
	Kind string
	Body template.HTML
}

// HTMLPath derives the readable report path from the JSON report path by
// replacing its extension with ".html". A path without an extension, or one
// already ending in ".html", gets ".html" appended so the two reports never
// share a file.
func HTMLPath(jsonPath string) string {
	ext := filepath.Ext(jsonPath)
	if ext == "" || ext == htmlExt {
		return jsonPath + htmlExt
	}
	return strings.TrimSuffix(jsonPath, ext) + htmlExt
}

// renderHTML writes one <h2>/<pre> section per kind in canonical order.
func renderHTML(w io.Writer, snap *model.Snapshot) error {
	var sections []section
	for _, k := range snap.Kinds() {
		v, _ := snap.Get(k)
		body, err := encodeBlock(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", k, err)
		}
		sections = append(sections, section{
			Kind: string(k),
			Body: template.HTML(preEscaper.Replace(body)), //nolint:gosec
		})
	}
	return pageTemplate.Execute(w, sections)
}
