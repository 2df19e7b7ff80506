package report

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/khanhnv2901/seca-recon/internal/checker"
	"github.com/khanhnv2901/seca-recon/internal/fingerprint"
)

const (
	headersTemplatePath = "templates/headers.md.tmpl"
	techTemplatePath    = "templates/tech.md.tmpl"
)

//go:embed templates/headers.md.tmpl templates/tech.md.tmpl
var templateFS embed.FS

var (
	markdownTemplateFuncs = template.FuncMap{
		"join":   strings.Join,
		"firstN": firstN,
	}

	headersTemplate = template.Must(
		template.New("headers.md.tmpl").Funcs(markdownTemplateFuncs).ParseFS(templateFS, headersTemplatePath),
	)
	techTemplate = template.Must(
		template.New("tech.md.tmpl").Funcs(markdownTemplateFuncs).ParseFS(templateFS, techTemplatePath),
	)
)

type headersEntry struct {
	URL        string
	Error      string
	StatusCode int
	Missing    []string
}

// RenderHeadersMarkdown renders the security headers summary. Missing
// headers are listed in reference-table order.
func RenderHeadersMarkdown(results []checker.HeaderCheckResult) (string, error) {
	entries := make([]headersEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, headersEntry{
			URL:        r.URL,
			Error:      r.Error,
			StatusCode: r.StatusCode,
			Missing:    r.MissingNames(),
		})
	}
	return executeTemplate(headersTemplate, entries)
}

// RenderTechMarkdown renders the technology fingerprint summary. Each
// technology shows at most three pieces of evidence.
func RenderTechMarkdown(results []fingerprint.FingerprintResult) (string, error) {
	return executeTemplate(techTemplate, results)
}

func executeTemplate(tmpl *template.Template, data any) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
