package reporting

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/spboyer/vitta/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md renders agent text with line breaks kept. Raw HTML in model output is
// not passed through.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// RenderHTML converts Markdown to an HTML fragment.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="hi">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: "Noto Sans Devanagari", "Segoe UI", sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.6; color: #1f2328; }
a { color: #0969da; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid #d0d7de; padding: .4rem .6rem; text-align: left; }
hr { border: 0; border-top: 1px solid #d0d7de; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// Page wraps an HTML fragment in a standalone document.
func Page(title string, body template.HTML) (string, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{title, body})
	if err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return buf.String(), nil
}

// PlanHTML renders the full plan of t as a standalone HTML document.
func PlanHTML(t *models.Transcript) (string, error) {
	fragment, err := RenderHTML(PlanMarkdown(t))
	if err != nil {
		return "", err
	}
	return Page("वित्तीय योजना - "+t.DateReadable, template.HTML(fragment)) //nolint:gosec // goldmark output with raw HTML disabled
}
