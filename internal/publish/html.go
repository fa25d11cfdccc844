package publish

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"loops-cli/internal/model"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		// Raw HTML stays disabled (no html.WithUnsafe) so titles can't inject markup.
		html.WithHardWraps(),
	),
)

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 42rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
code { background: #f2f2f2; padding: 0 .25rem; border-radius: 3px; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// MarkdownToHTML converts a Markdown fragment to HTML.
func MarkdownToHTML(src string) (string, error) {
	var b bytes.Buffer
	if err := markdownRenderer.Convert([]byte(src), &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderLoopHTML renders l as a standalone HTML page.
func RenderLoopHTML(l model.Loop, opt RenderOptions) (string, error) {
	body, err := MarkdownToHTML(RenderLoopMarkdown(l, opt))
	if err != nil {
		return "", err
	}
	title := strings.TrimSpace(l.Title)
	if title == "" {
		title = "Untitled loop"
	}
	var out bytes.Buffer
	// goldmark output is trusted only because raw HTML is disabled above.
	if err := pageTmpl.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(body)}); err != nil {
		return "", err
	}
	return out.String(), nil
}
