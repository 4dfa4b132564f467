package server

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
)

// renderMarkdown shows the model reply the way it reads as markdown.
// goldmark drops raw HTML by default, so model text cannot inject markup.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(md) + "</pre>")
	}
	return template.HTML(buf.String())
}
