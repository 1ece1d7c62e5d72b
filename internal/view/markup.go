package view

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify))

	// ugcPolicy is applied to rendered markdown
	ugcPolicy = func() *bluemonday.Policy {
		p := bluemonday.UGCPolicy()
		p.RequireNoFollowOnLinks(false)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		return p
	}()

	// quotePolicy keeps recommendation text flat: line breaks and emphasis only
	quotePolicy = func() *bluemonday.Policy {
		p := bluemonday.NewPolicy()
		p.AllowElements("br", "strong", "em")
		return p
	}()
)

// Markdown renders markdown source to sanitized HTML
func Markdown(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		// Fall back to the escaped source rather than failing the page
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(ugcPolicy.SanitizeBytes(buf.Bytes()))
}

// Quote sanitizes recommendation text, keeping line breaks
func Quote(src string) template.HTML {
	return template.HTML(quotePolicy.Sanitize(src))
}
