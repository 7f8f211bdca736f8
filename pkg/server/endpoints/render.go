package endpoints

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

	// UGC policy: task descriptions are user-supplied, so scripts and
	// event handlers must not survive rendering.
	sanitizer = bluemonday.UGCPolicy()
)

// renderMarkdown converts markdown to sanitized HTML. On a conversion
// failure the raw text is dropped rather than served unsanitized.
func renderMarkdown(src string) string {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return ""
	}
	return sanitizer.Sanitize(buf.String())
}
