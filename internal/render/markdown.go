// File: internal/render/markdown.go
package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md is configured once; goldmark converters are safe for concurrent use.
// Raw HTML in assistant output is NOT passed through: message content is
// user-adjacent and must not inject markup.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// AssistantHTML converts an assistant reply's markdown to HTML for clients
// that ask for rendered history. On conversion failure the raw text is
// returned so a bad reply never hides the message.
func AssistantHTML(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return buf.String()
}
