/**
 * @description
 * Markdown rendering for user-generated content (reviews, blog bodies). The
 * output of goldmark is passed through a bluemonday policy so stored HTML is
 * always safe to serve.
 *
 * @dependencies
 * - github.com/yuin/goldmark: CommonMark renderer.
 * - github.com/microcosm-cc/bluemonday: HTML sanitizer.
 */
package markdown

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	policy = bluemonday.UGCPolicy()
)

// Render converts markdown source to sanitized HTML. Render errors degrade to
// an empty string; the content is display-only.
func Render(source string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return ""
	}
	return policy.Sanitize(buf.String())
}
