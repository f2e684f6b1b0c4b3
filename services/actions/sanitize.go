package actions

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richTextPolicy     *bluemonday.Policy
	richTextPolicyOnce sync.Once
	textOnlyPolicy     = bluemonday.StrictPolicy()
)

func policy() *bluemonday.Policy {
	richTextPolicyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class").OnElements("p", "span")
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		richTextPolicy = p
	})
	return richTextPolicy
}

// SanitizeRichText strips scripts and unsafe attributes from editor HTML.
func SanitizeRichText(raw string) string {
	return policy().Sanitize(raw)
}

// RichTextBlank reports whether editor HTML carries no visible text, as in
// "<p></p>" or "<p>&nbsp;</p>".
func RichTextBlank(raw string) bool {
	return strings.TrimSpace(html.UnescapeString(textOnlyPolicy.Sanitize(raw))) == ""
}
