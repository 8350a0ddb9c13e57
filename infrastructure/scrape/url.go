package scrape

import (
	"net/url"
	"strings"
)

// trailingPunct lists characters stripped from link tails. Links extracted
// from prose-adjacent markup often retain sentence punctuation.
const trailingPunct = ")]}.,;:!?…»›\"'"

// StripTrailingPunct removes trailing punctuation from a URL. Idempotent:
// stripping an already-clean URL returns it unchanged.
func StripTrailingPunct(u string) string {
	return strings.TrimRight(u, trailingPunct)
}

// absoluteURL resolves href against base and strips trailing punctuation.
// Returns empty for unresolvable or non-HTTP links.
func absoluteURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return StripTrailingPunct(abs.String())
}
