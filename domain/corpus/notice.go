package corpus

import (
	"strings"
	"unicode/utf8"
)

// Notice selection bounds, in runes. Candidates outside the length window
// read as fragments or whole paragraphs rather than a single operational
// sentence.
const (
	NoticeMinLen = 15
	NoticeMaxLen = 200
	NoticeCap    = 3
)

// SelectNotices filters sentence candidates down to operational notices:
// keyword-matched, length-bounded, deduplicated, and capped to NoticeCap,
// preserving input order. Keyword matching is case-insensitive.
func SelectNotices(sentences, keywords []string) []string {
	var notices []string
	seen := make(map[string]struct{})

	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if n := utf8.RuneCountInString(s); n < NoticeMinLen || n > NoticeMaxLen {
			continue
		}
		if !containsKeyword(s, keywords) {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		notices = append(notices, s)
		if len(notices) == NoticeCap {
			break
		}
	}
	return notices
}

func containsKeyword(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
