package scrape

import (
	"bytes"
	"context"
	"net/url"

	readability "github.com/go-shiori/go-readability"

	"github.com/brightlabs/sitesync/domain/corpus"
)

// scrapeNotices extracts operational notice sentences from the homepage.
// Any failure yields no notices; the artifact is still useful without them.
func (s *Scraper) scrapeNotices(ctx context.Context, base *url.URL) []string {
	body, err := s.fetcher.Get(ctx, base.String())
	if err != nil {
		s.logger.Warn("homepage fetch failed", "url", base.String(), "error", err)
		return nil
	}

	text := homepageText(body, base)
	if text == "" {
		return nil
	}

	notices := corpus.SelectNotices(corpus.SplitSentences(text), s.site.NoticeKeywords)
	s.logger.Debug("homepage notices extracted", "count", len(notices))
	return notices
}

// homepageText pulls readable body text out of homepage markup. Readability
// drops navigation and boilerplate; on degenerate markup it can fail, in
// which case there is nothing reliable to scan for notices.
func homepageText(body []byte, pageURL *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return ""
	}
	return corpus.Normalize(article.TextContent)
}
