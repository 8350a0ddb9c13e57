package scrape

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripTrailingPunct(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean url unchanged", "https://example.org/page.html", "https://example.org/page.html"},
		{"sentence period", "https://example.org/page.html.", "https://example.org/page.html"},
		{"closing paren", "https://example.org/events)", "https://example.org/events"},
		{"stacked punctuation", "https://example.org/a).,", "https://example.org/a"},
		{"ellipsis and quote", "https://example.org/b…\"", "https://example.org/b"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := StripTrailingPunct(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, StripTrailingPunct(got))
		})
	}
}

func TestAbsoluteURL(t *testing.T) {
	base, err := url.Parse("https://example.org/news/")
	require.NoError(t, err)

	assert.Equal(t, "https://example.org/news/item-1", absoluteURL(base, "item-1"))
	assert.Equal(t, "https://example.org/about", absoluteURL(base, "/about"))
	assert.Equal(t, "https://other.org/x", absoluteURL(base, "https://other.org/x."))
	assert.Empty(t, absoluteURL(base, ""))
	assert.Empty(t, absoluteURL(base, "#section"))
	assert.Empty(t, absoluteURL(base, "mailto:info@example.org"))
	assert.Empty(t, absoluteURL(base, "javascript:void(0)"))
	assert.Empty(t, absoluteURL(base, "ftp://example.org/file"))
}
