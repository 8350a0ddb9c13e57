package scrape

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testListingHTML = `<!DOCTYPE html>
<html><body>
<ul>
  <li class="news">
    <h2>Budget hearing scheduled</h2>
    <time>March 12, 2026</time>
    <p>The council will hold a public hearing on the annual budget.</p>
    <a href="/news/budget-hearing.">Read more</a>
  </li>
  <li class="news">
    <h2>Park reopening</h2>
    <a href="https://townhall.example.org/news/park)">Details</a>
  </li>
  <li class="news">
    <h2>No link here</h2>
  </li>
  <li class="news">
    <h2>Third valid item</h2>
    <a href="/news/third">More</a>
  </li>
</ul>
</body></html>`

const testHomepageHTML = `<!DOCTYPE html>
<html><head><title>Townhall</title></head><body>
<article>
<p>Welcome to the townhall information portal, where residents can find
service updates, departmental announcements, and details about upcoming
public meetings across all municipal facilities and community venues.</p>
<p>The west entrance will remain closed until further notice. Visitors
should use the main entrance on Market Street, which stays open during
all regular business hours throughout the construction period.</p>
<p>Our departments publish their schedules, forms, and contact details
online so most routine requests can be handled without an in-person
visit to any of the service counters in the main building.</p>
</article>
</body></html>`

func testScraper(t *testing.T, site Site, client *http.Client) *Scraper {
	t.Helper()
	return NewScraper(site, NewFetcherWithClient(client), slog.New(slog.DiscardHandler))
}

func TestScrape(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(testHomepageHTML))
	})
	mux.HandleFunc("/news/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(testListingHTML))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	site := Site{
		Name:    "townhall",
		BaseURL: srv.URL,
		Listings: []ListingProfile{
			{Name: "News", Path: "/news/", Cap: 2, ItemSelector: "li.news"},
			{Name: "Events", Path: "/events/", Cap: 5, ItemSelector: "li.event"},
		},
		NoticeKeywords: []string{"closed"},
	}

	result, err := testScraper(t, site, srv.Client()).Scrape(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "townhall", result.Site)
	assert.Equal(t, srv.URL, result.BaseURL)
	assert.False(t, result.GeneratedAt.IsZero())
	require.Len(t, result.Listings, 2)

	news := result.Listings[0]
	require.NoError(t, news.FetchErr)
	require.Len(t, news.Items, 2, "cap must bound retained items")
	assert.Equal(t, 2, result.ItemTotal())

	first := news.Items[0]
	assert.Equal(t, "Budget hearing scheduled", first.Title)
	assert.Equal(t, "March 12, 2026", first.Date)
	assert.Equal(t, "The council will hold a public hearing on the annual budget.", first.Description)
	assert.Equal(t, srv.URL+"/news/budget-hearing", first.Link, "trailing punctuation stripped")

	assert.Equal(t, "https://townhall.example.org/news/park", news.Items[1].Link)

	// 404 listing is recorded, not fatal.
	events := result.Listings[1]
	require.Error(t, events.FetchErr)
	assert.Empty(t, events.Items)

	require.Len(t, result.Notices, 1)
	assert.Contains(t, result.Notices[0], "closed until further notice")
}

func TestScrapeDropsItemsWithoutLink(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/news/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(testListingHTML))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	site := Site{
		Name:    "townhall",
		BaseURL: srv.URL,
		Listings: []ListingProfile{
			{Name: "News", Path: "/news/", Cap: 10, ItemSelector: "li.news"},
		},
	}

	result, err := testScraper(t, site, srv.Client()).Scrape(context.Background())
	require.NoError(t, err)

	titles := make([]string, 0, 3)
	for _, item := range result.Listings[0].Items {
		titles = append(titles, item.Title)
	}
	assert.Equal(t, []string{"Budget hearing scheduled", "Park reopening", "Third valid item"}, titles)
}

func TestScrapeHomepageFailureIsNonFatal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/news/" {
			w.Write([]byte(testListingHTML))
			return
		}
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	site := Site{
		Name:           "townhall",
		BaseURL:        srv.URL,
		Listings:       []ListingProfile{{Name: "News", Path: "/news/", Cap: 5, ItemSelector: "li.news"}},
		NoticeKeywords: []string{"closed"},
	}

	result, err := testScraper(t, site, srv.Client()).Scrape(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Notices)
	assert.NotEmpty(t, result.Listings[0].Items)
}

func TestScrapeInvalidBaseURL(t *testing.T) {
	s := testScraper(t, Site{Name: "x", BaseURL: "::not-a-url"}, http.DefaultClient)
	_, err := s.Scrape(context.Background())
	require.Error(t, err)
}

func TestScrapeRejectsOversizedProfile(t *testing.T) {
	site := Site{Name: "x", BaseURL: "https://example.org"}
	for i := 0; i < maxPagesPerRun; i++ {
		site.Listings = append(site.Listings, ListingProfile{Name: "L", Path: "/l/"})
	}

	_, err := testScraper(t, site, http.DefaultClient).Scrape(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page budget")
}

func TestHomepageText(t *testing.T) {
	base, err := url.Parse("https://townhall.example.org/")
	require.NoError(t, err)

	text := homepageText([]byte(testHomepageHTML), base)
	assert.Contains(t, text, "closed until further notice")

	assert.Empty(t, homepageText(nil, base))
}
