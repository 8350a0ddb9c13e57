package scrape

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/brightlabs/sitesync/domain/corpus"
)

// listingConcurrency bounds parallel listing fetches. Listings share no
// state, so they fan out; the homepage is fetched alongside them.
const listingConcurrency = 3

// Result is one scrape pass over a site.
type Result struct {
	Site        string
	BaseURL     string
	GeneratedAt time.Time
	Notices     []string
	Listings    []corpus.Listing
}

// ItemTotal returns the number of items across all listings.
func (r Result) ItemTotal() int {
	total := 0
	for _, l := range r.Listings {
		total += len(l.Items)
	}
	return total
}

// Scraper fetches a site profile's listing pages and homepage notices.
type Scraper struct {
	site    Site
	fetcher *Fetcher
	logger  *slog.Logger
	now     func() time.Time
}

// NewScraper creates a Scraper for the given site profile.
func NewScraper(site Site, fetcher *Fetcher, logger *slog.Logger) *Scraper {
	if logger == nil {
		logger = slog.Default()
	}
	if fetcher == nil {
		fetcher = NewFetcher()
	}
	return &Scraper{site: site, fetcher: fetcher, logger: logger, now: time.Now}
}

// Scrape fetches every configured listing plus the homepage. A failed
// listing yields zero items and is recorded on its Listing; it does not
// abort siblings or the homepage. Only an invalid base URL or an
// over-budget profile fails the pass outright.
func (s *Scraper) Scrape(ctx context.Context) (Result, error) {
	base, err := url.Parse(s.site.BaseURL)
	if err != nil || base.Host == "" {
		return Result{}, fmt.Errorf("invalid site base url %q", s.site.BaseURL)
	}
	if len(s.site.Listings)+1 > maxPagesPerRun {
		return Result{}, fmt.Errorf("site profile exceeds page budget: %d listings", len(s.site.Listings))
	}

	listings := make([]corpus.Listing, len(s.site.Listings))
	var notices []string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listingConcurrency)

	for i, profile := range s.site.Listings {
		g.Go(func() error {
			listings[i] = s.scrapeListing(gctx, base, profile.withDefaults())
			return nil
		})
	}
	g.Go(func() error {
		notices = s.scrapeNotices(gctx, base)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	return Result{
		Site:        s.site.Name,
		BaseURL:     s.site.BaseURL,
		GeneratedAt: s.now().UTC(),
		Notices:     notices,
		Listings:    listings,
	}, nil
}

// scrapeListing fetches and parses one listing page. Fetch or parse failure
// is recorded on the Listing and yields zero items.
func (s *Scraper) scrapeListing(ctx context.Context, base *url.URL, profile ListingProfile) corpus.Listing {
	pageURL := base.ResolveReference(&url.URL{Path: profile.Path}).String()
	listing := corpus.Listing{Name: profile.Name, SourceURL: pageURL}

	body, err := s.fetcher.Get(ctx, pageURL)
	if err != nil {
		s.logger.Warn("listing fetch failed", "listing", profile.Name, "url", pageURL, "error", err)
		listing.FetchErr = err
		return listing
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		s.logger.Warn("listing parse failed", "listing", profile.Name, "url", pageURL, "error", err)
		listing.FetchErr = fmt.Errorf("parse %s: %w", pageURL, err)
		return listing
	}

	var items []corpus.ScrapedItem
	doc.Find(profile.ItemSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		item := parseItem(base, profile, sel)
		if item.Valid() {
			items = append(items, item)
		}
		return len(items) < profile.Cap
	})

	listing.Items = corpus.CapItems(items, profile.Cap)
	s.logger.Debug("listing scraped", "listing", profile.Name, "items", len(listing.Items))
	return listing
}

// parseItem extracts one ScrapedItem from a listing element. Items missing a
// title or link are returned invalid and dropped by the caller.
func parseItem(base *url.URL, profile ListingProfile, sel *goquery.Selection) corpus.ScrapedItem {
	title := corpus.Normalize(sel.Find(profile.TitleSelector).First().Text())
	date := corpus.Normalize(sel.Find(profile.DateSelector).First().Text())
	desc := corpus.Normalize(sel.Find(profile.DescSelector).First().Text())

	var link string
	if href, ok := sel.Find(profile.LinkSelector).First().Attr("href"); ok {
		link = absoluteURL(base, href)
	}
	// Anchor-wrapped items carry the link on the element itself.
	if link == "" {
		if href, ok := sel.Attr("href"); ok {
			link = absoluteURL(base, href)
		}
	}

	// A title that is just the link text of a "read more" anchor is noise.
	if strings.EqualFold(title, "read more") {
		title = ""
	}

	return corpus.ScrapedItem{Title: title, Date: date, Description: desc, Link: link}
}
