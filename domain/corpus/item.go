package corpus

import "strings"

// ScrapedItem is one listing entry: a news item, broadcast notice, or
// calendar event. Items have no identity beyond document order.
type ScrapedItem struct {
	Title       string
	Date        string
	Description string
	Link        string
}

// Valid reports whether the item meets the minimum contract: a non-empty
// title and a resolvable detail link. Invalid items are dropped silently.
func (i ScrapedItem) Valid() bool {
	return strings.TrimSpace(i.Title) != "" && strings.TrimSpace(i.Link) != ""
}

// Listing is the parsed result of one listing page.
type Listing struct {
	Name      string
	SourceURL string
	Items     []ScrapedItem
	FetchErr  error
}

// ItemCount returns the number of retained items.
func (l Listing) ItemCount() int { return len(l.Items) }

// CapItems retains at most n items, preserving document order. A non-positive
// cap retains nothing.
func CapItems(items []ScrapedItem, n int) []ScrapedItem {
	if n <= 0 {
		return nil
	}
	if len(items) <= n {
		return items
	}
	return items[:n]
}
