package scrape

import (
	"fmt"
	"strings"

	"github.com/brightlabs/sitesync/domain/corpus"
)

// RenderArtifact renders one scrape result into the live text artifact.
// The layout is fixed so repeated runs over identical scrape results differ
// only in the generation timestamp.
func RenderArtifact(result Result, marker string) corpus.Artifact {
	var b strings.Builder

	fmt.Fprintf(&b, "%s - site snapshot\n", result.Site)
	fmt.Fprintf(&b, "Source: %s\n", result.BaseURL)
	fmt.Fprintf(&b, "Generated: %s\n", result.GeneratedAt.Format("2006-01-02 15:04 MST"))

	if len(result.Notices) > 0 {
		b.WriteString("\n## Operational notices\n\n")
		for _, notice := range result.Notices {
			fmt.Fprintf(&b, "- %s\n", corpus.Normalize(notice))
		}
	}

	for _, listing := range result.Listings {
		fmt.Fprintf(&b, "\n## %s\n", listing.Name)
		fmt.Fprintf(&b, "Source: %s\n", listing.SourceURL)
		if listing.FetchErr != nil {
			b.WriteString("Unavailable this cycle.\n")
			continue
		}
		fmt.Fprintf(&b, "Items: %d\n\n", len(listing.Items))
		for _, item := range listing.Items {
			b.WriteString(renderItem(item))
		}
	}

	content := corpus.TruncateBytes(b.String(), corpus.DefaultMaxArtifactBytes)
	return corpus.NewArtifact(marker, result.Site, result.GeneratedAt, []byte(content))
}

func renderItem(item corpus.ScrapedItem) string {
	var b strings.Builder

	title := corpus.Normalize(item.Title)
	if date := corpus.Normalize(item.Date); date != "" {
		fmt.Fprintf(&b, "- %s (%s)\n", title, date)
	} else {
		fmt.Fprintf(&b, "- %s\n", title)
	}
	if desc := corpus.Normalize(item.Description); desc != "" {
		fmt.Fprintf(&b, "  %s\n", desc)
	}
	if item.Link != "" {
		fmt.Fprintf(&b, "  %s\n", item.Link)
	}
	return b.String()
}
