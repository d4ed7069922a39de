package jobs

import "github.com/levelup-labs/jobscout/internal/search"

const (
	// Sentinels for listings the provider returned without a title or url.
	NoTitle = "N/A"
	NoURL   = "#"
)

// Listing is one search result plus its derived summary. Raw keeps the
// untouched provider fields so nothing is lost between search and storage.
type Listing struct {
	Title   string         `json:"title"`
	URL     string         `json:"url"`
	Summary string         `json:"summary"`
	Raw     map[string]any `json:"raw,omitempty"`
}

// NewListing builds a Listing from a raw provider result, substituting the
// sentinels for missing fields. Summary stays empty until enrichment.
func NewListing(result search.Result) Listing {
	listing := Listing{
		Title: result.Title,
		URL:   result.URL,
		Raw:   result.Raw,
	}
	if listing.Title == "" {
		listing.Title = NoTitle
	}
	if listing.URL == "" {
		listing.URL = NoURL
	}
	return listing
}
