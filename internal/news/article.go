// Package news defines the Article record and the pure functions that turn
// raw feed items into articles: title/source splitting, date formatting,
// and first-occurrence deduplication by link.
package news

import "time"

// UnknownSource is used when a raw title carries no " - source" suffix.
const UnknownSource = "UNKNOWN"

// InvalidDate is the display date for timestamps that cannot be parsed.
const InvalidDate = "INVALID DATE"

// Item is a raw feed entry as delivered by a backend, before normalization.
type Item struct {
	Title       string
	Link        string
	PubDate     string
	Description string
}

// Article is a normalized, display-ready news record.
// Link is the identity: two articles with the same Link are the same article.
type Article struct {
	Title       string
	Source      string
	Link        string
	PublishedAt string    // "JAN 2, 2006", or InvalidDate
	Published   time.Time // zero when PubDate was unparseable
	Topic       string
	Region      string // region display name
	Summary     string
}
