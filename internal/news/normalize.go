package news

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// titleSeparator separates the headline from the publisher in feed titles.
const titleSeparator = " - "

// displayDateLayout is the "MON D, YYYY" display format (uppercased after formatting).
const displayDateLayout = "Jan 2, 2006"

// maxSummaryRunes caps the plain-text summary taken from the description.
const maxSummaryRunes = 280

// pubDateLayouts are the timestamp shapes seen from the proxy and from raw RSS.
var pubDateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC3339,
	time.RFC822,
	time.RFC822Z,
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02",
}

// Normalize converts a raw item into an Article for the given topic and region name.
func Normalize(raw Item, topic, region string) Article {
	title, source := SplitTitle(raw.Title)
	published, display := FormatDate(raw.PubDate)

	return Article{
		Title:       title,
		Source:      source,
		Link:        raw.Link,
		PublishedAt: display,
		Published:   published,
		Topic:       topic,
		Region:      region,
		Summary:     PlainText(raw.Description),
	}
}

// NormalizeAll converts a slice of raw items, preserving order.
func NormalizeAll(raw []Item, topic, region string) []Article {
	result := make([]Article, len(raw))
	for i, item := range raw {
		result[i] = Normalize(item, topic, region)
	}
	return result
}

// SplitTitle splits "Headline - Publisher" into an uppercased title and source.
// Only the last " - " segment is taken as the source; earlier separators stay
// in the title. Without a separator the source is UnknownSource.
func SplitTitle(raw string) (title, source string) {
	parts := strings.Split(raw, titleSeparator)
	if len(parts) < 2 {
		return strings.ToUpper(raw), UnknownSource
	}

	source = strings.ToUpper(parts[len(parts)-1])
	title = strings.Join(parts[:len(parts)-1], titleSeparator)
	return strings.ToUpper(title), source
}

// FormatDate parses a feed timestamp and returns it with its display form.
// Unparseable input yields a zero time and InvalidDate.
func FormatDate(raw string) (time.Time, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, InvalidDate
	}

	for _, layout := range pubDateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, strings.ToUpper(t.Format(displayDateLayout))
		}
	}
	return time.Time{}, InvalidDate
}

// PlainText strips markup from an HTML fragment and collapses whitespace.
// The result is truncated to a short summary length.
func PlainText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	text := fragment
	if strings.ContainsAny(fragment, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
		if err == nil {
			text = doc.Text()
		}
	}

	text = strings.Join(strings.Fields(text), " ")
	return truncate(text, maxSummaryRunes)
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
