package fetch

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/abelbrown/headlines/internal/selection"
)

// SearchURL builds the news source RSS search URL for a topic and region.
func SearchURL(newsBase, topic string, region selection.Region) string {
	return strings.TrimRight(newsBase, "/") + "/rss/search?q=" + EncodeURIComponent(topic) +
		"&hl=" + region.Language +
		"&gl=" + region.Code +
		"&ceid=" + region.Edition()
}

// ProxyURL wraps a search URL in the RSS-to-JSON proxy query.
func ProxyURL(proxyBase, newsBase, topic string, region selection.Region, count int) string {
	feed := SearchURL(newsBase, topic, region)
	return proxyBase + "?rss_url=" + EncodeURIComponent(feed) + "&count=" + strconv.Itoa(count)
}

// uriUnreserved are the characters encodeURIComponent leaves alone beyond
// what url.QueryEscape already keeps.
var uriUnreserved = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s the way ECMAScript's encodeURIComponent does:
// spaces become %20 and !'()* are kept literally.
func EncodeURIComponent(s string) string {
	return uriUnreserved.Replace(url.QueryEscape(s))
}
