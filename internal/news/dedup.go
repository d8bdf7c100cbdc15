package news

// Dedup keeps the first article for each link, in input order.
// Later duplicates are dropped, not merged.
func Dedup(articles []Article) []Article {
	if len(articles) == 0 {
		return []Article{}
	}

	seen := make(map[string]bool, len(articles))
	result := make([]Article, 0, len(articles))

	for _, a := range articles {
		if seen[a.Link] {
			continue
		}
		seen[a.Link] = true
		result = append(result, a)
	}

	return result
}
