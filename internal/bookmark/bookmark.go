// Package bookmark keeps the set of starred article links.
//
// The set is loaded once at startup and written back in full after every
// change. Nothing else in Headlines outlives a session.
package bookmark

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abelbrown/headlines/internal/logging"
	"github.com/abelbrown/headlines/internal/news"
)

// StorageKey is the key the bookmark set is persisted under.
const StorageKey = "starredArticles"

// KV is the durable storage the bookmark set lives in.
// *store.Store satisfies it.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store is the in-memory bookmark set with write-through persistence.
// Not safe for concurrent mutation; the UI update loop owns it.
type Store struct {
	kv    KV
	links []string // insertion order, for stable serialization
	index map[string]bool
}

// Load reads the persisted set. A missing, unreadable or malformed entry
// yields an empty set; startup never fails because of it.
func Load(ctx context.Context, kv KV) *Store {
	s := &Store{kv: kv, index: make(map[string]bool)}

	raw, ok, err := kv.Get(ctx, StorageKey)
	if err != nil {
		logging.Warn("bookmarks: read failed, starting empty", "err", err)
		return s
	}
	if !ok || raw == "" {
		return s
	}

	links, err := Decode(raw)
	if err != nil {
		logging.Warn("bookmarks: malformed payload, starting empty", "err", err)
		return s
	}
	for _, link := range links {
		s.add(link)
	}
	logging.Debug("bookmarks: loaded", "count", len(s.links))
	return s
}

// IsBookmarked reports whether link is in the set.
func (s *Store) IsBookmarked(link string) bool {
	return s.index[link]
}

// Toggle flips membership of link and persists the full set immediately.
// Returns whether link is bookmarked afterwards. If the write fails the
// flip is undone, so memory and storage never diverge.
func (s *Store) Toggle(ctx context.Context, link string) (bool, error) {
	wasMarked := s.index[link]
	if wasMarked {
		s.remove(link)
	} else {
		s.add(link)
	}

	if err := s.save(ctx); err != nil {
		if wasMarked {
			s.add(link)
		} else {
			s.remove(link)
		}
		return wasMarked, err
	}
	return !wasMarked, nil
}

// Links returns the bookmarked links in insertion order.
func (s *Store) Links() []string {
	out := make([]string, len(s.links))
	copy(out, s.links)
	return out
}

// Len returns the number of bookmarks.
func (s *Store) Len() int {
	return len(s.links)
}

// Filter returns the articles whose link is bookmarked, in their original order.
func (s *Store) Filter(articles []news.Article) []news.Article {
	result := make([]news.Article, 0, len(s.links))
	for _, a := range articles {
		if s.index[a.Link] {
			result = append(result, a)
		}
	}
	return result
}

// Clear removes every bookmark and the persisted entry.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("clear bookmarks: %w", err)
	}
	s.links = nil
	s.index = make(map[string]bool)
	return nil
}

func (s *Store) save(ctx context.Context) error {
	raw, err := Encode(s.links)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("persist bookmarks: %w", err)
	}
	return nil
}

func (s *Store) add(link string) {
	if s.index[link] {
		return
	}
	s.index[link] = true
	s.links = append(s.links, link)
}

func (s *Store) remove(link string) {
	if !s.index[link] {
		return
	}
	delete(s.index, link)
	for i, l := range s.links {
		if l == link {
			s.links = append(s.links[:i], s.links[i+1:]...)
			return
		}
	}
}

// Encode serializes links as a JSON array of strings.
func Encode(links []string) (string, error) {
	if links == nil {
		links = []string{}
	}
	data, err := json.Marshal(links)
	if err != nil {
		return "", fmt.Errorf("encode bookmarks: %w", err)
	}
	return string(data), nil
}

// Decode parses a JSON array of strings.
func Decode(raw string) ([]string, error) {
	var links []string
	if err := json.Unmarshal([]byte(raw), &links); err != nil {
		return nil, fmt.Errorf("decode bookmarks: %w", err)
	}
	return links, nil
}
