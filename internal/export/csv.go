// Package export writes article collections to CSV.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abelbrown/headlines/internal/news"
)

// ErrNoArticles is returned when there is nothing to export.
var ErrNoArticles = errors.New("no articles to export")

// Header is the CSV column order.
var Header = []string{"title", "source", "topic", "region", "published_date", "link", "fetched_at"}

// WriteCSV writes a header row and one row per article to w.
func WriteCSV(w io.Writer, articles []news.Article, fetchedAt time.Time) error {
	if len(articles) == 0 {
		return ErrNoArticles
	}

	stamp := fetchedAt.Format(time.DateTime)
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, a := range articles {
		row := []string{a.Title, a.Source, a.Topic, a.Region, a.PublishedAt, a.Link, stamp}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV creates (or truncates) path and writes articles to it.
func SaveCSV(path string, articles []news.Article, fetchedAt time.Time) error {
	if len(articles) == 0 {
		return ErrNoArticles
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(f, articles, fetchedAt); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
