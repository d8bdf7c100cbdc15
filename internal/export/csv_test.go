package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/headlines/internal/news"
)

var fetched = time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)

func sample() []news.Article {
	return []news.Article{
		{Title: "RATES HOLD", Source: "REUTERS", Topic: "BUSINESS", Region: "WORLDWIDE", PublishedAt: "MAR 9, 2024", Link: "https://x/1"},
		{Title: "A, B AND \"C\"", Source: "AP", Topic: "POLITICS", Region: "CANADA", PublishedAt: news.InvalidDate, Link: "https://x/2"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sample(), fetched); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "title,source,topic,region,published_date,link,fetched_at" {
		t.Errorf("header = %q", lines[0])
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-reading output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[2][0] != `A, B AND "C"` {
		t.Errorf("quoted title = %q", records[2][0])
	}
	if records[2][4] != news.InvalidDate {
		t.Errorf("published_date = %q", records[2][4])
	}
	if records[1][6] != "2024-03-09 14:05:00" {
		t.Errorf("fetched_at = %q", records[1][6])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil, fetched); !errors.Is(err, ErrNoArticles) {
		t.Errorf("expected ErrNoArticles, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing written, got %q", buf.String())
	}
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.csv")
	if err := SaveCSV(path, sample(), fetched); err != nil {
		t.Fatalf("SaveCSV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "https://x/1") {
		t.Errorf("output missing first link:\n%s", data)
	}

	if err := SaveCSV(filepath.Join(t.TempDir(), "none.csv"), nil, fetched); !errors.Is(err, ErrNoArticles) {
		t.Errorf("expected ErrNoArticles, got %v", err)
	}
}
