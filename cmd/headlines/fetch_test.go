package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abelbrown/headlines/internal/aggregate"
	"github.com/abelbrown/headlines/internal/config"
	"github.com/abelbrown/headlines/internal/news"
	"github.com/abelbrown/headlines/internal/selection"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name        string
		topics      string
		regions     string
		wantTopics  []string
		wantRegions []string
		wantErrs    int
	}{
		{"empty falls back", "", "", []string{selection.DefaultTopic}, []string{"WORLDWIDE"}, 0},
		{"numbers and custom", "1,3,Python", "", []string{selection.PresetTopics[0], selection.PresetTopics[2], "PYTHON"}, []string{"WORLDWIDE"}, 0},
		{"regions flag", "6", "GB,CA", []string{selection.PresetTopics[5]}, []string{"UNITED KINGDOM", "CANADA"}, 0},
		{"bad entries reported", "0,99,Go", "ZZ", []string{"GO"}, []string{"WORLDWIDE"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, errs := parseSelection(tt.topics, tt.regions, []string{"US"})
			if len(errs) != tt.wantErrs {
				t.Errorf("errors = %v, want %d", errs, tt.wantErrs)
			}
			if got := sel.Topics(); strings.Join(got, "|") != strings.Join(tt.wantTopics, "|") {
				t.Errorf("topics = %v, want %v", got, tt.wantTopics)
			}
			var names []string
			for _, r := range sel.Regions() {
				names = append(names, r.Name)
			}
			if strings.Join(names, "|") != strings.Join(tt.wantRegions, "|") {
				t.Errorf("regions = %v, want %v", names, tt.wantRegions)
			}
		})
	}
}

func TestParseSelectionAll(t *testing.T) {
	sel, errs := parseSelection("all", "", nil)
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
	if sel.TopicCount() != len(selection.PresetTopics) {
		t.Errorf("all should select %d topics, got %d", len(selection.PresetTopics), sel.TopicCount())
	}
}

func TestPrintResult(t *testing.T) {
	res := &aggregate.Result{
		Articles: []news.Article{
			{Title: "RATES HOLD", Source: "REUTERS", Topic: "BUSINESS", Region: "WORLDWIDE", PublishedAt: "MAR 9, 2024", Link: "https://x/1"},
		},
		Topics: 1,
		Pairs: []aggregate.PairStatus{
			{Topic: "BUSINESS", Region: "WORLDWIDE", Count: 1},
			{Topic: "BUSINESS", Region: "CANADA", Err: errors.New("timeout")},
		},
	}

	var buf bytes.Buffer
	printResult(&buf, res)
	out := buf.String()

	for _, want := range []string{"1 ARTICLES FROM 1 TOPICS", "(1 of 2 feeds failed)", "  1. RATES HOLD", "REUTERS | BUSINESS | WORLDWIDE | MAR 9, 2024", "https://x/1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintCatalogs(t *testing.T) {
	var buf bytes.Buffer
	printTopics(&buf)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(selection.PresetTopics) {
		t.Fatalf("expected %d topic lines, got %d", len(selection.PresetTopics), len(lines))
	}
	if lines[0] != " 1. "+selection.PresetTopics[0] {
		t.Errorf("first topic line = %q", lines[0])
	}

	buf.Reset()
	printRegions(&buf)
	if !strings.Contains(buf.String(), "WORLDWIDE") || !strings.Contains(buf.String(), "GB:en") {
		t.Errorf("regions output:\n%s", buf.String())
	}
}

func TestPrintStarred(t *testing.T) {
	var buf bytes.Buffer
	printStarred(&buf, nil)
	if !strings.Contains(buf.String(), "No starred articles.") {
		t.Errorf("empty output = %q", buf.String())
	}

	buf.Reset()
	printStarred(&buf, []string{"https://x/1", "https://x/2"})
	if buf.String() != "https://x/1\nhttps://x/2\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := writeDefaultConfig(path, false); err != nil {
		t.Fatalf("writeDefaultConfig failed: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("written config should validate: %v", err)
	}

	if err := writeDefaultConfig(path, false); err == nil {
		t.Error("expected an error when the file exists")
	}
	if err := writeDefaultConfig(path, true); err != nil {
		t.Errorf("force should overwrite: %v", err)
	}
}
