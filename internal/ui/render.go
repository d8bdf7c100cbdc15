package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/abelbrown/headlines/internal/config"
	"github.com/abelbrown/headlines/internal/news"
	"github.com/abelbrown/headlines/internal/selection"
)

const (
	topicCellWidth = 24
	maxTopicCols   = 4
	cardWidth      = 40
	sourceColWidth = 16
)

// topicColumns returns how many topic cells fit across width.
func topicColumns(width int) int {
	cols := width / topicCellWidth
	if cols < 1 {
		return 1
	}
	if cols > maxTopicCols {
		return maxTopicCols
	}
	return cols
}

// cardColumns returns how many article cards fit across width.
func cardColumns(width int) int {
	if cols := width / cardWidth; cols > 1 {
		return cols
	}
	return 1
}

func renderTabs(current View, width int) string {
	tabs := make([]string, len(viewNames))
	for i, name := range viewNames {
		if View(i) == current {
			tabs[i] = TabActive.Render("[" + name + "]")
		} else {
			tabs[i] = TabInactive.Render(name)
		}
	}
	line := strings.Join(tabs, "")
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

// renderTopics renders presets then custom topics as a grid of checkboxes.
func renderTopics(cells []topicCell, cursor, width, height int) string {
	cols := topicColumns(width)
	cellWidth := topicCellWidth
	if width > 0 && width < cellWidth {
		cellWidth = width
	}

	var rows []string
	for start := 0; start < len(cells); start += cols {
		end := start + cols
		if end > len(cells) {
			end = len(cells)
		}
		row := make([]string, 0, cols)
		for i := start; i < end; i++ {
			row = append(row, renderTopicCell(cells[i], i == cursor, cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return window(rows, cursor/cols, height)
}

func renderTopicCell(c topicCell, selected bool, width int) string {
	box := "[ ]"
	if c.selected {
		box = "[x]"
	}
	label := c.topic
	if c.custom {
		label += " *"
	}
	text := truncate(box+" "+label, width-2)

	style := NormalItem
	switch {
	case selected:
		style = SelectedItem
	case c.selected:
		style = CheckedItem
	}
	return style.Width(width).Render(text)
}

// renderRegions renders the region catalog as a checkbox list.
func renderRegions(sel *selection.Selection, cursor, height int) string {
	lines := make([]string, len(selection.Regions))
	for i, r := range selection.Regions {
		box := "[ ]"
		checked := sel.IsRegionSelected(r.Code)
		if checked {
			box = "[x]"
		}
		text := fmt.Sprintf("%s %-16s %s", box, r.Name, MetaItem.Render(r.Edition()))

		style := NormalItem
		switch {
		case i == cursor:
			style = SelectedItem
		case checked:
			style = CheckedItem
		}
		lines[i] = style.Render(text)
	}
	return window(lines, cursor, height)
}

// renderArticles renders articles in the given layout, scrolled so the
// cursor stays visible.
func renderArticles(articles []news.Article, cursor int, layout string, starred func(string) bool, width, height int, now time.Time) string {
	if len(articles) == 0 {
		return ""
	}

	switch layout {
	case config.LayoutList:
		blocks := make([]string, len(articles))
		for i, a := range articles {
			blocks[i] = renderListItem(a, i == cursor, starred(a.Link), width, now)
		}
		return window(blocks, cursor, height)

	case config.LayoutCompact:
		lines := make([]string, len(articles))
		for i, a := range articles {
			lines[i] = renderCompactItem(a, i == cursor, starred(a.Link), width)
		}
		return window(lines, cursor, height)
	}

	cols := cardColumns(width)
	innerWidth := width/cols - 4 // border and padding
	if innerWidth < 10 {
		innerWidth = 10
	}

	var rows []string
	for start := 0; start < len(articles); start += cols {
		end := start + cols
		if end > len(articles) {
			end = len(articles)
		}
		cards := make([]string, 0, cols)
		for i := start; i < end; i++ {
			a := articles[i]
			cards = append(cards, renderCard(a, i == cursor, starred(a.Link), innerWidth, now))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return window(rows, cursor/cols, height)
}

func renderCard(a news.Article, selected, starred bool, width int, now time.Time) string {
	title := NormalItem.Padding(0).Bold(true).Width(width).Render(a.Title)
	if selected {
		title = SelectedItem.Padding(0).Width(width).Render(a.Title)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		starMark(starred)+" "+TopicLabel.Render(truncate(a.Topic, width-2)),
		title,
		MetaItem.Render(truncate(metaLine(a, now), width)),
	)

	style := Card
	if selected {
		style = CardSelected
	}
	return style.Width(width + 2).Render(content)
}

func renderListItem(a news.Article, selected, starred bool, width int, now time.Time) string {
	titleWidth := width - sourceColWidth - 6
	if titleWidth < 20 {
		titleWidth = 20
	}

	titleStyle := NormalItem
	if selected {
		titleStyle = SelectedItem
	}
	first := starMark(starred) + " " + TopicLabel.Render(a.Topic) + " " + titleStyle.Render(truncate(a.Title, titleWidth))
	second := "  " + SourceBadge.Render(a.Source) + MetaItem.Render(metaLine(a, now))
	if a.Summary != "" {
		return first + "\n" + second + "\n  " + MetaItem.Render(truncate(a.Summary, width-4))
	}
	return first + "\n" + second
}

func renderCompactItem(a news.Article, selected, starred bool, width int) string {
	source := truncate(a.Source, sourceColWidth)
	pad := sourceColWidth - utf8.RuneCountInString(source)
	if pad < 0 {
		pad = 0
	}

	dateWidth := utf8.RuneCountInString(a.PublishedAt)
	titleWidth := width - sourceColWidth - dateWidth - 8
	if titleWidth < 20 {
		titleWidth = 20
	}

	line := source + strings.Repeat(" ", pad) + " " + truncate(a.Title, titleWidth)
	if selected {
		return starMark(starred) + SelectedItem.Render(line) + " " + MetaItem.Render(a.PublishedAt)
	}
	return starMark(starred) + NormalItem.Render(line) + " " + MetaItem.Render(a.PublishedAt)
}

// metaLine is "SOURCE · DATE · age".
func metaLine(a news.Article, now time.Time) string {
	parts := []string{a.Source, a.PublishedAt}
	if age := formatAge(a.Published, now); age != "" {
		parts = append(parts, age)
	}
	return strings.Join(parts, " · ")
}

// formatAge renders a relative age, or "" for unknown timestamps.
func formatAge(published, now time.Time) string {
	if published.IsZero() {
		return ""
	}
	return humanize.RelTime(published, now, "ago", "from now")
}

func starMark(on bool) string {
	if on {
		return Star.Render("★")
	}
	return MetaItem.Render("☆")
}

// window picks consecutive blocks containing focus that fit in height lines.
// Blocks may span several lines.
func window(blocks []string, focus, height int) string {
	if len(blocks) == 0 {
		return ""
	}
	if focus < 0 {
		focus = 0
	}
	if focus >= len(blocks) {
		focus = len(blocks) - 1
	}
	if height < 1 {
		height = 1
	}

	start := 0
	for start < focus && linesIn(blocks[start:focus+1]) > height {
		start++
	}

	used := 0
	end := start
	for end < len(blocks) {
		h := lipgloss.Height(blocks[end])
		if used+h > height && end > start {
			break
		}
		used += h
		end++
	}
	return strings.Join(blocks[start:end], "\n")
}

func linesIn(blocks []string) int {
	n := 0
	for _, b := range blocks {
		n += lipgloss.Height(b)
	}
	return n
}

// truncate shortens s to maxLen runes with a trailing "...".
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// renderStatusBar renders the bottom bar: status on the left, key hints on the right.
func renderStatusBar(status string, isErr bool, view View, width int) string {
	left := " " + status + " "
	if isErr {
		left = ErrorStyle.Render(status)
	}

	keyHints := strings.Join(hintsFor(view), " ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(keyHints) - 2
	if padding < 0 {
		padding = 0
	}

	bar := left + strings.Repeat(" ", padding) + keyHints
	return StatusBar.Width(width).Render(bar)
}

func hintsFor(view View) []string {
	hint := func(k, desc string) string {
		return StatusBarKey.Render(k) + StatusBarText.Render(":"+desc)
	}

	var hints []string
	switch view {
	case ViewTopics:
		hints = []string{hint("space", "toggle"), hint("a", "all"), hint("c", "clear"), hint("n", "custom"), hint("x", "drop"), hint("enter", "run")}
	case ViewRegions:
		hints = []string{hint("j/k", "nav"), hint("space", "toggle"), hint("enter", "run")}
	case ViewNews:
		hints = []string{hint("j/k", "nav"), hint("s", "star"), hint("l", "layout"), hint("enter", "rerun")}
	case ViewStarred:
		hints = []string{hint("j/k", "nav"), hint("s", "unstar"), hint("l", "layout")}
	}
	return append(hints, hint("tab", "view"), hint("q", "quit"))
}
