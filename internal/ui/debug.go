package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/headlines/internal/aggregate"
)

// debugPanelChrome is the number of terminal lines consumed by DebugPanel's
// border (top + bottom = 2) and vertical padding (top + bottom = 2).
// Must be updated if DebugPanel style changes.
const debugPanelChrome = 4

// debugOverlay renders the per-pair breakdown of the last run.
// Returns empty string if there is no result.
func debugOverlay(res *aggregate.Result, width, height int) string {
	if res == nil {
		return ""
	}

	var lines []string
	lines = append(lines, DebugHeaderStyle.Render("Last Run"))
	lines = append(lines, fmt.Sprintf("  Run:        %s", res.RunID))
	lines = append(lines, fmt.Sprintf("  Articles:   %d from %d topics", len(res.Articles), res.Topics))
	lines = append(lines, fmt.Sprintf("  Pairs:      %d fetched, %d failed", len(res.Pairs)-res.Failed(), res.Failed()))
	lines = append(lines, fmt.Sprintf("  Elapsed:    %s", formatElapsed(res.Elapsed)))
	lines = append(lines, "")

	lines = append(lines, DebugHeaderStyle.Render("Pairs"))
	for _, p := range res.Pairs {
		line := fmt.Sprintf("  %-20s %-16s %3d", truncate(p.Topic, 20), truncate(p.Region, 16), p.Count)
		switch {
		case p.Err != nil:
			line += "  " + ErrorStyle.Padding(0).Render("ERR: "+truncate(p.Err.Error(), 40))
		case p.Count == 0:
			line += "  empty"
		}
		lines = append(lines, line)
	}

	// Truncate to fit terminal height (subtract chrome added by DebugPanel border/padding)
	maxHeight := height - debugPanelChrome
	if maxHeight < 1 {
		maxHeight = 1
	}
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
	}

	panelWidth := 90
	if panelWidth > width-4 {
		panelWidth = width - 4
	}
	if panelWidth < 20 {
		panelWidth = 20
	}

	content := strings.Join(lines, "\n")
	return DebugPanel.Width(panelWidth).Render(content)
}

// formatElapsed formats a duration as a compact human string.
// Handles negative durations from clock skew by clamping to "0ms".
func formatElapsed(d time.Duration) string {
	if d < 0 {
		return "0ms"
	}
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
}

// debugStatusBar renders the status bar for the debug overlay.
func debugStatusBar(width int) string {
	keys := StatusBarKey.Render("?") + StatusBarText.Render(":close")
	return StatusBar.Width(width).Render("  [RUN DETAILS]  " + keys)
}
