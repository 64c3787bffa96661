package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corey/flashtext/internal/adapters/socket"
	"github.com/corey/flashtext/internal/domain/keyword"
	"github.com/corey/flashtext/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// paint wraps s in color when stdout is a terminal.
func paint(color, s string) string {
	if !isStdoutTTY() {
		return s
	}
	return color + s + colorReset
}

// spansAt returns the spans of text i, or nil when spans were not requested.
func spansAt(res *socket.ExtractResult, i int) []keyword.Match {
	if res.Spans == nil {
		return nil
	}
	return res.Spans[i]
}

// formatKeywords renders the keywords found in one input line.
//
//	New York, Bay Area
//	New York[7:16], Bay Area[21:29]
func formatKeywords(keywords []string, spans []keyword.Match) string {
	parts := make([]string, len(keywords))
	for i, kw := range keywords {
		parts[i] = paint(colorCyan, kw)
		if spans != nil {
			parts[i] += paint(colorGray, fmt.Sprintf("[%d:%d]", spans[i].Start, spans[i].End))
		}
	}
	return strings.Join(parts, ", ")
}

// formatList renders dictionary entries.
//
//	⚡ 2 keywords │ cities
//	  big apple  → New York
//	  bay area   → Bay Area
func formatList(name string, entries []ports.Entry) string {
	var sb strings.Builder
	sb.WriteString(paint(colorBold, fmt.Sprintf("⚡ %d keywords", len(entries))))
	sb.WriteString(fmt.Sprintf(" │ %s\n", name))

	width := 0
	for _, e := range entries {
		if n := len([]rune(e.Keyword)); n > width {
			width = n
		}
	}
	for _, e := range entries {
		pad := strings.Repeat(" ", width-len([]rune(e.Keyword)))
		sb.WriteString(fmt.Sprintf("  %s%s  → %s\n", e.Keyword, pad, paint(colorGreen, e.CleanName)))
	}
	return sb.String()
}

// formatHealth renders a daemon health report.
func formatHealth(h *socket.HealthResult) string {
	var sb strings.Builder
	sb.WriteString(paint(colorBold, "⚡ flashtext daemon") + " " + paint(colorGreen, h.Status) + "\n")
	sb.WriteString(fmt.Sprintf("  Dictionary:     %s\n", h.Dictionary))
	sb.WriteString(fmt.Sprintf("  Keywords:       %d\n", h.KeywordCount))
	sb.WriteString(fmt.Sprintf("  Case sensitive: %v\n", h.CaseSensitive))
	sb.WriteString(fmt.Sprintf("  Uptime:         %s\n", h.Uptime))
	return sb.String()
}

// formatWordChars renders a word-rune set so that control and space runes
// stay visible.
//
//	63 word chars: \x00 … \t A B … z _
func formatWordChars(chars []rune) string {
	quoted := make([]string, len(chars))
	for i, r := range chars {
		q := strconv.QuoteRune(r)
		quoted[i] = q[1 : len(q)-1]
	}
	return fmt.Sprintf("%d word chars: %s", len(chars), strings.Join(quoted, " "))
}
