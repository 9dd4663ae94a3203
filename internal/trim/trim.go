// Package trim produces the two variants of an oversized assistant reply:
// a display variant carrying a truncation advisory, and a history-retention
// variant with large markdown tables clipped so they do not eat the
// endpoint's context window on the next request.
package trim

import "strings"

const (
	// Threshold is the content length in characters above which trimming
	// applies. At or below it both variants equal the original.
	Threshold = 10000

	// MaxTableRows is the number of data rows a table region is clipped to
	// in the history variant.
	MaxTableRows = 20

	tableMarker = "... (table trimmed to first 20 rows)"

	displayNote = "\n\n_Note: this response was shortened to fit the context window._"
)

// ForDisplay returns the content to present to the user. Above the threshold
// an advisory note about context-window truncation is appended.
func ForDisplay(content string) string {
	if len(content) <= Threshold {
		return content
	}
	if strings.HasSuffix(content, displayNote) {
		return content
	}
	return content + displayNote
}

// ForHistory returns the content to retain in conversation history. Above
// the threshold the first markdown table region is clipped to MaxTableRows
// data rows, preserving the header and separator rows and appending a
// trim-marker line. Subsequent table regions are left alone.
func ForHistory(content string) string {
	if len(content) <= Threshold {
		return content
	}
	return clipFirstTable(content)
}

// clipFirstTable finds the first contiguous run of lines containing "|" and
// clips its data rows. The first line of the run is the header; a following
// line containing "|-" is the separator; every later "|" line is a data row
// until a non-"|" line ends the region.
func clipFirstTable(content string) string {
	lines := strings.Split(content, "\n")

	start := -1
	for i, line := range lines {
		if strings.Contains(line, "|") {
			start = i
			break
		}
	}
	if start == -1 {
		return content
	}

	end := start
	for end < len(lines) && strings.Contains(lines[end], "|") {
		end++
	}

	region := lines[start:end]
	dataStart := 1
	if len(region) > 1 && strings.Contains(region[1], "|-") {
		dataStart = 2
	}
	data := region[dataStart:]
	if len(data) <= MaxTableRows {
		return content
	}

	out := make([]string, 0, len(lines))
	out = append(out, lines[:start]...)
	out = append(out, region[:dataStart]...)
	out = append(out, data[:MaxTableRows]...)
	out = append(out, tableMarker)
	out = append(out, lines[end:]...)
	return strings.Join(out, "\n")
}
