// Package render defines the ephemeral per-turn presentation model the
// session emits. Models are drawn once and discarded; they are never a
// source of truth for history.
package render

import "strings"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Model is what the presentation layer draws for a single turn.
type Model struct {
	ID             string
	Role           string
	DisplayContent string
	Citations      []Citation
	// Markup marks the content as markdown to be rendered rather than
	// shown verbatim. True for assistant replies.
	Markup bool
}

// Citation is one reference string from a reply, parsed into its parts.
// The raw form is either a plain label or "[label](url)" with optional
// trailing annotation text after the link.
type Citation struct {
	Raw      string
	Label    string
	URL      string
	Trailing string
}

// ParseCitation splits a raw reference string into label, URL and trailing
// annotation. Strings without the markdown link form are label-only.
func ParseCitation(raw string) Citation {
	if strings.HasPrefix(raw, "[") {
		if sep := strings.Index(raw, "]("); sep > 0 {
			rest := raw[sep+2:]
			if close := strings.Index(rest, ")"); close >= 0 {
				trailing := strings.TrimSpace(strings.TrimPrefix(rest[close+1:], ","))
				return Citation{
					Raw:      raw,
					Label:    raw[1:sep],
					URL:      rest[:close],
					Trailing: trailing,
				}
			}
		}
	}
	return Citation{Raw: raw, Label: raw}
}

// ParseCitations maps ParseCitation over a reference list, preserving order.
func ParseCitations(raws []string) []Citation {
	citations := make([]Citation, 0, len(raws))
	for _, raw := range raws {
		citations = append(citations, ParseCitation(raw))
	}
	return citations
}
