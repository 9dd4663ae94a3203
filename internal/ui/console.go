// Package ui is the presentation layer: a line-oriented console that
// subscribes to session render events and draws them with markdown
// rendering and styled bubbles. It holds no conversation state of its own
// beyond what is needed to draw the last response's links.
package ui

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/classify"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/debuglog"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/history"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/logger"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/pagination"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/render"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/viewer"
)

const clientVersion = "2.0.0"

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("27")).
			Padding(0, 1)

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	typingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Faint(true)

	pageLinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Underline(true)

	pageActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("27")).
			Bold(true)

	viewerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)
)

// Console draws session events and owns the auxiliary surfaces (pagination
// bar, citation list, document viewer panel).
type Console struct {
	out      io.Writer
	docs     *viewer.Controller
	recorder *debuglog.Recorder
	store    *history.Store
	md       *glamour.TermRenderer

	// Bound after the session exists; the session needs the console as
	// its listener first.
	pages *pagination.Controller

	citations []render.Citation
	links     []pagination.Link
}

// NewConsole builds the console around the viewer and diagnostics
// collaborators. Markdown rendering falls back to verbatim output if the
// terminal renderer cannot be constructed.
func NewConsole(docs *viewer.Controller, recorder *debuglog.Recorder, store *history.Store, out io.Writer) *Console {
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(96),
	)
	if err != nil {
		logger.L.Warn("markdown renderer unavailable, falling back to plain output", "error", err)
		md = nil
	}
	return &Console{out: out, docs: docs, recorder: recorder, store: store, md: md}
}

// BindPagination attaches the pagination controller once the session has
// been constructed.
func (c *Console) BindPagination(pages *pagination.Controller) {
	c.pages = pages
}

// OnRender draws one turn.
func (c *Console) OnRender(m render.Model) {
	switch m.Role {
	case render.RoleUser:
		fmt.Fprintf(c.out, "\n%s\n", userStyle.Render("You: "+m.DisplayContent))
	case render.RoleSystem:
		fmt.Fprintf(c.out, "\n%s\n", systemStyle.Render(m.DisplayContent))
	default:
		c.citations = m.Citations
		fmt.Fprintf(c.out, "\n%s", c.renderAssistant(m))
	}
}

// OnTyping draws the transient typing indicator. The console is
// line-oriented, so the indicator is a single line rather than an animated
// bubble.
func (c *Console) OnTyping(active bool) {
	if active {
		fmt.Fprintf(c.out, "\n%s\n", typingStyle.Render("assistant is typing..."))
	}
}

// OnPageInfo redraws the pagination bar. Nil hides it.
func (c *Console) OnPageInfo(info *classify.PageInfo) {
	if c.pages == nil {
		return
	}
	c.links = c.pages.Update(info)
	if len(c.links) == 0 {
		return
	}
	parts := make([]string, 0, len(c.links))
	for _, link := range c.links {
		if link.Active {
			parts = append(parts, pageActiveStyle.Render("["+link.Label+"]"))
		} else {
			parts = append(parts, pageLinkStyle.Render(link.Label))
		}
	}
	fmt.Fprintf(c.out, "%s\n", strings.Join(parts, " "))
}

func (c *Console) renderAssistant(m render.Model) string {
	content := m.DisplayContent
	if len(m.Citations) > 0 {
		var b strings.Builder
		b.WriteString(content)
		b.WriteString("\n\n##### Sources\n")
		for i, cit := range m.Citations {
			fmt.Fprintf(&b, "- [%d] %s", i+1, cit.Label)
			if cit.Trailing != "" {
				b.WriteString(", " + cit.Trailing)
			}
			b.WriteString("\n")
		}
		content = b.String()
	}
	if m.Markup && c.md != nil {
		if rendered, err := c.md.Render(content); err == nil {
			return rendered
		}
	}
	return content + "\n"
}

// OpenCitation opens citation number n (1-based) in the document viewer
// when its URL matches the document path prefix; other links are printed as
// ordinary hyperlinks.
func (c *Console) OpenCitation(n int) {
	if n < 1 || n > len(c.citations) {
		fmt.Fprintf(c.out, "%s\n", systemStyle.Render("No such source."))
		return
	}
	cit := c.citations[n-1]
	if cit.URL == "" {
		fmt.Fprintf(c.out, "%s\n", systemStyle.Render(cit.Label))
		return
	}
	if !c.docs.Intercepts(cit.URL) {
		fmt.Fprintf(c.out, "%s\n", pageLinkStyle.Render(cit.URL))
		return
	}
	c.drawViewer(c.docs.Open(cit.URL))
}

// CloseViewer restores the full-width chat layout.
func (c *Console) CloseViewer() {
	c.docs.Close()
	fmt.Fprintf(c.out, "%s\n", systemStyle.Render("Viewer closed."))
}

func (c *Console) drawViewer(state viewer.State) {
	panel := fmt.Sprintf("%s\n\n%s", lipgloss.NewStyle().Bold(true).Render(state.Title), state.URL)
	fmt.Fprintf(c.out, "\n%s\n", viewerStyle.Render(panel))
}

// ExportDebugLog writes the diagnostic log to a timestamped JSON file and
// returns its name.
func (c *Console) ExportDebugLog() (string, error) {
	meta := debuglog.ExportMeta{
		ClientInfo:  fmt.Sprintf("srla-chat/%s %s/%s", clientVersion, runtime.GOOS, runtime.GOARCH),
		WindowSize:  windowSize(),
		ChatHistory: c.store.Snapshot(),
	}
	data, err := c.recorder.Export(meta)
	if err != nil {
		return "", err
	}
	name := "debug-log-" + time.Now().Format("20060102-150405") + ".json"
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

func windowSize() string {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return "unknown"
	}
	return strconv.Itoa(w) + "x" + strconv.Itoa(h)
}

// SelectPageLabel activates the pagination link whose label matches, e.g.
// "Previous", "Next" or a page number. Unknown labels are ignored with a
// hint.
func (c *Console) SelectPageLabel(label string) (pagination.Link, bool) {
	for _, link := range c.links {
		if strings.EqualFold(link.Label, label) {
			return link, true
		}
	}
	return pagination.Link{}, false
}
