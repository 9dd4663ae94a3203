// Package viewer owns the embedded document viewer state: a split view
// keyed by a citation URL, independent of session state.
package viewer

import (
	"net/url"
	"strings"
)

// State is the current viewer layout. Zero value means closed, full-width
// chat.
type State struct {
	Open  bool
	URL   string
	Title string
}

// Controller opens and closes the viewer. Open and Close are idempotent and
// have no failure mode; the URL is never validated for reachability.
type Controller struct {
	prefix string
	state  State
}

// NewController creates a viewer that intercepts links containing prefix.
func NewController(prefix string) *Controller {
	return &Controller{prefix: prefix}
}

// Open switches to the split view for a document URL. The title is the last
// path segment of the decoded URL, stripped of any query string.
func (c *Controller) Open(rawURL string) State {
	c.state = State{Open: true, URL: rawURL, Title: titleFor(rawURL)}
	return c.state
}

// Close restores the full-width layout and clears the viewer source.
func (c *Controller) Close() State {
	c.state = State{}
	return c.state
}

// State returns the current layout.
func (c *Controller) State() State {
	return c.state
}

// Intercepts reports whether a link should open in the viewer rather than
// behave as an ordinary hyperlink.
func (c *Controller) Intercepts(href string) bool {
	return c.prefix != "" && strings.Contains(href, c.prefix)
}

func titleFor(rawURL string) string {
	decoded, err := url.QueryUnescape(rawURL)
	if err != nil {
		decoded = rawURL
	}
	title := decoded
	if i := strings.LastIndex(title, "/"); i >= 0 {
		title = title[i+1:]
	}
	if i := strings.Index(title, "?"); i >= 0 {
		title = title[:i]
	}
	return title
}
