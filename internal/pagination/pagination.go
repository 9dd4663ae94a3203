// Package pagination derives navigable page links from a page-info
// descriptor. Navigation happens only by re-submitting a synthesized query
// through the session; there is no page-index API on the transport.
package pagination

import (
	"context"
	"fmt"
	"strconv"

	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/classify"
)

// LinkKind discriminates the three link flavors.
type LinkKind int

const (
	KindPrevious LinkKind = iota
	KindPage
	KindNext
)

// Link is one activatable element of the pagination surface. The active
// page link carries no query; activating it is a no-op.
type Link struct {
	Kind   LinkKind
	Label  string
	Page   int
	Query  string
	Active bool
}

// Links derives the link row for a descriptor. A nil or invalid descriptor
// yields nil, meaning the surface is hidden.
func Links(info *classify.PageInfo) []Link {
	if !info.Valid() {
		return nil
	}

	var links []Link
	if info.CurrentPage > 1 {
		links = append(links, Link{
			Kind:  KindPrevious,
			Label: "Previous",
			Page:  info.CurrentPage - 1,
			Query: pageQuery(info.CurrentPage - 1),
		})
	}
	for page := 1; page <= info.TotalPages; page++ {
		link := Link{Kind: KindPage, Label: strconv.Itoa(page), Page: page}
		if page == info.CurrentPage {
			link.Active = true
		} else {
			link.Query = pageQuery(page)
		}
		links = append(links, link)
	}
	if info.CurrentPage < info.TotalPages {
		links = append(links, Link{
			Kind:  KindNext,
			Label: "Next",
			Page:  info.CurrentPage + 1,
			Query: pageQuery(info.CurrentPage + 1),
		})
	}
	return links
}

func pageQuery(page int) string {
	return fmt.Sprintf("Show me page %d", page)
}

// Submitter is the slice of the session pagination needs.
type Submitter interface {
	SubmitQuery(ctx context.Context, query string, announce bool) error
}

// Controller keeps the current link row and re-issues session requests on
// selection.
type Controller struct {
	session  Submitter
	announce bool
	links    []Link
}

// NewController wires pagination to a session. announce controls whether
// synthesized page queries produce a visible user bubble.
func NewController(session Submitter, announce bool) *Controller {
	return &Controller{session: session, announce: announce}
}

// Update replaces the link row wholesale from a new descriptor and returns
// it. Nil means hide the surface.
func (c *Controller) Update(info *classify.PageInfo) []Link {
	c.links = Links(info)
	return c.links
}

// Links returns the current link row.
func (c *Controller) Links() []Link {
	return c.links
}

// Select activates a link. The active page link is a no-op.
func (c *Controller) Select(ctx context.Context, link Link) error {
	if link.Active || link.Query == "" {
		return nil
	}
	return c.session.SubmitQuery(ctx, link.Query, c.announce)
}
