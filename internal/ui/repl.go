package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/pagination"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/session"
)

const helpText = `Commands:
  :open N    open source N in the document viewer
  :close     close the document viewer
  :prev      previous result page
  :next      next result page
  :page N    jump to result page N
  :debug     export the diagnostic log to a JSON file
  :help      show this help
  :quit      exit
Anything else is sent to the assistant.`

// Run drives the read-eval loop until EOF, Ctrl-C or :quit. Input is read
// only between requests, so submissions are naturally serialized; the
// session's busy rejection is a backstop.
func (c *Console) Run(ctx context.Context, sess *session.Session) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Fprintln(c.out, systemStyle.Render("Ask a question about your documents. Type :help for commands."))

	for {
		input, err := line.Prompt("> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if strings.HasPrefix(input, ":") {
			if quit := c.command(ctx, sess, input); quit {
				return nil
			}
			continue
		}

		line.AppendHistory(input)
		if err := sess.Submit(ctx, input); errors.Is(err, session.ErrBusy) {
			fmt.Fprintln(c.out, systemStyle.Render("Still waiting for the previous reply."))
		}
	}
}

func (c *Console) command(ctx context.Context, sess *session.Session, input string) (quit bool) {
	cmd, arg, _ := strings.Cut(input, " ")
	switch cmd {
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		fmt.Fprintln(c.out, systemStyle.Render(helpText))
	case ":open":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			fmt.Fprintln(c.out, systemStyle.Render("Usage: :open N"))
			return false
		}
		c.OpenCitation(n)
	case ":close":
		c.CloseViewer()
	case ":prev":
		c.selectPage(ctx, "Previous")
	case ":next":
		c.selectPage(ctx, "Next")
	case ":page":
		c.selectPage(ctx, strings.TrimSpace(arg))
	case ":debug":
		name, err := c.ExportDebugLog()
		if err != nil {
			fmt.Fprintln(c.out, systemStyle.Render("Export failed: "+err.Error()))
			return false
		}
		fmt.Fprintln(c.out, systemStyle.Render("Debug log written to "+name))
	default:
		fmt.Fprintln(c.out, systemStyle.Render("Unknown command. Type :help."))
	}
	return false
}

func (c *Console) selectPage(ctx context.Context, label string) {
	link, ok := c.SelectPageLabel(label)
	if !ok {
		fmt.Fprintln(c.out, systemStyle.Render("No such page link."))
		return
	}
	c.selectLink(ctx, link)
}

func (c *Console) selectLink(ctx context.Context, link pagination.Link) {
	if err := c.pages.Select(ctx, link); errors.Is(err, session.ErrBusy) {
		fmt.Fprintln(c.out, systemStyle.Render("Still waiting for the previous reply."))
	}
}
