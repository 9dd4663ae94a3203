// Package transport implements the HTTP client for the chat endpoint.
// One POST per user action; no retries, no client-side cancellation beyond
// the caller's context.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/classify"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/config"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/history"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/logger"
)

// Wire shapes. History turns travel as content-block lists even though the
// client stores plain text.
type request struct {
	Query string     `json:"query"`
	Chats []wireTurn `json:"chats"`
}

type wireTurn struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Client posts chat queries to a single endpoint URL.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a chat endpoint client. A zero timeout leaves the
// request bounded only by the remote's own limits.
func NewClient(cfg config.EndpointConfig) *Client {
	return &Client{
		url:  cfg.URL,
		http: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// Send issues one chat request and returns the raw outcome for
// classification. Transport-level failures are reported in Outcome.Err;
// any HTTP response, whatever its status, is returned as status + body.
func (c *Client) Send(ctx context.Context, query string, chats []history.Turn) classify.Outcome {
	body, err := json.Marshal(encodeRequest(query, chats))
	if err != nil {
		return classify.Outcome{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return classify.Outcome{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.L.Warn("chat request failed", "url", c.url, "error", err)
		return classify.Outcome{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return classify.Outcome{Err: err}
	}
	logger.L.Debug("chat response", "status", resp.StatusCode, "bytes", len(data))
	return classify.Outcome{Status: resp.StatusCode, Body: data}
}

func encodeRequest(query string, chats []history.Turn) request {
	wire := make([]wireTurn, 0, len(chats))
	for _, turn := range chats {
		wire = append(wire, wireTurn{
			Role:    turn.Role,
			Content: []contentPart{{Type: "text", Text: turn.Content}},
		})
	}
	return request{Query: query, Chats: wire}
}
