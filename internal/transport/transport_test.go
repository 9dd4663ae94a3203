package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/config"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/history"
)

func TestSend_EncodesWireFormat(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Write([]byte(`{"data":{"final_result":{"output":{"status":"success","summary":"ok"}}}}`))
	}))
	defer srv.Close()

	c := NewClient(config.EndpointConfig{URL: srv.URL})
	out := c.Send(context.Background(), "hello", []history.Turn{
		{Role: history.RoleUser, Content: "hello"},
	})

	require.NoError(t, out.Err)
	require.Equal(t, http.StatusOK, out.Status)

	require.Equal(t, "hello", got["query"])
	chats := got["chats"].([]any)
	require.Len(t, chats, 1)
	turn := chats[0].(map[string]any)
	require.Equal(t, "user", turn["role"])
	content := turn["content"].([]any)
	part := content[0].(map[string]any)
	require.Equal(t, "text", part["type"])
	require.Equal(t, "hello", part["text"])
}

func TestSend_ReturnsNonOKBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"upstream down"}`))
	}))
	defer srv.Close()

	out := NewClient(config.EndpointConfig{URL: srv.URL}).Send(context.Background(), "q", nil)
	require.NoError(t, out.Err)
	require.Equal(t, http.StatusServiceUnavailable, out.Status)
	require.JSONEq(t, `{"error":"upstream down"}`, string(out.Body))
}

func TestSend_NetworkFailure(t *testing.T) {
	out := NewClient(config.EndpointConfig{URL: "http://127.0.0.1:1/chat"}).Send(context.Background(), "q", nil)
	require.Error(t, out.Err)
}

func TestSend_EmptyHistoryEncodesAsEmptyList(t *testing.T) {
	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	NewClient(config.EndpointConfig{URL: srv.URL}).Send(context.Background(), "first", nil)
	require.JSONEq(t, `{"query":"first","chats":[]}`, string(raw))
}
