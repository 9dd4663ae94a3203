// Package debuglog keeps an append-only in-session event log that can be
// exported on demand as a single JSON document. Entries are never mutated or
// removed before export.
package debuglog

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/history"
)

// Entry is one recorded event.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Info      any       `json:"info"`
}

// Recorder collects entries. Safe for concurrent callers; it only ever
// appends.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

// New creates a recorder. A nil clock means time.Now.
func New(now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{now: now}
}

// Record appends an event.
func (r *Recorder) Record(kind string, info any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Timestamp: r.now(), Type: kind, Info: info})
}

// Entries returns a copy of the recorded events in order.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// ExportMeta is the session context attached to an export.
type ExportMeta struct {
	ClientInfo  string         `json:"client_info"`
	WindowSize  string         `json:"window_size"`
	ChatHistory []history.Turn `json:"chat_history"`
}

type exportDoc struct {
	Log         []Entry        `json:"log"`
	Timestamp   time.Time      `json:"timestamp"`
	ClientInfo  string         `json:"client_info"`
	WindowSize  string         `json:"window_size"`
	ChatHistory []history.Turn `json:"chat_history"`
}

// Export renders the whole log plus metadata as one JSON document.
func (r *Recorder) Export(meta ExportMeta) ([]byte, error) {
	doc := exportDoc{
		Log:         r.Entries(),
		Timestamp:   r.now(),
		ClientInfo:  meta.ClientInfo,
		WindowSize:  meta.WindowSize,
		ChatHistory: meta.ChatHistory,
	}
	if doc.ChatHistory == nil {
		doc.ChatHistory = []history.Turn{}
	}
	if doc.Log == nil {
		doc.Log = []Entry{}
	}
	return json.MarshalIndent(doc, "", "  ")
}
