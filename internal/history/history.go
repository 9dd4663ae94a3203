// Package history holds the bounded in-memory conversation history.
// The buffer lives for the process lifetime and is never persisted.
package history

import "sync"

// MaxTurns is the fixed history capacity. Older turns are evicted FIFO so
// outgoing requests always carry at most this many turns of context.
const MaxTurns = 5

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single stored exchange entry. Immutable once appended. Assistant
// turns hold the trimmed retention variant of the content, which may differ
// from what was displayed.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Store is a capacity-bounded FIFO buffer of turns. Append cannot fail.
type Store struct {
	mu    sync.Mutex
	turns []Turn
}

func NewStore() *Store {
	return &Store{}
}

// Append records a turn, normalizing any non-user role to assistant, and
// evicts from the front once the buffer exceeds MaxTurns.
func (s *Store) Append(t Turn) {
	if t.Role != RoleUser {
		t.Role = RoleAssistant
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, t)
	if len(s.turns) > MaxTurns {
		s.turns = s.turns[len(s.turns)-MaxTurns:]
	}
}

// Snapshot returns a copy of the buffered turns in order, oldest first.
func (s *Store) Snapshot() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len reports the number of buffered turns.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}
