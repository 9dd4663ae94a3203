// Package session orchestrates the conversation: it accepts user input,
// mutates history, calls the transport, classifies the outcome and emits
// render models for a presentation layer to draw. It never touches the UI
// directly.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/qmuntal/stateless"

	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/classify"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/debuglog"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/history"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/logger"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/render"
	"github.com/NguyenQuangHuy1305/srla-chatbot-v2/internal/trim"
)

// FSM States
type FSMState stateless.State

var (
	StateIdle             FSMState = "Idle"
	StateAwaitingResponse FSMState = "AwaitingResponse"
)

// FSM Triggers
type FSMTrigger stateless.Trigger

var (
	TriggerSubmit  FSMTrigger = "Submit"
	TriggerSettled FSMTrigger = "Settled"
)

// ErrBusy is returned when a submission arrives while a request is in
// flight. One request at a time; the caller decides whether to queue or
// drop.
var ErrBusy = errors.New("session: a request is already in flight")

// Transport issues one chat request and reports its raw settlement. The
// concrete implementation lives in internal/transport.
type Transport interface {
	Send(ctx context.Context, query string, chats []history.Turn) classify.Outcome
}

// Listener receives presentation events. All calls happen on the goroutine
// that called Submit.
type Listener interface {
	// OnRender delivers one turn to draw. Models are not retained.
	OnRender(model render.Model)
	// OnTyping toggles the transient typing indicator.
	OnTyping(active bool)
	// OnPageInfo replaces the pagination descriptor wholesale; nil hides
	// the surface.
	OnPageInfo(info *classify.PageInfo)
}

// Session is the conversation state machine.
type Session struct {
	transport  Transport
	store      *history.Store
	classifier *classify.Classifier
	recorder   *debuglog.Recorder
	listener   Listener
	newID      func() string
	fsm        *stateless.StateMachine
}

// New wires a session. All collaborators are required except the recorder,
// which may be nil to disable diagnostics.
func New(t Transport, store *history.Store, classifier *classify.Classifier, recorder *debuglog.Recorder, listener Listener) *Session {
	s := &Session{
		transport:  t,
		store:      store,
		classifier: classifier,
		recorder:   recorder,
		listener:   listener,
		newID:      uuid.NewString,
	}

	fsm := stateless.NewStateMachine(StateIdle)
	fsm.Configure(StateIdle).
		Permit(TriggerSubmit, StateAwaitingResponse)
	fsm.Configure(StateAwaitingResponse).
		Permit(TriggerSettled, StateIdle)
	s.fsm = fsm

	return s
}

// Submit sends a user-typed query: the query becomes a visible user bubble
// and a history turn before the transport call goes out.
func (s *Session) Submit(ctx context.Context, text string) error {
	return s.submit(ctx, text, true)
}

// SubmitQuery sends a query with explicit control over announcement.
// Pagination uses announce=false: the synthesized query still reaches the
// transport but produces no user bubble and no history turn.
func (s *Session) SubmitQuery(ctx context.Context, text string, announce bool) error {
	return s.submit(ctx, text, announce)
}

// State returns the current FSM state.
func (s *Session) State() FSMState {
	return s.fsm.MustState().(FSMState)
}

func (s *Session) submit(ctx context.Context, text string, announce bool) error {
	query := strings.TrimSpace(text)
	if query == "" {
		// Input error: silently ignored, no state change, no message.
		return nil
	}

	if s.State() != StateIdle {
		return ErrBusy
	}
	if err := s.fsm.FireCtx(ctx, TriggerSubmit); err != nil {
		return ErrBusy
	}

	s.record("submit", map[string]any{"query": query, "announce": announce})

	if announce {
		s.store.Append(history.Turn{Role: history.RoleUser, Content: query})
		s.listener.OnRender(render.Model{
			ID:             s.newID(),
			Role:           render.RoleUser,
			DisplayContent: query,
		})
	}

	s.listener.OnTyping(true)
	out := s.transport.Send(ctx, query, s.store.Snapshot())
	s.listener.OnTyping(false)

	s.settle(out)

	if err := s.fsm.FireCtx(ctx, TriggerSettled); err != nil {
		logger.L.Warn("session FSM settle transition failed", "error", err)
	}
	return nil
}

// settle classifies the outcome and updates history, render surface and
// pagination. A panic here is a programming error: it is recorded for
// diagnostics and swallowed so the next submission still works; it is never
// turned into a chat message.
func (s *Session) settle(out classify.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.L.Error("recovered while handling chat response", "panic", r)
			s.record("panic", fmt.Sprint(r))
		}
	}()

	s.record("response", map[string]any{"status": out.Status, "transport_error": out.Err != nil})

	result := s.classifier.Classify(out)
	switch result.Kind {
	case classify.KindSuccess:
		s.record("classification", "success")
		s.store.Append(history.Turn{
			Role:    history.RoleAssistant,
			Content: trim.ForHistory(result.Summary),
		})
		s.listener.OnRender(render.Model{
			ID:             s.newID(),
			Role:           render.RoleAssistant,
			DisplayContent: trim.ForDisplay(result.Summary),
			Citations:      render.ParseCitations(result.References),
			Markup:         true,
		})
		s.listener.OnPageInfo(result.Page)
	default:
		if result.Kind == classify.KindFatalFormat {
			s.record("classification", "unexpected_format")
		} else {
			s.record("classification", "recoverable_error")
		}
		// The user turn already appended stays; nothing else enters
		// history on a failure.
		s.listener.OnRender(render.Model{
			ID:             s.newID(),
			Role:           render.RoleSystem,
			DisplayContent: result.Message,
		})
		s.listener.OnPageInfo(nil)
	}
}

func (s *Session) record(kind string, info any) {
	if s.recorder != nil {
		s.recorder.Record(kind, info)
	}
}
