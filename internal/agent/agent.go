package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/qmuntal/stateless" // FSM library

	"github.com/comigor/casehelper-go/internal/history"
	"github.com/comigor/casehelper-go/internal/llm"
	"github.com/comigor/casehelper-go/internal/logger"
)

// State of the request cycle.
type State string

const (
	StateIdle    State = "Idle"
	StateSending State = "Sending" // a completion is outstanding
)

// Trigger moves the request cycle between states.
type Trigger string

const (
	TriggerSend  Trigger = "Send"
	TriggerReply Trigger = "Reply" // success and failure both return to Idle
)

// FailureMessage is appended as the assistant turn when a completion fails.
const FailureMessage = "Sorry, I had trouble processing that. Please try again."

var (
	// ErrBusy rejects a question while another one is awaiting its completion.
	ErrBusy = errors.New("agent: a request is already in flight")
	// ErrEmptyQuestion rejects a blank question.
	ErrEmptyQuestion = errors.New("agent: empty question")
)

// Assistant drives one conversation: it records the user's question, asks the
// completion service and records the answer. At most one completion is
// outstanding; questions arriving meanwhile are rejected, not queued.
type Assistant struct {
	mu       sync.Mutex
	fsm      *stateless.StateMachine
	log      *history.Log
	client   llm.Client
	template llm.Template
	session  string
	l        *slog.Logger
}

// Option customises an Assistant.
type Option func(*Assistant)

// WithTemplate replaces the default prompt template.
func WithTemplate(t llm.Template) Option {
	return func(a *Assistant) { a.template = t }
}

// New creates a new assistant over log, answering with client.
func New(client llm.Client, log *history.Log, opts ...Option) *Assistant {
	a := &Assistant{
		log:      log,
		client:   client,
		template: llm.DefaultTemplate,
		session:  uuid.NewString(),
	}
	for _, o := range opts {
		o(a)
	}
	a.l = logger.ForSession(a.session)

	// Idle -> Sending on an accepted question, Sending -> Idle once an
	// assistant turn (answer or apology) is recorded. Send is not permitted
	// in Sending, which is the admission guard.
	fsm := stateless.NewStateMachineWithMode(StateIdle, stateless.FiringImmediate)
	fsm.Configure(StateIdle).
		Permit(TriggerSend, StateSending)
	fsm.Configure(StateSending).
		OnEntry(func(ctx context.Context, args ...any) error {
			a.l.Debug("FSM: Entering StateSending")
			return nil
		}).
		OnExit(func(ctx context.Context, args ...any) error {
			a.l.Debug("FSM: Leaving StateSending")
			return nil
		}).
		Permit(TriggerReply, StateIdle)
	a.fsm = fsm

	return a
}

// SessionID identifies this assistant's session in logs.
func (a *Assistant) SessionID() string { return a.session }

// State reports whether a completion is outstanding.
func (a *Assistant) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fsm.MustState().(State)
}

// Busy is shorthand for State() == StateSending.
func (a *Assistant) Busy() bool { return a.State() == StateSending }

// Log returns the conversation the assistant appends to.
func (a *Assistant) Log() *history.Log { return a.log }

// Ask records question as a user turn, requests a completion and records the
// reply. A failed completion is recorded as FailureMessage and is not an
// error. The only errors are rejections (ErrEmptyQuestion, ErrBusy), which
// leave the conversation untouched.
func (a *Assistant) Ask(ctx context.Context, question string) (history.Turn, error) {
	question = strings.TrimSpace(question)

	a.mu.Lock()
	if a.fsm.MustState() != StateIdle {
		a.mu.Unlock()
		a.l.Debug("question rejected while sending")
		return history.Turn{}, ErrBusy
	}
	if _, err := a.log.AppendUser(question); err != nil {
		a.mu.Unlock()
		return history.Turn{}, ErrEmptyQuestion
	}
	if err := a.fsm.Fire(TriggerSend); err != nil {
		a.mu.Unlock()
		return history.Turn{}, fmt.Errorf("FSM internal error: %w", err)
	}
	a.mu.Unlock()

	prompt := llm.ComposePrompt(a.template, question)
	a.l.Info("completion requested", "question_len", len(question))

	// The reply is recorded and the machine returned to Idle even if the
	// client panics, so later questions are not refused as busy.
	reply := FailureMessage
	defer func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.log.AppendAssistant(reply)
		if err := a.fsm.Fire(TriggerReply); err != nil {
			a.l.Warn("FSM fire error", "error", err)
		}
	}()

	// An accepted question always runs to an answer or an apology; the
	// caller going away does not abort it.
	out, err := a.client.Complete(context.WithoutCancel(ctx), prompt)
	if err != nil {
		a.l.Error("completion failed", "error", err)
	} else {
		reply = out
	}
	return history.Turn{Role: history.RoleAssistant, Text: reply}, nil
}
