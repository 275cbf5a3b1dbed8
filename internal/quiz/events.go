// Package quiz implements the quiz engine: answer matching, scoring, hints,
// the countdown timer, and the free-text and choice session state machines.
//
// Sessions are single-threaded. Every method must be called from the goroutine
// that owns the session; timer ticks are delivered through a Scheduler so they
// run on that goroutine too.
package quiz

import (
	"errors"

	"github.com/verte-zerg/kanjiquiz/internal/catalog"
)

// ErrNoContent is returned when a session would start with nothing to ask.
var ErrNoContent = errors.New("no quiz content")

// Phase is a session state.
type Phase int

const (
	PhaseExplaining Phase = iota // rules shown, timer idle
	PhaseActive                  // accepting answers
	PhaseAnswered                // choice locked, waiting for Advance
	PhaseEnded                   // free-text session over
	PhaseFinished                // choice session over
)

func (p Phase) String() string {
	switch p {
	case PhaseExplaining:
		return "explaining"
	case PhaseActive:
		return "active"
	case PhaseAnswered:
		return "answered"
	case PhaseEnded:
		return "ended"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// EventKind identifies a feedback event.
type EventKind int

const (
	EventCorrect EventKind = iota
	EventIncorrect
	EventHint
	EventTimeout
	EventCleared
	EventEnded
	EventFinished
)

func (k EventKind) String() string {
	switch k {
	case EventCorrect:
		return "correct"
	case EventIncorrect:
		return "incorrect"
	case EventHint:
		return "hint"
	case EventTimeout:
		return "timeout"
	case EventCleared:
		return "cleared"
	case EventEnded:
		return "ended"
	case EventFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Event is a one-shot notification for the view layer.
type Event struct {
	Kind   EventKind
	Member catalog.Member // set for EventCorrect
	Points int            // points awarded by EventCorrect
	Score  int
	Total  int // question count for EventFinished, member count otherwise
}

type eventQueue struct {
	pending []Event
}

func (q *eventQueue) emit(ev Event) {
	q.pending = append(q.pending, ev)
}

// DrainEvents returns the events emitted since the previous call and clears the queue.
func (q *eventQueue) DrainEvents() []Event {
	out := q.pending
	q.pending = nil
	return out
}
