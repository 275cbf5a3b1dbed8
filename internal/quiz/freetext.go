package quiz

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/verte-zerg/kanjiquiz/internal/catalog"
	"github.com/verte-zerg/kanjiquiz/internal/kanken"
)

const (
	DefaultSeconds   = 60
	DefaultBonus     = 15
	DefaultHintLimit = 2
)

// FreeTextOptions configures a FreeTextSession. Zero values select the defaults.
type FreeTextOptions struct {
	Seconds   int
	Bonus     int // seconds added per correct answer; negative disables
	Unlimited bool
	HintLimit int
	Labels    kanken.Labeler
	Scheduler Scheduler
	Logger    *slog.Logger
}

func (o FreeTextOptions) withDefaults() FreeTextOptions {
	if o.Seconds <= 0 {
		o.Seconds = DefaultSeconds
	}
	if o.Bonus < 0 {
		o.Bonus = 0
	} else if o.Bonus == 0 {
		o.Bonus = DefaultBonus
	}
	if o.HintLimit <= 0 {
		o.HintLimit = DefaultHintLimit
	}
	if o.Labels == nil {
		o.Labels = kanken.SchoolLabels{}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Feedback describes the result of the latest answer.
type Feedback struct {
	Correct bool
	Member  catalog.Member
	Points  int
}

// FreeTextState is a snapshot of a FreeTextSession. Slices are copies.
type FreeTextState struct {
	ID            string
	CategoryKey   string
	CategoryLabel string
	Total         int
	Found         []catalog.Member
	Score         int
	SecondsLeft   int
	Unlimited     bool
	HintVisible   bool
	Hints         []string
	LastFeedback  *Feedback
	Phase         Phase
	Cleared       bool
}

// FreeTextSession runs the recall-every-member game for one category.
type FreeTextSession struct {
	eventQueue

	id       string
	category catalog.Category
	opts     FreeTextOptions
	log      *slog.Logger

	phase     Phase
	found     []catalog.Member
	foundKeys map[string]struct{}
	score     int
	timer     *Timer
	unlimited bool

	hintVisible bool
	hints       []string
	hintsStale  bool

	lastFeedback *Feedback
	cleared      bool
}

// NewFreeTextSession prepares a session in the explaining phase. It returns
// ErrNoContent when the category has no members.
func NewFreeTextSession(category catalog.Category, opts FreeTextOptions) (*FreeTextSession, error) {
	if len(category.Members) == 0 {
		return nil, fmt.Errorf("category %q: %w", category.Key, ErrNoContent)
	}
	category.Members = catalog.MergeDuplicates(category.Members)
	opts = opts.withDefaults()
	id := uuid.NewString()
	s := &FreeTextSession{
		id:         id,
		category:   category,
		opts:       opts,
		log:        opts.Logger.With("session", id, "category", category.Key),
		phase:      PhaseExplaining,
		foundKeys:  map[string]struct{}{},
		unlimited:  opts.Unlimited,
		hintsStale: true,
	}
	s.log.Debug("free-text session created", "members", len(category.Members))
	return s, nil
}

// Start leaves the explaining phase and starts the countdown.
func (s *FreeTextSession) Start() {
	if s.phase != PhaseExplaining {
		return
	}
	s.phase = PhaseActive
	s.score = 0
	s.found = nil
	s.foundKeys = map[string]struct{}{}
	s.hintsStale = true
	s.timer = NewTimer(s.opts.Scheduler, s.opts.Seconds, s.unlimited)
	s.timer.Start(s.expire)
	s.log.Debug("free-text session started", "seconds", s.opts.Seconds, "unlimited", s.unlimited)
}

// SubmitAnswer checks text against the unfound members. Blank text and calls
// outside the active phase are ignored.
func (s *FreeTextSession) SubmitAnswer(text string) {
	if s.phase != PhaseActive || strings.TrimSpace(text) == "" {
		return
	}
	matched, ok := FindMatch(s.Remaining(), text)
	if !ok {
		s.lastFeedback = &Feedback{Correct: false}
		s.emit(Event{Kind: EventIncorrect, Score: s.score, Total: len(s.category.Members)})
		return
	}
	if _, dup := s.foundKeys[matched.Key]; dup {
		return
	}
	points := Points(matched.Tier)
	s.found = append(s.found, matched)
	s.foundKeys[matched.Key] = struct{}{}
	s.score += points
	s.timer.AddBonus(s.opts.Bonus)
	s.lastFeedback = &Feedback{Correct: true, Member: matched, Points: points}
	s.emit(Event{Kind: EventCorrect, Member: matched, Points: points, Score: s.score, Total: len(s.category.Members)})
	s.log.Debug("answer matched", "member", matched.Key, "points", points, "score", s.score)

	if s.hintVisible {
		s.refreshHints(matched.Key)
	} else {
		s.hintsStale = true
	}
	if len(s.found) == len(s.category.Members) {
		s.finish(true, EventCleared)
	}
}

// ToggleHint shows or hides the hint list. Revealing rebuilds the list when
// answers arrived since it was last built.
func (s *FreeTextSession) ToggleHint() {
	if s.phase != PhaseActive {
		return
	}
	if s.hintVisible {
		s.hintVisible = false
		return
	}
	s.hintVisible = true
	if s.hintsStale {
		s.refreshHints("")
	}
	s.emit(Event{Kind: EventHint, Score: s.score, Total: len(s.category.Members)})
}

// ToggleTimerMode switches between a limited and an unlimited clock. Score and
// found members are unaffected.
func (s *FreeTextSession) ToggleTimerMode() {
	if s.phase != PhaseExplaining && s.phase != PhaseActive {
		return
	}
	s.unlimited = !s.unlimited
	if s.timer != nil {
		s.timer.SetUnlimited(s.unlimited)
	}
	s.log.Debug("timer mode toggled", "unlimited", s.unlimited)
}

// End stops an active session early. The result is not a clear.
func (s *FreeTextSession) End() {
	if s.phase != PhaseActive {
		return
	}
	s.finish(false, EventEnded)
}

// Close releases the timer. Call it when the session is discarded.
func (s *FreeTextSession) Close() {
	if s.timer != nil {
		s.timer.Cancel()
	}
}

// Replay returns a fresh session for the same category, keeping the timer mode.
func (s *FreeTextSession) Replay() (*FreeTextSession, error) {
	s.Close()
	opts := s.opts
	opts.Unlimited = s.unlimited
	return NewFreeTextSession(s.category, opts)
}

// Remaining returns the unfound members in category order.
func (s *FreeTextSession) Remaining() []catalog.Member {
	out := make([]catalog.Member, 0, len(s.category.Members)-len(s.found))
	for _, m := range s.category.Members {
		if _, ok := s.foundKeys[m.Key]; ok {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Phase returns the current phase.
func (s *FreeTextSession) Phase() Phase { return s.phase }

// State returns a snapshot for rendering.
func (s *FreeTextSession) State() FreeTextState {
	st := FreeTextState{
		ID:            s.id,
		CategoryKey:   s.category.Key,
		CategoryLabel: s.category.Label,
		Total:         len(s.category.Members),
		Found:         append([]catalog.Member(nil), s.found...),
		Score:         s.score,
		SecondsLeft:   s.opts.Seconds,
		Unlimited:     s.unlimited,
		HintVisible:   s.hintVisible,
		Phase:         s.phase,
		Cleared:       s.cleared,
	}
	if s.timer != nil {
		st.SecondsLeft = s.timer.SecondsLeft()
	}
	if s.hintVisible {
		st.Hints = append([]string(nil), s.hints...)
	}
	if s.lastFeedback != nil {
		fb := *s.lastFeedback
		st.LastFeedback = &fb
	}
	return st
}

func (s *FreeTextSession) refreshHints(excludeKey string) {
	s.hints = GenerateHints(s.Remaining(), excludeKey, s.opts.HintLimit, s.opts.Labels)
	s.hintsStale = false
}

func (s *FreeTextSession) expire() {
	if s.phase != PhaseActive {
		return
	}
	s.finish(false, EventTimeout)
}

func (s *FreeTextSession) finish(cleared bool, kind EventKind) {
	s.phase = PhaseEnded
	s.cleared = cleared
	s.timer.Cancel()
	s.emit(Event{Kind: kind, Score: s.score, Total: len(s.category.Members)})
	s.log.Debug("free-text session ended", "reason", kind.String(), "score", s.score, "found", len(s.found))
}
