package quiz

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/verte-zerg/kanjiquiz/internal/catalog"
	"github.com/verte-zerg/kanjiquiz/internal/generator"
)

const (
	DefaultQuestions   = 10
	DefaultDistractors = 3
)

// ChoiceKind selects what a choice question asks for.
type ChoiceKind int

const (
	// ChoiceByMeaning shows a meaning and offers idioms.
	ChoiceByMeaning ChoiceKind = iota
	// ChoiceMissingChar hides one character of an idiom and offers characters.
	ChoiceMissingChar
)

func (k ChoiceKind) String() string {
	if k == ChoiceMissingChar {
		return "missing"
	}
	return "meaning"
}

// ParseChoiceKind parses "meaning" or "missing".
func ParseChoiceKind(s string) (ChoiceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "meaning":
		return ChoiceByMeaning, nil
	case "missing":
		return ChoiceMissingChar, nil
	default:
		return 0, fmt.Errorf("unknown choice mode %q (want meaning or missing)", s)
	}
}

// ChoiceOptions configures a ChoiceSession. Zero values select the defaults.
type ChoiceOptions struct {
	Kind        ChoiceKind
	Level       float64
	Questions   int
	Distractors int
	Source      generator.Source
	Logger      *slog.Logger
}

func (o ChoiceOptions) withDefaults() ChoiceOptions {
	if o.Questions <= 0 {
		o.Questions = DefaultQuestions
	}
	if o.Distractors <= 0 {
		o.Distractors = DefaultDistractors
	}
	if o.Source == nil {
		o.Source = generator.New()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Choice is one selectable answer. Member is zero for missing-character choices.
type Choice struct {
	Key    string
	Member catalog.Member
}

// Question is the prompt for one round.
type Question struct {
	Member       catalog.Member
	Prompt       string // meaning, or the idiom with one character masked
	Answer       string // key of the correct choice
	MissingIndex int    // rune index of the masked character, -1 for meaning questions
}

// MaskRune replaces the masked character in a missing-character prompt.
const MaskRune = '？'

// HistoryEntry records one answered question.
type HistoryEntry struct {
	Question Question
	Selected string
	Correct  bool
}

// ChoiceState is a snapshot of a ChoiceSession. Slices are copies.
type ChoiceState struct {
	ID        string
	Kind      ChoiceKind
	Level     float64
	Index     int
	Total     int
	Question  Question
	Choices   []Choice
	Selection string
	Score     int
	History   []HistoryEntry
	Phase     Phase
	Progress  float64
}

// ChoiceSession runs a fixed-length multiple-choice quiz over one level.
type ChoiceSession struct {
	eventQueue

	id   string
	opts ChoiceOptions
	log  *slog.Logger

	pool      []catalog.Member
	poolChars []string
	questions []catalog.Member

	index     int
	question  Question
	choices   []Choice
	selection string
	score     int
	history   []HistoryEntry
	phase     Phase
}

// NewChoiceSession samples the questions for opts.Level from pool and opens the
// first one. Distractors come from the whole pool. It returns ErrNoContent when
// no member has the requested level.
func NewChoiceSession(pool []catalog.Member, opts ChoiceOptions) (*ChoiceSession, error) {
	opts = opts.withDefaults()
	var leveled []catalog.Member
	for _, m := range pool {
		if m.Tier == opts.Level && m.Key != "" {
			leveled = append(leveled, m)
		}
	}
	if len(leveled) == 0 {
		return nil, fmt.Errorf("level %v: %w", opts.Level, ErrNoContent)
	}
	generator.Shuffle(opts.Source, leveled)
	if len(leveled) > opts.Questions {
		leveled = leveled[:opts.Questions]
	}

	id := uuid.NewString()
	s := &ChoiceSession{
		id:        id,
		opts:      opts,
		log:       opts.Logger.With("session", id, "level", opts.Level, "mode", opts.Kind.String()),
		pool:      append([]catalog.Member(nil), pool...),
		questions: leveled,
	}
	if opts.Kind == ChoiceMissingChar {
		s.poolChars = distinctChars(pool)
	}
	s.openQuestion()
	s.log.Debug("choice session created", "questions", len(leveled), "pool", len(pool))
	return s, nil
}

// SelectChoice locks in an answer for the current question. It is ignored
// once the question is answered or when key is not one of the choices.
func (s *ChoiceSession) SelectChoice(key string) {
	if s.phase != PhaseActive || !s.hasChoice(key) {
		return
	}
	correct := key == s.question.Answer
	s.selection = key
	s.phase = PhaseAnswered
	if correct {
		s.score++
	}
	s.history = append(s.history, HistoryEntry{Question: s.question, Selected: key, Correct: correct})
	kind := EventIncorrect
	if correct {
		kind = EventCorrect
	}
	s.emit(Event{Kind: kind, Member: s.question.Member, Points: boolToInt(correct), Score: s.score, Total: len(s.questions)})
}

// Advance moves past an answered question, finishing after the last one.
func (s *ChoiceSession) Advance() {
	if s.phase != PhaseAnswered {
		return
	}
	if s.index+1 == len(s.questions) {
		s.phase = PhaseFinished
		s.emit(Event{Kind: EventFinished, Score: s.score, Total: len(s.questions)})
		s.log.Debug("choice session finished", "score", s.score, "total", len(s.questions))
		return
	}
	s.index++
	s.openQuestion()
}

// Phase returns the current phase.
func (s *ChoiceSession) Phase() Phase { return s.phase }

// Percentage returns the share of correct answers over all questions.
func (s *ChoiceSession) Percentage() float64 {
	return Percentage(s.score, len(s.questions))
}

// State returns a snapshot for rendering.
func (s *ChoiceSession) State() ChoiceState {
	return ChoiceState{
		ID:        s.id,
		Kind:      s.opts.Kind,
		Level:     s.opts.Level,
		Index:     s.index,
		Total:     len(s.questions),
		Question:  s.question,
		Choices:   append([]Choice(nil), s.choices...),
		Selection: s.selection,
		Score:     s.score,
		History:   append([]HistoryEntry(nil), s.history...),
		Phase:     s.phase,
		Progress:  float64(s.index+1) / float64(len(s.questions)) * 100,
	}
}

func (s *ChoiceSession) openQuestion() {
	member := s.questions[s.index]
	s.selection = ""
	s.phase = PhaseActive
	if s.opts.Kind == ChoiceMissingChar {
		s.question, s.choices = s.missingCharQuestion(member)
	} else {
		s.question, s.choices = s.meaningQuestion(member)
	}
}

func (s *ChoiceSession) meaningQuestion(member catalog.Member) (Question, []Choice) {
	others := make([]catalog.Member, 0, len(s.pool))
	seen := map[string]struct{}{member.Key: {}}
	for _, m := range s.pool {
		if _, dup := seen[m.Key]; dup {
			continue
		}
		seen[m.Key] = struct{}{}
		others = append(others, m)
	}
	picked := generator.Sample(s.opts.Source, others, s.opts.Distractors)
	choices := make([]Choice, 0, len(picked)+1)
	for _, m := range picked {
		choices = append(choices, Choice{Key: m.Key, Member: m})
	}
	choices = append(choices, Choice{Key: member.Key, Member: member})
	generator.Shuffle(s.opts.Source, choices)
	q := Question{Member: member, Prompt: member.Meaning, Answer: member.Key, MissingIndex: -1}
	return q, choices
}

func (s *ChoiceSession) missingCharQuestion(member catalog.Member) (Question, []Choice) {
	runes := []rune(member.Key)
	idx := s.opts.Source.Intn(len(runes))
	answer := string(runes[idx])
	masked := append([]rune(nil), runes...)
	masked[idx] = MaskRune

	others := make([]string, 0, len(s.poolChars))
	for _, ch := range s.poolChars {
		if ch != answer {
			others = append(others, ch)
		}
	}
	picked := generator.Sample(s.opts.Source, others, s.opts.Distractors)
	choices := make([]Choice, 0, len(picked)+1)
	for _, ch := range picked {
		choices = append(choices, Choice{Key: ch})
	}
	choices = append(choices, Choice{Key: answer})
	generator.Shuffle(s.opts.Source, choices)
	q := Question{Member: member, Prompt: string(masked), Answer: answer, MissingIndex: idx}
	return q, choices
}

func (s *ChoiceSession) hasChoice(key string) bool {
	for _, c := range s.choices {
		if c.Key == key {
			return true
		}
	}
	return false
}

func distinctChars(pool []catalog.Member) []string {
	var out []string
	seen := map[rune]struct{}{}
	for _, m := range pool {
		for _, r := range m.Key {
			if _, dup := seen[r]; dup {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, string(r))
		}
	}
	return out
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
