package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/kanjiquiz/internal/catalog"
	"github.com/verte-zerg/kanjiquiz/internal/kanken"
	"github.com/verte-zerg/kanjiquiz/internal/quiz"
	"github.com/verte-zerg/kanjiquiz/internal/stats"
)

const progressBarWidth = 20

// YojiOptions configures the idiom choice quiz UI.
type YojiOptions struct {
	Pool    *catalog.Pool
	Session quiz.ChoiceOptions
	Logger  *slog.Logger
}

// YojiModel implements the Bubble Tea idiom choice quiz.
type YojiModel struct {
	opts YojiOptions
	log  *slog.Logger

	width  int
	height int

	session *quiz.ChoiceSession
	cursor  int
	status  string
	correct bool
	errMsg  string
}

// NewYojiModel samples the first session. It fails with quiz.ErrNoContent when
// the pool holds no idiom at the requested level.
func NewYojiModel(opts YojiOptions) (*YojiModel, error) {
	if opts.Pool == nil {
		return nil, fmt.Errorf("yoji: idiom pool is nil")
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Session.Logger == nil {
		opts.Session.Logger = opts.Logger
	}
	m := &YojiModel{opts: opts, log: opts.Logger}
	if err := m.newSession(); err != nil {
		return nil, err
	}
	return m, nil
}

// Session returns the running session.
func (m *YojiModel) Session() *quiz.ChoiceSession {
	return m.session
}

// Init implements tea.Model.
func (m *YojiModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *YojiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch m.session.Phase() {
		case quiz.PhaseActive:
			m.updateActive(msg)
		case quiz.PhaseAnswered:
			switch msg.String() {
			case "enter", " ", "n", "right", "l":
				m.session.Advance()
				m.cursor = 0
				m.status = ""
			}
		case quiz.PhaseFinished:
			switch msg.String() {
			case "r":
				if err := m.newSession(); err != nil {
					m.errMsg = err.Error()
				}
			case "enter", "esc":
				return m, tea.Quit
			}
		}
		m.dispatch()
		return m, nil
	}
	return m, nil
}

func (m *YojiModel) updateActive(msg tea.KeyMsg) {
	st := m.session.State()
	switch key := msg.String(); key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(st.Choices)-1 {
			m.cursor++
		}
	case "enter", " ":
		if m.cursor < len(st.Choices) {
			m.session.SelectChoice(st.Choices[m.cursor].Key)
		}
	default:
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > len(st.Choices) {
			return
		}
		m.cursor = n - 1
		m.session.SelectChoice(st.Choices[n-1].Key)
	}
}

func (m *YojiModel) newSession() error {
	session, err := quiz.NewChoiceSession(m.opts.Pool.Members(), m.opts.Session)
	if err != nil {
		return err
	}
	m.session = session
	m.cursor = 0
	m.status = ""
	m.errMsg = ""
	st := session.State()
	m.log.Info("choice session opened", "session", st.ID, "level", st.Level, "mode", st.Kind.String(), "questions", st.Total)
	return nil
}

func (m *YojiModel) dispatch() {
	for _, ev := range m.session.DrainEvents() {
		m.log.Debug("session event", "kind", ev.Kind.String(), "score", ev.Score)
		switch ev.Kind {
		case quiz.EventCorrect, quiz.EventIncorrect:
			m.correct = ev.Kind == quiz.EventCorrect
			m.status = stats.SelectionFeedback(m.correct, m.session.State().Question.Answer)
		}
	}
}

// View implements tea.Model.
func (m *YojiModel) View() string {
	st := m.session.State()
	switch st.Phase {
	case quiz.PhaseFinished:
		return layout(m.width, m.height, m.renderFinish(st), "r retry · q quit")
	case quiz.PhaseAnswered:
		return layout(m.width, m.height, m.renderQuestion(st), "enter next · q quit")
	default:
		return layout(m.width, m.height, m.renderQuestion(st), "1-9 / ↑↓ enter choose · q quit")
	}
}

func (m *YojiModel) renderQuestion(st quiz.ChoiceState) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(levelTitle(st.Level)))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("問題 %d/%d  正解 %d  %s", st.Index+1, st.Total, st.Score, progressBar(st.Progress))))
	b.WriteString("\n\n")
	if st.Kind == quiz.ChoiceMissingChar {
		b.WriteString("空欄に入る漢字は？\n")
		b.WriteString(cardStyle.Render(accentStyle.Render(st.Question.Prompt)))
	} else {
		b.WriteString("この意味の四字熟語は？\n")
		b.WriteString(cardStyle.Render(wrapStyledRunes(styledText(st.Question.Prompt, correctStyle), m.innerWidth()-4)))
	}
	b.WriteString("\n\n")
	for i, c := range st.Choices {
		b.WriteString(m.renderChoice(st, i, c))
		b.WriteString("\n")
	}
	if st.Phase == quiz.PhaseAnswered {
		b.WriteString("\n")
		style := incorrectStyle
		if m.correct {
			style = accentStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
		b.WriteString(renderIdiomDetail(st.Question.Member))
	}
	return b.String()
}

func (m *YojiModel) renderChoice(st quiz.ChoiceState, i int, c quiz.Choice) string {
	line := fmt.Sprintf("%d. %s", i+1, c.Key)
	if st.Phase == quiz.PhaseActive {
		if i == m.cursor {
			return accentStyle.Render("> " + line)
		}
		return correctStyle.Render("  " + line)
	}
	switch {
	case c.Key == st.Question.Answer:
		return accentStyle.Render("○ " + line)
	case c.Key == st.Selection:
		return incorrectStyle.Render("× " + line)
	default:
		return pendingStyle.Render("  " + line)
	}
}

func (m *YojiModel) renderFinish(st quiz.ChoiceState) string {
	pct := m.session.Percentage()
	var b strings.Builder
	if stats.RoundPercent(pct) >= 100 {
		b.WriteString(celebrateStyle.Render("満点！"))
		b.WriteString("\n")
	}
	b.WriteString(titleStyle.Render("クイズ終了！"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d / %d 問正解 (%d%%)\n", st.Score, st.Total, stats.RoundPercent(pct)))
	b.WriteString(stats.ChoiceVerdict(pct))
	b.WriteString("\n\n")
	for _, h := range st.History {
		idiom := h.Question.Member.Key
		if h.Correct {
			b.WriteString(accentStyle.Render("○ " + idiom))
		} else {
			b.WriteString(incorrectStyle.Render(fmt.Sprintf("× %s (選択: %s)", idiom, h.Selected)))
		}
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
	}
	return b.String()
}

func (m *YojiModel) innerWidth() int {
	if m.width == 0 {
		return 60
	}
	return contentWidthFor(m.width)
}

func renderIdiomDetail(member catalog.Member) string {
	lines := []string{accentStyle.Render(member.Key)}
	if len(member.Readings) > 0 {
		lines = append(lines, "読み: "+member.Readings[0])
	}
	if member.Meaning != "" {
		lines = append(lines, "意味: "+member.Meaning)
	}
	if member.Synonym != "" {
		lines = append(lines, "類義語: "+member.Synonym)
	}
	if member.Antonym != "" {
		lines = append(lines, "対義語: "+member.Antonym)
	}
	if member.Note != "" {
		lines = append(lines, hintStyle.Render(member.Note))
	}
	return strings.Join(lines, "\n")
}

func levelTitle(level float64) string {
	return fmt.Sprintf("四字熟語 %s (%s)", kanken.LevelLabels{}.LabelFor(level), kanken.SchoolLabels{}.LabelFor(level))
}

func progressBar(percent float64) string {
	filled := int(percent / 100 * progressBarWidth)
	filled = max(0, min(progressBarWidth, filled))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", progressBarWidth-filled) + "]"
}
