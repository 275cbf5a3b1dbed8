package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kanjiquiz/internal/catalog"
	"github.com/verte-zerg/kanjiquiz/internal/quiz"
	"github.com/verte-zerg/kanjiquiz/internal/stats"
)

const noHints = "ヒントはありません"

// runMsg carries a scheduler callback onto the Bubble Tea goroutine.
type runMsg func()

// BusyuOptions configures the radical quiz UI.
type BusyuOptions struct {
	Index *catalog.Index
	// Radical preselects a category and skips the picker.
	Radical  string
	MinCount int
	Session  quiz.FreeTextOptions
	Logger   *slog.Logger
}

// BusyuModel implements the Bubble Tea radical quiz: category picker, rules,
// answer entry and the result screen.
type BusyuModel struct {
	opts BusyuOptions
	log  *slog.Logger
	send func(tea.Msg)

	width  int
	height int

	picker    table.Model
	hasPicker bool

	session *quiz.FreeTextSession
	input   textinput.Model

	status      string
	statusStyle lipgloss.Style
	errMsg      string
}

// NewBusyuModel builds the radical quiz UI. With opts.Radical set the session
// opens directly, otherwise the picker lists categories with at least
// opts.MinCount members.
func NewBusyuModel(opts BusyuOptions) (*BusyuModel, error) {
	if opts.Index == nil {
		return nil, fmt.Errorf("busyu: catalog index is nil")
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	m := &BusyuModel{
		opts:  opts,
		log:   opts.Logger,
		input: newAnswerInput(),
	}
	if opts.Radical != "" {
		if err := m.openCategory(opts.Radical); err != nil {
			return nil, err
		}
		return m, nil
	}
	entries := opts.Index.EntriesWithMin(opts.MinCount)
	if len(entries) == 0 {
		return nil, fmt.Errorf("no categories with at least %d kanji: %w", opts.MinCount, quiz.ErrNoContent)
	}
	m.picker = buildPicker(entries)
	m.hasPicker = true
	return m, nil
}

// SetSender routes timer ticks through send, normally tea.Program.Send.
func (m *BusyuModel) SetSender(send func(tea.Msg)) {
	m.send = send
}

// Session returns the running session, or nil while picking.
func (m *BusyuModel) Session() *quiz.FreeTextSession {
	return m.session
}

// Close releases the session timer.
func (m *BusyuModel) Close() {
	if m.session != nil {
		m.session.Close()
	}
}

// Init implements tea.Model.
func (m *BusyuModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *BusyuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.hasPicker {
			m.picker.SetHeight(max(3, msg.Height-6))
		}
		return m, nil
	case runMsg:
		msg()
		m.dispatch()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Close()
			return m, tea.Quit
		}
		if m.session == nil {
			return m.updatePicker(msg)
		}
		return m.updateSession(msg)
	}
	if m.session != nil && m.session.Phase() == quiz.PhaseActive {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *BusyuModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "enter":
		row := m.picker.SelectedRow()
		if len(row) == 0 {
			return m, nil
		}
		if err := m.openCategory(row[0]); err != nil {
			m.errMsg = err.Error()
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
}

func (m *BusyuModel) updateSession(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.session.Phase() {
	case quiz.PhaseExplaining:
		switch msg.String() {
		case "enter", " ":
			cmd = m.start()
		case "tab":
			m.session.ToggleTimerMode()
		case "esc":
			return m.leave()
		case "q":
			m.Close()
			return m, tea.Quit
		}
	case quiz.PhaseActive:
		switch msg.Type {
		case tea.KeyEnter:
			text := m.input.Value()
			m.input.Reset()
			m.session.SubmitAnswer(text)
		case tea.KeyTab:
			m.session.ToggleHint()
		case tea.KeyCtrlT:
			m.session.ToggleTimerMode()
		case tea.KeyEsc:
			m.session.End()
		default:
			m.input, cmd = m.input.Update(msg)
		}
	case quiz.PhaseEnded:
		switch msg.String() {
		case "r":
			cmd = m.replay()
		case "esc", "b":
			return m.leave()
		case "q", "enter":
			m.Close()
			return m, tea.Quit
		}
	}
	m.dispatch()
	return m, cmd
}

func (m *BusyuModel) openCategory(key string) error {
	cat, err := m.opts.Index.Category(key)
	if err != nil {
		return err
	}
	session, err := quiz.NewFreeTextSession(cat, m.sessionOptions())
	if err != nil {
		return err
	}
	m.session = session
	m.status = ""
	m.errMsg = ""
	m.log.Info("category opened", "category", cat.Key, "session", session.State().ID)
	return nil
}

func (m *BusyuModel) sessionOptions() quiz.FreeTextOptions {
	opts := m.opts.Session
	if opts.Scheduler == nil {
		opts.Scheduler = quiz.TickerScheduler{Post: m.post}
	}
	if opts.Logger == nil {
		opts.Logger = m.log
	}
	return opts
}

func (m *BusyuModel) post(fn func()) {
	if m.send != nil {
		m.send(runMsg(fn))
	}
}

func (m *BusyuModel) start() tea.Cmd {
	m.session.Start()
	m.input.Reset()
	return m.input.Focus()
}

func (m *BusyuModel) replay() tea.Cmd {
	next, err := m.session.Replay()
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.session = next
	m.status = ""
	return m.start()
}

func (m *BusyuModel) leave() (tea.Model, tea.Cmd) {
	m.Close()
	if !m.hasPicker {
		return m, tea.Quit
	}
	m.session = nil
	m.status = ""
	m.input.Blur()
	return m, nil
}

// dispatch turns queued session events into the status line.
func (m *BusyuModel) dispatch() {
	if m.session == nil {
		return
	}
	for _, ev := range m.session.DrainEvents() {
		m.log.Debug("session event", "kind", ev.Kind.String(), "score", ev.Score)
		switch ev.Kind {
		case quiz.EventCorrect:
			m.status = fmt.Sprintf("正解！ %s +%d点", ev.Member.Key, ev.Points)
			m.statusStyle = accentStyle
		case quiz.EventIncorrect:
			m.status = "その読みの漢字は見つかりません"
			m.statusStyle = incorrectStyle
		case quiz.EventTimeout:
			m.status = "時間切れ！"
			m.statusStyle = incorrectStyle
		case quiz.EventCleared:
			m.status = "全部見つけました！"
			m.statusStyle = accentStyle
		case quiz.EventEnded:
			m.status = "終了しました"
			m.statusStyle = pendingStyle
		}
		if ev.Kind == quiz.EventTimeout || ev.Kind == quiz.EventCleared || ev.Kind == quiz.EventEnded {
			m.input.Blur()
		}
	}
}

// View implements tea.Model.
func (m *BusyuModel) View() string {
	if m.session == nil {
		return layout(m.width, m.height, m.renderPicker(), "↑/↓ select · enter start · q quit")
	}
	st := m.session.State()
	switch st.Phase {
	case quiz.PhaseExplaining:
		return layout(m.width, m.height, m.renderRules(st), "enter start · tab timer mode · esc back")
	case quiz.PhaseActive:
		return layout(m.width, m.height, m.renderActive(st), "enter answer · tab hints · ctrl+t timer mode · esc end")
	default:
		return layout(m.width, m.height, m.renderResult(st), "r replay · esc back · q quit")
	}
}

func (m *BusyuModel) renderPicker() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("部首を選んでください"))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}
	return b.String()
}

func (m *BusyuModel) renderRules(st quiz.FreeTextState) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("部首「%s」(%s)", st.CategoryKey, st.CategoryLabel)),
		fmt.Sprintf("この部首の漢字は全部で %d 字あります。", st.Total),
		"",
		"読み(音読み・訓読み)を入力して漢字を見つけましょう。",
		"難しい漢字ほど高得点です。正解すると制限時間が延びます。",
		"",
		"時間: " + timerLabel(st),
	}
	return strings.Join(lines, "\n")
}

func (m *BusyuModel) renderActive(st quiz.FreeTextState) string {
	width := m.innerWidth()
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("部首「%s」(%s)", st.CategoryKey, st.CategoryLabel)))
	b.WriteString("\n")
	b.WriteString(renderInfoBar(st))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	if st.HintVisible {
		b.WriteString("\n")
		b.WriteString(renderHints(st.Hints, width))
		b.WriteString("\n")
	}
	if len(st.Found) > 0 {
		b.WriteString("\n")
		b.WriteString(cardStyle.Render(wrapStyledRunes(buildMemberRunes(st.Found, nil), width-4)))
	}
	return b.String()
}

func (m *BusyuModel) renderResult(st quiz.FreeTextState) string {
	cat, err := m.opts.Index.Category(st.CategoryKey)
	found := make(map[string]bool, len(st.Found))
	for _, f := range st.Found {
		found[f.Key] = true
	}
	var b strings.Builder
	if stats.Celebrate(st.Score, st.Cleared) {
		b.WriteString(celebrateStyle.Render("おめでとう！"))
		b.WriteString("\n")
	}
	b.WriteString(titleStyle.Render("答え合わせ"))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("%d点  %s\n", st.Score, stats.FreeTextVerdict(st.Score)))
	b.WriteString(stats.FoundSummary(st.CategoryKey, len(st.Found), st.Total))
	b.WriteString("\n\n")
	if err == nil {
		b.WriteString(cardStyle.Render(wrapStyledRunes(buildMemberRunes(cat.Members, found), m.innerWidth()-4)))
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}
	return b.String()
}

func (m *BusyuModel) innerWidth() int {
	if m.width == 0 {
		return 60
	}
	return contentWidthFor(m.width)
}

func renderInfoBar(st quiz.FreeTextState) string {
	segments := []string{
		fmt.Sprintf("得点 %d", st.Score),
		fmt.Sprintf("発見 %d/%d", len(st.Found), st.Total),
		"残り " + timerLabel(st),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func renderHints(hints []string, width int) string {
	if len(hints) == 0 {
		return hintStyle.Render(noHints)
	}
	lines := make([]string, 0, len(hints))
	for _, h := range hints {
		lines = append(lines, wrapStyledRunes(styledText("ヒント: "+h, hintStyle), width))
	}
	return strings.Join(lines, "\n")
}

func timerLabel(st quiz.FreeTextState) string {
	if st.Unlimited {
		return "∞"
	}
	return strconv.Itoa(st.SecondsLeft) + "秒"
}

func buildPicker(entries []catalog.Entry) table.Model {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{e.Key, e.Label, strconv.Itoa(e.Count)})
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "部首", Width: 6},
			{Title: "読み", Width: 16},
			{Title: "漢字数", Width: 8},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 15)),
	)
	t.SetStyles(pickerTableStyles())
	return t
}

func newAnswerInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "読み: "
	input.Placeholder = "かい / うみ"
	input.CharLimit = 32
	return input
}
