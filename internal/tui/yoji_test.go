package tui

import (
	"errors"
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/kanjiquiz/internal/catalog"
	"github.com/verte-zerg/kanjiquiz/internal/generator"
	"github.com/verte-zerg/kanjiquiz/internal/model"
	"github.com/verte-zerg/kanjiquiz/internal/quiz"
)

func testPool() *catalog.Pool {
	return catalog.BuildPool([]model.IdiomRecord{
		{Radical: "一石二鳥", Reading: "いっせきにちょう", Meaning: "一つの行為で二つの利益を得ること。", Kanken: 5},
		{Radical: "十人十色", Reading: "じゅうにんといろ", Meaning: "人それぞれ好みや考えが違うこと。", Kanken: 5},
		{Radical: "一期一会", Reading: "いちごいちえ", Meaning: "一生に一度の出会い。", Kanken: 3},
		{Radical: "四面楚歌", Reading: "しめんそか", Meaning: "周りが敵ばかりであること。", Synonym: "孤立無援", Kanken: 2.5},
	})
}

func newTestYoji(t *testing.T, kind quiz.ChoiceKind) *YojiModel {
	t.Helper()
	m, err := NewYojiModel(YojiOptions{
		Pool:    testPool(),
		Session: quiz.ChoiceOptions{Kind: kind, Level: 5, Questions: 2, Source: generator.NewWithSeed(7)},
	})
	require.NoError(t, err)
	return m
}

func answerIndex(st quiz.ChoiceState) int {
	for i, c := range st.Choices {
		if c.Key == st.Question.Answer {
			return i
		}
	}
	return -1
}

func pressDigit(m tea.Model, n int) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(strconv.Itoa(n))})
}

func TestYojiEmptyLevel(t *testing.T) {
	_, err := NewYojiModel(YojiOptions{Pool: testPool(), Session: quiz.ChoiceOptions{Level: 1}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, quiz.ErrNoContent))
}

func TestYojiFullRound(t *testing.T) {
	m := newTestYoji(t, quiz.ChoiceByMeaning)
	st := m.Session().State()
	require.Equal(t, 2, st.Total)
	require.Len(t, st.Choices, 4)
	assert.Contains(t, m.View(), "この意味の四字熟語は？")

	pressDigit(m, answerIndex(st)+1)
	st = m.Session().State()
	require.Equal(t, quiz.PhaseAnswered, st.Phase)
	assert.Equal(t, 1, st.Score)
	assert.Contains(t, m.View(), "正解！素晴らしいです！")

	m.Update(key(tea.KeyEnter))
	st = m.Session().State()
	require.Equal(t, 1, st.Index)
	wrong := (answerIndex(st) + 1) % len(st.Choices)
	pressDigit(m, wrong+1)
	assert.Contains(t, m.View(), "不正解 - 正解は「"+st.Question.Answer+"」")

	m.Update(key(tea.KeyEnter))
	require.Equal(t, quiz.PhaseFinished, m.Session().Phase())
	view := m.View()
	assert.Contains(t, view, "クイズ終了！")
	assert.Contains(t, view, "1 / 2 問正解 (50%)")
	assert.Contains(t, view, "あと少し！頑張りました")
}

func TestYojiCursorSelection(t *testing.T) {
	m := newTestYoji(t, quiz.ChoiceByMeaning)
	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyDown))
	st := m.Session().State()
	m.Update(key(tea.KeyEnter))
	assert.Equal(t, st.Choices[2].Key, m.Session().State().Selection)
}

func TestYojiIgnoresOutOfRangeDigit(t *testing.T) {
	m := newTestYoji(t, quiz.ChoiceByMeaning)
	pressDigit(m, 9)
	assert.Equal(t, quiz.PhaseActive, m.Session().Phase())
}

func TestYojiMissingCharPrompt(t *testing.T) {
	m := newTestYoji(t, quiz.ChoiceMissingChar)
	st := m.Session().State()
	assert.Contains(t, st.Question.Prompt, string(quiz.MaskRune))
	assert.Contains(t, m.View(), "空欄に入る漢字は？")
}

func TestYojiRetry(t *testing.T) {
	m := newTestYoji(t, quiz.ChoiceByMeaning)
	for i := 0; i < 2; i++ {
		pressDigit(m, 1)
		m.Update(key(tea.KeyEnter))
	}
	require.Equal(t, quiz.PhaseFinished, m.Session().Phase())
	first := m.Session().State().ID

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	st := m.Session().State()
	assert.NotEqual(t, first, st.ID)
	assert.Equal(t, quiz.PhaseActive, st.Phase)
	assert.Equal(t, 0, st.Score)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "["+repeat("█", 10)+repeat("·", 10)+"]", progressBar(50))
	assert.Equal(t, "["+repeat("█", 20)+"]", progressBar(150))
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
