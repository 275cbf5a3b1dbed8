package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreeTextVerdict(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "次はがんばろう！"},
		{3, "また挑戦してね！"},
		{5, "がんばりました！"},
		{10, "よくできました！"},
		{15, "素晴らしい！"},
		{20, "漢字マスター！"},
		{48, "漢字マスター！"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FreeTextVerdict(tc.score), "score %d", tc.score)
	}
}

func TestCelebrate(t *testing.T) {
	assert.True(t, Celebrate(0, true))
	assert.True(t, Celebrate(15, false))
	assert.False(t, Celebrate(14, false))
}

func TestChoiceVerdict(t *testing.T) {
	assert.Equal(t, "完璧です！素晴らしい！", ChoiceVerdict(100))
	assert.Equal(t, "とてもよくできました！", ChoiceVerdict(79.6))
	assert.Equal(t, "あと少し！頑張りました", ChoiceVerdict(50))
	assert.Equal(t, "また挑戦してみましょう！", ChoiceVerdict(0))
}

func TestSelectionFeedback(t *testing.T) {
	assert.Equal(t, "正解！素晴らしいです！", SelectionFeedback(true, "一期一会"))
	assert.Equal(t, "不正解 - 正解は「一期一会」", SelectionFeedback(false, "一期一会"))
}

func TestFoundSummary(t *testing.T) {
	assert.Equal(t, "部首「さんずい」で 2 / 13 個の漢字を発見しました！", FoundSummary("さんずい", 2, 13))
}
