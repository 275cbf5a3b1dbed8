// Package stats renders end-of-quiz verdicts and catalog tables.
package stats

import (
	"fmt"
	"math"
)

// CelebrateScore is the free-text score that earns the celebration banner.
const CelebrateScore = 15

// FreeTextVerdict returns the end-screen message for a free-text score.
func FreeTextVerdict(score int) string {
	switch {
	case score <= 0:
		return "次はがんばろう！"
	case score >= 20:
		return "漢字マスター！"
	case score >= CelebrateScore:
		return "素晴らしい！"
	case score >= 10:
		return "よくできました！"
	case score >= 5:
		return "がんばりました！"
	default:
		return "また挑戦してね！"
	}
}

// Celebrate reports whether a free-text session ended well enough for the banner.
func Celebrate(score int, cleared bool) bool {
	return cleared || score >= CelebrateScore
}

// RoundPercent rounds a percentage half away from zero.
func RoundPercent(percent float64) int {
	return int(math.Round(percent))
}

// ChoiceVerdict returns the end-screen message for a choice quiz percentage.
func ChoiceVerdict(percent float64) string {
	p := RoundPercent(percent)
	switch {
	case p >= 100:
		return "完璧です！素晴らしい！"
	case p >= 80:
		return "とてもよくできました！"
	case p >= 50:
		return "あと少し！頑張りました"
	default:
		return "また挑戦してみましょう！"
	}
}

// SelectionFeedback is the message shown after a choice is picked.
func SelectionFeedback(correct bool, answer string) string {
	if correct {
		return "正解！素晴らしいです！"
	}
	return fmt.Sprintf("不正解 - 正解は「%s」", answer)
}

// FoundSummary describes how many members of a category were found.
func FoundSummary(label string, found, total int) string {
	return fmt.Sprintf("部首「%s」で %d / %d 個の漢字を発見しました！", label, found, total)
}
