package quiz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/kanjiquiz/internal/catalog"
	"github.com/verte-zerg/kanjiquiz/internal/kanken"
)

func TestGenerateHintsOrderAndFormat(t *testing.T) {
	remaining := []catalog.Member{
		member("一", 10, "ひとつ"),
		member("鬱", 2, "ふさぐ"),
		member("謎", catalog.MissingTier, "なぞ"),
		member("曖", 2.5, "くらい"),
		member("右", 10, "みぎ"),
	}
	hints := GenerateHints(remaining, "", 4, kanken.LevelLabels{})
	assert.Equal(t, []string{
		"ひとつ (10級)",
		"みぎ (10級)",
		"くらい (準2級)",
		"ふさぐ (2級)",
	}, hints)

	all := GenerateHints(remaining, "", 10, kanken.LevelLabels{})
	assert.Len(t, all, 5)
	assert.Equal(t, "なぞ (不明)", all[4])
}

func TestGenerateHintsExcludesKey(t *testing.T) {
	remaining := []catalog.Member{
		member("一", 10, "ひとつ"),
		member("二", 10, "ふたつ"),
	}
	hints := GenerateHints(remaining, "一", 2, kanken.SchoolLabels{})
	assert.Equal(t, []string{"ふたつ (小学1年生)"}, hints)
}

func TestGenerateHintsBoundedByLimit(t *testing.T) {
	var remaining []catalog.Member
	for i := 0; i < 12; i++ {
		remaining = append(remaining, member(fmt.Sprintf("k%d", i), float64(i%10+1), fmt.Sprintf("m%d", i)))
	}
	for limit := 0; limit <= 14; limit++ {
		for _, exclude := range []string{"", "k3", "missing"} {
			hints := GenerateHints(remaining, exclude, limit, kanken.LevelLabels{})
			assert.LessOrEqual(t, len(hints), limit)
			if exclude == "k3" {
				for _, h := range hints {
					assert.NotContains(t, h, "m3 ")
				}
			}
		}
	}
}

func TestGenerateHintsEmpty(t *testing.T) {
	assert.Empty(t, GenerateHints(nil, "", 2, kanken.LevelLabels{}))
}
