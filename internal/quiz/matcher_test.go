package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/kanjiquiz/internal/catalog"
)

func TestFindMatch(t *testing.T) {
	remaining := []catalog.Member{
		member("港", 8, "みなと", "こう", "みなと"),
		member("校", 10, "まなびや", "こう", "きょう"),
		member("海", 9, "うみ", "かい", "うみ"),
	}

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "hiragana", input: "うみ", want: "海", ok: true},
		{name: "katakana folds", input: "カイ", want: "海", ok: true},
		{name: "first match wins", input: "こう", want: "港", ok: true},
		{name: "surrounding space", input: "  きょう ", want: "校", ok: true},
		{name: "annotation stripped", input: "みなと（港）", want: "港", ok: true},
		{name: "no match", input: "やま", ok: false},
		{name: "blank", input: "   ", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "ideographic space", input: "　", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindMatch(remaining, tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.Key)
			}
		})
	}
}

func TestFindMatchUsesGivenOrderNotTier(t *testing.T) {
	remaining := []catalog.Member{
		member("易", 10, "", "こう"),
		member("難", 1, "", "こう"),
	}
	got, ok := FindMatch(remaining, "こう")
	assert.True(t, ok)
	assert.Equal(t, "易", got.Key)
}

func TestFindMatchEmptyReadingsNeverMatch(t *testing.T) {
	remaining := []catalog.Member{member("乙", 5, "")}
	_, ok := FindMatch(remaining, "おつ")
	assert.False(t, ok)
}
