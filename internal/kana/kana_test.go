package kana

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHiragana(t *testing.T) {
	cases := map[string]string{
		"カン":    "かん",
		"ヶ":     "ゖ",
		"ァイウ":   "ぁいう",
		"すでに":   "すでに",
		"漢字カナ":  "漢字かな",
		"ABC":   "ABC",
		"ー":     "ー",
		"":      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToHiragana(in), "input %q", in)
	}
}

func TestToHalfWidthDigits(t *testing.T) {
	assert.Equal(t, "小学2年", ToHalfWidthDigits("小学２年"))
	assert.Equal(t, "0123456789", ToHalfWidthDigits("０１２３４５６７８９"))
	assert.Equal(t, "abc", ToHalfWidthDigits("abc"))
}

func TestExtractGradeLevel(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"小学２年", 2},
		{"小学6年", 6},
		{"第１２学年", 12},
		{"中学", DefaultGradeLevel},
		{"", DefaultGradeLevel},
		{"常用外", DefaultGradeLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractGradeLevel(tt.label), "label %q", tt.label)
	}
}

func TestNormalizeReading(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"カン", "かん"},
		{"あ（かい）", "あ"},
		{"うご（く）", "うご"},
		{"（しゃ）ク", "く"},
		{"  コウ ", "こう"},
		{"ABC", "abc"},
		{"ひ（く）（る）", "ひ"},
		{"とじ（ない", "とじ（ない"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeReading(tt.raw), "raw %q", tt.raw)
	}
}

func TestNormalizeReadingIdempotent(t *testing.T) {
	inputs := []string{"カン", "あ（かい）", "ヒトツ", "ABC", " コウ（ちゅう） ", "", "ゆう", "ＡＢ"}
	for _, in := range inputs {
		once := NormalizeReading(in)
		assert.Equal(t, once, NormalizeReading(once), "input %q", in)
	}
}
