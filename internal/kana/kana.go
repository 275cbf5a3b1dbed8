// Package kana provides the text folding used to compare readings.
package kana

import (
	"strconv"
	"strings"
)

// DefaultGradeLevel is returned when a grade label carries no digits.
const DefaultGradeLevel = 7

const (
	katakanaFirst = 'ァ'
	katakanaLast  = 'ヶ'
	kanaOffset    = 0x60

	fullWidthZero = '０'
	fullWidthNine = '９'
	widthOffset   = 0xFEE0
)

// ToHiragana folds katakana in the range ァ..ヶ to hiragana. Other runes pass through.
func ToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= katakanaFirst && r <= katakanaLast {
			return r - kanaOffset
		}
		return r
	}, s)
}

// ToHalfWidthDigits folds full-width digits ０..９ to ASCII.
func ToHalfWidthDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= fullWidthZero && r <= fullWidthNine {
			return r - widthOffset
		}
		return r
	}, s)
}

// ExtractGradeLevel parses the first run of digits in a grade label such as "小学２年".
func ExtractGradeLevel(label string) int {
	folded := ToHalfWidthDigits(label)
	start := strings.IndexFunc(folded, isASCIIDigit)
	if start < 0 {
		return DefaultGradeLevel
	}
	end := start
	for end < len(folded) && isASCIIDigit(rune(folded[end])) {
		end++
	}
	n, err := strconv.Atoi(folded[start:end])
	if err != nil {
		return DefaultGradeLevel
	}
	return n
}

// NormalizeReading returns the canonical form of a reading or an answer:
// full-width parenthetical notes removed, katakana folded, lower-cased.
func NormalizeReading(raw string) string {
	s := stripAnnotations(raw)
	s = ToHiragana(s)
	s = strings.ToLower(s)
	return strings.TrimSpace(s)
}

// stripAnnotations removes every "（...）" span, shortest match first.
func stripAnnotations(s string) string {
	var b strings.Builder
	for {
		open := strings.Index(s, "（")
		if open < 0 {
			break
		}
		rest := s[open+len("（"):]
		end := strings.Index(rest, "）")
		if end < 0 {
			break
		}
		b.WriteString(s[:open])
		s = rest[end+len("）"):]
	}
	b.WriteString(s)
	return b.String()
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
