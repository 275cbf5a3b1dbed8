package quiz

import (
	"strings"

	"github.com/verte-zerg/kanjiquiz/internal/catalog"
	"github.com/verte-zerg/kanjiquiz/internal/kana"
)

// FindMatch normalizes input like a stored reading and returns the first member of
// remaining, in the given order, that has it. Earlier members win ties.
// Blank input never matches.
func FindMatch(remaining []catalog.Member, input string) (catalog.Member, bool) {
	if strings.TrimSpace(input) == "" {
		return catalog.Member{}, false
	}
	answer := kana.NormalizeReading(input)
	if answer == "" {
		return catalog.Member{}, false
	}
	for _, m := range remaining {
		if m.HasReading(answer) {
			return m, true
		}
	}
	return catalog.Member{}, false
}
