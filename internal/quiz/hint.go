package quiz

import (
	"fmt"
	"sort"

	"github.com/verte-zerg/kanjiquiz/internal/catalog"
	"github.com/verte-zerg/kanjiquiz/internal/kanken"
)

// GenerateHints renders up to limit hints for the unfound members, skipping
// excludeKey. Members are ordered by tier, largest first, with untiered members
// after every tiered one; ties keep category order.
func GenerateHints(remaining []catalog.Member, excludeKey string, limit int, labels kanken.Labeler) []string {
	if limit <= 0 {
		return nil
	}
	candidates := make([]catalog.Member, 0, len(remaining))
	for _, m := range remaining {
		if excludeKey != "" && m.Key == excludeKey {
			continue
		}
		candidates = append(candidates, m)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.HasTier() != b.HasTier() {
			return a.HasTier()
		}
		return a.Tier > b.Tier
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	hints := make([]string, 0, len(candidates))
	for _, m := range candidates {
		label := kanken.Unknown
		if m.HasTier() && labels != nil {
			label = labels.LabelFor(m.Tier)
		}
		hints = append(hints, fmt.Sprintf("%s (%s)", m.Meaning, label))
	}
	return hints
}
