// Package catalog builds the read-only quiz catalog from raw dataset records.
package catalog

import "slices"

// MissingTier stands in for an absent kanken tier.
const MissingTier = 99

// Member is one quiz item: a kanji inside a radical category or an idiom in the level pool.
// Members are immutable once built.
type Member struct {
	Key      string
	Readings []string // normalized, de-duplicated, dataset order
	Meaning  string   // first meaning sentence without the trailing "。"
	Meanings []string
	Tier     float64
	Strokes  int // 0 when unknown
	Grade    int

	Synonym string
	Antonym string
	Note    string
}

// HasReading reports whether normalized is one of the member's readings.
func (m Member) HasReading(normalized string) bool {
	return slices.Contains(m.Readings, normalized)
}

// HasTier reports whether the dataset supplied a tier for the member.
func (m Member) HasTier() bool {
	return m.Tier != MissingTier
}

// Category is a radical and the kanji that contain it.
type Category struct {
	Key     string
	Label   string
	Members []Member
}

// Entry is the display metadata for one category.
type Entry struct {
	Key   string
	Label string
	Count int
}

// MergeDuplicates folds members sharing a Key into the first occurrence,
// appending the later copies' unseen readings and meanings.
func MergeDuplicates(members []Member) []Member {
	out := make([]Member, 0, len(members))
	pos := make(map[string]int, len(members))
	for _, m := range members {
		i, dup := pos[m.Key]
		if !dup {
			pos[m.Key] = len(out)
			out = append(out, m)
			continue
		}
		first := out[i]
		first.Readings = appendMissing(first.Readings, m.Readings)
		first.Meanings = appendMissing(first.Meanings, m.Meanings)
		if first.Meaning == "" {
			first.Meaning = m.Meaning
		}
		if !first.HasTier() {
			first.Tier = m.Tier
		}
		out[i] = first
	}
	return out
}

func appendMissing(dst, src []string) []string {
	out := slices.Clone(dst)
	for _, s := range src {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
