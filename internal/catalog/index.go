package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/kanjiquiz/internal/kana"
	"github.com/verte-zerg/kanjiquiz/internal/model"
)

// ErrUnknownCategory is returned when a category key is not in the index.
var ErrUnknownCategory = errors.New("unknown category")

// Index maps category keys to their members. It is built once and never mutated.
type Index struct {
	byKey  map[string]Category
	sorted []Entry
}

// Build normalizes the raw radical records into an Index. When a radical key
// appears twice the first record wins. Kanji repeated inside a radical are
// merged into their first occurrence.
func Build(records []model.RadicalRecord) *Index {
	idx := &Index{byKey: make(map[string]Category, len(records))}
	for _, rec := range records {
		if _, exists := idx.byKey[rec.Radical]; exists {
			continue
		}
		members := make([]Member, 0, len(rec.Kanji))
		for _, k := range rec.Kanji {
			members = append(members, buildKanji(k))
		}
		members = MergeDuplicates(members)
		idx.byKey[rec.Radical] = Category{Key: rec.Radical, Label: rec.Reading, Members: members}
		idx.sorted = append(idx.sorted, Entry{Key: rec.Radical, Label: rec.Reading, Count: len(members)})
	}
	sort.SliceStable(idx.sorted, func(i, j int) bool {
		return idx.sorted[i].Count > idx.sorted[j].Count
	})
	return idx
}

// Category returns the category stored under key.
func (idx *Index) Category(key string) (Category, error) {
	cat, ok := idx.byKey[key]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
	}
	return cat, nil
}

// Entries returns every category sorted by member count, largest first. Ties keep input order.
func (idx *Index) Entries() []Entry {
	return append([]Entry(nil), idx.sorted...)
}

// EntriesWithMin returns the sorted entries holding at least minCount members.
func (idx *Index) EntriesWithMin(minCount int) []Entry {
	var out []Entry
	for _, e := range idx.sorted {
		if e.Count >= minCount {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of categories.
func (idx *Index) Len() int {
	return len(idx.sorted)
}

func buildKanji(k model.KanjiRecord) Member {
	raw := make([]string, 0, len(k.Onyomi)+len(k.Kunyomi))
	raw = append(raw, k.Onyomi...)
	raw = append(raw, k.Kunyomi...)
	return Member{
		Key:      k.Char,
		Readings: normalizeReadings(raw),
		Meaning:  firstMeaning(k.Meaning),
		Meanings: append([]string(nil), k.Meaning...),
		Tier:     tierOrMissing(k.Kanken),
		Strokes:  k.Kakusuu,
		Grade:    kana.ExtractGradeLevel(k.Grade),
	}
}

func normalizeReadings(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		n := kana.NormalizeReading(r)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func firstMeaning(meanings []string) string {
	if len(meanings) == 0 {
		return ""
	}
	return strings.TrimSuffix(meanings[0], "。")
}

func tierOrMissing(tier float64) float64 {
	if tier <= 0 {
		return MissingTier
	}
	return tier
}
