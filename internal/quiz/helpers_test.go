package quiz

import "github.com/verte-zerg/kanjiquiz/internal/catalog"

func member(key string, tier float64, meaning string, readings ...string) catalog.Member {
	return catalog.Member{Key: key, Tier: tier, Meaning: meaning, Readings: readings}
}

func category(members ...catalog.Member) catalog.Category {
	return catalog.Category{Key: "test", Label: "てすと", Members: members}
}

func eventKinds(events []Event) []EventKind {
	out := make([]EventKind, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Kind)
	}
	return out
}
