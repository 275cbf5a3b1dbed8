// Package model defines shared data structures.
package model

// RadicalRecord is one raw radical entry from the busyu dataset.
type RadicalRecord struct {
	Radical string        `json:"radical"`
	Reading string        `json:"reading"`
	Kanji   []KanjiRecord `json:"kanji"`
}

// KanjiRecord is one raw character belonging to a radical. Optional fields are
// left at their zero value when the dataset omits them.
type KanjiRecord struct {
	Char    string   `json:"char"`
	Onyomi  []string `json:"onyomi,omitempty"`
	Kunyomi []string `json:"kunyomi,omitempty"`
	Meaning []string `json:"meaning,omitempty"`
	Grade   string   `json:"grade,omitempty"`
	Kanken  float64  `json:"kanken,omitempty"`
	Kakusuu int      `json:"kakusuu,omitempty"`
}

// IdiomRecord is one raw four-character idiom from the yoji dataset.
type IdiomRecord struct {
	Radical string  `json:"radical"`
	Reading string  `json:"reading"`
	Meaning string  `json:"meaning"`
	Synonym string  `json:"synonym,omitempty"`
	Antonym string  `json:"antonym,omitempty"`
	Note    string  `json:"note,omitempty"`
	Kanken  float64 `json:"kanken"`
}

// Dataset bundles both raw record sets.
type Dataset struct {
	Radicals []RadicalRecord
	Idioms   []IdiomRecord
}

// BusyuConfig defines free-text quiz settings.
type BusyuConfig struct {
	Seconds   int
	Bonus     int
	Unlimited bool
	Hints     int
	MinCount  int
}

// YojiConfig defines choice quiz settings.
type YojiConfig struct {
	Level     float64
	Questions int
	Choices   int
	Mode      string
}
