package catalog

import (
	"github.com/verte-zerg/kanjiquiz/internal/kana"
	"github.com/verte-zerg/kanjiquiz/internal/model"
)

// Pool is the leveled idiom pool used by the choice quizzes.
type Pool struct {
	members []Member
}

// LevelCount is the number of idioms at one level.
type LevelCount struct {
	Level float64
	Count int
}

// BuildPool normalizes the raw idiom records.
func BuildPool(records []model.IdiomRecord) *Pool {
	members := make([]Member, 0, len(records))
	for _, rec := range records {
		members = append(members, Member{
			Key:      rec.Radical,
			Readings: normalizeReadings([]string{rec.Reading}),
			Meaning:  firstMeaning([]string{rec.Meaning}),
			Meanings: []string{rec.Meaning},
			Tier:     tierOrMissing(rec.Kanken),
			Grade:    kana.DefaultGradeLevel,
			Synonym:  rec.Synonym,
			Antonym:  rec.Antonym,
			Note:     rec.Note,
		})
	}
	return &Pool{members: members}
}

// Members returns every idiom in dataset order.
func (p *Pool) Members() []Member {
	return append([]Member(nil), p.members...)
}

// Level returns the idioms whose tier equals level, in dataset order.
func (p *Pool) Level(level float64) []Member {
	var out []Member
	for _, m := range p.members {
		if m.Tier == level {
			out = append(out, m)
		}
	}
	return out
}

// LevelCounts counts idioms for each of the given levels, preserving their order.
func (p *Pool) LevelCounts(levels []float64) []LevelCount {
	out := make([]LevelCount, 0, len(levels))
	for _, level := range levels {
		count := 0
		for _, m := range p.members {
			if m.Tier == level {
				count++
			}
		}
		out = append(out, LevelCount{Level: level, Count: count})
	}
	return out
}
