// Package generator provides the random source used for quiz shuffling and sampling.
package generator

import (
	"math/rand"
	"time"
)

// Source is the randomness a quiz needs. *Generator satisfies it; tests may
// supply a fixed sequence.
type Source interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// Generator is a seeded non-cryptographic random source.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Intn implements Source.
func (g *Generator) Intn(n int) int {
	return g.rnd.Intn(n)
}

// Shuffle permutes items in place with a Fisher-Yates pass over src.
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Sample returns up to n items drawn without replacement. The input is not modified.
func Sample[T any](src Source, items []T, n int) []T {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	pool := append([]T(nil), items...)
	if n > len(pool) {
		n = len(pool)
	}
	for i := 0; i < n; i++ {
		j := i + src.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// Sequence replays fixed values, wrapping around. Each value is reduced modulo n.
type Sequence struct {
	values []int
	pos    int
}

// NewSequence returns a Source that yields values in order.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

// Intn implements Source.
func (s *Sequence) Intn(n int) int {
	if len(s.values) == 0 || n <= 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	if v < 0 {
		v = -v
	}
	return v % n
}
