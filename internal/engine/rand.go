package engine

import (
	"math/rand"
	"sync"
)

// Rand is the random source behind every roll in a battle: accuracy,
// critical hits, damage variance, AI move choice and hack triggers.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded, non-concurrent source.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedRand returns a source safe to share between sessions.
func NewLockedRand(seed int64) Rand {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
