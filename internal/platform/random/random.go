package random

import (
	"math/rand/v2"
	"sync"
)

// Source is the injectable uniform integer source. Intn returns a value in [0, n).
type Source interface {
	Intn(n int) int
}

// System delegates to the auto-seeded math/rand/v2 global source.
type System struct{}

func (System) Intn(n int) int { return rand.IntN(n) }

// Seeded is a reproducible PCG-backed source shared by every session.
type Seeded struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewSeeded(seed uint64) *Seeded {
	return &Seeded{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *Seeded) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}
