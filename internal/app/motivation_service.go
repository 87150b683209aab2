package app

import (
	"math/rand/v2"
	"sync"
	"time"

	"weighttrack/internal/domain"
)

// MotivationService picks the dashboard message. Each call draws again, so
// the same inputs may produce a different message of the same mood.
type MotivationService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMotivationService seeds the draw from src, or from the clock when src is
// nil.
func NewMotivationService(src rand.Source) *MotivationService {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>1|1)
	}
	return &MotivationService{rng: rand.New(src)}
}

// Pick decides the mood for the current state and draws a message from it.
func (s *MotivationService) Pick(st domain.Stats, p *domain.Profile, loggedToday bool) domain.Motivation {
	return domain.Select(domain.Decide(st, p, loggedToday), st, p, s)
}

// IntN implements domain.Picker.
func (s *MotivationService) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}
