package simulator

import (
	"math"
	"math/rand"
)

// normalSampler draws standard-normal deviates via the Box-Muller
// transform. Each uniform pair yields two deviates; the second is
// cached so the draw sequence for a given seed is fixed.
type normalSampler struct {
	rng    *rand.Rand
	cached float64
	has    bool
}

func newNormalSampler(seed int64) *normalSampler {
	return &normalSampler{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the next standard-normal deviate.
func (s *normalSampler) Next() float64 {
	if s.has {
		s.has = false
		return s.cached
	}
	// 1-Float64() keeps u1 in (0, 1] so the log is finite.
	u1 := 1 - s.rng.Float64()
	u2 := s.rng.Float64()
	r := math.Sqrt(-2 * math.Log(u1))
	s.cached = r * math.Sin(2*math.Pi*u2)
	s.has = true
	return r * math.Cos(2*math.Pi*u2)
}
