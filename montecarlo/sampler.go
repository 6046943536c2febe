package montecarlo

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/optquant/europricer/models"
)

// Sampler draws independent Standard Normal(0,1) variates from an explicitly
// seeded source. Each pricing call owns its own sampler, so concurrent calls
// never share a random stream.
type Sampler struct {
	dist distuv.Normal
}

// NewSampler returns a sampler whose entire draw sequence is determined by
// seed.
func NewSampler(seed uint64) *Sampler {
	return &Sampler{dist: distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)}}
}

// Rand returns a single draw.
func (s *Sampler) Rand() float64 {
	return s.dist.Rand()
}

// Sample returns m independent draws.
func (s *Sampler) Sample(m int) ([]float64, error) {
	if m <= 0 {
		return nil, fmt.Errorf("%w: sample size must be positive, got %d", models.ErrInvalidArgument, m)
	}
	draws := make([]float64, m)
	for i := range draws {
		draws[i] = s.dist.Rand()
	}
	return draws, nil
}
