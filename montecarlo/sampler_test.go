package montecarlo

import (
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optquant/europricer/models"
)

func TestSamplerRejectsNonPositiveSize(t *testing.T) {
	s := NewSampler(1)

	_, err := s.Sample(0)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = s.Sample(-100)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestSamplerSeedReproducible(t *testing.T) {
	a, err := NewSampler(42).Sample(1000)
	require.NoError(t, err)
	b, err := NewSampler(42).Sample(1000)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same seed must replay the same stream")

	c, err := NewSampler(43).Sample(1000)
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "different seeds must give different streams")
}

func TestSamplerMoments(t *testing.T) {
	draws, err := NewSampler(7).Sample(200000)
	require.NoError(t, err)
	require.Len(t, draws, 200000)

	mean, _ := stats.Mean(draws)
	sd, _ := stats.StandardDeviation(draws)
	assert.InDelta(t, 0.0, mean, 0.02)
	assert.InDelta(t, 1.0, sd, 0.02)
}
