package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optquant/europricer/closedform"
	"github.com/optquant/europricer/models"
	"github.com/optquant/europricer/montecarlo"
)

func baseSpec() models.OptionSpec {
	return models.OptionSpec{
		Type:       models.Call,
		Spot:       52,
		Strike:     50,
		Maturity:   0.5,
		Volatility: 0.20,
		Rate:       0.10,
	}
}

func TestSweepRejectsBadInput(t *testing.T) {
	_, err := Sweep(baseSpec(), models.FieldVolatility, nil, ClosedForm{})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = Sweep(baseSpec(), models.FieldVolatility, []float64{}, ClosedForm{})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = Sweep(baseSpec(), "gamma", []float64{0.1, 0.2}, ClosedForm{})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	bad := baseSpec()
	bad.Strike = -1
	_, err = Sweep(bad, models.FieldVolatility, []float64{0.1}, ClosedForm{})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestSweepPreservesOrder(t *testing.T) {
	// 0.0 .. 0.60 in 0.05 steps, including the degenerate zero-vol point.
	var values []float64
	for v := 0.0; v <= 0.601; v += 0.05 {
		values = append(values, v)
	}

	res, err := Sweep(baseSpec(), models.FieldVolatility, values, ClosedForm{})
	require.NoError(t, err)
	require.Len(t, res.Calls, len(values))
	require.Len(t, res.Puts, len(values))

	// The parallel workers must land every point at its input index: each
	// slot has to match a serial evaluation exactly.
	for i, v := range values {
		pt, err := baseSpec().WithField(models.FieldVolatility, v)
		require.NoError(t, err)
		call, put, err := closedform.PriceBoth(pt)
		require.NoError(t, err)
		assert.Equal(t, call, res.Calls[i], "call out of order at index %d", i)
		assert.Equal(t, put, res.Puts[i], "put out of order at index %d", i)
	}
}

func TestSweepRecomputesDuplicates(t *testing.T) {
	values := []float64{0.20, 0.35, 0.20}

	res, err := Sweep(baseSpec(), models.FieldVolatility, values, ClosedForm{})
	require.NoError(t, err)
	require.Len(t, res.Calls, 3)
	assert.Equal(t, res.Calls[0], res.Calls[2])
	assert.Equal(t, res.Puts[0], res.Puts[2])
	assert.NotEqual(t, res.Calls[0], res.Calls[1])
}

func TestSweepPropagatesPointErrors(t *testing.T) {
	// Sweeping spot through zero makes that point invalid.
	_, err := Sweep(baseSpec(), models.FieldSpot, []float64{50, 0, 55}, ClosedForm{})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestSweepMonteCarloTracksClosedForm(t *testing.T) {
	values := []float64{45, 50, 52, 55, 60}
	mc := MonteCarlo{Trials: 20000, Seed: 42}

	res, err := Sweep(baseSpec(), models.FieldSpot, values, mc)
	require.NoError(t, err)
	require.Len(t, res.Calls, len(values))

	exact, err := Sweep(baseSpec(), models.FieldSpot, values, ClosedForm{})
	require.NoError(t, err)

	for i := range values {
		assert.InDelta(t, exact.Calls[i], res.Calls[i], 0.3, "call at spot %v", values[i])
		assert.InDelta(t, exact.Puts[i], res.Puts[i], 0.3, "put at spot %v", values[i])
	}
}

func TestSweepMonteCarloReproducible(t *testing.T) {
	values := []float64{0.10, 0.20, 0.30}
	mc := MonteCarlo{Trials: 10000, Seed: 7, Pricer: &montecarlo.Pricer{Workers: 2}}

	a, err := Sweep(baseSpec(), models.FieldVolatility, values, mc)
	require.NoError(t, err)
	b, err := Sweep(baseSpec(), models.FieldVolatility, values, mc)
	require.NoError(t, err)

	assert.Equal(t, a.Calls, b.Calls, "same seed must replay the same sweep")
	assert.Equal(t, a.Puts, b.Puts)

	mc.Seed = 8
	c, err := Sweep(baseSpec(), models.FieldVolatility, values, mc)
	require.NoError(t, err)
	assert.NotEqual(t, a.Calls, c.Calls)
}
