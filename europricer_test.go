package europricer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optquant/europricer/closedform"
	"github.com/optquant/europricer/models"
)

func TestDefaultSpec(t *testing.T) {
	spec := DefaultSpec()
	require.NoError(t, spec.Validate())
	assert.Equal(t, models.Call, spec.Type)
	assert.Equal(t, 52.0, spec.Spot)
	assert.Equal(t, 50.0, spec.Strike)
	assert.Equal(t, 0.5, spec.Maturity)
	assert.Equal(t, 0.20, spec.Volatility)
	assert.Equal(t, 0.10, spec.Rate)
}

func TestBlackScholesPrice(t *testing.T) {
	price, err := BlackScholesPrice(models.Call, DefaultSpot, DefaultStrike, DefaultMaturity, DefaultVolatility, DefaultRate)
	require.NoError(t, err)

	want, err := closedform.Price(DefaultSpec())
	require.NoError(t, err)
	assert.Equal(t, want, price)

	_, err = BlackScholesPrice(models.Call, -1, 50, 0.5, 0.2, 0.1)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestMonteCarloPrice(t *testing.T) {
	mc, err := MonteCarloPrice(DefaultTrials, models.Call, DefaultSpot, DefaultStrike, DefaultMaturity, DefaultVolatility, DefaultRate, 42)
	require.NoError(t, err)

	bs, err := BlackScholesPrice(models.Call, DefaultSpot, DefaultStrike, DefaultMaturity, DefaultVolatility, DefaultRate)
	require.NoError(t, err)
	assert.InDelta(t, bs, mc, 0.1)
	assert.GreaterOrEqual(t, mc, 0.0)

	_, err = MonteCarloPrice(0, models.Call, DefaultSpot, DefaultStrike, DefaultMaturity, DefaultVolatility, DefaultRate, 42)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestBlackScholesPriceSeries(t *testing.T) {
	values := []float64{0.10, 0.20, 0.30}
	series, err := BlackScholesPriceSeries(models.Call, models.FieldVolatility, values,
		DefaultSpot, DefaultStrike, DefaultMaturity, DefaultVolatility, DefaultRate)
	require.NoError(t, err)
	require.Len(t, series, len(values))

	for i, v := range values {
		want, err := BlackScholesPrice(models.Call, DefaultSpot, DefaultStrike, DefaultMaturity, v, DefaultRate)
		require.NoError(t, err)
		assert.Equal(t, want, series[i], "series out of order at index %d", i)
	}

	_, err = BlackScholesPriceSeries(models.Call, "moneyness", values,
		DefaultSpot, DefaultStrike, DefaultMaturity, DefaultVolatility, DefaultRate)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}
