// Package europricer prices single-underlying European options two ways: a
// Black-Scholes closed form and a geometric-Brownian-motion Monte Carlo
// estimator, with one-parameter sensitivity sweeps over either.
package europricer

import (
	"github.com/optquant/europricer/closedform"
	"github.com/optquant/europricer/models"
	"github.com/optquant/europricer/montecarlo"
)

// Default pricing scenario: a slightly in-the-money call, six months out.
const (
	DefaultTrials     = 100000
	DefaultSpot       = 52.0
	DefaultStrike     = 50.0
	DefaultMaturity   = 0.5
	DefaultVolatility = 0.20
	DefaultRate       = 0.10
)

// DefaultSpec returns the default scenario as a spec.
func DefaultSpec() models.OptionSpec {
	return models.OptionSpec{
		Type:       models.Call,
		Spot:       DefaultSpot,
		Strike:     DefaultStrike,
		Maturity:   DefaultMaturity,
		Volatility: DefaultVolatility,
		Rate:       DefaultRate,
	}
}

// MonteCarloPrice estimates the present value of a European option by
// simulating trials terminal prices. The seed is explicit so runs are
// reproducible and concurrent callers never interfere.
func MonteCarloPrice(trials int, ct models.ContractType, spot, strike, maturity, vol, rate float64, seed uint64) (float64, error) {
	spec := models.OptionSpec{
		Type:       ct,
		Spot:       spot,
		Strike:     strike,
		Maturity:   maturity,
		Volatility: vol,
		Rate:       rate,
	}
	return montecarlo.NewPricer().Price(spec, trials, seed)
}

// BlackScholesPrice evaluates the closed-form value of a European option.
func BlackScholesPrice(ct models.ContractType, spot, strike, maturity, vol, rate float64) (float64, error) {
	return closedform.Price(models.OptionSpec{
		Type:       ct,
		Spot:       spot,
		Strike:     strike,
		Maturity:   maturity,
		Volatility: vol,
		Rate:       rate,
	})
}

// BlackScholesPriceSeries is the sweep mode of BlackScholesPrice: exactly one
// field varies across values, the rest stay fixed, and the output sequence is
// parallel to values.
func BlackScholesPriceSeries(ct models.ContractType, field models.Field, values []float64, spot, strike, maturity, vol, rate float64) ([]float64, error) {
	base := models.OptionSpec{
		Type:       ct,
		Spot:       spot,
		Strike:     strike,
		Maturity:   maturity,
		Volatility: vol,
		Rate:       rate,
	}
	return closedform.PriceSeries(base, field, values)
}
