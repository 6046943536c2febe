// Package closedform prices European options with the Black-Scholes analytic
// formula, using the standard-normal distribution from gonum for Φ.
package closedform

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/optquant/europricer/models"
)

const (
	maxIterations = 100
	epsilon       = 1e-8
)

// ErrNoConvergence is returned when the implied-volatility search fails to
// settle within maxIterations.
var ErrNoConvergence = errors.New("implied volatility did not converge")

var stdNormal = distuv.UnitNormal

// Price returns the Black-Scholes present value of spec.
func Price(spec models.OptionSpec) (float64, error) {
	call, put, err := PriceBoth(spec)
	if err != nil {
		return 0, err
	}
	switch spec.Type {
	case models.Call:
		return call, nil
	case models.Put:
		return put, nil
	default:
		return 0, fmt.Errorf("%w: unknown contract type %d", models.ErrInvalidArgument, int(spec.Type))
	}
}

// PriceBoth returns the call and put values for the same inputs.
//
//	d1 = [ln(S/K) + (r + σ²/2)·T] / (σ·√T)
//	d2 = d1 − σ·√T
//	call = S·Φ(d1) − K·e^(−rT)·Φ(d2)
//	put  = K·e^(−rT)·Φ(−d2) − S·Φ(−d1)
//
// T = 0 and σ = 0 short-circuit to intrinsic value before the d1 ratio, which
// would otherwise divide by zero.
func PriceBoth(spec models.OptionSpec) (float64, float64, error) {
	if err := spec.Validate(); err != nil {
		return 0, 0, err
	}

	S, K := spec.Spot, spec.Strike
	T, sigma, r := spec.Maturity, spec.Volatility, spec.Rate

	if T == 0 || sigma == 0 {
		return math.Max(S-K, 0), math.Max(K-S, 0), nil
	}

	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT
	disc := math.Exp(-r * T)

	call := S*stdNormal.CDF(d1) - K*disc*stdNormal.CDF(d2)
	put := K*disc*stdNormal.CDF(-d2) - S*stdNormal.CDF(-d1)
	return call, put, nil
}

// PriceSeries prices base with the named field swept across values, one price
// per value in input order.
func PriceSeries(base models.OptionSpec, field models.Field, values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: sweep values must not be empty", models.ErrInvalidArgument)
	}
	out := make([]float64, len(values))
	for i, v := range values {
		spec, err := base.WithField(field, v)
		if err != nil {
			return nil, err
		}
		price, err := Price(spec)
		if err != nil {
			return nil, err
		}
		out[i] = price
	}
	return out, nil
}

// Greeks are the first- and second-order sensitivities of the Black-Scholes
// price at a spec.
type Greeks struct {
	Price float64
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
}

// ComputeGreeks evaluates the analytic greeks. Requires T > 0 and σ > 0; the
// sensitivities are undefined at the degenerate intrinsic-value cases.
func ComputeGreeks(spec models.OptionSpec) (Greeks, error) {
	if err := spec.Validate(); err != nil {
		return Greeks{}, err
	}
	if spec.Maturity == 0 || spec.Volatility == 0 {
		return Greeks{}, fmt.Errorf("%w: greeks undefined at zero maturity or volatility", models.ErrInvalidArgument)
	}

	S, K := spec.Spot, spec.Strike
	T, sigma, r := spec.Maturity, spec.Volatility, spec.Rate

	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT
	disc := math.Exp(-r * T)

	g := Greeks{
		Gamma: stdNormal.Prob(d1) / (S * sigma * sqrtT),
		Vega:  S * stdNormal.Prob(d1) * sqrtT,
	}
	switch spec.Type {
	case models.Put:
		g.Price = K*disc*stdNormal.CDF(-d2) - S*stdNormal.CDF(-d1)
		g.Delta = stdNormal.CDF(d1) - 1
		g.Theta = -(S*stdNormal.Prob(d1)*sigma)/(2*sqrtT) + r*K*disc*stdNormal.CDF(-d2)
		g.Rho = -K * T * disc * stdNormal.CDF(-d2)
	default:
		g.Price = S*stdNormal.CDF(d1) - K*disc*stdNormal.CDF(d2)
		g.Delta = stdNormal.CDF(d1)
		g.Theta = -(S*stdNormal.Prob(d1)*sigma)/(2*sqrtT) - r*K*disc*stdNormal.CDF(d2)
		g.Rho = K * T * disc * stdNormal.CDF(d2)
	}
	return g, nil
}

// ImpliedVolatility solves for the volatility at which the Black-Scholes
// price of spec matches marketPrice, by Newton-Raphson on vega. The spec's
// own Volatility field is ignored; the search starts from 0.5.
func ImpliedVolatility(spec models.OptionSpec, marketPrice float64) (float64, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	if marketPrice <= 0 || math.IsNaN(marketPrice) {
		return 0, fmt.Errorf("%w: market price must be positive, got %v", models.ErrInvalidArgument, marketPrice)
	}
	if spec.Maturity == 0 {
		return 0, fmt.Errorf("%w: implied volatility undefined at zero maturity", models.ErrInvalidArgument)
	}

	sigma := 0.5
	for i := 0; i < maxIterations; i++ {
		trial := spec
		trial.Volatility = sigma

		price, err := Price(trial)
		if err != nil {
			return 0, err
		}
		diff := price - marketPrice
		if math.Abs(diff) < epsilon {
			return sigma, nil
		}

		g, err := ComputeGreeks(trial)
		if err != nil {
			return 0, err
		}
		sigma -= diff / g.Vega
		if sigma <= 0 {
			sigma = 0.0001
		}
	}
	return 0, ErrNoConvergence
}
