package models

import (
	"fmt"
	"math"
)

// TerminalPrice maps a standard-normal draw to a simulated terminal asset
// price under geometric Brownian motion:
//
//	ST = S · exp[(r − σ²/2)·T + σ·ε·√T]
//
// Returns are normal, so prices are lognormal and stay positive for S > 0.
// At T = 0 the result is exactly S for any draw.
func (s OptionSpec) TerminalPrice(eps float64) float64 {
	if s.Maturity == 0 {
		return s.Spot
	}
	drift := (s.Rate - 0.5*s.Volatility*s.Volatility) * s.Maturity
	diffusion := s.Volatility * eps * math.Sqrt(s.Maturity)
	return s.Spot * math.Exp(drift+diffusion)
}

// Payoff is the exercise value of a contract at terminal price st.
func Payoff(ct ContractType, st, strike float64) (float64, error) {
	switch ct {
	case Call:
		return math.Max(st-strike, 0), nil
	case Put:
		return math.Max(strike-st, 0), nil
	default:
		return 0, fmt.Errorf("%w: unknown contract type %d", ErrInvalidArgument, int(ct))
	}
}

// Payoffs applies Payoff element-wise over a slice of terminal prices.
func Payoffs(ct ContractType, terminals []float64, strike float64) ([]float64, error) {
	out := make([]float64, len(terminals))
	for i, st := range terminals {
		po, err := Payoff(ct, st, strike)
		if err != nil {
			return nil, err
		}
		out[i] = po
	}
	return out, nil
}
