package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidArgument is wrapped by every input-validation failure in this
// module. Match with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// ContractType tags an option as a call or a put.
type ContractType int

const (
	Call ContractType = iota
	Put
)

func (ct ContractType) String() string {
	switch ct {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return fmt.Sprintf("ContractType(%d)", int(ct))
	}
}

// ParseContractType reads a contract type from text ("call"/"c", "put"/"p").
func ParseContractType(s string) (ContractType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return 0, fmt.Errorf("%w: unknown contract type %q", ErrInvalidArgument, s)
}

// OptionSpec describes a single-underlying European option. It is a plain
// value: pricers read it, nothing mutates it.
type OptionSpec struct {
	Type       ContractType
	Spot       float64 // current underlying price
	Strike     float64
	Maturity   float64 // years to expiration
	Volatility float64 // annualized
	Rate       float64 // continuously compounded risk-free rate
}

// Validate checks the spec before any pricing runs. Spot and strike must be
// strictly positive; zero maturity and zero volatility are valid degenerate
// cases that reduce to intrinsic value.
func (s OptionSpec) Validate() error {
	if s.Type != Call && s.Type != Put {
		return fmt.Errorf("%w: unknown contract type %d", ErrInvalidArgument, int(s.Type))
	}
	if s.Spot <= 0 || math.IsNaN(s.Spot) {
		return fmt.Errorf("%w: spot must be positive, got %v", ErrInvalidArgument, s.Spot)
	}
	if s.Strike <= 0 || math.IsNaN(s.Strike) {
		return fmt.Errorf("%w: strike must be positive, got %v", ErrInvalidArgument, s.Strike)
	}
	if s.Maturity < 0 || math.IsNaN(s.Maturity) {
		return fmt.Errorf("%w: maturity must be non-negative, got %v", ErrInvalidArgument, s.Maturity)
	}
	if s.Volatility < 0 || math.IsNaN(s.Volatility) {
		return fmt.Errorf("%w: volatility must be non-negative, got %v", ErrInvalidArgument, s.Volatility)
	}
	if math.IsNaN(s.Rate) {
		return fmt.Errorf("%w: rate must be a number", ErrInvalidArgument)
	}
	return nil
}

// IntrinsicValue is the payoff if the option were exercised at the spot.
func (s OptionSpec) IntrinsicValue() float64 {
	switch s.Type {
	case Put:
		return math.Max(s.Strike-s.Spot, 0)
	default:
		return math.Max(s.Spot-s.Strike, 0)
	}
}

// DiscountFactor is e^(-rT), the present value of one unit paid at maturity.
func (s OptionSpec) DiscountFactor() float64 {
	return math.Exp(-s.Rate * s.Maturity)
}

// Field names an OptionSpec parameter that a sensitivity sweep can vary.
type Field string

const (
	FieldSpot       Field = "spot"
	FieldStrike     Field = "strike"
	FieldMaturity   Field = "maturity"
	FieldVolatility Field = "volatility"
	FieldRate       Field = "rate"
)

// WithField returns a copy of s with the named field set to v.
func (s OptionSpec) WithField(f Field, v float64) (OptionSpec, error) {
	switch f {
	case FieldSpot:
		s.Spot = v
	case FieldStrike:
		s.Strike = v
	case FieldMaturity:
		s.Maturity = v
	case FieldVolatility:
		s.Volatility = v
	case FieldRate:
		s.Rate = v
	default:
		return OptionSpec{}, fmt.Errorf("%w: unknown sweep field %q", ErrInvalidArgument, string(f))
	}
	return s, nil
}
