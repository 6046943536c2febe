// Package sweep re-evaluates a pricer across a swept input parameter while
// holding the others fixed.
package sweep

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/optquant/europricer/closedform"
	"github.com/optquant/europricer/models"
	"github.com/optquant/europricer/montecarlo"
)

// Pricer prices the call and put legs of one sweep point. The point index
// identifies the position in the input sequence so that simulation-backed
// pricers can derive an independent stream per point.
type Pricer interface {
	PriceBoth(spec models.OptionSpec, point int) (call, put float64, err error)
}

// ClosedForm prices sweep points with the Black-Scholes formula.
type ClosedForm struct{}

func (ClosedForm) PriceBoth(spec models.OptionSpec, _ int) (float64, float64, error) {
	return closedform.PriceBoth(spec)
}

// MonteCarlo prices sweep points by simulation. Point i draws from the stream
// seeded with Seed+i, so a given (Seed, point) pair replays exactly and
// concurrent points never share a source.
type MonteCarlo struct {
	Trials int
	Seed   uint64
	Pricer *montecarlo.Pricer
}

func (m MonteCarlo) PriceBoth(spec models.OptionSpec, point int) (float64, float64, error) {
	p := m.Pricer
	if p == nil {
		p = montecarlo.NewPricer()
	}
	return p.PriceBoth(spec, m.Trials, m.Seed+uint64(point))
}

// Result holds call and put price sequences parallel to the swept input
// values.
type Result struct {
	Calls []float64
	Puts  []float64
}

// Sweep prices base once per value, with the named field set to that value
// and everything else held fixed. Points are priced concurrently but land in
// input order; duplicates are recomputed, never collapsed.
func Sweep(base models.OptionSpec, field models.Field, values []float64, p Pricer) (*Result, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: sweep values must not be empty", models.ErrInvalidArgument)
	}
	if _, err := base.WithField(field, values[0]); err != nil {
		return nil, err
	}

	res := &Result{
		Calls: make([]float64, len(values)),
		Puts:  make([]float64, len(values)),
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(values) {
		workers = len(values)
	}

	jobs := make(chan int, len(values))
	for i := range values {
		jobs <- i
	}
	close(jobs)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				spec, err := base.WithField(field, values[i])
				if err == nil {
					var call, put float64
					call, put, err = p.PriceBoth(spec, i)
					res.Calls[i], res.Puts[i] = call, put
				}
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return res, nil
}
