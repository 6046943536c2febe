package montecarlo

import "github.com/montanaflynn/stats"

// TrialSet holds the raw draws, terminal prices and payoffs of a single
// pricing run. It is created fresh per invocation, returned only by
// PriceWithTrials, and never shared between calls.
type TrialSet struct {
	Draws     []float64
	Terminals []float64
	Payoffs   []float64
}

// Summary describes the simulated terminal-price distribution for diagnostic
// inspection.
type Summary struct {
	Trials    int
	Min       float64
	Max       float64
	Mean      float64
	StdDev    float64
	Subsample []float64
}

// Summarize reduces the terminal prices to min/max/mean/stddev plus a random
// subsample of up to sampleSize rows (without replacement). Pass zero to skip
// the subsample.
func (t *TrialSet) Summarize(sampleSize int) Summary {
	min, _ := stats.Min(t.Terminals)
	max, _ := stats.Max(t.Terminals)
	mean, _ := stats.Mean(t.Terminals)
	sd, _ := stats.StandardDeviation(t.Terminals)

	var sub []float64
	if sampleSize > 0 {
		if sampleSize > len(t.Terminals) {
			sampleSize = len(t.Terminals)
		}
		sub, _ = stats.Sample(t.Terminals, sampleSize, false)
	}

	return Summary{
		Trials:    len(t.Terminals),
		Min:       min,
		Max:       max,
		Mean:      mean,
		StdDev:    sd,
		Subsample: sub,
	}
}
