package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shirou/gopsutil/cpu"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
	"github.com/xhhuango/json"
	"gonum.org/v1/gonum/floats"

	"github.com/optquant/europricer"
	"github.com/optquant/europricer/closedform"
	"github.com/optquant/europricer/models"
	"github.com/optquant/europricer/montecarlo"
	"github.com/optquant/europricer/sweep"
)

var (
	flagType     string
	flagSpot     float64
	flagStrike   float64
	flagMaturity float64
	flagVol      float64
	flagRate     float64

	flagMethod string
	flagTrials int
	flagSeed   uint64
	flagJSON   bool
	flagCPU    bool

	flagField  string
	flagFrom   float64
	flagTo     float64
	flagPoints int
	flagOut    string
)

func main() {
	// A .env file may override the built-in scenario defaults.
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded defaults from .env")
	}

	root := &cobra.Command{
		Use:          "europricer",
		Short:        "Price European options by Black-Scholes or Monte Carlo simulation",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flagType, "type", envStr("EUROPRICER_TYPE", "call"), "contract type (call|put)")
	root.PersistentFlags().Float64Var(&flagSpot, "spot", envFloat("EUROPRICER_SPOT", europricer.DefaultSpot), "underlying spot price")
	root.PersistentFlags().Float64Var(&flagStrike, "strike", envFloat("EUROPRICER_STRIKE", europricer.DefaultStrike), "strike price")
	root.PersistentFlags().Float64Var(&flagMaturity, "maturity", envFloat("EUROPRICER_MATURITY", europricer.DefaultMaturity), "years to expiration")
	root.PersistentFlags().Float64Var(&flagVol, "vol", envFloat("EUROPRICER_VOL", europricer.DefaultVolatility), "annualized volatility")
	root.PersistentFlags().Float64Var(&flagRate, "rate", envFloat("EUROPRICER_RATE", europricer.DefaultRate), "risk-free rate")
	root.PersistentFlags().StringVar(&flagMethod, "method", "bs", "pricing method (bs|mc)")
	root.PersistentFlags().IntVar(&flagTrials, "trials", europricer.DefaultTrials, "Monte Carlo trial count")
	root.PersistentFlags().Uint64Var(&flagSeed, "seed", 42, "Monte Carlo seed")

	price := &cobra.Command{
		Use:   "price",
		Short: "Price a single option",
		RunE:  runPrice,
	}
	price.Flags().BoolVar(&flagJSON, "json", false, "emit the result as JSON")
	price.Flags().BoolVar(&flagCPU, "cpu", false, "report CPU usage after a Monte Carlo run")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep one parameter and price call and put at every point",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&flagField, "field", "volatility", "field to sweep (spot|strike|maturity|volatility|rate)")
	sweepCmd.Flags().Float64Var(&flagFrom, "from", 0.05, "first sweep value")
	sweepCmd.Flags().Float64Var(&flagTo, "to", 0.60, "last sweep value")
	sweepCmd.Flags().IntVar(&flagPoints, "points", 12, "number of sweep points")
	sweepCmd.Flags().StringVar(&flagOut, "out", "", "write the sweep result to this JSON file instead of stdout")

	root.AddCommand(price, sweepCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func specFromFlags() (models.OptionSpec, error) {
	ct, err := models.ParseContractType(flagType)
	if err != nil {
		return models.OptionSpec{}, err
	}
	spec := models.OptionSpec{
		Type:       ct,
		Spot:       flagSpot,
		Strike:     flagStrike,
		Maturity:   flagMaturity,
		Volatility: flagVol,
		Rate:       flagRate,
	}
	return spec, spec.Validate()
}

func runPrice(cmd *cobra.Command, args []string) error {
	spec, err := specFromFlags()
	if err != nil {
		return err
	}

	entry := log.WithFields(log.Fields{
		"type":     spec.Type.String(),
		"spot":     spec.Spot,
		"strike":   spec.Strike,
		"maturity": spec.Maturity,
		"vol":      spec.Volatility,
		"rate":     spec.Rate,
	})

	var result struct {
		Method  string              `json:"method"`
		Price   float64             `json:"price"`
		Greeks  *closedform.Greeks  `json:"greeks,omitempty"`
		Summary *montecarlo.Summary `json:"trial_summary,omitempty"`
		Trials  int                 `json:"trials,omitempty"`
		Seed    uint64              `json:"seed,omitempty"`
	}
	result.Method = flagMethod

	switch flagMethod {
	case "bs":
		price, err := closedform.Price(spec)
		if err != nil {
			return err
		}
		result.Price = price
		if g, err := closedform.ComputeGreeks(spec); err == nil {
			result.Greeks = &g
		}
		entry.WithField("price", price).Info("black-scholes price")

	case "mc":
		start := time.Now()
		progress := mpb.New(mpb.WithWidth(64))
		bar := progress.AddBar(int64(flagTrials),
			mpb.PrependDecorators(
				decor.Name("Simulating"),
				decor.Percentage(decor.WCSyncSpace),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
			),
		)

		pricer := montecarlo.NewPricer()
		pricer.Progress = func(n int) { bar.IncrBy(n) }

		price, trials, err := pricer.PriceWithTrials(spec, flagTrials, flagSeed)
		if err != nil {
			return err
		}
		progress.Wait()

		summary := trials.Summarize(10)
		result.Price = price
		result.Summary = &summary
		result.Trials = flagTrials
		result.Seed = flagSeed
		entry.WithFields(log.Fields{
			"price":   price,
			"trials":  flagTrials,
			"seed":    flagSeed,
			"st_min":  summary.Min,
			"st_max":  summary.Max,
			"st_mean": summary.Mean,
			"elapsed": time.Since(start),
		}).Info("monte carlo price")

		if flagCPU {
			if pct, err := cpu.Percent(time.Second, false); err == nil && len(pct) > 0 {
				log.Infof("CPU usage: %.2f%%", pct[0])
			}
		}

	default:
		return fmt.Errorf("unknown method %q (want bs or mc)", flagMethod)
	}

	if flagJSON {
		out, err := json.Marshal(result)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	} else {
		fmt.Printf("%s price: %.4f\n", spec.Type, result.Price)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	spec, err := specFromFlags()
	if err != nil {
		return err
	}
	if flagPoints < 2 {
		return fmt.Errorf("need at least 2 sweep points, got %d", flagPoints)
	}

	values := floats.Span(make([]float64, flagPoints), flagFrom, flagTo)

	var pricer sweep.Pricer = sweep.ClosedForm{}
	if flagMethod == "mc" {
		pricer = sweep.MonteCarlo{Trials: flagTrials, Seed: flagSeed}
	}

	start := time.Now()
	res, err := sweep.Sweep(spec, models.Field(flagField), values, pricer)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"field":   flagField,
		"points":  flagPoints,
		"method":  flagMethod,
		"elapsed": time.Since(start),
	}).Info("sweep complete")

	out, err := json.Marshal(struct {
		Field  string    `json:"field"`
		Values []float64 `json:"values"`
		Calls  []float64 `json:"calls"`
		Puts   []float64 `json:"puts"`
	}{flagField, values, res.Calls, res.Puts})
	if err != nil {
		return err
	}

	if flagOut != "" {
		if err := os.WriteFile(flagOut, out, 0644); err != nil {
			return err
		}
		log.Infof("wrote %d sweep points to %s", flagPoints, flagOut)
		return nil
	}
	fmt.Println(string(out))
	return nil
}

func envStr(name, def string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return def
}

func envFloat(name string, def float64) float64 {
	if v, ok := os.LookupEnv(name); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
