// Package main provides CMA-ES optimization for finding steering parameters
// that keep worms orbiting their colonies smoothly.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/wormsoup/config"
	"github.com/pthm-cable/wormsoup/telemetry"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// evalLog appends one CSV row per evaluation: eval number, fitness and the
// clamped parameter values actually simulated.
type evalLog struct {
	file *os.File
	w    *csv.Writer
}

func openEvalLog(path string, params *ParamVector) (*evalLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating eval log: %w", err)
	}
	l := &evalLog{file: f, w: csv.NewWriter(f)}

	header := []string{"eval", "fitness", "quality"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := l.w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing eval log header: %w", err)
	}
	return l, nil
}

func (l *evalLog) write(eval int, fitness, quality float64, values []float64) {
	row := []string{
		strconv.Itoa(eval),
		strconv.FormatFloat(fitness, 'f', 6, 64),
		strconv.FormatFloat(quality, 'f', 6, 64),
	}
	for _, v := range values {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	l.w.Write(row)
	// Flush per row so a killed run keeps its history
	l.w.Flush()
}

func (l *evalLog) Close() error {
	l.w.Flush()
	return l.file.Close()
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seconds := flag.Float64("seconds", 60, "Simulated seconds per run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	// Create output directory
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load base config; its steering values seed the search
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()

	// Fixed seeds so every candidate faces the same worlds
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, *seconds, evalSeeds, baseCfg)

	// Search in normalized [0,1] space, starting from the loaded config
	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	popSize := *population
	if popSize == 0 {
		// Auto-size: 4 + 1.5n
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // evaluations share the evaluator's best-run state
	}

	evals, err := openEvalLog(filepath.Join(*outputDir, "optimize_log.csv"), params)
	if err != nil {
		log.Fatal(err)
	}
	defer evals.Close()

	// Track evaluations and timing
	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			// Values outside the bounds are clamped before simulating, so
			// log and keep the clamped vector
			values := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(values)
			quality := evaluator.LastQuality()
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = values
			}
			evals.write(evalCount, fitness, quality, values)

			elapsed := time.Since(startTime)
			remaining := time.Duration(*maxEvals-evalCount) * (elapsed / time.Duration(evalCount))
			fmt.Printf("Eval %d/%d: orbit quality=%.3f (best=%.3f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, quality, -bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	fmt.Printf("Tuning %d steering parameters with CMA-ES, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, simulated seconds per run: %.0f\n", *seeds, *seconds)

	// Run optimization. Hitting the evaluation budget is reported as an
	// error by gonum; the best vector is still valid.
	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best orbit quality: %.3f\n", -bestFitness)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	// Save best config on top of a fresh copy of the base config
	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}

	// Save the final world of the best run for the viewer
	if snap := evaluator.BestSnapshot(); snap != nil {
		path, err := telemetry.SaveSnapshot(snap, *outputDir)
		if err != nil {
			log.Printf("failed to write best snapshot: %v", err)
		} else {
			fmt.Printf("Best run snapshot saved to: %s\n", path)
		}
	}
}
