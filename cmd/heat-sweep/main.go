package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"ombrobox/internal/sims/sandbox"
)

type paramSet struct {
	transfer float64
	original bool
}

func (p paramSet) String() string {
	schedule := "uniform"
	if p.original {
		schedule = "original"
	}
	return fmt.Sprintf("lavaTransfer=%.3f schedule=%s", p.transfer, schedule)
}

type scenarioResult struct {
	params paramSet
	sandbox.BoilTelemetry
	err error
}

func main() {
	steps := flag.Int("steps", 600, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	transfers := flag.String("transfers", "0.02,0.05,0.1,0.2,0.4,0.8", "comma separated lava heat transfer values")
	width := flag.Int("w", 48, "world width")
	height := flag.Int("h", 32, "world height")
	seed := flag.Int64("seed", 42, "random table seed")
	flag.Parse()

	values, err := parseTransfers(*transfers)
	if err != nil {
		log.Fatal(err)
	}

	base := sandbox.DefaultConfig()
	base.Width = *width
	base.Height = *height
	base.Seed = *seed

	var sets []paramSet
	for _, v := range values {
		sets = append(sets, paramSet{transfer: v}, paramSet{transfer: v, original: true})
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), *workers, *steps)
	start := time.Now()
	all := sweep(base, sets, *steps, *workers)
	elapsed := time.Since(start)

	fmt.Printf("\nResults by time to first vapor (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i, res := range all {
		if res.err != nil {
			fmt.Printf("%2d) %s error: %v\n", i+1, res.params, res.err)
			continue
		}
		fmt.Printf("%2d) firstVapor=%d peakVapor=%d vapor=%d water=%d rock=%d %s\n",
			i+1, res.FirstVaporTick, res.PeakVapor, res.FinalVapor, res.FinalWater, res.RockFormed, res.params)
	}
}

// sweep runs every parameter set on a pool of workers and returns the
// results ordered by first vapor tick, runs that never boiled last.
func sweep(base sandbox.Config, sets []paramSet, steps, workers int) []scenarioResult {
	if workers <= 0 {
		workers = 1
	}
	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, params, steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if (a.FirstVaporTick < 0) != (b.FirstVaporTick < 0) {
			return b.FirstVaporTick < 0
		}
		if a.FirstVaporTick != b.FirstVaporTick {
			return a.FirstVaporTick < b.FirstVaporTick
		}
		if a.params.transfer != b.params.transfer {
			return a.params.transfer < b.params.transfer
		}
		return !a.params.original && b.params.original
	})
	return all
}

func runScenario(base sandbox.Config, params paramSet, steps int) scenarioResult {
	cfg := base
	if params.original {
		cfg = sandbox.OriginalSchedule(cfg)
	}
	tel, err := sandbox.BoilResult(cfg, params.transfer, steps)
	return scenarioResult{params: params, BoilTelemetry: tel, err: err}
}

func parseTransfers(s string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil || v < 0 {
			return nil, eris.Errorf("invalid transfer %q", field)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, eris.New("no transfer values")
	}
	return out, nil
}
