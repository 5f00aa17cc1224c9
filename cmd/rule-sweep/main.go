package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"lifetones/pkg/sims/life"
	"lifetones/pkg/sonify"
)

type scenario struct {
	rule    life.Rule
	pattern string // empty for a random fill
	seed    int64
}

func (s scenario) String() string {
	if s.pattern == "" {
		return fmt.Sprintf("%s random(seed=%d)", s.rule, s.seed)
	}
	return fmt.Sprintf("%s %s", s.rule, s.pattern)
}

type scenarioResult struct {
	scenario       scenario
	notes          int
	silentTicks    int
	distinctPitch  int
	peakPopulation int
	finalPop       int
	extinctAt      int
}

func main() {
	steps := flag.Int("steps", 200, "generations to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("w", 60, "grid width")
	height := flag.Int("h", 40, "grid height")
	modeName := flag.String("mode", sonify.Position.String(), "sonification mode")
	seeds := flag.Int("seeds", 3, "random fills per rule")
	fill := flag.Float64("fill", 0.2, "random fill density")
	top := flag.Int("top", 10, "results to print")
	flag.Parse()

	mode, err := sonify.ParseMode(*modeName)
	if err != nil {
		fmt.Println(err)
		return
	}

	var sets []scenario
	for _, rs := range life.Rules() {
		rule, _ := life.ParseRule(rs.Name)
		for _, name := range life.Patterns() {
			sets = append(sets, scenario{rule: rule, pattern: name})
		}
		for seed := 1; seed <= *seeds; seed++ {
			sets = append(sets, scenario{rule: rule, seed: int64(seed)})
		}
	}

	*workers = workerCount(*workers)
	fmt.Printf("Sweeping %d scenarios (%d workers, %d steps, %s mode)\n", len(sets), *workers, *steps, mode)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(sc, *width, *height, *fill, mode, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
		if res.extinctAt > 0 && res.extinctAt < *steps/10 {
			fmt.Printf("Died out early at gen %d: %s\n", res.extinctAt, res.scenario)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].notes != all[j].notes {
			return all[i].notes > all[j].notes
		}
		return all[i].scenario.String() < all[j].scenario.String()
	})
	elapsed := time.Since(start)

	fmt.Printf("\nTop %d results (elapsed %s):\n", *top, elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		res := all[i]
		fmt.Printf("%2d) notes=%d silent=%d pitches=%d pop[peak=%d final=%d] extinct=%d %s\n",
			i+1, res.notes, res.silentTicks, res.distinctPitch, res.peakPopulation, res.finalPop, res.extinctAt, res.scenario)
	}
}

// workerCount clamps the requested pool size to at least one worker.
func workerCount(n int) int {
	return max(n, 1)
}

func runScenario(sc scenario, w, h int, fill float64, mode sonify.Mode, steps int) scenarioResult {
	world := life.NewWithConfig(life.Config{Width: w, Height: h, Rule: sc.rule, Fill: fill})
	if sc.pattern == "" {
		world.Reset(sc.seed)
	} else {
		p, err := life.LookupPattern(sc.pattern)
		if err == nil {
			pw, ph := p.Size()
			world.LoadPattern(p, (w-pw)/2, (h-ph)/2)
		}
	}

	mc := sonify.DefaultConfig()
	mc.Mode = mode
	mapper := sonify.New(mc)
	mapper.Map(world)

	res := scenarioResult{scenario: sc, peakPopulation: world.Population()}
	pitches := map[float64]struct{}{}
	for step := 0; step < steps; step++ {
		world.Step()
		events := mapper.Map(world)
		if len(events) == 0 {
			res.silentTicks++
		}
		res.notes += len(events)
		for _, ev := range events {
			pitches[ev.Freq] = struct{}{}
		}
		pop := world.Population()
		if pop > res.peakPopulation {
			res.peakPopulation = pop
		}
		if pop == 0 {
			res.extinctAt = step + 1
			break
		}
	}
	res.finalPop = world.Population()
	res.distinctPitch = len(pitches)
	return res
}
