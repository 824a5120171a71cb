package main

import (
	"math"
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/noskyvisible/neural-evolution-simulation/config"
	"github.com/noskyvisible/neural-evolution-simulation/evo"
	"github.com/noskyvisible/neural-evolution-simulation/game"
	"github.com/noskyvisible/neural-evolution-simulation/telemetry"
)

// FitnessEvaluator runs simulations and scores parameter vectors.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []uint64
	baseConfig *config.Config

	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
	lastQuality    float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []uint64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// warmupTicks are run before depletion ends a run.
const warmupTicks = 500

type runResult struct {
	survivalTicks int // ticks before the first depletion, or maxTicks
	windows       []telemetry.WindowStats
	hallOfFame    *telemetry.HallOfFame
}

type seedResult struct {
	fitness    float64
	quality    float64
	hallOfFame *telemetry.HallOfFame
}

// Evaluate scores a parameter vector (lower is better) as the negated mean
// survival over all seeds, scaled by up to 20% for ecosystem quality.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s uint64) {
			defer wg.Done()
			cfg := fe.copyConfig()
			fe.params.ApplyToConfig(cfg, x)
			r := fe.runSimulation(cfg, s)
			q := computeQuality(cfg, r.windows)
			results[idx] = seedResult{
				fitness:    -(float64(r.survivalTicks) * (1 + 0.2*q)),
				quality:    q,
				hallOfFame: r.hallOfFame,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	bestSeed := results[0]
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < bestSeed.fitness {
			bestSeed = r
		}
	}
	n := float64(len(results))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestHallOfFame = bestSeed.hallOfFame
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation runs one world until a species is depleted after warmup or
// the tick cap is reached. Timed generations evolve as usual.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed uint64) runResult {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	w := game.New(cfg, rng)
	w.SpawnInitial()
	mgr := evo.NewManager(w, cfg, rng)

	var r runResult
	for w.CurrentTick() < fe.maxTicks {
		w.Tick()
		if stats, ok := w.FlushTelemetry(); ok {
			r.windows = append(r.windows, stats)
		}

		if mgr.Depleted() {
			if w.CurrentTick() >= warmupTicks {
				r.survivalTicks = w.CurrentTick()
				r.hallOfFame = w.HallOfFame()
				return r
			}
			mgr.Evolve()
			continue
		}
		if mgr.ShouldEvolve() {
			mgr.Evolve()
		}
	}

	r.survivalTicks = fe.maxTicks
	r.hallOfFame = w.HallOfFame()
	return r
}

func (fe *FitnessEvaluator) copyConfig() *config.Config {
	c := *fe.baseConfig
	return &c
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.30
	qualityWeightStability = 0.25
	qualityWeightEnergy    = 0.25
	qualityWeightHunting   = 0.20

	qualityWarmupWindows = 1
	qualityMinPop        = 3
)

// computeQuality scores ecosystem health in [0, 1] from window stats:
// prey/predator ratio near the configured targets, stable populations,
// median energies near half capacity and active wolf hunting.
func computeQuality(cfg *config.Config, windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	targetRatio := float64(cfg.Species.Herbivore.Target) /
		float64(max(cfg.Species.SoloPredator.Target+cfg.Species.PackPredator.Target, 1))
	maxEnergy := cfg.Organism.MaxEnergy

	var ratioSum, energySum, huntSum float64
	var count, huntCount int
	var prey, pred []float64

	for _, w := range windows[qualityWarmupWindows:] {
		if w.Rabbits < qualityMinPop || w.Predators() < qualityMinPop {
			continue
		}
		count++
		prey = append(prey, float64(w.Rabbits))
		pred = append(pred, float64(w.Predators()))

		logErr := math.Log(float64(w.Rabbits) / float64(w.Predators()) / targetRatio)
		ratioSum += math.Exp(-logErr * logErr)

		rabbitH := math.Exp(-math.Pow((w.RabbitEnergyP50/maxEnergy-0.5)/0.25, 2))
		predP50 := max(w.FoxEnergyP50, w.WolfEnergyP50)
		predH := math.Exp(-math.Pow((predP50/maxEnergy-0.5)/0.25, 2))
		energySum += (rabbitH + predH) / 2

		if w.WolfHunts > 0 {
			huntSum += math.Exp(-math.Pow((w.WolfHuntRate-0.35)/0.2, 2))
			huntCount++
		}
	}
	if count == 0 {
		return 0
	}

	stability := 0.0
	if len(prey) >= 2 {
		cvPrey, cvPred := cv(prey), cv(pred)
		stability = math.Exp(-(cvPrey*cvPrey + cvPred*cvPred))
	}
	hunting := 0.0
	if huntCount > 0 {
		hunting = huntSum / float64(huntCount)
	}

	q := qualityWeightRatio*ratioSum/float64(count) +
		qualityWeightStability*stability +
		qualityWeightEnergy*energySum/float64(count) +
		qualityWeightHunting*hunting
	return min(max(q, 0), 1)
}

// cv returns the coefficient of variation.
func cv(values []float64) float64 {
	mean, std := stat.MeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
