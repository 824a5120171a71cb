package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/config"
	"github.com/noskyvisible/neural-evolution-simulation/evo"
	"github.com/noskyvisible/neural-evolution-simulation/game"
	"github.com/noskyvisible/neural-evolution-simulation/inspector"
	"github.com/noskyvisible/neural-evolution-simulation/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	reportEvery := flag.Int("report-every", 0, "Ticks between reports (0 = use config)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *reportEvery > 0 {
		cfg.Telemetry.ReportInterval = *reportEvery
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(rngSeed, rngSeed^0x9e3779b97f4a7c15))

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	world := game.New(cfg, rng)
	world.SpawnInitial()
	manager := evo.NewManager(world, cfg, rng)

	slog.Info("starting simulation",
		"seed", rngSeed,
		"max_ticks", *maxTicks,
		"report_every", cfg.Telemetry.ReportInterval,
		"rabbits", world.Population(components.Herbivore),
		"foxes", world.Population(components.SoloPredator),
		"wolves", world.Population(components.PackPredator),
	)

	run(ctx, world, manager, out, *maxTicks)

	report(world)
	if err := out.WriteHallOfFame(world.HallOfFame()); err != nil {
		slog.Error("failed to write hall of fame", "error", err)
	}
	if err := out.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// run advances the world until the context is cancelled or maxTicks is
// reached. Cancellation is observed between ticks.
func run(ctx context.Context, world *game.World, manager *evo.Manager, out *telemetry.OutputManager, maxTicks int) {
	bookmarks := telemetry.NewBookmarkDetector(world.Config().Telemetry.BookmarkHistory)

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation interrupted", "tick", world.CurrentTick())
			return
		default:
		}

		world.Tick()

		if manager.ShouldEvolve() {
			slog.Info("triggering evolution", "tick", world.CurrentTick())
			if err := out.WriteGenerations(manager.Evolve()); err != nil {
				slog.Error("failed to write generations", "error", err)
			}
		}
		for _, s := range world.RespawnExtinct() {
			slog.Warn("species extinct, respawned", "species", s.String(), "tick", world.CurrentTick())
		}

		if stats, ok := world.FlushTelemetry(); ok {
			flush(world, out, bookmarks, stats)
		}

		if maxTicks > 0 && world.CurrentTick() >= maxTicks {
			slog.Info("max ticks reached", "tick", world.CurrentTick())
			return
		}
	}
}

// flush logs and persists one closed telemetry window.
func flush(world *game.World, out *telemetry.OutputManager, bookmarks *telemetry.BookmarkDetector, stats telemetry.WindowStats) {
	perf := world.Perf().Stats()
	slog.Info("population", "snapshot", world.Snapshot())
	stats.LogStats()
	perf.LogStats()

	if err := out.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := out.WritePerf(perf, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	for _, bm := range bookmarks.Check(stats) {
		bm.LogBookmark()
		if err := out.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// report prints the final statistics and the fittest living organism of
// each species, plus the best ever recorded.
func report(world *game.World) {
	snap := world.Snapshot()
	fmt.Println("\n=== SIMULATION COMPLETE ===")
	fmt.Printf("Total ticks: %d\n", snap.Tick)
	fmt.Printf("Generations: %d\n", snap.Generation)
	fmt.Printf("Food: %d  Packs: %d  Lone wolves: %d\n", snap.Resources, snap.Packs, snap.LoneWolves)

	for _, s := range components.AllSpecies {
		ss := snap.Species[s]
		fmt.Printf("\n%s: %d (M:%d F:%d, pregnant %d), avg energy %.1f, avg age %.1f\n",
			strings.ToUpper(s.Plural()[:1])+s.Plural()[1:],
			ss.Population, ss.Males, ss.Females, ss.Pregnant, ss.AvgEnergy, ss.AvgAge)

		living := world.Organisms(s)
		if len(living) > 0 {
			best := slices.MaxFunc(living, func(a, b game.OrganismView) int {
				return cmp.Compare(a.Fitness, b.Fitness)
			})
			fmt.Printf("Best living %s:\n", s)
			if comps, ok := world.Inspect(best.ID); ok {
				if err := inspector.Describe(os.Stdout, comps...); err != nil {
					slog.Error("failed to describe organism", "error", err)
				}
			}
		}

		if e, ok := world.HallOfFame().Best(s); ok {
			fmt.Printf("Best ever %s: #%d gen %d, fitness %.2f, children %d, kills %d, age %d\n",
				s, e.ID, e.Generation, e.Fitness, e.Children, e.Kills, e.Age)
		}
	}
}
