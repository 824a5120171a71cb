package game

import (
	"maps"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/config"
	"github.com/noskyvisible/neural-evolution-simulation/neural"
	"github.com/noskyvisible/neural-evolution-simulation/telemetry"
)

// newTestWorld builds an empty world with no food replenishment.
func newTestWorld(t *testing.T, tweak func(*config.Config)) *World {
	t.Helper()
	cfg := config.Default()
	cfg.Resource.Interval = 0
	cfg.Resource.RandomChance = 0
	cfg.Pack.JoinChance = 0
	cfg.Pack.FoundChance = 0
	if tweak != nil {
		tweak(cfg)
	}
	return New(cfg, rand.New(rand.NewPCG(1, 2)))
}

// place spawns an organism at a fixed position with a fresh controller.
func (w *World) place(s components.Species, x, y float64, sex components.Sex) uint32 {
	return w.spawnOrganism(s, x, y, sex, neural.NewFFNN(w.rng, w.topology[s]), w.randomSocial(s))
}

func (w *World) vitalsOf(id uint32) *components.Vitals {
	return w.vitMap.Get(w.byID[id])
}

func (w *World) reproOf(id uint32) *components.Reproduction {
	return w.reproMap.Get(w.byID[id])
}

func TestStarvationTiming(t *testing.T) {
	w := newTestWorld(t, nil)
	id := w.place(components.Herbivore, 400, 300, components.Male)

	for range 499 {
		w.Tick()
	}
	if w.Population(components.Herbivore) != 1 {
		t.Fatal("herbivore died before its energy ran out")
	}
	if e := w.vitalsOf(id).Energy; math.Abs(e-0.2) > 1e-9 {
		t.Errorf("energy after 499 ticks = %g, want 0.2", e)
	}

	w.Tick()
	w.Tick()
	if w.Population(components.Herbivore) != 0 {
		t.Error("starved herbivore still in population")
	}
	if got := w.Events().Count(telemetry.EventDeath, components.Herbivore); got != 1 {
		t.Errorf("deaths recorded = %d, want 1", got)
	}
}

func TestMatingConception(t *testing.T) {
	w := newTestWorld(t, nil)
	male := w.place(components.Herbivore, 400, 300, components.Male)
	female := w.place(components.Herbivore, 405, 300, components.Female)
	for _, id := range []uint32{male, female} {
		w.vitalsOf(id).Energy = 150
		w.vitalsOf(id).Age = 250
	}

	w.Tick()

	m, f := w.reproOf(male), w.reproOf(female)
	if m.Cooldown != 500 || f.Cooldown != 500 {
		t.Errorf("cooldowns = (%d, %d), want 500", m.Cooldown, f.Cooldown)
	}
	if !f.Pregnant || f.Gestation != 300 {
		t.Errorf("female pregnant=%v gestation=%d, want true 300", f.Pregnant, f.Gestation)
	}
	if m.Pregnant {
		t.Error("male must not become pregnant")
	}
	if m.LastMate != female || f.LastMate != male {
		t.Errorf("last mates = (%d, %d), want (%d, %d)", m.LastMate, f.LastMate, female, male)
	}
	if e := w.vitalsOf(female).Energy; math.Abs(e-(150-0.2-30)) > 1e-9 {
		t.Errorf("female energy = %g, want conception cost charged", e)
	}
}

func TestMatingPairsEachOrganismOnce(t *testing.T) {
	w := newTestWorld(t, nil)
	female := w.place(components.Herbivore, 400, 300, components.Female)
	males := []uint32{
		w.place(components.Herbivore, 404, 300, components.Male),
		w.place(components.Herbivore, 396, 300, components.Male),
	}
	for _, id := range append([]uint32{female}, males...) {
		w.vitalsOf(id).Energy = 150
		w.vitalsOf(id).Age = 250
	}

	w.Tick()

	if !w.reproOf(female).Pregnant {
		t.Fatal("female should have conceived")
	}
	mated := 0
	for _, id := range males {
		if w.reproOf(id).Cooldown > 0 {
			mated++
		}
	}
	if mated != 1 {
		t.Errorf("%d males mated, want exactly 1", mated)
	}
}

func TestBirthSpawnsChild(t *testing.T) {
	w := newTestWorld(t, nil)
	mother := w.place(components.Herbivore, 400, 300, components.Female)
	r := w.reproOf(mother)
	r.Pregnant = true
	r.Gestation = 1

	w.Tick()

	if got := w.Population(components.Herbivore); got != 2 {
		t.Fatalf("population = %d, want 2", got)
	}
	if r := w.reproOf(mother); r.Pregnant || r.Gestation != 0 {
		t.Errorf("mother still pregnant: %+v", *r)
	}
	if c := w.orgMap.Get(w.byID[mother]).Children; c != 1 {
		t.Errorf("children = %d, want 1", c)
	}
	if e := w.vitalsOf(mother).Energy; math.Abs(e-(100-0.2-10)) > 1e-9 {
		t.Errorf("mother energy = %g, want birth cost charged", e)
	}

	child := w.Organisms(components.Herbivore)[1]
	if child.Age != 0 || child.Energy != w.cfg.Organism.InitialEnergy {
		t.Errorf("newborn should not act in its birth tick: %+v", child)
	}
	if math.Abs(child.X-400) > w.cfg.Species.Herbivore.BirthScatter+1e-9 {
		t.Errorf("child x = %g, too far from mother", child.X)
	}
}

func TestSoloPredatorKillsPrey(t *testing.T) {
	w := newTestWorld(t, func(c *config.Config) { c.Organism.MaxSpeed = 0 })
	w.place(components.Herbivore, 400, 300, components.Male)
	fox := w.place(components.SoloPredator, 405, 300, components.Female)
	w.vitalsOf(fox).Energy = 50

	w.Tick()

	if got := w.Population(components.Herbivore); got != 0 {
		t.Fatalf("herbivores = %d, want 0", got)
	}
	org := w.orgMap.Get(w.byID[fox])
	if org.Kills != 1 {
		t.Errorf("kills = %d, want 1", org.Kills)
	}
	if e := w.vitalsOf(fox).Energy; math.Abs(e-(50-0.2+50)) > 1e-9 {
		t.Errorf("fox energy = %g, want kill energy added", e)
	}
}

func TestFeedingConsumesFood(t *testing.T) {
	w := newTestWorld(t, func(c *config.Config) { c.Organism.MaxSpeed = 0 })
	id := w.place(components.Herbivore, 400, 300, components.Male)
	w.resources = append(w.resources,
		components.Resource{X: 405, Y: 300, Energy: 30},
		components.Resource{X: 700, Y: 500, Energy: 30},
	)

	w.Tick()

	if got := len(w.Resources()); got != 1 {
		t.Fatalf("resources = %d, want 1", got)
	}
	if e := w.vitalsOf(id).Energy; math.Abs(e-(100-0.2+30)) > 1e-9 {
		t.Errorf("energy = %g, want food energy added", e)
	}
}

func TestReplacePopulation(t *testing.T) {
	w := newTestWorld(t, nil)
	w.SpawnRandomPopulation(6, components.Herbivore)
	old := w.Organisms(components.Herbivore)

	seeds := []Seed{{Sex: components.Male}, {Sex: components.Female}, {Sex: components.Female}}
	w.ReplacePopulation(components.Herbivore, seeds)

	if got := w.Population(components.Herbivore); got != 3 {
		t.Fatalf("population = %d, want 3", got)
	}
	for _, o := range old {
		if _, ok := w.byID[o.ID]; ok {
			t.Errorf("organism %d survived replacement", o.ID)
		}
	}
	snap := w.Snapshot().Species[components.Herbivore]
	if snap.Males != 1 || snap.Females != 2 {
		t.Errorf("sexes = %d/%d, want 1/2", snap.Males, snap.Females)
	}
	if got := w.Events().Count(telemetry.EventDeath, components.Herbivore); got != 0 {
		t.Errorf("replacement recorded %d deaths, want none", got)
	}
}

func TestReplacePopulationRejectsTopology(t *testing.T) {
	w := newTestWorld(t, nil)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for mismatched topology")
		}
	}()
	wrong := neural.NewFFNN(w.rng, w.topology[components.PackPredator])
	w.ReplacePopulation(components.Herbivore, []Seed{{Brain: wrong}})
}

func TestSnapshotEmptyWorld(t *testing.T) {
	w := newTestWorld(t, nil)
	snap := w.Snapshot()
	for _, s := range components.AllSpecies {
		if ss := snap.Species[s]; ss.Population != 0 || ss.AvgEnergy != 0 || ss.AvgAge != 0 {
			t.Errorf("%s: non-zero snapshot %+v", s, ss)
		}
	}
	if snap.Generation != 1 {
		t.Errorf("generation = %d, want 1", snap.Generation)
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() map[string]float64 {
		cfg := config.Default()
		w := New(cfg, rand.New(rand.NewPCG(42, 7)))
		w.SpawnInitial()
		for range 300 {
			w.Tick()
		}
		return w.Stats()
	}

	a, b := run(), run()
	if !maps.Equal(a, b) {
		t.Errorf("runs diverged:\n%v\n%v", a, b)
	}
}

func BenchmarkTick(b *testing.B) {
	w := New(config.Default(), rand.New(rand.NewPCG(1, 1)))
	w.SpawnInitial()
	for b.Loop() {
		w.Tick()
		if w.Population(components.Herbivore) == 0 {
			w.SpawnRandomPopulation(w.cfg.Species.Herbivore.Target, components.Herbivore)
		}
	}
}

func TestRespawnExtinct(t *testing.T) {
	w := newTestWorld(t, nil)
	w.SpawnRandomPopulation(3, components.SoloPredator)

	got := w.RespawnExtinct()

	if len(got) != 2 || got[0] != components.Herbivore || got[1] != components.PackPredator {
		t.Fatalf("respawned %v, want [rabbit wolf]", got)
	}
	if n := w.Population(components.Herbivore); n != 20 {
		t.Errorf("herbivores = %d, want 20", n)
	}
	if n := w.Population(components.SoloPredator); n != 3 {
		t.Errorf("solo predators = %d, want untouched 3", n)
	}
	if n := w.Population(components.PackPredator); n != 6 {
		t.Errorf("pack predators = %d, want 6", n)
	}
	if len(w.packs) == 0 {
		t.Error("respawned pack predators should be grouped into packs")
	}
	checkPackConsistency(t, w)
}

func TestRespawnFromHall(t *testing.T) {
	w := newTestWorld(t, func(c *config.Config) { c.Population.ReseedFromHall = true })
	id := w.place(components.SoloPredator, 400, 300, components.Male)
	w.orgMap.Get(w.byID[id]).Fitness = 50
	parent := w.brains[id].Params()
	w.vitalsOf(id).Alive = false
	w.reap()

	if w.HallOfFame().Size(components.SoloPredator) != 1 {
		t.Fatal("dead organism was not offered to the hall of fame")
	}

	w.RespawnExtinct()

	if n := w.Population(components.SoloPredator); n != 8 {
		t.Fatalf("solo predators = %d, want 8", n)
	}
	for _, m := range w.Members(components.SoloPredator) {
		params := m.Brain.Params()
		diff := 0
		for i := range params {
			if params[i] != parent[i] {
				diff++
			}
		}
		if diff == len(params) {
			t.Errorf("organism %d does not descend from the hall entry", m.ID)
		}
	}
}
