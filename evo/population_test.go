package evo

import (
	"math/rand/v2"
	"testing"

	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/config"
	"github.com/noskyvisible/neural-evolution-simulation/game"
	"github.com/noskyvisible/neural-evolution-simulation/neural"
)

func newTestManager(seed uint64) (*Manager, *game.World) {
	cfg := config.Default()
	rng := rand.New(rand.NewPCG(seed, seed+1))
	w := game.New(cfg, rng)
	return NewManager(w, cfg, rng), w
}

// makeMembers builds n members with alternating sexes and fitness n-1..0.
func makeMembers(rng *rand.Rand, topo neural.Topology, n int, sex func(i int) components.Sex) []game.Member {
	members := make([]game.Member, n)
	for i := range members {
		members[i] = game.Member{
			ID:        uint32(i + 1),
			Sex:       sex(i),
			Fitness:   float64(n - 1 - i),
			Brain:     neural.NewFFNN(rng, topo),
			Dominance: 0.5,
			Loyalty:   0.5,
		}
	}
	return members
}

func alternating(i int) components.Sex { return components.Sex(i % 2) }
func allMale(int) components.Sex       { return components.Male }

func countSexes(seeds []game.Seed) (males, females int) {
	for _, s := range seeds {
		if s.Sex == components.Female {
			females++
		} else {
			males++
		}
	}
	return males, females
}

func TestEvolveEmptyPopulation(t *testing.T) {
	m, _ := newTestManager(1)

	seeds := m.EvolvePopulation(nil, 10, components.Herbivore)

	if len(seeds) != 10 {
		t.Fatalf("len = %d, want 10", len(seeds))
	}
	males, females := countSexes(seeds)
	if males != 5 || females != 5 {
		t.Errorf("sexes = %d/%d, want 5/5", males, females)
	}
	for i, s := range seeds {
		if s.Brain != nil {
			t.Errorf("seed %d should get a fresh controller", i)
		}
	}
}

func TestEvolvePopulationSizeAndBalance(t *testing.T) {
	tests := []struct {
		name    string
		members int
		target  int
		sex     func(int) components.Sex
	}{
		{"single", 1, 10, alternating},
		{"pair", 2, 12, alternating},
		{"small odd target", 3, 7, alternating},
		{"shrinking", 60, 40, alternating},
		{"growing", 10, 40, alternating},
		{"one sex only", 12, 12, allMale},
		{"odd target", 9, 13, alternating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, w := newTestManager(7)
			rng := rand.New(rand.NewPCG(3, 4))
			members := makeMembers(rng, w.Topology(components.SoloPredator), tt.members, tt.sex)

			seeds := m.EvolvePopulation(members, tt.target, components.SoloPredator)

			if len(seeds) != tt.target {
				t.Fatalf("len = %d, want %d", len(seeds), tt.target)
			}
			males, females := countSexes(seeds)
			if d := males - females; d > 1 || d < -1 {
				t.Errorf("sexes = %d/%d, differ by more than one", males, females)
			}
			for i, s := range seeds {
				if s.Brain == nil {
					t.Fatalf("seed %d has no controller", i)
				}
				for _, mb := range members {
					if s.Brain == mb.Brain {
						t.Fatalf("seed %d shares a controller with member %d", i, mb.ID)
					}
				}
			}
		})
	}
}

func TestSurvivorsCarryControllers(t *testing.T) {
	m, w := newTestManager(2)
	rng := rand.New(rand.NewPCG(5, 6))
	members := makeMembers(rng, w.Topology(components.Herbivore), 40, alternating)

	seeds := m.EvolvePopulation(members, 40, components.Herbivore)

	// 40 members: elite of 10, 40/7 = 5 survivors, best first.
	for i := range 5 {
		want := members[i].Brain.Params()
		got := seeds[i].Brain.Params()
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("survivor %d controller differs at %d", i, j)
			}
		}
		if seeds[i].Sex != members[i].Sex {
			t.Errorf("survivor %d sex changed", i)
		}
	}
}

func TestSelectSurvivorsBalancesSexes(t *testing.T) {
	elite := []game.Member{
		{ID: 1, Sex: components.Male},
		{ID: 2, Sex: components.Male},
		{ID: 3, Sex: components.Male},
		{ID: 4, Sex: components.Female},
		{ID: 5, Sex: components.Male},
	}

	got := selectSurvivors(elite, 4)

	var ids []uint32
	for _, m := range got {
		ids = append(ids, m.ID)
	}
	// Two males, then the only female, then the last slot takes anyone.
	want := []uint32{1, 2, 4, 5}
	if len(ids) != len(want) {
		t.Fatalf("survivors = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("survivors = %v, want %v", ids, want)
		}
	}
}

func TestPickWeightedFavoursFitness(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	pool := []game.Member{{ID: 1, Fitness: 99}, {ID: 2, Fitness: -50}}

	counts := map[uint32]int{}
	for range 1000 {
		counts[pickWeighted(rng, pool, 0.01).ID]++
	}
	if counts[1] < 990 {
		t.Errorf("fit member picked %d/1000 times", counts[1])
	}
}

func TestPickPairPrefersOppositeSexes(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	pool := []game.Member{
		{ID: 1, Sex: components.Male, Fitness: 10},
		{ID: 2, Sex: components.Male, Fitness: 5},
		{ID: 3, Sex: components.Female, Fitness: 1},
	}
	for range 50 {
		a, b := pickPair(rng, pool, 0.01)
		if a.Sex != components.Male || b.Sex != components.Female {
			t.Fatalf("pair = (%v, %v), want male then female", a.Sex, b.Sex)
		}
	}
}

func TestWolfSeedsInheritTraits(t *testing.T) {
	m, w := newTestManager(4)
	rng := rand.New(rand.NewPCG(8, 8))
	members := makeMembers(rng, w.Topology(components.PackPredator), 12, alternating)

	for _, s := range m.EvolvePopulation(members, 12, components.PackPredator) {
		if s.Dominance < 0 || s.Dominance > 1 || s.Loyalty < 0 || s.Loyalty > 1 {
			t.Errorf("traits out of range: %+v", s)
		}
		if s.Dominance < 0.2 || s.Dominance > 0.8 {
			t.Errorf("dominance %g strayed far from parent 0.5", s.Dominance)
		}
	}
}
