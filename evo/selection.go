package evo

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/game"
)

// parentWeights returns fitness + 1 per member, floored at minWeight so
// that negative fitness still leaves every member selectable.
func parentWeights(pool []game.Member, minWeight float64) []float64 {
	w := make([]float64, len(pool))
	for i, m := range pool {
		w[i] = max(m.Fitness+1, minWeight)
	}
	return w
}

// pickWeighted draws one member with probability proportional to its
// weight. The pool must not be empty.
func pickWeighted(rng *rand.Rand, pool []game.Member, minWeight float64) game.Member {
	if len(pool) == 1 {
		return pool[0]
	}
	idx, ok := sampleuv.NewWeighted(parentWeights(pool, minWeight), rng).Take()
	if !ok {
		return pool[0]
	}
	return pool[idx]
}

// pickPair draws two parents, one of each sex when the pool has both.
// Otherwise both are drawn independently from the whole pool.
func pickPair(rng *rand.Rand, pool []game.Member, minWeight float64) (game.Member, game.Member) {
	males, females := splitBySex(pool)
	if len(males) > 0 && len(females) > 0 {
		return pickWeighted(rng, males, minWeight), pickWeighted(rng, females, minWeight)
	}
	return pickWeighted(rng, pool, minWeight), pickWeighted(rng, pool, minWeight)
}

func splitBySex(pool []game.Member) (males, females []game.Member) {
	for _, m := range pool {
		if m.Sex == components.Female {
			females = append(females, m)
		} else {
			males = append(males, m)
		}
	}
	return males, females
}

// selectSurvivors carries up to n elites forward in rank order, taking at
// most n/2 of each sex except that the last slot accepts either.
func selectSurvivors(elite []game.Member, n int) []game.Member {
	survivors := make([]game.Member, 0, n)
	var males, females int
	for _, m := range elite {
		if len(survivors) >= n {
			break
		}
		isMale := m.Sex == components.Male
		if (isMale && males < n/2) || (!isMale && females < n/2) || len(survivors) == n-1 {
			survivors = append(survivors, m)
			if isMale {
				males++
			} else {
				females++
			}
		}
	}
	return survivors
}

// sexBalancer hands out child sexes that steer a population toward an even
// split of target.
type sexBalancer struct {
	target         int
	males, females int
}

func (b *sexBalancer) next(rng *rand.Rand) components.Sex {
	switch {
	case b.males < b.target/2:
		b.males++
		return components.Male
	case b.females < b.target/2:
		b.females++
		return components.Female
	default:
		s := components.Sex(rng.IntN(2))
		if s == components.Male {
			b.males++
		} else {
			b.females++
		}
		return s
	}
}
