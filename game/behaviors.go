package game

import (
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/config"
	"github.com/noskyvisible/neural-evolution-simulation/neural"
	"github.com/noskyvisible/neural-evolution-simulation/systems"
)

// behavior is the species descriptor: controller shape, sensing, output
// interpretation and the species' interaction with the world.
type behavior struct {
	topology func(spec *config.SpeciesConfig) neural.Topology
	sense    func(w *World, a *actor) []float64
	act      func(w *World, a *actor, out neural.BehaviorOutputs)
	interact func(w *World, a *actor) // nil if the species only acts through world-level passes
}

var behaviors = [components.NumSpecies]behavior{
	components.Herbivore: {
		topology: topologyOf(neural.HerbivoreInputs, neural.MotorOutputs),
		sense:    senseHerbivore,
		act:      steer,
	},
	components.SoloPredator: {
		topology: topologyOf(neural.SoloPredatorInputs, neural.MotorOutputs),
		sense:    senseSoloPredator,
		act:      steer,
		interact: huntSolo,
	},
	components.PackPredator: {
		topology: topologyOf(neural.PackPredatorInputs, neural.PackOutputs),
		sense:    sensePackPredator,
		act:      actPackPredator,
		interact: huntPack,
	},
}

func topologyOf(inputs, outputs int) func(*config.SpeciesConfig) neural.Topology {
	return func(spec *config.SpeciesConfig) neural.Topology {
		return neural.Topology{
			Inputs:  inputs,
			Hidden:  slices.Clone(spec.HiddenLayers),
			Outputs: outputs,
		}
	}
}

// actor bundles the components of the organism being updated.
type actor struct {
	entity  ecs.Entity
	species components.Species
	spec    *config.SpeciesConfig

	pos *components.Position
	mot *components.Motion
	vit *components.Vitals
	rep *components.Reproduction
	soc *components.Social
	org *components.Organism
}

func (w *World) actor(e ecs.Entity) actor {
	pos, mot, vit, rep, soc, org := w.mapper.Get(e)
	return actor{
		entity:  e,
		species: org.Species,
		spec:    w.species[org.Species],
		pos:     pos,
		mot:     mot,
		vit:     vit,
		rep:     rep,
		soc:     soc,
		org:     org,
	}
}

// roster is the living part of a population as query points, with the
// entity behind each point.
type roster struct {
	points   []systems.Point
	entities []ecs.Entity
}

// living rebuilds the roster of a species from current positions.
func (w *World) living(s components.Species) *roster {
	r := &w.rosters[s]
	r.points = r.points[:0]
	r.entities = r.entities[:0]
	for _, e := range w.populations[s] {
		if !w.vitMap.Get(e).Alive {
			continue
		}
		pos := w.posMap.Get(e)
		r.points = append(r.points, systems.Point{ID: w.orgMap.Get(e).ID, X: pos.X, Y: pos.Y})
		r.entities = append(r.entities, e)
	}
	return r
}

// resourcePoints returns the food items as query points.
func (w *World) resourcePoints() []systems.Point {
	w.foodPoints = w.foodPoints[:0]
	for i, r := range w.resources {
		w.foodPoints = append(w.foodPoints, systems.Point{ID: uint32(i), X: r.X, Y: r.Y})
	}
	return w.foodPoints
}

// mateCandidates lists every member of a population, index-aligned with it.
func (w *World) mateCandidates(s components.Species) []systems.MateCandidate {
	w.mateScratch = w.mateScratch[:0]
	for _, e := range w.populations[s] {
		pos := w.posMap.Get(e)
		vit := w.vitMap.Get(e)
		org := w.orgMap.Get(e)
		w.mateScratch = append(w.mateScratch, systems.MateCandidate{
			Point:    systems.Point{ID: org.ID, X: pos.X, Y: pos.Y},
			Sex:      org.Sex,
			Eligible: vit.Alive && systems.CanReproduce(vit, w.reproMap.Get(e), &w.cfg.Organism),
		})
	}
	return w.mateScratch
}

func (w *World) selfState(a *actor) neural.SelfState {
	return systems.SelfState(a.pos, a.mot, a.vit, w.bounds, w.cfg.Organism.EnergyNorm)
}

// sight converts a neighbour in pts into a normalized distance and cosine.
func sight(a *actor, n systems.Neighbor, pts []systems.Point) (dist, cos float64) {
	if !n.Found() {
		return 0, 0
	}
	p := pts[n.Index]
	return systems.Sighting(n, a.mot.Heading, a.pos.X, a.pos.Y, p.X, p.Y, a.spec.VisionRange)
}

// senseMate reports the nearest eligible mate while mate-seeking. Mates
// beyond vision read as absent.
func (w *World) senseMate(a *actor) (dist, cos float64) {
	if !a.rep.MateSeeking {
		return 0, 0
	}
	candidates := w.mateCandidates(a.species)
	self := systems.MateCandidate{
		Point: systems.Point{ID: a.org.ID, X: a.pos.X, Y: a.pos.Y},
		Sex:   a.org.Sex,
	}
	j := systems.FindMate(self, a.rep.LastMate, candidates, w.cfg.Organism.MateRadius, nil)
	if j < 0 {
		return 0, 0
	}
	c := candidates[j]
	d := systems.Distance(a.pos.X, a.pos.Y, c.X, c.Y)
	if d >= a.spec.VisionRange {
		return 0, 0
	}
	return min(d/a.spec.VisionRange, 1), systems.RelativeCos(a.mot.Heading, a.pos.X, a.pos.Y, c.X, c.Y)
}

func senseHerbivore(w *World, a *actor) []float64 {
	x, y := a.pos.X, a.pos.Y
	vision := a.spec.VisionRange
	s := neural.HerbivoreSenses{Self: w.selfState(a), FoodDist: 1}

	// Food is sensed at any range; distance saturates at vision.
	food := w.resourcePoints()
	if n := systems.Nearest(x, y, food, 0, nil); n.Found() {
		s.FoodDist = min(n.Dist/vision, 1)
		s.FoodCos = systems.RelativeCos(a.mot.Heading, x, y, food[n.Index].X, food[n.Index].Y)
	}

	// Either predator species counts as a threat; ties go to solo predators.
	foxes := w.living(components.SoloPredator)
	wolves := w.living(components.PackPredator)
	threat, pts := systems.Nearest(x, y, foxes.points, vision, nil), foxes.points
	if n := systems.Nearest(x, y, wolves.points, vision, nil); n.Found() && (!threat.Found() || n.Dist < threat.Dist) {
		threat, pts = n, wolves.points
	}
	s.PredatorDist, s.PredatorCos = sight(a, threat, pts)

	s.MateDist, _ = w.senseMate(a)
	return s.ToInputs()
}

func senseSoloPredator(w *World, a *actor) []float64 {
	s := neural.SoloPredatorSenses{Self: w.selfState(a)}

	prey := w.living(components.Herbivore)
	n := systems.Nearest(a.pos.X, a.pos.Y, prey.points, a.spec.VisionRange, nil)
	s.PreyDist, s.PreyCos = sight(a, n, prey.points)

	s.MateDist, s.MateCos = w.senseMate(a)
	return s.ToInputs()
}

func sensePackPredator(w *World, a *actor) []float64 {
	pc := &w.cfg.Pack
	x, y := a.pos.X, a.pos.Y
	vision := a.spec.VisionRange
	s := neural.PackPredatorSenses{Self: w.selfState(a)}

	prey := w.living(components.Herbivore)
	n := systems.Nearest(x, y, prey.points, vision, nil)
	s.PreyDist, s.PreyCos = sight(a, n, prey.points)
	density := systems.CountWithin(x, y, prey.points, vision, nil)
	s.PreyDensity = min(float64(density)/float64(max(pc.DensityCap, 1)), 1)

	// Competitors are pack predators outside the organism's own pack.
	wolves := w.living(components.PackPredator)
	packID := a.soc.PackID
	rival := systems.Nearest(x, y, wolves.points, vision, func(i int) bool {
		if wolves.points[i].ID == a.org.ID {
			return false
		}
		return packID == 0 || w.socialMap.Get(wolves.entities[i]).PackID != packID
	})
	if rival.Found() {
		s.CompetitorDist = min(rival.Dist/vision, 1)
	}

	if pack := w.packByID(packID); pack != nil {
		d := systems.Distance(x, y, pack.CentroidX, pack.CentroidY)
		s.CentroidDist = min(d/vision, 1)
		s.CentroidCos = systems.RelativeCos(a.mot.Heading, x, y, pack.CentroidX, pack.CentroidY)
		s.PackSize = min(float64(pack.LivingCount(w.lookup))/float64(pc.MaxSize), 1)
		if pack.IsAlpha(a.org.ID) {
			s.Alpha = 1
		}
	}

	s.MateDist, s.MateCos = w.senseMate(a)
	return s.ToInputs()
}

func steer(w *World, a *actor, out neural.BehaviorOutputs) {
	systems.Steer(a.mot, out, w.cfg.Organism.TurnScale, w.cfg.Organism.MaxSpeed)
}

func actPackPredator(w *World, a *actor, out neural.BehaviorOutputs) {
	steer(w, a, out)
	if out.Signal > w.cfg.Pack.SignalThreshold && a.soc.SignalCooldown == 0 {
		w.howl(a)
	}
	w.cohere(a)
}
