package game

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/systems"
)

// updatePacks drops packs without living members, refreshes centroids and
// leadership, splits oversized packs and lets lone pack predators join or
// found packs.
func (w *World) updatePacks() {
	pc := &w.cfg.Pack

	w.packs = slices.DeleteFunc(w.packs, func(p *systems.Pack) bool {
		if p.LivingCount(w.lookup) > 0 {
			return false
		}
		w.releaseMembers(p)
		return true
	})

	var split []*systems.Pack
	for _, p := range w.packs {
		p.UpdateCentroid(w.lookup)
		p.UpdateLeadership(w.lookup)
		if !p.NeedsSplit(pc.MaxSize, w.lookup) {
			continue
		}
		np := p.Split(w.nextPackID, w.lookup)
		w.nextPackID++
		for _, id := range np.Members {
			w.setPackID(id, np.ID)
		}
		split = append(split, np)
	}
	w.packs = append(w.packs, split...)

	w.gatherLoners()
}

// gatherLoners gives each lone pack predator a chance to join the nearest
// pack with room, weighted by loyalty and proximity, or else to found a pack
// with the loners connected to it.
func (w *World) gatherLoners() {
	pc := &w.cfg.Pack
	for _, e := range w.populations[components.PackPredator] {
		soc := w.socialMap.Get(e)
		if soc.PackID != 0 || !w.vitMap.Get(e).Alive {
			continue
		}
		pos := w.posMap.Get(e)
		id := w.orgMap.Get(e).ID

		if pack, d := w.nearestOpenPack(pos.X, pos.Y); pack != nil {
			if w.rng.Float64() < pc.JoinChance*soc.Loyalty*(1-d/pc.JoinRadius) {
				w.joinPack(pack, id)
				continue
			}
		}
		if w.rng.Float64() < pc.FoundChance {
			w.foundFromLoners(id)
		}
	}
}

// nearestOpenPack returns the under-capacity pack whose centroid is nearest
// to (x, y) within the join radius, and the distance to it.
func (w *World) nearestOpenPack(x, y float64) (*systems.Pack, float64) {
	pc := &w.cfg.Pack
	var best *systems.Pack
	bestDist := pc.JoinRadius
	for _, p := range w.packs {
		if p.LivingCount(w.lookup) >= pc.MaxSize {
			continue
		}
		if d := systems.Distance(x, y, p.CentroidX, p.CentroidY); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, bestDist
}

// foundFromLoners builds a proximity graph over lone pack predators and
// founds a pack from the founder's connected component, capped at the
// maximum pack size. A founder with no lone neighbours stays alone.
func (w *World) foundFromLoners(founder uint32) {
	pc := &w.cfg.Pack

	var loners []systems.Point
	for _, e := range w.populations[components.PackPredator] {
		if w.socialMap.Get(e).PackID != 0 || !w.vitMap.Get(e).Alive {
			continue
		}
		pos := w.posMap.Get(e)
		loners = append(loners, systems.Point{ID: w.orgMap.Get(e).ID, X: pos.X, Y: pos.Y})
	}

	g := simple.NewUndirectedGraph()
	for _, l := range loners {
		g.AddNode(simple.Node(l.ID))
	}
	radiusSq := pc.FoundRadius * pc.FoundRadius
	for i, a := range loners {
		for _, b := range loners[i+1:] {
			if systems.DistanceSq(a.X, a.Y, b.X, b.Y) < radiusSq {
				g.SetEdge(g.NewEdge(simple.Node(a.ID), simple.Node(b.ID)))
			}
		}
	}

	for _, component := range topo.ConnectedComponents(g) {
		inComponent := make(map[uint32]bool, len(component))
		for _, n := range component {
			inComponent[uint32(n.ID())] = true
		}
		if !inComponent[founder] {
			continue
		}
		if len(component) < 2 {
			return
		}

		members := []uint32{founder}
		for _, l := range loners {
			if len(members) >= pc.MaxSize {
				break
			}
			if l.ID != founder && inComponent[l.ID] {
				members = append(members, l.ID)
			}
		}
		w.foundPack(members)
		return
	}
}

// formPacks groups organisms in order into packs of the initial size. A
// trailing single organism stays alone.
func (w *World) formPacks(ids []uint32) {
	size := max(w.cfg.Pack.InitialSize, 1)
	for start := 0; start < len(ids); start += size {
		group := ids[start:min(start+size, len(ids))]
		if len(group) < 2 {
			continue
		}
		w.foundPack(group)
	}
}

// RegroupPacks dissolves every pack and groups the living pack predators
// into fresh packs in population order.
func (w *World) RegroupPacks() {
	for _, p := range w.packs {
		w.releaseMembers(p)
	}
	w.packs = w.packs[:0]

	var ids []uint32
	for _, e := range w.populations[components.PackPredator] {
		if w.vitMap.Get(e).Alive {
			ids = append(ids, w.orgMap.Get(e).ID)
		}
	}
	w.formPacks(ids)
}

// foundPack creates a pack from organisms that have none.
func (w *World) foundPack(ids []uint32) *systems.Pack {
	p := systems.NewPack(w.nextPackID)
	w.nextPackID++
	p.Members = slices.Clone(ids)
	for _, id := range ids {
		w.setPackID(id, p.ID)
	}
	p.UpdateCentroid(w.lookup)
	p.UpdateLeadership(w.lookup)
	w.packs = append(w.packs, p)
	return p
}

// joinPack adds an organism to a pack and points it back at the pack.
func (w *World) joinPack(p *systems.Pack, id uint32) {
	p.Add(id, w.lookup)
	w.setPackID(id, p.ID)
}

// leavePack removes an organism from its pack. A pack left without living
// members is dropped.
func (w *World) leavePack(p *systems.Pack, id uint32) {
	p.Remove(id, w.lookup)
	w.setPackID(id, 0)
	if p.LivingCount(w.lookup) == 0 {
		w.releaseMembers(p)
		w.packs = slices.DeleteFunc(w.packs, func(q *systems.Pack) bool { return q == p })
	}
}

// releaseMembers clears the back reference of every member of a pack.
func (w *World) releaseMembers(p *systems.Pack) {
	for _, id := range p.Members {
		w.setPackID(id, 0)
	}
	p.Members = p.Members[:0]
}

func (w *World) setPackID(id, packID uint32) {
	if e, ok := w.byID[id]; ok && w.world.Alive(e) {
		w.socialMap.Get(e).PackID = packID
	}
}
