package game

import (
	"slices"

	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/neural"
)

// OrganismView is a read-only copy of one organism's state.
type OrganismView struct {
	ID          uint32
	Species     components.Species
	Sex         components.Sex
	X, Y        float64
	Heading     float64
	Speed       float64
	Energy      float64
	Age         int
	Fitness     float64
	Children    int
	Kills       int
	Pregnant    bool
	MateSeeking bool
	PackID      uint32
	Alpha       bool
	Signalling  bool
	Dominance   float64
	Loyalty     float64
}

// PackView is a read-only copy of one pack.
type PackView struct {
	ID                     uint32
	Members                []uint32
	CentroidX, CentroidY   float64
	AlphaMale, AlphaFemale uint32
	Coordination           float64
	Hunting                bool
	Living                 int
}

// Member is an organism as seen by generational replacement. Brain is the
// organism's own controller; callers must clone it before reuse.
type Member struct {
	ID        uint32
	Sex       components.Sex
	Fitness   float64
	Children  int
	Kills     int
	Age       int
	Brain     *neural.FFNN
	Dominance float64
	Loyalty   float64
}

// Organisms returns the living population of a species in population order.
func (w *World) Organisms(s components.Species) []OrganismView {
	out := make([]OrganismView, 0, len(w.populations[s]))
	for _, e := range w.populations[s] {
		pos, mot, vit, rep, soc, org := w.mapper.Get(e)
		v := OrganismView{
			ID:          org.ID,
			Species:     org.Species,
			Sex:         org.Sex,
			X:           pos.X,
			Y:           pos.Y,
			Heading:     mot.Heading,
			Speed:       mot.Speed,
			Energy:      vit.Energy,
			Age:         vit.Age,
			Fitness:     org.Fitness,
			Children:    org.Children,
			Kills:       org.Kills,
			Pregnant:    rep.Pregnant,
			MateSeeking: rep.MateSeeking,
			PackID:      soc.PackID,
			Signalling:  soc.Signalling(),
			Dominance:   soc.Dominance,
			Loyalty:     soc.Loyalty,
		}
		if p := w.packByID(soc.PackID); p != nil {
			v.Alpha = p.IsAlpha(org.ID)
		}
		out = append(out, v)
	}
	return out
}

// Resources returns a copy of the food items.
func (w *World) Resources() []components.Resource {
	return slices.Clone(w.resources)
}

// Packs returns copies of the packs.
func (w *World) Packs() []PackView {
	out := make([]PackView, 0, len(w.packs))
	for _, p := range w.packs {
		out = append(out, PackView{
			ID:           p.ID,
			Members:      slices.Clone(p.Members),
			CentroidX:    p.CentroidX,
			CentroidY:    p.CentroidY,
			AlphaMale:    p.AlphaMale,
			AlphaFemale:  p.AlphaFemale,
			Coordination: p.Coordination,
			Hunting:      p.Hunting,
			Living:       p.LivingCount(w.lookup),
		})
	}
	return out
}

// Members returns the population of a species for generational replacement.
func (w *World) Members(s components.Species) []Member {
	out := make([]Member, 0, len(w.populations[s]))
	for _, e := range w.populations[s] {
		org := w.orgMap.Get(e)
		soc := w.socialMap.Get(e)
		out = append(out, Member{
			ID:        org.ID,
			Sex:       org.Sex,
			Fitness:   org.Fitness,
			Children:  org.Children,
			Kills:     org.Kills,
			Age:       w.vitMap.Get(e).Age,
			Brain:     w.brains[org.ID],
			Dominance: soc.Dominance,
			Loyalty:   soc.Loyalty,
		})
	}
	return out
}

// Inspect returns copies of an organism's components for display.
func (w *World) Inspect(id uint32) ([]any, bool) {
	e, ok := w.byID[id]
	if !ok || !w.world.Alive(e) {
		return nil, false
	}
	pos, mot, vit, rep, soc, org := w.mapper.Get(e)
	comps := []any{*org, *pos, *mot, *vit, *rep}
	if org.Species == components.PackPredator {
		comps = append(comps, *soc)
	}
	return comps, true
}
