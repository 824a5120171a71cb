package systems

import (
	"slices"

	"github.com/noskyvisible/neural-evolution-simulation/components"
)

// PackMember is the view of an organism a pack needs.
type PackMember struct {
	X, Y      float64
	Sex       components.Sex
	Dominance float64
	Alive     bool
}

// Lookup resolves a member ID. ok is false if the organism no longer exists.
type Lookup func(id uint32) (m PackMember, ok bool)

// Pack is a group of pack predators. It owns only member IDs; the world
// keeps each organism's pack reference consistent with Members.
type Pack struct {
	ID           uint32
	Members      []uint32
	CentroidX    float64
	CentroidY    float64
	AlphaMale    uint32 // 0 = none
	AlphaFemale  uint32 // 0 = none
	Coordination float64
	Hunting      bool
}

// NewPack creates an empty pack.
func NewPack(id uint32) *Pack {
	return &Pack{ID: id}
}

// Has reports whether id is a member.
func (p *Pack) Has(id uint32) bool {
	return slices.Contains(p.Members, id)
}

// Add appends a member and recomputes leadership. Adding an existing member
// is a no-op.
func (p *Pack) Add(id uint32, lookup Lookup) {
	if p.Has(id) {
		return
	}
	p.Members = append(p.Members, id)
	p.UpdateLeadership(lookup)
}

// Remove drops a member and recomputes leadership. Returns false if id was
// not a member.
func (p *Pack) Remove(id uint32, lookup Lookup) bool {
	i := slices.Index(p.Members, id)
	if i < 0 {
		return false
	}
	p.Members = slices.Delete(p.Members, i, i+1)
	p.UpdateLeadership(lookup)
	return true
}

// LivingCount returns the number of living members.
func (p *Pack) LivingCount(lookup Lookup) int {
	n := 0
	for _, id := range p.Members {
		if m, ok := lookup(id); ok && m.Alive {
			n++
		}
	}
	return n
}

// UpdateCentroid sets the centroid to the mean position of the living
// members. It is left unchanged when no member is alive.
func (p *Pack) UpdateCentroid(lookup Lookup) {
	var sx, sy float64
	n := 0
	for _, id := range p.Members {
		m, ok := lookup(id)
		if !ok || !m.Alive {
			continue
		}
		sx += m.X
		sy += m.Y
		n++
	}
	if n == 0 {
		return
	}
	p.CentroidX = sx / float64(n)
	p.CentroidY = sy / float64(n)
}

// UpdateLeadership makes the highest-dominance living member of each sex its
// alpha. Ties keep the earlier member. A sex with no living member has no
// alpha.
func (p *Pack) UpdateLeadership(lookup Lookup) {
	p.AlphaMale, p.AlphaFemale = 0, 0
	var bestMale, bestFemale float64
	for _, id := range p.Members {
		m, ok := lookup(id)
		if !ok || !m.Alive {
			continue
		}
		if m.Sex == components.Female {
			if p.AlphaFemale == 0 || m.Dominance > bestFemale {
				p.AlphaFemale, bestFemale = id, m.Dominance
			}
		} else {
			if p.AlphaMale == 0 || m.Dominance > bestMale {
				p.AlphaMale, bestMale = id, m.Dominance
			}
		}
	}
}

// IsAlpha reports whether id leads the pack.
func (p *Pack) IsAlpha(id uint32) bool {
	return id != 0 && (id == p.AlphaMale || id == p.AlphaFemale)
}
