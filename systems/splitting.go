package systems

// NeedsSplit reports whether the pack has more living members than maxSize.
func (p *Pack) NeedsSplit(maxSize int, lookup Lookup) bool {
	return p.LivingCount(lookup) > maxSize
}

// Split moves the back half of the members into a new pack. The first
// ceil(n/2) members stay, preserving order. Both packs get fresh centroids
// and leadership; the new pack inherits the coordination. The caller must
// repoint the moved members' pack references.
func (p *Pack) Split(newID uint32, lookup Lookup) *Pack {
	keep := (len(p.Members) + 1) / 2

	other := NewPack(newID)
	other.Members = append([]uint32(nil), p.Members[keep:]...)
	other.Coordination = p.Coordination
	p.Members = p.Members[:keep:keep]

	for _, pk := range [2]*Pack{p, other} {
		pk.UpdateCentroid(lookup)
		pk.UpdateLeadership(lookup)
	}
	return other
}
