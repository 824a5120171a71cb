package components

// Species identifies which behaviour table entry drives an organism.
type Species uint8

const (
	Herbivore    Species = iota // forages, flees
	SoloPredator                // hunts herbivores alone
	PackPredator                // hunts cooperatively in packs
	NumSpecies
)

// AllSpecies lists the species in update order.
var AllSpecies = [NumSpecies]Species{Herbivore, SoloPredator, PackPredator}

// String returns the display name for a species.
func (s Species) String() string {
	switch s {
	case Herbivore:
		return "rabbit"
	case SoloPredator:
		return "fox"
	case PackPredator:
		return "wolf"
	default:
		return "unknown"
	}
}

// Plural returns the plural display name used in stats keys.
func (s Species) Plural() string {
	switch s {
	case Herbivore:
		return "rabbits"
	case SoloPredator:
		return "foxes"
	case PackPredator:
		return "wolves"
	default:
		return "unknown"
	}
}

// Sex is the biological sex of an organism. Females conceive.
type Sex uint8

const (
	Male Sex = iota
	Female
)

// String returns the display name for a sex.
func (s Sex) String() string {
	if s == Female {
		return "female"
	}
	return "male"
}

// Opposite returns the other sex.
func (s Sex) Opposite() Sex {
	if s == Female {
		return Male
	}
	return Female
}

// Organism bundles identity and the per-organism counters used by selection.
type Organism struct {
	ID       uint32  `inspect:"label"`
	Species  Species `inspect:"label"`
	Sex      Sex     `inspect:"label"`
	Fitness  float64 `inspect:"label,fmt:%.1f"`
	Children int     `inspect:"label"`
	Kills    int     `inspect:"label"`
}
