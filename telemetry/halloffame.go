package telemetry

import (
	"encoding/json"
	"sort"

	"github.com/noskyvisible/neural-evolution-simulation/components"
)

// HallEntry records a high-fitness organism and its brain parameters.
type HallEntry struct {
	ID         uint32
	Species    components.Species
	Sex        components.Sex
	Generation int
	Fitness    float64
	Children   int
	Kills      int
	Age        int
	Topology   string
	Params     []float64
}

// HallOfFame keeps the best organisms seen per species, ordered by
// descending fitness.
type HallOfFame struct {
	halls   [components.NumSpecies][]HallEntry
	maxSize int
}

// NewHallOfFame creates a hall that keeps maxSize entries per species.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{maxSize: maxSize}
}

// Consider offers an organism for entry. It returns true if the organism
// was added. An organism already present is updated in place when its
// fitness improved.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	if hof == nil || entry.Species >= components.NumSpecies {
		return false
	}
	hall := hof.halls[entry.Species]

	for i := range hall {
		if hall[i].ID != entry.ID {
			continue
		}
		if entry.Fitness <= hall[i].Fitness {
			return false
		}
		hall = append(hall[:i], hall[i+1:]...)
		break
	}

	updated, ok := hof.insertEntry(hall, entry)
	hof.halls[entry.Species] = updated
	return ok
}

// insertEntry adds an entry to the hall, maintaining sorted order by fitness.
// If the hall is full, the lowest-fitness entry is removed.
func (hof *HallOfFame) insertEntry(hall []HallEntry, entry HallEntry) ([]HallEntry, bool) {
	// Find insertion point (sorted descending by fitness)
	idx := sort.Search(len(hall), func(i int) bool {
		return hall[i].Fitness < entry.Fitness
	})

	// If hall is full and entry would be last (lowest), skip it
	if len(hall) >= hof.maxSize && idx >= hof.maxSize {
		return hall, false
	}

	hall = append(hall, HallEntry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry

	if len(hall) > hof.maxSize {
		hall = hall[:hof.maxSize]
	}
	return hall, true
}

// Best returns the highest-fitness entry for a species.
func (hof *HallOfFame) Best(s components.Species) (HallEntry, bool) {
	if hof == nil || len(hof.halls[s]) == 0 {
		return HallEntry{}, false
	}
	return hof.halls[s][0], true
}

// Entries returns the entries for a species, best first.
func (hof *HallOfFame) Entries(s components.Species) []HallEntry {
	if hof == nil {
		return nil
	}
	return hof.halls[s]
}

// Size returns the number of entries for a species.
func (hof *HallOfFame) Size(s components.Species) int {
	if hof == nil {
		return 0
	}
	return len(hof.halls[s])
}

// hallEntryJSON is the JSON-serializable representation of a hall entry.
type hallEntryJSON struct {
	ID         uint32    `json:"id"`
	Sex        string    `json:"sex"`
	Generation int       `json:"generation"`
	Fitness    float64   `json:"fitness"`
	Children   int       `json:"children"`
	Kills      int       `json:"kills"`
	Age        int       `json:"age"`
	Topology   string    `json:"topology"`
	Params     []float64 `json:"params"`
}

// MarshalJSON serializes the hall of fame keyed by species name.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	export := make(map[string][]hallEntryJSON, components.NumSpecies)
	for _, s := range components.AllSpecies {
		hall := hof.halls[s]
		entries := make([]hallEntryJSON, len(hall))
		for i, e := range hall {
			entries[i] = hallEntryJSON{
				ID:         e.ID,
				Sex:        e.Sex.String(),
				Generation: e.Generation,
				Fitness:    e.Fitness,
				Children:   e.Children,
				Kills:      e.Kills,
				Age:        e.Age,
				Topology:   e.Topology,
				Params:     e.Params,
			}
		}
		export[s.String()] = entries
	}
	return json.MarshalIndent(export, "", "  ")
}
