package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_HuntBreakthrough(t *testing.T) {
	bd := NewBookmarkDetector(10)

	// Add some history with low pack success
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{
			WindowEndTick: i * 1000,
			WolfHunts:     10,
			WolfKills:     2,
			WolfHuntRate:  0.2,
		})
	}

	// Now add a window with high success (>2x average)
	bookmarks := bd.Check(WindowStats{
		WindowEndTick: 5000,
		WolfHunts:     10,
		WolfKills:     8,
		WolfHuntRate:  0.8,
	})
	if !hasBookmark(bookmarks, BookmarkHuntBreakthrough) {
		t.Error("expected hunt_breakthrough bookmark")
	}
}

func TestBookmarkDetector_PreyCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: i * 1000, Rabbits: 100, Foxes: 5, Wolves: 5})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 5000, Rabbits: 50, Foxes: 5, Wolves: 5})
	if !hasBookmark(bookmarks, BookmarkPreyCrash) {
		t.Error("expected prey_crash bookmark")
	}
}

func TestBookmarkDetector_PredatorRecovery(t *testing.T) {
	bd := NewBookmarkDetector(10)

	// Predators drop to a critical level
	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: i * 1000, Rabbits: 100, Foxes: 1, Wolves: 1})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 3000, Rabbits: 100, Foxes: 5, Wolves: 5})
	if !hasBookmark(bookmarks, BookmarkPredatorRecovery) {
		t.Error("expected predator_recovery bookmark")
	}
}

func TestBookmarkDetector_StableEcosystem(t *testing.T) {
	bd := NewBookmarkDetector(10)

	triggered := 0
	for i := 0; i < 12; i++ {
		bookmarks := bd.Check(WindowStats{WindowEndTick: i * 1000, Rabbits: 40, Foxes: 10, Wolves: 10})
		if hasBookmark(bookmarks, BookmarkStableEcosystem) {
			triggered++
		}
	}
	if triggered != 1 {
		t.Errorf("stable_ecosystem triggered %d times, want exactly 1", triggered)
	}
}

func TestBookmarkDetector_Extinction(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(WindowStats{WindowEndTick: 1000, Rabbits: 40, Foxes: 3, Wolves: 6})
	bookmarks := bd.Check(WindowStats{WindowEndTick: 2000, Rabbits: 40, Foxes: 0, Wolves: 6})

	count := 0
	for _, bm := range bookmarks {
		if bm.Type == BookmarkExtinction {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("got %d extinction bookmarks, want 1", count)
	}

	// Staying extinct does not re-trigger
	bookmarks = bd.Check(WindowStats{WindowEndTick: 3000, Rabbits: 40, Foxes: 0, Wolves: 6})
	if hasBookmark(bookmarks, BookmarkExtinction) {
		t.Error("extinction should only trigger on the transition to zero")
	}
}

func TestBookmarkDetector_FirstWindowQuiet(t *testing.T) {
	bd := NewBookmarkDetector(3)
	if got := bd.Check(WindowStats{Rabbits: 0, Foxes: 0, Wolves: 0}); len(got) != 0 {
		t.Errorf("first window produced bookmarks: %v", got)
	}
}
