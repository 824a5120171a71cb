package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkHuntBreakthrough BookmarkType = "hunt_breakthrough"
	BookmarkPredatorRecovery BookmarkType = "predator_recovery"
	BookmarkPreyCrash        BookmarkType = "prey_crash"
	BookmarkStableEcosystem  BookmarkType = "stable_ecosystem"
	BookmarkExtinction       BookmarkType = "extinction"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int          `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentPredMin      int // minimum predator count in recent history
	recentPreyPeak     int // peak prey count in recent history
	stableWindowsCount int // consecutive windows with stable populations
	last               *WindowStats
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable ecosystem detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		// Hunt breakthrough: pack success rate > 2x rolling average
		if b := bd.checkHuntBreakthrough(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Predator recovery: was ≤3, now ≥3x that
		if b := bd.checkPredatorRecovery(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Prey crash: dropped >30% from recent peak
		if b := bd.checkPreyCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Stable ecosystem: all populations present with low variance
		if b := bd.checkStableEcosystem(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		bookmarks = append(bookmarks, bd.checkExtinctions(stats)...)
	}

	// Update history
	bd.addToHistory(stats)
	last := stats
	bd.last = &last

	// Track predator minimum and prey peak
	if preds := stats.Predators(); preds < bd.recentPredMin || bd.recentPredMin == 0 {
		bd.recentPredMin = preds
	}
	if stats.Rabbits > bd.recentPreyPeak {
		bd.recentPreyPeak = stats.Rabbits
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// getHistory returns the recorded windows, oldest first.
func (bd *BookmarkDetector) getHistory() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	ordered := make([]WindowStats, 0, bd.historySize)
	ordered = append(ordered, bd.history[bd.historyIdx:]...)
	return append(ordered, bd.history[:bd.historyIdx]...)
}

func (bd *BookmarkDetector) checkHuntBreakthrough(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	// Calculate rolling average success rate
	var totalKills, totalHunts int
	for _, h := range history {
		totalKills += h.WolfKills
		totalHunts += h.WolfHunts
	}

	if totalHunts == 0 || stats.WolfHunts == 0 {
		return nil
	}

	avgRate := float64(totalKills) / float64(totalHunts)
	if avgRate == 0 {
		return nil
	}

	if stats.WolfHuntRate > avgRate*2.0 && stats.WolfKills >= 3 {
		return &Bookmark{
			Type:        BookmarkHuntBreakthrough,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Pack hunt success %.2f is %.1fx average (%.2f)", stats.WolfHuntRate, stats.WolfHuntRate/avgRate, avgRate),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPredatorRecovery(stats WindowStats) *Bookmark {
	if bd.recentPredMin == 0 || bd.recentPredMin > 3 {
		return nil
	}

	threshold := bd.recentPredMin * 3
	if preds := stats.Predators(); preds >= threshold && preds >= 6 {
		// Reset the minimum after triggering
		oldMin := bd.recentPredMin
		bd.recentPredMin = preds

		return &Bookmark{
			Type:        BookmarkPredatorRecovery,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Predator population recovered from %d to %d", oldMin, preds),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPreyCrash(stats WindowStats) *Bookmark {
	if bd.recentPreyPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.Rabbits)/float64(bd.recentPreyPeak)
	if dropPercent > 0.30 && stats.Rabbits < bd.recentPreyPeak-10 {
		// Reset peak after crash
		oldPeak := bd.recentPreyPeak
		bd.recentPreyPeak = stats.Rabbits

		return &Bookmark{
			Type:        BookmarkPreyCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Prey crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Rabbits),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	// Need every population present
	if stats.Rabbits < 10 || stats.Foxes < 2 || stats.Wolves < 2 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	// Check variance in recent windows
	recent := history[len(history)-4:]
	var preySum, predSum float64
	for _, h := range recent {
		preySum += float64(h.Rabbits)
		predSum += float64(h.Predators())
	}
	preyMean := preySum / 4
	predMean := predSum / 4

	var preyVar, predVar float64
	for _, h := range recent {
		preyDiff := float64(h.Rabbits) - preyMean
		predDiff := float64(h.Predators()) - predMean
		preyVar += preyDiff * preyDiff
		predVar += predDiff * predDiff
	}
	preyVar /= 4
	predVar /= 4

	// Low variance: coefficient of variation < 20%
	preyCV := 0.0
	if preyMean > 0 {
		preyCV = preyVar / (preyMean * preyMean)
	}
	predCV := 0.0
	if predMean > 0 {
		predCV = predVar / (predMean * predMean)
	}

	if preyCV < 0.04 && predCV < 0.04 { // CV^2 < 0.04 means CV < 0.2
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Stable ecosystem with %d prey, %d predators over 5+ windows", stats.Rabbits, stats.Predators()),
		}
	}

	return nil
}

// checkExtinctions reports every species that had members in the previous
// window and has none now.
func (bd *BookmarkDetector) checkExtinctions(stats WindowStats) []Bookmark {
	if bd.last == nil {
		return nil
	}
	var out []Bookmark
	for _, s := range []struct {
		name      string
		prev, now int
	}{
		{"rabbits", bd.last.Rabbits, stats.Rabbits},
		{"foxes", bd.last.Foxes, stats.Foxes},
		{"wolves", bd.last.Wolves, stats.Wolves},
	} {
		if s.prev > 0 && s.now == 0 {
			out = append(out, Bookmark{
				Type:        BookmarkExtinction,
				Tick:        stats.WindowEndTick,
				Description: fmt.Sprintf("%s went extinct (%d in previous window)", s.name, s.prev),
			})
		}
	}
	return out
}
