package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/noskyvisible/neural-evolution-simulation/config"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager, got %v, %v", om, err)
	}
	if err := om.WriteStats(WindowStats{}); err != nil {
		t.Errorf("nil manager write failed: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil manager close failed: %v", err)
	}
}

func TestOutputManager_HeaderWrittenOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteStats(WindowStats{WindowEndTick: i * 1000, Rabbits: 40}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkExtinction, Tick: 5, Description: "foxes went extinct"}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteGenerations([]GenerationReport{{Generation: 1, Species: "rabbit"}, {Generation: 1, Species: "fox"}}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteHallOfFame(NewHallOfFame(1)); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("stats.csv has %d lines, want header + 3 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,generation,rabbits") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Count(string(data), "window_end") != 1 {
		t.Error("header written more than once")
	}

	gens, err := os.ReadFile(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(strings.Split(strings.TrimSpace(string(gens)), "\n")); n != 3 {
		t.Errorf("generations.csv has %d lines, want 3", n)
	}

	for _, name := range []string{"config.yaml", "hall_of_fame.json", "bookmarks.csv", "perf.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not created: %v", name, err)
		}
	}
}
