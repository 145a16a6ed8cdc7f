package game

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pthm-cable/wormsoup/telemetry"
)

func TestSnapshotMatchesWorld(t *testing.T) {
	s := newTestSim(t, 20)
	s.AddMarketCap(50000)
	run(s, 2)

	snap := s.Snapshot()
	if snap.Tick != s.Tick() || snap.Seed != 20 {
		t.Errorf("snapshot tick %d seed %d", snap.Tick, snap.Seed)
	}
	if len(snap.Colonies) != s.Registry().Len() {
		t.Errorf("%d colonies in snapshot, want %d", len(snap.Colonies), s.Registry().Len())
	}
	if snap.WormCount() != s.Registry().TotalWorms() {
		t.Errorf("%d worms in snapshot, want %d", snap.WormCount(), s.Registry().TotalWorms())
	}
	if snap.NextSplit != 75000 {
		t.Errorf("NextSplit = %v, want 75000", snap.NextSplit)
	}
	if snap.Boss == nil {
		t.Fatal("no boss state after market cap 50000")
	}
	if snap.Boss.Phase != "idle" && snap.Boss.Phase != "dashing" {
		t.Errorf("boss phase %q", snap.Boss.Phase)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := newTestSim(t, 21)
	s.Buy(30)
	run(s, 3)

	snap := s.Snapshot()
	again := s.Snapshot()

	snap.Colonies[0].Worms[0].Segments[0].X = 1e9
	snap.Colonies[0].Nodes[0].Radius = -1
	snap.Colonies[0].Worms = nil

	if !reflect.DeepEqual(again, s.Snapshot()) {
		t.Error("editing a snapshot changed the simulation")
	}

	run(s, 1)
	if reflect.DeepEqual(again, s.Snapshot()) {
		t.Error("world did not advance")
	}
	if again.Tick == s.Tick() {
		t.Error("older snapshot follows the live tick")
	}
}

func TestSaveSnapshot(t *testing.T) {
	s := newTestSim(t, 22)
	run(s, 1)

	dir := t.TempDir()
	path, err := s.SaveSnapshot(dir)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("snapshot written to %s, want under %s", path, dir)
	}

	loaded, err := telemetry.LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded.Tick != s.Tick() || loaded.WormCount() != s.Registry().TotalWorms() {
		t.Errorf("loaded tick %d with %d worms", loaded.Tick, loaded.WormCount())
	}
	if _, err := os.Stat(path); err != nil {
		t.Error(err)
	}
}
