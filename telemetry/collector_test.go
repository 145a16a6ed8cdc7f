package telemetry

import "testing"

func TestCollectorCountsEvents(t *testing.T) {
	bus := NewBus()
	c := NewCollector(10)
	c.Attach(bus)

	bus.Emit(NewHatchEvent(0, 4))
	bus.Emit(NewHatchEvent(1, 5))
	bus.Emit(NewSplitEvent(1, 3))
	bus.Emit(NewMutationEvent(0, 4, "sped up", false))
	bus.Emit(NewMutationEvent(0, 4, "transformed", true))
	bus.Emit(NewDashEvent(0, 9, 700, false))
	bus.Emit(NewBossEvent(0, 9))

	stats := c.Flush(Sample{
		Tick:    600,
		SimTime: 10,
		Widths:  []float64{4, 6, 8},
		Speeds:  []float64{1, 1, 1},
		Limbs:   []float64{0, 1, 2},
	})

	tests := []struct {
		name      string
		got, want int
	}{
		{"hatches", stats.Hatches, 2},
		{"splits", stats.Splits, 1},
		{"mutations", stats.Mutations, 2},
		{"rare", stats.RareMutations, 1},
		{"dashes", stats.Dashes, 1},
		{"worms", stats.Worms, 3},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
	if stats.Width.Mean != 6 || stats.Speed.Std != 0 {
		t.Errorf("width mean %v, speed std %v", stats.Width.Mean, stats.Speed.Std)
	}
}

func TestCollectorFlushResets(t *testing.T) {
	c := NewCollector(5)
	c.Record(NewHatchEvent(0, 1))
	first := c.Flush(Sample{Tick: 300, SimTime: 5})

	if c.ShouldFlush(9.9) {
		t.Error("window closed early")
	}
	if !c.ShouldFlush(10) {
		t.Error("window did not close after its length")
	}

	second := c.Flush(Sample{Tick: 600, SimTime: 10})
	if first.Hatches != 1 || second.Hatches != 0 {
		t.Errorf("hatches = %d then %d, want 1 then 0", first.Hatches, second.Hatches)
	}
	if second.WindowStartTick != 300 || second.WindowEndTick != 600 {
		t.Errorf("second window = [%d, %d], want [300, 600]", second.WindowStartTick, second.WindowEndTick)
	}
}
