package main

import (
	"testing"

	"github.com/pthm-cable/wormsoup/components"
)

func TestBiomePath(t *testing.T) {
	tests := []struct {
		out  string
		b    components.Biome
		want string
	}{
		{"debug.png", components.Reef, "debug_reef.png"},
		{"out/haze.png", components.Void, "out/haze_void.png"},
		{"noext", components.Abyss, "noext_abyss"},
	}
	for _, tt := range tests {
		if got := biomePath(tt.out, tt.b); got != tt.want {
			t.Errorf("biomePath(%q, %s) = %q, want %q", tt.out, tt.b, got, tt.want)
		}
	}
}
