package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wormsoup/renderer"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayShockwaves OverlayID = "shockwaves"
	OverlayNodes      OverlayID = "nodes"
	OverlayLimbs      OverlayID = "limbs"
	OverlayRings      OverlayID = "rings"
	OverlayHeadings   OverlayID = "headings"
	OverlaySparks     OverlayID = "sparks"

	OverlayEvents  OverlayID = "events"
	OverlayEconomy OverlayID = "economy"
	OverlayPerf    OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "1", "E")
	Category    string      // Grouping ("world", "debug", "panels")
	Default     bool        // Enabled on registration
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
	order       []OverlayID // Maintains insertion order for display
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayShockwaves,
		Name:        "Shockwaves",
		Description: "Expanding rings from splits, mutations and dashes",
		Key:         rl.KeyOne,
		KeyLabel:    "1",
		Category:    "world",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayNodes,
		Name:        "Colony Nodes",
		Description: "Decorative points orbiting each colony",
		Key:         rl.KeyTwo,
		KeyLabel:    "2",
		Category:    "world",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayLimbs,
		Name:        "Limbs",
		Description: "Wobbling appendages on worm bodies",
		Key:         rl.KeyThree,
		KeyLabel:    "3",
		Category:    "world",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlaySparks,
		Name:        "Sparks",
		Description: "Particle bursts on world events",
		Key:         rl.KeyFour,
		KeyLabel:    "4",
		Category:    "world",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayRings,
		Name:        "Orbit Rings",
		Description: "Preferred orbit and leash radius per colony",
		Key:         rl.KeyFive,
		KeyLabel:    "5",
		Category:    "debug",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayHeadings,
		Name:        "Headings",
		Description: "Head direction vectors",
		Key:         rl.KeySix,
		KeyLabel:    "6",
		Category:    "debug",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayEvents,
		Name:        "Event Feed",
		Description: "Most recent world events",
		Key:         rl.KeyE,
		KeyLabel:    "E",
		Category:    "panels",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayEconomy,
		Name:        "Economy Graphs",
		Description: "Market history and growth breakdown",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "panels",
		Exclusive:   []OverlayID{OverlayPerf},
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Performance",
		Description: "Tick timing by phase",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "panels",
		Exclusive:   []OverlayID{OverlayEconomy},
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.order = append(r.order, desc.ID)
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}

	r.enabled[id] = enabled

	// If enabling, disable exclusive overlays
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// Get returns an overlay descriptor by ID.
func (r *OverlayRegistry) Get(id OverlayID) (OverlayDescriptor, bool) {
	desc, ok := r.byID[id]
	return desc, ok
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			newState := r.Toggle(desc.ID)
			return desc.ID, newState, true
		}
	}
	return "", false, false
}

// PollKeys toggles every overlay whose key was pressed this frame.
func (r *OverlayRegistry) PollKeys() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}

// EnabledOverlays returns a list of currently enabled overlay IDs.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var result []OverlayID
	for _, id := range r.order {
		if r.enabled[id] {
			result = append(result, id)
		}
	}
	return result
}

// Layers maps the world overlays onto renderer draw layers.
func (r *OverlayRegistry) Layers() renderer.Layers {
	return renderer.Layers{
		Shockwaves: r.enabled[OverlayShockwaves],
		Nodes:      r.enabled[OverlayNodes],
		Limbs:      r.enabled[OverlayLimbs],
		Rings:      r.enabled[OverlayRings],
		Headings:   r.enabled[OverlayHeadings],
		Sparks:     r.enabled[OverlaySparks],
	}
}
