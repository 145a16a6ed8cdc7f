// Package telemetry provides the event channel, event log, window stats and output.
package telemetry

import "fmt"

// EventKind tags a notification.
type EventKind uint8

const (
	KindEvent EventKind = iota // generic world event (colony split, startup)
	KindBoss
	KindDash
	KindMutation
	KindHatch
)

// NumEventKinds is the number of event kinds.
const NumEventKinds = 5

// String returns the display tag of the kind.
func (k EventKind) String() string {
	switch k {
	case KindEvent:
		return "EVENT"
	case KindBoss:
		return "BOSS"
	case KindDash:
		return "DASH"
	case KindMutation:
		return "MUTATION"
	case KindHatch:
		return "HATCH"
	}
	return "UNKNOWN"
}

// MarshalCSV renders the kind by name in CSV output.
func (k EventKind) MarshalCSV() (string, error) {
	return k.String(), nil
}

// Event is a discrete notification emitted at the moment of a state change.
type Event struct {
	Tick   int64     `csv:"tick"`
	Time   float64   `csv:"time"`
	Kind   EventKind `csv:"kind"`
	Colony int       `csv:"colony"`  // -1 when not colony-specific
	WormID uint32    `csv:"worm_id"` // 0 when not worm-specific
	Rare   bool      `csv:"rare"`    // mutation events only
	Text   string    `csv:"text"`
}

// String formats the event as a log line.
func (e Event) String() string {
	return fmt.Sprintf("[%7.2fs] %-8s %s", e.Time, e.Kind, e.Text)
}

// NewHatchEvent creates a hatch event.
func NewHatchEvent(colony int, wormID uint32) Event {
	return Event{
		Kind:   KindHatch,
		Colony: colony,
		WormID: wormID,
		Text:   fmt.Sprintf("worm #%d hatched in colony %d", wormID, colony),
	}
}

// NewSplitEvent creates a colony split event.
func NewSplitEvent(colony, starters int) Event {
	return Event{
		Kind:   KindEvent,
		Colony: colony,
		Text:   fmt.Sprintf("colony %d split off with %d worms", colony, starters),
	}
}

// NewBossEvent creates the boss emergence event.
func NewBossEvent(colony int, wormID uint32) Event {
	return Event{
		Kind:   KindBoss,
		Colony: colony,
		WormID: wormID,
		Text:   "boss emerged",
	}
}

// NewDashEvent creates a boss dash event.
func NewDashEvent(colony int, wormID uint32, impulse float64, flipped bool) Event {
	text := fmt.Sprintf("boss dash (impulse %.0f)", impulse)
	if flipped {
		text += ", orbit reversed"
	}
	return Event{
		Kind:   KindDash,
		Colony: colony,
		WormID: wormID,
		Text:   text,
	}
}

// NewMutationEvent creates a mutation event. what names the edited trait.
func NewMutationEvent(colony int, wormID uint32, what string, rare bool) Event {
	text := fmt.Sprintf("worm #%d %s", wormID, what)
	if rare {
		text = fmt.Sprintf("rare mutation: worm #%d %s", wormID, what)
	}
	return Event{
		Kind:   KindMutation,
		Colony: colony,
		WormID: wormID,
		Rare:   rare,
		Text:   text,
	}
}

// Bus delivers events synchronously to its subscribers.
// A nil *Bus drops events.
type Bus struct {
	handlers []func(Event)
	tick     int64
	time     float64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler. Handlers run in subscription order.
func (b *Bus) Subscribe(h func(Event)) {
	if b == nil {
		return
	}
	b.handlers = append(b.handlers, h)
}

// SetClock sets the tick and time stamped onto subsequent events.
func (b *Bus) SetClock(tick int64, time float64) {
	if b == nil {
		return
	}
	b.tick = tick
	b.time = time
}

// Emit stamps the event and hands it to every subscriber before returning.
func (b *Bus) Emit(e Event) {
	if b == nil {
		return
	}
	e.Tick = b.tick
	e.Time = b.time
	for _, h := range b.handlers {
		h(e)
	}
}
