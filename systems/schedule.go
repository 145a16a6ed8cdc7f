package systems

import (
	"sort"

	"github.com/pthm-cable/wormsoup/components"
)

// scheduledBurst is a shockwave due once its delay runs out.
type scheduledBurst struct {
	delay    float64
	colony   *components.Colony
	strength float64
}

// Schedule is an in-tick countdown list of deferred shockwaves.
// Entries are resolved by the step function that owns it, never by timers.
type Schedule struct {
	entries []scheduledBurst
}

// Add schedules a burst delay seconds from now.
func (s *Schedule) Add(delay float64, c *components.Colony, strength float64) {
	s.entries = append(s.entries, scheduledBurst{delay: delay, colony: c, strength: strength})
}

// Len returns the number of outstanding entries.
func (s *Schedule) Len() int {
	return len(s.entries)
}

// Advance counts every entry down by dt and fires those that are due,
// earliest due first. Entries due at the same moment fire in the order they
// were added.
func (s *Schedule) Advance(dt float64, fire func(*components.Colony, float64)) {
	if len(s.entries) == 0 {
		return
	}
	var due []scheduledBurst
	kept := s.entries[:0]
	for _, e := range s.entries {
		e.delay -= dt
		if e.delay <= 0 {
			due = append(due, e)
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	sort.SliceStable(due, func(i, j int) bool { return due[i].delay < due[j].delay })
	for _, e := range due {
		fire(e.colony, e.strength)
	}
}
