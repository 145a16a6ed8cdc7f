package telemetry

// EventLog keeps the most recent events in a fixed-size ring.
type EventLog struct {
	buf   []Event
	start int
	count int
	total [NumEventKinds]int
}

// NewEventLog creates a log holding at most size events.
func NewEventLog(size int) *EventLog {
	if size < 1 {
		size = 1
	}
	return &EventLog{buf: make([]Event, size)}
}

// Record appends an event, overwriting the oldest when full.
// Suitable as a Bus subscriber.
func (l *EventLog) Record(e Event) {
	if int(e.Kind) < NumEventKinds {
		l.total[e.Kind]++
	}
	if l.count < len(l.buf) {
		l.buf[(l.start+l.count)%len(l.buf)] = e
		l.count++
		return
	}
	l.buf[l.start] = e
	l.start = (l.start + 1) % len(l.buf)
}

// Len returns the number of retained events.
func (l *EventLog) Len() int {
	return l.count
}

// Total returns how many events of kind were ever recorded, including evicted ones.
func (l *EventLog) Total(kind EventKind) int {
	if int(kind) >= NumEventKinds {
		return 0
	}
	return l.total[kind]
}

// All returns retained events, oldest first.
func (l *EventLog) All() []Event {
	out := make([]Event, l.count)
	for i := 0; i < l.count; i++ {
		out[i] = l.buf[(l.start+i)%len(l.buf)]
	}
	return out
}

// Recent returns up to n of the newest events, oldest first.
func (l *EventLog) Recent(n int) []Event {
	if n <= 0 {
		return nil
	}
	all := l.All()
	if n >= len(all) {
		return all
	}
	return all[len(all)-n:]
}

// Filter returns retained events of the given kinds, oldest first.
// No kinds means all events.
func (l *EventLog) Filter(kinds ...EventKind) []Event {
	if len(kinds) == 0 {
		return l.All()
	}
	var want [NumEventKinds]bool
	for _, k := range kinds {
		if int(k) < NumEventKinds {
			want[k] = true
		}
	}
	var out []Event
	for i := 0; i < l.count; i++ {
		e := l.buf[(l.start+i)%len(l.buf)]
		if int(e.Kind) < NumEventKinds && want[e.Kind] {
			out = append(out, e)
		}
	}
	return out
}
