package timeline

// predecessor is a declared dependency of an Event. It starts out
// unresolved (only a name is known, because the named event has not yet
// been added) and is resolved in place once the named event arrives.
//
// Spec's open question on the representation of prev is resolved in favor
// of this tagged-variant shape rather than mutating a string/Event union
// field, per the "cleaner variant (tagged variant from the outset)"
// guidance.
type predecessor struct {
	name  string
	event *Event // nil while unresolved
}

func (p predecessor) resolved() bool {
	return p.event != nil
}

// Event is one record in a Timeline's arena: a named node in the
// dependency DAG. Events are created once by Timeline.Add and never
// mutated structurally afterwards; only rank, indx, succ and the
// transient algorithmic flags evolve over the Event's lifetime.
type Event struct {
	// Name is the event's opaque, immutable identifier. Names are
	// compared lexicographically over their byte representation.
	Name string

	prev []predecessor
	succ []*Event

	rank int
	indx int

	// vstd and cycl are transient markers used only during the Add call
	// that is currently touching this Event's neighborhood. They are
	// false at every quiescent boundary, except when a call failed with
	// ErrCycle (see Timeline.Add's doc comment).
	vstd bool
	cycl bool
}

// Rank is the length of the longest resolved-dependency chain ending at
// this event (0 for an event with no resolved predecessor).
func (e *Event) Rank() int { return e.rank }

// Index is this event's current position in the Timeline's linearization.
func (e *Event) Index() int { return e.indx }

// Successors returns the events known to directly depend on this one, in
// no particular order. The returned slice is a copy; mutating it does not
// affect the Timeline.
func (e *Event) Successors() []*Event {
	out := make([]*Event, len(e.succ))
	copy(out, e.succ)
	return out
}

// Predecessors returns this event's resolved dependencies, in the order
// they were declared. Unresolved (forward-referenced) dependencies are
// omitted.
func (e *Event) Predecessors() []*Event {
	out := make([]*Event, 0, len(e.prev))
	for _, p := range e.prev {
		if p.resolved() {
			out = append(out, p.event)
		}
	}
	return out
}
