package timeline

import (
	"fmt"
	"iter"
	"sort"
)

// NotifyFunc receives the compressed command stream emitted by Add. It
// may be invoked zero or more times per Add call, and must not itself
// call back into the Timeline that invoked it.
type NotifyFunc func(Command)

// Timeline owns an arena of Event records and the indexed views over it:
// the linearization itself, a name index, pending forward references and
// the current tip set. See the package doc for the consistency
// guarantees it maintains.
type Timeline struct {
	linear  []*Event
	byName  map[string]*Event
	pending map[string]*orderedEventSet
	tips    map[string]*Event

	notify NotifyFunc
	cmds   []rawCmd
}

// New returns an empty Timeline with no notify callback installed.
func New() *Timeline {
	return &Timeline{
		byName:  make(map[string]*Event),
		pending: make(map[string]*orderedEventSet),
		tips:    make(map[string]*Event),
	}
}

// SetNotify installs or replaces the command-stream callback. Pass nil to
// stop receiving notifications.
func (tl *Timeline) SetNotify(fn NotifyFunc) {
	tl.notify = fn
}

// Len returns the number of events currently known to the Timeline.
func (tl *Timeline) Len() int {
	return len(tl.linear)
}

// At returns the name of the event currently at position i of the
// linearization.
func (tl *Timeline) At(i int) (string, error) {
	if i < 0 || i >= len(tl.linear) {
		return "", fmt.Errorf("%w: position %d out of range [0,%d)", ErrUnknown, i, len(tl.linear))
	}
	return tl.linear[i].Name, nil
}

// All iterates the linearization front to back (oldest/lowest-rank
// first).
func (tl *Timeline) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range tl.linear {
			if !yield(e.Name) {
				return
			}
		}
	}
}

// Reversed iterates the linearization back to front.
func (tl *Timeline) Reversed() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := len(tl.linear) - 1; i >= 0; i-- {
			if !yield(tl.linear[i].Name) {
				return
			}
		}
	}
}

// Index returns the current position of name in the linearization.
func (tl *Timeline) Index(name string) (int, error) {
	e, ok := tl.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return e.indx, nil
}

// Event returns the Event record for name, if known.
func (tl *Timeline) Event(name string) (*Event, error) {
	e, ok := tl.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return e, nil
}

// Tips returns the names of events with no known successor, sorted for
// deterministic output.
func (tl *Timeline) Tips() []string {
	out := make([]string, 0, len(tl.tips))
	for name := range tl.tips {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IsConcurrent reports whether neither a nor b is a transitive successor
// of the other in the resolved DAG. Both names must be known.
func (tl *Timeline) IsConcurrent(a, b string) (bool, error) {
	ea, ok := tl.byName[a]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknown, a)
	}
	eb, ok := tl.byName[b]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknown, b)
	}
	if ea == eb {
		return false, nil
	}
	// Equal rank rules out an ancestor/descendant relationship outright:
	// by invariant 2, a true ancestor always has strictly smaller rank.
	if ea.rank == eb.rank {
		return true, nil
	}

	earlier, later := ea, eb
	if earlier.indx > later.indx {
		earlier, later = later, earlier
	}

	visited := map[*Event]bool{earlier: true}
	queue := []*Event{earlier}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == later {
			return false, nil
		}
		if cur.rank > later.rank {
			continue
		}
		for _, s := range cur.succ {
			if !visited[s] {
				visited[s] = true
				queue = append(queue, s)
			}
		}
	}
	return true, nil
}

// Add registers a new event. after is the sequence of predecessor names
// it depends on (may be empty, may name events not yet added, must not
// equal name). On success it updates the linearization, ranks and tip
// set, and emits the compressed command stream through the notify
// callback, if one is installed.
//
// Add fails with ErrDuplicateName if name was already added (the Timeline
// is left unchanged), or with ErrCycle if completing the dependency edges
// would close a cycle among currently known events. On ErrCycle the
// Timeline's state is partially mutated: some ranks may already have been
// raised and some events repositioned before the cycle was detected.
// Recovery is not offered — this matches the algorithm's source, which
// explicitly does not snapshot or roll back a failed Add. Callers that
// cannot tolerate a partially mutated Timeline must discard it on
// ErrCycle.
//
// Add is not reentrant: it must not be called from inside notify, nor
// concurrently with itself or any other Timeline method.
func (tl *Timeline) Add(name string, after []string) (*Event, error) {
	if _, exists := tl.byName[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	tl.cmds = tl.cmds[:0]

	filtered := filterSelf(name, after)

	e := &Event{Name: name}
	tl.byName[name] = e

	e.prev = make([]predecessor, len(filtered))
	var resolved []*Event
	for i, c := range filtered {
		if p, ok := tl.byName[c]; ok {
			e.prev[i] = predecessor{name: c, event: p}
			p.succ = append(p.succ, e)
			delete(tl.tips, p.Name)
			resolved = append(resolved, p)
		} else {
			e.prev[i] = predecessor{name: c}
			tl.addPending(c, e)
		}
	}

	pos := 0
	for _, p := range resolved {
		if p.indx > pos {
			pos = p.indx
		}
	}
	tl.shiftIndicesFrom(pos)
	e.indx = pos
	tl.insertAt(pos, e)
	tl.emitIns(name, pos)

	if len(resolved) > 0 {
		for _, p := range resolved {
			if err := tl.edgeToPast(e, p); err != nil {
				return nil, err
			}
		}
	} else if len(tl.linear) > 1 {
		tl.rise(e)
	}

	if waiters, ok := tl.pending[name]; ok {
		for _, w := range waiters.items {
			for i := range w.prev {
				if w.prev[i].name == name && !w.prev[i].resolved() {
					if err := tl.edgeToPast(w, e); err != nil {
						return nil, err
					}
					w.prev[i].event = e
					e.succ = append(e.succ, w)
					delete(tl.tips, e.Name)
				}
			}
		}
		delete(tl.pending, name)
	}

	if len(e.succ) == 0 {
		tl.tips[e.Name] = e
	}

	tl.flush()
	return e, nil
}

func filterSelf(name string, after []string) []string {
	out := make([]string, 0, len(after))
	for _, c := range after {
		if c == name {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (tl *Timeline) addPending(cause string, e *Event) {
	set, ok := tl.pending[cause]
	if !ok {
		set = newOrderedEventSet()
		tl.pending[cause] = set
	}
	set.add(e)
}

func (tl *Timeline) shiftIndicesFrom(pos int) {
	for i := pos; i < len(tl.linear); i++ {
		tl.linear[i].indx++
	}
}

func (tl *Timeline) insertAt(pos int, e *Event) {
	tl.linear = append(tl.linear, nil)
	copy(tl.linear[pos+1:], tl.linear[pos:])
	tl.linear[pos] = e
}

// spliceForward relocates the event currently at old to newPos (newPos >
// old), shifting the events in between back by one slot.
func (tl *Timeline) spliceForward(old, newPos int) {
	e := tl.linear[old]
	copy(tl.linear[old:], tl.linear[old+1:newPos+1])
	tl.linear[newPos] = e
}

func (tl *Timeline) emitIns(name string, pos int) {
	if tl.notify == nil {
		return
	}
	tl.cmds = append(tl.cmds, rawCmd{kind: Ins, name: name, pos: pos})
}

func (tl *Timeline) emitMov(from, to int) {
	if tl.notify == nil {
		return
	}
	tl.cmds = append(tl.cmds, rawCmd{kind: Mov, from: from, to: to})
}

func (tl *Timeline) flush() {
	if tl.notify == nil {
		return
	}
	for _, c := range compress(tl.cmds) {
		tl.notify(c)
	}
}
