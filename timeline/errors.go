package timeline

import "errors"

// Sentinel errors returned by Timeline's public operations. Wrap with
// fmt.Errorf("%w: ...") and unwrap with errors.Is, matching the teacher
// repo's plain-errors idiom (no custom error framework).
var (
	// ErrDuplicateName is returned by Add when the given name was
	// already registered. The Timeline is left unchanged.
	ErrDuplicateName = errors.New("timeline: duplicate event name")

	// ErrUnknown is returned by Index, IsConcurrent and At when a name
	// or position does not refer to a known event.
	ErrUnknown = errors.New("timeline: unknown event name")

	// ErrCycle is returned by Add when integrating the new event's
	// dependency edges would close a cycle among resolved events. The
	// Timeline is left partially mutated: recovery is not offered, by
	// design (see Timeline.Add's doc comment).
	ErrCycle = errors.New("timeline: dependency edge would close a cycle")
)
