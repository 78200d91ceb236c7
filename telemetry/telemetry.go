// Package telemetry provides observability counters and a convergence
// digest over a timeline.Timeline, adapted from the teacher repo's
// revision-counter design (InRev/OutRev/GlobalRev) and its FNV-based
// stable hashing helpers — repurposed here from cache invalidation and
// motif fingerprinting to plain convergence observability, since the
// Timeline itself has no caches to invalidate.
package telemetry

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/jtomasevic/scuttlesort/timeline"
)

// Recorder tracks how many times each name has been announced via ins
// and how many command-stream events a Timeline has emitted in total.
// Hook it up with tl.SetNotify(recorder.Observe), or chain it alongside
// another notify callback.
type Recorder struct {
	global  uint64
	perName map[string]uint64
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{perName: make(map[string]uint64)}
}

// Observe updates the counters for one emitted command. Install it as a
// Timeline's notify callback (or call it from within a larger one).
func (r *Recorder) Observe(c timeline.Command) {
	r.global++
	if c.Kind == timeline.Ins {
		r.perName[c.Name]++
	}
}

// GlobalRev returns the total number of commands observed so far.
func (r *Recorder) GlobalRev() uint64 { return r.global }

// NameRev returns how many times name has been announced via ins.
func (r *Recorder) NameRev(name string) uint64 { return r.perName[name] }

// Digest computes a deterministic FNV-1a fingerprint of tl's current
// linearization: the ordered sequence of (name, rank) pairs. Two feeds
// that have converged to the same linearization, per the permutation-
// invariance law, always produce equal digests; this makes Digest a
// cheap way for gossiping replicas to confirm (or refute) convergence
// without diffing the whole sequence.
func Digest(tl *timeline.Timeline) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for name := range tl.All() {
		e, err := tl.Event(name)
		if err != nil {
			continue
		}
		_, _ = h.Write([]byte(name))
		_, _ = h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], uint64(e.Rank()))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
