// Package timeline implements an incremental, deterministic topological
// linearization of a DAG of named events that arrive in arbitrary order,
// each declaring the set of earlier events it depends on.
//
// It is the Go port of the "ScuttleSort" algorithm: every participant that
// eventually observes the same set of events, regardless of the order they
// were delivered in, arrives at the exact same linear ordering. The
// Timeline maintains, incrementally, a total order over the events it
// knows about, a per-event rank (longest dependency chain length), and a
// minimal stream of ins/mov commands describing how the externally
// observable linearization changed.
//
// A Timeline is single-threaded and not reentrant: Add must not be called
// concurrently with itself, nor from inside a notify callback. Callers
// needing concurrent submission must serialize externally.
package timeline
