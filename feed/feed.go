// Package feed is a thin ingestion front-end over a timeline.Timeline: it
// tags every ingested event with an opaque per-arrival envelope ID, logs
// the resulting command stream, records telemetry over it, and lets
// callers register hooks that observe every ingest attempt, accepted or
// rejected.
package feed

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jtomasevic/scuttlesort/telemetry"
	"github.com/jtomasevic/scuttlesort/timeline"
)

// Envelope is the feed-layer wrapper around one ingested event: a stable
// durable Name (the Timeline's own identity for the event) plus an
// opaque ID identifying this feed's local arrival of it. It deliberately
// does not attempt to be a cryptographic message hash — verifying feed
// identifiers is explicitly out of scope for the core (see spec.md §1)
// and is left to whatever replication layer sits above this package.
type Envelope struct {
	ID   uuid.UUID
	Name string
}

// Hook is invoked once per Ingest call, after the underlying Add has
// settled: err is nil on acceptance and non-nil (typically ErrCycle or
// ErrDuplicateName) on rejection.
type Hook func(env Envelope, err error)

// Feed wraps a *timeline.Timeline, assigning an Envelope to every
// ingested event and routing the Timeline's command stream through a
// structured logger instead of a bare callback.
type Feed struct {
	Timeline *timeline.Timeline

	log   *logrus.Entry
	rec   *telemetry.Recorder
	hooks []Hook
}

// New returns a Feed backed by a fresh Timeline. If log is nil, the
// package-level logrus.StandardLogger is used.
func New(log *logrus.Logger) *Feed {
	if log == nil {
		log = logrus.StandardLogger()
	}
	f := &Feed{
		Timeline: timeline.New(),
		log:      log.WithField("component", "feed"),
		rec:      telemetry.NewRecorder(),
	}
	f.Timeline.SetNotify(func(c timeline.Command) {
		f.logCommand(c)
		f.rec.Observe(c)
	})
	return f
}

func (f *Feed) logCommand(c timeline.Command) {
	switch c.Kind {
	case timeline.Ins:
		f.log.WithFields(logrus.Fields{"op": "ins", "name": c.Name, "pos": c.Pos}).Info("linearization updated")
	case timeline.Mov:
		f.log.WithFields(logrus.Fields{"op": "mov", "from": c.From, "to": c.To}).Info("linearization updated")
	}
}

// GlobalRev returns the total number of commands this feed has observed
// across every Ingest call so far.
func (f *Feed) GlobalRev() uint64 { return f.rec.GlobalRev() }

// NameRev returns how many times name has been announced via ins.
func (f *Feed) NameRev(name string) uint64 { return f.rec.NameRev(name) }

// Digest returns the convergence digest of this feed's current
// linearization (see telemetry.Digest).
func (f *Feed) Digest() uint64 { return telemetry.Digest(f.Timeline) }

// RegisterHook adds a callback invoked after every Ingest.
func (f *Feed) RegisterHook(h Hook) {
	f.hooks = append(f.hooks, h)
}

// Ingest adds name (depending on the given predecessor names) to the
// underlying Timeline and returns an Envelope identifying this arrival.
// On rejection the returned error wraps the Timeline's sentinel error;
// hooks still fire so callers can observe rejected events uniformly.
func (f *Feed) Ingest(name string, after []string) (Envelope, error) {
	_, addErr := f.Timeline.Add(name, after)
	env := Envelope{ID: uuid.New(), Name: name}

	if addErr != nil {
		f.log.WithError(addErr).WithField("name", name).Warn("event rejected")
	} else {
		f.log.WithField("name", name).Info("event ingested")
	}
	for _, h := range f.hooks {
		h(env, addErr)
	}

	if addErr != nil {
		return Envelope{}, fmt.Errorf("feed: ingest %q: %w", name, addErr)
	}
	return env, nil
}
