package automation

import (
	"sync/atomic"

	"umapilot/core/event"
)

// Stats holds the session counters. Counters are mutated only by the loop
// worker and read concurrently by presentation surfaces; they reset only at
// process start.
type Stats struct {
	trainingSessions  atomic.Uint64
	racesCompleted    atomic.Uint64
	eventsHandled     atomic.Uint64
	errorsEncountered atomic.Uint64
}

// NewStats creates zeroed session counters.
func NewStats() *Stats {
	return &Stats{}
}

// Snapshot returns a point-in-time copy of all counters.
func (s *Stats) Snapshot() event.StatsSnapshot {
	return event.StatsSnapshot{
		TrainingSessions:  s.trainingSessions.Load(),
		RacesCompleted:    s.racesCompleted.Load(),
		EventsHandled:     s.eventsHandled.Load(),
		ErrorsEncountered: s.errorsEncountered.Load(),
	}
}

func (s *Stats) incTrainingSessions() uint64 {
	return s.trainingSessions.Add(1)
}

func (s *Stats) incRacesCompleted() uint64 {
	return s.racesCompleted.Add(1)
}

func (s *Stats) incEventsHandled() uint64 {
	return s.eventsHandled.Add(1)
}

func (s *Stats) incErrorsEncountered() uint64 {
	return s.errorsEncountered.Add(1)
}
