package service

import (
	"sync/atomic"
	"time"
)

// State is the process-wide readiness snapshot served by the health endpoints.
type State struct {
	ready     atomic.Bool
	startedAt time.Time

	streamConnected atomic.Bool
	lastPriceUnix   atomic.Int64 // unix seconds of the last market tick
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

func (s *State) SetStreamConnected(v bool) { s.streamConnected.Store(v) }
func (s *State) StreamConnected() bool     { return s.streamConnected.Load() }

func (s *State) TouchPrice(t time.Time) { s.lastPriceUnix.Store(t.Unix()) }
func (s *State) LastPriceAt() time.Time {
	u := s.lastPriceUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
