// Package timers keeps track of delayed actions that can be superseded.
//
// A Set does not sleep or spawn goroutines. Arm hands back a Timer that the
// caller schedules however its event loop does it (a bubbletea tick, a test
// clock), and later reports back with Fire. Re-arming or cancelling a key
// makes any earlier Timer for that key stale, so Fire ignores it.
package timers

import (
	"sort"
	"strings"
	"time"
)

// ID identifies one arming of a key.
type ID struct {
	Key string
	Seq uint64
}

// Timer is a pending action.
type Timer struct {
	ID    ID
	Delay time.Duration
	Due   time.Time
}

// Set is a collection of keyed timers. The zero value is ready to use.
// A Set is not safe for concurrent use.
type Set struct {
	seq     uint64
	pending map[string]Timer
}

// Arm schedules key to fire after delay, replacing any pending timer for key.
func (s *Set) Arm(key string, delay time.Duration, now time.Time) Timer {
	if s.pending == nil {
		s.pending = make(map[string]Timer)
	}
	s.seq++
	t := Timer{
		ID:    ID{Key: key, Seq: s.seq},
		Delay: delay,
		Due:   now.Add(delay),
	}
	s.pending[key] = t
	return t
}

// Cancel drops the pending timer for key. It reports whether one was pending.
func (s *Set) Cancel(key string) bool {
	if _, ok := s.pending[key]; !ok {
		return false
	}
	delete(s.pending, key)
	return true
}

// CancelPrefix drops every pending timer whose key starts with prefix and
// returns the cancelled keys in sorted order.
func (s *Set) CancelPrefix(prefix string) []string {
	var keys []string
	for key := range s.pending {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		delete(s.pending, key)
	}
	return keys
}

// Fire consumes the timer identified by id. It reports false when the timer
// was cancelled or superseded in the meantime.
func (s *Set) Fire(id ID) bool {
	t, ok := s.pending[id.Key]
	if !ok || t.ID != id {
		return false
	}
	delete(s.pending, id.Key)
	return true
}

// All returns every pending timer, earliest first.
func (s *Set) All() []Timer {
	all := make([]Timer, 0, len(s.pending))
	for _, t := range s.pending {
		all = append(all, t)
	}
	sortTimers(all)
	return all
}

func sortTimers(ts []Timer) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].Due.Equal(ts[j].Due) {
			return ts[i].ID.Seq < ts[j].ID.Seq
		}
		return ts[i].Due.Before(ts[j].Due)
	})
}
