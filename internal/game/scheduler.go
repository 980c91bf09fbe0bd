package game

import "time"

// Scheduler runs per-visitor timers and condition polls off the frame loop.
// Every entry is keyed by an owner id so a visitor's entire timer set can be
// torn down in one call when it despawns; a typed Handle cancels a single
// entry. Entries whose owner has been cancelled never fire again, so a
// callback observing stale state is structurally impossible as long as
// teardown cancels the owner.
//
// The scheduler is not goroutine-safe; the spawner serializes all access
// under its own lock, matching the single frame-loop execution model.
type Scheduler struct {
	nextID  uint64
	entries map[uint64]*schedEntry
}

type schedEntry struct {
	id        uint64
	owner     uint64
	remaining time.Duration
	fire      func()
	// poll, when set, is checked every advance instead of waiting out
	// remaining; it returns true once its condition holds.
	poll func() bool
}

// Handle identifies one scheduled entry. The zero Handle is valid and
// cancels nothing.
type Handle struct {
	id uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{entries: map[uint64]*schedEntry{}}
}

// After schedules fn to run once d from now.
func (s *Scheduler) After(owner uint64, d time.Duration, fn func()) Handle {
	return s.add(&schedEntry{owner: owner, remaining: d, fire: fn})
}

// Poll checks cond every frame and runs fn once when it first returns true.
func (s *Scheduler) Poll(owner uint64, cond func() bool, fn func()) Handle {
	return s.add(&schedEntry{owner: owner, poll: cond, fire: fn})
}

func (s *Scheduler) add(e *schedEntry) Handle {
	s.nextID++
	e.id = s.nextID
	s.entries[e.id] = e
	return Handle{id: e.id}
}

// Cancel removes a single entry. Cancelling an entry that already fired or
// was already cancelled is a no-op.
func (s *Scheduler) Cancel(h Handle) {
	delete(s.entries, h.id)
}

// Remaining reports how long until the entry fires, or false if the entry is
// gone or is a poll.
func (s *Scheduler) Remaining(h Handle) (time.Duration, bool) {
	e, ok := s.entries[h.id]
	if !ok || e.poll != nil {
		return 0, false
	}
	return e.remaining, true
}

// CancelOwner removes every entry belonging to the owner.
func (s *Scheduler) CancelOwner(owner uint64) {
	for id, e := range s.entries {
		if e.owner == owner {
			delete(s.entries, id)
		}
	}
}

// OwnerCount returns the number of live entries keyed to the owner.
func (s *Scheduler) OwnerCount(owner uint64) int {
	n := 0
	for _, e := range s.entries {
		if e.owner == owner {
			n++
		}
	}
	return n
}

// Len returns the total number of live entries.
func (s *Scheduler) Len() int {
	return len(s.entries)
}

// Advance moves time forward by dt, firing due timers and satisfied polls.
// Due entries are collected first and removed before their callbacks run, so
// a callback may freely schedule or cancel other entries, including its own
// owner's. At most one expiry of a given entry can ever fire.
func (s *Scheduler) Advance(dt time.Duration) {
	var due []*schedEntry
	for _, e := range s.entries {
		if e.poll != nil {
			if e.poll() {
				due = append(due, e)
			}
			continue
		}
		e.remaining -= dt
		if e.remaining <= 0 {
			due = append(due, e)
		}
	}

	for _, e := range due {
		// An earlier callback in this batch may have cancelled this entry
		// (e.g. a despawn tearing down its owner); skip it if so.
		if _, live := s.entries[e.id]; !live {
			continue
		}
		delete(s.entries, e.id)
		e.fire()
	}
}
