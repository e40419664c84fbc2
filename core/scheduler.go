package core

// SoftTimer is an event on the heartbeat timeline
type SoftTimer struct {
	WakeTick uint32
	Handler  func(*SoftTimer) uint8
	Next     *SoftTimer
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

// Scheduler runs soft timers off a periodic tick, normally the 1 ms
// heartbeat. Handlers run in the context that calls Tick.
type Scheduler struct {
	list *SoftTimer
	now  uint32
}

// Now returns the current tick
func (s *Scheduler) Now() uint32 {
	return s.now
}

// Add schedules t at t.WakeTick
func (s *Scheduler) Add(t *SoftTimer) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	s.insert(t)
}

// After schedules t to fire ticks from now
func (s *Scheduler) After(t *SoftTimer, ticks uint32) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	t.WakeTick = s.now + ticks
	s.insert(t)
}

// Cancel removes t, reporting whether it was scheduled
func (s *Scheduler) Cancel(t *SoftTimer) bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	link := &s.list
	for *link != nil {
		if *link == t {
			*link = t.Next
			t.Next = nil
			return true
		}
		link = &(*link).Next
	}
	return false
}

// before compares ticks modulo 2^32
func before(a, b uint32) bool {
	return int32(a-b) < 0
}

// insert keeps the list sorted by WakeTick; equal ticks keep insertion order
func (s *Scheduler) insert(t *SoftTimer) {
	if s.list == nil || before(t.WakeTick, s.list.WakeTick) {
		t.Next = s.list
		s.list = t
		return
	}

	current := s.list
	for current.Next != nil && !before(t.WakeTick, current.Next.WakeTick) {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

// Tick advances time by one tick and runs every due timer
func (s *Scheduler) Tick() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	s.now++
	for s.list != nil && !before(s.now, s.list.WakeTick) {
		timer := s.list
		s.list = timer.Next
		timer.Next = nil

		if timer.Handler(timer) == SF_RESCHEDULE {
			s.insert(timer)
		}
	}
}

// Every returns a handler that reschedules itself period ticks apart and
// calls fn each time.
func Every(period uint32, fn func()) func(*SoftTimer) uint8 {
	return func(t *SoftTimer) uint8 {
		fn()
		if period == 0 {
			return SF_DONE
		}
		t.WakeTick += period
		return SF_RESCHEDULE
	}
}
