package core

import "testing"

func TestSchedulerOrder(t *testing.T) {
	var s Scheduler
	var order []int
	mk := func(id int, wake uint32) *SoftTimer {
		return &SoftTimer{WakeTick: wake, Handler: func(*SoftTimer) uint8 {
			order = append(order, id)
			return SF_DONE
		}}
	}
	s.Add(mk(3, 5))
	s.Add(mk(1, 2))
	s.Add(mk(2, 2))
	s.Add(mk(4, 9))

	for i := 0; i < 5; i++ {
		s.Tick()
	}
	want := []int{1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
	if s.Now() != 5 {
		t.Errorf("Now = %d, want 5", s.Now())
	}
}

func TestSchedulerEvery(t *testing.T) {
	var s Scheduler
	n := 0
	timer := &SoftTimer{Handler: Every(10, func() { n++ })}
	s.After(timer, 10)

	for i := 0; i < 35; i++ {
		s.Tick()
	}
	if n != 3 {
		t.Errorf("periodic timer ran %d times in 35 ticks, want 3", n)
	}
	if !s.Cancel(timer) {
		t.Fatal("Cancel did not find the periodic timer")
	}
	for i := 0; i < 20; i++ {
		s.Tick()
	}
	if n != 3 {
		t.Error("cancelled timer still runs")
	}
	if s.Cancel(timer) {
		t.Error("Cancel found a timer twice")
	}
}

func TestSchedulerEveryZeroPeriodRunsOnce(t *testing.T) {
	var s Scheduler
	n := 0
	s.After(&SoftTimer{Handler: Every(0, func() { n++ })}, 1)
	s.Tick()
	s.Tick()
	if n != 1 {
		t.Errorf("zero period timer ran %d times, want 1", n)
	}
}

func TestSchedulerWraparound(t *testing.T) {
	s := Scheduler{now: 0xFFFFFFFE}
	fired := false
	s.After(&SoftTimer{Handler: func(*SoftTimer) uint8 {
		fired = true
		return SF_DONE
	}}, 4)

	for i := 0; i < 3; i++ {
		s.Tick()
	}
	if fired {
		t.Fatal("fired early across the wrap")
	}
	s.Tick()
	if !fired {
		t.Error("did not fire after the wrap")
	}
}

func TestSchedulerHandlersRunMasked(t *testing.T) {
	var s Scheduler
	masked := false
	s.After(&SoftTimer{Handler: func(*SoftTimer) uint8 {
		masked = inCriticalSection()
		return SF_DONE
	}}, 1)
	s.Tick()
	if !masked {
		t.Error("handler ran outside a critical section")
	}
	if inCriticalSection() {
		t.Error("critical section left open after Tick")
	}
}
