// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package sched implements a cooperative scheduler for the steps of a walker.
//
// Work is expressed as a chain of tasks. A task never calls its successor
// directly: it defers it to a later turn of the run loop, so the depth of
// the call stack does not grow with the amount of work done. A task that
// cannot proceed until more input arrives delays itself instead; it is
// resumed, exactly once, by the next call to Wake.
package sched

import "github.com/creachadair/mds/queue"

// A Task is a single step of work.
type Task func()

// A Scheduler runs deferred tasks in the order they were deferred.
// A Scheduler is not safe for concurrent use.
type Scheduler struct {
	ready   *queue.Queue[Task]
	parked  []Task
	running bool
	stopped bool
	turns   int
}

// New constructs an empty scheduler.
func New() *Scheduler { return &Scheduler{ready: queue.New[Task]()} }

// Defer queues t to run on a later turn of Run.
func (s *Scheduler) Defer(t Task) {
	if !s.stopped {
		s.ready.Add(t)
	}
}

// Delay parks t until the next call to Wake.
func (s *Scheduler) Delay(t Task) {
	if !s.stopped {
		s.parked = append(s.parked, t)
	}
}

// Parked reports whether any tasks are waiting for Wake.
func (s *Scheduler) Parked() bool { return len(s.parked) != 0 }

// Wake moves all parked tasks to the ready queue and reports how many there
// were. A task parked once is woken once.
func (s *Scheduler) Wake() int {
	n := len(s.parked)
	for _, t := range s.parked {
		s.ready.Add(t)
	}
	clear(s.parked)
	s.parked = s.parked[:0]
	return n
}

// Run executes ready tasks until none remain, including tasks deferred while
// it runs, and reports how many it ran. If Run is called by a task, it
// returns 0 at once and the outer call picks up any new work.
func (s *Scheduler) Run() int {
	if s.running {
		return 0
	}
	s.running = true
	defer func() { s.running = false }()

	var n int
	for {
		t, ok := s.ready.Pop()
		if !ok {
			return n
		}
		t()
		n++
		s.turns++
	}
}

// Turns reports the total number of tasks run by s.
func (s *Scheduler) Turns() int { return s.turns }

// Stop discards all ready and parked tasks. After Stop, Defer and Delay have
// no effect.
func (s *Scheduler) Stop() {
	s.stopped = true
	s.ready.Clear()
	clear(s.parked)
	s.parked = nil
}

// Stopped reports whether Stop has been called.
func (s *Scheduler) Stopped() bool { return s.stopped }
