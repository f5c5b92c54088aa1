package sim

import "time"

// task is a deferred action bound to the generation it was scheduled in.
type task struct {
	due        time.Time
	generation uint64
	run        func()
}

// Scheduler holds deferred actions that are polled from the tick. Bumping the
// generation invalidates everything scheduled before it, so a reset can never
// be followed by a stale callback.
type Scheduler struct {
	generation uint64
	tasks      []task
}

// After schedules fn to run on the first Poll at or past now+d.
func (s *Scheduler) After(now time.Time, d time.Duration, fn func()) {
	s.tasks = append(s.tasks, task{
		due:        now.Add(d),
		generation: s.generation,
		run:        fn,
	})
}

// Reset starts a new generation and drops every pending task.
func (s *Scheduler) Reset() {
	s.generation++
	clear(s.tasks)
	s.tasks = s.tasks[:0]
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Poll runs every due task of the current generation in scheduling order.
// Tasks from older generations are discarded. A task may schedule more tasks
// or reset the scheduler; those are handled on a later Poll.
func (s *Scheduler) Poll(now time.Time) {
	if len(s.tasks) == 0 {
		return
	}

	gen := s.generation
	var due []task
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		switch {
		case t.generation != gen:
		case now.Before(t.due):
			kept = append(kept, t)
		default:
			due = append(due, t)
		}
	}
	clear(s.tasks[len(kept):])
	s.tasks = kept

	for _, t := range due {
		if t.generation != s.generation {
			return
		}
		t.run()
	}
}
