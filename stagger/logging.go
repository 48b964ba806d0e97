package stagger

import "github.com/rs/zerolog"

// SchedulerOption configures a Scheduler at construction time.
type SchedulerOption interface {
	applyScheduler(*Scheduler)
}

type schedulerOptionFunc func(*Scheduler)

func (f schedulerOptionFunc) applyScheduler(s *Scheduler) { f(s) }

// WithLogger attaches a structured logger. Only Run logs, at Debug level:
// local search start and finish, and an early return when the initial or a
// resynchronized schedule is infeasible or cannot be made tie-free.
// Resyncs, individual move outcomes and invariant violations are not
// logged. The hot paths inside Construct and Reevaluate never log,
// regardless of this setting. The zero Scheduler logs nothing.
func WithLogger(logger zerolog.Logger) SchedulerOption {
	return schedulerOptionFunc(func(s *Scheduler) { s.logger = logger })
}
