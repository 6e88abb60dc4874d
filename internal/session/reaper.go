package session

import (
	"github.com/robfig/cron/v3"
)

// Reaper runs the replay and simulator managers' TTL sweeps on a fixed
// cron schedule, on top of the opportunistic sweep each manager already
// runs from Create/End. A scheduled sweep still matters when a pool
// goes quiet — no Create/End calls means no opportunistic sweep ever
// fires, and idle sessions would otherwise sit until the next request.
type Reaper struct {
	cron      *cron.Cron
	replays   *ReplayManager
	simulators *SimulatorManager
}

// NewReaper wires both managers into a cron schedule expressed in
// standard five-field syntax, e.g. "@every 60s" to match sweepInterval.
func NewReaper(replays *ReplayManager, simulators *SimulatorManager) *Reaper {
	return &Reaper{
		cron:       cron.New(),
		replays:    replays,
		simulators: simulators,
	}
}

// Start schedules the sweep and begins running it in its own goroutine.
// schedule follows cron's standard or "@every" syntax; an invalid
// expression is returned as an error rather than silently ignored.
func (r *Reaper) Start(schedule string) error {
	_, err := r.cron.AddFunc(schedule, func() {
		r.replays.Sweep()
		r.simulators.Sweep()
	})
	if err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts the schedule, waiting for any in-flight sweep to finish.
func (r *Reaper) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}
