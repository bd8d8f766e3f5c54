package session

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"tradedesk/internal/logger"
)

// Sweepable is a store that must be purged of expired sessions.
type Sweepable interface {
	Sweep(now time.Time) int
}

// Sweeper purges expired sessions on a cron schedule.
type Sweeper struct {
	cron *cron.Cron
}

// NewSweeper schedules target.Sweep according to schedule, e.g. "@every 5m".
func NewSweeper(target Sweepable, schedule string) (*Sweeper, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if n := target.Sweep(time.Now()); n > 0 {
			logger.Get().Infow("expired sessions swept", "count", n)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	return &Sweeper{cron: c}, nil
}

// Start runs the schedule in the background.
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}
