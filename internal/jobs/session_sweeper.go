package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"retail_voice_backend/internal/services"
	"retail_voice_backend/pkg/utils"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Scheduler runs the background jobs of the terminal backend.
type Scheduler struct {
	sched    *cron.Cron
	sessions services.SessionService
	now      func() time.Time
}

// NewScheduler registers the session sweeper under spec, e.g. "@every 1m".
func NewScheduler(sessions services.SessionService, spec string) (*Scheduler, error) {
	s := &Scheduler{
		sched:    cron.New(cron.WithParser(cronParser)),
		sessions: sessions,
		now:      time.Now,
	}
	if _, err := s.sched.AddFunc(spec, s.SweepIdleSessions); err != nil {
		return nil, fmt.Errorf("scheduling session sweeper %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.sched.Stop().Done():
	case <-ctx.Done():
	}
}

// SweepIdleSessions ends sessions that have been idle past their TTL.
func (s *Scheduler) SweepIdleSessions() {
	defer func() {
		if err := recover(); err != nil {
			utils.LogError(fmt.Errorf("%v", err), "Session sweeper panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.sessions.ExpireIdle(ctx, s.now())
	if err != nil {
		utils.LogError(err, "Failed to expire idle sessions")
		return
	}
	if n > 0 {
		utils.LogInfo("Expired idle sessions", map[string]interface{}{"count": n})
	}
}
