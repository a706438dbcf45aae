package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron"
	"github.com/sirupsen/logrus"

	"org-alerts/internal/domain"
	"org-alerts/internal/service/reminder"
)

const passTimeout = time.Minute

// Scheduler triggers reminder passes on a cron spec. Specs take a seconds
// field ("0 */5 * * * *") or a descriptor ("@every 5m").
type Scheduler struct {
	cron   *cron.Cron
	engine reminder.Service
	log    *logrus.Logger
	now    func() time.Time
}

func New(spec string, engine reminder.Service, loc *time.Location, log *logrus.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}

	s := &Scheduler{
		cron:   cron.NewWithLocation(loc),
		engine: engine,
		log:    log,
		now:    time.Now,
	}

	if err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("reminder scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("reminder scheduler stopped")
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), passTimeout)
	defer cancel()

	issued, err := s.engine.Run(ctx, s.now())
	switch {
	case errors.Is(err, domain.ErrPassInProgress):
		s.log.Debug("reminder pass skipped, another pass holds the lease")
	case err != nil:
		s.log.WithError(err).Error("scheduled reminder pass failed")
	default:
		s.log.WithField("issued", len(issued)).Debug("scheduled reminder pass done")
	}
}
