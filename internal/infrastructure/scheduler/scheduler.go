// Package scheduler runs periodic background jobs on a cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job is one unit of periodic work. Its context is cancelled after the
// job's interval elapses.
type Job func(ctx context.Context) error

type Scheduler struct {
	cron   *cron.Cron
	logger logrus.FieldLogger
}

func New(logger logrus.FieldLogger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger,
	}
}

// Every registers job to run on a fixed interval. Intervals under a second
// are rounded up to one second.
func (s *Scheduler) Every(name string, interval time.Duration, job Job) error {
	secs := max(int(interval.Seconds()), 1)
	timeout := time.Duration(secs) * time.Second
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", secs), func() {
		s.run(name, timeout, job)
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	return nil
}

func (s *Scheduler) run(name string, timeout time.Duration, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	start := time.Now()
	if err := job(ctx); err != nil {
		s.logger.WithError(err).WithField("job", name).Error("scheduled job failed")
		return
	}
	s.logger.WithFields(logrus.Fields{"job": name, "took": time.Since(start)}).Debug("scheduled job done")
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.WithField("jobs", len(s.cron.Entries())).Info("scheduler started")
}

// Stop waits for running jobs or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
	s.logger.Info("scheduler stopped")
}
