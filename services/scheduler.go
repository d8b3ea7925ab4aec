package services

import (
	"context"
	"fmt"
	"sync"

	cron "github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Fouxth/Bookielocal/report"
)

// Scheduler runs the settlement sweep on a cron spec. Runs never overlap.
type Scheduler struct {
	cron     *cron.Cron
	db       *gorm.DB
	archiver report.Archiver
	running  sync.Mutex
}

func NewScheduler(db *gorm.DB, archiver report.Archiver) *Scheduler {
	return &Scheduler{cron: cron.New(), db: db, archiver: archiver}
}

// Start registers the sweep under spec (standard 5-field or @every/@hourly descriptors)
// and starts the cron loop.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return fmt.Errorf("add settle job %q: %w", spec, err)
	}
	s.cron.Start()
	logrus.WithField("spec", spec).Info("settlement scheduler started")
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sweep() {
	if !s.running.TryLock() {
		logrus.Warn("settlement sweep still running, skipping")
		return
	}
	defer s.running.Unlock()

	n, err := SettlePending(context.Background(), s.db, s.archiver)
	if err != nil {
		logrus.WithError(err).Error("settlement sweep failed")
		return
	}
	if n > 0 {
		logrus.WithField("settled", n).Info("settlement sweep done")
	}
}
