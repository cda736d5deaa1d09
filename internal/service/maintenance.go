package service

import (
	"context"
	"fmt"
	"time"

	"alpr_gateway/internal/config"
	"alpr_gateway/internal/logger"

	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single scheduled database job.
const jobTimeout = time.Minute

// HistoryMaintainer is the part of the history service scheduled jobs use.
type HistoryMaintainer interface {
	Dedupe(ctx context.Context, p DedupeParams) (int, error)
	Prune(ctx context.Context, olderThan time.Duration) (int, error)
}

// Maintenance runs history dedupe and retention on cron schedules.
type Maintenance struct {
	history HistoryMaintainer
	log     *logger.Logger
	cron    *cron.Cron

	window    time.Duration
	retention time.Duration
	now       func() time.Time
}

// NewMaintenance registers the jobs enabled in cfg. An empty cron expression
// or a non-positive window/retention disables the matching job.
func NewMaintenance(history HistoryMaintainer, log *logger.Logger, cfg config.HistoryConfig) (*Maintenance, error) {
	m := &Maintenance{
		history:   history,
		log:       log,
		cron:      cron.New(),
		window:    cfg.DedupeWindow,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		now:       time.Now,
	}

	if cfg.DedupeCron != "" && m.window > 0 {
		if _, err := m.cron.AddFunc(cfg.DedupeCron, func() { m.runJob("dedupe", m.RunDedupe) }); err != nil {
			return nil, fmt.Errorf("schedule history dedupe %q: %w", cfg.DedupeCron, err)
		}
	}
	if cfg.RetentionCron != "" && m.retention > 0 {
		if _, err := m.cron.AddFunc(cfg.RetentionCron, func() { m.runJob("retention", m.RunRetention) }); err != nil {
			return nil, fmt.Errorf("schedule history retention %q: %w", cfg.RetentionCron, err)
		}
	}
	return m, nil
}

// Jobs reports how many jobs are scheduled.
func (m *Maintenance) Jobs() int { return len(m.cron.Entries()) }

func (m *Maintenance) Start() {
	m.cron.Start()
	m.log.Infow("maintenance_started", "jobs", m.Jobs())
}

// Stop halts the scheduler and waits for running jobs or ctx, whichever ends first.
func (m *Maintenance) Stop(ctx context.Context) {
	select {
	case <-m.cron.Stop().Done():
	case <-ctx.Done():
	}
	m.log.Infow("maintenance_stopped")
}

// RunDedupe removes repeated detections over the trailing window.
func (m *Maintenance) RunDedupe(ctx context.Context) (int, error) {
	now := m.now()
	return m.history.Dedupe(ctx, DedupeParams{Since: now.Add(-m.window), Until: now})
}

// RunRetention drops history older than the retention period.
func (m *Maintenance) RunRetention(ctx context.Context) (int, error) {
	return m.history.Prune(ctx, m.retention)
}

func (m *Maintenance) runJob(name string, job func(context.Context) (int, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := job(ctx)
	if err != nil {
		m.log.Errorw("maintenance_job_failed", "job", name, "err", err)
		return
	}
	m.log.Debugw("maintenance_job_done", "job", name, "removed", n)
}
