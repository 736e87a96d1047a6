package minio

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"
	"go.uber.org/zap"
)

type tmpCleaner interface {
	DeleteTmpFilesOlderThan(ctx context.Context, maxAge time.Duration) error
}

// Janitor removes abandoned tmp uploads on a cron schedule.
type Janitor struct {
	cleaner  tmpCleaner
	cronExpr string
	maxAge   time.Duration
	logger   *zap.SugaredLogger
}

func NewJanitor(cleaner tmpCleaner, cronExpr string, maxAge time.Duration, logger *zap.Logger) (*Janitor, error) {
	if !gronx.IsValid(cronExpr) {
		return nil, fmt.Errorf("invalid upload cleanup cron expression: %q", cronExpr)
	}
	return &Janitor{
		cleaner:  cleaner,
		cronExpr: cronExpr,
		maxAge:   maxAge,
		logger:   logger.Sugar(),
	}, nil
}

// NextRun is the first tick strictly after now.
func (j *Janitor) NextRun(now time.Time) (time.Time, error) {
	return gronx.NextTickAfter(j.cronExpr, now, false)
}

func (j *Janitor) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()
	if err := j.cleaner.DeleteTmpFilesOlderThan(ctx, j.maxAge); err != nil {
		j.logger.Warnw("Failed to cleanup old tmp files", "error", err)
	}
}

// Run blocks until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	j.logger.Infow("Upload janitor started", "cron", j.cronExpr, "max_age", j.maxAge.String())
	for {
		next, err := j.NextRun(time.Now())
		if err != nil {
			j.logger.Errorw("Failed to compute next janitor run", "cron", j.cronExpr, "error", err)
			next = time.Now().Add(time.Minute)
		}

		select {
		case <-ctx.Done():
			j.logger.Info("Upload janitor stopped")
			return
		case <-time.After(time.Until(next)):
			j.RunOnce(ctx)
		}
	}
}
