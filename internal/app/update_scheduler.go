package app

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const DefaultUpdateSchedule = "@every 2h"

// UpdateScheduler runs UpdateService on a cron schedule.
type UpdateScheduler struct {
	logger   zerolog.Logger
	updates  *UpdateService
	schedule string
}

func NewUpdateScheduler(logger zerolog.Logger, updates *UpdateService, schedule string) *UpdateScheduler {
	if schedule == "" {
		schedule = DefaultUpdateSchedule
	}
	return &UpdateScheduler{logger: logger, updates: updates, schedule: schedule}
}

// Run blocks until ctx is done. Ticks never overlap: a tick still running
// when the next one fires makes the next one a no-op.
func (sch *UpdateScheduler) Run(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(sch.schedule, func() { sch.tick(ctx) }); err != nil {
		return invalidParams("invalid update schedule " + sch.schedule + ": " + err.Error())
	}
	c.Start()
	sch.logger.Info().Str("schedule", sch.schedule).Msg("update scheduler started")

	<-ctx.Done()
	<-c.Stop().Done()
	sch.logger.Info().Msg("update scheduler stopped")
	return nil
}

func (sch *UpdateScheduler) tick(ctx context.Context) {
	if sch.updates == nil {
		return
	}
	results, err := sch.updates.Update(ctx)
	if err != nil {
		sch.logger.Error().Err(err).Msg("scheduled update failed")
		return
	}
	n := 0
	for _, r := range results {
		if r.Updated {
			n++
		}
	}
	sch.logger.Info().Int("checked", len(results)).Int("updated", n).Msg("scheduled update done")
}
