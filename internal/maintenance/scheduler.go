// Package maintenance runs the background jobs that keep reservation data
// tidy, on a gocron scheduler. The engine itself stays read-only; writes
// happen here, through the store.
package maintenance

import (
	"errors"
	"strings"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyJobName  = errors.New("job name is required")
	ErrEmptyCronExpr = errors.New("cron expression is required")
)

// Scheduler wraps a gocron scheduler. Construct one in main and stop it on
// shutdown; there is no package-level singleton.
type Scheduler struct {
	scheduler gocron.Scheduler
}

func NewScheduler() (*Scheduler, error) {
	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					log.Error().
						Str("job_id", jobID.String()).
						Str("job_name", jobName).
						Interface("panic", recoverData).
						Msg("Maintenance job panicked")
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Scheduler{scheduler: sched}, nil
}

// AddJob registers a cron-based job. The expression is validated up front so
// a bad config line fails at startup, not at first trigger.
func (s *Scheduler) AddJob(name, cronExpr string, task func()) (gocron.Job, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyJobName
	}
	if strings.TrimSpace(cronExpr) == "" {
		return nil, ErrEmptyCronExpr
	}
	if err := ValidateCronExpr(cronExpr); err != nil {
		return nil, err
	}

	jobLogger := log.With().Str("job_name", name).Str("cron", cronExpr).Logger()
	jobLogger.Info().Msg("Registering maintenance job")

	wrappedTask := func() {
		jobLogger.Debug().Msg("Maintenance job started")
		task()
		jobLogger.Debug().Msg("Maintenance job completed")
	}

	job, err := s.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(wrappedTask),
		gocron.WithName(name),
	)
	if err != nil {
		jobLogger.Error().Err(err).Msg("Failed to register maintenance job")
		return nil, err
	}
	return job, nil
}

// ValidateCronExpr checks a standard five-field cron expression.
func ValidateCronExpr(cronExpr string) error {
	_, err := cron.ParseStandard(cronExpr)
	return err
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	log.Info().Msg("Maintenance scheduler starting")
	s.scheduler.Start()
}

// Stop shuts down the scheduler and prevents new jobs from running.
func (s *Scheduler) Stop() error {
	log.Info().Msg("Maintenance scheduler stopping")
	return s.scheduler.Shutdown()
}
