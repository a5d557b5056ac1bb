package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
	"github.com/robfig/cron/v3"
)

// OverdueMarker flags pending installments whose due date has passed.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

// Scheduler runs the periodic ledger maintenance jobs.
type Scheduler struct {
	cron     *cron.Cron
	overdue  OverdueMarker
	schedule string
	timeout  time.Duration
	now      func() time.Time
}

func NewScheduler(overdue OverdueMarker, schedule string) *Scheduler {
	logs := cronLogger{}
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.Recover(logs), cron.SkipIfStillRunning(logs)), cron.WithLogger(logs)),
		overdue:  overdue,
		schedule: schedule,
		timeout:  5 * time.Minute,
		now:      time.Now,
	}
}

// Start registers the jobs and starts the cron loop. An invalid schedule is
// returned so the caller can refuse to boot.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.MarkOverdueInstallments); err != nil {
		logger.Error("failed to schedule overdue installment job", err, logger.Fields{"schedule": s.schedule})
		return fmt.Errorf("schedule overdue job: %w", err)
	}
	logger.Info("scheduled overdue installment job", logger.Fields{"schedule": s.schedule})

	s.cron.Start()
	return nil
}

// Stop halts the cron loop; the returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// MarkOverdueInstallments flags every pending installment due before today.
func (s *Scheduler) MarkOverdueInstallments() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	asOf := s.now()
	count, err := s.overdue.MarkOverdue(ctx, asOf)
	if err != nil {
		logger.Error("overdue installment job failed", err, logger.Fields{"asOf": asOf.Format(time.DateOnly)})
		return
	}

	logger.Info("overdue installment job completed", logger.Fields{
		"asOf":   asOf.Format(time.DateOnly),
		"marked": count,
	})
}

// cronLogger routes cron's internal logging through the service logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logger.Info("cron "+msg, pairs(keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logger.Error("cron "+msg, err, pairs(keysAndValues))
}

func pairs(keysAndValues []any) logger.Fields {
	fields := logger.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
