package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/kmax12/gridstatusio/internal/domain"
)

// ReportSaver persists the outcome of a run.
type ReportSaver interface {
	Save(report domain.RunReport) error
}

// Engine executes plans from a registry, one task at a time.
type Engine struct {
	reg    *Registry
	log    *logrus.Logger
	saver  ReportSaver
	dryRun bool
}

// New returns an Engine over reg. saver may be nil, in which case reports
// are not persisted.
func New(reg *Registry, log *logrus.Logger, saver ReportSaver, dryRun bool) *Engine {
	return &Engine{reg: reg, log: log, saver: saver, dryRun: dryRun}
}

// Run executes target and its transitive dependencies in plan order.
//
// The first failing task aborts the run: tasks not yet started are marked
// skipped and the failure is returned alongside the report. In dry-run mode
// the plan is logged and nothing executes.
func (e *Engine) Run(ctx context.Context, target domain.TaskName) (domain.RunReport, error) {
	plan, err := e.reg.Plan(target)
	if err != nil {
		return domain.RunReport{}, err
	}

	report := domain.RunReport{
		RunID:   uuid.NewString(),
		Target:  target,
		Started: time.Now(),
	}
	log := e.log.WithFields(logrus.Fields{"run_id": report.RunID, "target": target})

	if e.dryRun {
		for i, name := range plan {
			t, _ := e.reg.Lookup(name)
			log.WithFields(logrus.Fields{
				"step": i + 1, "of": len(plan), "task": name,
			}).Info("dry-run: " + t.Summary)
			report.Tasks = append(report.Tasks, domain.TaskResult{
				Name: name, State: domain.StateSkipped,
			})
		}
		report.Success = true
		report.Duration = time.Since(report.Started)
		return report, nil
	}

	var failure error
	for _, name := range plan {
		if failure != nil {
			log.WithField("task", name).Warn("skipped, earlier task failed")
			report.Tasks = append(report.Tasks, domain.TaskResult{
				Name: name, State: domain.StateSkipped,
			})
			continue
		}
		t, _ := e.reg.Lookup(name)
		res, err := e.runTask(ctx, log, t)
		report.Tasks = append(report.Tasks, res)
		if err != nil {
			failure = fmt.Errorf("task %s: %w", name, err)
		}
	}

	report.Duration = time.Since(report.Started)
	report.Success = failure == nil
	e.persist(log, report)
	return report, failure
}

func (e *Engine) runTask(ctx context.Context, log *logrus.Entry, t *Task) (domain.TaskResult, error) {
	res := domain.TaskResult{Name: t.Name, State: domain.StateRunning}
	entry := log.WithField("task", t.Name)
	entry.Info("starting")

	start := time.Now()
	err := e.attempt(ctx, entry, t, &res)
	res.Duration = time.Since(start)

	if err != nil {
		res.State = domain.StateFailed
		res.ExitCode = domain.ExitCodeOf(err)
		res.Err = err.Error()
		entry.WithFields(logrus.Fields{
			"attempts": res.Attempts,
			"duration": res.Duration.Round(time.Millisecond),
		}).WithError(err).Error("failed")
		return res, err
	}

	res.State = domain.StateSucceeded
	entry.WithFields(logrus.Fields{
		"attempts": res.Attempts,
		"duration": res.Duration.Round(time.Millisecond),
	}).Info("succeeded")
	return res, nil
}

// attempt executes t once, or up to 1+Retries times under a retry policy.
// Attempts are paced at most one start per Delay.
func (e *Engine) attempt(ctx context.Context, entry *logrus.Entry, t *Task, res *domain.TaskResult) error {
	attempts := 1
	var limiter *rate.Limiter
	if t.Retry != nil {
		attempts += t.Retry.Retries
		limiter = rate.NewLimiter(rate.Every(t.Retry.Delay), 1)
	}

	var err error
	for n := 1; n <= attempts; n++ {
		if limiter != nil {
			if werr := limiter.Wait(ctx); werr != nil {
				return werr
			}
		}
		res.Attempts = n
		if n > 1 {
			entry.WithField("attempt", n).Warn("retrying after failure")
		}
		if err = t.Run(ctx); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}

func (e *Engine) persist(log *logrus.Entry, report domain.RunReport) {
	if e.saver == nil {
		return
	}
	if err := e.saver.Save(report); err != nil {
		log.WithError(err).Warn("could not save run report")
	}
}
