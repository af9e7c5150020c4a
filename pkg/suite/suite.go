// Package suite runs named test cases against fresh browser sessions
// and feeds their outcomes into the report aggregator.
package suite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ChandanKT-git/QA-Janitri/pkg/config"
	"github.com/ChandanKT-git/QA-Janitri/pkg/interact"
	"github.com/ChandanKT-git/QA-Janitri/pkg/report"
	"github.com/ChandanKT-git/QA-Janitri/pkg/session"
)

// ErrSkip marks a case as skipped rather than failed.
var ErrSkip = errors.New("case skipped")

// Skip wraps a reason into a skip error.
func Skip(reason string) error {
	return fmt.Errorf("%w: %s", ErrSkip, reason)
}

// Env is what a running case gets to work with. Each case receives an
// isolated session.
type Env struct {
	Session *session.Session
	Toolkit *interact.Toolkit
	Config  *config.Store
	Log     *slog.Logger
}

// Case is one named scenario.
type Case struct {
	Name string
	// SessionOptions tunes the browser launched for this case.
	SessionOptions session.Options
	Run            func(ctx context.Context, env *Env) error
}

// Runner executes cases and records outcomes.
type Runner struct {
	factory *session.Factory
	cfg     *config.Store
	agg     *report.Aggregator
	log     *slog.Logger

	// Parallel bounds concurrently running cases. Values below 1 mean
	// sequential execution.
	Parallel int
}

// NewRunner wires a runner over shared infrastructure.
func NewRunner(factory *session.Factory, cfg *config.Store, agg *report.Aggregator, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{factory: factory, cfg: cfg, agg: agg, log: log, Parallel: 1}
}

// Run executes every case, bounded by Parallel workers. It always
// drains the full list; individual failures are recorded, not
// propagated. The returned error reports only infrastructure trouble
// with the run itself.
func (r *Runner) Run(ctx context.Context, cases []Case) error {
	workers := r.Parallel
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan Case)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				r.runOne(ctx, c)
			}
		}()
	}

	for _, c := range cases {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- c:
		}
	}
	close(jobs)
	wg.Wait()
	return nil
}

// runOne executes a single case in its own session and records the
// outcome. Panics inside a case fail the case, not the run.
func (r *Runner) runOne(ctx context.Context, c Case) {
	start := time.Now()

	sess, err := r.factory.New(c.SessionOptions)
	if err != nil {
		r.agg.Record(c.Name, report.StatusFailed, time.Since(start), start, "", fmt.Sprintf("session: %v", err))
		return
	}
	defer sess.Close()

	env := &Env{
		Session: sess,
		Toolkit: interact.New(sess, r.cfg, r.log),
		Config:  r.cfg,
		Log:     r.log.With("case", c.Name),
	}

	err = r.invoke(ctx, c, env)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		r.agg.Record(c.Name, report.StatusPassed, elapsed, start, "", "")
	case errors.Is(err, ErrSkip):
		r.agg.Record(c.Name, report.StatusSkipped, elapsed, start, "", err.Error())
	default:
		screenshot := ""
		if r.cfg.ScreenshotOnFailure() {
			if path, shotErr := env.Toolkit.TakeScreenshot(c.Name); shotErr == nil {
				screenshot = path
			} else {
				r.log.Warn("failure screenshot failed", "case", c.Name, "error", shotErr)
			}
		}
		r.agg.Record(c.Name, report.StatusFailed, elapsed, start, screenshot, err.Error())
	}
}

func (r *Runner) invoke(ctx context.Context, c Case, env *Env) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return c.Run(ctx, env)
}
