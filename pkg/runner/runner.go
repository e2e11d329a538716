// Package runner drives the lifecycle of a test-case class: suite hooks once,
// then setup, body and teardown for every test on a fresh instance.
package runner

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/glorpus-work/suitehooks/pkg/errors"
	"github.com/glorpus-work/suitehooks/pkg/lifecycle"
)

// Runner executes suites and reports through a Reporter.
type Runner struct {
	Reporter Reporter
}

// New creates a runner. A nil reporter logs through the package logger.
func New(reporter Reporter) *Runner {
	if reporter == nil {
		reporter = LogReporter{}
	}
	return &Runner{Reporter: reporter}
}

// Run executes tests for class. before(all) hooks run once on a shared
// instance; their published fields are replayed onto each test's instance.
// after(all) hooks run once at the end, even when the context was cancelled.
// The returned error is the suite-level failure, if any; test failures are
// only recorded in the summary.
func (r *Runner) Run(ctx context.Context, class *lifecycle.Class, tests []Test) (*Summary, error) {
	summary := &Summary{Class: class.Name()}
	r.Reporter.SuiteStarted(class.Name(), len(tests))
	defer r.Reporter.SuiteFinished(summary)

	shared := class.NewInstance()
	values, err := shared.RunAllCallbacks(lifecycle.Before)
	if err != nil {
		summary.Err = err
		r.skip(summary, tests, err)
		return summary, err
	}

	for i, test := range tests {
		if ctxErr := ctx.Err(); ctxErr != nil {
			summary.Err = ctxErr
			r.skip(summary, tests[i:], ctxErr)
			break
		}
		res := r.runTest(class, test, values)
		summary.record(res)
		r.Reporter.TestFinished(res)
	}

	if _, err := shared.RunAllCallbacks(lifecycle.After); err != nil {
		summary.Err = stderrors.Join(summary.Err, err)
	}

	return summary, summary.Err
}

func (r *Runner) runTest(class *lifecycle.Class, test Test, values lifecycle.Values) Result {
	start := time.Now()
	inst := class.NewInstance()
	inst.SetValuesFromCallbacks(values)

	var errs []error
	if err := protect(inst.Setup); err != nil {
		errs = append(errs, errors.Wrap(err, "setup"))
	} else if test.Body != nil {
		if err := protect(func() error { return test.Body(inst) }); err != nil {
			errs = append(errs, err)
		}
	}
	if err := protect(inst.Teardown); err != nil {
		errs = append(errs, errors.Wrap(err, "teardown"))
	}

	return Result{
		Class:    class.Name(),
		Test:     test.Name,
		Err:      stderrors.Join(errs...),
		Duration: time.Since(start),
	}
}

func (r *Runner) skip(summary *Summary, tests []Test, cause error) {
	for _, test := range tests {
		res := Result{
			Class: summary.Class,
			Test:  test.Name,
			Err:   fmt.Errorf("%w: %w", errors.ErrNotRun, cause),
		}
		summary.record(res)
		r.Reporter.TestFinished(res)
	}
}

// protect turns a panic in fn into an error so teardown still runs.
func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.FromPanic(r)
		}
	}()
	return fn()
}
