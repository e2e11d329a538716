//go:generate mockgen -destination=./mocks/runner.go . Reporter

package runner

import (
	"time"

	"github.com/glorpus-work/suitehooks/pkg/lifecycle"
)

// Test is a named test body run against a fresh instance.
type Test struct {
	Name string
	Body lifecycle.Hook
}

// Result is the outcome of a single test.
type Result struct {
	Class    string
	Test     string
	Err      error
	Duration time.Duration
}

// Passed reports whether the test succeeded.
func (r Result) Passed() bool {
	return r.Err == nil
}

// Summary is the outcome of one class's suite.
type Summary struct {
	Class   string
	Results []Result
	Passed  int
	Failed  int
	// Err is a suite-level failure: a before/after(all) hook or cancellation.
	Err error
}

// OK reports whether every test passed and the suite hooks succeeded.
func (s *Summary) OK() bool {
	return s.Err == nil && s.Failed == 0
}

func (s *Summary) record(res Result) {
	s.Results = append(s.Results, res)
	if res.Passed() {
		s.Passed++
	} else {
		s.Failed++
	}
}

// Reporter receives progress notifications from the runner.
type Reporter interface {
	// SuiteStarted is called before the suite hooks run
	SuiteStarted(class string, tests int)

	// TestFinished is called once per test, including tests that did not run
	TestFinished(result Result)

	// SuiteFinished is called after the after(all) hooks ran
	SuiteFinished(summary *Summary)
}
