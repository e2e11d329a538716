package runner

import (
	"github.com/glorpus-work/suitehooks/internal/logger"
)

// LogReporter reports progress through the structured logger.
type LogReporter struct{}

// SuiteStarted logs the start of a suite.
func (LogReporter) SuiteStarted(class string, tests int) {
	logger.Info("Suite started", logger.Fields{"class": class, "tests": tests})
}

// TestFinished logs a test outcome.
func (LogReporter) TestFinished(result Result) {
	fields := logger.Fields{
		"class":    result.Class,
		"test":     result.Test,
		"duration": result.Duration.String(),
	}
	if result.Err != nil {
		fields["error"] = result.Err.Error()
		logger.Error("Test failed", fields)
		return
	}
	logger.Debug("Test passed", fields)
}

// SuiteFinished logs the suite outcome.
func (LogReporter) SuiteFinished(summary *Summary) {
	fields := logger.Fields{
		"class":  summary.Class,
		"passed": summary.Passed,
		"failed": summary.Failed,
	}
	if summary.OK() {
		logger.Success("Suite passed", fields)
		return
	}
	if summary.Err != nil {
		fields["error"] = summary.Err.Error()
	}
	logger.Error("Suite failed", fields)
}
