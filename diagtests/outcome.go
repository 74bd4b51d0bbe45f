package diagtests

import (
	"time"

	"github.com/launchdarkly/diagnosis-contract-tests/cases"
	"github.com/launchdarkly/diagnosis-contract-tests/client"
	"github.com/launchdarkly/diagnosis-contract-tests/framework"
)

// Status classifies the result of running one case.
type Status string

const (
	// StatusPassed means the service answered and its category equals the expected one.
	StatusPassed Status = "PASSED"

	// StatusMismatched means the service answered, but with a different category. The call
	// itself worked, so this is only a warning for the case, but it does not count as a pass.
	StatusMismatched Status = "MISMATCHED"

	// StatusFailed means no usable answer: transport error, non-200 status, or a panic while
	// evaluating the case.
	StatusFailed Status = "FAILED"
)

// CaseOutcome is the classified result of one case. Result is nil if Status is StatusFailed,
// in which case Err describes what went wrong.
type CaseOutcome struct {
	Case        cases.TestCase
	Status      Status
	Result      *client.PredictionResult
	Err         error
	Elapsed     time.Duration
	DebugOutput framework.CapturedOutput
}

// ProbeResult records one informational call made before the cases. Probes never gate the run.
type ProbeResult struct {
	Name   string
	Detail string
	Err    error
}

// RunSummary is the aggregate result of a run. Outcomes are in source order. Aborted is set if
// the health check failed, in which case no case was attempted.
type RunSummary struct {
	Aborted      bool
	HealthStatus string
	Probes       []ProbeResult
	Total        int
	Passed       int
	Outcomes     []CaseOutcome
}

func (s *RunSummary) add(o CaseOutcome) {
	s.Outcomes = append(s.Outcomes, o)
	s.Total++
	if o.Status == StatusPassed {
		s.Passed++
	}
}

func (s RunSummary) count(status Status) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

func (s RunSummary) Mismatched() int { return s.count(StatusMismatched) }

func (s RunSummary) Failed() int { return s.count(StatusFailed) }

// OK is true if every case passed. A run with no cases is OK, unless it was aborted.
func (s RunSummary) OK() bool {
	return !s.Aborted && s.Passed == s.Total
}

// Percentage is the share of cases that passed. It is 100 for an empty run, consistent with OK.
func (s RunSummary) Percentage() float64 {
	if s.Total == 0 {
		return 100
	}
	return float64(s.Passed) * 100 / float64(s.Total)
}

// ExitCode is 0 if every case passed and 1 otherwise.
func (s RunSummary) ExitCode() int {
	if s.OK() {
		return 0
	}
	return 1
}

// NotPassed returns the IDs of every case that did not pass, in source order.
func (s RunSummary) NotPassed() []string {
	var ret []string
	for _, o := range s.Outcomes {
		if o.Status != StatusPassed {
			ret = append(ret, o.Case.ID)
		}
	}
	return ret
}
