package diagtests

import "github.com/launchdarkly/diagnosis-contract-tests/cases"

// CaseLogger receives progress events from a Runner as the run proceeds.
type CaseLogger interface {
	ProbeFinished(probe ProbeResult)
	CaseStarted(tc cases.TestCase, index, total int)
	CaseFinished(outcome CaseOutcome)
	CaseSkipped(id string, reason string)
}

type nullCaseLogger struct{}

func (n nullCaseLogger) ProbeFinished(ProbeResult)            {}
func (n nullCaseLogger) CaseStarted(cases.TestCase, int, int) {}
func (n nullCaseLogger) CaseFinished(CaseOutcome)             {}
func (n nullCaseLogger) CaseSkipped(string, string)           {}
