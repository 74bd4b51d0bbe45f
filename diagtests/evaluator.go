package diagtests

import (
	"github.com/launchdarkly/diagnosis-contract-tests/cases"
	"github.com/launchdarkly/diagnosis-contract-tests/client"
)

// Predictor is the part of the client that the evaluator needs.
type Predictor interface {
	Predict(profile cases.SymptomProfile) (client.PredictionResult, error)
}

// Evaluate sends one case to the service and classifies the answer. Categories are compared
// exactly, so "enfermedad_leve" does not match "ENFERMEDAD_LEVE".
func Evaluate(tc cases.TestCase, p Predictor) CaseOutcome {
	result, err := p.Predict(tc.Symptoms)
	if err != nil {
		return CaseOutcome{Case: tc, Status: StatusFailed, Err: err}
	}
	status := StatusMismatched
	if result.Category == tc.ExpectedCategory {
		status = StatusPassed
	}
	return CaseOutcome{Case: tc, Status: status, Result: &result}
}
