package diagtests

import (
	"errors"
	"fmt"
	"time"

	"github.com/launchdarkly/diagnosis-contract-tests/cases"
	"github.com/launchdarkly/diagnosis-contract-tests/client"
	"github.com/launchdarkly/diagnosis-contract-tests/framework"
)

// ErrServiceUnavailable is wrapped by the error Run returns when the health check fails.
var ErrServiceUnavailable = errors.New("diagnosis service is not available")

// Service is everything the Runner needs from the diagnosis service. *client.Client implements it.
type Service interface {
	Predictor
	Health() (client.HealthStatus, error)
	ListSymptoms() (int, error)
	Documentation() (client.DocsInfo, error)
	CheckErrorHandling() error
}

// caseScopedService is implemented by services that can log the traffic of a single case
// separately. *client.Client implements it.
type caseScopedService interface {
	WithLogger(framework.Logger) *client.Client
}

// RunOptions controls the pacing and reporting of a run.
type RunOptions struct {
	// CaseDelay is slept between consecutive cases, as a courtesy to the service. It is not
	// needed for correctness.
	CaseDelay time.Duration

	// SkipProbes disables the informational probes that follow the health check.
	SkipProbes bool

	// Logger receives progress events. It may be nil.
	Logger CaseLogger

	// DebugLogger receives run-level debug output. It may be nil.
	DebugLogger framework.Logger
}

// Runner drives a single verification run: health gate, probes, then every case in order on
// the calling goroutine.
type Runner struct {
	service Service
	opts    RunOptions
	sleep   func(time.Duration)
}

func NewRunner(service Service, opts RunOptions) *Runner {
	if opts.Logger == nil {
		opts.Logger = nullCaseLogger{}
	}
	if opts.DebugLogger == nil {
		opts.DebugLogger = framework.NullLogger()
	}
	return &Runner{service: service, opts: opts, sleep: time.Sleep}
}

// Run executes the cases and returns the summary.
//
// If the health check fails, no case is attempted and the returned error wraps
// ErrServiceUnavailable. Otherwise the error is nil, regardless of how the cases turned out;
// use RunSummary.ExitCode to decide whether the run succeeded.
func (r *Runner) Run(testCases []cases.TestCase) (RunSummary, error) {
	var summary RunSummary

	var health client.HealthStatus
	var err error
	if panicErr := framework.Guard(func() { health, err = r.service.Health() }); panicErr != nil {
		err = panicErr
	}
	if err != nil {
		r.opts.DebugLogger.Printf("Health check failed: %s", err)
		summary.Aborted = true
		return summary, fmt.Errorf("%w: %s", ErrServiceUnavailable, err)
	}
	r.opts.DebugLogger.Printf("Health check succeeded: %s", health.Status)
	summary.HealthStatus = health.Status

	if !r.opts.SkipProbes {
		summary.Probes = r.runProbes()
	}

	for i, tc := range testCases {
		if i > 0 && r.opts.CaseDelay > 0 {
			r.sleep(r.opts.CaseDelay)
		}
		r.opts.Logger.CaseStarted(tc, i, len(testCases))
		outcome := r.runCase(tc)
		r.opts.Logger.CaseFinished(outcome)
		summary.add(outcome)
	}
	return summary, nil
}

func (r *Runner) runProbes() []ProbeResult {
	probes := []struct {
		name   string
		action func() (string, error)
	}{
		{"available symptoms", func() (string, error) {
			n, err := r.service.ListSymptoms()
			return fmt.Sprintf("%d symptoms", n), err
		}},
		{"API documentation", func() (string, error) {
			docs, err := r.service.Documentation()
			return docs.Title, err
		}},
		{"error handling", func() (string, error) {
			return "empty request and unknown route rejected", r.service.CheckErrorHandling()
		}},
	}

	ret := make([]ProbeResult, 0, len(probes))
	for _, p := range probes {
		var result ProbeResult
		if err := framework.Guard(func() {
			detail, err := p.action()
			result = ProbeResult{Name: p.name, Detail: detail, Err: err}
		}); err != nil {
			result = ProbeResult{Name: p.name, Err: err}
		}
		if result.Err != nil {
			result.Detail = ""
			r.opts.DebugLogger.Printf("Probe %q failed: %s", p.name, result.Err)
		}
		r.opts.Logger.ProbeFinished(result)
		ret = append(ret, result)
	}
	return ret
}

func (r *Runner) runCase(tc cases.TestCase) CaseOutcome {
	var debugLogger framework.CapturingLogger
	debugLogger.Printf("Sending symptoms %s, expecting %s", tc.Symptoms, tc.ExpectedCategory)

	var predictor Predictor = r.service
	if s, ok := r.service.(caseScopedService); ok {
		predictor = s.WithLogger(&debugLogger)
	}

	startTime := time.Now()
	var outcome CaseOutcome
	if err := framework.Guard(func() { outcome = Evaluate(tc, predictor) }); err != nil {
		outcome = CaseOutcome{Case: tc, Status: StatusFailed, Err: err}
	}
	outcome.Elapsed = time.Since(startTime)

	switch outcome.Status {
	case StatusPassed:
		debugLogger.Printf("Got %s (confidence %.3f) as expected", outcome.Result.Category, outcome.Result.Confidence)
	case StatusMismatched:
		debugLogger.Printf("Expected %s but got %s (confidence %.3f)",
			tc.ExpectedCategory, outcome.Result.Category, outcome.Result.Confidence)
	default:
		debugLogger.Printf("Request failed: %s", outcome.Err)
	}
	outcome.DebugOutput = debugLogger.Output()
	return outcome
}
