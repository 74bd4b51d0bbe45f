package diagtests

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	passedColor     = color.New(color.FgGreen)
	mismatchedColor = color.New(color.FgYellow)
	failedColor     = color.New(color.FgRed)
	headingColor    = color.New(color.Bold)
)

// StatusColor returns the console color used for a status.
func StatusColor(s Status) *color.Color {
	switch s {
	case StatusPassed:
		return passedColor
	case StatusMismatched:
		return mismatchedColor
	default:
		return failedColor
	}
}

// DescribeResult is a one-line description of what the service answered for a case.
func DescribeResult(o CaseOutcome) string {
	switch o.Status {
	case StatusPassed:
		return fmt.Sprintf("%s (confidence %.3f)", o.Result.Category, o.Result.Confidence)
	case StatusMismatched:
		return fmt.Sprintf("expected %s, got %s (confidence %.3f)",
			o.Case.ExpectedCategory, o.Result.Category, o.Result.Confidence)
	default:
		return fmt.Sprint(o.Err)
	}
}

// PrintSummary writes the final report: one line per case, then the totals for each status.
func PrintSummary(out io.Writer, s RunSummary) {
	headingColor.Fprintln(out, "Summary")
	for _, o := range s.Outcomes {
		fmt.Fprintf(out, "  %s %s: %s\n",
			StatusColor(o.Status).Sprintf("%-10s", o.Status),
			o.Case.ID,
			DescribeResult(o),
		)
	}
	if len(s.Outcomes) > 0 {
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Cases passed: %d/%d (%.1f%%)\n", s.Passed, s.Total, s.Percentage())
	if n := s.Mismatched(); n > 0 {
		mismatchedColor.Fprintf(out, "Cases with an unexpected diagnosis: %d\n", n)
	}
	if n := s.Failed(); n > 0 {
		failedColor.Fprintf(out, "Cases that failed: %d\n", n)
	}
	for _, p := range s.Probes {
		if p.Err != nil {
			mismatchedColor.Fprintf(out, "Probe %q failed (not counted): %s\n", p.Name, p.Err)
		}
	}
	if s.OK() {
		passedColor.Fprintln(out, "All cases passed")
	} else {
		failedColor.Fprintln(out, "Some cases did not pass")
	}
}
