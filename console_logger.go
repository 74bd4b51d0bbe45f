package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/launchdarkly/diagnosis-contract-tests/cases"
	"github.com/launchdarkly/diagnosis-contract-tests/diagtests"

	"github.com/fatih/color"
)

// ConsoleCaseLogger prints run progress as it happens.
type ConsoleCaseLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleCaseLogger) ProbeFinished(p diagtests.ProbeResult) {
	if p.Err != nil {
		color.New(color.FgYellow).Fprintf(c.Out, "[probe: %s] WARNING: %s\n", p.Name, p.Err)
		return
	}
	fmt.Fprintf(c.Out, "[probe: %s] %s\n", p.Name, p.Detail)
}

func (c *ConsoleCaseLogger) CaseStarted(tc cases.TestCase, index, total int) {
	fmt.Fprintf(c.Out, "[%d/%d %s]", index+1, total, tc.ID)
	if tc.Description != "" {
		fmt.Fprintf(c.Out, " %s", tc.Description)
	}
	fmt.Fprintln(c.Out)
}

func (c *ConsoleCaseLogger) CaseFinished(o diagtests.CaseOutcome) {
	lines := strings.Split(diagtests.DescribeResult(o), "\n")
	fmt.Fprintf(c.Out, "  %s: %s\n", diagtests.StatusColor(o.Status).Sprint(o.Status), lines[0])
	for _, line := range lines[1:] {
		fmt.Fprintf(c.Out, "    %s\n", line)
	}
	passed := o.Status == diagtests.StatusPassed
	if len(o.DebugOutput) > 0 &&
		((!passed && c.DebugOutputOnFailure) || (passed && c.DebugOutputOnSuccess)) {
		o.DebugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleCaseLogger) CaseSkipped(id string, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "  SKIPPED: %s\n", id)
	} else {
		fmt.Fprintf(c.Out, "  SKIPPED: %s (%s)\n", id, reason)
	}
}
