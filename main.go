package main

import (
	"fmt"
	"log"
	"os"

	"github.com/launchdarkly/diagnosis-contract-tests/cases"
	"github.com/launchdarkly/diagnosis-contract-tests/client"
	"github.com/launchdarkly/diagnosis-contract-tests/diagtests"
	"github.com/launchdarkly/diagnosis-contract-tests/framework"

	"github.com/fatih/color"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}
	if params.noColor {
		color.NoColor = true
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	var source cases.Source = cases.InlineSource{}
	if params.config.CasesFile != "" {
		source = cases.FileSource{Path: params.config.CasesFile}
	}
	filteredSource := cases.Filtered(source, params.filters.AsFilter)
	testCases, err := filteredSource.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not load test cases: %s\n", err)
		os.Exit(1)
	}

	caseLogger := &ConsoleCaseLogger{
		Out:                  os.Stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	fmt.Printf("Connecting to diagnosis service at %s\n", params.config.BaseURL)
	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)
	for _, id := range filteredSource.Skipped() {
		caseLogger.CaseSkipped(id, "excluded by filter parameters")
	}

	runner := diagtests.NewRunner(
		client.New(params.config, mainDebugLogger),
		diagtests.RunOptions{
			CaseDelay:   params.config.CaseDelay,
			SkipProbes:  params.skipProbes,
			Logger:      caseLogger,
			DebugLogger: mainDebugLogger,
		},
	)
	summary, err := runner.Run(testCases)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Diagnosis service error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	diagtests.PrintSummary(os.Stdout, summary)
	if !summary.OK() {
		fmt.Println()
		fmt.Println("To rerun the cases that did not pass:")
		fmt.Printf("  %s\n", params.reproduceCommand(os.Args[0], summary.NotPassed()))
		os.Exit(summary.ExitCode())
	}
}
