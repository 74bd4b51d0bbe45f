package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/launchdarkly/diagnosis-contract-tests/config"
	"github.com/launchdarkly/diagnosis-contract-tests/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	config     config.Config
	filters    framework.RegexFilters
	skipProbes bool
	debug      bool
	debugAll   bool
	noColor    bool
}

// Read parses the command line. Settings come from flags if given, otherwise from DIAGNOSIS_*
// environment variables, otherwise from the defaults.
func (c *commandParams) Read(args []string) bool {
	cfg, err := config.FromEnvironment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid environment: %s\n", err)
		return false
	}

	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "diagnosis service base URL (or $"+config.BaseURLEnvVar+")")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout for each HTTP request (or $"+config.TimeoutEnvVar+" in seconds)")
	fs.DurationVar(&cfg.CaseDelay, "delay", cfg.CaseDelay, "pause between cases (or $"+config.CaseDelayEnvVar+" in milliseconds)")
	fs.StringVar(&cfg.CasesFile, "cases", cfg.CasesFile, "JSON or YAML file of cases; built-in cases are used if empty (or $"+config.CasesFileEnvVar+")")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select cases to run, by ID")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select cases not to run, by ID")
	fs.BoolVar(&c.skipProbes, "skip-probes", false, "do not query the symptoms, docs, and error handling resources")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for cases that did not pass")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all cases and HTTP requests")
	fs.BoolVar(&c.noColor, "no-color", false, "disable colored output")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
		fs.Usage()
		return false
	}
	c.config = cfg
	return true
}

// reproduceCommand returns a shell command line that reruns only the given cases against the
// same service with the same case file.
func (c *commandParams) reproduceCommand(program string, caseIDs []string) string {
	var b commandBuilder
	b.add(program, "-url", c.config.BaseURL)
	if c.config.CasesFile != "" {
		b.add("-cases", c.config.CasesFile)
	}
	if len(caseIDs) > 0 {
		quoted := make([]string, 0, len(caseIDs))
		for _, id := range caseIDs {
			quoted = append(quoted, regexp.QuoteMeta(id))
		}
		b.add("-run", "^("+strings.Join(quoted, "|")+")$")
	}
	b.add("-debug")
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
