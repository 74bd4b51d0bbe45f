// Package config holds the settings shared by the endpoint client and the run orchestrator.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	DefaultBaseURL   = "http://localhost:5000"
	DefaultTimeout   = time.Second * 10
	DefaultCaseDelay = time.Second

	BaseURLEnvVar   = "DIAGNOSIS_BASE_URL"
	TimeoutEnvVar   = "DIAGNOSIS_TIMEOUT"
	CaseDelayEnvVar = "DIAGNOSIS_CASE_DELAY_MS"
	CasesFileEnvVar = "DIAGNOSIS_CASES_FILE"
)

// Config is passed explicitly to the client and the runner; there are no package-level
// mutable defaults.
type Config struct {
	// BaseURL is the address of the diagnosis service, without a trailing slash.
	BaseURL string

	// Timeout bounds every individual HTTP call.
	Timeout time.Duration

	// CaseDelay is the pause between consecutive cases. Zero disables it.
	CaseDelay time.Duration

	// CasesFile, if set, is a JSON or YAML file of cases to use instead of the built-in ones.
	CasesFile string
}

func Default() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		CaseDelay: DefaultCaseDelay,
	}
}

// FromEnvironment returns the defaults overridden by any of the DIAGNOSIS_* variables that
// are set in the process environment.
func FromEnvironment() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup is like FromEnvironment but reads variables through the given function.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	if v, ok := lookup(BaseURLEnvVar); ok && v != "" {
		c.BaseURL = v
	}
	timeoutSeconds, err := optionalIntVar(lookup, TimeoutEnvVar)
	if err != nil {
		return Config{}, err
	}
	if timeoutSeconds.IsDefined() {
		c.Timeout = time.Duration(timeoutSeconds.IntValue()) * time.Second
	}
	delayMS, err := optionalIntVar(lookup, CaseDelayEnvVar)
	if err != nil {
		return Config{}, err
	}
	if delayMS.IsDefined() {
		c.CaseDelay = time.Duration(delayMS.IntValue()) * time.Millisecond
	}
	if v, ok := lookup(CasesFileEnvVar); ok {
		c.CasesFile = v
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that the configuration can be used for a run, and normalizes BaseURL.
func (c *Config) Validate() error {
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base URL must start with http:// or https://, got %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.CaseDelay < 0 {
		return fmt.Errorf("case delay must not be negative, got %s", c.CaseDelay)
	}
	return nil
}

func optionalIntVar(lookup func(string) (string, bool), name string) (ldvalue.OptionalInt, error) {
	v, ok := lookup(name)
	if !ok || strings.TrimSpace(v) == "" {
		return ldvalue.OptionalInt{}, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return ldvalue.OptionalInt{}, fmt.Errorf("%s must be an integer, got %q", name, v)
	}
	return ldvalue.NewOptionalInt(n), nil
}
