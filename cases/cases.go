// Package cases provides the labeled symptom profiles that a verification run sends to the
// diagnosis service.
package cases

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// Categories known to the reference service. The harness treats expected categories as opaque
// strings and never validates against this list.
const (
	CategoryNotSick = "NO_ENFERMO"
	CategoryMild    = "ENFERMEDAD_LEVE"
	CategoryAcute   = "ENFERMEDAD_AGUDA"
	CategoryChronic = "ENFERMEDAD_CRONICA"
)

// ErrSourceUnavailable is wrapped by every error returned from a Source that could not supply a
// complete, valid set of cases.
var ErrSourceUnavailable = errors.New("test case source unavailable")

// SymptomProfile maps a symptom name to a severity score, conventionally 0-10.
type SymptomProfile map[string]int

// Clone returns a copy that can be handed out without sharing the underlying map.
func (p SymptomProfile) Clone() SymptomProfile {
	if p == nil {
		return nil
	}
	ret := make(SymptomProfile, len(p))
	for k, v := range p {
		ret[k] = v
	}
	return ret
}

// String formats the profile with keys in sorted order, so log output is stable.
func (p SymptomProfile) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strconv.Itoa(p[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// TestCase is one labeled input. IDs should be unique within a run, but duplicates are not
// detected.
type TestCase struct {
	ID               string
	Description      string
	Symptoms         SymptomProfile
	ExpectedCategory string
}

// Source supplies an ordered sequence of cases.
type Source interface {
	Load() ([]TestCase, error)
}

func cloneAll(cs []TestCase) []TestCase {
	ret := make([]TestCase, 0, len(cs))
	for _, c := range cs {
		c.Symptoms = c.Symptoms.Clone()
		ret = append(ret, c)
	}
	return ret
}
