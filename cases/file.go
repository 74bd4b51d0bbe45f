package cases

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultCasesKey is the top-level property that holds the array of cases in a case file.
const DefaultCasesKey = "sample_cases"

// FileSource reads cases from a JSON document, or a YAML document if the file extension is
// .yaml or .yml. The document must have a top-level array under Key (DefaultCasesKey if empty).
//
// Every entry must have an identifier (case_id, or id or name as a fallback), a symptoms
// object, and an expected_diagnosis. If any entry is incomplete the whole load fails; running
// a silently truncated suite would be worse than not running at all.
type FileSource struct {
	Path string
	Key  string
}

type fileCase struct {
	CaseID            string         `json:"case_id" yaml:"case_id"`
	ID                string         `json:"id" yaml:"id"`
	Name              string         `json:"name" yaml:"name"`
	Description       string         `json:"description" yaml:"description"`
	Symptoms          SymptomProfile `json:"symptoms" yaml:"symptoms"`
	ExpectedDiagnosis string         `json:"expected_diagnosis" yaml:"expected_diagnosis"`
}

func (s FileSource) Load() ([]TestCase, error) {
	key := s.Key
	if key == "" {
		key = DefaultCasesKey
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, s.fail("%s", err)
	}

	var entries []fileCase
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		entries, err = decodeYAML(data, key)
	default:
		entries, err = decodeJSON(data, key)
	}
	if err != nil {
		return nil, s.fail("%s", err)
	}

	ret := make([]TestCase, 0, len(entries))
	for i, e := range entries {
		tc, err := e.toTestCase()
		if err != nil {
			return nil, s.fail("entry %d: %s", i, err)
		}
		ret = append(ret, tc)
	}
	return ret, nil
}

func (s FileSource) fail(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrSourceUnavailable, s.Path, fmt.Sprintf(format, args...))
}

func decodeJSON(data []byte, key string) ([]fileCase, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}
	raw, ok := doc[key]
	if !ok {
		return nil, fmt.Errorf("missing top-level %q property", key)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, fmt.Errorf("malformed %q property: not an array", key)
	}
	var entries []fileCase
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("malformed %q property: %w", key, err)
	}
	return entries, nil
}

func decodeYAML(data []byte, key string) ([]fileCase, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed YAML: %w", err)
	}
	node, ok := doc[key]
	if !ok {
		return nil, fmt.Errorf("missing top-level %q property", key)
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("malformed %q property: not an array", key)
	}
	var entries []fileCase
	if err := node.Decode(&entries); err != nil {
		return nil, fmt.Errorf("malformed %q property: %w", key, err)
	}
	return entries, nil
}

func (e fileCase) toTestCase() (TestCase, error) {
	id := e.CaseID
	if id == "" {
		id = e.ID
	}
	if id == "" {
		id = e.Name
	}
	if id == "" {
		return TestCase{}, fmt.Errorf("missing case_id")
	}
	if e.Symptoms == nil {
		return TestCase{}, fmt.Errorf("case %q is missing symptoms", id)
	}
	if e.ExpectedDiagnosis == "" {
		return TestCase{}, fmt.Errorf("case %q is missing expected_diagnosis", id)
	}
	return TestCase{
		ID:               id,
		Description:      e.Description,
		Symptoms:         e.Symptoms,
		ExpectedCategory: e.ExpectedDiagnosis,
	}, nil
}
