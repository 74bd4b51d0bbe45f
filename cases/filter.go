package cases

import "github.com/launchdarkly/diagnosis-contract-tests/framework"

// FilteredSource wraps another Source and drops the cases whose IDs are rejected by Filter.
// The IDs of the dropped cases are available from Skipped after Load.
type FilteredSource struct {
	Source  Source
	Filter  framework.Filter
	skipped []string
}

func Filtered(source Source, filter framework.Filter) *FilteredSource {
	return &FilteredSource{Source: source, Filter: filter}
}

func (s *FilteredSource) Load() ([]TestCase, error) {
	all, err := s.Source.Load()
	if err != nil {
		return nil, err
	}
	s.skipped = nil
	if s.Filter == nil {
		return all, nil
	}
	ret := make([]TestCase, 0, len(all))
	for _, c := range all {
		if s.Filter(c.ID) {
			ret = append(ret, c)
		} else {
			s.skipped = append(s.skipped, c.ID)
		}
	}
	return ret, nil
}

// Skipped returns the IDs excluded by the most recent Load, in source order.
func (s *FilteredSource) Skipped() []string {
	return append([]string(nil), s.skipped...)
}
