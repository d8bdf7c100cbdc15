package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultTopic is used by non-interactive runs when nothing is selected.
const DefaultTopic = "TRENDING"

// ApplyInput applies a comma-separated selection string such as
// "1,3,Python,machine learning". Numbers are 1-based catalog indexes, "all"
// selects every preset, anything else is added as a custom topic.
// Entries that cannot be applied are returned as errors; the rest still apply.
func (s *Selection) ApplyInput(input string) []error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	if strings.EqualFold(input, "all") {
		s.SelectAll()
		return nil
	}

	var errs []error
	for _, entry := range strings.Split(input, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if n, err := strconv.Atoi(entry); err == nil {
			if n < 1 || n > len(PresetTopics) {
				errs = append(errs, fmt.Errorf("invalid number %d (must be 1-%d)", n, len(PresetTopics)))
				continue
			}
			topic := PresetTopics[n-1]
			if !s.presets.has(topic) {
				s.presets.add(topic)
			}
			continue
		}

		if _, err := s.AddCustom(entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// ApplyRegions replaces the region selection with the given comma-separated
// codes. Unknown codes are returned as errors; if no code is valid the
// current regions are kept.
func (s *Selection) ApplyRegions(input string) []error {
	var errs []error
	var valid []Region
	for _, code := range strings.Split(input, ",") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		r, ok := LookupRegion(code)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownRegion, code))
			continue
		}
		valid = append(valid, r)
	}

	if len(valid) == 0 {
		return errs
	}
	s.regions = make(map[string]Region, len(valid))
	s.regionOrder = nil
	for _, r := range valid {
		s.addRegion(r)
	}
	return errs
}
