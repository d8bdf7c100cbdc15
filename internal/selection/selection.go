package selection

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLastRegion is returned when removing the only selected region.
	ErrLastRegion = errors.New("at least one region must stay selected")

	// ErrEmptyTopic is returned for blank custom topics.
	ErrEmptyTopic = errors.New("topic is empty")

	// ErrDuplicateTopic is returned when a custom topic is already selected.
	ErrDuplicateTopic = errors.New("topic already selected")

	// ErrUnknownTopic is returned when toggling a topic outside the catalog.
	ErrUnknownTopic = errors.New("unknown preset topic")

	// ErrUnknownRegion is returned for region codes outside the catalog.
	ErrUnknownRegion = errors.New("unknown region")
)

// orderedSet is a string set that remembers insertion order.
type orderedSet struct {
	order []string
	index map[string]bool
}

func newOrderedSet() orderedSet {
	return orderedSet{index: make(map[string]bool)}
}

func (s *orderedSet) has(v string) bool { return s.index[v] }

func (s *orderedSet) add(v string) bool {
	if s.index[v] {
		return false
	}
	s.index[v] = true
	s.order = append(s.order, v)
	return true
}

func (s *orderedSet) remove(v string) bool {
	if !s.index[v] {
		return false
	}
	delete(s.index, v)
	for i, o := range s.order {
		if o == v {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *orderedSet) clear() {
	s.order = nil
	s.index = make(map[string]bool)
}

func (s *orderedSet) values() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Selection is the user's current choice of topics and regions.
// Not safe for concurrent use; it is owned by a single control flow.
type Selection struct {
	presets orderedSet
	custom  orderedSet

	regions     map[string]Region
	regionOrder []string
}

// New creates a Selection with the given initial region.
func New(initial Region) *Selection {
	s := &Selection{
		presets: newOrderedSet(),
		custom:  newOrderedSet(),
		regions: make(map[string]Region),
	}
	s.regions[initial.Code] = initial
	s.regionOrder = []string{initial.Code}
	return s
}

// NewWithRegions creates a Selection from region codes, falling back to
// Worldwide when none of the codes is in the catalog.
func NewWithRegions(codes []string) *Selection {
	s := New(Worldwide)
	added := 0
	for _, code := range codes {
		r, ok := LookupRegion(code)
		if !ok {
			continue
		}
		if added == 0 {
			s.regions = map[string]Region{r.Code: r}
			s.regionOrder = []string{r.Code}
		} else {
			s.addRegion(r)
		}
		added++
	}
	return s
}

// TogglePreset selects or deselects a catalog topic.
// Returns whether the topic is selected afterwards.
func (s *Selection) TogglePreset(topic string) (bool, error) {
	if !IsPreset(topic) {
		return false, fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
	}
	if s.presets.remove(topic) {
		return false, nil
	}
	s.presets.add(topic)
	return true, nil
}

// IsPresetSelected reports whether a catalog topic is selected.
func (s *Selection) IsPresetSelected(topic string) bool {
	return s.presets.has(topic)
}

// SelectAll selects every catalog topic, keeping existing selection order first.
func (s *Selection) SelectAll() {
	for _, p := range PresetTopics {
		s.presets.add(p)
	}
}

// AddCustom adds a user-entered topic, normalized to uppercase.
// A topic matching a catalog entry selects that preset instead, so custom
// topics never overlap presets. Returns the normalized topic.
func (s *Selection) AddCustom(raw string) (string, error) {
	topic := strings.ToUpper(strings.TrimSpace(raw))
	if topic == "" {
		return "", ErrEmptyTopic
	}
	if s.custom.has(topic) || s.presets.has(topic) {
		return topic, fmt.Errorf("%w: %q", ErrDuplicateTopic, topic)
	}
	if IsPreset(topic) {
		s.presets.add(topic)
		return topic, nil
	}
	s.custom.add(topic)
	return topic, nil
}

// RemoveCustom removes a custom topic. Returns false if it was not present.
func (s *Selection) RemoveCustom(topic string) bool {
	return s.custom.remove(topic)
}

// CustomTopics returns custom topics in insertion order.
func (s *Selection) CustomTopics() []string {
	return s.custom.values()
}

// PresetSelection returns selected presets in selection order.
func (s *Selection) PresetSelection() []string {
	return s.presets.values()
}

// Topics returns all active topics: presets first, then custom topics,
// each group in selection order.
func (s *Selection) Topics() []string {
	out := s.presets.values()
	return append(out, s.custom.order...)
}

// TopicCount returns the number of active topics.
func (s *Selection) TopicCount() int {
	return len(s.presets.order) + len(s.custom.order)
}

// ClearTopics deselects every topic. Regions are kept.
func (s *Selection) ClearTopics() {
	s.presets.clear()
	s.custom.clear()
}

// ToggleRegion adds or removes a catalog region by code.
// Removing the last remaining region fails with ErrLastRegion.
// Returns whether the region is selected afterwards.
func (s *Selection) ToggleRegion(code string) (bool, error) {
	r, ok := LookupRegion(code)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRegion, code)
	}

	if _, selected := s.regions[r.Code]; !selected {
		s.addRegion(r)
		return true, nil
	}

	if len(s.regions) == 1 {
		return true, ErrLastRegion
	}
	delete(s.regions, r.Code)
	for i, c := range s.regionOrder {
		if c == r.Code {
			s.regionOrder = append(s.regionOrder[:i], s.regionOrder[i+1:]...)
			break
		}
	}
	return false, nil
}

func (s *Selection) addRegion(r Region) {
	if _, ok := s.regions[r.Code]; ok {
		return
	}
	s.regions[r.Code] = r
	s.regionOrder = append(s.regionOrder, r.Code)
}

// IsRegionSelected reports whether a region code is selected.
func (s *Selection) IsRegionSelected(code string) bool {
	_, ok := s.regions[code]
	return ok
}

// Regions returns the selected regions in selection order. Never empty.
func (s *Selection) Regions() []Region {
	out := make([]Region, 0, len(s.regionOrder))
	for _, c := range s.regionOrder {
		out = append(out, s.regions[c])
	}
	return out
}
