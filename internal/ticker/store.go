package ticker

import (
	"sync"
	"time"
)

// Disruption is a parsed MVG service message.
type Disruption struct {
	Title       string
	Description string
	Type        string    // "INCIDENT", "SCHEDULE_CHANGE", ...
	ValidFrom   time.Time // zero when the upstream gave no bound
	ValidTo     time.Time
	Labels      []string // affected line labels, e.g. "S6", "U3"
}

// Store holds the current disruptions in a thread-safe manner.
type Store struct {
	mu          sync.RWMutex
	disruptions []Disruption
}

// NewStore creates an empty disruption store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces all disruptions.
func (s *Store) Set(disruptions []Disruption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disruptions = disruptions
}

// All returns all current disruptions.
func (s *Store) All() []Disruption {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Disruption, len(s.disruptions))
	copy(out, s.disruptions)
	return out
}

// ForLabels returns disruptions affecting any of the given line labels,
// deduplicated, in store order.
func (s *Store) ForLabels(labels []string) []Disruption {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := make(map[string]bool, len(labels))
	for _, l := range labels {
		want[l] = true
	}

	var result []Disruption
	for _, d := range s.disruptions {
		for _, l := range d.Labels {
			if want[l] {
				result = append(result, d)
				break
			}
		}
	}
	return result
}
