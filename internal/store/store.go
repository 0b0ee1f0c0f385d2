// Package store holds the read-only seed collections that back the
// directory, events, and careers pages. The collections are decoded once
// at startup and never mutated; callers treat the slices as immutable.
package store

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"gradnet/internal/logging"
)

//go:embed seed/*.yaml
var seedFS embed.FS

// Store is the in-memory record store. Slices preserve seed file order,
// which is the stable display order for every listing page.
type Store struct {
	People []Person
	Events []Event
	Jobs   []JobPosting

	peopleByID map[int]int
	eventsByID map[int]int
	jobsByID   map[int]int
}

// Load decodes the embedded seed datasets.
func Load() (*Store, error) {
	s := &Store{
		peopleByID: make(map[int]int),
		eventsByID: make(map[int]int),
		jobsByID:   make(map[int]int),
	}

	if err := decodeSeed("seed/people.yaml", &s.People); err != nil {
		return nil, err
	}
	if err := decodeSeed("seed/events.yaml", &s.Events); err != nil {
		return nil, err
	}
	if err := decodeSeed("seed/jobs.yaml", &s.Jobs); err != nil {
		return nil, err
	}

	for i, p := range s.People {
		if _, dup := s.peopleByID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate person id %d in seed", p.ID)
		}
		s.peopleByID[p.ID] = i
	}
	for i, e := range s.Events {
		if _, dup := s.eventsByID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate event id %d in seed", e.ID)
		}
		s.eventsByID[e.ID] = i
	}
	for i, j := range s.Jobs {
		if _, dup := s.jobsByID[j.ID]; dup {
			return nil, fmt.Errorf("duplicate job id %d in seed", j.ID)
		}
		s.jobsByID[j.ID] = i
	}

	logging.Boot("seed loaded: people=%d events=%d jobs=%d",
		len(s.People), len(s.Events), len(s.Jobs))
	return s, nil
}

func decodeSeed(name string, out interface{}) error {
	data, err := seedFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// PersonByID looks up a person by seed ID.
func (s *Store) PersonByID(id int) (Person, bool) {
	i, ok := s.peopleByID[id]
	if !ok {
		return Person{}, false
	}
	return s.People[i], true
}

// EventByID looks up an event by seed ID.
func (s *Store) EventByID(id int) (Event, bool) {
	i, ok := s.eventsByID[id]
	if !ok {
		return Event{}, false
	}
	return s.Events[i], true
}

// JobByID looks up a job posting by seed ID.
func (s *Store) JobByID(id int) (JobPosting, bool) {
	i, ok := s.jobsByID[id]
	if !ok {
		return JobPosting{}, false
	}
	return s.Jobs[i], true
}

// Validate checks referential integrity between the seed collections:
// every event attendee and job poster must name a person in the
// directory. Used by the seed subcommand, not at boot.
func (s *Store) Validate() error {
	names := make(map[string]bool, len(s.People))
	for _, p := range s.People {
		names[p.Name] = true
	}
	for _, e := range s.Events {
		for _, a := range e.Attendees {
			if !names[a] {
				return fmt.Errorf("event %d: attendee %q not in directory", e.ID, a)
			}
		}
	}
	for _, j := range s.Jobs {
		if j.PostedBy != "" && !names[j.PostedBy] {
			return fmt.Errorf("job %d: poster %q not in directory", j.ID, j.PostedBy)
		}
	}
	return nil
}
