// Package catalog holds the monitored satellite set: names, catalog numbers,
// service requirements, and ephemeris handles, plus the static constellation
// definitions they are built from.
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/signalsfoundry/constellation-monitor/core"
	"github.com/signalsfoundry/constellation-monitor/model"
)

// EventType indicates what kind of change happened in the store.
type EventType int

const (
	EventSatelliteAdded EventType = iota
	EventEphemerisUpdated
)

// Event is emitted to subscribers when the store changes.
type Event struct {
	Type      EventType
	Satellite Satellite
}

// Satellite is one monitored spacecraft. Ephemeris is nil until an element
// set has been attached.
type Satellite struct {
	Name          string
	NoradID       string
	Constellation string
	// Active is false for spacecraft excluded from geometry computations,
	// e.g. those with failed navigation payloads that still hold their slots.
	Active    bool
	Ephemeris core.Ephemeris
}

// Store is an in-memory, thread-safe satellite registry.
type Store struct {
	mu sync.RWMutex

	sats         map[string]*Satellite
	requirements map[string]model.ServiceRequirement

	subs []func(Event)
}

// NewStore constructs an empty registry.
func NewStore() *Store {
	return &Store{
		sats:         make(map[string]*Satellite),
		requirements: make(map[string]model.ServiceRequirement),
	}
}

// Add registers a new satellite. It returns an error if the name already
// exists.
func (s *Store) Add(sat Satellite) error {
	s.mu.Lock()
	if _, exists := s.sats[sat.Name]; exists {
		s.mu.Unlock()
		return fmt.Errorf("satellite %q already exists", sat.Name)
	}
	stored := sat
	s.sats[sat.Name] = &stored
	event := Event{Type: EventSatelliteAdded, Satellite: stored}
	subs := append([]func(Event){}, s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub(event)
	}
	return nil
}

// Get returns the satellite with the given name, or false if not found.
func (s *Store) Get(name string) (Satellite, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sat, ok := s.sats[name]
	if !ok {
		return Satellite{}, false
	}
	return *sat, true
}

// Satellites returns a snapshot of all registered satellites, ordered by
// name.
func (s *Store) Satellites() []Satellite {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]Satellite, 0, len(s.sats))
	for _, sat := range s.sats {
		res = append(res, *sat)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// Active returns the name-ordered snapshot filtered to active satellites
// with an ephemeris attached, ready for geometry computations.
func (s *Store) Active() []core.Satellite {
	all := s.Satellites()
	res := make([]core.Satellite, 0, len(all))
	for _, sat := range all {
		if sat.Active && sat.Ephemeris != nil {
			res = append(res, core.Satellite{Name: sat.Name, Ephemeris: sat.Ephemeris})
		}
	}
	return res
}

// SetEphemeris attaches a propagator to a registered satellite and notifies
// subscribers.
func (s *Store) SetEphemeris(name string, eph core.Ephemeris) error {
	s.mu.Lock()
	sat, ok := s.sats[name]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("satellite %q not found", name)
	}
	sat.Ephemeris = eph
	event := Event{Type: EventEphemerisUpdated, Satellite: *sat}
	subs := append([]func(Event){}, s.subs...)
	s.mu.Unlock()

	// Notify subscribers outside the lock to avoid deadlocks.
	for _, sub := range subs {
		sub(event)
	}
	return nil
}

// SetRequirement records the service target for a satellite. Requirements
// may be set before the satellite itself is registered.
func (s *Store) SetRequirement(name string, req model.ServiceRequirement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requirements[name] = req
}

// Requirement returns the service target for a satellite, if one is set.
func (s *Store) Requirement(name string) (model.ServiceRequirement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requirements[name]
	return req, ok
}

// Requirements returns a snapshot copy of all service targets.
func (s *Store) Requirements() map[string]model.ServiceRequirement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make(map[string]model.ServiceRequirement, len(s.requirements))
	for name, req := range s.requirements {
		res[name] = req
	}
	return res
}

// Subscribe registers a callback for store events. It returns an unsubscribe
// function.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < 0 || idx >= len(s.subs) {
			return
		}
		s.subs = append(s.subs[:idx], s.subs[idx+1:]...)
		idx = -1
	}
}

// EphemerisLookup resolves a catalog number to a propagator, or nil when no
// element set is available for it.
type EphemerisLookup func(noradID string) core.Ephemeris

// Build populates a store from a constellation definition, resolving
// ephemerides through lookup. Inactive spacecraft are registered either way;
// includeInactive controls whether they are flagged usable for geometry.
func Build(c Constellation, lookup EphemerisLookup, includeInactive bool) *Store {
	store := NewStore()
	for name, req := range c.Requirements {
		store.SetRequirement(name, req)
	}
	for name, noradID := range c.Members {
		sat := Satellite{
			Name:          name,
			NoradID:       noradID,
			Constellation: c.Name,
			Active:        includeInactive || !c.inactive(name),
		}
		if lookup != nil {
			sat.Ephemeris = lookup(noradID)
		}
		// Names within a definition are unique; Add cannot fail here.
		_ = store.Add(sat)
	}
	return store
}
