// Package wallclock layers time.Time on top of the integer timeslot core.
// Times are stored as epoch seconds, so every operation keeps the core's
// O(log n) cost; results are rendered in the store's default location.
package wallclock

import (
	"time"

	"github.com/nodashin6/timeslotassigner/timeslot"
)

// Layout accepted by ParseTime for timestamps that carry no zone offset.
const naiveLayout = "2006-01-02 15:04:05"

// ParseTime reads an RFC 3339 timestamp, or a zone-less
// "2006-01-02 15:04:05" one interpreted in loc. A nil loc means UTC.
// Timestamps with their own offset keep it.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(naiveLayout, s, loc)
}

// Slot is a half-open [Start, End) interval in wall-clock terms.
type Slot struct {
	Start time.Time
	End   time.Time
	Data  any
}

// ResourceSlot is a slot hit tagged with its resource.
type ResourceSlot struct {
	ResourceID string
	Start      time.Time
	End        time.Time
	Data       any
}

func fromEpoch(sec int64, loc *time.Location) time.Time {
	return time.Unix(sec, 0).In(loc)
}

// Store wraps a timeslot.Store with a time.Time interface.
type Store struct {
	inner *timeslot.Store
	loc   *time.Location
}

// NewStore creates a wall-clock store. Results are rendered in loc; nil
// means UTC.
func NewStore(resourceID string, loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{inner: timeslot.NewStore(resourceID), loc: loc}
}

func (s *Store) ResourceID() string {
	return s.inner.ResourceID()
}

func (s *Store) Len() int {
	return s.inner.Len()
}

func (s *Store) Add(start, end time.Time, data any) (bool, error) {
	return s.inner.Add(start.Unix(), end.Unix(), data)
}

func (s *Store) AddWithShift(start, end time.Time, data any) (time.Time, time.Time, error) {
	actualStart, actualEnd, err := s.inner.AddWithShift(start.Unix(), end.Unix(), data)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return fromEpoch(actualStart, s.loc), fromEpoch(actualEnd, s.loc), nil
}

func (s *Store) Remove(start time.Time) bool {
	return s.inner.Remove(start.Unix())
}

func (s *Store) SlotAt(t time.Time) (Slot, bool) {
	slot, ok := s.inner.SlotAt(t.Unix())
	if !ok {
		return Slot{}, false
	}
	return s.render(slot), true
}

func (s *Store) AllSlots() []Slot {
	inner := s.inner.AllSlots()
	slots := make([]Slot, len(inner))
	for i, slot := range inner {
		slots[i] = s.render(slot)
	}
	return slots
}

func (s *Store) LeftSlot(start time.Time) (Slot, bool) {
	slot, ok := s.inner.LeftSlot(start.Unix())
	if !ok {
		return Slot{}, false
	}
	return s.render(slot), true
}

func (s *Store) RightSlot(start time.Time) (Slot, bool) {
	slot, ok := s.inner.RightSlot(start.Unix())
	if !ok {
		return Slot{}, false
	}
	return s.render(slot), true
}

func (s *Store) render(slot timeslot.Slot) Slot {
	return Slot{
		Start: fromEpoch(slot.Start, s.loc),
		End:   fromEpoch(slot.End, s.loc),
		Data:  slot.Data,
	}
}

// Group wraps a timeslot.Group with a time.Time interface. All stores it
// creates share the group's default location.
type Group struct {
	inner *timeslot.Group
	loc   *time.Location
}

func NewGroup(loc *time.Location, resources ...string) *Group {
	if loc == nil {
		loc = time.UTC
	}
	return &Group{inner: timeslot.NewGroup(resources...), loc: loc}
}

func (g *Group) AddResource(id string) {
	g.inner.AddResource(id)
}

func (g *Group) RemoveResource(id string) bool {
	return g.inner.RemoveResource(id)
}

func (g *Group) AddSlot(id string, start, end time.Time, data any) (bool, error) {
	return g.inner.AddSlot(id, start.Unix(), end.Unix(), data)
}

func (g *Group) AddSlotWithShift(id string, start, end time.Time, data any) (time.Time, time.Time, error) {
	actualStart, actualEnd, err := g.inner.AddSlotWithShift(id, start.Unix(), end.Unix(), data)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return fromEpoch(actualStart, g.loc), fromEpoch(actualEnd, g.loc), nil
}

// SlotsAt collects the slot active at t on every resource, in
// resource-insertion order.
func (g *Group) SlotsAt(t time.Time) []ResourceSlot {
	inner := g.inner.SlotsAt(t.Unix())
	hits := make([]ResourceSlot, len(inner))
	for i, hit := range inner {
		hits[i] = ResourceSlot{
			ResourceID: hit.ResourceID,
			Start:      fromEpoch(hit.Start, g.loc),
			End:        fromEpoch(hit.End, g.loc),
			Data:       hit.Data,
		}
	}
	return hits
}

func (g *Group) Resources() []string {
	return g.inner.Resources()
}
