package timeslot

import "errors"

// Registry groups calendars under arbitrary comparable keys. Like Group it
// creates calendars lazily on write paths and leaves read paths
// side-effect free. Key iteration follows insertion order.
type Registry[K comparable] struct {
	calendars map[K]*Group
	order     []K
}

// CalendarSlot is one entry of a flattened cross-calendar query.
type CalendarSlot[K comparable] struct {
	Key        K
	ResourceID string
	Start      int64
	End        int64
	Data       any
}

func NewRegistry[K comparable]() *Registry[K] {
	return &Registry[K]{calendars: make(map[K]*Group)}
}

// AddCalendar registers group under key, replacing any existing entry.
// A nil group registers a fresh empty one.
func (r *Registry[K]) AddCalendar(key K, group *Group) {
	if group == nil {
		group = NewGroup()
	}
	if _, ok := r.calendars[key]; !ok {
		r.order = append(r.order, key)
	}
	r.calendars[key] = group
}

// RemoveCalendar discards the calendar and everything under it.
func (r *Registry[K]) RemoveCalendar(key K) bool {
	if _, ok := r.calendars[key]; !ok {
		return false
	}
	delete(r.calendars, key)
	for i, other := range r.order {
		if other == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Calendar returns the group under key, or nil if the key is unknown.
func (r *Registry[K]) Calendar(key K) *Group {
	return r.calendars[key]
}

// AllKeys lists calendar keys in insertion order.
func (r *Registry[K]) AllKeys() []K {
	keys := make([]K, len(r.order))
	copy(keys, r.order)
	return keys
}

func (r *Registry[K]) ensure(key K) *Group {
	if g, ok := r.calendars[key]; ok {
		return g
	}
	g := NewGroup()
	r.calendars[key] = g
	r.order = append(r.order, key)
	return g
}

// AddSlot books a slot on a resource of the keyed calendar, creating both
// calendar and resource if needed.
func (r *Registry[K]) AddSlot(key K, resourceID string, start, end int64, data any) (bool, error) {
	return r.ensure(key).AddSlot(resourceID, start, end, data)
}

// AddSlotWithShift books with shifting placement, creating calendar and
// resource if needed.
func (r *Registry[K]) AddSlotWithShift(key K, resourceID string, start, end int64, data any) (int64, int64, error) {
	return r.ensure(key).AddSlotWithShift(resourceID, start, end, data)
}

// SlotsAt reports, per calendar, the slots active at t. Calendars with no
// hit are left out of the result.
func (r *Registry[K]) SlotsAt(t int64) map[K][]ResourceSlot {
	result := make(map[K][]ResourceSlot)
	for _, key := range r.order {
		if hits := r.calendars[key].SlotsAt(t); len(hits) > 0 {
			result[key] = hits
		}
	}
	return result
}

// SlotsAtCalendar restricts SlotsAt to a single calendar. An unknown key,
// like a calendar with no hit, yields an empty map.
func (r *Registry[K]) SlotsAtCalendar(t int64, key K) map[K][]ResourceSlot {
	result := make(map[K][]ResourceSlot)
	if g, ok := r.calendars[key]; ok {
		if hits := g.SlotsAt(t); len(hits) > 0 {
			result[key] = hits
		}
	}
	return result
}

// AllSlotsAt flattens SlotsAt in calendar-insertion then
// resource-insertion order.
func (r *Registry[K]) AllSlotsAt(t int64) []CalendarSlot[K] {
	flat := []CalendarSlot[K]{}
	for _, key := range r.order {
		for _, hit := range r.calendars[key].SlotsAt(t) {
			flat = append(flat, CalendarSlot[K]{
				Key:        key,
				ResourceID: hit.ResourceID,
				Start:      hit.Start,
				End:        hit.End,
				Data:       hit.Data,
			})
		}
	}
	return flat
}

// AddResourceToCalendar creates the resource under key, creating the
// calendar too if needed.
func (r *Registry[K]) AddResourceToCalendar(key K, resourceID string) {
	r.ensure(key).AddResource(resourceID)
}

// CalendarResources lists the resources of one calendar; an absent key is
// an empty list, not an error.
func (r *Registry[K]) CalendarResources(key K) []string {
	if g, ok := r.calendars[key]; ok {
		return g.Resources()
	}
	return []string{}
}

// AllResources maps every calendar key to its resource ids.
func (r *Registry[K]) AllResources() map[K][]string {
	result := make(map[K][]string, len(r.calendars))
	for _, key := range r.order {
		result[key] = r.calendars[key].Resources()
	}
	return result
}

// BulkAssignSlots runs every assignment in input order. Items are
// independent: a conflict or invalid range is recorded in that item's
// result slot and processing continues. Invalid ranges additionally come
// back joined in the returned error.
func (r *Registry[K]) BulkAssignSlots(assignments []Assignment[K]) ([]bool, error) {
	results := make([]bool, len(assignments))
	var errs []error
	for i, a := range assignments {
		added, err := r.AddSlot(a.Key, a.ResourceID, a.Start, a.End, a.Data)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results[i] = added
	}
	return results, errors.Join(errs...)
}

// BulkAssignSlotsWithShift is BulkAssignSlots with shifting placement;
// every valid item lands somewhere, so its result is never a zero
// Placement.
func (r *Registry[K]) BulkAssignSlotsWithShift(assignments []Assignment[K]) ([]Placement, error) {
	results := make([]Placement, len(assignments))
	var errs []error
	for i, a := range assignments {
		start, end, err := r.AddSlotWithShift(a.Key, a.ResourceID, a.Start, a.End, a.Data)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results[i] = Placement{Start: start, End: end}
	}
	return results, errors.Join(errs...)
}
