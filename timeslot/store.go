package timeslot

import (
	"github.com/google/btree"
)

// Store keeps the non-overlapping time-slots of a single resource, ordered
// by start time in a B-tree. Conflict checks, point lookups and neighbor
// navigation are all O(log n); only the shift search degrades to
// O(k log n), k being the slots it has to slide past.
//
// A Store is not safe for concurrent mutation; callers wrap it in their
// own lock.

type slotItem struct {
	start int64
	end   int64
	data  any
}

func (a slotItem) Less(b btree.Item) bool {
	return a.start < b.(slotItem).start
}

type Store struct {
	resourceID string
	tree       *btree.BTree
}

// NewStore creates an empty store. The resource id is a label only, it
// never enters the slot logic.
func NewStore(resourceID string) *Store {
	return &Store{
		resourceID: resourceID,
		tree:       btree.New(2),
	}
}

func (s *Store) ResourceID() string {
	return s.resourceID
}

func (s *Store) Len() int {
	return s.tree.Len()
}

// Add inserts [start, end) unless it overlaps a stored slot. A conflict is
// an ordinary false, not an error; only start >= end is an error.
func (s *Store) Add(start, end int64, data any) (bool, error) {
	if start >= end {
		return false, &InvalidRangeError{Start: start, End: end}
	}
	if s.hasConflict(start, end) {
		return false, nil
	}
	s.tree.ReplaceOrInsert(slotItem{start: start, end: end, data: data})
	return true, nil
}

// AddWithShift inserts a slot of duration end-start at the earliest
// conflict-free time at or after start, and reports where it landed.
func (s *Store) AddWithShift(start, end int64, data any) (int64, int64, error) {
	if start >= end {
		return 0, 0, &InvalidRangeError{Start: start, End: end}
	}
	duration := end - start
	actualStart := s.findAvailable(start, duration)
	actualEnd := actualStart + duration
	s.tree.ReplaceOrInsert(slotItem{start: actualStart, end: actualEnd, data: data})
	return actualStart, actualEnd, nil
}

// Remove deletes the slot starting exactly at start.
func (s *Store) Remove(start int64) bool {
	return s.tree.Delete(slotItem{start: start}) != nil
}

// SlotAt returns the slot covering t. The interval is half-open, so t
// equal to a slot's end is a miss.
func (s *Store) SlotAt(t int64) (Slot, bool) {
	var found Slot
	ok := false
	s.tree.DescendLessOrEqual(slotItem{start: t}, func(it btree.Item) bool {
		p := it.(slotItem)
		if t < p.end {
			found = Slot{Start: p.start, End: p.end, Data: p.data}
			ok = true
		}
		return false
	})
	return found, ok
}

// AllSlots returns every slot in ascending start order.
func (s *Store) AllSlots() []Slot {
	slots := make([]Slot, 0, s.tree.Len())
	s.tree.Ascend(func(it btree.Item) bool {
		p := it.(slotItem)
		slots = append(slots, Slot{Start: p.start, End: p.end, Data: p.data})
		return true
	})
	return slots
}

// LeftSlot returns the slot whose start is greatest among those strictly
// before x. Comparison is on start only, so a slot starting exactly at x
// is skipped.
func (s *Store) LeftSlot(x int64) (Slot, bool) {
	var found Slot
	ok := false
	s.tree.DescendLessOrEqual(slotItem{start: x}, func(it btree.Item) bool {
		p := it.(slotItem)
		if p.start >= x {
			return true // same start as the query, step past it
		}
		found = Slot{Start: p.start, End: p.end, Data: p.data}
		ok = true
		return false
	})
	return found, ok
}

// RightSlot returns the slot whose start is smallest among those strictly
// after x.
func (s *Store) RightSlot(x int64) (Slot, bool) {
	var found Slot
	ok := false
	s.tree.AscendGreaterOrEqual(slotItem{start: x}, func(it btree.Item) bool {
		p := it.(slotItem)
		if p.start <= x {
			return true
		}
		found = Slot{Start: p.start, End: p.end, Data: p.data}
		ok = true
		return false
	})
	return found, ok
}

// hasConflict checks [start, end) against its two neighbors only: the
// store is overlap-free, so nothing further away can intersect it.
func (s *Store) hasConflict(start, end int64) bool {
	conflict := false
	s.tree.DescendLessOrEqual(slotItem{start: start}, func(it btree.Item) bool {
		p := it.(slotItem)
		if p.start >= start {
			return true // a slot at start itself is caught by the ascend below
		}
		if p.end > start {
			conflict = true
		}
		return false
	})
	if conflict {
		return true
	}
	s.tree.AscendGreaterOrEqual(slotItem{start: start}, func(it btree.Item) bool {
		if it.(slotItem).start < end {
			conflict = true
		}
		return false
	})
	return conflict
}

// findAvailable slides a candidate start forward until a window of the
// given duration is free. When the blocker lies ahead of the candidate the
// jump goes to that blocker's end, which can overshoot a gap; that larger
// jump is the documented placement behavior.
func (s *Store) findAvailable(preferredStart, duration int64) int64 {
	t := preferredStart
	for {
		if !s.hasConflict(t, t+duration) {
			return t
		}

		// A slot straddling t: resume where it ends.
		moved := false
		s.tree.DescendLessOrEqual(slotItem{start: t}, func(it btree.Item) bool {
			p := it.(slotItem)
			if p.end > t {
				t = p.end
				moved = true
			}
			return false
		})
		if moved {
			continue
		}

		// The blocker starts after t: skip past its end.
		advanced := false
		s.tree.AscendGreaterOrEqual(slotItem{start: t}, func(it btree.Item) bool {
			t = it.(slotItem).end
			advanced = true
			return false
		})
		if !advanced {
			return t
		}
	}
}
