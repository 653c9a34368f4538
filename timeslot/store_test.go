package timeslot_test

import (
	"errors"
	"testing"

	"github.com/nodashin6/timeslotassigner/timeslot"
)

func mustAdd(t *testing.T, s *timeslot.Store, start, end int64, data any) {
	t.Helper()
	added, err := s.Add(start, end, data)
	if err != nil {
		t.Fatal("Unexpected error adding slot:", err)
	}
	if !added {
		t.Fatalf("Expected slot (%d, %d) to be added", start, end)
	}
}

func TestStoreEmpty(t *testing.T) {
	s := timeslot.NewStore("alice")
	if s.ResourceID() != "alice" {
		t.Error("Expected resource id alice, got", s.ResourceID())
	}
	if len(s.AllSlots()) != 0 {
		t.Error("Expected no slots, got", s.AllSlots())
	}
	if _, ok := s.SlotAt(10); ok {
		t.Error("Expected no slot at 10 on empty store")
	}
}

func TestAdd(t *testing.T) {
	s := timeslot.NewStore("alice")
	mustAdd(t, s, 10, 12, "meeting")

	slots := s.AllSlots()
	if len(slots) != 1 {
		t.Fatal("Expected 1 slot, got", len(slots))
	}
	if slots[0].Start != 10 || slots[0].End != 12 || slots[0].Data != "meeting" {
		t.Error("Expected (10, 12, meeting), got", slots[0])
	}
}

func TestAddConflicts(t *testing.T) {
	s := timeslot.NewStore("alice")
	mustAdd(t, s, 10, 12, "meeting1")

	conflicts := []struct {
		start, end int64
	}{
		{9, 11},  // overlaps at start
		{11, 13}, // overlaps at end
		{10, 12}, // exact match
		{9, 13},  // covers existing
		{10, 11}, // inside existing
	}
	for _, c := range conflicts {
		added, err := s.Add(c.start, c.end, "conflict")
		if err != nil {
			t.Fatal("Unexpected error:", err)
		}
		if added {
			t.Errorf("Expected (%d, %d) to conflict", c.start, c.end)
		}
	}

	slots := s.AllSlots()
	if len(slots) != 1 {
		t.Error("Expected store unchanged with 1 slot, got", len(slots))
	}
	if slots[0].Data != "meeting1" {
		t.Error("Expected original slot to survive, got", slots[0])
	}
}

func TestAddAdjacent(t *testing.T) {
	s := timeslot.NewStore("alice")
	mustAdd(t, s, 10, 12, "meeting1")
	mustAdd(t, s, 15, 17, "meeting2")
	mustAdd(t, s, 5, 8, "meeting3")
	mustAdd(t, s, 12, 15, "meeting4") // touching boundaries do not conflict

	slots := s.AllSlots()
	if len(slots) != 4 {
		t.Fatal("Expected 4 slots, got", len(slots))
	}
	expected := []timeslot.Slot{
		{Start: 5, End: 8, Data: "meeting3"},
		{Start: 10, End: 12, Data: "meeting1"},
		{Start: 12, End: 15, Data: "meeting4"},
		{Start: 15, End: 17, Data: "meeting2"},
	}
	for i, want := range expected {
		if slots[i] != want {
			t.Errorf("Expected slot %d to be %v, got %v", i, want, slots[i])
		}
	}
}

func TestAddInvalidRange(t *testing.T) {
	s := timeslot.NewStore("alice")

	added, err := s.Add(10, 10, "zero")
	if added {
		t.Error("Expected zero-duration add to fail")
	}
	var rangeErr *timeslot.InvalidRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatal("Expected InvalidRangeError, got", err)
	}
	if rangeErr.Start != 10 || rangeErr.End != 10 {
		t.Error("Expected error to carry (10, 10), got", rangeErr)
	}

	if _, _, err := s.AddWithShift(10, 10, "zero"); !errors.As(err, &rangeErr) {
		t.Error("Expected InvalidRangeError from AddWithShift, got", err)
	}
	if _, _, err := s.AddWithShift(12, 10, "backwards"); !errors.As(err, &rangeErr) {
		t.Error("Expected InvalidRangeError for reversed range, got", err)
	}

	if len(s.AllSlots()) != 0 {
		t.Error("Expected invalid adds to leave the store empty, got", s.AllSlots())
	}
}

func TestAddWithShiftNoConflict(t *testing.T) {
	s := timeslot.NewStore("alice")

	start, end, err := s.AddWithShift(10, 12, "meeting")
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if start != 10 || end != 12 {
		t.Errorf("Expected (10, 12), got (%d, %d)", start, end)
	}
	if s.Len() != 1 {
		t.Error("Expected 1 slot, got", s.Len())
	}
}

func TestAddWithShiftConflict(t *testing.T) {
	s := timeslot.NewStore("alice")
	mustAdd(t, s, 10, 15, "existing")

	start, end, err := s.AddWithShift(12, 14, "new")
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if start != 15 || end != 17 {
		t.Errorf("Expected (15, 17), got (%d, %d)", start, end)
	}
}

func TestAddWithShiftMultipleBlockers(t *testing.T) {
	s := timeslot.NewStore("alice")
	mustAdd(t, s, 10, 15, "slot1")
	mustAdd(t, s, 20, 25, "slot2")
	mustAdd(t, s, 30, 35, "slot3")

	// Duration 20 slides past all three blockers; the search jumps to the
	// end of each blocking slot, so it lands at 35, not in any gap.
	start, end, err := s.AddWithShift(12, 32, "new")
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if start != 35 || end != 55 {
		t.Errorf("Expected (35, 55), got (%d, %d)", start, end)
	}
}

func TestAddWithShiftLandsInGap(t *testing.T) {
	s := timeslot.NewStore("alice")
	mustAdd(t, s, 10, 15, "slot1")
	mustAdd(t, s, 20, 25, "slot2")

	start, end, err := s.AddWithShift(12, 14, "new")
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if start != 15 || end != 17 {
		t.Errorf("Expected (15, 17), got (%d, %d)", start, end)
	}
}

func TestRemove(t *testing.T) {
	s := timeslot.NewStore("alice")

	if s.Remove(10) {
		t.Error("Expected removal on empty store to report false")
	}

	mustAdd(t, s, 10, 12, "meeting")
	if s.Remove(11) {
		t.Error("Expected removal at non-start time to report false")
	}
	if !s.Remove(10) {
		t.Error("Expected removal at exact start to succeed")
	}
	if s.Remove(10) {
		t.Error("Expected second removal to report false")
	}
	if len(s.AllSlots()) != 0 {
		t.Error("Expected empty store after removal, got", s.AllSlots())
	}
}

func TestSlotAtHalfOpen(t *testing.T) {
	s := timeslot.NewStore("alice")
	mustAdd(t, s, 10, 15, "meeting1")
	mustAdd(t, s, 20, 25, "meeting2")

	checks := []struct {
		at    int64
		found bool
		start int64
	}{
		{9, false, 0},
		{10, true, 10},
		{12, true, 10},
		{14, true, 10},
		{15, false, 0}, // end is exclusive
		{18, false, 0},
		{20, true, 20},
		{25, false, 0},
	}
	for _, c := range checks {
		slot, ok := s.SlotAt(c.at)
		if ok != c.found {
			t.Errorf("SlotAt(%d): expected found=%v, got %v", c.at, c.found, ok)
			continue
		}
		if ok && slot.Start != c.start {
			t.Errorf("SlotAt(%d): expected start %d, got %d", c.at, c.start, slot.Start)
		}
	}
}

func TestLeftSlot(t *testing.T) {
	s := timeslot.NewStore("alice")

	if _, ok := s.LeftSlot(10); ok {
		t.Error("Expected no left slot on empty store")
	}

	mustAdd(t, s, 10, 15, "meeting1")
	mustAdd(t, s, 20, 25, "meeting2")
	mustAdd(t, s, 30, 35, "meeting3")

	checks := []struct {
		at    int64
		found bool
		start int64
	}{
		{5, false, 0},
		{10, false, 0}, // a slot starting exactly at the query is skipped
		{15, true, 10},
		{20, true, 10},
		{25, true, 20},
		{30, true, 20},
		{40, true, 30},
	}
	for _, c := range checks {
		slot, ok := s.LeftSlot(c.at)
		if ok != c.found {
			t.Errorf("LeftSlot(%d): expected found=%v, got %v", c.at, c.found, ok)
			continue
		}
		if ok && slot.Start != c.start {
			t.Errorf("LeftSlot(%d): expected start %d, got %d", c.at, c.start, slot.Start)
		}
	}
}

func TestRightSlot(t *testing.T) {
	s := timeslot.NewStore("alice")

	if _, ok := s.RightSlot(10); ok {
		t.Error("Expected no right slot on empty store")
	}

	mustAdd(t, s, 10, 15, "meeting1")
	mustAdd(t, s, 20, 25, "meeting2")
	mustAdd(t, s, 30, 35, "meeting3")

	checks := []struct {
		at    int64
		found bool
		start int64
	}{
		{5, true, 10},
		{10, true, 20}, // a slot starting exactly at the query is skipped
		{15, true, 20},
		{20, true, 30},
		{25, true, 30},
		{30, false, 0},
		{40, false, 0},
	}
	for _, c := range checks {
		slot, ok := s.RightSlot(c.at)
		if ok != c.found {
			t.Errorf("RightSlot(%d): expected found=%v, got %v", c.at, c.found, ok)
			continue
		}
		if ok && slot.Start != c.start {
			t.Errorf("RightSlot(%d): expected start %d, got %d", c.at, c.start, slot.Start)
		}
	}
}

func TestExtremeTimes(t *testing.T) {
	s := timeslot.NewStore("alice")

	large := int64(1_000_000_000)
	mustAdd(t, s, large, large+100, "large")
	if slot, ok := s.SlotAt(large + 50); !ok || slot.Start != large {
		t.Error("Expected hit on large-valued slot, got", slot)
	}

	mustAdd(t, s, -100, -50, "negative")
	if slot, ok := s.SlotAt(-75); !ok || slot.Data != "negative" {
		t.Error("Expected hit on negative-valued slot, got", slot)
	}
}

func TestInvariantsAfterMixedInserts(t *testing.T) {
	s := timeslot.NewStore("alice")

	// A mix of plain and shifted adds in scrambled order.
	s.Add(50, 60, nil)
	s.Add(10, 20, nil)
	s.AddWithShift(15, 25, nil)
	s.Add(100, 110, nil)
	s.AddWithShift(55, 70, nil)
	s.AddWithShift(5, 12, nil)

	slots := s.AllSlots()
	for i := 1; i < len(slots); i++ {
		if slots[i-1].Start >= slots[i].Start {
			t.Fatal("Expected ascending starts, got", slots)
		}
		if slots[i-1].End > slots[i].Start {
			t.Fatal("Expected non-overlapping slots, got", slots)
		}
	}
}

func TestManySlots(t *testing.T) {
	s := timeslot.NewStore("alice")

	const numSlots = 1000
	for i := 0; i < numSlots; i++ {
		start := int64(i * 10)
		mustAdd(t, s, start, start+5, i)
	}

	if s.Len() != numSlots {
		t.Fatal("Expected", numSlots, "slots, got", s.Len())
	}

	middle := int64((numSlots / 2) * 10)
	if slot, ok := s.SlotAt(middle + 2); !ok || slot.Start != middle {
		t.Error("Expected middle slot at", middle, "got", slot)
	}

	left, ok := s.LeftSlot(middle)
	if !ok || left.Start != middle-10 {
		t.Error("Expected left neighbor at", middle-10, "got", left)
	}
	right, ok := s.RightSlot(middle)
	if !ok || right.Start != middle+10 {
		t.Error("Expected right neighbor at", middle+10, "got", right)
	}
}
