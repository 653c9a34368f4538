package timeslot

import "fmt"

// Slot is a half-open [Start, End) time interval with an opaque payload.
type Slot struct {
	Start int64
	End   int64
	Data  any
}

// ResourceSlot is a slot hit tagged with the resource it belongs to.
type ResourceSlot struct {
	ResourceID string
	Start      int64
	End        int64
	Data       any
}

// Placement is the position a shifted insertion actually landed on.
type Placement struct {
	Start int64
	End   int64
}

// Assignment is one item of a bulk request against a Registry.
type Assignment[K comparable] struct {
	Key        K
	ResourceID string
	Start      int64
	End        int64
	Data       any
}

// InvalidRangeError reports a slot request whose start is not before its
// end. Conflicts and missing slots are ordinary return values, not errors.
type InvalidRangeError struct {
	Start int64
	End   int64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid time range: start (%d) must be less than end (%d)", e.Start, e.End)
}
