// Package interval implements half-open time interval algebra. An
// interval [start, end) covers start but not end, so two intervals that
// merely touch at an endpoint do not overlap.
package interval

import (
	"fmt"
	"sort"
	"time"
)

// Interval is a half-open [Start, End) span of time.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// New returns the interval [start, end).
func New(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// Valid reports whether the interval is well-formed (End after Start).
func (iv Interval) Valid() bool {
	return iv.End.After(iv.Start)
}

// Duration returns End minus Start.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Minutes returns the interval length in whole minutes.
func (iv Interval) Minutes() int {
	return int(iv.Duration() / time.Minute)
}

// Contains reports whether t falls inside the interval.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Covers reports whether other lies entirely within iv.
func (iv Interval) Covers(other Interval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// Overlaps reports whether a and b share any instant. Touching
// endpoints do not count: [09:00, 10:00) and [10:00, 11:00) are
// disjoint.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// Subtract removes every busy interval from period and returns the
// uncovered remainder, ordered left to right. Busy intervals that do
// not intersect the period are ignored. The input slice is not
// modified.
func Subtract(period Interval, busy []Interval) []Interval {
	if !period.Valid() {
		return nil
	}

	sorted := make([]Interval, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	var free []Interval
	cursor := period.Start
	for _, b := range sorted {
		if !Overlaps(period, b) {
			continue
		}
		if b.Start.After(cursor) {
			free = append(free, Interval{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(period.End) {
		free = append(free, Interval{Start: cursor, End: period.End})
	}
	return free
}
