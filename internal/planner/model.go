// Package planner assigns pending treatment-plan procedures to future
// appointment slots. It walks the calendar forward day by day, placing
// each procedure in the earliest opening that survives conflict
// validation, higher-priority procedures first.
package planner

import (
	"time"
)

// Priority tiers for pending procedures.
const (
	PriorityNormal = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

// PriorityLabel names a tier for human-readable output.
func PriorityLabel(priority int) string {
	switch priority {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	default:
		return "normal"
	}
}

// ScheduleItem is a pending procedure from a patient's treatment plan
// waiting for a slot.
type ScheduleItem struct {
	ID string `json:"id"`
	// EstimatedDurationMinutes defaults to the configured fallback
	// (60) when the treatment reference resolves no duration.
	EstimatedDurationMinutes int `json:"estimated_duration_minutes,omitempty"`
	// Priority is 1=normal, 2=medium, 3=high.
	Priority int `json:"priority"`
	// TreatmentReferenceID links procedures belonging to the same
	// treatment plan; consecutive visits of one plan are spaced apart.
	TreatmentReferenceID string `json:"treatment_reference_id,omitempty"`
	ToothNumber          int    `json:"tooth_number,omitempty"`
}

// SuggestedSlot is a proposed placement for one item. It is a planning
// output only; the calling application materializes the real booking
// and re-validates immediately before commit.
type SuggestedSlot struct {
	ItemID         string    `json:"item_id"`
	ProfessionalID string    `json:"professional_id"`
	Date           string    `json:"date"` // "2026-03-02"
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Reason         string    `json:"reason"`
}

// BatchResult is the outcome of one scheduling run. Unplaced carries
// the ids of items no slot could be found for inside the horizon; a
// non-empty Unplaced is a partial result, not a failure.
type BatchResult struct {
	Placed   []SuggestedSlot `json:"placed"`
	Unplaced []string        `json:"unplaced"`
}
