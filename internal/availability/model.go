// Package availability computes a professional's free time from their
// recurring weekly working hours and the appointments already on the
// book. All inputs arrive as caller-supplied snapshots; nothing here
// reads a store or the wall clock.
package availability

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/clinicore/agenda-engine/internal/interval"
)

// AppointmentStatus is the lifecycle state of a booked appointment.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is one booking row from the calling application's store.
type Appointment struct {
	ID             string            `json:"id"`
	ProfessionalID string            `json:"professional_id"`
	PatientID      string            `json:"patient_id,omitempty"`
	Start          time.Time         `json:"start"`
	End            time.Time         `json:"end"`
	Status         AppointmentStatus `json:"status"`
}

// Active reports whether the appointment still occupies professional time.
func (a Appointment) Active() bool {
	return a.Status != StatusCancelled
}

// Span returns the appointment's occupied interval.
func (a Appointment) Span() interval.Interval {
	return interval.New(a.Start, a.End)
}

// WorkingPeriod is one row of a professional's recurring weekly
// schedule: a contiguous block on a given weekday. Split shifts are
// expressed as multiple rows for the same weekday.
type WorkingPeriod struct {
	ProfessionalID string       `json:"professional_id"`
	Weekday        time.Weekday `json:"weekday"`
	Start          string       `json:"start"` // "09:00", 24-hour clock
	End            string       `json:"end"`   // "18:00"
}

// Validate checks the clock strings parse and the period has positive length.
func (p WorkingPeriod) Validate() error {
	start, err := parseClock(p.Start)
	if err != nil {
		return fmt.Errorf("availability: working period start: %w", err)
	}
	end, err := parseClock(p.End)
	if err != nil {
		return fmt.Errorf("availability: working period end: %w", err)
	}
	if end <= start {
		return fmt.Errorf("availability: working period end %q not after start %q", p.End, p.Start)
	}
	return nil
}

// On materializes the period's clock times on a concrete date, in the
// date's location.
func (p WorkingPeriod) On(date time.Time) interval.Interval {
	start, _ := parseClock(p.Start)
	end, _ := parseClock(p.End)
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return interval.New(
		midnight.Add(time.Duration(start)*time.Minute),
		midnight.Add(time.Duration(end)*time.Minute),
	)
}

// startMinutes is the period's start clock in minutes from midnight.
// Unparseable clocks sort last.
func (p WorkingPeriod) startMinutes() int {
	m, err := parseClock(p.Start)
	if err != nil {
		return 24 * 60
	}
	return m
}

// Gap is a free sub-interval of a working period, at least the
// configured minimum duration long. Derived, never persisted.
type Gap struct {
	ProfessionalID   string    `json:"professional_id"`
	ProfessionalName string    `json:"professional_name,omitempty"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	DurationMinutes  int       `json:"duration_minutes"`
}

// Span returns the gap's interval.
func (g Gap) Span() interval.Interval {
	return interval.New(g.Start, g.End)
}

// parseClock converts "HH:MM" to minutes from midnight.
func parseClock(clock string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("malformed clock %q", clock)
	}
	min, err := strconv.Atoi(parts[1])
	if err != nil || min < 0 || min > 59 {
		return 0, fmt.Errorf("malformed clock %q", clock)
	}
	return hour*60 + min, nil
}

// PeriodsFor resolves the working periods of one professional on one
// calendar date, sorted by start clock. An empty result means the
// professional does not work that day; that is a valid outcome, not an
// error.
func PeriodsFor(periods []WorkingPeriod, professionalID string, date time.Time) []WorkingPeriod {
	var day []WorkingPeriod
	for _, p := range periods {
		if p.ProfessionalID != professionalID || p.Weekday != date.Weekday() {
			continue
		}
		day = append(day, p)
	}
	sort.SliceStable(day, func(i, j int) bool {
		return day[i].startMinutes() < day[j].startMinutes()
	})
	return day
}

// BusyIntervals collects the booked intervals of one professional on
// one calendar date, sorted ascending by start. Cancelled appointments
// and rows for other professionals or dates are skipped. The input is
// never mutated.
func BusyIntervals(appointments []Appointment, professionalID string, date time.Time) []interval.Interval {
	var busy []interval.Interval
	for _, a := range appointments {
		if a.ProfessionalID != professionalID || !a.Active() {
			continue
		}
		if !sameDay(a.Start, date) {
			continue
		}
		busy = append(busy, a.Span())
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })
	return busy
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
