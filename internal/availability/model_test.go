package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monday is 2026-03-02, a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func mondayAt(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestWorkingPeriodValidate(t *testing.T) {
	tests := []struct {
		name    string
		period  WorkingPeriod
		wantErr bool
	}{
		{"valid", WorkingPeriod{ProfessionalID: "p-1", Weekday: time.Monday, Start: "09:00", End: "12:00"}, false},
		{"end equals start", WorkingPeriod{Start: "09:00", End: "09:00"}, true},
		{"end before start", WorkingPeriod{Start: "14:00", End: "09:00"}, true},
		{"malformed start", WorkingPeriod{Start: "9am", End: "12:00"}, true},
		{"hour out of range", WorkingPeriod{Start: "25:00", End: "26:00"}, true},
		{"minute out of range", WorkingPeriod{Start: "09:61", End: "12:00"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.period.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWorkingPeriodOn(t *testing.T) {
	p := WorkingPeriod{ProfessionalID: "p-1", Weekday: time.Monday, Start: "09:00", End: "12:30"}
	window := p.On(monday)
	assert.Equal(t, mondayAt(9, 0), window.Start)
	assert.Equal(t, mondayAt(12, 30), window.End)
}

func TestWorkingPeriodOnRespectsLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)

	p := WorkingPeriod{ProfessionalID: "p-1", Weekday: time.Monday, Start: "08:00", End: "11:00"}
	window := p.On(date)
	assert.Equal(t, loc, window.Start.Location())
	assert.Equal(t, 8, window.Start.Hour())
}

func TestPeriodsFor(t *testing.T) {
	periods := []WorkingPeriod{
		{ProfessionalID: "p-1", Weekday: time.Monday, Start: "14:00", End: "18:00"},
		{ProfessionalID: "p-2", Weekday: time.Monday, Start: "09:00", End: "12:00"},
		{ProfessionalID: "p-1", Weekday: time.Tuesday, Start: "09:00", End: "12:00"},
		{ProfessionalID: "p-1", Weekday: time.Monday, Start: "09:00", End: "12:00"},
	}

	t.Run("filters by professional and weekday, sorts by start", func(t *testing.T) {
		day := PeriodsFor(periods, "p-1", monday)
		require.Len(t, day, 2)
		assert.Equal(t, "09:00", day[0].Start)
		assert.Equal(t, "14:00", day[1].Start)
	})

	t.Run("no rows for the weekday means not working", func(t *testing.T) {
		sunday := monday.AddDate(0, 0, -1)
		assert.Empty(t, PeriodsFor(periods, "p-1", sunday))
	})

	t.Run("unknown professional", func(t *testing.T) {
		assert.Empty(t, PeriodsFor(periods, "p-9", monday))
	})
}

func TestBusyIntervals(t *testing.T) {
	appointments := []Appointment{
		{ID: "a-1", ProfessionalID: "p-1", Start: mondayAt(10, 0), End: mondayAt(10, 30), Status: StatusScheduled},
		{ID: "a-2", ProfessionalID: "p-1", Start: mondayAt(9, 0), End: mondayAt(9, 30), Status: StatusConfirmed},
		{ID: "a-3", ProfessionalID: "p-1", Start: mondayAt(11, 0), End: mondayAt(11, 30), Status: StatusCancelled},
		{ID: "a-4", ProfessionalID: "p-2", Start: mondayAt(10, 0), End: mondayAt(10, 30), Status: StatusScheduled},
		{ID: "a-5", ProfessionalID: "p-1", Start: mondayAt(10, 0).AddDate(0, 0, 1), End: mondayAt(10, 30).AddDate(0, 0, 1), Status: StatusScheduled},
	}

	busy := BusyIntervals(appointments, "p-1", monday)
	require.Len(t, busy, 2, "cancelled, other-professional and other-day rows are skipped")
	assert.Equal(t, mondayAt(9, 0), busy[0].Start, "sorted ascending by start")
	assert.Equal(t, mondayAt(10, 0), busy[1].Start)
}

func TestBusyIntervalsDoesNotMutateInput(t *testing.T) {
	appointments := []Appointment{
		{ID: "a-1", ProfessionalID: "p-1", Start: mondayAt(11, 0), End: mondayAt(11, 30), Status: StatusScheduled},
		{ID: "a-2", ProfessionalID: "p-1", Start: mondayAt(9, 0), End: mondayAt(9, 30), Status: StatusScheduled},
	}
	BusyIntervals(appointments, "p-1", monday)
	assert.Equal(t, "a-1", appointments[0].ID)
}

func TestAppointmentActive(t *testing.T) {
	assert.True(t, Appointment{Status: StatusScheduled}.Active())
	assert.True(t, Appointment{Status: StatusConfirmed}.Active())
	assert.True(t, Appointment{Status: StatusCompleted}.Active())
	assert.False(t, Appointment{Status: StatusCancelled}.Active())
}
