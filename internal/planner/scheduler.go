package planner

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/clinicore/agenda-engine/internal/availability"
	"github.com/clinicore/agenda-engine/internal/booking"
	"github.com/clinicore/agenda-engine/internal/observability/metrics"
	"github.com/clinicore/agenda-engine/pkg/logging"
)

var plannerTracer = otel.Tracer("agenda.internal.planner")

// Config tunes the batch scheduler.
type Config struct {
	// HorizonDays bounds the forward search, counted from tomorrow.
	HorizonDays int
	// StepMinutes is the candidate stride inside a working period.
	StepMinutes int
	// DefaultDurationMinutes is used for items carrying no estimate.
	DefaultDurationMinutes int
	// HighPrioritySpacingDays separates consecutive visits of a
	// treatment plan after a high-priority placement.
	HighPrioritySpacingDays int
	// DefaultSpacingDays separates consecutive visits otherwise.
	DefaultSpacingDays int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		HorizonDays:             60,
		StepMinutes:             30,
		DefaultDurationMinutes:  60,
		HighPrioritySpacingDays: 3,
		DefaultSpacingDays:      7,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.HorizonDays <= 0 {
		c.HorizonDays = d.HorizonDays
	}
	if c.StepMinutes <= 0 {
		c.StepMinutes = d.StepMinutes
	}
	if c.DefaultDurationMinutes <= 0 {
		c.DefaultDurationMinutes = d.DefaultDurationMinutes
	}
	if c.HighPrioritySpacingDays <= 0 {
		c.HighPrioritySpacingDays = d.HighPrioritySpacingDays
	}
	if c.DefaultSpacingDays <= 0 {
		c.DefaultSpacingDays = d.DefaultSpacingDays
	}
	return c
}

func (c Config) spacingDays(priority int) int {
	if priority == PriorityHigh {
		return c.HighPrioritySpacingDays
	}
	return c.DefaultSpacingDays
}

// BatchRequest is one scheduling run: the pending items plus the
// professional's schedule and booking snapshot over the horizon.
// Today anchors every horizon and spacing computation; the scheduler
// never reads the wall clock.
type BatchRequest struct {
	ProfessionalID   string
	ProfessionalName string
	Today            time.Time
	Items            []ScheduleItem
	WorkingPeriods   []availability.WorkingPeriod
	Appointments     []availability.Appointment
}

// Scheduler greedily assigns items to the earliest feasible slots.
type Scheduler struct {
	cfg       Config
	gaps      *availability.Service
	validator *booking.Validator
	logger    *logging.Logger
	metrics   *metrics.EngineMetrics
}

// NewScheduler constructs a batch scheduler.
func NewScheduler(cfg Config, gaps *availability.Service, validator *booking.Validator, logger *logging.Logger, m *metrics.EngineMetrics) *Scheduler {
	if gaps == nil {
		panic("planner: availability service required")
	}
	if validator == nil {
		panic("planner: validator required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Scheduler{cfg: cfg.withDefaults(), gaps: gaps, validator: validator, logger: logger, metrics: m}
}

// ScheduleBatch places each item in the earliest opening from tomorrow
// onward. Items are taken in descending priority; equal priorities
// keep their submitted order. Every candidate is validated against the
// booking snapshot plus all slots already placed in this run, so one
// batch never collides with itself. Items that fit nowhere inside the
// horizon are reported in Unplaced while the rest of the batch
// proceeds.
func (s *Scheduler) ScheduleBatch(ctx context.Context, req BatchRequest) (BatchResult, error) {
	ctx, span := plannerTracer.Start(ctx, "planner.schedule_batch")
	defer span.End()
	span.SetAttributes(
		attribute.String("agenda.professional_id", req.ProfessionalID),
		attribute.Int("agenda.items", len(req.Items)),
	)
	began := time.Now()

	items := make([]ScheduleItem, len(req.Items))
	copy(items, req.Items)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Priority > items[j].Priority })

	// The validation set grows as the run places slots.
	known := make([]availability.Appointment, len(req.Appointments))
	copy(known, req.Appointments)

	cursorDate := dayStart(req.Today).AddDate(0, 0, 1)
	limit := dayStart(req.Today).AddDate(0, 0, s.cfg.HorizonDays+1)
	lastPlanVisit := make(map[string]time.Time)

	result := BatchResult{Placed: []SuggestedSlot{}, Unplaced: []string{}}

	for _, item := range items {
		duration := time.Duration(item.EstimatedDurationMinutes) * time.Minute
		if duration <= 0 {
			duration = time.Duration(s.cfg.DefaultDurationMinutes) * time.Minute
		}

		searchDate := cursorDate
		if item.TreatmentReferenceID != "" {
			if last, ok := lastPlanVisit[item.TreatmentReferenceID]; ok {
				if next := last.AddDate(0, 0, s.cfg.spacingDays(item.Priority)); next.After(searchDate) {
					searchDate = next
				}
			}
		}

		slot, ok, err := s.placeItem(ctx, req, item, duration, searchDate, limit, known)
		if err != nil {
			return BatchResult{}, fmt.Errorf("planner: item %s: %w", item.ID, err)
		}
		if !ok {
			result.Unplaced = append(result.Unplaced, item.ID)
			s.logger.Info("item unplaceable within horizon",
				"item_id", item.ID,
				"duration_min", int(duration/time.Minute),
				"horizon_days", s.cfg.HorizonDays,
			)
			continue
		}

		result.Placed = append(result.Placed, slot)
		known = append(known, availability.Appointment{
			ID:             "suggested:" + item.ID,
			ProfessionalID: req.ProfessionalID,
			Start:          slot.Start,
			End:            slot.End,
			Status:         availability.StatusScheduled,
		})
		day := dayStart(slot.Start)
		cursorDate = day
		if item.TreatmentReferenceID != "" {
			lastPlanVisit[item.TreatmentReferenceID] = day
		}
	}

	span.SetAttributes(
		attribute.Int("agenda.placed", len(result.Placed)),
		attribute.Int("agenda.unplaced", len(result.Unplaced)),
	)
	s.metrics.ObserveBatch(len(result.Placed), len(result.Unplaced), time.Since(began).Seconds())
	s.logger.Info("batch scheduled",
		"professional_id", req.ProfessionalID,
		"items", len(req.Items),
		"placed", len(result.Placed),
		"unplaced", len(result.Unplaced),
	)
	return result, nil
}

// placeItem walks the calendar from searchDate looking for the first
// candidate start that validates cleanly.
func (s *Scheduler) placeItem(
	ctx context.Context,
	req BatchRequest,
	item ScheduleItem,
	duration time.Duration,
	searchDate, limit time.Time,
	known []availability.Appointment,
) (SuggestedSlot, bool, error) {
	step := time.Duration(s.cfg.StepMinutes) * time.Minute

	for ; searchDate.Before(limit); searchDate = searchDate.AddDate(0, 0, 1) {
		periods := availability.PeriodsFor(req.WorkingPeriods, req.ProfessionalID, searchDate)
		if len(periods) == 0 {
			continue
		}
		if s.dayCannotFit(ctx, req, searchDate, duration, known) {
			continue
		}

		for _, p := range periods {
			window := p.On(searchDate)
			for candidate := window.Start; !candidate.Add(duration).After(window.End); candidate = candidate.Add(step) {
				res, err := s.validator.Validate(ctx, booking.Proposal{
					ProfessionalID: req.ProfessionalID,
					Start:          candidate,
					End:            candidate.Add(duration),
					Appointments:   known,
				})
				if err != nil {
					return SuggestedSlot{}, false, err
				}
				if !res.OK {
					continue
				}
				return SuggestedSlot{
					ItemID:         item.ID,
					ProfessionalID: req.ProfessionalID,
					Date:           searchDate.Format(time.DateOnly),
					Start:          candidate,
					End:            candidate.Add(duration),
					Reason: fmt.Sprintf("%s priority: next available opening on %s at %s",
						PriorityLabel(item.Priority),
						searchDate.Format(time.DateOnly),
						candidate.Format("15:04")),
				}, true, nil
			}
		}
	}
	return SuggestedSlot{}, false, nil
}

// dayCannotFit skips a day whose widest free gap is narrower than the
// item. The gap floor hides stretches shorter than the configured
// minimum, so the precheck only applies to items at least that long.
func (s *Scheduler) dayCannotFit(ctx context.Context, req BatchRequest, date time.Time, duration time.Duration, known []availability.Appointment) bool {
	if int(duration/time.Minute) < s.gaps.MinGapMinutes() {
		return false
	}
	gaps := s.gaps.ComputeGaps(ctx, availability.GapQuery{
		ProfessionalID:   req.ProfessionalID,
		ProfessionalName: req.ProfessionalName,
		Date:             date,
		WorkingPeriods:   req.WorkingPeriods,
		Appointments:     known,
	})
	for _, g := range gaps {
		if time.Duration(g.DurationMinutes)*time.Minute >= duration {
			return false
		}
	}
	return true
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
