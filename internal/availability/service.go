package availability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/clinicore/agenda-engine/internal/interval"
	"github.com/clinicore/agenda-engine/internal/observability/metrics"
	"github.com/clinicore/agenda-engine/pkg/logging"
)

var availabilityTracer = otel.Tracer("agenda.internal.availability")

// DefaultMinGapMinutes is the gap duration floor applied when no
// override is configured.
const DefaultMinGapMinutes = 30

// Service computes free gaps for a professional's day.
type Service struct {
	minGapMinutes int
	logger        *logging.Logger
	metrics       *metrics.EngineMetrics
}

// NewService constructs an availability service. minGapMinutes <= 0
// selects the default floor.
func NewService(minGapMinutes int, logger *logging.Logger, m *metrics.EngineMetrics) *Service {
	if minGapMinutes <= 0 {
		minGapMinutes = DefaultMinGapMinutes
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{minGapMinutes: minGapMinutes, logger: logger, metrics: m}
}

// MinGapMinutes returns the configured gap duration floor.
func (s *Service) MinGapMinutes() int {
	return s.minGapMinutes
}

// GapQuery is one (professional, date) availability question together
// with the schedule and booking snapshot it is answered from.
type GapQuery struct {
	ProfessionalID   string
	ProfessionalName string
	Date             time.Time
	WorkingPeriods   []WorkingPeriod
	Appointments     []Appointment
}

// ComputeGaps subtracts the day's bookings from the day's working
// periods and returns the free sub-intervals meeting the minimum
// duration, in period order. A day without working periods yields an
// empty list. Pure: identical snapshots produce identical gaps, so
// callers may memoize freely.
func (s *Service) ComputeGaps(ctx context.Context, q GapQuery) []Gap {
	_, span := availabilityTracer.Start(ctx, "availability.compute_gaps")
	defer span.End()
	span.SetAttributes(
		attribute.String("agenda.professional_id", q.ProfessionalID),
		attribute.String("agenda.date", q.Date.Format(time.DateOnly)),
	)

	periods := PeriodsFor(q.WorkingPeriods, q.ProfessionalID, q.Date)
	if len(periods) == 0 {
		s.metrics.ObserveGapQuery("no_working_hours", 0)
		return nil
	}

	busy := BusyIntervals(q.Appointments, q.ProfessionalID, q.Date)

	var gaps []Gap
	for _, p := range periods {
		window := p.On(q.Date)
		for _, free := range interval.Subtract(window, busy) {
			if free.Minutes() < s.minGapMinutes {
				continue
			}
			gaps = append(gaps, Gap{
				ProfessionalID:   q.ProfessionalID,
				ProfessionalName: q.ProfessionalName,
				Start:            free.Start,
				End:              free.End,
				DurationMinutes:  free.Minutes(),
			})
		}
	}

	span.SetAttributes(attribute.Int("agenda.gaps", len(gaps)))
	s.metrics.ObserveGapQuery("ok", len(gaps))
	s.logger.Debug("gaps computed",
		"professional_id", q.ProfessionalID,
		"date", q.Date.Format(time.DateOnly),
		"periods", len(periods),
		"busy", len(busy),
		"gaps", len(gaps),
	)
	return gaps
}
