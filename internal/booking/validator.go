// Package booking validates proposed appointments against an existing
// booking snapshot. It is a fast pre-check and a source of user-facing
// explanations only: the authoritative conflict guard lives in the
// calling application's store, and a slot reported free here can still
// be taken by a concurrent writer before commit.
package booking

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/clinicore/agenda-engine/internal/availability"
	"github.com/clinicore/agenda-engine/internal/interval"
	"github.com/clinicore/agenda-engine/internal/observability/metrics"
	"github.com/clinicore/agenda-engine/pkg/logging"
)

var bookingTracer = otel.Tracer("agenda.internal.booking")

// ConflictKind names which axis of a proposal collided.
type ConflictKind string

const (
	// ConflictProfessional means the professional already has an
	// overlapping non-cancelled booking.
	ConflictProfessional ConflictKind = "professional_conflict"
	// ConflictPatient means the patient already has an overlapping
	// non-cancelled booking, possibly with another professional.
	ConflictPatient ConflictKind = "patient_conflict"
	// ConflictStaleSnapshot is reserved for callers whose commit fails
	// after a successful pre-check: the snapshot aged out between
	// planning and persisting. Surfaced as "please re-plan".
	ConflictStaleSnapshot ConflictKind = "stale_snapshot"
)

// Proposal is a candidate appointment to validate.
type Proposal struct {
	ProfessionalID string
	PatientID      string // optional; enables the patient axis
	Start          time.Time
	End            time.Time
	Appointments   []availability.Appointment // snapshot of the surrounding window
}

// Result is the outcome of a validation. OK and Conflict are mutually
// exclusive; only the first triggered conflict is reported.
type Result struct {
	OK              bool         `json:"ok"`
	Conflict        ConflictKind `json:"conflict,omitempty"`
	ConflictingID   string       `json:"conflicting_appointment_id,omitempty"`
	ConflictingSpan string       `json:"conflicting_span,omitempty"`
}

// Validator checks proposals for collisions.
type Validator struct {
	logger  *logging.Logger
	metrics *metrics.EngineMetrics
}

// NewValidator constructs a conflict validator.
func NewValidator(logger *logging.Logger, m *metrics.EngineMetrics) *Validator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Validator{logger: logger, metrics: m}
}

// Validate checks the proposal in order: interval shape, then the
// professional's calendar, then (when a patient id is supplied) the
// patient's calendar. A malformed interval is an error; conflicts are
// ordinary results.
func (v *Validator) Validate(ctx context.Context, p Proposal) (Result, error) {
	_, span := bookingTracer.Start(ctx, "booking.validate")
	defer span.End()
	span.SetAttributes(attribute.String("agenda.professional_id", p.ProfessionalID))

	if strings.TrimSpace(p.ProfessionalID) == "" {
		return Result{}, ErrMissingProfessional
	}
	proposed := interval.New(p.Start, p.End)
	if !proposed.Valid() {
		v.metrics.ObserveValidation("invalid_interval")
		span.RecordError(ErrInvalidInterval)
		return Result{}, ErrInvalidInterval
	}

	for _, a := range p.Appointments {
		if a.ProfessionalID != p.ProfessionalID || !a.Active() {
			continue
		}
		if interval.Overlaps(proposed, a.Span()) {
			v.metrics.ObserveValidation(string(ConflictProfessional))
			return conflict(ConflictProfessional, a), nil
		}
	}

	if p.PatientID != "" {
		for _, a := range p.Appointments {
			if a.PatientID != p.PatientID || !a.Active() {
				continue
			}
			if interval.Overlaps(proposed, a.Span()) {
				v.metrics.ObserveValidation(string(ConflictPatient))
				return conflict(ConflictPatient, a), nil
			}
		}
	}

	v.metrics.ObserveValidation("ok")
	return Result{OK: true}, nil
}

func conflict(kind ConflictKind, a availability.Appointment) Result {
	return Result{
		Conflict:        kind,
		ConflictingID:   a.ID,
		ConflictingSpan: a.Span().String(),
	}
}
