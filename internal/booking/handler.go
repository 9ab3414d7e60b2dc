package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/clinicore/agenda-engine/internal/availability"
	"github.com/clinicore/agenda-engine/pkg/logging"
)

// Handler exposes appointment validation over HTTP. The same endpoint
// serves the pre-commit recheck: a 409 on recheck means the snapshot
// went stale and the caller should re-plan.
type Handler struct {
	validator *Validator
	logger    *logging.Logger
}

// NewHandler creates a booking validation HTTP handler.
func NewHandler(validator *Validator, logger *logging.Logger) *Handler {
	if validator == nil {
		panic("booking: validator required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{validator: validator, logger: logger}
}

// ValidateRequest is the request body for validating a proposed appointment.
type ValidateRequest struct {
	ProfessionalID string                     `json:"professional_id"`
	PatientID      string                     `json:"patient_id,omitempty"`
	Start          time.Time                  `json:"start"`
	End            time.Time                  `json:"end"`
	Appointments   []availability.Appointment `json:"appointments"`
}

// Validate handles POST /api/v1/appointments/validate.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}

	result, err := h.validator.Validate(r.Context(), Proposal{
		ProfessionalID: req.ProfessionalID,
		PatientID:      req.PatientID,
		Start:          req.Start,
		End:            req.End,
		Appointments:   req.Appointments,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInterval):
			http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusUnprocessableEntity)
		case errors.Is(err, ErrMissingProfessional):
			http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		default:
			h.logger.Error("validation failed", "error", err)
			http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !result.OK {
		// Slot unavailable is a user-facing outcome, not a fault.
		w.WriteHeader(http.StatusConflict)
	}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("failed to encode validation result", "error", err)
	}
}
