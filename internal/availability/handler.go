package availability

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/clinicore/agenda-engine/pkg/logging"
)

// Handler exposes gap computation over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates an availability HTTP handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if service == nil {
		panic("availability: service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// GapsRequest is the request body for computing free gaps.
type GapsRequest struct {
	ProfessionalID   string          `json:"professional_id"`
	ProfessionalName string          `json:"professional_name,omitempty"`
	Date             string          `json:"date"` // "2026-03-02"
	WorkingPeriods   []WorkingPeriod `json:"working_periods"`
	Appointments     []Appointment   `json:"appointments"`
	Timezone         string          `json:"timezone,omitempty"` // IANA name, default UTC
}

// Validate checks required fields and working period shape.
func (r *GapsRequest) Validate() error {
	if strings.TrimSpace(r.ProfessionalID) == "" {
		return ErrMissingProfessional
	}
	if strings.TrimSpace(r.Date) == "" {
		return ErrMissingDate
	}
	for _, p := range r.WorkingPeriods {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// date resolves the request date in its timezone.
func (r *GapsRequest) date() (time.Time, error) {
	loc := time.UTC
	if r.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(r.Timezone)
		if err != nil {
			return time.Time{}, ErrBadTimezone
		}
	}
	return time.ParseInLocation(time.DateOnly, r.Date, loc)
}

// GapsResponse lists the day's free gaps.
type GapsResponse struct {
	Gaps  []Gap `json:"gaps"`
	Count int   `json:"count"`
}

// ComputeGaps handles POST /api/v1/availability/gaps.
func (h *Handler) ComputeGaps(w http.ResponseWriter, r *http.Request) {
	var req GapsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	date, err := req.date()
	if err != nil {
		http.Error(w, `{"error": "invalid date"}`, http.StatusBadRequest)
		return
	}

	gaps := h.service.ComputeGaps(r.Context(), GapQuery{
		ProfessionalID:   req.ProfessionalID,
		ProfessionalName: req.ProfessionalName,
		Date:             date,
		WorkingPeriods:   req.WorkingPeriods,
		Appointments:     req.Appointments,
	})
	if gaps == nil {
		gaps = []Gap{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(GapsResponse{Gaps: gaps, Count: len(gaps)}); err != nil {
		h.logger.Error("failed to encode gaps response", "error", err)
	}
}
