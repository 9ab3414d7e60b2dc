package planner

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/clinicore/agenda-engine/internal/availability"
	"github.com/clinicore/agenda-engine/pkg/logging"
)

// Handler exposes batch scheduling over HTTP.
type Handler struct {
	scheduler *Scheduler
	logger    *logging.Logger
}

// NewHandler creates a planner HTTP handler.
func NewHandler(scheduler *Scheduler, logger *logging.Logger) *Handler {
	if scheduler == nil {
		panic("planner: scheduler required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{scheduler: scheduler, logger: logger}
}

// BatchScheduleRequest is the request body for scheduling a batch of
// treatment-plan items.
type BatchScheduleRequest struct {
	ProfessionalID   string                       `json:"professional_id"`
	ProfessionalName string                       `json:"professional_name,omitempty"`
	Today            string                       `json:"today"` // "2026-03-02"
	Timezone         string                       `json:"timezone,omitempty"`
	Items            []ScheduleItem               `json:"items"`
	WorkingPeriods   []availability.WorkingPeriod `json:"working_periods"`
	Appointments     []availability.Appointment   `json:"appointments"`
}

// Validate checks required fields and item shape.
func (r *BatchScheduleRequest) Validate() error {
	if strings.TrimSpace(r.ProfessionalID) == "" {
		return ErrMissingProfessional
	}
	if strings.TrimSpace(r.Today) == "" {
		return ErrMissingToday
	}
	if len(r.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range r.Items {
		if strings.TrimSpace(item.ID) == "" {
			return ErrItemMissingID
		}
		if item.Priority < 0 || item.Priority > PriorityHigh {
			return ErrBadPriority
		}
		if item.EstimatedDurationMinutes < 0 {
			return ErrBadDuration
		}
	}
	for _, p := range r.WorkingPeriods {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *BatchScheduleRequest) today() (time.Time, error) {
	loc := time.UTC
	if r.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(r.Timezone)
		if err != nil {
			return time.Time{}, ErrBadTimezone
		}
	}
	return time.ParseInLocation(time.DateOnly, r.Today, loc)
}

// BatchScheduleResponse reports placements and leftovers.
type BatchScheduleResponse struct {
	Placed   []SuggestedSlot `json:"placed"`
	Unplaced []string        `json:"unplaced"`
	Total    int             `json:"total"`
}

// ScheduleBatch handles POST /api/v1/schedule/batch. Items the horizon
// could not accommodate come back in `unplaced`; the response is still
// 200 because a partial plan is a valid plan.
func (h *Handler) ScheduleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	today, err := req.today()
	if err != nil {
		http.Error(w, `{"error": "invalid today date"}`, http.StatusBadRequest)
		return
	}

	result, err := h.scheduler.ScheduleBatch(r.Context(), BatchRequest{
		ProfessionalID:   req.ProfessionalID,
		ProfessionalName: req.ProfessionalName,
		Today:            today,
		Items:            req.Items,
		WorkingPeriods:   req.WorkingPeriods,
		Appointments:     req.Appointments,
	})
	if err != nil {
		h.logger.Error("batch scheduling failed", "error", err, "professional_id", req.ProfessionalID)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(BatchScheduleResponse{
		Placed:   result.Placed,
		Unplaced: result.Unplaced,
		Total:    len(req.Items),
	}); err != nil {
		h.logger.Error("failed to encode batch response", "error", err)
	}
}
