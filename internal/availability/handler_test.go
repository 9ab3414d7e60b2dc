package availability

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *Handler {
	return NewHandler(NewService(30, nil, nil), nil)
}

func postGaps(t *testing.T, h *Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/gaps", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.ComputeGaps(rec, req)
	return rec
}

func TestComputeGapsHandler(t *testing.T) {
	h := newTestHandler()
	rec := postGaps(t, h, GapsRequest{
		ProfessionalID: "p-1",
		Date:           "2026-03-02", // a Monday
		WorkingPeriods: []WorkingPeriod{
			{ProfessionalID: "p-1", Weekday: 1, Start: "09:00", End: "12:00"},
		},
		Appointments: []Appointment{
			{ID: "a-1", ProfessionalID: "p-1", Start: mondayAt(10, 0), End: mondayAt(10, 30), Status: StatusScheduled},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp GapsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, 60, resp.Gaps[0].DurationMinutes)
	assert.Equal(t, 90, resp.Gaps[1].DurationMinutes)
}

func TestComputeGapsHandlerEmptyDayIsOK(t *testing.T) {
	h := newTestHandler()
	rec := postGaps(t, h, GapsRequest{
		ProfessionalID: "p-1",
		Date:           "2026-03-01", // a Sunday, no working periods
		WorkingPeriods: []WorkingPeriod{
			{ProfessionalID: "p-1", Weekday: 1, Start: "09:00", End: "12:00"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp GapsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Gaps, "empty day serializes as [], not null")
}

func TestComputeGapsHandlerRejectsBadInput(t *testing.T) {
	h := newTestHandler()

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/gaps", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		h.ComputeGaps(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing professional", func(t *testing.T) {
		rec := postGaps(t, h, GapsRequest{Date: "2026-03-02"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing date", func(t *testing.T) {
		rec := postGaps(t, h, GapsRequest{ProfessionalID: "p-1"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed working period", func(t *testing.T) {
		rec := postGaps(t, h, GapsRequest{
			ProfessionalID: "p-1",
			Date:           "2026-03-02",
			WorkingPeriods: []WorkingPeriod{{ProfessionalID: "p-1", Weekday: 1, Start: "12:00", End: "09:00"}},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown timezone", func(t *testing.T) {
		rec := postGaps(t, h, GapsRequest{
			ProfessionalID: "p-1",
			Date:           "2026-03-02",
			Timezone:       "Mars/Olympus",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
