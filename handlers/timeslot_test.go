package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"melodia/models"
	"melodia/services/schedule"
)

// stubScheduleService returns canned results so handler tests only exercise
// the HTTP mapping.
type stubScheduleService struct {
	slots   []models.TimeSlot
	detail  *models.BookingDetail
	details []models.BookingDetail
	report  *models.DuplicateReport
	err     error
}

func (s *stubScheduleService) ListSlots(ctx context.Context, date string) ([]models.TimeSlot, error) {
	return s.slots, s.err
}

func (s *stubScheduleService) CreateSlots(ctx context.Context, entries []models.SlotInput) ([]models.TimeSlot, error) {
	return s.slots, s.err
}

func (s *stubScheduleService) DeleteSlot(ctx context.Context, id string) error {
	return s.err
}

func (s *stubScheduleService) DeleteDuplicates(ctx context.Context, key models.SlotKey) (*models.DuplicateReport, error) {
	return s.report, s.err
}

func (s *stubScheduleService) CreateBooking(ctx context.Context, slotID, authUID string) (*models.BookingDetail, error) {
	return s.detail, s.err
}

func (s *stubScheduleService) UpdateBookingStatus(ctx context.Context, id, status string) (*models.BookingDetail, error) {
	return s.detail, s.err
}

func (s *stubScheduleService) ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.BookingDetail, error) {
	return s.details, s.err
}

func newScheduleRouter(svc schedule.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewScheduleHandler(svc)
	r := gin.New()
	r.GET("/api/timeslots", h.ListTimeSlotsHandler)
	r.POST("/api/timeslots", h.CreateTimeSlotsHandler)
	r.DELETE("/api/timeslots/:id", h.DeleteTimeSlotHandler)
	r.GET("/api/bookings", h.ListBookingsHandler)
	r.POST("/api/bookings", func(c *gin.Context) {
		c.Set("authUid", "uid-test")
		h.CreateBookingHandler(c)
	})
	r.PATCH("/api/bookings/:id", h.UpdateBookingStatusHandler)
	return r
}

func TestListTimeSlotsWithoutDateReturnsAll(t *testing.T) {
	svc := &stubScheduleService{slots: []models.TimeSlot{
		{ID: "s1", Date: "2025-09-01", StartTime: "08:00", EndTime: "08:40"},
		{ID: "s2", Date: "2025-09-02", StartTime: "08:00", EndTime: "08:40"},
	}}
	r := newScheduleRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/timeslots", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	var body struct {
		Slots []models.TimeSlot `json:"slots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Slots) != 2 {
		t.Errorf("expected all slots without a date filter, got %d", len(body.Slots))
	}
}

func TestListTimeSlotsBadDate(t *testing.T) {
	r := newScheduleRouter(&stubScheduleService{err: schedule.NewInvalidArgumentError("Invalid date format. Use YYYY-MM-DD")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/timeslots?date=09/01/2025", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestListTimeSlotsOK(t *testing.T) {
	svc := &stubScheduleService{slots: []models.TimeSlot{
		{ID: "s1", Date: "2025-09-01", StartTime: "08:00", EndTime: "08:40"},
	}}
	r := newScheduleRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/timeslots?date=2025-09-01", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Slots []models.TimeSlot `json:"slots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Slots) != 1 || body.Slots[0].ID != "s1" {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestCreateTimeSlotsErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid argument", schedule.NewInvalidArgumentError("Slots array is required"), http.StatusBadRequest},
		{"conflict", schedule.NewConflictError("Some slots already exist"), http.StatusConflict},
		{"internal", context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newScheduleRouter(&stubScheduleService{err: tc.err})

			payload := bytes.NewBufferString(`{"slots":[{"date":"2025-09-01","startTime":"08:00","endTime":"08:40"}]}`)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/timeslots", payload)
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestCreateTimeSlotsMalformedBody(t *testing.T) {
	r := newScheduleRouter(&stubScheduleService{})

	payload := bytes.NewBufferString(`{"slots": not-json`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/timeslots", payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error == "" || body.Details == "" {
		t.Errorf("error reply missing fields: %s", w.Body.String())
	}
}

func TestCreateTimeSlotsCreated(t *testing.T) {
	svc := &stubScheduleService{slots: []models.TimeSlot{
		{ID: "s1", Date: "2025-09-01", StartTime: "08:00", EndTime: "08:40"},
	}}
	r := newScheduleRouter(svc)

	payload := bytes.NewBufferString(`{"slots":[{"date":"2025-09-01","startTime":"08:00","endTime":"08:40"}]}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/timeslots", payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	var body struct {
		Message string            `json:"message"`
		Slots   []models.TimeSlot `json:"slots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message == "" || len(body.Slots) != 1 {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestDeleteTimeSlotNotFound(t *testing.T) {
	r := newScheduleRouter(&stubScheduleService{err: schedule.NewNotFoundError("Time slot not found")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/timeslots/missing", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestCreateBookingConflict(t *testing.T) {
	r := newScheduleRouter(&stubScheduleService{err: schedule.NewConflictError("This time slot is already booked")})

	payload := bytes.NewBufferString(`{"timeSlotId":"s1"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 (body %s)", w.Code, w.Body.String())
	}
}

func TestCreateBookingCreated(t *testing.T) {
	svc := &stubScheduleService{detail: &models.BookingDetail{
		Booking: models.Booking{ID: "b1", Status: models.BookingStatusBooked},
	}}
	r := newScheduleRouter(svc)

	payload := bytes.NewBufferString(`{"timeSlotId":"s1"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
}

func TestUpdateBookingStatusBadStatus(t *testing.T) {
	r := newScheduleRouter(&stubScheduleService{err: schedule.NewInvalidArgumentError("Status must be one of: pending, confirmed, canceled")})

	payload := bytes.NewBufferString(`{"status":"done"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/bookings/b1", payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
