package availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/courtflow-mx/courtflow/internal/booking"
)

// fakeStore holds a fixed scenario: court 1 has a confirmed 14:00-15:30
// reservation on 2025-09-23, court 2 is empty.
type fakeStore struct{}

func (fakeStore) Club(_ context.Context, clubID int64) (booking.Club, error) {
	if clubID != 10 {
		return booking.Club{}, &booking.NotFoundError{Resource: "club", ID: clubID}
	}
	return booking.Club{ID: 10, Name: "Club Norte", Timezone: "America/Mexico_City"}, nil
}

func (fakeStore) Court(_ context.Context, clubID, courtID int64) (booking.Court, error) {
	if clubID != 10 || (courtID != 1 && courtID != 2) {
		return booking.Court{}, &booking.NotFoundError{Resource: "court", ID: courtID}
	}
	return booking.Court{ID: courtID, ClubID: clubID}, nil
}

func (fakeStore) OperatingHours(_ context.Context, clubID int64) (booking.OperatingHours, error) {
	return booking.OperatingHours{OpenTime: "08:00", CloseTime: "22:00", SlotDurationMinutes: 90, StepMinutes: 30}, nil
}

func (f fakeStore) ReservationsForCourt(_ context.Context, _, courtID int64, localDate string) ([]booking.Reservation, error) {
	if courtID == 1 && localDate == "2025-09-23" {
		return []booking.Reservation{
			{ID: 41, CourtID: 1, Date: localDate, StartTime: "14:00", EndTime: "15:30", Status: booking.StatusConfirmed},
		}, nil
	}
	return nil, nil
}

func (f fakeStore) ReservationsForCourts(ctx context.Context, clubID int64, courtIDs []int64, localDate string) (map[int64][]booking.Reservation, error) {
	out := make(map[int64][]booking.Reservation, len(courtIDs))
	for _, id := range courtIDs {
		rs, _ := f.ReservationsForCourt(ctx, clubID, id, localDate)
		out[id] = rs
	}
	return out, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	svc := booking.NewService(fakeStore{},
		booking.WithClock(fixedClock{now: time.Date(2025, 9, 23, 6, 0, 0, 0, loc)}),
		booking.WithBuffer(0),
	)
	return NewHandler(svc)
}

func TestHandleFreeSlots(t *testing.T) {
	h := newTestHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/availability/slots?club_id=10&court_id=2&date=2025-09-23", nil)
	w := httptest.NewRecorder()
	h.HandleFreeSlots(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp slotsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CourtID != 2 || resp.Date != "2025-09-23" {
		t.Errorf("unexpected envelope: %+v", resp)
	}
	if len(resp.Slots) == 0 {
		t.Fatal("expected free slots on the empty court")
	}
	if resp.Slots[0].StartTime != "08:00" {
		t.Errorf("first slot starts %s, want 08:00", resp.Slots[0].StartTime)
	}
}

func TestHandleFreeSlots_ConflictFiltered(t *testing.T) {
	h := newTestHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/availability/slots?club_id=10&court_id=1&date=2025-09-23", nil)
	w := httptest.NewRecorder()
	h.HandleFreeSlots(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp slotsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, s := range resp.Slots {
		if s.StartTime < "15:30" && s.EndTime > "14:00" {
			t.Errorf("slot %s-%s overlaps the reserved window", s.StartTime, s.EndTime)
		}
	}
}

func TestHandleFreeSlots_BadParams(t *testing.T) {
	h := newTestHandler(t)

	urls := []string{
		"/api/v1/availability/slots",
		"/api/v1/availability/slots?club_id=10&court_id=2",
		"/api/v1/availability/slots?club_id=abc&court_id=2&date=2025-09-23",
		"/api/v1/availability/slots?club_id=-1&court_id=2&date=2025-09-23",
	}
	for _, url := range urls {
		r := httptest.NewRequest(http.MethodGet, url, nil)
		w := httptest.NewRecorder()
		h.HandleFreeSlots(w, r)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", url, w.Code)
		}
	}
}

func TestHandleFreeSlots_UnknownClub(t *testing.T) {
	h := newTestHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/availability/slots?club_id=99&court_id=1&date=2025-09-23", nil)
	w := httptest.NewRecorder()
	h.HandleFreeSlots(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHandleFreeSlots_BadDateIsBadRequest(t *testing.T) {
	h := newTestHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/availability/slots?club_id=10&court_id=1&date=23-09-2025", nil)
	w := httptest.NewRecorder()
	h.HandleFreeSlots(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed date", w.Code)
	}
}

func TestHandleCheckSlot_SingleCourt(t *testing.T) {
	h := newTestHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/availability/check?club_id=10&court_ids=1&date=2025-09-23&start=14:30&duration_minutes=90", nil)
	w := httptest.NewRecorder()
	h.HandleCheckSlot(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var decision booking.Decision
	if err := json.Unmarshal(w.Body.Bytes(), &decision); err != nil {
		t.Fatalf("decode decision: %v", err)
	}
	if decision.Available {
		t.Error("14:30-16:00 on court 1 should conflict")
	}
	if decision.Reason != booking.ReasonConflict {
		t.Errorf("reason = %q, want CONFLICT", decision.Reason)
	}
	if decision.ConflictingReservationID != 41 {
		t.Errorf("conflicting id = %d, want 41", decision.ConflictingReservationID)
	}
}

func TestHandleCheckSlot_SingularKeyAccepted(t *testing.T) {
	h := newTestHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/availability/check?club_id=10&court_id=2&date=2025-09-23&start=16:00&duration_minutes=90", nil)
	w := httptest.NewRecorder()
	h.HandleCheckSlot(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var decision booking.Decision
	if err := json.Unmarshal(w.Body.Bytes(), &decision); err != nil {
		t.Fatalf("decode decision: %v", err)
	}
	if !decision.Available {
		t.Errorf("16:00 on court 2 should be free: %+v", decision)
	}
}

func TestHandleCheckSlot_Group(t *testing.T) {
	h := newTestHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/availability/check?club_id=10&court_ids=1,2&date=2025-09-23&start=14:30&duration_minutes=90", nil)
	w := httptest.NewRecorder()
	h.HandleCheckSlot(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp groupCheckResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode group response: %v", err)
	}
	if resp.Available {
		t.Error("group should be unavailable while court 1 is booked")
	}
	if len(resp.Decisions) != 2 {
		t.Fatalf("got %d decisions, want 2", len(resp.Decisions))
	}
	if resp.Decisions[1].Available {
		t.Error("court 1 should be blocked")
	}
	if !resp.Decisions[2].Available {
		t.Error("court 2 should be free")
	}
}

func TestHandleCheckSlot_BadStartTime(t *testing.T) {
	h := newTestHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/availability/check?club_id=10&court_ids=1&date=2025-09-23&start=25:99&duration_minutes=90", nil)
	w := httptest.NewRecorder()
	h.HandleCheckSlot(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed start time", w.Code)
	}
}

func TestHandleCheckSlot_BadCourtList(t *testing.T) {
	h := newTestHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/availability/check?club_id=10&court_ids=1,zzz&date=2025-09-23&start=16:00&duration_minutes=90", nil)
	w := httptest.NewRecorder()
	h.HandleCheckSlot(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed court list", w.Code)
	}
}
