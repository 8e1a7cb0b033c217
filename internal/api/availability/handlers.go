// internal/api/availability/handlers.go
package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/courtflow-mx/courtflow/internal/booking"
)

const (
	availabilityQueryTimeout = 5 * time.Second
	clubIDQueryKey           = "club_id"
	courtIDQueryKey          = "court_id"
	courtIDsQueryKey         = "court_ids"
	dateQueryKey             = "date"
	startQueryKey            = "start"
	durationQueryKey         = "duration_minutes"
)

// Handler serves the availability endpoints. The service is injected at
// construction; handlers hold no other state.
type Handler struct {
	svc *booking.Service
}

func NewHandler(svc *booking.Service) *Handler {
	return &Handler{svc: svc}
}

type slotsResponse struct {
	ClubID  int64              `json:"clubId"`
	CourtID int64              `json:"courtId"`
	Date    string             `json:"date"`
	Slots   []booking.TimeSlot `json:"slots"`
}

type groupCheckResponse struct {
	Available bool                       `json:"available"`
	Decisions map[int64]booking.Decision `json:"decisions"`
}

// GET /api/v1/availability/slots?club_id=&court_id=&date=
func (h *Handler) HandleFreeSlots(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	clubID, err := int64FromQuery(r, clubIDQueryKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	courtID, err := int64FromQuery(r, courtIDQueryKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	date, err := requiredQuery(r, dateQueryKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), availabilityQueryTimeout)
	defer cancel()

	slots, err := h.svc.FreeSlots(ctx, clubID, courtID, date)
	if err != nil {
		writeServiceError(w, logger, err, "Failed to compute free slots")
		return
	}

	writeJSON(w, logger, http.StatusOK, slotsResponse{
		ClubID:  clubID,
		CourtID: courtID,
		Date:    date,
		Slots:   slots,
	})
}

// GET /api/v1/availability/check?club_id=&court_ids=&date=&start=&duration_minutes=
// court_ids takes a comma-separated list; a single id yields a plain decision,
// several yield the per-court decision map of a group check.
func (h *Handler) HandleCheckSlot(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	clubID, err := int64FromQuery(r, clubIDQueryKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	courtIDs, err := courtIDsFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	date, err := requiredQuery(r, dateQueryKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	start, err := requiredQuery(r, startQueryKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	duration, err := int64FromQuery(r, durationQueryKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), availabilityQueryTimeout)
	defer cancel()

	if len(courtIDs) == 1 {
		decision, err := h.svc.IsSlotAvailable(ctx, clubID, courtIDs[0], date, start, int(duration))
		if err != nil {
			writeServiceError(w, logger, err, "Failed to check slot availability")
			return
		}
		writeJSON(w, logger, http.StatusOK, decision)
		return
	}

	decisions, available, err := h.svc.IsGroupSlotAvailable(ctx, clubID, courtIDs, date, start, int(duration))
	if err != nil {
		writeServiceError(w, logger, err, "Failed to check group availability")
		return
	}
	writeJSON(w, logger, http.StatusOK, groupCheckResponse{
		Available: available,
		Decisions: decisions,
	})
}

func requiredQuery(r *http.Request, key string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

func int64FromQuery(r *http.Request, key string) (int64, error) {
	raw, err := requiredQuery(r, key)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return value, nil
}

func courtIDsFromQuery(r *http.Request) ([]int64, error) {
	raw, err := requiredQuery(r, courtIDsQueryKey)
	if err != nil {
		// Accept the singular key as a convenience for individual checks.
		single, singleErr := int64FromQuery(r, courtIDQueryKey)
		if singleErr != nil {
			return nil, err
		}
		return []int64{single}, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	seen := make(map[int64]struct{}, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid %s entry: %q", courtIDsQueryKey, part)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%s is required", courtIDsQueryKey)
	}
	return ids, nil
}

// writeServiceError maps engine errors onto HTTP statuses. Anything
// unrecognized is a 500; availability is never assumed on failure.
func writeServiceError(w http.ResponseWriter, logger *zerolog.Logger, err error, msg string) {
	var notFound *booking.NotFoundError
	var formatErr *booking.FormatError
	switch {
	case errors.As(err, &notFound):
		http.Error(w, notFound.Error(), http.StatusNotFound)
	case errors.As(err, &formatErr):
		http.Error(w, formatErr.Error(), http.StatusBadRequest)
	default:
		logger.Error().Err(err).Msg(msg)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("Failed to encode response")
	}
}
