package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/courtflow-mx/courtflow/internal/booking/tzresolve"
)

// DefaultBufferMinutes is the grace period added to "now" before a slot is
// considered unbookable. Overridable per service via WithBuffer.
const DefaultBufferMinutes = 15

// Store is the read-only port to the reservation storage layer. The engine
// never writes through it.
type Store interface {
	Club(ctx context.Context, clubID int64) (Club, error)
	Court(ctx context.Context, clubID, courtID int64) (Court, error)
	OperatingHours(ctx context.Context, clubID int64) (OperatingHours, error)
	ReservationsForCourt(ctx context.Context, clubID, courtID int64, localDate string) ([]Reservation, error)
	ReservationsForCourts(ctx context.Context, clubID int64, courtIDs []int64, localDate string) (map[int64][]Reservation, error)
}

// Service answers availability questions by composing the clock, the slot
// generator, and the conflict detector over the storage port. It is safe for
// concurrent use; all state is immutable after construction.
type Service struct {
	store    Store
	clock    *ClockService
	detector *ConflictDetector
	buffer   time.Duration
	logger   zerolog.Logger
}

type Option func(*Service)

// WithClock injects a clock, primarily for tests.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		s.clock = NewClockService(clock)
		s.detector = NewConflictDetector(s.clock)
	}
}

// WithBuffer overrides the past-check grace period.
func WithBuffer(buffer time.Duration) Option {
	return func(s *Service) { s.buffer = buffer }
}

// WithLogger attaches a logger; the default discards nothing but is unscoped.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func NewService(store Store, opts ...Option) *Service {
	clock := NewClockService(nil)
	s := &Service{
		store:    store,
		clock:    clock,
		detector: NewConflictDetector(clock),
		buffer:   DefaultBufferMinutes * time.Minute,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// clubTimezone returns the club's effective timezone: the stored setting when
// present and supported, otherwise the zone resolved from its location.
func (s *Service) clubTimezone(club Club) string {
	if club.Timezone != "" && tzresolve.IsSupported(club.Timezone) {
		return club.Timezone
	}
	return tzresolve.SmartDefault(tzresolve.Location{
		City:    club.City,
		State:   club.State,
		Country: club.Country,
	})
}

// FreeSlots lists the bookable slots for one court on one local date, in
// chronological order. Club and court configuration must resolve; a missing
// club or court surfaces as NotFoundError.
func (s *Service) FreeSlots(ctx context.Context, clubID, courtID int64, localDate string) ([]TimeSlot, error) {
	club, err := s.store.Club(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Court(ctx, clubID, courtID); err != nil {
		return nil, err
	}
	hours, err := s.store.OperatingHours(ctx, clubID)
	if err != nil {
		return nil, err
	}

	tz := s.clubTimezone(club)
	// Validates the date up front; a malformed date must fail even when the
	// day has no candidate slots.
	if _, err := s.clock.DayBoundaries(localDate, tz); err != nil {
		return nil, err
	}

	candidates, err := GenerateSlots(hours.OpenTime, hours.CloseTime, hours.SlotDurationMinutes, hours.StepMinutes)
	if err != nil {
		return nil, fmt.Errorf("generating slots for club %d: %w", clubID, err)
	}

	existing, err := s.store.ReservationsForCourt(ctx, clubID, courtID, localDate)
	if err != nil {
		return nil, err
	}

	free := make([]TimeSlot, 0, len(candidates))
	for _, candidate := range candidates {
		decision, err := s.detector.Check(candidate, existing, courtID, localDate, tz, s.buffer)
		if err != nil {
			return nil, err
		}
		if decision.Available {
			free = append(free, candidate)
		}
	}

	s.logger.Debug().
		Int64("club_id", clubID).
		Int64("court_id", courtID).
		Str("date", localDate).
		Str("timezone", tz).
		Int("candidates", len(candidates)).
		Int("free", len(free)).
		Msg("Free slots computed")
	return free, nil
}

// IsSlotAvailable re-validates a single requested slot on one court, the
// optimistic pre-check run just before booking commit. The storage layer's
// uniqueness constraint remains the authority at commit time.
func (s *Service) IsSlotAvailable(ctx context.Context, clubID, courtID int64, localDate, startTime string, durationMinutes int) (Decision, error) {
	club, err := s.store.Club(ctx, clubID)
	if err != nil {
		return Decision{}, err
	}
	if _, err := s.store.Court(ctx, clubID, courtID); err != nil {
		return Decision{}, err
	}
	candidate, err := buildSlot(startTime, durationMinutes)
	if err != nil {
		return Decision{}, err
	}

	existing, err := s.store.ReservationsForCourt(ctx, clubID, courtID, localDate)
	if err != nil {
		return Decision{}, err
	}

	tz := s.clubTimezone(club)
	decision, err := s.detector.Check(candidate, existing, courtID, localDate, tz, s.buffer)
	if err != nil {
		return Decision{}, err
	}

	s.logger.Debug().
		Int64("club_id", clubID).
		Int64("court_id", courtID).
		Str("date", localDate).
		Str("start", startTime).
		Bool("available", decision.Available).
		Str("reason", string(decision.Reason)).
		Msg("Slot availability checked")
	return decision, nil
}

// IsGroupSlotAvailable checks the same slot across every court of a group
// booking. All-or-nothing: the boolean is true only when every court is free.
func (s *Service) IsGroupSlotAvailable(ctx context.Context, clubID int64, courtIDs []int64, localDate, startTime string, durationMinutes int) (map[int64]Decision, bool, error) {
	if len(courtIDs) == 0 {
		return nil, false, fmt.Errorf("group check requires at least one court")
	}
	club, err := s.store.Club(ctx, clubID)
	if err != nil {
		return nil, false, err
	}
	for _, courtID := range courtIDs {
		if _, err := s.store.Court(ctx, clubID, courtID); err != nil {
			return nil, false, err
		}
	}
	candidate, err := buildSlot(startTime, durationMinutes)
	if err != nil {
		return nil, false, err
	}

	byCourt, err := s.store.ReservationsForCourts(ctx, clubID, courtIDs, localDate)
	if err != nil {
		return nil, false, err
	}

	tz := s.clubTimezone(club)
	decisions, err := s.detector.CheckGroup(candidate, courtIDs, byCourt, localDate, tz, s.buffer)
	if err != nil {
		return nil, false, err
	}

	available := GroupAvailable(decisions)
	s.logger.Debug().
		Int64("club_id", clubID).
		Ints64("court_ids", courtIDs).
		Str("date", localDate).
		Str("start", startTime).
		Bool("available", available).
		Msg("Group slot availability checked")
	return decisions, available, nil
}

// buildSlot derives the end time of a requested slot from its start and
// duration.
func buildSlot(startTime string, durationMinutes int) (TimeSlot, error) {
	if durationMinutes <= 0 {
		return TimeSlot{}, fmt.Errorf("slot duration must be positive, got %d", durationMinutes)
	}
	start, err := minuteOfDay(startTime)
	if err != nil {
		return TimeSlot{}, err
	}
	end := start + durationMinutes
	// Reservations never cross local midnight; an end of 24:00 or later is not
	// representable in the day's wall-clock domain.
	if end >= 24*60 {
		return TimeSlot{}, &FormatError{Field: "time", Value: startTime}
	}
	return TimeSlot{
		StartTime:       startTime,
		EndTime:         formatMinute(end),
		DurationMinutes: durationMinutes,
	}, nil
}
