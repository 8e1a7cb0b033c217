// Package booking implements the court availability engine: local-day clock
// math, candidate slot generation, reservation conflict detection, and the
// orchestrating availability service. All computation is pure; the only I/O is
// reads through the injected Store port.
package booking

// TimeSlot is a candidate reservable interval on one court. Times are local
// wall-clock "HH:MM" strings in the club's timezone.
type TimeSlot struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ReservationStatus mirrors the states the booking-creation flow writes.
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
	StatusHold      ReservationStatus = "HOLD"
)

// Reservation is an existing booking row, consumed read-only. A non-zero
// GroupID marks one leg of a multi-court group booking.
type Reservation struct {
	ID        int64
	CourtID   int64
	Date      string // local calendar date, "YYYY-MM-DD"
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
	Status    ReservationStatus
	GroupID   int64 // 0 for individual bookings
}

// Reason classifies why a slot was rejected.
type Reason string

const (
	ReasonPast     Reason = "PAST"
	ReasonConflict Reason = "CONFLICT"
)

// Decision is the outcome of checking one candidate slot on one court.
// Created fresh per query and never mutated.
type Decision struct {
	Slot                     TimeSlot `json:"slot"`
	CourtID                  int64    `json:"courtId"`
	Available                bool     `json:"available"`
	Reason                   Reason   `json:"reason,omitempty"`
	ConflictingReservationID int64    `json:"conflictingReservationId,omitempty"`
}

// OperatingHours is a club's slot configuration for a day.
type OperatingHours struct {
	OpenTime            string
	CloseTime           string
	SlotDurationMinutes int
	StepMinutes         int
}

// Club is the configuration the engine needs about a tenant: its stored
// timezone (may be empty, in which case the location is resolved) and its
// descriptive location.
type Club struct {
	ID       int64
	Name     string
	Timezone string
	City     string
	State    string
	Country  string
}

// Court identifies one bookable court inside a club.
type Court struct {
	ID     int64
	ClubID int64
	Name   string
}
