package booking

import "time"

// ConflictDetector decides whether a candidate slot can be booked against a
// court's existing reservations.
type ConflictDetector struct {
	clock *ClockService
}

func NewConflictDetector(clock *ClockService) *ConflictDetector {
	if clock == nil {
		clock = NewClockService(nil)
	}
	return &ConflictDetector{clock: clock}
}

// Check evaluates one candidate slot on one court. The past-check runs before
// the conflict scan: a slot already behind now+buffer is rejected as PAST even
// when it also overlaps a reservation, because a past-but-free slot must never
// be reported bookable. Cancelled reservations are ignored. The scan stops at
// the first overlapping reservation.
func (d *ConflictDetector) Check(candidate TimeSlot, existing []Reservation, courtID int64, localDate, tz string, buffer time.Duration) (Decision, error) {
	decision := Decision{Slot: candidate, CourtID: courtID}

	past, err := d.clock.IsPast(candidate.StartTime, localDate, tz, buffer)
	if err != nil {
		return Decision{}, err
	}
	if past {
		decision.Reason = ReasonPast
		return decision, nil
	}

	candStart, err := minuteOfDay(candidate.StartTime)
	if err != nil {
		return Decision{}, err
	}
	candEnd, err := minuteOfDay(candidate.EndTime)
	if err != nil {
		return Decision{}, err
	}

	for _, res := range existing {
		if res.Status == StatusCancelled {
			continue
		}
		resStart, err := minuteOfDay(res.StartTime)
		if err != nil {
			return Decision{}, err
		}
		resEnd, err := minuteOfDay(res.EndTime)
		if err != nil {
			return Decision{}, err
		}
		// Half-open interval intersection.
		if candStart < resEnd && candEnd > resStart {
			decision.Reason = ReasonConflict
			decision.ConflictingReservationID = res.ID
			return decision, nil
		}
	}

	decision.Available = true
	return decision, nil
}

// CheckGroup evaluates the same candidate slot across every court of a group
// booking. Group bookings are atomic: the group can proceed only if every
// member court's decision is available. Per-court decisions are returned so
// callers can report which court blocked the group.
func (d *ConflictDetector) CheckGroup(candidate TimeSlot, courtIDs []int64, reservationsByCourt map[int64][]Reservation, localDate, tz string, buffer time.Duration) (map[int64]Decision, error) {
	decisions := make(map[int64]Decision, len(courtIDs))
	for _, courtID := range courtIDs {
		decision, err := d.Check(candidate, reservationsByCourt[courtID], courtID, localDate, tz, buffer)
		if err != nil {
			return nil, err
		}
		decisions[courtID] = decision
	}
	return decisions, nil
}

// GroupAvailable reports whether every court decision in a group is available.
func GroupAvailable(decisions map[int64]Decision) bool {
	if len(decisions) == 0 {
		return false
	}
	for _, d := range decisions {
		if !d.Available {
			return false
		}
	}
	return true
}
