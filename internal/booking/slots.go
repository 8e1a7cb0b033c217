package booking

import "fmt"

// GenerateSlots produces the ordered candidate slots for one day: starts at
// openTime, advances by stepMinutes, each slot spanning durationMinutes, and
// stops once a slot would end after closeTime. Purely wall-clock arithmetic;
// no timezone conversion happens at this stage.
//
// When durationMinutes is not a multiple of stepMinutes consecutive slots
// overlap each other. That is intentional: it offers more start options, the
// way most booking front-ends do. Uniqueness is enforced on start time only.
func GenerateSlots(openTime, closeTime string, durationMinutes, stepMinutes int) ([]TimeSlot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %d", durationMinutes)
	}
	if stepMinutes <= 0 {
		return nil, fmt.Errorf("slot step must be positive, got %d", stepMinutes)
	}

	open, err := minuteOfDay(openTime)
	if err != nil {
		return nil, err
	}
	close, err := minuteOfDay(closeTime)
	if err != nil {
		return nil, err
	}
	if close <= open {
		return nil, fmt.Errorf("close time %s must be after open time %s", closeTime, openTime)
	}

	var slots []TimeSlot
	seen := make(map[int]struct{})
	for start := open; start+durationMinutes <= close; start += stepMinutes {
		if _, dup := seen[start]; dup {
			continue
		}
		seen[start] = struct{}{}
		slots = append(slots, TimeSlot{
			StartTime:       formatMinute(start),
			EndTime:         formatMinute(start + durationMinutes),
			DurationMinutes: durationMinutes,
		})
	}
	return slots, nil
}
