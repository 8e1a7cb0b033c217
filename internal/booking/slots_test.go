package booking

import (
	"reflect"
	"testing"
)

func TestGenerateSlots(t *testing.T) {
	slots, err := GenerateSlots("08:00", "12:00", 90, 30)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	want := []TimeSlot{
		{StartTime: "08:00", EndTime: "09:30", DurationMinutes: 90},
		{StartTime: "08:30", EndTime: "10:00", DurationMinutes: 90},
		{StartTime: "09:00", EndTime: "10:30", DurationMinutes: 90},
		{StartTime: "09:30", EndTime: "11:00", DurationMinutes: 90},
		{StartTime: "10:00", EndTime: "11:30", DurationMinutes: 90},
		{StartTime: "10:30", EndTime: "12:00", DurationMinutes: 90},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("slots = %v, want %v", slots, want)
	}
}

func TestGenerateSlots_LastSlotEndsAtClose(t *testing.T) {
	slots, err := GenerateSlots("08:00", "10:00", 60, 60)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}
	last := slots[len(slots)-1]
	if last.EndTime != "10:00" {
		t.Errorf("last slot ends at %s, want 10:00", last.EndTime)
	}
}

func TestGenerateSlots_Idempotent(t *testing.T) {
	first, err := GenerateSlots("07:00", "22:00", 90, 30)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	second, err := GenerateSlots("07:00", "22:00", 90, 30)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different sequences")
	}
}

func TestGenerateSlots_ChronologicalAndUniqueStarts(t *testing.T) {
	slots, err := GenerateSlots("06:00", "23:00", 45, 20)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	seen := make(map[string]struct{})
	prev := ""
	for _, slot := range slots {
		if _, dup := seen[slot.StartTime]; dup {
			t.Errorf("duplicate start time %s", slot.StartTime)
		}
		seen[slot.StartTime] = struct{}{}
		if prev != "" && slot.StartTime <= prev {
			t.Errorf("slot %s is not after %s", slot.StartTime, prev)
		}
		prev = slot.StartTime
	}
}

func TestGenerateSlots_OverlappingWhenDurationNotMultipleOfStep(t *testing.T) {
	// 90-minute slots every 30 minutes overlap by design.
	slots, err := GenerateSlots("08:00", "11:00", 90, 30)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) < 2 {
		t.Fatalf("got %d slots, want at least 2", len(slots))
	}
	if slots[1].StartTime >= slots[0].EndTime {
		t.Errorf("expected overlap: slot[1] starts %s, slot[0] ends %s", slots[1].StartTime, slots[0].EndTime)
	}
}

func TestGenerateSlots_Errors(t *testing.T) {
	tests := []struct {
		name     string
		open     string
		close    string
		duration int
		step     int
	}{
		{"zero duration", "08:00", "12:00", 0, 30},
		{"negative step", "08:00", "12:00", 60, -1},
		{"close before open", "12:00", "08:00", 60, 30},
		{"close equals open", "08:00", "08:00", 60, 30},
		{"bad open time", "8am", "12:00", 60, 30},
		{"bad close time", "08:00", "26:00", 60, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GenerateSlots(tt.open, tt.close, tt.duration, tt.step); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGenerateSlots_NoSlotFits(t *testing.T) {
	slots, err := GenerateSlots("08:00", "09:00", 90, 30)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("got %d slots, want 0 when no slot fits the window", len(slots))
	}
}
