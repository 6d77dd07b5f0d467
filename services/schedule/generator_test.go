package schedule

import (
	"testing"
)

func TestValidDate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"2025-09-01", true},
		{"2025-9-01", false},
		{"20250901", false},
		{"", false},
		{"2025-09-01T10:00", false},
	}
	for _, tc := range cases {
		if got := ValidDate(tc.in); got != tc.want {
			t.Errorf("ValidDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidTime(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"08:00", true},
		{"23:59", true},
		{"24:00", false},
		{"8:00", false},
		{"08:60", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidTime(tc.in); got != tc.want {
			t.Errorf("ValidTime(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestGenerateDailySlots(t *testing.T) {
	slots := GenerateDailySlots("2025-09-01", 8, 18, 40, 20)

	if len(slots) != 10 {
		t.Fatalf("expected 10 slots, got %d", len(slots))
	}
	first := slots[0]
	if first.StartTime != "08:00" || first.EndTime != "08:40" {
		t.Errorf("first slot = %s-%s, want 08:00-08:40", first.StartTime, first.EndTime)
	}
	last := slots[len(slots)-1]
	if last.StartTime != "17:00" || last.EndTime != "17:40" {
		t.Errorf("last slot = %s-%s, want 17:00-17:40", last.StartTime, last.EndTime)
	}
	for i, s := range slots {
		if s.Date != "2025-09-01" {
			t.Errorf("slot %d has date %q", i, s.Date)
		}
		if s.EndTime <= s.StartTime {
			t.Errorf("slot %d window %s-%s is inverted", i, s.StartTime, s.EndTime)
		}
		if i > 0 && slots[i-1].EndTime > s.StartTime {
			t.Errorf("slot %d overlaps previous (%s > %s)", i, slots[i-1].EndTime, s.StartTime)
		}
	}
}

func TestGenerateDailySlotsNoPartialWindow(t *testing.T) {
	// 17:00 + 40min fits exactly; a later start would pass 18:00.
	slots := GenerateDailySlots("2025-09-01", 17, 18, 40, 20)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}

	// A 90-minute lesson cannot fit in a one-hour window at all.
	if got := GenerateDailySlots("2025-09-01", 17, 18, 90, 0); len(got) != 0 {
		t.Fatalf("expected no slots, got %d", len(got))
	}
}

func TestGenerateDailySlotsDegenerateInput(t *testing.T) {
	cases := []struct {
		name                              string
		startHour, endHour, lesson, pause int
	}{
		{"zero lesson", 8, 18, 0, 20},
		{"negative break", 8, 18, 40, -1},
		{"inverted window", 18, 8, 40, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GenerateDailySlots("2025-09-01", tc.startHour, tc.endHour, tc.lesson, tc.pause); len(got) != 0 {
				t.Errorf("expected no slots, got %d", len(got))
			}
		})
	}
}
