package schedule

import (
	"fmt"
	"regexp"

	"melodia/models"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)
)

// ValidDate reports whether s is a calendar date in "2006-01-02" form.
func ValidDate(s string) bool { return dateRe.MatchString(s) }

// ValidTime reports whether s is a wall-clock time in "15:04" form.
func ValidTime(s string) bool { return timeRe.MatchString(s) }

// GenerateDailySlots produces the maximal sequence of non-overlapping lesson
// windows for one day. The first window starts at startHour:00, each
// subsequent window starts lessonMinutes+breakMinutes after the previous one,
// and generation stops before any window whose end would pass endHour:00.
// No partial windows are emitted; if the lesson alone does not fit, the
// result is empty.
func GenerateDailySlots(date string, startHour, endHour, lessonMinutes, breakMinutes int) []models.TimeSlot {
	if lessonMinutes <= 0 || breakMinutes < 0 || startHour >= endHour {
		return nil
	}

	var slots []models.TimeSlot
	stride := lessonMinutes + breakMinutes
	limit := endHour * 60
	for start := startHour * 60; start+lessonMinutes <= limit; start += stride {
		slots = append(slots, models.TimeSlot{
			Date:      date,
			StartTime: clock(start),
			EndTime:   clock(start + lessonMinutes),
		})
	}
	return slots
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
