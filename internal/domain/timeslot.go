package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay bounds TimeSlot.Start and TimeSlot.End.
const MinutesPerDay = 24 * 60

// TimeSlot is one weekly meeting: a half-open [Start, End) interval in
// minutes since midnight on Day.
type TimeSlot struct {
	Day   Weekday
	Start int
	End   int
}

// Valid reports whether the slot has a known day and 0 <= Start < End <= 24:00.
func (s TimeSlot) Valid() bool {
	return s.Day.Valid() && s.Start >= 0 && s.Start < s.End && s.End <= MinutesPerDay
}

func (s TimeSlot) Duration() int {
	return s.End - s.Start
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%s %s-%s", s.Day, FormatClock(s.Start), FormatClock(s.End))
}

// ParseTimeSlot parses "MON 09:00-10:15". The day may be a full name.
func ParseTimeSlot(s string) (TimeSlot, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return TimeSlot{}, fmt.Errorf("invalid time slot %q (expected \"DAY HH:MM-HH:MM\")", s)
	}
	day, err := ParseWeekday(fields[0])
	if err != nil {
		return TimeSlot{}, fmt.Errorf("invalid time slot %q: %w", s, err)
	}
	startStr, endStr, ok := strings.Cut(fields[1], "-")
	if !ok {
		return TimeSlot{}, fmt.Errorf("invalid time slot %q (missing '-')", s)
	}
	start, err := ParseClock(startStr)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("invalid time slot %q: %w", s, err)
	}
	end, err := ParseClock(endStr)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("invalid time slot %q: %w", s, err)
	}
	slot := TimeSlot{Day: day, Start: start, End: end}
	if !slot.Valid() {
		return TimeSlot{}, fmt.Errorf("invalid time slot %q: start must be before end", s)
	}
	return slot, nil
}

// ParseClock parses "HH:MM" (or "H:MM") into minutes since midnight.
// "24:00" is accepted as the end of day.
func ParseClock(s string) (int, error) {
	hStr, mStr, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock time %q (expected HH:MM)", s)
	}
	h, err := strconv.Atoi(hStr)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	m, err := strconv.Atoi(mStr)
	if err != nil || len(mStr) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
