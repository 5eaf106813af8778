package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/tably/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

const timeLayout = time.RFC3339

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// parseTime returns the zero time for empty or malformed values.
func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// joinList stores a string list in one TEXT column.
func joinList(vals []string) string {
	return strings.Join(vals, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinWeekdays(days []domain.Weekday) string {
	codes := make([]string, len(days))
	for i, d := range days {
		codes[i] = d.String()
	}
	return joinList(codes)
}

// splitWeekdays skips codes it cannot parse.
func splitWeekdays(s string) []domain.Weekday {
	var days []domain.Weekday
	for _, code := range splitList(s) {
		if d, err := domain.ParseWeekday(code); err == nil {
			days = append(days, d)
		}
	}
	return days
}
