package formatter

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/tably/internal/app"
	"github.com/alexanderramin/tably/internal/domain"
)

type EntryKind int

const (
	EntryCourse EntryKind = iota
	EntryFixed
	EntryBlocked
)

// GridEntry is one slot placed on the weekly grid.
type GridEntry struct {
	Slot  domain.TimeSlot
	Label string
	Kind  EntryKind
}

// CandidateGrid collects the entries of one timetable: its courses, the
// fixed commitments and the blocked intervals.
func CandidateGrid(c app.TimetableCandidate, fixed []domain.FixedCommitment, blocked []domain.BlockedInterval) []GridEntry {
	var entries []GridEntry
	for _, course := range c.Courses {
		for _, s := range course.MeetingTimes {
			entries = append(entries, GridEntry{Slot: s, Label: course.ID, Kind: EntryCourse})
		}
	}
	for _, f := range fixed {
		label := f.Title
		if f.CourseID != "" {
			label = f.CourseID
		}
		for _, s := range f.MeetingTimes {
			entries = append(entries, GridEntry{Slot: s, Label: label, Kind: EntryFixed})
		}
	}
	for _, b := range blocked {
		entries = append(entries, GridEntry{Slot: b.Slot, Label: b.Label, Kind: EntryBlocked})
	}
	return entries
}

// RenderWeekGrid renders one column per day, Monday to Friday plus any
// weekend day in use, with each day's entries in start order. Fixed
// commitments are marked with * and blocked time is dimmed.
func RenderWeekGrid(entries []GridEntry) string {
	var byDay [7][]GridEntry
	for _, e := range entries {
		if e.Slot.Day.Valid() {
			byDay[e.Slot.Day] = append(byDay[e.Slot.Day], e)
		}
	}

	days := append([]domain.Weekday(nil), domain.SchoolDays...)
	for _, d := range []domain.Weekday{domain.Saturday, domain.Sunday} {
		if len(byDay[d]) > 0 {
			days = append(days, d)
		}
	}

	height := 0
	for _, d := range days {
		list := byDay[d]
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Slot.Start != list[j].Slot.Start {
				return list[i].Slot.Start < list[j].Slot.Start
			}
			return list[i].Label < list[j].Label
		})
		height = max(height, len(list))
	}

	headers := make([]string, len(days))
	for i, d := range days {
		headers[i] = d.String()
	}
	rows := make([][]string, height)
	for r := range rows {
		rows[r] = make([]string, len(days))
		for c, d := range days {
			if r < len(byDay[d]) {
				rows[r][c] = renderGridCell(byDay[d][r])
			}
		}
	}
	if height == 0 {
		rows = [][]string{make([]string, len(days))}
		rows[0][0] = Dim("(empty week)")
	}
	return RenderTable(headers, rows)
}

func renderGridCell(e GridEntry) string {
	text := fmt.Sprintf("%s-%s %s", domain.FormatClock(e.Slot.Start), domain.FormatClock(e.Slot.End), e.Label)
	switch e.Kind {
	case EntryFixed:
		return StyleBlue.Render(text + "*")
	case EntryBlocked:
		return Dim(text)
	default:
		return StyleFg.Render(text)
	}
}
