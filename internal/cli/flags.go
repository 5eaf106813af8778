package cli

import (
	"strings"

	"github.com/alexanderramin/tably/internal/domain"
	"github.com/spf13/pflag"
)

// weekdayList is a pflag.Value collecting weekdays from repeated or
// comma-separated flags ("--avoid-day fri --avoid-day MON,tue"). Values are
// normalized to their three-letter codes.
type weekdayList struct {
	days []string
}

var _ pflag.Value = (*weekdayList)(nil)

func (l *weekdayList) String() string {
	return strings.Join(l.days, ",")
}

func (l *weekdayList) Set(raw string) error {
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, err := domain.ParseWeekday(part)
		if err != nil {
			return err
		}
		l.days = append(l.days, day.String())
	}
	return nil
}

func (l *weekdayList) Type() string {
	return "weekdays"
}

func (l *weekdayList) Values() []string {
	return l.days
}
