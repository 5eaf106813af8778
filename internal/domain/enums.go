package domain

import (
	"fmt"
	"strings"
)

type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// AllWeekdays lists the seven days in timetable order.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// SchoolDays are the days counted for free-day bonuses.
var SchoolDays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayCodes = [...]string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayCodes[d]
}

// ParseWeekday accepts three-letter codes and full English names, case-insensitive.
func ParseWeekday(s string) (Weekday, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if len(v) >= 3 {
		for i, code := range weekdayCodes {
			if v == code || (strings.HasPrefix(v, code) && strings.HasSuffix(v, "DAY")) {
				return Weekday(i), nil
			}
		}
	}
	// Short forms that do not share the code prefix.
	switch v {
	case "TUES":
		return Tuesday, nil
	case "THUR", "THURS":
		return Thursday, nil
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

type Delivery string

const (
	DeliveryOnline  Delivery = "ONLINE"
	DeliveryOffline Delivery = "OFFLINE"
	DeliveryHybrid  Delivery = "HYBRID"
)

// ValidDeliveries is the canonical set of accepted delivery strings.
var ValidDeliveries = map[string]bool{
	"ONLINE": true, "OFFLINE": true, "HYBRID": true,
}

// ParseDelivery normalizes a delivery string. Empty input means OFFLINE.
func ParseDelivery(s string) (Delivery, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return DeliveryOffline, nil
	}
	if !ValidDeliveries[v] {
		return "", fmt.Errorf("invalid delivery %q (expected ONLINE, OFFLINE or HYBRID)", s)
	}
	return Delivery(v), nil
}

type Strategy string

const (
	StrategyMajorFocus    Strategy = "MAJOR_FOCUS"
	StrategyMix           Strategy = "MIX"
	StrategyInterestFocus Strategy = "INTEREST_FOCUS"
)

// ParseStrategy accepts the canonical names plus lowercase/dashed variants.
// Empty input means MIX.
func ParseStrategy(s string) (Strategy, error) {
	v := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	switch v {
	case "":
		return StrategyMix, nil
	case "MAJOR", "MAJOR_FOCUS":
		return StrategyMajorFocus, nil
	case "MIX", "BALANCED":
		return StrategyMix, nil
	case "INTEREST", "INTEREST_FOCUS":
		return StrategyInterestFocus, nil
	}
	return "", fmt.Errorf("invalid strategy %q (expected MAJOR_FOCUS, MIX or INTEREST_FOCUS)", s)
}
