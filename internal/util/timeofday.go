// internal/util/timeofday.go
package util

import (
	"strings"
	"time"
)

// timeOfDayLayouts are tried in order; "3" and "15" accept one or two digits.
var timeOfDayLayouts = []string{"3:04 PM", "3 PM", "15:04", "15"}

// TimeOfDay is an hour and minute without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay accepts free text such as "9 PM", "9:05 PM", "21:05" or "09".
// Dots are dropped so "9 p.m." parses too.
func ParseTimeOfDay(text string) (TimeOfDay, error) {
	s := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(text)), ".", "")
	for _, layout := range timeOfDayLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return TimeOfDay{}, NewValidationError("time", "use 9 PM, 9:05 PM or 21:05")
}

// On places the time of day on day's calendar date, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, day.Location())
}
