package util

import (
	"time"

	"github.com/teambition/rrule-go"
)

// WorkingDaysInMonth counts the Monday-to-Friday days of a calendar month.
func WorkingDaysInMonth(month, year int) int {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   start,
		Until:     end,
		Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
	})
	if err != nil {
		return 0
	}

	return len(rule.All())
}
