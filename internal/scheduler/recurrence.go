package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/usmaclub/signup-bot/internal/config"
)

// weekdayFragments maps lowercase day-name fragments to weekdays, for
// matching against rule names and command arguments.
var weekdayFragments = []struct {
	fragment string
	day      time.Weekday
}{
	{"mon", time.Monday},
	{"tue", time.Tuesday},
	{"wed", time.Wednesday},
	{"thu", time.Thursday},
	{"fri", time.Friday},
	{"sat", time.Saturday},
	{"sun", time.Sunday},
}

// WeekdayFromName finds a weekday by day-name fragment anywhere in the
// given string, case-insensitive.
func WeekdayFromName(name string) (time.Weekday, bool) {
	name = strings.ToLower(name)
	for _, entry := range weekdayFragments {
		if strings.Contains(name, entry.fragment) {
			return entry.day, true
		}
	}
	return 0, false
}

// NextWeekdayDate returns the date (YYYY-MM-DD) of the next occurrence
// of the weekday strictly after today.
func NextWeekdayDate(today time.Time, day time.Weekday) string {
	ahead := int(day-today.Weekday()+7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return today.AddDate(0, 0, ahead).Format("2006-01-02")
}

// EventName builds the dated name under which a recurring event is
// published: the base name suffixed with the next occurrence of its
// weekday, disambiguating repeated runs of the same rule.
func EventName(base string, today time.Time, day time.Weekday) string {
	return fmt.Sprintf("%s – %s", base, NextWeekdayDate(today, day))
}

// SimpleDue reports whether a weekday rule fires at the given instant:
// the UTC hour equals the publish hour and the weekday matches.
func SimpleDue(rule config.SimpleRule, publishHour int, now time.Time) bool {
	day, ok := WeekdayFromName(rule.Weekday)
	if !ok {
		return false
	}
	now = now.UTC()
	return now.Hour() == publishHour && now.Weekday() == day
}

// AdvancedDue reports whether an interval rule fires at the given
// instant: a whole non-negative number of intervals has elapsed since
// the anchor date and the UTC hour matches.
func AdvancedDue(rule config.AdvancedRule, now time.Time) bool {
	start, err := time.Parse("2006-01-02", rule.StartDate)
	if err != nil {
		return false
	}
	now = now.UTC()
	if now.Hour() != rule.Hour {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(today.Sub(start).Hours() / 24)
	return days >= 0 && days%rule.IntervalDays == 0
}

// AnchorWeekday returns the weekday of an advanced rule's start date.
func AnchorWeekday(rule config.AdvancedRule) (time.Weekday, bool) {
	start, err := time.Parse("2006-01-02", rule.StartDate)
	if err != nil {
		return 0, false
	}
	return start.Weekday(), true
}
