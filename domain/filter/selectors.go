package filter

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// All disables a selector
const All = "all"

// months are the only months that the month selector recognizes
var months = []string{"january", "february", "march", "april", "may", "june"}

var weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// MonthSelector selects trips by start month. The zero value selects all months
type MonthSelector struct {
	month time.Month
}

// DaySelector selects trips by start weekday. The zero value selects all days
type DaySelector struct {
	weekday time.Weekday
	set     bool
}

func AllMonths() MonthSelector {
	return MonthSelector{}
}

func AllDays() DaySelector {
	return DaySelector{}
}

// ParseMonth parses a month name (january to june) or "all". Case is ignored
func ParseMonth(name string) (MonthSelector, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == All {
		return AllMonths(), nil
	}

	for idx, month := range months {
		if month == normalized {
			return MonthSelector{month: time.Month(idx + 1)}, nil
		}
	}

	return MonthSelector{}, fmt.Errorf("%w: %q", ErrInvalidMonthName, name)
}

// ParseDay parses a weekday name or "all". The name is capitalized before matching it
func ParseDay(name string) (DaySelector, error) {
	trimmed := strings.TrimSpace(name)
	if strings.ToLower(trimmed) == All {
		return AllDays(), nil
	}

	capitalized := cases.Title(language.English).String(trimmed)
	for _, weekday := range weekdays {
		if weekday.String() == capitalized {
			return DaySelector{weekday: weekday, set: true}, nil
		}
	}

	return DaySelector{}, fmt.Errorf("%w: %q", ErrInvalidDayName, name)
}

// MonthNames returns the names accepted by ParseMonth, without "all"
func MonthNames() []string {
	names := make([]string, len(months))
	copy(names, months)
	return names
}

// DayNames returns the names accepted by ParseDay, without "all"
func DayNames() []string {
	names := make([]string, 0, len(weekdays))
	for _, weekday := range weekdays {
		names = append(names, weekday.String())
	}
	return names
}

func (ms MonthSelector) IsAll() bool {
	return ms.month == 0
}

func (ms MonthSelector) Matches(month time.Month) bool {
	return ms.IsAll() || ms.month == month
}

func (ms MonthSelector) String() string {
	if ms.IsAll() {
		return All
	}
	return months[ms.month-1]
}

func (ds DaySelector) IsAll() bool {
	return !ds.set
}

func (ds DaySelector) Matches(weekday time.Weekday) bool {
	return ds.IsAll() || ds.weekday == weekday
}

func (ds DaySelector) String() string {
	if ds.IsAll() {
		return All
	}
	return ds.weekday.String()
}
