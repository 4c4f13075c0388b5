package filter

import (
	"bikeshare/domain/entities/dataset"
	"bikeshare/domain/entities/trip"
)

// Apply returns a new Dataset with the trips that match both selectors, in their original order
func Apply(ds dataset.Dataset, month MonthSelector, day DaySelector) dataset.Dataset {
	return ds.Where(func(record trip.TripRecord) bool {
		return month.Matches(record.Month) && day.Matches(record.Weekday)
	})
}

// Filter parses both selectors and applies them to the Dataset.
// If any selector is invalid nothing is filtered and the error is returned.
func Filter(ds dataset.Dataset, monthName string, dayName string) (dataset.Dataset, error) {
	month, err := ParseMonth(monthName)
	if err != nil {
		return dataset.Dataset{}, err
	}

	day, err := ParseDay(dayName)
	if err != nil {
		return dataset.Dataset{}, err
	}

	return Apply(ds, month, day), nil
}
