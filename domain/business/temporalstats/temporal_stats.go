package temporalstats

import (
	"time"

	statsErrors "bikeshare/domain/business/errors"
	"bikeshare/domain/business/frequency"
	"bikeshare/domain/entities/dataset"
	"bikeshare/domain/entities/trip"
)

// TemporalStats most frequent times of travel
// + MostCommonMonth: month with more trips
// + MostCommonDay: weekday name with more trips. Ties are broken alphabetically
// + MostCommonHour: start hour (0-23) with more trips
type TemporalStats struct {
	MostCommonMonth      time.Month `json:"most_common_month"`
	MostCommonMonthCount int        `json:"most_common_month_count"`
	MostCommonDay        string     `json:"most_common_day"`
	MostCommonDayCount   int        `json:"most_common_day_count"`
	MostCommonHour       int        `json:"most_common_hour"`
	MostCommonHourCount  int        `json:"most_common_hour_count"`
}

// Compute returns the most common month, weekday and hour of the trips of the Dataset.
// It fails with ErrEmptyDataset if the Dataset has no trips.
func Compute(ds dataset.Dataset) (*TemporalStats, error) {
	if ds.IsEmpty() {
		return nil, statsErrors.ErrEmptyDataset
	}

	months := frequency.NewOrderedCounter[time.Month]()
	days := frequency.NewOrderedCounter[string]()
	hours := frequency.NewOrderedCounter[int]()

	ds.Each(func(record trip.TripRecord) {
		months.Update(record.Month)
		days.Update(record.Weekday.String())
		hours.Update(record.Hour)
	})

	month, monthCount, err := months.Mode()
	if err != nil {
		return nil, err
	}

	day, dayCount, err := days.Mode()
	if err != nil {
		return nil, err
	}

	hour, hourCount, err := hours.Mode()
	if err != nil {
		return nil, err
	}

	return &TemporalStats{
		MostCommonMonth:      month,
		MostCommonMonthCount: monthCount,
		MostCommonDay:        day,
		MostCommonDayCount:   dayCount,
		MostCommonHour:       hour,
		MostCommonHourCount:  hourCount,
	}, nil
}
