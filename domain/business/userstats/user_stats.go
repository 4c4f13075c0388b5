package userstats

import (
	"bikeshare/domain/business/frequency"
	"bikeshare/domain/entities/dataset"
	"bikeshare/domain/entities/trip"
)

// CategoryCount amount of trips of a given category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// GenderStats counts of gender. If Available is false, the source of the Dataset does not have gender
type GenderStats struct {
	Available bool            `json:"available"`
	Counts    []CategoryCount `json:"counts,omitempty"`
}

// BirthYearStats earliest, most recent and most common year of birth.
// If Available is false, the source of the Dataset does not have birth years.
type BirthYearStats struct {
	Available       bool `json:"available"`
	Earliest        int  `json:"earliest,omitempty"`
	MostRecent      int  `json:"most_recent,omitempty"`
	MostCommon      int  `json:"most_common,omitempty"`
	MostCommonCount int  `json:"most_common_count,omitempty"`
}

// UserStats stats about the riders
type UserStats struct {
	UserTypes []CategoryCount `json:"user_types"`
	Gender    GenderStats     `json:"gender"`
	BirthYear BirthYearStats  `json:"birth_year"`
}

// Compute returns the user stats of the Dataset. User types are always computed.
// Gender and birth year are only computed if the Dataset has those fields.
// If the birth year stats cannot be computed, the error is returned along with the rest of the stats.
func Compute(ds dataset.Dataset) (*UserStats, error) {
	userStats := &UserStats{
		UserTypes: CountUserTypes(ds),
		Gender:    CountGenders(ds),
	}

	birthYearStats, err := SummarizeBirthYears(ds)
	userStats.BirthYear = birthYearStats
	if err != nil {
		return userStats, err
	}

	return userStats, nil
}

// CountUserTypes returns the amount of trips of each user type, most frequent first.
// An empty Dataset has no user types.
func CountUserTypes(ds dataset.Dataset) []CategoryCount {
	userTypes := frequency.NewOrderedCounter[string]()
	ds.Each(func(record trip.TripRecord) {
		if record.UserType != "" {
			userTypes.Update(record.UserType)
		}
	})
	return toCategoryCounts(userTypes)
}

// CountGenders returns the amount of trips of each gender. Trips without gender are not counted
func CountGenders(ds dataset.Dataset) GenderStats {
	if !ds.HasField(trip.FieldGender) {
		return GenderStats{Available: false}
	}

	genders := frequency.NewOrderedCounter[string]()
	ds.Each(func(record trip.TripRecord) {
		if record.HasGender() {
			genders.Update(record.Gender)
		}
	})

	return GenderStats{
		Available: true,
		Counts:    toCategoryCounts(genders),
	}
}

// SummarizeBirthYears returns earliest, most recent and most common birth year of the trips
// that have one. It fails with ErrEmptyDataset if the field is available but no trip has a birth year.
func SummarizeBirthYears(ds dataset.Dataset) (BirthYearStats, error) {
	if !ds.HasField(trip.FieldBirthYear) {
		return BirthYearStats{Available: false}, nil
	}

	birthYears := frequency.NewOrderedCounter[int]()
	birthYearStats := BirthYearStats{Available: true}
	ds.Each(func(record trip.TripRecord) {
		if !record.HasBirthYear() {
			return
		}

		if birthYears.Len() == 0 || record.BirthYear < birthYearStats.Earliest {
			birthYearStats.Earliest = record.BirthYear
		}
		if birthYears.Len() == 0 || record.BirthYear > birthYearStats.MostRecent {
			birthYearStats.MostRecent = record.BirthYear
		}
		birthYears.Update(record.BirthYear)
	})

	mostCommon, mostCommonCount, err := birthYears.Mode()
	if err != nil {
		return BirthYearStats{Available: true}, err
	}

	birthYearStats.MostCommon = mostCommon
	birthYearStats.MostCommonCount = mostCommonCount
	return birthYearStats, nil
}

func toCategoryCounts(counter *frequency.Counter[string]) []CategoryCount {
	entries := counter.Sorted()
	categoryCounts := make([]CategoryCount, 0, len(entries))
	for _, entry := range entries {
		categoryCounts = append(categoryCounts, CategoryCount{Category: entry.Value, Count: entry.Count})
	}
	return categoryCounts
}
