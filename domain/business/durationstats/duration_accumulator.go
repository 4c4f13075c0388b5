package durationstats

import (
	"errors"
	"fmt"

	statsErrors "bikeshare/domain/business/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrCityMismatch = errors.New("cannot merge duration accumulators of different cities")

// DurationAccumulator collects the trip durations of a given city
// + City: city of the trips. Once set, it cannot change
// + Counter: amount of durations collected
// + Durations: durations collected, in seconds
type DurationAccumulator struct {
	City      string    `json:"city"`
	Counter   int       `json:"counter"`
	Durations []float64 `json:"durations"`
}

func NewDurationAccumulator(city string) *DurationAccumulator {
	return &DurationAccumulator{
		City: city,
	}
}

func (da *DurationAccumulator) UpdateAccumulator(newDuration float64) {
	da.Counter += 1
	da.Durations = append(da.Durations, newDuration)
}

// Merge returns a new accumulator with the durations of both. Neither operand is modified.
func (da *DurationAccumulator) Merge(other *DurationAccumulator) (*DurationAccumulator, error) {
	if da.City != other.City {
		return nil, fmt.Errorf("%w: %s and %s", ErrCityMismatch, da.City, other.City)
	}

	mergedDurations := make([]float64, 0, da.Counter+other.Counter)
	mergedDurations = append(mergedDurations, da.Durations...)
	mergedDurations = append(mergedDurations, other.Durations...)

	return &DurationAccumulator{
		City:      da.City,
		Counter:   da.Counter + other.Counter,
		Durations: mergedDurations,
	}, nil
}

func (da *DurationAccumulator) GetTotal() float64 {
	return floats.Sum(da.Durations)
}

func (da *DurationAccumulator) GetAverage() (float64, error) {
	if da.Counter == 0 {
		return 0, statsErrors.ErrEmptyDataset
	}
	return stat.Mean(da.Durations, nil), nil
}

// GetExtremes returns the shortest and the longest duration collected
func (da *DurationAccumulator) GetExtremes() (float64, float64, error) {
	if da.Counter == 0 {
		return 0, 0, statsErrors.ErrEmptyDataset
	}
	return floats.Min(da.Durations), floats.Max(da.Durations), nil
}

// ToStats freezes the accumulator into DurationStats
func (da *DurationAccumulator) ToStats() (*DurationStats, error) {
	mean, err := da.GetAverage()
	if err != nil {
		return nil, err
	}
	shortest, longest, err := da.GetExtremes()
	if err != nil {
		return nil, err
	}

	return &DurationStats{
		Trips:           da.Counter,
		TotalSeconds:    da.GetTotal(),
		MeanSeconds:     mean,
		ShortestSeconds: shortest,
		LongestSeconds:  longest,
	}, nil
}
