package stationstats

import (
	statsErrors "bikeshare/domain/business/errors"
	"bikeshare/domain/business/frequency"
	"bikeshare/domain/entities/dataset"
	"bikeshare/domain/entities/station"
	"bikeshare/domain/entities/trip"
)

// StationPair a combination of start station and end station
type StationPair struct {
	StartStation string `json:"start_station"`
	EndStation   string `json:"end_station"`
}

// Less orders pairs by start station and then by end station
func (sp StationPair) Less(other StationPair) bool {
	if sp.StartStation != other.StartStation {
		return sp.StartStation < other.StartStation
	}
	return sp.EndStation < other.EndStation
}

// PopularTrip the most frequent combination of stations
// + Count: amount of trips made between both stations
// + DistanceKm: straight distance between both stations. Only set if HasDistance is true
type PopularTrip struct {
	StationPair
	Count       int     `json:"count"`
	DistanceKm  float64 `json:"distance_km,omitempty"`
	HasDistance bool    `json:"has_distance"`
}

// StationStats most popular stations and trip
type StationStats struct {
	MostCommonStartStation      string      `json:"most_common_start_station"`
	MostCommonStartStationCount int         `json:"most_common_start_station_count"`
	MostCommonEndStation        string      `json:"most_common_end_station"`
	MostCommonEndStationCount   int         `json:"most_common_end_station_count"`
	MostCommonTrip              PopularTrip `json:"most_common_trip"`
}

// Compute returns the most common start station, end station and combination of both.
// If the catalog locates both stations of the most common trip, its distance is added.
// The catalog can be nil. It fails with ErrEmptyDataset if the Dataset has no trips.
func Compute(ds dataset.Dataset, catalog station.Catalog) (*StationStats, error) {
	if ds.IsEmpty() {
		return nil, statsErrors.ErrEmptyDataset
	}

	startStations := frequency.NewOrderedCounter[string]()
	endStations := frequency.NewOrderedCounter[string]()
	pairs := frequency.NewCounter[StationPair](StationPair.Less)

	ds.Each(func(record trip.TripRecord) {
		startStations.Update(record.StartStation)
		endStations.Update(record.EndStation)
		pairs.Update(StationPair{StartStation: record.StartStation, EndStation: record.EndStation})
	})

	startStation, startCount, err := startStations.Mode()
	if err != nil {
		return nil, err
	}

	endStation, endCount, err := endStations.Mode()
	if err != nil {
		return nil, err
	}

	pair, pairCount, err := pairs.Mode()
	if err != nil {
		return nil, err
	}

	popularTrip := PopularTrip{
		StationPair: pair,
		Count:       pairCount,
	}
	popularTrip.DistanceKm, popularTrip.HasDistance = catalog.DistanceKm(pair.StartStation, pair.EndStation)

	return &StationStats{
		MostCommonStartStation:      startStation,
		MostCommonStartStationCount: startCount,
		MostCommonEndStation:        endStation,
		MostCommonEndStationCount:   endCount,
		MostCommonTrip:              popularTrip,
	}, nil
}
