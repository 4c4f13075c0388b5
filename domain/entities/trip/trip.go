package trip

import "time"

// TripRecord struct that contains the data of a single ride
// + StartTime: date and time in which the trip begins
// + EndTime: date and time in which the trip ends. Zero if the source does not have it
// + StartStation: name of the station in which the trip begins
// + EndStation: name of the station in which the trip ends
// + Duration: duration of the trip in seconds
// + UserType: type of the rider (Subscriber, Customer, ...)
// + Gender: gender of the rider. Empty if it was not recorded
// + BirthYear: birth year of the rider. Zero if it was not recorded
// + Month, Weekday, Hour: derived from StartTime when the record is created. They never change
type TripRecord struct {
	StartTime    time.Time    `json:"start_time"`
	EndTime      time.Time    `json:"end_time"`
	StartStation string       `json:"start_station"`
	EndStation   string       `json:"end_station"`
	Duration     float64      `json:"duration"`
	UserType     string       `json:"user_type"`
	Gender       string       `json:"gender,omitempty"`
	BirthYear    int          `json:"birth_year,omitempty"`
	Month        time.Month   `json:"month"`
	Weekday      time.Weekday `json:"weekday"`
	Hour         int          `json:"hour"`
}

// NewTripRecord returns a TripRecord with Month, Weekday and Hour taken from startTime
func NewTripRecord(startTime time.Time, startStation string, endStation string, duration float64, userType string) TripRecord {
	return TripRecord{
		StartTime:    startTime,
		StartStation: startStation,
		EndStation:   endStation,
		Duration:     duration,
		UserType:     userType,
		Month:        startTime.Month(),
		Weekday:      startTime.Weekday(),
		Hour:         startTime.Hour(),
	}
}

func (tr TripRecord) HasGender() bool {
	return tr.Gender != ""
}

func (tr TripRecord) HasBirthYear() bool {
	return tr.BirthYear != 0
}
