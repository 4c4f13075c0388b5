package config

import (
	"strings"
)

const (
	DefaultTimeLayout   = "2006-01-02 15:04:05"
	DefaultCSVDelimiter = ","
)

// CityConfig where to find the data of a city
// + Name: name of the city, as the user types it
// + TripsSource: path to the trips .csv file
// + StationsSource: optional path to a .csv file with name,latitude,longitude of each station
type CityConfig struct {
	Name           string `yaml:"name" validate:"required"`
	TripsSource    string `yaml:"trips_source" validate:"required"`
	StationsSource string `yaml:"stations_source"`
}

// LoaderConfig contains the table of cities and how to read their sources
type LoaderConfig struct {
	TimeLayout   string       `yaml:"time_layout"`
	CSVDelimiter string       `yaml:"csv_delimiter" validate:"omitempty,len=1"`
	Cities       []CityConfig `yaml:"cities" validate:"required,min=1,dive"`
}

// WithDefaults returns a copy of the config with the empty values set to their defaults
func (lc LoaderConfig) WithDefaults() LoaderConfig {
	if lc.TimeLayout == "" {
		lc.TimeLayout = DefaultTimeLayout
	}
	if lc.CSVDelimiter == "" {
		lc.CSVDelimiter = DefaultCSVDelimiter
	}
	return lc
}

// GetCity returns the config of the city with the given name. Case and surrounding spaces are ignored
func (lc LoaderConfig) GetCity(name string) (CityConfig, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, city := range lc.Cities {
		if strings.ToLower(city.Name) == normalized {
			return city, true
		}
	}
	return CityConfig{}, false
}

func (lc LoaderConfig) GetCityNames() []string {
	names := make([]string, 0, len(lc.Cities))
	for _, city := range lc.Cities {
		names = append(names, city.Name)
	}
	return names
}
