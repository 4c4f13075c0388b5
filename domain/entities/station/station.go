package station

import (
	"strings"

	"github.com/umahmood/haversine"
)

// StationData struct that contains the location of a station
type StationData struct {
	Name      string  `json:"name" csv:"name"`
	Latitude  float64 `json:"latitude" csv:"latitude"`
	Longitude float64 `json:"longitude" csv:"longitude"`
}

// Catalog maps station names to their data. A nil Catalog locates nothing.
type Catalog map[string]StationData

func NewCatalog(stations []StationData) Catalog {
	catalog := make(Catalog, len(stations))
	for _, stationData := range stations {
		catalog[normalizeName(stationData.Name)] = stationData
	}
	return catalog
}

func (c Catalog) Locate(name string) (StationData, bool) {
	stationData, ok := c[normalizeName(name)]
	return stationData, ok
}

// DistanceKm returns the haversine distance in kilometers between two stations of the catalog.
// The second return value is false if any of them is unknown.
func (c Catalog) DistanceKm(startStation string, endStation string) (float64, bool) {
	start, ok := c.Locate(startStation)
	if !ok {
		return 0, false
	}

	end, ok := c.Locate(endStation)
	if !ok {
		return 0, false
	}

	startCoord := haversine.Coord{Lat: start.Latitude, Lon: start.Longitude}
	endCoord := haversine.Coord{Lat: end.Latitude, Lon: end.Longitude}
	_, km := haversine.Distance(startCoord, endCoord)
	return km, true
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
