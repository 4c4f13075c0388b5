package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"bikeshare/domain/entities/dataset"
	"bikeshare/domain/entities/station"
	"bikeshare/domain/entities/trip"
	"bikeshare/domain/loader/config"
	"bikeshare/utils"
	"github.com/jszwec/csvutil"
	log "github.com/sirupsen/logrus"
)

const (
	startTimeColumn    = "Start Time"
	endTimeColumn      = "End Time"
	durationColumn     = "Trip Duration"
	startStationColumn = "Start Station"
	endStationColumn   = "End Station"
	userTypeColumn     = "User Type"
	genderColumn       = "Gender"
	birthYearColumn    = "Birth Year"
)

var requiredColumns = []string{startTimeColumn, durationColumn, startStationColumn, endStationColumn, userTypeColumn}

// tripRow raw values of a row of a trips source. Values are parsed by the Loader,
// so every field is decoded as a string
type tripRow struct {
	StartTime    string `csv:"Start Time"`
	EndTime      string `csv:"End Time"`
	Duration     string `csv:"Trip Duration"`
	StartStation string `csv:"Start Station"`
	EndStation   string `csv:"End Station"`
	UserType     string `csv:"User Type"`
	Gender       string `csv:"Gender"`
	BirthYear    string `csv:"Birth Year"`
}

// Loader builds Datasets from the .csv sources of the configured cities
type Loader struct {
	config config.LoaderConfig
}

func NewLoader(loaderConfig config.LoaderConfig) *Loader {
	return &Loader{
		config: loaderConfig.WithDefaults(),
	}
}

func (l *Loader) GetCityNames() []string {
	return l.config.GetCityNames()
}

// Load reads the trips source of the city. Any error aborts the load, no partial Dataset is returned
func (l *Loader) Load(city string) (dataset.Dataset, error) {
	cityConfig, ok := l.config.GetCity(city)
	if !ok {
		return dataset.Dataset{}, fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}

	tripsFile, err := os.Open(cityConfig.TripsSource)
	if err != nil {
		log.Errorf("[loader][city: %s][method: Load][status: ERROR] error opening %s: %s", cityConfig.Name, cityConfig.TripsSource, err.Error())
		return dataset.Dataset{}, fmt.Errorf("error opening trips source of %s: %w", cityConfig.Name, err)
	}

	defer func(tripsFile *os.File) {
		err := tripsFile.Close()
		if err != nil {
			log.Errorf("[loader][city: %s] error closing %s: %s", cityConfig.Name, cityConfig.TripsSource, err.Error())
		}
	}(tripsFile)

	return l.Parse(cityConfig.Name, tripsFile)
}

// Parse decodes a trips source. The first line must be the header. Month, weekday and hour of each
// trip are derived from its start time, and the optional fields of the Dataset are taken from the header
func (l *Loader) Parse(city string, reader io.Reader) (dataset.Dataset, error) {
	decoder, err := l.newDecoder(reader)
	if err != nil {
		return dataset.Dataset{}, err
	}

	header := decoder.Header()
	for _, column := range requiredColumns {
		if !utils.ContainsString(column, header) {
			return dataset.Dataset{}, fmt.Errorf("%w: %q", ErrMissingColumn, column)
		}
	}

	fields := trip.NewFieldSet()
	if utils.ContainsString(genderColumn, header) {
		fields[trip.FieldGender] = true
	}
	if utils.ContainsString(birthYearColumn, header) {
		fields[trip.FieldBirthYear] = true
	}

	var records []trip.TripRecord
	for rowNumber := 1; ; rowNumber++ {
		var row tripRow
		err = decoder.Decode(&row)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return dataset.Dataset{}, fmt.Errorf("%w: row %v: %s", ErrMalformedRecord, rowNumber, err.Error())
		}

		record, err := l.toTripRecord(city, row)
		if err != nil {
			log.Debugf("[loader][city: %s][row: %v] invalid row: %s", city, rowNumber, err.Error())
			return dataset.Dataset{}, fmt.Errorf("row %v: %w", rowNumber, err)
		}
		records = append(records, record)
	}

	log.Infof("[loader][city: %s][status: OK] %v trips loaded, optional fields: %v", city, len(records), fields.Fields())
	return dataset.NewDataset(city, records, fields), nil
}

// LoadStations reads the stations source of the city. If the city does not have one, a nil Catalog is returned
func (l *Loader) LoadStations(city string) (station.Catalog, error) {
	cityConfig, ok := l.config.GetCity(city)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}

	if cityConfig.StationsSource == "" {
		return nil, nil
	}

	stationsFile, err := os.Open(cityConfig.StationsSource)
	if err != nil {
		return nil, fmt.Errorf("error opening stations source of %s: %w", cityConfig.Name, err)
	}
	defer stationsFile.Close()

	return l.ParseStations(stationsFile)
}

// ParseStations decodes a stations source with the columns name, latitude and longitude
func (l *Loader) ParseStations(reader io.Reader) (station.Catalog, error) {
	decoder, err := l.newDecoder(reader)
	if err != nil {
		return nil, err
	}

	var stations []station.StationData
	if err := decoder.Decode(&stations); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", ErrMalformedRecord, err.Error())
	}

	log.Debugf("[loader][status: OK] %v stations loaded", len(stations))
	return station.NewCatalog(stations), nil
}

func (l *Loader) newDecoder(reader io.Reader) (*csvutil.Decoder, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = []rune(l.config.CSVDelimiter)[0]
	csvReader.TrimLeadingSpace = true

	decoder, err := csvutil.NewDecoder(csvReader)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: source is empty", ErrMissingColumn)
		}
		return nil, fmt.Errorf("%w: error reading header: %s", ErrMalformedRecord, err.Error())
	}
	return decoder, nil
}

func (l *Loader) toTripRecord(city string, row tripRow) (trip.TripRecord, error) {
	startTime, err := time.Parse(l.config.TimeLayout, strings.TrimSpace(row.StartTime))
	if err != nil {
		return trip.TripRecord{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, row.StartTime)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(row.Duration), 64)
	if err != nil || !isFinite(duration) {
		return trip.TripRecord{}, fmt.Errorf("%w: invalid trip duration %q", ErrMalformedRecord, row.Duration)
	}

	if duration < 0 {
		return trip.TripRecord{}, fmt.Errorf("%w: %v", ErrNegativeDuration, duration)
	}

	record := trip.NewTripRecord(startTime, row.StartStation, row.EndStation, duration, row.UserType)
	record.Gender = strings.TrimSpace(row.Gender)

	if endTimeStr := strings.TrimSpace(row.EndTime); endTimeStr != "" {
		endTime, err := time.Parse(l.config.TimeLayout, endTimeStr)
		if err != nil {
			log.Warnf("[loader][city: %s][status: WARN] invalid end time %q, ignoring it", city, row.EndTime)
		} else {
			record.EndTime = endTime
		}
	}

	if birthYearStr := strings.TrimSpace(row.BirthYear); birthYearStr != "" {
		birthYear, err := strconv.ParseFloat(birthYearStr, 64)
		// years may come as 1992.0, but never with a fractional part
		if err != nil || !isFinite(birthYear) || birthYear != math.Trunc(birthYear) {
			return trip.TripRecord{}, fmt.Errorf("%w: invalid birth year %q", ErrMalformedRecord, row.BirthYear)
		}
		record.BirthYear = int(birthYear)
	}

	return record, nil
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
