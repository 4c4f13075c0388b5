package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bikeshare/domain/entities/trip"
	"bikeshare/domain/loader/config"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chicagoTrips = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1423854,2017-06-23 15:09:32,2017-06-23 15:14:53,321,Wood St & Hubbard St,Damen Ave & Chicago Ave,Subscriber,Male,1992.0
955915,2017-05-25 18:19:03,2017-05-25 18:45:53,1610,Theater on the Lake,Sheffield Ave & Waveland Ave,Subscriber,Female,1992.0
9031,2017-01-04 08:27:49,2017-01-04 08:34:45,416,May St & Taylor St,Wood St & Taylor St,Customer,,
`

const washingtonTrips = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type
1621326,2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber
482740,2017-03-11 10:40:00,2017-03-11 10:46:00,402.549,Yuma St & Tenley Circle NW,Connecticut Ave & Yuma St NW,Subscriber
`

func newTestLoader(cities ...config.CityConfig) *Loader {
	return NewLoader(config.LoaderConfig{Cities: cities})
}

func TestParse_WithOptionalFields(t *testing.T) {
	ds, err := newTestLoader().Parse("chicago", strings.NewReader(chicagoTrips))

	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())
	assert.True(t, ds.HasField(trip.FieldGender))
	assert.True(t, ds.HasField(trip.FieldBirthYear))

	records := ds.Records()
	first := records[0]
	assert.Equal(t, time.Date(2017, time.June, 23, 15, 9, 32, 0, time.UTC), first.StartTime)
	assert.Equal(t, time.Date(2017, time.June, 23, 15, 14, 53, 0, time.UTC), first.EndTime)
	assert.Equal(t, time.June, first.Month)
	assert.Equal(t, time.Friday, first.Weekday)
	assert.Equal(t, 15, first.Hour)
	assert.Equal(t, "Wood St & Hubbard St", first.StartStation)
	assert.Equal(t, "Damen Ave & Chicago Ave", first.EndStation)
	assert.Equal(t, 321.0, first.Duration)
	assert.Equal(t, "Subscriber", first.UserType)
	assert.Equal(t, "Male", first.Gender)
	assert.Equal(t, 1992, first.BirthYear)

	last := records[2]
	assert.False(t, last.HasGender())
	assert.False(t, last.HasBirthYear())
	assert.Equal(t, "Customer", last.UserType)
}

func TestParse_WithoutOptionalFields(t *testing.T) {
	ds, err := newTestLoader().Parse("washington", strings.NewReader(washingtonTrips))

	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.False(t, ds.HasField(trip.FieldGender))
	assert.False(t, ds.HasField(trip.FieldBirthYear))
	assert.InDelta(t, 489.066, ds.Records()[0].Duration, 1e-9)
}

func TestParse_Errors(t *testing.T) {
	header := "Start Time,End Time,Trip Duration,Start Station,End Station,User Type\n"
	tests := []struct {
		name          string
		source        string
		expectedError error
	}{
		{
			name:          "malformed start time",
			source:        header + "2017-06-21 08:36:34,,10,A,B,Subscriber\n21/06/2017 08:36,,10,A,B,Subscriber\n",
			expectedError: ErrMalformedTimestamp,
		},
		{
			name:          "empty start time",
			source:        header + ",,10,A,B,Subscriber\n",
			expectedError: ErrMalformedTimestamp,
		},
		{
			name:          "invalid duration",
			source:        header + "2017-06-21 08:36:34,,ten,A,B,Subscriber\n",
			expectedError: ErrMalformedRecord,
		},
		{
			name:          "negative duration",
			source:        header + "2017-06-21 08:36:34,,-1,A,B,Subscriber\n",
			expectedError: ErrNegativeDuration,
		},
		{
			name:          "missing required column",
			source:        "Start Time,Trip Duration,Start Station,User Type\n2017-06-21 08:36:34,10,A,Subscriber\n",
			expectedError: ErrMissingColumn,
		},
		{
			name:          "empty source",
			source:        "",
			expectedError: ErrMissingColumn,
		},
		{
			name:          "invalid birth year",
			source:        "Start Time,Trip Duration,Start Station,End Station,User Type,Birth Year\n2017-06-21 08:36:34,10,A,B,Subscriber,old\n",
			expectedError: ErrMalformedRecord,
		},
		{
			name:          "NaN duration",
			source:        header + "2017-06-21 08:36:34,,NaN,A,B,Subscriber\n",
			expectedError: ErrMalformedRecord,
		},
		{
			name:          "infinite duration",
			source:        header + "2017-06-21 08:36:34,,+Inf,A,B,Subscriber\n",
			expectedError: ErrMalformedRecord,
		},
		{
			name:          "NaN birth year",
			source:        "Start Time,Trip Duration,Start Station,End Station,User Type,Birth Year\n2017-06-21 08:36:34,10,A,B,Subscriber,NaN\n",
			expectedError: ErrMalformedRecord,
		},
		{
			name:          "infinite birth year",
			source:        "Start Time,Trip Duration,Start Station,End Station,User Type,Birth Year\n2017-06-21 08:36:34,10,A,B,Subscriber,-Inf\n",
			expectedError: ErrMalformedRecord,
		},
		{
			name:          "fractional birth year",
			source:        "Start Time,Trip Duration,Start Station,End Station,User Type,Birth Year\n2017-06-21 08:36:34,10,A,B,Subscriber,1992.9\n",
			expectedError: ErrMalformedRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := newTestLoader().Parse("chicago", strings.NewReader(tt.source))

			assert.ErrorIs(t, err, tt.expectedError)
			assert.Equal(t, 0, ds.Len())
		})
	}
}

func TestParse_InvalidEndTimeIsLeftEmpty(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	source := "Start Time,End Time,Trip Duration,Start Station,End Station,User Type\n2017-06-21 08:36:34,yesterday,10,A,B,Subscriber\n"
	ds, err := newTestLoader().Parse("chicago", strings.NewReader(source))

	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.True(t, ds.Records()[0].EndTime.IsZero())
	var warnings []string
	for _, entry := range hook.AllEntries() {
		if entry.Level == log.WarnLevel {
			warnings = append(warnings, entry.Message)
		}
	}
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "[loader][city: chicago][status: WARN] invalid end time \"yesterday\"")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	tripsPath := filepath.Join(dir, "washington.csv")
	require.NoError(t, os.WriteFile(tripsPath, []byte(washingtonTrips), 0644))

	loader := newTestLoader(config.CityConfig{Name: "washington", TripsSource: tripsPath})

	ds, err := loader.Load("Washington")
	require.NoError(t, err)
	assert.Equal(t, "washington", ds.GetCity())
	assert.Equal(t, 2, ds.Len())

	_, err = loader.Load("chicago")
	assert.ErrorIs(t, err, ErrUnknownCity)
}

func TestLoad_MissingFile(t *testing.T) {
	loader := newTestLoader(config.CityConfig{Name: "chicago", TripsSource: filepath.Join(t.TempDir(), "missing.csv")})

	_, err := loader.Load("chicago")

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadStations(t *testing.T) {
	dir := t.TempDir()
	stationsPath := filepath.Join(dir, "stations.csv")
	stations := "name,latitude,longitude\nA,45.5,-73.57\nB,45.51,-73.57\n"
	require.NoError(t, os.WriteFile(stationsPath, []byte(stations), 0644))

	loader := newTestLoader(
		config.CityConfig{Name: "montreal", TripsSource: "trips.csv", StationsSource: stationsPath},
		config.CityConfig{Name: "toronto", TripsSource: "trips.csv"},
	)

	catalog, err := loader.LoadStations("montreal")
	require.NoError(t, err)
	stationData, ok := catalog.Locate("B")
	require.True(t, ok)
	assert.Equal(t, 45.51, stationData.Latitude)

	catalog, err = loader.LoadStations("toronto")
	require.NoError(t, err)
	assert.Nil(t, catalog)
}

func TestParse_CustomDelimiterAndLayout(t *testing.T) {
	loader := NewLoader(config.LoaderConfig{
		TimeLayout:   "02/01/2006 15:04",
		CSVDelimiter: ";",
	})
	source := "Start Time;Trip Duration;Start Station;End Station;User Type\n21/06/2017 08:36;60;A;B;Subscriber\n"

	ds, err := loader.Parse("montreal", strings.NewReader(source))

	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, time.June, ds.Records()[0].Month)
	assert.Equal(t, time.Wednesday, ds.Records()[0].Weekday)
	assert.Equal(t, 8, ds.Records()[0].Hour)
}
