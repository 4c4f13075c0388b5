package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	statsErrors "bikeshare/domain/business/errors"
	"bikeshare/domain/business/queryresponse"
	"bikeshare/domain/entities/dataset"
	"bikeshare/domain/entities/station"
	"bikeshare/domain/entities/trip"
	"bikeshare/domain/filter"
	"bikeshare/domain/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	datasets   map[string]dataset.Dataset
	catalog    station.Catalog
	catalogErr error
	loads      int
}

func (fl *fakeLoader) Load(city string) (dataset.Dataset, error) {
	fl.loads++
	ds, ok := fl.datasets[city]
	if !ok {
		return dataset.Dataset{}, loader.ErrUnknownCity
	}
	return ds, nil
}

func (fl *fakeLoader) LoadStations(city string) (station.Catalog, error) {
	return fl.catalog, fl.catalogErr
}

func (fl *fakeLoader) GetCityNames() []string {
	return []string{"chicago", "washington"}
}

type fakePublisher struct {
	published []*queryresponse.QueryResponse
	err       error
}

func (fp *fakePublisher) Publish(ctx context.Context, responses []*queryresponse.QueryResponse) error {
	fp.published = append(fp.published, responses...)
	return fp.err
}

func newTrip(startTime time.Time, startStation string, endStation string, duration float64) trip.TripRecord {
	return trip.NewTripRecord(startTime, startStation, endStation, duration, "Subscriber")
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		datasets: map[string]dataset.Dataset{
			"chicago": dataset.NewDataset("chicago", []trip.TripRecord{
				newTrip(time.Date(2017, time.January, 2, 9, 0, 0, 0, time.UTC), "A", "B", 100),
				newTrip(time.Date(2017, time.January, 2, 10, 0, 0, 0, time.UTC), "A", "B", 200),
				newTrip(time.Date(2017, time.February, 7, 11, 0, 0, 0, time.UTC), "A", "C", 50),
			}, trip.NewFieldSet()),
		},
	}
}

func TestRun(t *testing.T) {
	publisher := &fakePublisher{}
	analyzer := NewAnalyzer(newFakeLoader(), publisher)

	report, err := analyzer.Run(context.Background(), "chicago", "January", "all")

	require.NoError(t, err)
	assert.Equal(t, "chicago", report.City)
	assert.Equal(t, "january", report.Month.String())
	assert.True(t, report.Day.IsAll())
	assert.Equal(t, 2, report.Dataset.Len())

	require.NotNil(t, report.Temporal)
	assert.Equal(t, time.January, report.Temporal.MostCommonMonth)
	assert.Equal(t, "Monday", report.Temporal.MostCommonDay)
	require.NotNil(t, report.Duration)
	assert.Equal(t, 300.0, report.Duration.TotalSeconds)
	assert.Equal(t, 150.0, report.Duration.MeanSeconds)
	require.NotNil(t, report.Station)
	assert.Equal(t, 2, report.Station.MostCommonTrip.Count)
	require.NotNil(t, report.User)
	assert.False(t, report.User.Gender.Available)

	require.Len(t, report.Responses, 4)
	for _, queryID := range []string{TimeStatsQuery, StationStatsQuery, DurationStatsQuery, UserStatsQuery} {
		response, ok := report.GetResponse(queryID)
		require.True(t, ok, queryID)
		assert.False(t, response.IsError(), queryID)
		assert.Equal(t, "chicago", response.GetMetadata().GetCity())
		assert.NoError(t, report.GetError(queryID))
	}
	assert.Equal(t, report.Responses, publisher.published)
}

func TestRun_InvalidSelectorsAreReportedBeforeLoading(t *testing.T) {
	fake := newFakeLoader()
	analyzer := NewAnalyzer(fake, nil)

	_, err := analyzer.Run(context.Background(), "chicago", "august", "all")
	assert.ErrorIs(t, err, filter.ErrInvalidMonthName)

	_, err = analyzer.Run(context.Background(), "chicago", "all", "funday")
	assert.ErrorIs(t, err, filter.ErrInvalidDayName)

	assert.Equal(t, 0, fake.loads)
}

func TestRun_LoadErrorIsFatal(t *testing.T) {
	publisher := &fakePublisher{}
	analyzer := NewAnalyzer(newFakeLoader(), publisher)

	report, err := analyzer.Run(context.Background(), "springfield", "all", "all")

	assert.Nil(t, report)
	assert.ErrorIs(t, err, loader.ErrUnknownCity)
	assert.Empty(t, publisher.published)
}

func TestRun_EmptySelectionFailsOnlySomeStatistics(t *testing.T) {
	analyzer := NewAnalyzer(newFakeLoader(), nil)

	report, err := analyzer.Run(context.Background(), "chicago", "june", "all")

	require.NoError(t, err)
	assert.True(t, report.Dataset.IsEmpty())
	assert.ErrorIs(t, report.GetError(TimeStatsQuery), statsErrors.ErrEmptyDataset)
	assert.ErrorIs(t, report.GetError(StationStatsQuery), statsErrors.ErrEmptyDataset)
	assert.ErrorIs(t, report.GetError(DurationStatsQuery), statsErrors.ErrEmptyDataset)
	assert.NoError(t, report.GetError(UserStatsQuery))
	assert.Nil(t, report.Temporal)
	require.NotNil(t, report.User)
	assert.Empty(t, report.User.UserTypes)

	response, ok := report.GetResponse(DurationStatsQuery)
	require.True(t, ok)
	assert.True(t, response.IsError())
	assert.Equal(t, statsErrors.ErrEmptyDataset.Error(), response.GetMetadata().GetMessage())
}

func TestRun_StationsErrorIsNotFatal(t *testing.T) {
	fake := newFakeLoader()
	fake.catalogErr = errors.New("stations file is corrupted")
	analyzer := NewAnalyzer(fake, nil)

	report, err := analyzer.Run(context.Background(), "chicago", "all", "all")

	require.NoError(t, err)
	require.NotNil(t, report.Station)
	assert.False(t, report.Station.MostCommonTrip.HasDistance)
}

func TestRun_PublishError(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("broker down")}
	analyzer := NewAnalyzer(newFakeLoader(), publisher)

	report, err := analyzer.Run(context.Background(), "chicago", "all", "all")

	assert.ErrorIs(t, err, publisher.err)
	require.NotNil(t, report)
	assert.Len(t, report.Responses, 4)
}

func TestReport_NewPaginator(t *testing.T) {
	report := Analyze(newFakeLoader().datasets["chicago"], nil)

	paginator := report.NewPaginator(2)

	assert.Len(t, paginator.RevealNext(), 2)
	assert.Len(t, paginator.RevealNext(), 1)
	assert.Empty(t, paginator.RevealNext())
}
