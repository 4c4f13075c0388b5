package analyzer

import (
	"context"
	"fmt"
	"time"

	"bikeshare/domain/business/durationstats"
	"bikeshare/domain/business/queryresponse"
	"bikeshare/domain/business/rawdata"
	"bikeshare/domain/business/stationstats"
	"bikeshare/domain/business/temporalstats"
	"bikeshare/domain/business/userstats"
	"bikeshare/domain/entities/dataset"
	"bikeshare/domain/entities/station"
	"bikeshare/domain/filter"
	log "github.com/sirupsen/logrus"
)

const (
	TimeStatsQuery     = "time-stats"
	StationStatsQuery  = "station-stats"
	DurationStatsQuery = "duration-stats"
	UserStatsQuery     = "user-stats"

	analyzerStage = "analyzer"
)

// DatasetLoader loads the Dataset and the optional station Catalog of a city
type DatasetLoader interface {
	Load(city string) (dataset.Dataset, error)
	LoadStations(city string) (station.Catalog, error)
	GetCityNames() []string
}

// Publisher sends the query responses of an analysis somewhere else
type Publisher interface {
	Publish(ctx context.Context, responses []*queryresponse.QueryResponse) error
}

type Analyzer struct {
	loader    DatasetLoader
	publisher Publisher
}

// NewAnalyzer returns an Analyzer. publisher can be nil, in that case responses are not published
func NewAnalyzer(loader DatasetLoader, publisher Publisher) *Analyzer {
	return &Analyzer{
		loader:    loader,
		publisher: publisher,
	}
}

func (a *Analyzer) GetCityNames() []string {
	return a.loader.GetCityNames()
}

func (a *Analyzer) getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[stage: %s][method: %s][status: ERROR] %s: %s", analyzerStage, method, message, err.Error())
	}
	return fmt.Sprintf("[stage: %s][method: %s][status: OK] %s", analyzerStage, method, message)
}

// Run analyzes the trips of city that match the month and day selectors. The flow of this function is:
// 1. Parse the selectors. An invalid selector is returned before loading anything
// 2. Load the Dataset of the city. Load errors are fatal
// 3. Filter the Dataset and compute the four statistics, each one independently of the others
// 4. Publish the responses, if there is a Publisher. The report is returned even if publishing fails
func (a *Analyzer) Run(ctx context.Context, city string, month string, day string) (*Report, error) {
	monthSelector, err := filter.ParseMonth(month)
	if err != nil {
		return nil, err
	}

	daySelector, err := filter.ParseDay(day)
	if err != nil {
		return nil, err
	}

	ds, err := a.loader.Load(city)
	if err != nil {
		log.Error(a.getLogMessage("Run", fmt.Sprintf("error loading data of %s", city), err))
		return nil, err
	}

	catalog, err := a.loader.LoadStations(city)
	if err != nil {
		log.Warn(a.getLogMessage("Run", "stations could not be loaded, trip distances are not available", err))
		catalog = nil
	}

	filtered := filter.Apply(ds, monthSelector, daySelector)
	log.Info(a.getLogMessage("Run", fmt.Sprintf("%v of %v trips of %s match month %s and day %s", filtered.Len(), ds.Len(), ds.GetCity(), monthSelector, daySelector), nil))

	report := Analyze(filtered, catalog)
	report.Month = monthSelector
	report.Day = daySelector

	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, report.Responses); err != nil {
			log.Error(a.getLogMessage("Run", "error publishing responses", err))
			return report, err
		}
	}

	return report, nil
}

// Analyze computes the four statistics of an already filtered Dataset.
// A failing statistic does not prevent the others from being computed.
func Analyze(ds dataset.Dataset, catalog station.Catalog) *Report {
	report := &Report{
		City:    ds.GetCity(),
		Month:   filter.AllMonths(),
		Day:     filter.AllDays(),
		Dataset: ds,
	}

	start := time.Now()
	temporalStats, err := temporalstats.Compute(ds)
	report.Temporal = temporalStats
	report.addResponse(TimeStatsQuery, temporalStats, err, time.Since(start))

	start = time.Now()
	stationStats, err := stationstats.Compute(ds, catalog)
	report.Station = stationStats
	report.addResponse(StationStatsQuery, stationStats, err, time.Since(start))

	start = time.Now()
	durationStats, err := durationstats.Compute(ds)
	report.Duration = durationStats
	report.addResponse(DurationStatsQuery, durationStats, err, time.Since(start))

	start = time.Now()
	userStats, err := userstats.Compute(ds)
	report.User = userStats
	report.addResponse(UserStatsQuery, userStats, err, time.Since(start))

	return report
}

// Report the result of an analysis
// + Dataset: the filtered Dataset the statistics were computed on
// + Temporal, Station, Duration, User: statistics. Nil if they could not be computed, except User,
// which can be partially filled
// + Responses: one response per statistic, in the order they were computed
type Report struct {
	City      string
	Month     filter.MonthSelector
	Day       filter.DaySelector
	Dataset   dataset.Dataset
	Temporal  *temporalstats.TemporalStats
	Station   *stationstats.StationStats
	Duration  *durationstats.DurationStats
	User      *userstats.UserStats
	Responses []*queryresponse.QueryResponse
}

func (r *Report) addResponse(queryID string, result any, err error, elapsed time.Duration) {
	if err != nil {
		log.Debugf("[stage: %s][query: %s][status: ERROR] %s", analyzerStage, queryID, err.Error())
		r.Responses = append(r.Responses, queryresponse.NewErrorResponse(r.City, queryID, analyzerStage, result, err, elapsed))
		return
	}
	r.Responses = append(r.Responses, queryresponse.NewQueryResponse(r.City, queryID, analyzerStage, result, elapsed))
}

// GetResponse returns the response of the given query
func (r *Report) GetResponse(queryID string) (*queryresponse.QueryResponse, bool) {
	for _, response := range r.Responses {
		if response.GetQueryID() == queryID {
			return response, true
		}
	}
	return nil, false
}

// GetError returns the error of the given query, nil if it succeeded
func (r *Report) GetError(queryID string) error {
	response, ok := r.GetResponse(queryID)
	if !ok {
		return nil
	}
	return response.GetError()
}

// NewPaginator returns a Paginator over the filtered trips of the report
func (r *Report) NewPaginator(pageSize int) *rawdata.Paginator {
	return rawdata.NewPaginator(r.Dataset, pageSize)
}
