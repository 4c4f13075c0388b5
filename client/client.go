package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"bikeshare/analyzer"
	"bikeshare/client/config"
	"bikeshare/domain/business/durationstats"
	"bikeshare/domain/business/stationstats"
	"bikeshare/domain/business/temporalstats"
	"bikeshare/domain/business/userstats"
	"bikeshare/domain/entities/trip"
	"bikeshare/domain/filter"
	log "github.com/sirupsen/logrus"
)

const (
	yes       = "yes"
	no        = "no"
	separator = "----------------------------------------"
)

// errEndOfInput is returned when the user closes the input
var errEndOfInput = errors.New("end of input")

// Analysis runs an analysis for a city, month and day
type Analysis interface {
	Run(ctx context.Context, city string, month string, day string) (*analyzer.Report, error)
	GetCityNames() []string
}

// Client asks the user what to analyze and prints the results
type Client struct {
	config   *config.ClientConfig
	analysis Analysis
	scanner  *bufio.Scanner
	out      io.Writer
}

func NewClient(clientConfig *config.ClientConfig, analysis Analysis, in io.Reader, out io.Writer) *Client {
	return &Client{
		config:   clientConfig,
		analysis: analysis,
		scanner:  bufio.NewScanner(in),
		out:      out,
	}
}

// Run asks for filters, prints the statistics and the raw data until the user does not want to restart
// or the input ends
func (c *Client) Run(ctx context.Context) error {
	c.printf("Hello! Let's explore some US bikeshare data!\n")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := c.runAnalysis(ctx)
		if errors.Is(err, errEndOfInput) {
			return nil
		}
		if err != nil {
			return err
		}

		restart, err := c.ask("\nWould you like to restart? Enter yes or no.\n")
		if errors.Is(err, errEndOfInput) {
			return nil
		}
		if strings.ToLower(restart) != yes {
			return nil
		}
	}
}

func (c *Client) runAnalysis(ctx context.Context) error {
	city, month, day, err := c.getFilters()
	if err != nil {
		return err
	}

	report, err := c.analysis.Run(ctx, city, month, day)
	if report == nil {
		log.Errorf("[client][method: runAnalysis][status: ERROR] analysis of %s failed: %s", city, err.Error())
		c.printf("\nCould not analyze %s: %s\n", city, err.Error())
		return nil
	}
	if err != nil {
		log.Warnf("[client][method: runAnalysis] analysis of %s finished with errors: %s", city, err.Error())
	}

	c.printReport(report)
	return c.showRawData(report)
}

// getFilters asks the user for a city, month and day until valid values are entered
func (c *Client) getFilters() (string, string, string, error) {
	cityNames := c.analysis.GetCityNames()
	var city string
	for {
		answer, err := c.ask(fmt.Sprintf("Would you like to see data for %s?\n", joinNames(cityNames)))
		if err != nil {
			return "", "", "", err
		}
		if name, ok := findCity(cityNames, answer); ok {
			city = name
			break
		}
		c.printf("\nInvalid input, please try again.\n\n")
	}

	month, err := c.askSelector(
		fmt.Sprintf("Which month? %s. Otherwise enter ALL\n", joinNames(filter.MonthNames())),
		func(answer string) error {
			_, err := filter.ParseMonth(answer)
			return err
		},
	)
	if err != nil {
		return "", "", "", err
	}

	day, err := c.askSelector(
		fmt.Sprintf("Which day? %s. Otherwise enter ALL\n", joinNames(filter.DayNames())),
		func(answer string) error {
			_, err := filter.ParseDay(answer)
			return err
		},
	)
	if err != nil {
		return "", "", "", err
	}

	c.printf("%s\n", separator)
	return city, month, day, nil
}

func (c *Client) askSelector(question string, validate func(answer string) error) (string, error) {
	for {
		answer, err := c.ask(question)
		if err != nil {
			return "", err
		}

		if err := validate(answer); err != nil {
			c.printf("\nInvalid input (%s), please try again.\n\n", err.Error())
			continue
		}
		return answer, nil
	}
}

// showRawData shows the filtered trips a page at a time while the user answers yes
func (c *Client) showRawData(report *analyzer.Report) error {
	paginator := report.NewPaginator(c.config.PageSize)
	for {
		answer, err := c.ask("Would you like to see the raw data? Enter YES or NO\n")
		if err != nil {
			return err
		}

		switch strings.ToLower(answer) {
		case yes:
			if paginator.Exhausted() {
				c.printf("No more trips to show.\n")
				continue
			}
			offset := paginator.Cursor()
			c.printTrips(paginator.RevealNext(), offset)
		case no:
			return nil
		default:
			c.printf("You have entered the wrong input. Please try again.\n")
		}
	}
}

func (c *Client) ask(question string) (string, error) {
	c.printf("%s", question)
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", fmt.Errorf("error reading input: %w", err)
		}
		return "", errEndOfInput
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

func (c *Client) printReport(report *analyzer.Report) {
	c.printf("\nAnalyzing %v trips of %s (month: %s, day: %s)\n", report.Dataset.Len(), report.City, report.Month, report.Day)

	c.printf("\nCalculating The Most Frequent Times of Travel...\n\n")
	c.printTimeStats(report.Temporal, report.GetError(analyzer.TimeStatsQuery))
	c.printElapsed(report, analyzer.TimeStatsQuery)

	c.printf("\nCalculating The Most Popular Stations and Trip...\n\n")
	c.printStationStats(report.Station, report.GetError(analyzer.StationStatsQuery))
	c.printElapsed(report, analyzer.StationStatsQuery)

	c.printf("\nCalculating Trip Duration...\n\n")
	c.printDurationStats(report.Duration, report.GetError(analyzer.DurationStatsQuery))
	c.printElapsed(report, analyzer.DurationStatsQuery)

	c.printf("\nCalculating User Stats...\n\n")
	c.printUserStats(report.User, report.GetError(analyzer.UserStatsQuery))
	c.printElapsed(report, analyzer.UserStatsQuery)
}

func (c *Client) printTimeStats(stats *temporalstats.TemporalStats, err error) {
	if err != nil {
		c.printf("Travel times are not available: %s\n", err.Error())
		return
	}
	c.printf("Most Common Month: %s (%v trips)\n", stats.MostCommonMonth, stats.MostCommonMonthCount)
	c.printf("Most Common Day of the Week: %s (%v trips)\n", stats.MostCommonDay, stats.MostCommonDayCount)
	c.printf("Most Common Start Hour: %v (%v trips)\n", stats.MostCommonHour, stats.MostCommonHourCount)
}

func (c *Client) printStationStats(stats *stationstats.StationStats, err error) {
	if err != nil {
		c.printf("Station stats are not available: %s\n", err.Error())
		return
	}
	c.printf("Most Common Start Station: %s (%v trips)\n", stats.MostCommonStartStation, stats.MostCommonStartStationCount)
	c.printf("Most Common End Station: %s (%v trips)\n", stats.MostCommonEndStation, stats.MostCommonEndStationCount)

	popularTrip := stats.MostCommonTrip
	c.printf("Most Frequent Combination of Start Station and End Station Trip: %s -> %s (%v trips)\n",
		popularTrip.StartStation, popularTrip.EndStation, popularTrip.Count)
	if popularTrip.HasDistance {
		c.printf("Distance Between Both Stations: %.2f km\n", popularTrip.DistanceKm)
	}
}

func (c *Client) printDurationStats(stats *durationstats.DurationStats, err error) {
	if err != nil {
		c.printf("Trip durations are not available: %s\n", err.Error())
		return
	}
	c.printf("Total Travel Time: %v seconds (%s)\n", stats.TotalSeconds, stats.GetTotal().Round(time.Second))
	c.printf("Mean Travel Time: %.2f seconds (%s)\n", stats.MeanSeconds, stats.GetMean().Round(time.Second))
}

func (c *Client) printUserStats(stats *userstats.UserStats, err error) {
	if stats == nil {
		c.printf("User stats are not available: %s\n", err.Error())
		return
	}

	c.printf("Counts of User Types:\n")
	c.printCategoryCounts(stats.UserTypes)

	if !stats.Gender.Available {
		c.printf("Gender is unavailable in this data.\n")
	} else {
		c.printf("Counts of Gender:\n")
		c.printCategoryCounts(stats.Gender.Counts)
	}

	switch {
	case !stats.BirthYear.Available:
		c.printf("Birth Year is unavailable in this data.\n")
	case err != nil:
		c.printf("Birth Year stats are not available: %s\n", err.Error())
	default:
		c.printf("Earliest Year of Birth: %v\n", stats.BirthYear.Earliest)
		c.printf("Most Recent Year of Birth: %v\n", stats.BirthYear.MostRecent)
		c.printf("Most Common Year of Birth: %v\n", stats.BirthYear.MostCommon)
	}
}

func (c *Client) printElapsed(report *analyzer.Report, queryID string) {
	response, ok := report.GetResponse(queryID)
	if !ok {
		return
	}
	c.printf("\nThis took %v seconds.\n%s\n", response.Elapsed.Seconds(), separator)
}

func (c *Client) printTrips(trips []trip.TripRecord, firstIndex int) {
	for idx, record := range trips {
		c.printf("[%v] %s | %s -> %s | %.0f s | %s", firstIndex+idx, record.StartTime.Format(time.DateTime),
			record.StartStation, record.EndStation, record.Duration, record.UserType)
		if record.HasGender() {
			c.printf(" | %s", record.Gender)
		}
		if record.HasBirthYear() {
			c.printf(" | %v", record.BirthYear)
		}
		c.printf("\n")
	}
}

func (c *Client) printf(format string, args ...any) {
	_, err := fmt.Fprintf(c.out, format, args...)
	if err != nil {
		log.Debugf("[client] error writing output: %s", err.Error())
	}
}

func (c *Client) printCategoryCounts(counts []userstats.CategoryCount) {
	if len(counts) == 0 {
		c.printf("\t(none)\n")
		return
	}
	for _, categoryCount := range counts {
		c.printf("\t%s: %v\n", categoryCount.Category, categoryCount.Count)
	}
}

func findCity(cityNames []string, answer string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(answer))
	for _, name := range cityNames {
		if strings.ToLower(name) == normalized {
			return name, true
		}
	}
	return "", false
}

// joinNames returns the names separated by commas, e.g. "a, b, or c"
func joinNames(names []string) string {
	if len(names) <= 1 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}
