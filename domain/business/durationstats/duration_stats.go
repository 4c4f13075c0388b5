package durationstats

import (
	"sync"
	"time"

	statsErrors "bikeshare/domain/business/errors"
	"bikeshare/domain/entities/dataset"
)

const chunkSize = 50_000

// DurationStats total and average trip duration, in seconds
// + Trips: amount of trips used to compute the stats
// + TotalSeconds: sum of the durations
// + MeanSeconds: arithmetic mean of the durations
// + ShortestSeconds, LongestSeconds: extremes of the durations
type DurationStats struct {
	Trips           int     `json:"trips"`
	TotalSeconds    float64 `json:"total_seconds"`
	MeanSeconds     float64 `json:"mean_seconds"`
	ShortestSeconds float64 `json:"shortest_seconds"`
	LongestSeconds  float64 `json:"longest_seconds"`
}

// Compute returns the duration stats of the trips of the Dataset.
// It fails with ErrEmptyDataset if the Dataset has no trips: sum and mean are undefined.
func Compute(ds dataset.Dataset) (*DurationStats, error) {
	if ds.IsEmpty() {
		return nil, statsErrors.ErrEmptyDataset
	}

	return computeInChunks(ds, chunkSize)
}

// computeInChunks accumulates each chunk of trips on its own goroutine and merges the partial
// accumulators in chunk order, so the result does not depend on scheduling
func computeInChunks(ds dataset.Dataset, size int) (*DurationStats, error) {
	partials := make([]*DurationAccumulator, 0, ds.Len()/size+1)
	for from := 0; from < ds.Len(); from += size {
		partials = append(partials, NewDurationAccumulator(ds.GetCity()))
	}

	var wg sync.WaitGroup
	for i, partial := range partials {
		wg.Add(1)
		go func(from int, partial *DurationAccumulator) {
			defer wg.Done()
			for _, record := range ds.Slice(from, from+size) {
				partial.UpdateAccumulator(record.Duration)
			}
		}(i*size, partial)
	}
	wg.Wait()

	accumulator := NewDurationAccumulator(ds.GetCity())
	for _, partial := range partials {
		merged, err := accumulator.Merge(partial)
		if err != nil {
			return nil, err
		}
		accumulator = merged
	}

	return accumulator.ToStats()
}

func (ds *DurationStats) GetTotal() time.Duration {
	return toDuration(ds.TotalSeconds)
}

func (ds *DurationStats) GetMean() time.Duration {
	return toDuration(ds.MeanSeconds)
}

func toDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
