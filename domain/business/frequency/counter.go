package frequency

import (
	"cmp"
	"sort"

	statsErrors "bikeshare/domain/business/errors"
)

// Counter counts occurrences of values of type K.
// The mode is the value with the highest count; ties are broken by the smallest value according to less.
type Counter[K comparable] struct {
	counts map[K]int
	less   func(a K, b K) bool
}

// Entry is a value together with the number of times it was seen
type Entry[K comparable] struct {
	Value K   `json:"value"`
	Count int `json:"count"`
}

func NewCounter[K comparable](less func(a K, b K) bool) *Counter[K] {
	return &Counter[K]{
		counts: make(map[K]int),
		less:   less,
	}
}

// NewOrderedCounter returns a Counter that orders its values with the natural order of K
func NewOrderedCounter[K cmp.Ordered]() *Counter[K] {
	return NewCounter[K](cmp.Less[K])
}

func (c *Counter[K]) Update(value K) {
	c.counts[value] += 1
}

func (c *Counter[K]) Count(value K) int {
	return c.counts[value]
}

// Len returns the amount of distinct values seen
func (c *Counter[K]) Len() int {
	return len(c.counts)
}

// Mode returns the most frequent value and its count. If more than one value has the highest count,
// the smallest of them is returned. An empty Counter has no mode.
func (c *Counter[K]) Mode() (K, int, error) {
	var mode K
	modeCount := 0
	for value, count := range c.counts {
		if count > modeCount || (count == modeCount && c.less(value, mode)) {
			mode = value
			modeCount = count
		}
	}

	if modeCount == 0 {
		return mode, 0, statsErrors.ErrEmptyDataset
	}

	return mode, modeCount, nil
}

// Sorted returns all the entries sorted by count descending, then by value ascending
func (c *Counter[K]) Sorted() []Entry[K] {
	entries := make([]Entry[K], 0, len(c.counts))
	for value, count := range c.counts {
		entries = append(entries, Entry[K]{Value: value, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return c.less(entries[i].Value, entries[j].Value)
	})
	return entries
}
