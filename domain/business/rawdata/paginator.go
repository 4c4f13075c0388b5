package rawdata

import (
	"bikeshare/domain/entities/dataset"
	"bikeshare/domain/entities/trip"
)

const DefaultPageSize = 5

// Paginator reveals the records of a Dataset a page at a time.
// The cursor only moves forward; a new Paginator is needed to start over.
type Paginator struct {
	dataset  dataset.Dataset
	pageSize int
	cursor   int
}

// NewPaginator returns a Paginator positioned at the first record.
// If pageSize is not positive, DefaultPageSize is used.
func NewPaginator(ds dataset.Dataset, pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Paginator{
		dataset:  ds,
		pageSize: pageSize,
	}
}

// RevealNext returns the records in [cursor, cursor+pageSize) and advances the cursor by pageSize.
// Once the end is reached it keeps returning empty pages.
func (p *Paginator) RevealNext() []trip.TripRecord {
	page := p.dataset.Slice(p.cursor, p.cursor+p.pageSize)
	p.cursor += p.pageSize
	return page
}

func (p *Paginator) Cursor() int {
	return p.cursor
}

func (p *Paginator) GetPageSize() int {
	return p.pageSize
}

// Exhausted reports whether the cursor is past the last record
func (p *Paginator) Exhausted() bool {
	return p.cursor >= p.dataset.Len()
}
