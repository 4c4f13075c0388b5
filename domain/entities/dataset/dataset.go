package dataset

import "bikeshare/domain/entities/trip"

// Dataset is an immutable ordered sequence of trips of a city together with the
// optional fields its source provides. Filtering creates a new Dataset.
type Dataset struct {
	city    string
	records []trip.TripRecord
	fields  trip.FieldSet
}

func NewDataset(city string, records []trip.TripRecord, fields trip.FieldSet) Dataset {
	recordsCopy := make([]trip.TripRecord, len(records))
	copy(recordsCopy, records)

	fieldsCopy := make(trip.FieldSet, len(fields))
	for field, ok := range fields {
		fieldsCopy[field] = ok
	}

	return Dataset{
		city:    city,
		records: recordsCopy,
		fields:  fieldsCopy,
	}
}

func (d Dataset) GetCity() string {
	return d.city
}

func (d Dataset) Len() int {
	return len(d.records)
}

func (d Dataset) IsEmpty() bool {
	return len(d.records) == 0
}

// Records returns a copy of the records, so callers cannot mutate the Dataset
func (d Dataset) Records() []trip.TripRecord {
	recordsCopy := make([]trip.TripRecord, len(d.records))
	copy(recordsCopy, d.records)
	return recordsCopy
}

// Each calls fn for every record in order without copying the sequence
func (d Dataset) Each(fn func(record trip.TripRecord)) {
	for idx := range d.records {
		fn(d.records[idx])
	}
}

// Slice returns the records in [from, to), clipped to the bounds of the Dataset
func (d Dataset) Slice(from int, to int) []trip.TripRecord {
	if from < 0 {
		from = 0
	}
	if to > len(d.records) {
		to = len(d.records)
	}
	if from >= to {
		return []trip.TripRecord{}
	}

	page := make([]trip.TripRecord, to-from)
	copy(page, d.records[from:to])
	return page
}

// HasField reports whether the source of the Dataset provides the given optional field
func (d Dataset) HasField(field trip.Field) bool {
	return d.fields.Contains(field)
}

// Where returns a new Dataset with the records that satisfy keep, preserving their order.
// City and fields are the same as the original.
func (d Dataset) Where(keep func(record trip.TripRecord) bool) Dataset {
	var kept []trip.TripRecord
	for idx := range d.records {
		if keep(d.records[idx]) {
			kept = append(kept, d.records[idx])
		}
	}
	return NewDataset(d.city, kept, d.fields)
}
