package trip

import "sort"

// Field identifies an optional column of a trips source
type Field string

const (
	FieldGender    Field = "gender"
	FieldBirthYear Field = "birth_year"
)

// FieldSet records which optional fields a source provides for all of its records.
// It is computed once, when the source is loaded.
type FieldSet map[Field]bool

func NewFieldSet(fields ...Field) FieldSet {
	fs := make(FieldSet, len(fields))
	for _, field := range fields {
		fs[field] = true
	}
	return fs
}

func (fs FieldSet) Contains(field Field) bool {
	return fs[field]
}

// Fields returns the available fields sorted by name
func (fs FieldSet) Fields() []Field {
	var fields []Field
	for field, ok := range fs {
		if ok {
			fields = append(fields, field)
		}
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}
