package filter

import "errors"

var (
	ErrInvalidMonthName = errors.New("invalid month name")
	ErrInvalidDayName   = errors.New("invalid day name")
)
