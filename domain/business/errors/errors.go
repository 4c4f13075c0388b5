package errors

import "errors"

// ErrEmptyDataset is returned by the aggregators that cannot compute a statistic over zero records
var ErrEmptyDataset = errors.New("empty dataset: statistic is undefined")
