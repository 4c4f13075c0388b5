package queryresponse

import (
	"time"

	"bikeshare/domain/entities"
)

const (
	responseType = "response"
	errorType    = "error"
)

// QueryResponse contains the response of a query over a Dataset
// + Metadata: city of the Dataset, type (response or error), stage that generated it and, for errors, the error message
// + QueryID: ID of the query, e.g. time-stats
// + Result: result of the query. Nil if the query failed
// + Elapsed: time spent computing the result
type QueryResponse struct {
	Metadata entities.Metadata `json:"metadata"`
	QueryID  string            `json:"query_id"`
	Result   any               `json:"result,omitempty"`
	Elapsed  time.Duration     `json:"elapsed"`
	err      error
}

func NewQueryResponse(city string, queryID string, sender string, result any, elapsed time.Duration) *QueryResponse {
	return &QueryResponse{
		Metadata: entities.NewMetadata(city, responseType, sender, ""),
		QueryID:  queryID,
		Result:   result,
		Elapsed:  elapsed,
	}
}

// NewErrorResponse returns a QueryResponse for a query that failed. Result can be a partial result or nil
func NewErrorResponse(city string, queryID string, sender string, result any, err error, elapsed time.Duration) *QueryResponse {
	return &QueryResponse{
		Metadata: entities.NewMetadata(city, errorType, sender, err.Error()),
		QueryID:  queryID,
		Result:   result,
		Elapsed:  elapsed,
		err:      err,
	}
}

func (qr *QueryResponse) GetMetadata() entities.Metadata {
	return qr.Metadata
}

func (qr *QueryResponse) GetQueryID() string {
	return qr.QueryID
}

func (qr *QueryResponse) IsError() bool {
	return qr.Metadata.GetType() == errorType
}

// GetError returns the error of a failed query. It is only available in the process that created the response
func (qr *QueryResponse) GetError() error {
	return qr.err
}
