package models

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when a provider answers with an empty result set.
var ErrNoData = errors.New("no data")

// UpstreamError is a failed call to a data provider. Status and Body are set
// only when the provider answered with a non-2xx response.
type UpstreamError struct {
	Provider string
	Endpoint string
	Message  string
	Code     string
	Status   int
	Body     interface{}
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Provider, e.Endpoint, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ErrorRecord is the per-endpoint failure slot of the profile report.
// Optional members are kept as explicit nulls so every slot has the same shape.
type ErrorRecord struct {
	Error    bool        `json:"error"`
	Message  string      `json:"message"`
	Code     *string     `json:"code"`
	Status   *int        `json:"status"`
	Data     interface{} `json:"data"`
	Endpoint string      `json:"endpoint"`
}

// NewErrorRecord converts any error into an ErrorRecord for endpoint.
func NewErrorRecord(endpoint string, err error) ErrorRecord {
	rec := ErrorRecord{Error: true, Message: err.Error(), Endpoint: endpoint}

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		return rec
	}
	rec.Message = ue.Message
	if ue.Code != "" {
		code := ue.Code
		rec.Code = &code
	}
	if ue.Status != 0 {
		status := ue.Status
		rec.Status = &status
	}
	rec.Data = ue.Body
	return rec
}
