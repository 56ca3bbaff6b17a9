// Package upstream holds the conventions shared by the provider clients.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"

	"FinScope/internal/domain/models"
	xhttp "FinScope/pkg/http"
)

// Error codes carried by models.UpstreamError.
const (
	CodeBadRequest  = "ERR_BAD_REQUEST"
	CodeBadResponse = "ERR_BAD_RESPONSE"
	CodeTimeout     = "ETIMEDOUT"
	CodeCanceled    = "ERR_CANCELED"
	CodeNetwork     = "ERR_NETWORK"
	CodeDecode      = "ERR_DECODE"
	CodeProvider    = "ERR_PROVIDER"
	CodeNoKey       = "ERR_NO_API_KEY"
)

// Wrap converts a client error into *models.UpstreamError. Non-2xx bodies are
// kept decoded when they are JSON and as a string otherwise. Transport errors
// are rebuilt around endpoint so the request URL and its credentials never
// reach callers or logs.
func Wrap(provider, endpoint string, err error) *models.UpstreamError {
	err = redactURL(err, endpoint)
	ue := &models.UpstreamError{
		Provider: provider,
		Endpoint: endpoint,
		Message:  err.Error(),
		Err:      err,
	}

	var se *xhttp.StatusError
	var ne net.Error
	switch {
	case errors.As(err, &se):
		ue.Message = fmt.Sprintf("Request failed with status code %d", se.StatusCode)
		ue.Status = se.StatusCode
		ue.Body = DecodeBody(se.Body)
		if se.StatusCode >= 400 && se.StatusCode < 500 {
			ue.Code = CodeBadRequest
		} else {
			ue.Code = CodeBadResponse
		}
	case errors.Is(err, context.DeadlineExceeded):
		ue.Code = CodeTimeout
		ue.Message = "timeout exceeded"
	case errors.Is(err, context.Canceled):
		ue.Code = CodeCanceled
		ue.Message = "canceled"
	case errors.As(err, &ne) && ne.Timeout():
		ue.Code = CodeTimeout
		ue.Message = "timeout exceeded"
	default:
		ue.Code = CodeNetwork
	}
	return ue
}

func redactURL(err error, endpoint string) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	return &url.Error{Op: uerr.Op, URL: endpoint, Err: uerr.Err}
}

// Decode reports a body that could not be decoded.
func Decode(provider, endpoint string, err error) *models.UpstreamError {
	return &models.UpstreamError{
		Provider: provider,
		Endpoint: endpoint,
		Message:  "invalid response body",
		Code:     CodeDecode,
		Err:      err,
	}
}

// MissingKey reports a call attempted without credentials.
func MissingKey(provider, endpoint string) *models.UpstreamError {
	return &models.UpstreamError{
		Provider: provider,
		Endpoint: endpoint,
		Message:  "API key required",
		Code:     CodeNoKey,
	}
}

// DecodeBody returns the JSON value of b, or b as a string when it is not JSON.
// Empty bodies decode to nil.
func DecodeBody(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return string(b)
	}
	return v
}
