package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var ErrMalformedResponse = errors.New("malformed response")

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	// Detail is the message the backend returned, if it could be read.
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Detail)
}

// ErrorResponse is the error body the backend sends alongside non-2xx statuses.
type ErrorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

const maxErrorBody = 4 << 10

func newStatusError(resp *http.Response) *StatusError {
	se := &StatusError{StatusCode: resp.StatusCode}

	bs, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(bs) == 0 {
		return se
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(bs, &errResp); err != nil || len(errResp.Detail) == 0 {
		se.Detail = strings.TrimSpace(string(bs))
		return se
	}

	var detail string
	if err := json.Unmarshal(errResp.Detail, &detail); err == nil {
		se.Detail = detail
		return se
	}
	// validation errors carry a list of objects
	se.Detail = string(errResp.Detail)
	return se
}
