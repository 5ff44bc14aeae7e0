// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package travis

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bureau-foundation/afterall/lib/matrix"
)

// APIError represents a non-2xx response from the Travis API.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Message is the error description from the response body, or the
	// raw body when it is not a recognized error document.
	Message string
}

func (err *APIError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("travis: HTTP %d", err.StatusCode)
	}
	return fmt.Sprintf("travis: HTTP %d: %s", err.StatusCode, err.Message)
}

// Is makes a 404 APIError match matrix.ErrBuildNotFound.
func (err *APIError) Is(target error) bool {
	return target == matrix.ErrBuildNotFound && err.StatusCode == http.StatusNotFound
}

// IsNotFound reports whether err is a Travis API 404 Not Found response.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound
}

// parseAPIError builds an APIError from a status code and body. Travis
// v3 error documents carry error_message; older endpoints use
// message or file.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiError := &APIError{StatusCode: statusCode}

	var wireError struct {
		ErrorMessage string `json:"error_message"`
		Message      string `json:"message"`
		File         string `json:"file"`
	}
	if json.Unmarshal(body, &wireError) == nil {
		switch {
		case wireError.ErrorMessage != "":
			apiError.Message = wireError.ErrorMessage
			return apiError
		case wireError.Message != "":
			apiError.Message = wireError.Message
			return apiError
		case wireError.File != "":
			apiError.Message = wireError.File
			return apiError
		}
	}
	apiError.Message = string(body)
	return apiError
}
