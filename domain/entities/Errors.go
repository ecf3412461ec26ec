/*
 *    Copyright 2023 iFood
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package entities

import (
	"fmt"
	"github.com/pkg/errors"
)

var (
	ErrDenylistLoad      = errors.New("failed to load denylist")
	ErrSubmit            = errors.New("VirusTotal submit error")
	ErrFetch             = errors.New("VirusTotal analysis result error")
	ErrPolling           = errors.New("VirusTotal check error")
	ErrSourceUnavailable = errors.New("reputation source is not configured")
	ErrLogWrite          = errors.New("failed to write scan result to file")
	ErrValidation        = errors.New("URL is required")
	ErrAggregatorFault   = errors.New("failed to process URL safety check on backend")
	ErrQueueFull         = errors.New("background queue is full")
)

// LookupError is returned by the threat list lookup when the upstream call fails.
// StatusCode is zero when no HTTP response was received.
type LookupError struct {
	StatusCode int
	Details    string
	Err        error
}

func (e *LookupError) Error() string {
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("Google Safe Browse Network Error: No response received. %s", e.Err)
	case e.StatusCode == 400:
		return fmt.Sprintf("Google Safe Browse API Error: Bad Request. Check your URL format or API key. Details: %s", e.Details)
	case e.StatusCode == 403:
		return fmt.Sprintf("Google Safe Browse API Error: Forbidden. Check your API Key permissions or quota. Details: %s", e.Details)
	case e.StatusCode == 500:
		return fmt.Sprintf("Google Safe Browse API Error: Internal Server Error. Details: %s", e.Details)
	default:
		return fmt.Sprintf("Google Safe Browse HTTP Error (%d). Details: %s", e.StatusCode, e.Details)
	}
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
