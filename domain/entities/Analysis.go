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

import "fmt"

type AnalysisStatus string

const (
	AnalysisQueued    AnalysisStatus = "queued"
	AnalysisPending   AnalysisStatus = "pending"
	AnalysisCompleted AnalysisStatus = "completed"

	// Synthetic statuses, never returned by the scanning service itself
	AnalysisUnexpectedStatus AnalysisStatus = "failed_or_unexpected_status"
	AnalysisPollingError     AnalysisStatus = "api_polling_error"
)

// InProgress reports whether the analysis may still change on a later poll.
func (s AnalysisStatus) InProgress() bool {
	return s == AnalysisQueued || s == AnalysisPending
}

type AnalysisStats struct {
	Malicious  int `json:"malicious"`
	Suspicious int `json:"suspicious"`
	Harmless   int `json:"harmless"`
	Undetected int `json:"undetected"`
}

// AsyncAnalysis is one snapshot of an asynchronous URL analysis. Each poll
// produces a fresh value.
type AsyncAnalysis struct {
	ID      string         `json:"id,omitempty"`
	Status  AnalysisStatus `json:"status"`
	Stats   *AnalysisStats `json:"stats,omitempty"`
	Message string         `json:"message,omitempty"`
}

func NewUnexpectedStatusAnalysis(id string, status AnalysisStatus) AsyncAnalysis {
	observed := string(status)
	if observed == "" {
		observed = "unknown"
	}

	return AsyncAnalysis{
		ID:      id,
		Status:  AnalysisUnexpectedStatus,
		Message: fmt.Sprintf("VirusTotal analysis returned unexpected status: %q.", observed),
	}
}

func NewPollingErrorAnalysis(id string, err error) AsyncAnalysis {
	return AsyncAnalysis{
		ID:      id,
		Status:  AnalysisPollingError,
		Message: fmt.Sprintf("VirusTotal polling encountered an API error: %s.", err),
	}
}
