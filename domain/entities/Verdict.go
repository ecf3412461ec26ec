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

const (
	LocalDenylistMessage     = "URL is identified as potentially malicious by the local denylist."
	denylistPlaceholderNotes = "Found in local denylist"
)

// AsyncScanOutcome holds either the analysis or the error that prevented it.
// The analysis fields are inlined when marshalled.
type AsyncScanOutcome struct {
	*AsyncAnalysis
	Error string `json:"error,omitempty"`
}

func AsyncScanSucceeded(analysis AsyncAnalysis) *AsyncScanOutcome {
	return &AsyncScanOutcome{AsyncAnalysis: &analysis}
}

func AsyncScanFailed(err error) *AsyncScanOutcome {
	return &AsyncScanOutcome{Error: err.Error()}
}

// LookupOutcome holds either the lookup result or the error that prevented it.
type LookupOutcome struct {
	*LookupResult
	Error string `json:"error,omitempty"`
}

func LookupSucceeded(result LookupResult) *LookupOutcome {
	return &LookupOutcome{LookupResult: &result}
}

func LookupFailed(err error) *LookupOutcome {
	return &LookupOutcome{Error: err.Error()}
}

// Verdict is the aggregated answer for a single URL check. It is built once per
// request and never shared.
type Verdict struct {
	CheckID           string            `json:"checkId"`
	URL               string            `json:"url"`
	NormalizedURL     string            `json:"normalizedUrl"`
	IsPoisonedLocally bool              `json:"isPoisonedLocally"`
	LocalMessage      string            `json:"localMessage"`
	VirusTotal        *AsyncScanOutcome `json:"virusTotal"`
	GoogleSafeBrowse  *LookupOutcome    `json:"googleSafeBrowse"`
	BackendError      *string           `json:"backendError"`
}

func NewVerdict(checkID, url, normalizedURL string) Verdict {
	return Verdict{CheckID: checkID, URL: url, NormalizedURL: normalizedURL}
}

func (v *Verdict) MarkDenylisted() {
	v.IsPoisonedLocally = true
	v.LocalMessage = LocalDenylistMessage
}

// UseDenylistPlaceholders fills both sources with malicious results so a
// denylist hit has the same shape as a remote detection.
func (v *Verdict) UseDenylistPlaceholders() {
	v.VirusTotal = AsyncScanSucceeded(AsyncAnalysis{
		Status:  AnalysisCompleted,
		Stats:   &AnalysisStats{Malicious: 1},
		Message: denylistPlaceholderNotes,
	})

	unsafe := NewUnsafeLookup(v.NormalizedURL, nil)
	unsafe.Message = denylistPlaceholderNotes
	v.GoogleSafeBrowse = LookupSucceeded(unsafe)
}

func (v *Verdict) SetBackendError(err error) {
	message := err.Error()
	v.BackendError = &message
}
