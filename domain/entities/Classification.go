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

type SourceStatus string

const (
	Safe    SourceStatus = "Safe"
	Unsafe  SourceStatus = "Unsafe"
	Unknown SourceStatus = "Unknown"
)

// ClassifyAnalysis maps an async scan outcome to a source status. Both the audit
// log and the presentation badges go through this function.
func ClassifyAnalysis(outcome *AsyncScanOutcome) SourceStatus {
	if outcome == nil || outcome.AsyncAnalysis == nil || outcome.Error != "" {
		return Unknown
	}

	analysis := outcome.AsyncAnalysis
	if analysis.Status != AnalysisCompleted || analysis.Stats == nil {
		return Unknown
	}

	switch {
	case analysis.Stats.Malicious > 0 || analysis.Stats.Suspicious > 0:
		return Unsafe
	case analysis.Stats.Harmless > 0 || analysis.Stats.Undetected > 0:
		return Safe
	default:
		return Unknown
	}
}

func ClassifyLookup(outcome *LookupOutcome) SourceStatus {
	if outcome == nil || outcome.LookupResult == nil || outcome.Error != "" || outcome.IsSafe == nil {
		return Unknown
	}

	if *outcome.IsSafe {
		return Safe
	}

	return Unsafe
}

type AuditEntry struct {
	URL       string
	VTStatus  SourceStatus
	GSBStatus SourceStatus
}

func NewAuditEntry(verdict Verdict) AuditEntry {
	return AuditEntry{
		URL:       verdict.URL,
		VTStatus:  ClassifyAnalysis(verdict.VirusTotal),
		GSBStatus: ClassifyLookup(verdict.GoogleSafeBrowse),
	}
}

func (a AuditEntry) String() string {
	return fmt.Sprintf("URL: \"%s\"\nVirusTotal: %s\nGoogle Safe Browse: %s\n---\n", a.URL, a.VTStatus, a.GSBStatus)
}

// IsAlarming is true when any signal flagged the URL.
func (v Verdict) IsAlarming() bool {
	return v.IsPoisonedLocally || ClassifyAnalysis(v.VirusTotal) == Unsafe || ClassifyLookup(v.GoogleSafeBrowse) == Unsafe
}
